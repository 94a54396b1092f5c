package store

import "encoding/json"

// World is the top-level object store: the entity pool, the component
// registry, the string interner, and the registered component codecs. It
// is the innermost layer of the server's context — callers higher up own
// the relationship graph, persistence, and sessions, all referencing
// entities that live here.
type World struct {
	Pool     *Pool
	Registry *Registry
	Interner *Interner
	Strip    ColorStrip

	codecs   []ComponentCodec
	codecIdx map[string]int

	// onDelete hooks run (in registration order) before a deleted entity's
	// components are cleared, e.g. the relationship graph's cascade that
	// detaches Parent/Owner/Location edges.
	onDelete []func(*World, Entity)

	// onCreated/onDeleted are lifecycle hooks keyed by ObjectID rather than
	// bare Entity, for callers (e.g. an event bus) that need the stable id
	// alongside the tick-scoped handle. They only fire for CreateEntity/
	// Delete, not for the bulk-load path (Pool.HydrateAt), since loading an
	// existing row is not a creation.
	onCreated []func(Entity, ObjectID)
	onDeleted []func(Entity, ObjectID)

	// loading suppresses dirty marking while the world is being hydrated
	// from storage.
	loading bool
	dirty   map[ObjectID]struct{}

	// unknown holds, per entity, the raw JSON of component keys that arrived
	// on load with no registered codec. SerializeEntity folds these back in
	// so a component kind this binary doesn't recognize survives a
	// load-modify-save cycle untouched instead of being dropped.
	unknown map[Entity]map[string]json.RawMessage
}

// NewWorld creates an empty World. nowFn overrides the generation clock
// (nil uses the real wall clock); pass nil in production.
func NewWorld(nowFn func() int64) *World {
	return &World{
		Pool:     NewPool(nowFn),
		Registry: NewRegistry(),
		Interner: NewInterner(),
		codecIdx: make(map[string]int),
		dirty:    make(map[ObjectID]struct{}),
		unknown:  make(map[Entity]map[string]json.RawMessage),
	}
}

// RegisterComponentCodec adds a codec used by persistence to serialize and
// deserialize one component kind.
func (w *World) RegisterComponentCodec(c ComponentCodec) {
	w.codecIdx[c.Name()] = len(w.codecs)
	w.codecs = append(w.codecs, c)
}

// Codecs returns the registered component codecs in registration order.
func (w *World) Codecs() []ComponentCodec { return w.codecs }

// CodecByName looks up a registered codec by its JSON object key.
func (w *World) CodecByName(name string) (ComponentCodec, bool) {
	i, ok := w.codecIdx[name]
	if !ok {
		return nil, false
	}
	return w.codecs[i], true
}

// OnDelete registers a cleanup hook invoked for every deleted entity,
// before its components are cleared. Used by the relationship graph to
// implement the deletion cascade.
func (w *World) OnDelete(fn func(*World, Entity)) {
	w.onDelete = append(w.onDelete, fn)
}

// OnEntityCreated registers a hook invoked after CreateEntity allocates a
// fresh slot and ObjectID, before any components are attached. Not called
// for entities materialized by a bulk load (Pool.HydrateAt) — those are
// loads, not creations.
func (w *World) OnEntityCreated(fn func(Entity, ObjectID)) {
	w.onCreated = append(w.onCreated, fn)
}

// OnEntityDeleted registers a hook invoked after Delete's cascade has run
// but before the slot returns to the free list, carrying the ObjectID the
// entity held while alive.
func (w *World) OnEntityDeleted(fn func(Entity, ObjectID)) {
	w.onDeleted = append(w.onDeleted, fn)
}

// CreateEntity allocates a new entity and marks it dirty (unless loading).
func (w *World) CreateEntity() (Entity, ObjectID) {
	e, id := w.Pool.Create()
	w.MarkDirty(id)
	for _, fn := range w.onCreated {
		fn(e, id)
	}
	return e, id
}

// Delete runs the deletion cascade, clears every component, and returns the
// slot to the free list. Callers must capture the ObjectID before calling
// Delete if they still need it (e.g. to remove a stale DB row).
func (w *World) Delete(e Entity) {
	id, hadID := w.Pool.ObjectIDOf(e)
	for _, hook := range w.onDelete {
		hook(w, e)
	}
	if hadID {
		w.MarkDirty(id) // so the flush deletes the row
		for _, fn := range w.onDeleted {
			fn(e, id)
		}
	}
	w.Registry.RemoveAll(e)
	w.Pool.Destroy(e)
	delete(w.unknown, e)
}

// SetUnknownComponents records the raw JSON of component keys a load found
// with no registered codec, so a later SerializeEntity of e can emit them
// back unchanged.
func (w *World) SetUnknownComponents(e Entity, raw map[string]json.RawMessage) {
	if len(raw) == 0 {
		delete(w.unknown, e)
		return
	}
	w.unknown[e] = raw
}

// UnknownComponentsOf returns the raw JSON previously recorded for e via
// SetUnknownComponents, if any.
func (w *World) UnknownComponentsOf(e Entity) map[string]json.RawMessage {
	return w.unknown[e]
}

// SetLoading toggles the bulk-load suppression flag; while set, mutating
// APIs do not mark entities dirty.
func (w *World) SetLoading(loading bool) { w.loading = loading }

// Loading reports whether bulk-load suppression is active.
func (w *World) Loading() bool { return w.loading }

// MarkDirty adds id to the dirty set unless loading is suppressed.
func (w *World) MarkDirty(id ObjectID) {
	if w.loading {
		return
	}
	w.dirty[id] = struct{}{}
}

// DirtyIDs returns a snapshot of the current dirty set. Callers that flush
// it should call ClearDirty afterward.
func (w *World) DirtyIDs() []ObjectID {
	ids := make([]ObjectID, 0, len(w.dirty))
	for id := range w.dirty {
		ids = append(ids, id)
	}
	return ids
}

// ClearDirty empties the dirty set.
func (w *World) ClearDirty() {
	w.dirty = make(map[ObjectID]struct{}, len(w.dirty))
}
