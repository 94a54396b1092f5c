package store

import "testing"

func TestWorldDirtyTrackingRespectsLoading(t *testing.T) {
	w := NewWorld(func() int64 { return 42 })

	_, id := w.CreateEntity()
	if len(w.DirtyIDs()) != 1 {
		t.Fatalf("expected creation to mark dirty")
	}
	w.ClearDirty()

	w.SetLoading(true)
	w.MarkDirty(id)
	if len(w.DirtyIDs()) != 0 {
		t.Fatalf("expected dirty marking to be suppressed while loading")
	}
	w.SetLoading(false)
	w.MarkDirty(id)
	if len(w.DirtyIDs()) != 1 {
		t.Fatalf("expected dirty marking to resume once loading ends")
	}
}

func TestWorldDeleteRunsCascadeBeforeClearingComponents(t *testing.T) {
	w := NewWorld(func() int64 { return 1 })
	names := NewComponentStore[string]()
	w.Registry.Register(names)

	e, _ := w.CreateEntity()
	name := "grumpy gnome"
	names.Set(e, &name)

	var sawComponentBeforeClear bool
	w.OnDelete(func(w *World, ent Entity) {
		if ent == e && names.Has(e) {
			sawComponentBeforeClear = true
		}
	})

	w.Delete(e)
	if !sawComponentBeforeClear {
		t.Fatalf("expected onDelete hooks to observe components before they're cleared")
	}
	if names.Has(e) {
		t.Fatalf("expected components to be cleared after delete")
	}
	if w.Pool.Alive(e) {
		t.Fatalf("expected entity to be dead after delete")
	}
}

func TestWorldLifecycleHooksFireForRuntimeCreateAndDeleteOnly(t *testing.T) {
	w := NewWorld(func() int64 { return 7 })

	var created, deleted []ObjectID
	w.OnEntityCreated(func(_ Entity, id ObjectID) { created = append(created, id) })
	w.OnEntityDeleted(func(_ Entity, id ObjectID) { deleted = append(deleted, id) })

	e, id := w.CreateEntity()
	if len(created) != 1 || created[0] != id {
		t.Fatalf("expected OnEntityCreated to fire once with the new id, got %v", created)
	}

	w.Delete(e)
	if len(deleted) != 1 || deleted[0] != id {
		t.Fatalf("expected OnEntityDeleted to fire once with the former id, got %v", deleted)
	}

	// A bulk-load style allocation (Pool.HydrateAt) bypasses CreateEntity
	// entirely, so it must not also fire OnEntityCreated.
	w.Pool.HydrateAt(5, 99)
	if len(created) != 1 {
		t.Fatalf("expected HydrateAt not to fire OnEntityCreated, got %d calls", len(created))
	}
}
