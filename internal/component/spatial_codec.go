package component

import (
	"encoding/json"
	"fmt"

	"github.com/coremud/core/internal/store"
)

// Container components serialize their POI/room maps as the peer's
// ObjectId, exactly like the relationship edges. The peer entities are not
// inlined: each peer's own row is decoded independently during the same
// pass 2 sweep, so only the reference travels here.

type areaDoc struct {
	Rooms map[int64]store.ObjectID `json:"rooms"`
}

type areaCodec struct{ store *store.ComponentStore[Area] }

// AreaCodec returns the persistence codec for Area.
func AreaCodec(cs *store.ComponentStore[Area]) store.ComponentCodec { return &areaCodec{cs} }

func (c *areaCodec) Name() string                               { return "area" }
func (c *areaCodec) Has(_ *store.World, e store.Entity) bool     { return c.store.Has(e) }

func (c *areaCodec) Encode(w *store.World, e store.Entity) (any, error) {
	a, _ := c.store.Get(e)
	doc := areaDoc{Rooms: make(map[int64]store.ObjectID, len(a.Rooms))}
	for roomID, ent := range a.Rooms {
		id, ok := w.Pool.ObjectIDOf(ent)
		if !ok {
			return nil, fmt.Errorf("area: room %d entity has no ObjectID", roomID)
		}
		doc.Rooms[roomID] = id
	}
	return doc, nil
}

func (c *areaCodec) Decode(w *store.World, e store.Entity, raw []byte) error {
	var doc areaDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	a := &Area{Rooms: make(map[int64]store.Entity, len(doc.Rooms))}
	for roomID, id := range doc.Rooms {
		ent, ok := w.Pool.Resolve(id)
		if !ok {
			return fmt.Errorf("area: unresolved room peer %s", id)
		}
		a.Rooms[roomID] = ent
	}
	c.store.Set(e, a)
	return nil
}

type roomDoc struct {
	Area   store.ObjectID `json:"area"`
	RoomID int64          `json:"roomId"`
}

type roomCodec struct{ store *store.ComponentStore[Room] }

// RoomCodec returns the persistence codec for Room.
func RoomCodec(cs *store.ComponentStore[Room]) store.ComponentCodec { return &roomCodec{cs} }

func (c *roomCodec) Name() string                           { return "room" }
func (c *roomCodec) Has(_ *store.World, e store.Entity) bool { return c.store.Has(e) }

func (c *roomCodec) Encode(w *store.World, e store.Entity) (any, error) {
	r, _ := c.store.Get(e)
	id, ok := w.Pool.ObjectIDOf(r.AreaEntity)
	if !ok {
		return nil, fmt.Errorf("room: area entity has no ObjectID")
	}
	return roomDoc{Area: id, RoomID: r.RoomID}, nil
}

func (c *roomCodec) Decode(w *store.World, e store.Entity, raw []byte) error {
	var doc roomDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	ent, ok := w.Pool.Resolve(doc.Area)
	if !ok {
		return fmt.Errorf("room: unresolved area peer %s", doc.Area)
	}
	c.store.Set(e, &Room{AreaEntity: ent, RoomID: doc.RoomID})
	return nil
}

// gridContainerDoc is shared by Map and Expanse, which differ only in
// whether a bare GridLocation outside POI is permitted.
type gridContainerDoc struct {
	Bounds GridBounds                 `json:"bounds"`
	POI    map[GridPoint]store.ObjectID `json:"poi"`
}

func encodeGridPOI(w *store.World, bounds GridBounds, poi map[GridPoint]store.Entity) (gridContainerDoc, error) {
	doc := gridContainerDoc{Bounds: bounds, POI: make(map[GridPoint]store.ObjectID, len(poi))}
	for p, ent := range poi {
		id, ok := w.Pool.ObjectIDOf(ent)
		if !ok {
			return doc, fmt.Errorf("grid container: POI %v entity has no ObjectID", p)
		}
		doc.POI[p] = id
	}
	return doc, nil
}

func decodeGridPOI(w *store.World, doc gridContainerDoc) (map[GridPoint]store.Entity, error) {
	poi := make(map[GridPoint]store.Entity, len(doc.POI))
	for p, id := range doc.POI {
		ent, ok := w.Pool.Resolve(id)
		if !ok {
			return nil, fmt.Errorf("grid container: unresolved POI peer %s", id)
		}
		poi[p] = ent
	}
	return poi, nil
}

type mapCodec struct{ store *store.ComponentStore[Map] }

// MapCodec returns the persistence codec for Map.
func MapCodec(cs *store.ComponentStore[Map]) store.ComponentCodec { return &mapCodec{cs} }

func (c *mapCodec) Name() string                           { return "map" }
func (c *mapCodec) Has(_ *store.World, e store.Entity) bool { return c.store.Has(e) }

func (c *mapCodec) Encode(w *store.World, e store.Entity) (any, error) {
	m, _ := c.store.Get(e)
	return encodeGridPOI(w, m.Bounds, m.POI)
}

func (c *mapCodec) Decode(w *store.World, e store.Entity, raw []byte) error {
	var doc gridContainerDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	poi, err := decodeGridPOI(w, doc)
	if err != nil {
		return err
	}
	c.store.Set(e, &Map{Bounds: doc.Bounds, POI: poi})
	return nil
}

type expanseCodec struct{ store *store.ComponentStore[Expanse] }

// ExpanseCodec returns the persistence codec for Expanse.
func ExpanseCodec(cs *store.ComponentStore[Expanse]) store.ComponentCodec { return &expanseCodec{cs} }

func (c *expanseCodec) Name() string                           { return "expanse" }
func (c *expanseCodec) Has(_ *store.World, e store.Entity) bool { return c.store.Has(e) }

func (c *expanseCodec) Encode(w *store.World, e store.Entity) (any, error) {
	x, _ := c.store.Get(e)
	return encodeGridPOI(w, x.Bounds, x.POI)
}

func (c *expanseCodec) Decode(w *store.World, e store.Entity, raw []byte) error {
	var doc gridContainerDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	poi, err := decodeGridPOI(w, doc)
	if err != nil {
		return err
	}
	c.store.Set(e, &Expanse{Bounds: doc.Bounds, POI: poi})
	return nil
}

type spaceDoc struct {
	Bounds SectorBounds                 `json:"bounds"`
	POI    map[SectorPoint]store.ObjectID `json:"poi"`
}

type spaceCodec struct{ store *store.ComponentStore[Space] }

// SpaceCodec returns the persistence codec for Space.
func SpaceCodec(cs *store.ComponentStore[Space]) store.ComponentCodec { return &spaceCodec{cs} }

func (c *spaceCodec) Name() string                           { return "space" }
func (c *spaceCodec) Has(_ *store.World, e store.Entity) bool { return c.store.Has(e) }

func (c *spaceCodec) Encode(w *store.World, e store.Entity) (any, error) {
	s, _ := c.store.Get(e)
	doc := spaceDoc{Bounds: s.Bounds, POI: make(map[SectorPoint]store.ObjectID, len(s.POI))}
	for p, ent := range s.POI {
		id, ok := w.Pool.ObjectIDOf(ent)
		if !ok {
			return doc, fmt.Errorf("space: POI %v entity has no ObjectID", p)
		}
		doc.POI[p] = id
	}
	return doc, nil
}

func (c *spaceCodec) Decode(w *store.World, e store.Entity, raw []byte) error {
	var doc spaceDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	poi := make(map[SectorPoint]store.Entity, len(doc.POI))
	for p, id := range doc.POI {
		ent, ok := w.Pool.Resolve(id)
		if !ok {
			return fmt.Errorf("space: unresolved POI peer %s", id)
		}
		poi[p] = ent
	}
	c.store.Set(e, &Space{Bounds: doc.Bounds, POI: poi})
	return nil
}
