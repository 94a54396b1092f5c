package relation

import (
	"encoding/json"
	"fmt"

	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/store"
)

// Relationship edges serialize as the peer's ObjectId rather than the live
// Entity handle, so load order doesn't matter: by the time pass 2 decodes
// any entity, pass 1 has already allocated a slot+handle for every row,
// peer included.

type parentCodec struct{ g *ParentGraph }

func (c *parentCodec) Name() string { return "parent" }

func (c *parentCodec) Has(_ *store.World, e store.Entity) bool {
	_, ok := c.g.Target(e)
	return ok
}

func (c *parentCodec) Encode(w *store.World, e store.Entity) (any, error) {
	target, _ := c.g.Target(e)
	id, ok := w.Pool.ObjectIDOf(target)
	if !ok {
		return nil, fmt.Errorf("parent: target of %v has no ObjectID", e)
	}
	return id, nil
}

func (c *parentCodec) Decode(w *store.World, e store.Entity, raw []byte) error {
	var id store.ObjectID
	if err := json.Unmarshal(raw, &id); err != nil {
		return err
	}
	target, ok := w.Pool.Resolve(id)
	if !ok {
		return fmt.Errorf("parent: unresolved peer %s", id)
	}
	return c.g.SetParent(e, target)
}

// Codec returns the persistence codec for the Parent edge.
func (g *ParentGraph) Codec() store.ComponentCodec { return &parentCodec{g: g} }

type ownerCodec struct{ g *OwnerGraph }

func (c *ownerCodec) Name() string { return "owner" }

func (c *ownerCodec) Has(_ *store.World, e store.Entity) bool {
	_, ok := c.g.Target(e)
	return ok
}

func (c *ownerCodec) Encode(w *store.World, e store.Entity) (any, error) {
	target, _ := c.g.Target(e)
	id, ok := w.Pool.ObjectIDOf(target)
	if !ok {
		return nil, fmt.Errorf("owner: target of %v has no ObjectID", e)
	}
	return id, nil
}

func (c *ownerCodec) Decode(w *store.World, e store.Entity, raw []byte) error {
	var id store.ObjectID
	if err := json.Unmarshal(raw, &id); err != nil {
		return err
	}
	target, ok := w.Pool.Resolve(id)
	if !ok {
		return fmt.Errorf("owner: unresolved peer %s", id)
	}
	return c.g.SetOwner(e, target)
}

// Codec returns the persistence codec for the Owner edge.
func (g *OwnerGraph) Codec() store.ComponentCodec { return &ownerCodec{g: g} }

type locationDoc struct {
	Target store.ObjectID            `json:"target"`
	Type   component.LocationType    `json:"type"`
	RoomID *int64                    `json:"roomId,omitempty"`
	Grid   *component.GridPoint      `json:"grid,omitempty"`
	Sector *component.SectorPoint    `json:"sector,omitempty"`
}

type locationCodec struct{ g *LocationGraph }

func (c *locationCodec) Name() string { return "location" }

func (c *locationCodec) Has(_ *store.World, e store.Entity) bool {
	_, ok := c.g.Target(e)
	return ok
}

func (c *locationCodec) Encode(w *store.World, e store.Entity) (any, error) {
	target, _ := c.g.Target(e)
	id, ok := w.Pool.ObjectIDOf(target)
	if !ok {
		return nil, fmt.Errorf("location: target of %v has no ObjectID", e)
	}
	loc, _ := c.g.forward.Get(e)
	doc := locationDoc{Target: id, Type: loc.Type}
	switch loc.Type {
	case component.LocationRoom:
		if rl, ok := c.g.rooms.Get(e); ok {
			doc.RoomID = &rl.RoomID
		}
	case component.LocationGrid:
		if gl, ok := c.g.grids.Get(e); ok {
			doc.Grid = &gl.Point
		}
	case component.LocationSector:
		if sl, ok := c.g.sectors.Get(e); ok {
			doc.Sector = &sl.Point
		}
	}
	return doc, nil
}

func (c *locationCodec) Decode(w *store.World, e store.Entity, raw []byte) error {
	var doc locationDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	target, ok := w.Pool.Resolve(doc.Target)
	if !ok {
		return fmt.Errorf("location: unresolved peer %s", doc.Target)
	}
	switch doc.Type {
	case component.LocationRoom:
		if doc.RoomID == nil {
			return fmt.Errorf("location: room type missing roomId")
		}
		return c.g.SetRoomLocation(e, target, *doc.RoomID)
	case component.LocationGrid:
		if doc.Grid == nil {
			return fmt.Errorf("location: grid type missing grid point")
		}
		return c.g.SetGridLocation(e, target, *doc.Grid)
	case component.LocationSector:
		if doc.Sector == nil {
			return fmt.Errorf("location: sector type missing sector point")
		}
		return c.g.SetSectorLocation(e, target, *doc.Sector)
	default:
		return fmt.Errorf("location: unknown type %d", doc.Type)
	}
}

// Codec returns the persistence codec for the Location edge plus whichever
// room/grid/sector locator is active.
func (g *LocationGraph) Codec() store.ComponentCodec { return &locationCodec{g: g} }

// Codecs returns all three relationship codecs, ready to register on a
// World's codec list.
func (m *Manager) Codecs() []store.ComponentCodec {
	return []store.ComponentCodec{
		m.Parent.Codec(),
		m.Owner.Codec(),
		m.Location.Codec(),
	}
}
