package relation

import (
	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/store"
)

// LocationGraph is the Location/Contents relation: where an
// entity physically is, as a single forward edge to a container entity
// carrying a type tag and an offset, plus the matching room/grid/sector
// locator component (mutually exclusive per invariant).
type LocationGraph struct {
	*Graph[component.Location, component.Contents]

	rooms   *store.ComponentStore[component.RoomLocation]
	grids   *store.ComponentStore[component.GridLocation]
	sectors *store.ComponentStore[component.SectorLocation]
}

// NewLocationGraph builds the Location/Contents relation plus the three
// mutually exclusive locator component stores.
func NewLocationGraph(w *store.World) *LocationGraph {
	forward := store.NewComponentStore[component.Location]()
	inverse := store.NewComponentStore[component.Contents]()
	rooms := store.NewComponentStore[component.RoomLocation]()
	grids := store.NewComponentStore[component.GridLocation]()
	sectors := store.NewComponentStore[component.SectorLocation]()
	w.Registry.Register(forward)
	w.Registry.Register(inverse)
	w.Registry.Register(rooms)
	w.Registry.Register(grids)
	w.Registry.Register(sectors)

	g := NewGraph(
		w, forward, inverse,
		func(f *component.Location) store.Entity { return f.Target },
		func(f *component.Location, t store.Entity) { f.Target = t },
		func(i *component.Contents) *[]store.Entity { return &i.Members },
	)
	return &LocationGraph{Graph: g, rooms: rooms, grids: grids, sectors: sectors}
}

// clearLocators drops whichever of the three locator components e carries,
// enforcing their mutual exclusion.
func (g *LocationGraph) clearLocators(e store.Entity) {
	g.rooms.Remove(e)
	g.grids.Remove(e)
	g.sectors.Remove(e)
}

// SetRoomLocation places e in roomID within container (an Area entity).
func (g *LocationGraph) SetRoomLocation(e, container store.Entity, roomID int64) error {
	g.Graph.Clear(e) // forces a fresh forward value so a stale Type/offset can't linger
	if _, err := g.Set(e, container, component.Location{Type: component.LocationRoom}); err != nil {
		return err
	}
	g.clearLocators(e)
	g.rooms.Set(e, &component.RoomLocation{RoomID: roomID})
	return nil
}

// SetGridLocation places e at p within container (a Map or Expanse entity).
func (g *LocationGraph) SetGridLocation(e, container store.Entity, p component.GridPoint) error {
	g.Graph.Clear(e)
	loc := component.Location{
		Type: component.LocationGrid,
		X:    float64(p.X), Y: float64(p.Y), Z: float64(p.Z),
	}
	if _, err := g.Set(e, container, loc); err != nil {
		return err
	}
	g.clearLocators(e)
	g.grids.Set(e, &component.GridLocation{Point: p})
	return nil
}

// SetSectorLocation places e at p within container (a Space entity).
func (g *LocationGraph) SetSectorLocation(e, container store.Entity, p component.SectorPoint) error {
	g.Graph.Clear(e)
	loc := component.Location{
		Type: component.LocationSector,
		X:    p.X, Y: p.Y, Z: p.Z,
	}
	if _, err := g.Set(e, container, loc); err != nil {
		return err
	}
	g.clearLocators(e)
	g.sectors.Set(e, &component.SectorLocation{Point: p})
	return nil
}

// RegisterCascade wires the Location/Contents graph into the world's
// deletion cascade like the embedded Graph, additionally stripping the
// evacuee's RoomLocation/GridLocation/SectorLocation locator component —
// deleting the container leaves no locator for a destination that no
// longer exists.
func (g *LocationGraph) RegisterCascade(w *store.World) {
	w.OnDelete(func(_ *store.World, e store.Entity) {
		g.detach(e)
		if inv, ok := g.inverse.Get(e); ok {
			for _, member := range *g.members(inv) {
				if f, ok := g.forward.Get(member); ok {
					g.setTarget(f, store.Nil)
					g.markDirty(member)
				}
				g.clearLocators(member)
			}
			g.inverse.Remove(e)
		}
	})
}

// ClearLocation removes e's location entirely.
func (g *LocationGraph) ClearLocation(e store.Entity) {
	g.Clear(e)
	g.clearLocators(e)
}

// Contents returns everything located in target.
func (g *LocationGraph) Contents(target store.Entity) []store.Entity {
	return g.Members(target)
}
