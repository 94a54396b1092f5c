package component

import (
	"fmt"

	"github.com/coremud/core/internal/store"
)

// GridPoint is an integer lattice coordinate.
type GridPoint struct{ X, Y, Z int64 }

// MarshalText renders a GridPoint as "x,y,z", letting it serve as a JSON
// object key in Map/Expanse POI maps, since those containers serialize
// their POIs.
func (p GridPoint) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d,%d,%d", p.X, p.Y, p.Z)), nil
}

func (p *GridPoint) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%d,%d,%d", &p.X, &p.Y, &p.Z)
	return err
}

// SectorPoint is a floating-point coordinate.
type SectorPoint struct{ X, Y, Z float64 }

// MarshalText renders a SectorPoint as "x,y,z" for use as a JSON object key.
func (p SectorPoint) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%g,%g,%g", p.X, p.Y, p.Z)), nil
}

func (p *SectorPoint) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%g,%g,%g", &p.X, &p.Y, &p.Z)
	return err
}

// GridBounds limits the valid coordinate range of a Map or Expanse.
type GridBounds struct {
	MinX, MaxX, MinY, MaxY, MinZ, MaxZ int64
}

// Contains reports whether p falls within the bounds (inclusive).
func (b GridBounds) Contains(p GridPoint) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY &&
		p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// SectorBounds limits the valid coordinate range of a Space.
type SectorBounds struct {
	MinX, MaxX, MinY, MaxY, MinZ, MaxZ float64
}

func (b SectorBounds) Contains(p SectorPoint) bool {
	return p.X >= b.MinX && p.X <= b.MaxX &&
		p.Y >= b.MinY && p.Y <= b.MaxY &&
		p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// RoomLocation places an entity inside a keyed room of an Area.
// Mutually exclusive with GridLocation/SectorLocation.
type RoomLocation struct {
	RoomID int64
}

// GridLocation places an entity on the integer lattice of a Map or Expanse.
// Mutually exclusive with RoomLocation/SectorLocation.
type GridLocation struct {
	Point GridPoint
}

// SectorLocation places an entity at a floating-point position within a
// Space. Mutually exclusive with RoomLocation/GridLocation.
type SectorLocation struct {
	Point SectorPoint
}

// Area is a collection of rooms indexed by RoomId, for traditional
// exit-linked MUD designs.
type Area struct {
	Rooms map[int64]store.Entity
}

// Room is the lightweight entity representing one room within an Area.
type Room struct {
	AreaEntity store.Entity
	RoomID     int64
}

// Map is an integer-lattice container where only explicitly placed points
// of interest are valid locations. Who currently occupies a
// given point is a Location/Contents query (relation.LocationGraph), not
// a separately maintained index.
type Map struct {
	Bounds GridBounds
	POI    map[GridPoint]store.Entity
}

// Expanse is an integer-lattice container where every point within Bounds
// is a valid location, sparse POIs aside.
type Expanse struct {
	Bounds GridBounds
	POI    map[GridPoint]store.Entity
}

// Space is a floating-point container, the Sector analogue of Expanse.
type Space struct {
	Bounds SectorBounds
	POI    map[SectorPoint]store.Entity
}
