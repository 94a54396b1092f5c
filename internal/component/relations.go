package component

import "github.com/coremud/core/internal/store"

// LocationType tags which kind of spatial locator a Location edge's target
// uses, and the floating-point offset within it.
type LocationType uint8

const (
	LocationNone LocationType = iota
	LocationRoom
	LocationGrid
	LocationSector
)

// Parent is the single forward edge of the Parent/Children relation:
// prototype/inheritance, or simply a nested thing.
type Parent struct {
	Target store.Entity
}

// Children is the inverse list of Parent.
type Children struct {
	Members []store.Entity
}

// Owner is the single forward edge of the Owner/Assets relation.
type Owner struct {
	Target store.Entity
}

// Assets is the inverse list of Owner.
type Assets struct {
	Members []store.Entity
}

// Location is the single forward edge of the Location/Contents relation,
// carrying the type tag and floating-point offset within the target.
type Location struct {
	Target store.Entity
	Type   LocationType
	X, Y, Z float64
}

// Contents is the inverse list of Location.
type Contents struct {
	Members []store.Entity
}
