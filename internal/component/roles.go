package component

import "github.com/coremud/core/internal/store"

// Shape flags distinguish the broad role an entity plays, used to compute
// an entity's ShapeKey for command-cache lookups.
const (
	ShapeItem uint8 = 1 << iota
	ShapeCharacter
	ShapeNPC
	ShapePlayer
	ShapeVehicle
)

// Item marks an entity as a physical object that can be carried, worn, or
// placed in a location.
type Item struct{}

// Character marks an entity as something that can act: move, speak, hold
// items. NPCs and player puppets both carry this.
type Character struct {
	ShapeFlags uint8
}

// NPC marks a Character as non-player-controlled.
type NPC struct{}

// Player marks a Character as controlled by an account, linking back to
// the owning account row.
type Player struct {
	AccountID int64
}

// Vehicle marks an entity as a mobile container other entities can occupy.
type Vehicle struct{}

// Prototype marks an entity as a template others may inherit fields from
// via the Parent relation, with its fields held in the prototypes table.
type Prototype struct {
	Name string
}

// ShapeKeyOf computes the 5-bit role bitset for an entity used to key the
// sorted command cache.
func ShapeKeyOf(w *store.World, hasItem, hasCharacter, hasNPC, hasPlayer, hasVehicle bool) uint8 {
	var key uint8
	if hasItem {
		key |= ShapeItem
	}
	if hasCharacter {
		key |= ShapeCharacter
	}
	if hasNPC {
		key |= ShapeNPC
	}
	if hasPlayer {
		key |= ShapePlayer
	}
	if hasVehicle {
		key |= ShapeVehicle
	}
	return key
}
