// Package component defines the fixed, recognized component kinds. The
// schema stays open — content may register further component kinds of its
// own via store.World.RegisterComponentCodec
// and store.Registry.Register; these are simply the ones the core itself
// understands.
package component

import "github.com/coremud/core/internal/store"

// Name is the entity's proper name, e.g. "a battered shield" or "Elora".
type Name struct{ store.Text }

// ShortDescription is a one-liner used in listings.
type ShortDescription struct{ store.Text }

// RoomDescription is how the entity appears in a room listing.
type RoomDescription struct{ store.Text }

// LookDescription is the detailed examine text.
type LookDescription struct{ store.Text }
