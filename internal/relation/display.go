package relation

import (
	"fmt"

	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/store"
)

// DefaultDisplayName renders e's Name component, falling back to its
// object reference when the entity carries none. CoreHooks.DisplayName
// starts out pointing here;
// content can replace it wholesale.
func DefaultDisplayName(w *store.World, names *store.ComponentStore[component.Name], e store.Entity) string {
	if n, ok := names.Get(e); ok && n.Clean != "" {
		return n.Clean
	}
	if id, ok := w.Pool.ObjectIDOf(e); ok {
		return id.String()
	}
	return "something"
}

// DefaultRoomLine renders the line used when e is listed among a room's
// (or other container's) contents: its ShortDescription if set, else its
// display name.
func DefaultRoomLine(w *store.World, shorts *store.ComponentStore[component.ShortDescription], names *store.ComponentStore[component.Name], e store.Entity) string {
	if sd, ok := shorts.Get(e); ok && sd.Clean != "" {
		return sd.Clean
	}
	return DefaultDisplayName(w, names, e)
}

// DefaultRenderAppearance renders the full look text for e: its
// LookDescription if set, else a generic sentence built from its display
// name.
func DefaultRenderAppearance(w *store.World, looks *store.ComponentStore[component.LookDescription], names *store.ComponentStore[component.Name], e store.Entity) string {
	if ld, ok := looks.Get(e); ok && ld.Clean != "" {
		return ld.Clean
	}
	return fmt.Sprintf("You see nothing special about %s.", DefaultDisplayName(w, names, e))
}
