package relation

import (
	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/store"
)

// OwnerGraph is the Owner/Assets relation: who possesses an
// entity, independent of where it physically is.
type OwnerGraph struct {
	*Graph[component.Owner, component.Assets]
}

// NewOwnerGraph builds the Owner/Assets relation over freshly registered
// component stores.
func NewOwnerGraph(w *store.World) *OwnerGraph {
	forward := store.NewComponentStore[component.Owner]()
	inverse := store.NewComponentStore[component.Assets]()
	w.Registry.Register(forward)
	w.Registry.Register(inverse)

	g := NewGraph(
		w, forward, inverse,
		func(f *component.Owner) store.Entity { return f.Target },
		func(f *component.Owner, t store.Entity) { f.Target = t },
		func(i *component.Assets) *[]store.Entity { return &i.Members },
	)
	return &OwnerGraph{g}
}

// SetOwner points e's Owner edge at target (store.Nil clears it).
func (g *OwnerGraph) SetOwner(e, target store.Entity) error {
	_, err := g.Set(e, target, component.Owner{})
	return err
}

// Assets returns everything target owns.
func (g *OwnerGraph) Assets(target store.Entity) []store.Entity {
	return g.Members(target)
}
