package relation

import (
	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/store"
)

// ParentGraph is the Parent/Children relation: a nested-thing
// or prototype-inheritance edge, single forward target with an inverse
// child list.
type ParentGraph struct {
	*Graph[component.Parent, component.Children]
}

// NewParentGraph builds the Parent/Children relation over freshly
// registered component stores, and registers them with w so deletion
// clears them like any other component.
func NewParentGraph(w *store.World) *ParentGraph {
	forward := store.NewComponentStore[component.Parent]()
	inverse := store.NewComponentStore[component.Children]()
	w.Registry.Register(forward)
	w.Registry.Register(inverse)

	g := NewGraph(
		w, forward, inverse,
		func(f *component.Parent) store.Entity { return f.Target },
		func(f *component.Parent, t store.Entity) { f.Target = t },
		func(i *component.Children) *[]store.Entity { return &i.Members },
	)
	return &ParentGraph{g}
}

// SetParent points e's Parent edge at target (store.Nil clears it).
func (g *ParentGraph) SetParent(e, target store.Entity) error {
	_, err := g.Set(e, target, component.Parent{})
	return err
}

// Children returns e's direct children.
func (g *ParentGraph) Children(e store.Entity) []store.Entity {
	return g.Members(e)
}
