package relation

import "github.com/coremud/core/internal/store"

// Manager owns the three relationship graphs and wires their deletion
// cascades into the world they're built over. Core constructs exactly one
// Manager per World.
type Manager struct {
	Parent   *ParentGraph
	Owner    *OwnerGraph
	Location *LocationGraph
}

// NewManager builds all three graphs over w and registers their cascade
// hooks, so deleting any entity correctly detaches it from, and orphans
// anything attached to, each relation.
func NewManager(w *store.World) *Manager {
	m := &Manager{
		Parent:   NewParentGraph(w),
		Owner:    NewOwnerGraph(w),
		Location: NewLocationGraph(w),
	}
	m.Parent.RegisterCascade(w)
	m.Owner.RegisterCascade(w)
	m.Location.RegisterCascade(w)
	return m
}
