package relation

import (
	"testing"

	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/store"
)

func newTestManager() (*store.World, *Manager) {
	w := store.NewWorld(func() int64 { return 100 })
	return w, NewManager(w)
}

func TestParentRejectsCycle(t *testing.T) {
	w, m := newTestManager()
	a, _ := w.CreateEntity()
	b, _ := w.CreateEntity()
	c, _ := w.CreateEntity()

	if err := m.Parent.SetParent(b, a); err != nil {
		t.Fatalf("SetParent(b, a): %v", err)
	}
	if err := m.Parent.SetParent(c, b); err != nil {
		t.Fatalf("SetParent(c, b): %v", err)
	}
	if err := m.Parent.SetParent(a, c); err != ErrCyclicRelation {
		t.Fatalf("expected ErrCyclicRelation closing the loop, got %v", err)
	}
}

func TestParentChildrenInverse(t *testing.T) {
	w, m := newTestManager()
	parent, _ := w.CreateEntity()
	child1, _ := w.CreateEntity()
	child2, _ := w.CreateEntity()

	must(t, m.Parent.SetParent(child1, parent))
	must(t, m.Parent.SetParent(child2, parent))

	kids := m.Parent.Children(parent)
	if len(kids) != 2 {
		t.Fatalf("expected 2 children, got %d", len(kids))
	}

	must(t, m.Parent.SetParent(child1, store.Nil))
	kids = m.Parent.Children(parent)
	if len(kids) != 1 || kids[0] != child2 {
		t.Fatalf("expected only child2 left, got %v", kids)
	}
}

func TestLocationMutualExclusion(t *testing.T) {
	w, m := newTestManager()
	room, _ := w.CreateEntity()
	grid, _ := w.CreateEntity()
	e, _ := w.CreateEntity()

	must(t, m.Location.SetRoomLocation(e, room, 7))
	if len(m.Location.Contents(room)) != 1 {
		t.Fatalf("expected e in room contents")
	}

	must(t, m.Location.SetGridLocation(e, grid, component.GridPoint{X: 1, Y: 2, Z: 3}))
	if len(m.Location.Contents(room)) != 0 {
		t.Fatalf("expected e detached from old room contents after re-locating")
	}
	if len(m.Location.Contents(grid)) != 1 {
		t.Fatalf("expected e in grid contents")
	}
}

func TestDeleteCascadeOrphansChildren(t *testing.T) {
	w, m := newTestManager()
	parent, _ := w.CreateEntity()
	child, _ := w.CreateEntity()
	must(t, m.Parent.SetParent(child, parent))

	w.Delete(parent)

	if _, ok := m.Parent.Target(child); ok {
		t.Fatalf("expected child's Parent edge to be cleared once parent is deleted")
	}
}

func TestSetMarksDirty(t *testing.T) {
	w, m := newTestManager()
	parent, _ := w.CreateEntity()
	child, _ := w.CreateEntity()
	w.ClearDirty()

	must(t, m.Parent.SetParent(child, parent))

	id, ok := w.Pool.ObjectIDOf(child)
	if !ok {
		t.Fatal("child should resolve to an ObjectID")
	}
	found := false
	for _, d := range w.DirtyIDs() {
		if d == id {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected child's ObjectID in the dirty set after SetParent")
	}
}

func TestLoadingSuppressesDirty(t *testing.T) {
	w, m := newTestManager()
	parent, _ := w.CreateEntity()
	child, _ := w.CreateEntity()
	w.ClearDirty()
	w.SetLoading(true)

	must(t, m.Parent.SetParent(child, parent))

	if len(w.DirtyIDs()) != 0 {
		t.Fatalf("expected no dirty entries while loading, got %d", len(w.DirtyIDs()))
	}
	w.SetLoading(false)
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
