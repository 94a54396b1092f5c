package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/hooks"
	"github.com/coremud/core/internal/relation"
	"github.com/coremud/core/internal/store"
)

// alwaysClassifier treats every candidate as matching whatever Type is
// asked for, since these tests don't exercise type filtering.
type alwaysClassifier struct{}

func (alwaysClassifier) Is(*store.World, store.Entity, Type) bool { return true }

func newTestWorld(t *testing.T) (*store.World, *relation.Manager, *hooks.CoreHooks) {
	t.Helper()
	w := store.NewWorld(func() int64 { return 100 })
	names := store.NewComponentStore[component.Name]()
	shorts := store.NewComponentStore[component.ShortDescription]()
	looks := store.NewComponentStore[component.LookDescription]()
	w.Registry.Register(names)
	w.Registry.Register(shorts)
	w.Registry.Register(looks)
	h := hooks.New(names, shorts, looks)
	rel := relation.NewManager(w)
	return w, rel, h
}

func named(t *testing.T, w *store.World, names *store.ComponentStore[component.Name], e store.Entity, name string) {
	t.Helper()
	names.Set(e, &component.Name{Text: store.NewText(w.Interner, nil, name)})
}

func TestSearchNumberedPrefixReturnsNthMatch(t *testing.T) {
	w, rel, h := newTestWorld(t)
	names := store.NewComponentStore[component.Name]()
	w.Registry.Register(names)
	h.DisplayName = func(w *store.World, e store.Entity) string {
		if n, ok := names.Get(e); ok {
			return n.Clean
		}
		return ""
	}

	room, _ := w.CreateEntity()
	seeker, _ := w.CreateEntity()
	require.NoError(t, rel.Location.SetRoomLocation(seeker, room, 1))

	guard, _ := w.CreateEntity()
	named(t, w, names, guard, "a guard")
	require.NoError(t, rel.Location.SetRoomLocation(guard, room, 1))

	orc1, _ := w.CreateEntity()
	named(t, w, names, orc1, "an orc")
	require.NoError(t, rel.Location.SetRoomLocation(orc1, room, 1))

	orc2, _ := w.CreateEntity()
	named(t, w, names, orc2, "an orc")
	require.NoError(t, rel.Location.SetRoomLocation(orc2, room, 1))

	s := New(w, rel, h, alwaysClassifier{}, seeker).Room(room)
	got := s.Find("2.orc")
	require.Len(t, got, 1)
	require.Equal(t, orc2, got[0])
}

func TestSearchAllPrefixReturnsEveryMatch(t *testing.T) {
	w, rel, h := newTestWorld(t)
	names := store.NewComponentStore[component.Name]()
	w.Registry.Register(names)
	h.DisplayName = func(w *store.World, e store.Entity) string {
		if n, ok := names.Get(e); ok {
			return n.Clean
		}
		return ""
	}

	room, _ := w.CreateEntity()
	seeker, _ := w.CreateEntity()
	require.NoError(t, rel.Location.SetRoomLocation(seeker, room, 1))

	var orcs []store.Entity
	for i := 0; i < 3; i++ {
		orc, _ := w.CreateEntity()
		named(t, w, names, orc, "an orc")
		require.NoError(t, rel.Location.SetRoomLocation(orc, room, 1))
		orcs = append(orcs, orc)
	}
	guard, _ := w.CreateEntity()
	named(t, w, names, guard, "a guard")
	require.NoError(t, rel.Location.SetRoomLocation(guard, room, 1))

	s := New(w, rel, h, alwaysClassifier{}, seeker).Room(room).UseAll(true)
	got := s.Find("all.orc")
	require.Len(t, got, 3)
	require.Equal(t, orcs, got)
}

func TestSearchHereGatedByFlag(t *testing.T) {
	w, rel, h := newTestWorld(t)
	room, _ := w.CreateEntity()
	seeker, _ := w.CreateEntity()
	require.NoError(t, rel.Location.SetRoomLocation(seeker, room, 1))

	denied := New(w, rel, h, alwaysClassifier{}, seeker).UseHere(false)
	require.Nil(t, denied.Find("here"))

	allowed := New(w, rel, h, alwaysClassifier{}, seeker).UseHere(true)
	got := allowed.Find("here")
	require.Len(t, got, 1)
	require.Equal(t, room, got[0])
}

func TestSearchSelfResolvesToSeeker(t *testing.T) {
	w, rel, h := newTestWorld(t)
	seeker, _ := w.CreateEntity()

	s := New(w, rel, h, alwaysClassifier{}, seeker)
	got := s.Find("self")
	require.Len(t, got, 1)
	require.Equal(t, seeker, got[0])

	got = s.Find("me")
	require.Len(t, got, 1)
	require.Equal(t, seeker, got[0])
}

func TestSearchByObjectIDUsesGeneration(t *testing.T) {
	w, rel, h := newTestWorld(t)
	seeker, _ := w.CreateEntity()
	target, id := w.CreateEntity()

	s := New(w, rel, h, alwaysClassifier{}, seeker).UseID(true)
	got := s.Find(id.String())
	require.Len(t, got, 1)
	require.Equal(t, target, got[0])

	w.Delete(target)
	got = s.Find(id.String())
	require.Nil(t, got)
}
