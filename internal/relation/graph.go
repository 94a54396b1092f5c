// Package relation implements the three orthogonal relationship graphs:
// Parent/Children, Owner/Assets, and Location/Contents. Each is a forward
// edge component paired with an inverse membership list, kept consistent
// by Graph, with acyclicity enforced on Set and cleanup wired into
// store.World's deletion cascade.
package relation

import (
	"errors"

	"github.com/coremud/core/internal/store"
)

// ErrCyclicRelation is returned by Set when the requested edge would make
// an entity its own ancestor through the forward chain.
var ErrCyclicRelation = errors.New("relation: would introduce a cycle")

// Graph generalizes a single-forward-edge/inverse-list relation over a
// forward component type F and an inverse component type I. F and I can be
// any shape; accessor functions describe where the edge and the member
// list live, so the same machinery serves Parent/Children, Owner/Assets,
// and (wrapped further by LocationGraph) Location/Contents.
type Graph[F any, I any] struct {
	world   *store.World
	forward *store.ComponentStore[F]
	inverse *store.ComponentStore[I]

	getTarget func(*F) store.Entity
	setTarget func(*F, store.Entity)
	members   func(*I) *[]store.Entity
}

// NewGraph builds a Graph over the given component stores and accessors.
func NewGraph[F any, I any](
	w *store.World,
	forward *store.ComponentStore[F],
	inverse *store.ComponentStore[I],
	getTarget func(*F) store.Entity,
	setTarget func(*F, store.Entity),
	members func(*I) *[]store.Entity,
) *Graph[F, I] {
	return &Graph[F, I]{
		world:     w,
		forward:   forward,
		inverse:   inverse,
		getTarget: getTarget,
		setTarget: setTarget,
		members:   members,
	}
}

// markDirty marks e dirty through the world, a no-op if e is no longer
// resolvable (e.g. mid-deletion cascade).
func (g *Graph[F, I]) markDirty(e store.Entity) {
	if id, ok := g.world.Pool.ObjectIDOf(e); ok {
		g.world.MarkDirty(id)
	}
}

// Target returns e's current forward edge, if any.
func (g *Graph[F, I]) Target(e store.Entity) (store.Entity, bool) {
	f, ok := g.forward.Get(e)
	if !ok {
		return store.Nil, false
	}
	t := g.getTarget(f)
	if t == store.Nil {
		return store.Nil, false
	}
	return t, true
}

// Members returns the inverse list attached to target, i.e. every entity
// whose forward edge currently points at it.
func (g *Graph[F, I]) Members(target store.Entity) []store.Entity {
	inv, ok := g.inverse.Get(target)
	if !ok {
		return nil
	}
	return *g.members(inv)
}

// wouldCycle walks the forward chain starting at newTarget and reports
// whether it ever reaches e.
func (g *Graph[F, I]) wouldCycle(e, newTarget store.Entity) bool {
	cur := newTarget
	visited := make(map[store.Entity]bool)
	for cur != store.Nil {
		if cur == e {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		next, ok := g.Target(cur)
		if !ok {
			return false
		}
		cur = next
	}
	return false
}

func removeEntity(members []store.Entity, e store.Entity) []store.Entity {
	out := members[:0]
	for _, m := range members {
		if m != e {
			out = append(out, m)
		}
	}
	return out
}

// detach removes e from its current target's inverse list, if it has one.
func (g *Graph[F, I]) detach(e store.Entity) {
	f, ok := g.forward.Get(e)
	if !ok {
		return
	}
	old := g.getTarget(f)
	if old == store.Nil {
		return
	}
	if inv, ok := g.inverse.Get(old); ok {
		m := g.members(inv)
		*m = removeEntity(*m, e)
	}
}

// Set points e's forward edge at target, detaching any previous edge
// first. zero is the F value to start from when e has no forward
// component yet (lets callers with extra fields, like Location, pre-fill
// them before the edge itself is recorded).
func (g *Graph[F, I]) Set(e, target store.Entity, zero F) (*F, error) {
	if target != store.Nil && g.wouldCycle(e, target) {
		return nil, ErrCyclicRelation
	}
	g.detach(e)
	defer g.markDirty(e)

	if target == store.Nil {
		g.forward.Remove(e)
		return nil, nil
	}

	f, ok := g.forward.Get(e)
	if !ok {
		nf := zero
		f = &nf
	}
	g.setTarget(f, target)
	g.forward.Set(e, f)

	inv, ok := g.inverse.Get(target)
	if !ok {
		var zi I
		inv = &zi
	}
	m := g.members(inv)
	*m = append(*m, e)
	g.inverse.Set(target, inv)
	return f, nil
}

// Clear removes e's forward edge entirely, detaching it from its target's
// inverse list.
func (g *Graph[F, I]) Clear(e store.Entity) {
	g.detach(e)
	g.forward.Remove(e)
	g.markDirty(e)
}

// RegisterCascade wires this graph into the world's deletion cascade:
// deleting e detaches it from whatever it pointed at, and
// orphans every entity that pointed at e (their forward edge is cleared
// rather than left dangling).
func (g *Graph[F, I]) RegisterCascade(w *store.World) {
	w.OnDelete(func(_ *store.World, e store.Entity) {
		g.detach(e)
		if inv, ok := g.inverse.Get(e); ok {
			for _, member := range *g.members(inv) {
				if f, ok := g.forward.Get(member); ok {
					g.setTarget(f, store.Nil)
					g.markDirty(member)
				}
			}
			g.inverse.Remove(e)
		}
	})
}
