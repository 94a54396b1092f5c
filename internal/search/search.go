// Package search implements keyword disambiguation over an entity's
// visible containers: ordinal prefixes ("2.sword"), "all.", "self"/"me",
// "here", and raw object-id references.
package search

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coremud/core/internal/hooks"
	"github.com/coremud/core/internal/relation"
	"github.com/coremud/core/internal/store"
)

// Type filters candidates by role.
type Type int

const (
	Anything Type = iota
	Characters
	Players
	NPCs
	Vehicles
	Items
)

// Classifier reports whether an entity currently has the role a Type
// names. Core supplies the concrete implementation backed by its
// registered component stores, letting search stay independent of any
// particular role component layout.
type Classifier interface {
	Is(w *store.World, e store.Entity, t Type) bool
}

type containerKind int

const (
	kindRoom containerKind = iota
	kindInventory
	kindEquipment
)

type location struct {
	kind   containerKind
	target store.Entity
}

// Search builds up a candidate resolution over one or more containers for
// a single seeking entity.
type Search struct {
	world      *store.World
	relations  *relation.Manager
	hooks      *hooks.CoreHooks
	classifier Classifier

	seeker     store.Entity
	locations  []location
	modes      uint64
	typ        Type
	allowID    bool
	allowSelf  bool
	allowAll   bool
	allowHere  bool
	allowAster bool
}

// New builds a Search for seeker. allowSelf and allowAll default to true;
// every other flag defaults to false.
func New(w *store.World, rel *relation.Manager, h *hooks.CoreHooks, c Classifier, seeker store.Entity) *Search {
	return &Search{
		world:      w,
		relations:  rel,
		hooks:      h,
		classifier: c,
		seeker:     seeker,
		allowSelf:  true,
		allowAll:   true,
	}
}

func (s *Search) Room(container store.Entity) *Search {
	s.locations = append(s.locations, location{kindRoom, container})
	return s
}

func (s *Search) In(container store.Entity) *Search {
	s.locations = append(s.locations, location{kindInventory, container})
	return s
}

func (s *Search) Eq(container store.Entity) *Search {
	s.locations = append(s.locations, location{kindEquipment, container})
	return s
}

func (s *Search) Modes(m uint64) *Search       { s.modes = m; return s }
func (s *Search) UseID(v bool) *Search         { s.allowID = v; return s }
func (s *Search) UseSelf(v bool) *Search       { s.allowSelf = v; return s }
func (s *Search) UseAll(v bool) *Search        { s.allowAll = v; return s }
func (s *Search) UseHere(v bool) *Search       { s.allowHere = v; return s }
func (s *Search) UseAsterisk(v bool) *Search   { s.allowAster = v; return s }
func (s *Search) SetType(t Type) *Search       { s.typ = t; return s }

func (s *Search) detect(target store.Entity) bool {
	if s.modes == 0 {
		return true
	}
	return s.hooks.CanDetect(s.world, s.seeker, target)
}

// simpleCheck handles the seeker/location/id shortcuts that bypass name
// resolution entirely: "self"/"me", "here", "#id".
func (s *Search) simpleCheck(name string) (store.Entity, bool) {
	lower := strings.ToLower(name)
	if s.allowSelf && (lower == "self" || lower == "me") {
		return s.seeker, true
	}
	if s.allowHere && lower == "here" {
		if target, ok := s.relations.Location.Target(s.seeker); ok {
			return target, true
		}
		return store.Nil, true
	}
	if s.allowID {
		if ref, ok := store.ParseRef(name); ok {
			if ref.HasGeneration {
				if e, ok := s.world.Pool.Resolve(store.ObjectID{Index: ref.Index, Generation: ref.Generation}); ok {
					return e, true
				}
				return store.Nil, true
			}
			if e, ok := s.world.Pool.Occupant(ref.Index); ok {
				return e, true
			}
			return store.Nil, true
		}
	}
	return store.Nil, false
}

func (s *Search) candidates(loc location) []store.Entity {
	all := s.relations.Location.Contents(loc.target)
	switch loc.kind {
	case kindRoom:
		return all
	case kindInventory:
		out := all[:0:0]
		for _, e := range all {
			if !s.hooks.IsEquipped(s.world, e) {
				out = append(out, e)
			}
		}
		return out
	case kindEquipment:
		out := all[:0:0]
		for _, e := range all {
			if s.hooks.IsEquipped(s.world, e) {
				out = append(out, e)
			}
		}
		return out
	default:
		return nil
	}
}

func (s *Search) matchesType(e store.Entity) bool {
	if s.typ == Anything {
		return true
	}
	return s.classifier.Is(s.world, e, s.typ)
}

// searchWords returns e's display-name words, shortest first, so a short
// prefix match wins over a longer word that happens to share it.
func (s *Search) searchWords(e store.Entity) []string {
	words := strings.Fields(s.hooks.DisplayName(s.world, e))
	sort.SliceStable(words, func(i, j int) bool { return len(words[i]) < len(words[j]) })
	return words
}

func (s *Search) checkSearch(e store.Entity, term string) bool {
	for _, w := range s.searchWords(e) {
		if strings.HasPrefix(strings.ToLower(w), strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// Find resolves name against the configured locations and flags.
func (s *Search) Find(name string) []store.Entity {
	if e, handled := s.simpleCheck(name); handled {
		if e == store.Nil || !s.world.Pool.Alive(e) {
			return nil
		}
		return []store.Entity{e}
	}

	prefix := "1"
	rest := name
	if dot := strings.Index(name, "."); dot >= 0 {
		prefix = name[:dot]
		rest = name[dot+1:]
	}

	num := int64(1)
	allMode := false
	if strings.EqualFold(prefix, "all") {
		allMode = s.allowAll
	} else {
		n, err := strconv.ParseInt(prefix, 10, 64)
		if err != nil || n < 1 {
			return nil
		}
		num = n
	}

	asterisk := rest == "*"
	if asterisk && !s.allowAster {
		return nil
	}

	var results []store.Entity
	var count int64
	for _, loc := range s.locations {
		for _, e := range s.candidates(loc) {
			if e == s.seeker || !s.world.Pool.Alive(e) {
				continue
			}
			if !s.matchesType(e) {
				continue
			}
			if !s.detect(e) {
				continue
			}
			if asterisk {
				results = append(results, e)
				continue
			}
			if !s.checkSearch(e, rest) {
				continue
			}
			if allMode {
				results = append(results, e)
				continue
			}
			count++
			if count == num {
				return append(results, e)
			}
		}
	}
	return results
}
