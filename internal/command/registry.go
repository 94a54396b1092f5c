package command

import (
	"sort"
	"strings"
)

// Registry is the in-world command registry with the shape-keyed sorted
// command cache, the performance-critical piece of dispatch.
type Registry struct {
	commands []Command
	sorted   bool
	cache    map[uint8]map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{cache: make(map[uint8]map[string]Command)}
}

// Register adds c to the registry and invalidates the shape cache.
func (r *Registry) Register(c Command) {
	r.commands = append(r.commands, c)
	r.sorted = false
	r.InvalidateCache()
}

// InvalidateCache drops every memoized per-shape table. An entity's shape
// is treated as fixed after creation: nothing in core calls this when a
// role component (Item, Character, NPC, Player, Vehicle) is added to or
// removed from a live entity, so a caller that does so must call it.
func (r *Registry) InvalidateCache() {
	r.cache = make(map[uint8]map[string]Command)
}

func (r *Registry) ensureSorted() {
	if r.sorted {
		return
	}
	sort.SliceStable(r.commands, func(i, j int) bool {
		return r.commands[i].Priority() < r.commands[j].Priority()
	})
	r.sorted = true
}

// ForShape returns the lowercased-alias table available to entities with
// the given shape key, building and memoizing it on first use.
func (r *Registry) ForShape(shapeKey uint8) map[string]Command {
	if t, ok := r.cache[shapeKey]; ok {
		return t
	}
	r.ensureSorted()

	table := make(map[string]Command, len(r.commands)*2)
	for _, c := range r.commands {
		if !c.IsAvailable(shapeKey) {
			continue
		}
		keys := append([]string{c.Name()}, c.Aliases()...)
		for _, k := range keys {
			lk := strings.ToLower(k)
			if _, exists := table[lk]; !exists {
				table[lk] = c
			}
		}
	}
	r.cache[shapeKey] = table
	return table
}

// Lookup resolves name (case-insensitively) against the commands
// available to shapeKey.
func (r *Registry) Lookup(shapeKey uint8, name string) (Command, bool) {
	c, ok := r.ForShape(shapeKey)[strings.ToLower(name)]
	return c, ok
}

// Dispatch parses line, resolves it against shapeKey's command table, and
// runs CanExecute then Execute on the first match. It reports ok=false with
// no error when nothing matched at all; reporting a bad-match error to the
// user is the caller's concern, since the message format is presentation,
// not parsing.
func (r *Registry) Dispatch(ctx *ExecContext, shapeKey uint8, line string) (matched bool, err error) {
	parsed, ok := Parse(line)
	if !ok {
		return false, nil
	}
	ctx.Parsed = parsed

	c, ok := r.Lookup(shapeKey, parsed.Cmd)
	if !ok {
		return false, nil
	}
	if ok, reason := c.CanExecute(ctx); !ok {
		return true, &NotExecutableError{Command: c.Name(), Reason: reason}
	}
	return true, c.Execute(ctx)
}

// NotExecutableError is returned by Dispatch when a command matched but
// CanExecute refused it.
type NotExecutableError struct {
	Command string
	Reason  string
}

func (e *NotExecutableError) Error() string {
	if e.Reason == "" {
		return "cannot execute " + e.Command
	}
	return e.Reason
}
