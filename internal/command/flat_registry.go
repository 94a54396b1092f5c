package command

import (
	"sort"
	"strings"
)

// flatEntry is the common shape ConnectRegistry and LoginRegistry expand
// into: one entry per registered command, providing the bits needed to
// build the lowercased-alias table, built once at startup by expanding
// each registered command into one map entry per name and alias.
type flatEntry struct {
	name     string
	aliases  []string
	priority int
}

func expand[C any](names func(C) flatEntry, commands []C) map[string]C {
	sorted := make([]C, len(commands))
	copy(sorted, commands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return names(sorted[i]).priority < names(sorted[j]).priority
	})

	table := make(map[string]C, len(sorted)*2)
	for _, c := range sorted {
		e := names(c)
		keys := append([]string{e.name}, e.aliases...)
		for _, k := range keys {
			lk := strings.ToLower(k)
			if _, exists := table[lk]; !exists {
				table[lk] = c
			}
		}
	}
	return table
}

// ConnectRegistry is the flat, pre-auth command table.
type ConnectRegistry struct {
	commands []ConnectCommand
	table    map[string]ConnectCommand
}

func NewConnectRegistry() *ConnectRegistry { return &ConnectRegistry{} }

func (r *ConnectRegistry) Register(c ConnectCommand) {
	r.commands = append(r.commands, c)
	r.table = nil
}

// Build (re)computes the lowercased-alias table. Call once at startup
// after all commands are registered.
func (r *ConnectRegistry) Build() {
	r.table = expand(func(c ConnectCommand) flatEntry {
		return flatEntry{name: c.Name(), aliases: c.Aliases(), priority: c.Priority()}
	}, r.commands)
}

func (r *ConnectRegistry) Lookup(name string) (ConnectCommand, bool) {
	if r.table == nil {
		r.Build()
	}
	c, ok := r.table[strings.ToLower(name)]
	return c, ok
}

// LoginRegistry is the flat, post-auth pre-play command table.
type LoginRegistry struct {
	commands []LoginCommand
	table    map[string]LoginCommand
}

func NewLoginRegistry() *LoginRegistry { return &LoginRegistry{} }

func (r *LoginRegistry) Register(c LoginCommand) {
	r.commands = append(r.commands, c)
	r.table = nil
}

func (r *LoginRegistry) Build() {
	r.table = expand(func(c LoginCommand) flatEntry {
		return flatEntry{name: c.Name(), aliases: c.Aliases(), priority: c.Priority()}
	}, r.commands)
}

func (r *LoginRegistry) Lookup(name string) (LoginCommand, bool) {
	if r.table == nil {
		r.Build()
	}
	c, ok := r.table[strings.ToLower(name)]
	return c, ok
}
