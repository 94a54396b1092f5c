package store

import "sync"

// Interner yields stable, deduplicated string views. Names and
// descriptions are interned in both raw and color-stripped form; interned
// strings live for the process lifetime.
//
// Safe for concurrent use: edge reader/writer goroutines may intern
// incoming text before handing it to the tick thread.
type Interner struct {
	mu   sync.RWMutex
	pool map[string]string
}

// NewInterner creates an empty Interner.
func NewInterner() *Interner {
	return &Interner{pool: make(map[string]string, 1024)}
}

// Intern returns the canonical, deduplicated copy of s.
func (in *Interner) Intern(s string) string {
	in.mu.RLock()
	if v, ok := in.pool[s]; ok {
		in.mu.RUnlock()
		return v
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if v, ok := in.pool[s]; ok {
		return v
	}
	in.pool[s] = s
	return s
}

// Len reports how many distinct strings are interned, mostly for tests and
// diagnostics.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.pool)
}

// Text holds the raw and color-stripped forms of interned display text.
// Both forms are interned.
type Text struct {
	Raw   string
	Clean string
}

// ColorStrip is the injected ANSI-color-stripping transform. The default
// is the identity function; game content supplies a real one via
// CoreHooks.
type ColorStrip func(string) string

// NewText interns both the raw string and its stripped form.
func NewText(in *Interner, strip ColorStrip, raw string) Text {
	if strip == nil {
		strip = func(s string) string { return s }
	}
	return Text{
		Raw:   in.Intern(raw),
		Clean: in.Intern(strip(raw)),
	}
}
