// Package heartbeat implements the fixed-rate tick loop and priority-sorted
// system registry, generalizing a phase-based system runner from a closed
// enum of phases to an open, by-name priority registration.
package heartbeat

import "time"

// System is one unit of per-tick work: a name, a priority, a gating
// condition, and the work itself.
type System interface {
	Name() string
	Priority() int
	ShouldRun(dt time.Duration) bool
	Run(dt time.Duration) error
}

// Func adapts a plain function into a System that always runs, for the
// common case of a system with no gating condition.
type Func struct {
	FuncName     string
	FuncPriority int
	RunFunc      func(dt time.Duration) error
}

func (f Func) Name() string                      { return f.FuncName }
func (f Func) Priority() int                      { return f.FuncPriority }
func (f Func) ShouldRun(_ time.Duration) bool     { return true }
func (f Func) Run(dt time.Duration) error         { return f.RunFunc(dt) }
