package heartbeat

import (
	"testing"
	"time"
)

func TestRunnerOrdersByPriority(t *testing.T) {
	r := NewRunner()
	var order []string
	record := func(name string, pri int) System {
		return Func{FuncName: name, FuncPriority: pri, RunFunc: func(time.Duration) error {
			order = append(order, name)
			return nil
		}}
	}
	r.Register(record("output", 10000))
	r.Register(record("connections", -10000))
	r.Register(record("commands", 1000))

	for _, s := range r.Systems() {
		s.Run(0)
	}
	want := []string{"connections", "commands", "output"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestRunnerRegisterReplacesByName(t *testing.T) {
	r := NewRunner()
	r.Register(Func{FuncName: "x", FuncPriority: 1, RunFunc: func(time.Duration) error { return nil }})
	r.Register(Func{FuncName: "x", FuncPriority: 5, RunFunc: func(time.Duration) error { return nil }})

	systems := r.Systems()
	if len(systems) != 1 {
		t.Fatalf("expected duplicate registration to replace, got %d systems", len(systems))
	}
	if systems[0].Priority() != 5 {
		t.Fatalf("expected replaced system's priority, got %d", systems[0].Priority())
	}
}
