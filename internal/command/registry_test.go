package command

import "testing"

type stubCommand struct {
	name     string
	aliases  []string
	priority int
	shape    uint8
	ran      *bool
}

func (c stubCommand) Name() string     { return c.name }
func (c stubCommand) Aliases() []string { return c.aliases }
func (c stubCommand) Priority() int     { return c.priority }
func (c stubCommand) Help() string      { return "" }
func (c stubCommand) Category() string  { return "" }
func (c stubCommand) IsAvailable(shapeKey uint8) bool { return shapeKey&c.shape == c.shape }
func (c stubCommand) CanExecute(*ExecContext) (bool, string) { return true, "" }
func (c stubCommand) Execute(*ExecContext) error {
	*c.ran = true
	return nil
}

func TestRegistryShapeGating(t *testing.T) {
	r := NewRegistry()
	var itemRan, charRan bool
	r.Register(stubCommand{name: "wear", priority: 1, shape: 0x01, ran: &itemRan})
	r.Register(stubCommand{name: "say", priority: 1, shape: 0x02, ran: &charRan})

	if _, ok := r.Lookup(0x01, "say"); ok {
		t.Fatalf("expected say unavailable to shape 0x01")
	}
	if _, ok := r.Lookup(0x02, "say"); !ok {
		t.Fatalf("expected say available to shape 0x02")
	}
}

func TestRegistryDispatchRunsFirstMatch(t *testing.T) {
	r := NewRegistry()
	var ran bool
	r.Register(stubCommand{name: "look", priority: 1, shape: 0x00, ran: &ran})

	matched, err := r.Dispatch(&ExecContext{}, 0x00, "look")
	if !matched || err != nil {
		t.Fatalf("matched=%v err=%v", matched, err)
	}
	if !ran {
		t.Fatalf("expected command to run")
	}
}

func TestRegistryCacheInvalidation(t *testing.T) {
	r := NewRegistry()
	var ran bool
	r.Register(stubCommand{name: "look", priority: 1, shape: 0x00, ran: &ran})
	r.ForShape(0x00) // populate cache

	var newRan bool
	r.Register(stubCommand{name: "sniff", priority: 1, shape: 0x00, ran: &newRan})
	if _, ok := r.Lookup(0x00, "sniff"); !ok {
		t.Fatalf("expected cache to reflect newly registered command")
	}
}
