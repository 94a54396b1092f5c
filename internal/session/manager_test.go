package session

import (
	"testing"

	"go.uber.org/zap"

	"github.com/coremud/core/internal/command"
	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/store"
)

type echoCommand struct{ calls int }

func (c *echoCommand) Name() string               { return "look" }
func (c *echoCommand) Aliases() []string          { return []string{"l"} }
func (c *echoCommand) Priority() int               { return 0 }
func (c *echoCommand) Help() string               { return "look around" }
func (c *echoCommand) Category() string            { return "general" }
func (c *echoCommand) IsAvailable(_ uint8) bool    { return true }
func (c *echoCommand) CanExecute(_ *command.ExecContext) (bool, string) { return true, "" }
func (c *echoCommand) Execute(ctx *command.ExecContext) error {
	c.calls++
	s := ctx.Session.(*Session)
	s.SendLine("You see nothing special.")
	return nil
}

func newTestManager(t *testing.T) (*Manager, *store.World, *echoCommand) {
	t.Helper()
	w := store.NewWorld(func() int64 { return 1 })
	reg := command.NewRegistry()
	cmd := &echoCommand{}
	reg.Register(cmd)

	shapes := ShapeStores{
		Items:      store.NewComponentStore[component.Item](),
		Characters: store.NewComponentStore[component.Character](),
		NPCs:       store.NewComponentStore[component.NPC](),
		Players:    store.NewComponentStore[component.Player](),
		Vehicles:   store.NewComponentStore[component.Vehicle](),
	}
	return NewManager(w, reg, shapes, zap.NewNop(), nil), w, cmd
}

func TestProcessSessionsDispatchesQueuedInput(t *testing.T) {
	m, w, cmd := newTestManager(t)
	character, _ := w.CreateEntity()
	s := m.Start(1, character)
	c1 := &fakeClient{id: 1}
	s.AddConnection(c1)

	s.HandleText(1, "look")
	if err := m.ProcessSessions(0); err != nil {
		t.Fatalf("ProcessSessions: %v", err)
	}
	if cmd.calls != 1 {
		t.Fatalf("expected look to be dispatched once, got %d", cmd.calls)
	}

	if err := m.ProcessOutput(0); err != nil {
		t.Fatalf("ProcessOutput: %v", err)
	}
	if len(c1.out) != 1 || c1.out[0] != "You see nothing special.\n" {
		t.Fatalf("expected flushed output, got %+v", c1.out)
	}
}

func TestProcessSessionsReportsUnmatchedCommand(t *testing.T) {
	m, w, _ := newTestManager(t)
	character, _ := w.CreateEntity()
	s := m.Start(1, character)
	c1 := &fakeClient{id: 1}
	s.AddConnection(c1)

	s.HandleText(1, "dance")
	m.ProcessSessions(0)
	m.ProcessOutput(0)

	if len(c1.out) != 1 || c1.out[0] != "Huh?\n" {
		t.Fatalf("expected a bad-match message, got %+v", c1.out)
	}
}
