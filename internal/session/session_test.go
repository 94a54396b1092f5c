package session

import (
	"testing"

	"github.com/coremud/core/internal/store"
)

type fakeClient struct {
	id  int64
	out []string
}

func (c *fakeClient) ConnID() int64          { return c.id }
func (c *fakeClient) SendOutput(text string) { c.out = append(c.out, text) }

func TestInputFIFOAcrossConnections(t *testing.T) {
	s := New(1, store.Entity(1), 1000, nil)
	s.HandleText(1, "n")
	s.HandleText(2, "s")

	line, ok := s.NextInput()
	if !ok || line != "n" {
		t.Fatalf("expected first input to be n, got %q ok=%v", line, ok)
	}
	line, ok = s.NextInput()
	if !ok || line != "s" {
		t.Fatalf("expected second input to be s, got %q ok=%v", line, ok)
	}
	if _, ok := s.NextInput(); ok {
		t.Fatalf("expected queue to be empty")
	}
}

func TestDoubleDashClearsQueue(t *testing.T) {
	s := New(1, store.Entity(1), 1000, nil)
	s.HandleText(1, "n")
	s.HandleText(1, "s")
	s.HandleText(1, "--")

	if s.PendingInput() != 0 {
		t.Fatalf("expected -- to clear the queue, got %d pending", s.PendingInput())
	}
}

func TestOutputFlushesOncePerConnection(t *testing.T) {
	s := New(1, store.Entity(1), 1000, nil)
	c1 := &fakeClient{id: 1}
	c2 := &fakeClient{id: 2}
	s.AddConnection(c1)
	s.AddConnection(c2)

	s.SendLine("hello")
	s.SendOutput()

	if len(c1.out) != 1 || c1.out[0] != "hello\n" {
		t.Fatalf("expected c1 to receive output once, got %+v", c1.out)
	}
	if len(c2.out) != 1 || c2.out[0] != "hello\n" {
		t.Fatalf("expected c2 to receive output once, got %+v", c2.out)
	}

	s.SendOutput()
	if len(c1.out) != 1 {
		t.Fatalf("expected no further flush with empty buffer, got %+v", c1.out)
	}
}

func TestRemoveLastConnectionGoesLinkDead(t *testing.T) {
	s := New(1, store.Entity(1), 1000, nil)
	c1 := &fakeClient{id: 1}
	s.AddConnection(c1)
	if s.LinkDead() {
		t.Fatalf("expected session to not be link-dead with a connection attached")
	}

	s.RemoveConnection(1)
	if !s.LinkDead() {
		t.Fatalf("expected session to be link-dead after removing its last connection")
	}
}

func TestChangePuppet(t *testing.T) {
	char := store.Entity(1)
	vehicle := store.Entity(2)
	s := New(1, char, 1000, nil)
	if s.Puppet() != char {
		t.Fatalf("expected initial puppet to be the character")
	}
	s.ChangePuppet(vehicle)
	if s.Puppet() != vehicle {
		t.Fatalf("expected puppet to change to the vehicle")
	}
}
