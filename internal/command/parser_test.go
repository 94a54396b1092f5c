package command

import "testing"

func TestParseBasic(t *testing.T) {
	p, ok := Parse("get sword from chest")
	if !ok {
		t.Fatalf("expected match")
	}
	if p.Cmd != "get" {
		t.Fatalf("cmd = %q", p.Cmd)
	}
	if p.LSArgs != "sword from chest" {
		t.Fatalf("lsargs = %q", p.LSArgs)
	}
}

func TestParseSwitchesAndEquals(t *testing.T) {
	p, ok := Parse("say/ooc hello=world")
	if !ok {
		t.Fatalf("expected match")
	}
	if p.Cmd != "say" || p.Switches != "/ooc" {
		t.Fatalf("cmd=%q switches=%q", p.Cmd, p.Switches)
	}
	if p.LSArgs != "hello" || p.RSArgs != "world" {
		t.Fatalf("lsargs=%q rsargs=%q", p.LSArgs, p.RSArgs)
	}
}

func TestParseBareCommand(t *testing.T) {
	p, ok := Parse("look")
	if !ok {
		t.Fatalf("expected match")
	}
	if p.Cmd != "look" || p.LSArgs != "" {
		t.Fatalf("cmd=%q lsargs=%q", p.Cmd, p.LSArgs)
	}
}
