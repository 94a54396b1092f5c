package store

import "testing"

func TestPoolGenerationalIdentity(t *testing.T) {
	tick := int64(1000)
	now := func() int64 { return tick }
	p := NewPool(now)

	e, id := p.Create()
	if !p.Alive(e) {
		t.Fatalf("expected newly created entity to be alive")
	}

	p.Destroy(e)
	if p.Alive(e) {
		t.Fatalf("expected destroyed entity to be dead")
	}
	if _, ok := p.Resolve(id); ok {
		t.Fatalf("expected stale ObjectID to fail to resolve")
	}

	tick = 2000
	e2, id2 := p.Create()
	if e2 != e {
		t.Fatalf("expected slot reuse, got different index: %d vs %d", e, e2)
	}
	if id2.Generation < id.Generation {
		t.Fatalf("expected gen2 >= gen, got %d < %d", id2.Generation, id.Generation)
	}
	got, ok := p.Resolve(id2)
	if !ok || got != e2 {
		t.Fatalf("expected new ObjectID to resolve to reused entity")
	}
	if _, ok := p.Resolve(id); ok {
		t.Fatalf("expected old ObjectID to remain unresolved after reuse")
	}
}

func TestPoolOccupantIgnoresGeneration(t *testing.T) {
	tick := int64(1)
	p := NewPool(func() int64 { return tick })

	e, _ := p.Create()
	tick = 2
	occ, ok := p.Occupant(uint32(e))
	if !ok || occ != e {
		t.Fatalf("expected bare-index lookup to return current occupant")
	}

	p.Destroy(e)
	if _, ok := p.Occupant(uint32(e)); ok {
		t.Fatalf("expected grave slot to have no occupant")
	}
}

func TestPoolGrowsInChunks(t *testing.T) {
	p := NewPool(func() int64 { return 1 })
	for i := 0; i < growChunk+5; i++ {
		p.Create()
	}
	if len(p.slots) < growChunk+5 {
		t.Fatalf("expected arena to grow to fit all entities, got %d slots", len(p.slots))
	}
	if (len(p.slots)-1)%growChunk != 0 {
		t.Fatalf("expected arena (minus the reserved slot 0) to be a whole number of %d-slot chunks, got %d slots", growChunk, len(p.slots))
	}
}

func TestParseRef(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want ParsedRef
	}{
		{"#12", true, ParsedRef{Index: 12}},
		{"#12:500", true, ParsedRef{Index: 12, Generation: 500, HasGeneration: true}},
		{"12", false, ParsedRef{}},
		{"#abc", false, ParsedRef{}},
	}
	for _, c := range cases {
		got, ok := ParseRef(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseRef(%q) = %+v, %v; want %+v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}
