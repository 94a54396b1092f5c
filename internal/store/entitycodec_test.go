package store

import "testing"

type testName struct {
	Value string `json:"value"`
}

func TestSerializeDeserializeEntityRoundTrip(t *testing.T) {
	w := NewWorld(func() int64 { return 1 })
	names := NewComponentStore[testName]()
	w.Registry.Register(names)
	w.RegisterComponentCodec(NewJSONCodec("name", names))

	e, _ := w.CreateEntity()
	names.Set(e, &testName{Value: "a rusty key"})

	data, err := SerializeEntity(w, e)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	e2, _ := w.CreateEntity()
	if err := DeserializeEntity(w, e2, data); err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	got, ok := names.Get(e2)
	if !ok || got.Value != "a rusty key" {
		t.Fatalf("expected name to round-trip, got %+v ok=%v", got, ok)
	}
}

func TestUnrecognizedComponentSurvivesRoundTrip(t *testing.T) {
	w := NewWorld(func() int64 { return 1 })
	e, _ := w.CreateEntity()

	data := []byte(`{"futureThing":{"a":1,"b":"x"}}`)
	if err := DeserializeEntity(w, e, data); err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	out, err := SerializeEntity(w, e)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if got := string(out); got != `{"futureThing":{"a":1,"b":"x"}}` {
		t.Fatalf("expected unrecognized component to round-trip unchanged, got %s", got)
	}
}
