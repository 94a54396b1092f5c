package store

import "encoding/json"

// jsonCodec implements ComponentCodec for any component type whose fields
// persist as plain JSON, with no entity-reference translation required.
// Entity serialization emits a JSON object containing only present
// components.
type jsonCodec[T any] struct {
	name  string
	store *ComponentStore[T]
}

// NewJSONCodec wraps cs as a ComponentCodec under the given name, using
// encoding/json directly. Components that embed entity references (the
// relationship edges, container POI maps) need a codec that translates
// through ObjectID instead; see the relation and component packages.
func NewJSONCodec[T any](name string, cs *ComponentStore[T]) ComponentCodec {
	return &jsonCodec[T]{name: name, store: cs}
}

func (c *jsonCodec[T]) Name() string { return c.name }

func (c *jsonCodec[T]) Has(_ *World, e Entity) bool { return c.store.Has(e) }

func (c *jsonCodec[T]) Encode(_ *World, e Entity) (any, error) {
	v, _ := c.store.Get(e)
	return v, nil
}

func (c *jsonCodec[T]) Decode(_ *World, e Entity, raw []byte) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	c.store.Set(e, &v)
	return nil
}
