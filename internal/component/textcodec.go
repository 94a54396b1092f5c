package component

import (
	"encoding/json"

	"github.com/coremud/core/internal/store"
)

// textCodec persists only the Raw form of a store.Text-embedding
// component; Clean is rederived on load through World.Strip (which
// cmd/coremud sets from CoreHooks.StripColor). Identity text keeps both raw
// and color-stripped forms in memory, both interned; stripping is a
// load-time concern, not a storage concern.
type textCodec[T any] struct {
	name  string
	store *store.ComponentStore[T]
	text  func(*T) *store.Text
}

func newTextCodec[T any](name string, cs *store.ComponentStore[T], text func(*T) *store.Text) store.ComponentCodec {
	return &textCodec[T]{name: name, store: cs, text: text}
}

func (c *textCodec[T]) Name() string { return c.name }

func (c *textCodec[T]) Has(_ *store.World, e store.Entity) bool { return c.store.Has(e) }

func (c *textCodec[T]) Encode(_ *store.World, e store.Entity) (any, error) {
	v, _ := c.store.Get(e)
	return c.text(v).Raw, nil
}

func (c *textCodec[T]) Decode(w *store.World, e store.Entity, raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return err
	}
	v, ok := c.store.Get(e)
	if !ok {
		var zero T
		v = &zero
	}
	*c.text(v) = store.NewText(w.Interner, w.Strip, s)
	c.store.Set(e, v)
	return nil
}

// NameCodec returns the persistence codec for Name.
func NameCodec(cs *store.ComponentStore[Name]) store.ComponentCodec {
	return newTextCodec("name", cs, func(n *Name) *store.Text { return &n.Text })
}

// ShortDescriptionCodec returns the persistence codec for ShortDescription.
func ShortDescriptionCodec(cs *store.ComponentStore[ShortDescription]) store.ComponentCodec {
	return newTextCodec("shortDescription", cs, func(n *ShortDescription) *store.Text { return &n.Text })
}

// RoomDescriptionCodec returns the persistence codec for RoomDescription.
func RoomDescriptionCodec(cs *store.ComponentStore[RoomDescription]) store.ComponentCodec {
	return newTextCodec("roomDescription", cs, func(n *RoomDescription) *store.Text { return &n.Text })
}

// LookDescriptionCodec returns the persistence codec for LookDescription.
func LookDescriptionCodec(cs *store.ComponentStore[LookDescription]) store.ComponentCodec {
	return newTextCodec("lookDescription", cs, func(n *LookDescription) *store.Text { return &n.Text })
}
