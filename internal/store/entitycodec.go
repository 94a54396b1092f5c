package store

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SerializeEntity encodes e as a single JSON object: one key per registered
// component codec whose Has reports true, plus any component keys that
// arrived on the last DeserializeEntity of e with no registered codec,
// carried through unchanged.
func SerializeEntity(w *World, e Entity) ([]byte, error) {
	doc := []byte("{}")
	var err error
	for key, raw := range w.UnknownComponentsOf(e) {
		doc, err = sjson.SetRawBytes(doc, key, raw)
		if err != nil {
			return nil, fmt.Errorf("set unknown component %q: %w", key, err)
		}
	}
	for _, c := range w.Codecs() {
		if !c.Has(w, e) {
			continue
		}
		v, encErr := c.Encode(w, e)
		if encErr != nil {
			return nil, fmt.Errorf("encode component %q: %w", c.Name(), encErr)
		}
		doc, err = sjson.SetBytes(doc, c.Name(), v)
		if err != nil {
			return nil, fmt.Errorf("set component %q: %w", c.Name(), err)
		}
	}
	return doc, nil
}

// DeserializeEntity attaches e's components from a JSON object previously
// produced by SerializeEntity. Keys with a registered codec are decoded
// through it; any other key is recorded via World.SetUnknownComponents and
// re-emitted verbatim the next time the entity is saved, so a component
// kind the running binary doesn't recognize (an older core reading a newer
// content pack's data) survives the round trip instead of being silently
// dropped.
func DeserializeEntity(w *World, e Entity, data []byte) error {
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return fmt.Errorf("deserialize entity: not a JSON object")
	}
	unknown := make(map[string]json.RawMessage)
	var decodeErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		c, ok := w.CodecByName(name)
		if !ok {
			unknown[name] = json.RawMessage(value.Raw)
			return true
		}
		if err := c.Decode(w, e, []byte(value.Raw)); err != nil {
			decodeErr = fmt.Errorf("decode component %q: %w", name, err)
			return false
		}
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}
	w.SetUnknownComponents(e, unknown)
	return nil
}
