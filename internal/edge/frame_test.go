package edge

import (
	"encoding/json"
	"testing"
)

func TestDecodeClientList(t *testing.T) {
	data := json.RawMessage(`[{"id":42,"capabilities":{"color":true,"width":80}},{"id":43}]`)
	entries, err := DecodeClientList(data)
	if err != nil {
		t.Fatalf("decode client list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != 42 || entries[0].Capabilities == nil || !entries[0].Capabilities.Color {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Capabilities != nil {
		t.Fatalf("expected second entry to have no capabilities block")
	}
}

func TestDecodeClientData(t *testing.T) {
	data := json.RawMessage(`[{"cmd":"text","args":["look"]},{"cmd":"IDLE"}]`)
	cmds, err := DecodeClientData(data)
	if err != nil {
		t.Fatalf("decode client data: %v", err)
	}
	if len(cmds) != 2 || cmds[0].Cmd != "text" || cmds[0].Args[0] != "look" {
		t.Fatalf("unexpected commands: %+v", cmds)
	}
}

func TestOutboundClientData(t *testing.T) {
	f, err := OutboundClientData(42, []ClientCommand{{Cmd: "text", Args: []string{"hello"}}})
	if err != nil {
		t.Fatalf("build outbound frame: %v", err)
	}
	if f.Kind != KindClientDataOut || f.ID != 42 {
		t.Fatalf("unexpected frame shape: %+v", f)
	}
	var roundTrip []ClientCommand
	if err := json.Unmarshal(f.Data, &roundTrip); err != nil {
		t.Fatalf("unmarshal outbound data: %v", err)
	}
	if len(roundTrip) != 1 || roundTrip[0].Cmd != "text" {
		t.Fatalf("unexpected round-tripped data: %+v", roundTrip)
	}
}

func TestFrameUnmarshalUnknownKindIgnored(t *testing.T) {
	var f Frame
	if err := json.Unmarshal([]byte(`{"kind":"mssp","id":1,"data":{"arbitrary":true}}`), &f); err != nil {
		t.Fatalf("unmarshal mssp frame: %v", err)
	}
	if f.Kind != KindMSSP {
		t.Fatalf("expected kind mssp, got %q", f.Kind)
	}
}
