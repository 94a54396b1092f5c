package edge

import "encoding/json"

// Frame is one inbound or outbound message on the duplex channel to
// Thermite. The payload shape depends on Kind; Data is left raw so each
// handler can unmarshal only the part it understands.
type Frame struct {
	Kind         string          `json:"kind"`
	ID           int64           `json:"id,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
	Protocol     *ClientProtocol `json:"protocol,omitempty"`
	Capabilities *ProtocolCaps   `json:"capabilities,omitempty"`
}

// Inbound frame kinds.
const (
	KindClientList         = "client_list"
	KindClientReady        = "client_ready"
	KindClientCapabilities = "client_capabilities"
	KindClientData         = "client_data"
	KindClientDisconnected = "client_disconnected"
	// KindMSSP is accepted by the reader but has no defined handling at the
	// core level; see the connection registry's dispatch loop.
	KindMSSP = "mssp"
)

// KindClientDataOut is the one outbound frame kind the core ever sends.
const KindClientDataOut = "client_data"

// ClientProtocol describes a client as reported by client_list/client_ready.
type ClientProtocol struct {
	ID           int64         `json:"id"`
	Capabilities *ProtocolCaps `json:"capabilities,omitempty"`
}

// ProtocolCaps is the negotiated per-client protocol capability block
// (color, width, MCCP, MXP, and similar terminal features); the core treats
// it as opaque data it stores and forwards, never interprets.
type ProtocolCaps struct {
	Color bool            `json:"color"`
	Width int             `json:"width"`
	MCCP  bool             `json:"mccp"`
	MXP   bool             `json:"mxp"`
	Extra json.RawMessage `json:"extra,omitempty"`
}

// ClientCommand is one structured message addressed to or from a single
// client, carried inside a client_data frame's Data array.
type ClientCommand struct {
	Cmd    string         `json:"cmd"`
	Args   []string       `json:"args,omitempty"`
	Kwargs map[string]any `json:"kwargs,omitempty"`
}

// ClientListEntry is one entry of the client_list frame's roster.
type ClientListEntry struct {
	ID           int64         `json:"id"`
	Capabilities *ProtocolCaps `json:"capabilities,omitempty"`
}

// DecodeClientList parses a client_list frame's Data into its roster.
func DecodeClientList(data json.RawMessage) ([]ClientListEntry, error) {
	var entries []ClientListEntry
	if len(data) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DecodeClientData parses a client_data frame's Data into its command list.
func DecodeClientData(data json.RawMessage) ([]ClientCommand, error) {
	var cmds []ClientCommand
	if len(data) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &cmds); err != nil {
		return nil, err
	}
	return cmds, nil
}

// OutboundClientData builds the {kind: "client_data", id, data} frame the
// writer sends for a batch of commands addressed to one client.
func OutboundClientData(clientID int64, cmds []ClientCommand) (Frame, error) {
	raw, err := json.Marshal(cmds)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Kind: KindClientDataOut, ID: clientID, Data: raw}, nil
}
