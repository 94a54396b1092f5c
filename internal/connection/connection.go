// Package connection implements the per-client connection registry: three
// disjoint lifecycle sets keyed by connection id, and the state machine a
// connection walks from first contact through authentication into an
// in-world session.
package connection

import (
	"sync/atomic"

	"github.com/coremud/core/internal/edge"
)

// State is a connection's position in the login state machine.
type State int

const (
	StateNew State = iota
	StateWelcomed
	StateAuthed
	StateInSession
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateWelcomed:
		return "welcomed"
	case StateAuthed:
		return "authed"
	case StateInSession:
		return "in_session"
	default:
		return "unknown"
	}
}

// SessionHandle is the minimal surface a Connection needs from its attached
// Session, kept as a small local interface (rather than importing package
// session directly) so session can depend on connection without a cycle.
type SessionHandle interface {
	HandleText(connID int64, line string)
	RemoveConnection(connID int64)
}

// Connection is one client multiplexed over the edge link: its negotiated
// protocol capabilities, login state, and optionally the Session it is
// currently attached to. All fields except Caps are touched only from the
// tick thread; Caps is updated from the edge dispatch goroutine via
// SetCaps/Caps so it reads the latest negotiated block without a lock.
type Connection struct {
	ID int64

	caps atomic.Pointer[edge.ProtocolCaps]

	State      State
	AccountID  int64
	AdminLevel int
	Session    SessionHandle

	// sender delivers text output to this connection's client over the
	// edge link; wired by whoever welcomes the connection, since only the
	// caller knows how to reach the LinkManager.
	sender func(text string)

	// inbox carries parsed client_data commands in arrival order; the edge
	// dispatch goroutine is the sole producer (SPSC), the tick thread the
	// sole consumer.
	inbox chan edge.ClientCommand
}

// inboxSize bounds a connection's inbound backlog: enough for a burst of
// fast typing between ticks without growing unbounded if a connection goes
// quiet without disconnecting.
const inboxSize = 256

func newConnection(id int64, caps *edge.ProtocolCaps) *Connection {
	c := &Connection{ID: id, State: StateNew, inbox: make(chan edge.ClientCommand, inboxSize)}
	if caps != nil {
		c.caps.Store(caps)
	}
	return c
}

// Caps returns the connection's most recently negotiated protocol
// capabilities, or nil if none have arrived yet.
func (c *Connection) Caps() *edge.ProtocolCaps { return c.caps.Load() }

// SetCaps updates the negotiated capability block.
func (c *Connection) SetCaps(caps *edge.ProtocolCaps) { c.caps.Store(caps) }

// ConnID returns the connection id, satisfying session.Client without
// colliding with the exported ID field every other package reads directly.
func (c *Connection) ConnID() int64 { return c.ID }

// SetSender wires how SendOutput reaches this connection's client, e.g. a
// closure over the Registry's edge.LinkManager.
func (c *Connection) SetSender(fn func(text string)) { c.sender = fn }

// SendOutput implements session.Client: text accumulated by a Session
// during a tick arrives here once, to be framed and written to the edge.
func (c *Connection) SendOutput(text string) {
	if c.sender != nil {
		c.sender(text)
	}
}

// Authenticated reports whether this connection has a logged-in account.
func (c *Connection) Authenticated() bool { return c.AccountID != 0 }

// enqueue blocks until the command is accepted or stop fires, matching the
// edge reader's own "never silently drop client input" policy rather than
// discarding on a full inbox.
func (c *Connection) enqueue(cmd edge.ClientCommand, stop <-chan struct{}) {
	select {
	case c.inbox <- cmd:
	case <-stop:
	}
}
