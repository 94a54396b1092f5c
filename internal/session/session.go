// Package session implements the character-bound play session: the
// multi-connection attach point between a logged-in account and the puppet
// entity it is steering in the world.
package session

import (
	"strings"
	"sync"

	"github.com/coremud/core/internal/core/event"
	"github.com/coremud/core/internal/store"
)

// Client is the minimal surface Session needs from an attached Connection:
// enough to flush accumulated output back to it. Kept as a small local
// interface rather than importing package connection directly, so the two
// packages don't form a cycle (connection already depends on a
// SessionHandle interface it defines itself).
type Client interface {
	ConnID() int64
	SendOutput(text string)
}

// Session binds one account and character to zero or more concurrently
// attached Connections.
type Session struct {
	mu sync.Mutex

	AccountID   int64
	Character   store.Entity
	puppet      store.Entity
	clients     map[int64]Client
	input       []string
	output      strings.Builder
	linkDead    bool

	created         int64
	lastActivity    int64
	totalConnections int

	// events is the bus SessionStarted/SessionLinkDead are emitted on; nil
	// is valid and simply means no one is listening (tests construct
	// Sessions this way throughout the package).
	events *event.Bus
}

// New creates a Session bound to character, initially puppeting itself.
// now is the creation timestamp (UNIX seconds), supplied by the caller so
// tests can control it. bus may be nil.
func New(accountID int64, character store.Entity, now int64, bus *event.Bus) *Session {
	return &Session{
		AccountID: accountID,
		Character: character,
		puppet:    character,
		clients:   make(map[int64]Client),
		created:    now,
		lastActivity: now,
		events:     bus,
	}
}

// Puppet returns the entity the session is currently steering.
func (s *Session) Puppet() store.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puppet
}

// ChangePuppet switches what the session steers, e.g. entering a vehicle or
// possessing another entity.
func (s *Session) ChangePuppet(e store.Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puppet = e
}

// AddConnection attaches conn to the session, clearing link-dead status.
// Attaching the first connection of a session's lifetime (or the first
// one after it went link-dead) emits SessionStarted.
func (s *Session) AddConnection(conn Client) {
	s.mu.Lock()
	wasEmpty := len(s.clients) == 0
	s.clients[conn.ConnID()] = conn
	s.linkDead = false
	s.totalConnections++
	accountID, character, bus := s.AccountID, s.Character, s.events
	s.mu.Unlock()

	if wasEmpty && bus != nil {
		event.Emit(bus, event.SessionStarted{AccountID: accountID, Character: character})
	}
}

// RemoveConnection detaches a connection by id. When the last connection is
// removed the session becomes link-dead rather than being destroyed
// immediately (emitting SessionLinkDead); a higher layer reaps it after a
// grace period.
func (s *Session) RemoveConnection(connID int64) {
	s.mu.Lock()
	delete(s.clients, connID)
	wentLinkDead := len(s.clients) == 0 && !s.linkDead
	if wentLinkDead {
		s.linkDead = true
	}
	accountID, character, bus := s.AccountID, s.Character, s.events
	s.mu.Unlock()

	if wentLinkDead && bus != nil {
		event.Emit(bus, event.SessionLinkDead{AccountID: accountID, Character: character})
	}
}

// LinkDead reports whether every connection has detached.
func (s *Session) LinkDead() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linkDead
}

// ConnectionCount returns the number of currently attached connections.
func (s *Session) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// HandleText appends line to the session's input queue, in the global
// arrival order across every attached connection. The literal string "--"
// clears the queue instead of being queued, acknowledging the clear rather
// than being treated as a command.
func (s *Session) HandleText(_ int64, line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if line == "--" {
		s.input = s.input[:0]
		s.output.WriteString("Input queue cleared.\n")
		return
	}
	s.input = append(s.input, line)
}

// NextInput pops the oldest queued input line, FIFO.
func (s *Session) NextInput() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.input) == 0 {
		return "", false
	}
	line := s.input[0]
	s.input = s.input[1:]
	return line, true
}

// PendingInput reports how many input lines are queued.
func (s *Session) PendingInput() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.input)
}

// SendText appends text to the session's output buffer without a trailing
// newline.
func (s *Session) SendText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output.WriteString(text)
}

// SendLine appends text plus a trailing newline to the output buffer.
func (s *Session) SendLine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output.WriteString(text)
	s.output.WriteByte('\n')
}

// SendOutput flushes the accumulated output buffer to every attached
// connection and resets it. Called once per tick by ProcessOutput.
func (s *Session) SendOutput() {
	s.mu.Lock()
	text := s.output.String()
	s.output.Reset()
	clients := make([]Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	if text == "" {
		return
	}
	for _, c := range clients {
		c.SendOutput(text)
	}
}

// OnHeartbeat updates per-tick bookkeeping; currently just the activity
// timestamp when input is pending, used by a higher layer's idle reaping.
func (s *Session) OnHeartbeat(now int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.input) > 0 {
		s.lastActivity = now
	}
}

// LastActivity returns the UNIX timestamp of the most recent tick that saw
// queued input.
func (s *Session) LastActivity() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

// Created returns the session's creation UNIX timestamp.
func (s *Session) Created() int64 { return s.created }

// TotalConnections returns the lifetime count of connections ever attached
// to this session, including ones since detached.
func (s *Session) TotalConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalConnections
}
