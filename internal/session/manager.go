package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/coremud/core/internal/command"
	"github.com/coremud/core/internal/component"
	"github.com/coremud/core/internal/core/event"
	"github.com/coremud/core/internal/store"
)

// ShapeStores groups the role-flag component stores ProcessSessions needs
// to compute a puppet's shape key for command-cache lookup.
type ShapeStores struct {
	Items      *store.ComponentStore[component.Item]
	Characters *store.ComponentStore[component.Character]
	NPCs       *store.ComponentStore[component.NPC]
	Players    *store.ComponentStore[component.Player]
	Vehicles   *store.ComponentStore[component.Vehicle]
}

func (s ShapeStores) keyOf(w *store.World, e store.Entity) uint8 {
	return component.ShapeKeyOf(w,
		s.Items.Has(e), s.Characters.Has(e), s.NPCs.Has(e), s.Players.Has(e), s.Vehicles.Has(e),
	)
}

// Manager owns every live Session, keyed by character entity, and drives
// the two session-related heartbeat systems.
type Manager struct {
	world    *store.World
	commands *command.Registry
	shapes   ShapeStores
	log      *zap.Logger
	events   *event.Bus

	sessions map[store.Entity]*Session

	// now overrides the wall clock for tests; nil uses time.Now().Unix().
	now func() int64
}

// NewManager creates an empty session Manager. bus may be nil, in which
// case sessions it starts emit no lifecycle events.
func NewManager(w *store.World, commands *command.Registry, shapes ShapeStores, log *zap.Logger, bus *event.Bus) *Manager {
	return &Manager{
		world:    w,
		commands: commands,
		shapes:   shapes,
		log:      log,
		events:   bus,
		sessions: make(map[store.Entity]*Session),
		now:      func() int64 { return time.Now().Unix() },
	}
}

// Start creates and registers a new Session for character, bound to
// accountID.
func (m *Manager) Start(accountID int64, character store.Entity) *Session {
	s := New(accountID, character, m.now(), m.events)
	m.sessions[character] = s
	return s
}

// Get returns the Session bound to character, if any.
func (m *Manager) Get(character store.Entity) (*Session, bool) {
	s, ok := m.sessions[character]
	return s, ok
}

// End removes a session entirely, e.g. after its link-dead grace period
// expires. Not called automatically; a higher layer decides the timeout.
func (m *Manager) End(character store.Entity) {
	delete(m.sessions, character)
}

// ProcessSessions is the built-in heartbeat system (priority -9000): for
// every session, run its heartbeat bookkeeping, then drain its input queue
// FIFO, dispatching each line against its puppet's command table.
func (m *Manager) ProcessSessions(dt time.Duration) error {
	now := m.now()
	for _, s := range m.sessions {
		s.OnHeartbeat(now)
		for {
			line, ok := s.NextInput()
			if !ok {
				break
			}
			m.dispatch(s, line)
		}
	}
	return nil
}

func (m *Manager) dispatch(s *Session, line string) {
	puppet := s.Puppet()
	shapeKey := m.shapes.keyOf(m.world, puppet)

	ctx := &command.ExecContext{World: m.world, Puppet: puppet, Session: s}
	matched, err := m.commands.Dispatch(ctx, shapeKey, line)
	if err != nil {
		if nx, ok := err.(*command.NotExecutableError); ok {
			s.SendLine(nx.Error())
			return
		}
		m.log.Warn("command execution failed", zap.String("line", line), zap.Error(err))
		s.SendLine("Something went wrong.")
		return
	}
	if !matched {
		s.SendLine("Huh?")
	}
}

// ProcessOutput is the built-in heartbeat system (priority 10000): flush
// every session's accumulated output buffer to its attached connections.
// Persistence's dirty-set flush runs alongside this at end-of-tick but is
// wired by the caller that owns the database connection, not here.
func (m *Manager) ProcessOutput(_ time.Duration) error {
	for _, s := range m.sessions {
		s.SendOutput()
	}
	return nil
}
