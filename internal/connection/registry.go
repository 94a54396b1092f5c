package connection

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/coremud/core/internal/edge"
)

// Router resolves what a freed-form text line or GMCP command means for a
// connection with no Session attached, and is the one place Registry needs
// to reach into the command registries. Kept as an interface so Registry
// doesn't need to know ConnectRegistry/LoginRegistry's concrete dispatch
// wiring.
type Router interface {
	DispatchConnect(conn *Connection, line string) error
	DispatchLogin(conn *Connection, line string) error
}

// Sender delivers text output addressed to one client id out over the edge
// link. Registry wires every Connection's SendOutput to it at creation time.
type Sender interface {
	SendText(connID int64, text string)
}

// Registry owns the three disjoint connection-lifecycle sets. The map
// mutations themselves are mutex-protected (the edge dispatch goroutine and
// the tick thread both touch them); once a Connection is looked up, its
// fields are tick-thread-only except Caps.
type Registry struct {
	mu          sync.Mutex
	connections map[int64]*Connection
	pending     map[int64]*Connection
	dead        map[int64]*Connection

	stop   chan struct{}
	router Router
	sender Sender
	log    *zap.Logger

	// onWelcome runs once per connection moving pending -> connections,
	// e.g. to send the initial banner. onDisconnected runs once per
	// connection moving to dead, e.g. to detach its Session.
	onWelcome      func(*Connection)
	onDisconnected func(*Connection)
}

// NewRegistry creates an empty Registry. router resolves pre-auth/post-auth
// text input; sender delivers output back out over the edge link (nil is
// fine in tests that never call SendOutput); stop is closed on shutdown to
// unblock any pending enqueue.
func NewRegistry(router Router, sender Sender, stop chan struct{}, log *zap.Logger) *Registry {
	return &Registry{
		connections: make(map[int64]*Connection),
		pending:     make(map[int64]*Connection),
		dead:        make(map[int64]*Connection),
		router:      router,
		sender:      sender,
		stop:        stop,
		log:         log,
	}
}

// newConn builds a Connection and wires its outbound sender back to this
// registry's Sender, closing over its id.
func (r *Registry) newConn(id int64, caps *edge.ProtocolCaps) *Connection {
	conn := newConnection(id, caps)
	conn.SetSender(func(text string) {
		if r.sender != nil {
			r.sender.SendText(id, text)
		}
	})
	return conn
}

// OnWelcome registers the hook run once per connection when it moves from
// pending into connections.
func (r *Registry) OnWelcome(fn func(*Connection)) { r.onWelcome = fn }

// OnDisconnected registers the hook run once per connection when it's
// reaped from dead.
func (r *Registry) OnDisconnected(fn func(*Connection)) { r.onDisconnected = fn }

// HandleFrame routes one inbound edge frame. Called from the edge dispatch
// goroutine, not the tick thread; it only ever touches the mutex-protected
// maps and a Connection's atomic Caps, never session or world state.
func (r *Registry) HandleFrame(f edge.Frame) {
	switch f.Kind {
	case edge.KindClientList:
		entries, err := edge.DecodeClientList(f.Data)
		if err != nil {
			r.log.Warn("malformed client_list frame", zap.Error(err))
			return
		}
		r.mu.Lock()
		for _, e := range entries {
			if _, ok := r.connections[e.ID]; ok {
				continue
			}
			if _, ok := r.pending[e.ID]; ok {
				continue
			}
			r.pending[e.ID] = r.newConn(e.ID, e.Capabilities)
		}
		r.mu.Unlock()

	case edge.KindClientReady:
		id := f.ID
		var caps *edge.ProtocolCaps
		if f.Protocol != nil {
			caps = f.Protocol.Capabilities
			if id == 0 {
				id = f.Protocol.ID
			}
		}
		r.mu.Lock()
		r.pending[id] = r.newConn(id, caps)
		r.mu.Unlock()

	case edge.KindClientCapabilities:
		if conn, ok := r.find(f.ID); ok {
			conn.SetCaps(f.Capabilities)
		}

	case edge.KindClientData:
		cmds, err := edge.DecodeClientData(f.Data)
		if err != nil {
			r.log.Warn("malformed client_data frame", zap.Int64("conn", f.ID), zap.Error(err))
			return
		}
		conn, ok := r.find(f.ID)
		if !ok {
			return
		}
		for _, cmd := range cmds {
			conn.enqueue(cmd, r.stop)
		}

	case edge.KindClientDisconnected:
		r.mu.Lock()
		if conn, ok := r.connections[f.ID]; ok {
			delete(r.connections, f.ID)
			r.dead[f.ID] = conn
		} else if conn, ok := r.pending[f.ID]; ok {
			delete(r.pending, f.ID)
			r.dead[f.ID] = conn
		}
		r.mu.Unlock()

	case edge.KindMSSP:
		// No defined handling at the core level; the frame is accepted and
		// dropped.
	}
}

func (r *Registry) find(id int64) (*Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.connections[id]; ok {
		return c, true
	}
	if c, ok := r.pending[id]; ok {
		return c, true
	}
	return nil, false
}

// reapDead drains the dead set, running onDisconnected for each.
func (r *Registry) reapDead() {
	r.mu.Lock()
	toReap := r.dead
	r.dead = make(map[int64]*Connection)
	r.mu.Unlock()

	for _, conn := range toReap {
		if conn.Session != nil {
			conn.Session.RemoveConnection(conn.ID)
		}
		if r.onDisconnected != nil {
			r.onDisconnected(conn)
		}
	}
}

// welcomePending moves every pending connection into connections, running
// onWelcome for each.
func (r *Registry) welcomePending() {
	r.mu.Lock()
	toWelcome := r.pending
	r.pending = make(map[int64]*Connection)
	for id, conn := range toWelcome {
		conn.State = StateWelcomed
		r.connections[id] = conn
	}
	r.mu.Unlock()

	for _, conn := range toWelcome {
		if r.onWelcome != nil {
			r.onWelcome(conn)
		}
	}
}

// drainInbound processes every queued client_data command for every live
// connection, routing text to the attached Session, a LoginCommand parse,
// or a ConnectCommand parse depending on the connection's state.
func (r *Registry) drainInbound() {
	r.mu.Lock()
	live := make([]*Connection, 0, len(r.connections))
	for _, c := range r.connections {
		live = append(live, c)
	}
	r.mu.Unlock()

	for _, conn := range live {
		r.drainOne(conn)
	}
}

func (r *Registry) drainOne(conn *Connection) {
	for {
		select {
		case cmd := <-conn.inbox:
			r.route(conn, cmd)
		default:
			return
		}
	}
}

func (r *Registry) route(conn *Connection, cmd edge.ClientCommand) {
	if cmd.Cmd != "text" {
		// GMCP-style structured event: opaque to the core, content's concern.
		return
	}
	var line string
	if len(cmd.Args) > 0 {
		line = cmd.Args[0]
	}
	if line == "IDLE" {
		return
	}

	switch {
	case conn.Session != nil:
		conn.Session.HandleText(conn.ID, line)
	case conn.Authenticated():
		if err := r.router.DispatchLogin(conn, line); err != nil {
			r.log.Debug("login dispatch error", zap.Int64("conn", conn.ID), zap.Error(err))
		}
	default:
		if err := r.router.DispatchConnect(conn, line); err != nil {
			r.log.Debug("connect dispatch error", zap.Int64("conn", conn.ID), zap.Error(err))
		}
	}
}

// ProcessConnections is the built-in heartbeat system: reap dead, welcome
// pending, then drain inbound queues. Priority -10000, earliest in the
// tick, so connection state is current before sessions and commands run.
func (r *Registry) ProcessConnections(_ time.Duration) error {
	r.reapDead()
	r.welcomePending()
	r.drainInbound()
	return nil
}
