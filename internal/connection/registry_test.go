package connection

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/coremud/core/internal/edge"
)

type fakeRouter struct {
	connectLines []string
	loginLines   []string
}

func (f *fakeRouter) DispatchConnect(_ *Connection, line string) error {
	f.connectLines = append(f.connectLines, line)
	return nil
}

func (f *fakeRouter) DispatchLogin(_ *Connection, line string) error {
	f.loginLines = append(f.loginLines, line)
	return nil
}

type fakeSession struct {
	lines   []string
	removed []int64
}

func (f *fakeSession) HandleText(_ int64, line string) { f.lines = append(f.lines, line) }
func (f *fakeSession) RemoveConnection(id int64)       { f.removed = append(f.removed, id) }

func newTestRegistry() (*Registry, *fakeRouter) {
	router := &fakeRouter{}
	return NewRegistry(router, nil, make(chan struct{}), zap.NewNop()), router
}

func clientDataFrame(t *testing.T, id int64, text string) edge.Frame {
	t.Helper()
	data, err := json.Marshal([]edge.ClientCommand{{Cmd: "text", Args: []string{text}}})
	if err != nil {
		t.Fatalf("marshal client data: %v", err)
	}
	return edge.Frame{Kind: edge.KindClientData, ID: id, Data: data}
}

func TestWelcomeMovesPendingToConnections(t *testing.T) {
	r, _ := newTestRegistry()
	r.HandleFrame(edge.Frame{Kind: edge.KindClientReady, ID: 1})

	welcomed := 0
	r.OnWelcome(func(c *Connection) { welcomed++ })

	if err := r.ProcessConnections(0); err != nil {
		t.Fatalf("ProcessConnections: %v", err)
	}
	if welcomed != 1 {
		t.Fatalf("expected onWelcome to fire once, got %d", welcomed)
	}
	if conn, ok := r.find(1); !ok || conn.State != StateWelcomed {
		t.Fatalf("expected connection 1 to be welcomed, got %+v ok=%v", conn, ok)
	}
}

func TestUnauthenticatedTextRoutesToConnect(t *testing.T) {
	r, router := newTestRegistry()
	r.HandleFrame(edge.Frame{Kind: edge.KindClientReady, ID: 1})
	r.ProcessConnections(0)

	r.HandleFrame(clientDataFrame(t, 1, "connect alice pw"))
	r.ProcessConnections(0)

	if len(router.connectLines) != 1 || router.connectLines[0] != "connect alice pw" {
		t.Fatalf("expected line routed to connect dispatch, got %+v", router.connectLines)
	}
}

func TestAuthenticatedTextRoutesToLogin(t *testing.T) {
	r, router := newTestRegistry()
	r.HandleFrame(edge.Frame{Kind: edge.KindClientReady, ID: 1})
	r.ProcessConnections(0)
	conn, _ := r.find(1)
	conn.AccountID = 42

	r.HandleFrame(clientDataFrame(t, 1, "play alice"))
	r.ProcessConnections(0)

	if len(router.loginLines) != 1 || router.loginLines[0] != "play alice" {
		t.Fatalf("expected line routed to login dispatch, got %+v", router.loginLines)
	}
}

func TestSessionAttachedRoutesToSession(t *testing.T) {
	r, _ := newTestRegistry()
	r.HandleFrame(edge.Frame{Kind: edge.KindClientReady, ID: 1})
	r.ProcessConnections(0)
	conn, _ := r.find(1)
	sess := &fakeSession{}
	conn.Session = sess

	r.HandleFrame(clientDataFrame(t, 1, "look"))
	r.ProcessConnections(0)

	if len(sess.lines) != 1 || sess.lines[0] != "look" {
		t.Fatalf("expected text handed to session, got %+v", sess.lines)
	}
}

func TestIdleIsDiscarded(t *testing.T) {
	r, router := newTestRegistry()
	r.HandleFrame(edge.Frame{Kind: edge.KindClientReady, ID: 1})
	r.ProcessConnections(0)

	r.HandleFrame(clientDataFrame(t, 1, "IDLE"))
	r.ProcessConnections(0)

	if len(router.connectLines) != 0 {
		t.Fatalf("expected IDLE keepalive to be discarded, got %+v", router.connectLines)
	}
}

func TestDisconnectReapsAndDetachesSession(t *testing.T) {
	r, _ := newTestRegistry()
	r.HandleFrame(edge.Frame{Kind: edge.KindClientReady, ID: 1})
	r.ProcessConnections(0)
	conn, _ := r.find(1)
	sess := &fakeSession{}
	conn.Session = sess

	disconnected := 0
	r.OnDisconnected(func(c *Connection) { disconnected++ })

	r.HandleFrame(edge.Frame{Kind: edge.KindClientDisconnected, ID: 1})
	r.ProcessConnections(0)

	if disconnected != 1 {
		t.Fatalf("expected onDisconnected to fire once, got %d", disconnected)
	}
	if len(sess.removed) != 1 || sess.removed[0] != 1 {
		t.Fatalf("expected connection 1 to be detached from its session, got %+v", sess.removed)
	}
	if _, ok := r.find(1); ok {
		t.Fatalf("expected connection to be gone after reaping")
	}
}

func TestClientCapabilitiesUpdatesCaps(t *testing.T) {
	r, _ := newTestRegistry()
	r.HandleFrame(edge.Frame{Kind: edge.KindClientReady, ID: 1})
	r.ProcessConnections(0)

	r.HandleFrame(edge.Frame{Kind: edge.KindClientCapabilities, ID: 1, Capabilities: &edge.ProtocolCaps{Color: true, Width: 100}})

	conn, _ := r.find(1)
	if caps := conn.Caps(); caps == nil || !caps.Color || caps.Width != 100 {
		t.Fatalf("expected updated caps, got %+v", caps)
	}
}
