package edge

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/coremud/core/internal/config"
)

// LinkManager is the reconnecting outer loop: connect, hand off to a Link,
// and on failure wait a fixed backoff before retrying, forever until
// stopped.
type LinkManager struct {
	cfg config.ThermiteConfig
	in  Inbox
	out Outbox
	log *zap.Logger

	stop chan struct{}
}

// NewLinkManager creates a manager that will dial cfg.Address:cfg.Port. in
// is where every parsed inbound frame is delivered; out is where the caller
// enqueues outbound frames (any goroutine may send, the manager's current
// Link writer is the only consumer at a time).
func NewLinkManager(cfg config.ThermiteConfig, in Inbox, out Outbox, log *zap.Logger) *LinkManager {
	return &LinkManager{
		cfg:  cfg,
		in:   in,
		out:  out,
		log:  log,
		stop: make(chan struct{}),
	}
}

// Run connects, runs, reconnects on failure, and returns once Stop is
// called. Intended to run in its own goroutine for the process lifetime.
func (m *LinkManager) Run(ctx context.Context) {
	backoff := m.cfg.ReconnectBackoff
	if backoff <= 0 {
		backoff = 5 * time.Second
	}

	for {
		select {
		case <-m.stop:
			return
		case <-ctx.Done():
			return
		default:
		}

		conn, err := m.dial(ctx)
		if err != nil {
			m.log.Warn("edge link connect failed, retrying", zap.Error(err), zap.Duration("backoff", backoff))
			if !m.sleep(ctx, backoff) {
				return
			}
			continue
		}

		link := newLink(conn, m.in, m.out, m.log)
		m.log.Info("edge link established")
		if err := link.Run(ctx); err != nil {
			m.log.Warn("edge link dropped, reconnecting", zap.Error(err))
		}

		if !m.sleep(ctx, backoff) {
			return
		}
	}
}

func (m *LinkManager) dial(ctx context.Context) (*websocket.Conn, error) {
	u := url.URL{Scheme: "ws", Host: fmt.Sprintf("%s:%d", m.cfg.Address, m.cfg.Port)}
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial thermite at %s: %w", u.String(), err)
	}
	return conn, nil
}

// sleep waits for d, returning false if Stop or ctx cancellation arrived
// first (the caller should exit without retrying).
func (m *LinkManager) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-m.stop:
		return false
	case <-ctx.Done():
		return false
	}
}

// Stop requests the manager (and its current Link, if any) to shut down.
// Safe to call once; a second call panics on the closed channel, matching
// the rest of the codebase's sync.Once-free, call-once shutdown contract.
func (m *LinkManager) Stop() {
	close(m.stop)
}

// Send enqueues an outbound frame. Non-blocking would risk silently
// dropping player output, so Send blocks until the current Link's writer
// (or a future one, once reconnected) picks it up, or ctx is cancelled.
func (m *LinkManager) Send(ctx context.Context, f Frame) error {
	select {
	case m.out <- f:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
