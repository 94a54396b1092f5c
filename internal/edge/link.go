// Package edge maintains the single outbound WebSocket connection to the
// edge daemon ("Thermite") that terminates the actual client protocol. The
// core never speaks Telnet or WebSocket to a player directly; it exchanges
// JSON frames with Thermite over this one duplex channel.
package edge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Inbox receives every frame the reader parses off the wire, in arrival
// order. It has a single reader: the relay goroutine in cmd/coremud that
// hands each frame to the connection registry.
type Inbox chan Frame

// Outbox carries frames a Link's writer should emit. Any goroutine may
// enqueue (MPSC); only the Link's writer task dequeues.
type Outbox chan Frame

// Link owns one live WebSocket connection to Thermite: a reader task that
// parses inbound frames onto In, and a writer task that drains Out onto the
// socket. Either task exiting ends the Link; LinkManager reconnects.
type Link struct {
	conn *websocket.Conn
	in   Inbox
	out  Outbox
	log  *zap.Logger
}

func newLink(conn *websocket.Conn, in Inbox, out Outbox, log *zap.Logger) *Link {
	return &Link{conn: conn, in: in, out: out, log: log}
}

// Run races the reader against the writer and returns once either exits.
// ctx cancellation triggers a clean close handshake followed by return.
func (l *Link) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return l.readLoop(ctx) })
	g.Go(func() error { return l.writeLoop(ctx) })
	err := g.Wait()
	l.conn.Close()
	return err
}

func (l *Link) readLoop(ctx context.Context) error {
	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("edge link read: %w", err)
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			l.log.Warn("malformed frame from edge, dropping", zap.Error(err))
			continue
		}
		select {
		case l.in <- f:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Link) writeLoop(ctx context.Context) error {
	for {
		select {
		case f := <-l.out:
			data, err := json.Marshal(f)
			if err != nil {
				l.log.Error("failed to marshal outbound frame", zap.Error(err))
				continue
			}
			if err := l.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return fmt.Errorf("edge link write: %w", err)
			}
		case <-ctx.Done():
			deadline := time.Now().Add(time.Second)
			_ = l.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
			return ctx.Err()
		}
	}
}
