package persist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver" // registers the "sqlite3" database/sql driver
	_ "github.com/ncruces/go-sqlite3/embed"  // statically links the sqlite3 WASM build
	"go.uber.org/zap"

	"github.com/coremud/core/internal/config"
)

// DB wraps the single sqlite connection the tick thread touches; the
// relational store is single-connection and touched only from that thread.
type DB struct {
	Conn *sql.DB
	log  *zap.Logger
}

// NewDB opens the sqlite file named by cfg and verifies the connection.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return &DB{Conn: conn, log: log}, nil
}

func (db *DB) Close() error {
	return db.Conn.Close()
}
