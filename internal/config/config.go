// Package config loads the process-wide configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the process-wide configuration, read once at startup.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Thermite    ThermiteConfig    `toml:"thermite"`
	Heartbeat   HeartbeatConfig   `toml:"heartbeat"`
	Logging     LoggingConfig     `toml:"logging"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not read from config
}

// DatabaseConfig names the SQLite store.
type DatabaseConfig struct {
	DBName          string        `toml:"db_name"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

// ThermiteConfig names the edge endpoint.
type ThermiteConfig struct {
	Address          string        `toml:"address"`
	Port             int           `toml:"port"`
	ReconnectBackoff time.Duration `toml:"reconnect_backoff"` // default 5s
}

// HeartbeatConfig controls the fixed-rate simulation tick.
type HeartbeatConfig struct {
	Interval    time.Duration `toml:"interval"`     // default 100ms
	MinimumWait time.Duration `toml:"minimum_wait"` // default 1ms, used when a tick overruns
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// RateLimitConfig holds account-creation rate-limit settings. They are
// parsed and defaulted but no package reads them: account creation is not
// rate-limited and no eviction sweep runs.
type RateLimitConfig struct {
	Enabled               bool          `toml:"enabled"`
	AccountsPerIPPerHour  int           `toml:"accounts_per_ip_per_hour"`
	EvictionSweepInterval time.Duration `toml:"eviction_sweep_interval"`
}

// ConcurrencyConfig holds worker-pool settings for the edge's I/O tasks.
// They are parsed and defaulted but no package reads them; no worker pool
// is sized from them.
type ConcurrencyConfig struct {
	EnableMultithreading bool `toml:"enable_multithreading"`
	ThreadsCount         int  `toml:"threads_count"`
}

// Load reads and parses a TOML config file, overlaying it on defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Name: "CoreMUD"},
		Database: DatabaseConfig{
			DBName:          "coremud.db",
			MaxOpenConns:    1, // the relational store is touched only by the tick thread
			ConnMaxLifetime: 30 * time.Minute,
		},
		Thermite: ThermiteConfig{
			Address:          "127.0.0.1",
			Port:             7777,
			ReconnectBackoff: 5 * time.Second,
		},
		Heartbeat: HeartbeatConfig{
			Interval:    100 * time.Millisecond,
			MinimumWait: time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		RateLimit: RateLimitConfig{
			Enabled:               true,
			AccountsPerIPPerHour:  5,
			EvictionSweepInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			EnableMultithreading: true,
			ThreadsCount:         0,
		},
	}
}
