// Package db opens the Postgres pool and provides the row store used by
// every repository.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	envconfig "redditxstory/pkg/config"
)

// Mode tells whether a database is configured at all.
type Mode int

const (
	// Disabled means no DATABASE_URL was given; every query yields no rows.
	Disabled Mode = iota
	// Connected means queries go to the pool opened from DSN.
	Connected
)

func (m Mode) String() string {
	if m == Connected {
		return "connected"
	}
	return "disabled"
}

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// Config selects the store mode and carries the connection settings.
type Config struct {
	Mode       Mode
	DSN        string
	RequireSSL bool // PGSSL=true forces sslmode=require
	Pool       ConnectionConfig
}

// LoadConfigFromEnv builds a Config from DATABASE_URL, PGSSL and the
// DB_* pool variables. An empty DATABASE_URL selects Disabled.
func LoadConfigFromEnv() Config {
	cfg := Config{
		DSN:        strings.TrimSpace(envconfig.GetEnvString("DATABASE_URL", "")),
		RequireSSL: envconfig.GetEnvBool("PGSSL", false),
		Pool:       getConnectionConfigFromEnv(),
	}
	if cfg.DSN != "" {
		cfg.Mode = Connected
	}
	return cfg
}

// ConnString returns the DSN with sslmode=require appended when RequireSSL
// is set and the DSN does not already choose an sslmode.
func (c Config) ConnString() string {
	if !c.RequireSSL || strings.Contains(c.DSN, "sslmode=") {
		return c.DSN
	}
	if u, err := url.Parse(c.DSN); err == nil && u.Scheme != "" {
		q := u.Query()
		q.Set("sslmode", "require")
		u.RawQuery = q.Encode()
		return u.String()
	}
	// key=value form
	return c.DSN + " sslmode=require"
}

// Open creates and configures the connection pool described by cfg.
// It returns a nil *sql.DB and no error in Disabled mode.
func Open(cfg Config) (*sql.DB, error) {
	if cfg.Mode == Disabled {
		slog.Warn("DATABASE_URL not set, running without a database")
		return nil, nil
	}

	db, err := sql.Open("pgx", cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Pool.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Pool.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Pool.ConnMaxIdleTime)

	slog.Info("database connection pool configured",
		slog.Int("max_open_conns", cfg.Pool.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.Pool.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.Pool.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.Pool.ConnMaxIdleTime),
		slog.Bool("require_ssl", cfg.RequireSSL))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("database connection established successfully")
	return db, nil
}

// getConnectionConfigFromEnv reads pool settings, ignoring non-positive values.
func getConnectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()

	if v := envconfig.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns); v > 0 {
		cfg.MaxOpenConns = v
	}
	if v := envconfig.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns); v > 0 {
		cfg.MaxIdleConns = v
	}
	if v := envconfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime); v > 0 {
		cfg.ConnMaxLifetime = v
	}
	if v := envconfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime); v > 0 {
		cfg.ConnMaxIdleTime = v
	}
	return cfg
}
