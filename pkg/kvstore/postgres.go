package kvstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// Config holds database connection configuration.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_state (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Postgres is a Store backed by a single PostgreSQL table of JSON snapshots.
type Postgres struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgres connects to PostgreSQL, ensures the snapshot table exists and
// returns the store.
func NewPostgres(cfg Config, logger *slog.Logger) (*Postgres, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	if _, err = db.ExecContext(ctx, kvSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure kv_state table: %w", err)
	}

	return &Postgres{db: db, logger: logger}, nil
}

// Load implements Store.
func (p *Postgres) Load(ctx context.Context, key string, dest any) bool {
	var raw []byte
	err := p.db.GetContext(ctx, &raw, `SELECT value FROM kv_state WHERE key = $1`, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			p.logger.Error("failed to load stored value, falling back to default", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		p.logger.Warn("discarding malformed stored value", "key", key, "error", err)
		return false
	}
	return true
}

// Save implements Store.
func (p *Postgres) Save(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		p.logger.Error("failed to marshal value for persistence", "key", key, "error", err)
		return
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO kv_state (key, value, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, raw)
	if err != nil {
		p.logger.Error("failed to persist value", "key", key, "error", err)
	}
}

// Close closes the underlying database connection.
func (p *Postgres) Close() error {
	return p.db.Close()
}
