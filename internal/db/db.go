// Package db provides PostgreSQL access for persisted member records.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// MemberData is one stored blob
type MemberData struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

const schemaDDL = `CREATE TABLE IF NOT EXISTS member_data (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the member_data table if it does not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to create member_data table: %w", err)
	}
	return nil
}

// PutMemberData stores a blob under key, replacing any previous value
func (db *DB) PutMemberData(ctx context.Context, key string, value []byte) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO member_data (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save member data %s: %w", key, err)
	}
	return nil
}

// GetMemberData retrieves the blob stored under key. Returns nil when absent.
func (db *DB) GetMemberData(ctx context.Context, key string) (*MemberData, error) {
	var md MemberData
	err := db.pool.QueryRow(ctx,
		`SELECT key, value, updated_at FROM member_data WHERE key = $1`,
		key,
	).Scan(&md.Key, &md.Value, &md.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member data %s: %w", key, err)
	}
	return &md, nil
}
