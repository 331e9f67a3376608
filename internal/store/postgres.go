package store

import (
	"context"

	"github.com/jonathan/member-form/internal/db"
)

// Postgres stores blobs in the member_data table.
type Postgres struct {
	db *db.DB
}

// NewPostgres wraps a connected database. Call db.EnsureSchema first.
func NewPostgres(database *db.DB) *Postgres {
	return &Postgres{db: database}
}

// Write upserts key.
func (p *Postgres) Write(ctx context.Context, key string, value []byte) error {
	return p.db.PutMemberData(ctx, key, value)
}

// Read returns the value of key or ErrNotFound.
func (p *Postgres) Read(ctx context.Context, key string) ([]byte, error) {
	md, err := p.db.GetMemberData(ctx, key)
	if err != nil {
		return nil, err
	}
	if md == nil {
		return nil, ErrNotFound
	}
	return md.Value, nil
}

// Close closes the pool.
func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
