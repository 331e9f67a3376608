package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/member-form/internal/db"
)

// Supported backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	RedisURL    string
	DatabaseURL string
	RecordTTL   time.Duration
}

// Opened is a ready Gateway plus the function that releases it.
type Opened struct {
	Gateway Gateway
	Close   func() error
}

// Open connects the configured backend.
func Open(ctx context.Context, opts Options) (*Opened, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return &Opened{Gateway: NewMemory(), Close: func() error { return nil }}, nil

	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis backend requires a redis URL")
		}
		r, err := ConnectRedis(ctx, opts.RedisURL, opts.RecordTTL)
		if err != nil {
			return nil, err
		}
		return &Opened{Gateway: r, Close: r.Close}, nil

	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend requires a database URL")
		}
		database, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		p := NewPostgres(database)
		return &Opened{Gateway: p, Close: p.Close}, nil
	}

	return nil, fmt.Errorf("unknown store backend: %q", opts.Backend)
}
