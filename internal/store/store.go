// Package store provides the persistence gateway that holds the last submitted member record.
package store

//go:generate mockgen -source=store.go -destination=mocks/gateway.go -package=mocks Gateway

import (
	"context"
	"errors"
)

// MemberDataKey is the fixed key of the persisted record.
const MemberDataKey = "memberData"

// ErrNotFound is returned by Read when nothing is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// Gateway is an opaque key-value blob store.
// Write overwrites; there is no append and no history.
type Gateway interface {
	Write(ctx context.Context, key string, value []byte) error
	Read(ctx context.Context, key string) ([]byte, error)
}

// Namespace returns a Gateway that prefixes every key, scoping one form session.
func Namespace(g Gateway, prefix string) Gateway {
	return &namespaced{inner: g, prefix: prefix}
}

type namespaced struct {
	inner  Gateway
	prefix string
}

func (n *namespaced) Write(ctx context.Context, key string, value []byte) error {
	return n.inner.Write(ctx, n.prefix+key, value)
}

func (n *namespaced) Read(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Read(ctx, n.prefix+key)
}

// SessionPrefix is the key prefix used for a form session.
func SessionPrefix(sessionID string) string {
	return "session:" + sessionID + ":"
}
