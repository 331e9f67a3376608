// Package session keeps one form state machine per browser session.
package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zekroTJA/timedmap"
	"go.uber.org/zap"

	"github.com/jonathan/member-form/internal/form"
	"github.com/jonathan/member-form/internal/metrics"
	"github.com/jonathan/member-form/internal/store"
	"github.com/jonathan/member-form/internal/validation"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Session owns one form machine. Transitions are serialized by Do.
type Session struct {
	ID string

	mu      sync.Mutex
	machine *form.Machine
	ended   atomic.Bool
}

// Do runs fn with exclusive access to the session's machine.
func (s *Session) Do(fn func(m *form.Machine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.machine)
}

// Config wires a Registry.
type Config struct {
	Gateway   store.Gateway
	Validator *validation.Validator
	Logger    *zap.SugaredLogger
	Metrics   *metrics.Metrics
	Reveal    form.Reveal
	TTL       time.Duration
	// CleanupInterval defaults to a quarter of TTL.
	CleanupInterval time.Duration
}

// Registry holds live sessions with an idle expiry refreshed on every access.
type Registry struct {
	sessions *timedmap.TimedMap
	cfg      Config
	active   atomic.Int64
}

// NewRegistry starts a registry and its background cleaner. Call Close to stop it.
func NewRegistry(cfg Config) *Registry {
	if cfg.Gateway == nil {
		cfg.Gateway = store.NewMemory()
	}
	if cfg.Validator == nil {
		cfg.Validator = validation.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = cfg.TTL / 4
	}

	return &Registry{
		sessions: timedmap.New(cfg.CleanupInterval),
		cfg:      cfg,
	}
}

// Create starts a new session in the editing phase.
func (r *Registry) Create() *Session {
	id := uuid.New().String()
	s := &Session{
		ID: id,
		machine: form.New(form.Config{
			Validator: r.cfg.Validator,
			Gateway:   store.Namespace(r.cfg.Gateway, store.SessionPrefix(id)),
			Logger:    r.cfg.Logger.With("session_id", id),
			Metrics:   r.cfg.Metrics,
			Reveal:    r.cfg.Reveal,
		}),
	}

	// The expiry callback runs under the map's lock and must not call back into it.
	r.sessions.Set(id, s, r.cfg.TTL, func(interface{}) {
		if r.release(s) {
			r.cfg.Logger.Debugw("Session expired", "session_id", id)
		}
	})
	r.cfg.Metrics.SetSessionsActive(int(r.active.Add(1)))
	r.cfg.Logger.Infow("Session created", "session_id", id)
	return s
}

// Get returns a live session and extends its idle expiry.
func (r *Registry) Get(id string) (*Session, error) {
	s, ok := r.sessions.GetValue(id).(*Session)
	if !ok || s == nil {
		return nil, ErrNotFound
	}
	if err := r.sessions.SetExpires(id, r.cfg.TTL); err != nil {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete ends a session. Its stored record stays in the gateway.
func (r *Registry) Delete(id string) {
	s, ok := r.sessions.GetValue(id).(*Session)
	if !ok || s == nil {
		return
	}
	r.sessions.Remove(id)
	if r.release(s) {
		r.cfg.Logger.Infow("Session deleted", "session_id", id)
	}
}

// release counts a session as gone. Only the first call per session has an effect,
// whether it comes from Delete or from expiry.
func (r *Registry) release(s *Session) bool {
	if !s.ended.CompareAndSwap(false, true) {
		return false
	}
	r.cfg.Metrics.SetSessionsActive(int(r.active.Add(-1)))
	return true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.sessions.Size()
}

// TTL returns the idle expiry.
func (r *Registry) TTL() time.Duration {
	return r.cfg.TTL
}

// Close stops the background cleaner.
func (r *Registry) Close() {
	r.sessions.StopCleaner()
}
