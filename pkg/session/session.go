// Package session manages interactive glitch sessions for the HTTP API.
//
// A session owns one [engine.Scheduler] and the lock that serializes access
// to it. Every request that touches a scheduler goes through [Session.Do],
// which holds the lock for the whole command or frame.
//
// # Architecture
//
// Sessions expire after a period of inactivity. The Store interface supports:
//   - Get/Set/Delete operations
//   - Automatic expiration checking
//   - Cleanup of expired sessions
//
// Schedulers hold live image buffers and are not serializable, so sessions
// are kept in process memory; use one server instance per session set.
//
// # Usage
//
//	store := session.NewMemoryStore(0)
//	sess := session.New(engine.DefaultConfig(), logger, session.DefaultTTL)
//	store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err // errors.ErrCodeSessionNotFound
//	}
//	err = sess.Do(func(s *engine.Scheduler) error {
//	    _, err := s.Step(ctx)
//	    return err
//	})
package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/errors"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound error = errors.New(errors.ErrCodeSessionNotFound, "session not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired error = errors.New(errors.ErrCodeSessionNotFound, "session expired")

	// ErrFull is returned when a store has reached its session limit.
	ErrFull error = errors.New(errors.ErrCodeUnsupported, "too many sessions")
)

// Default durations.
const (
	// DefaultTTL is how long an idle session is kept.
	DefaultTTL = 30 * time.Minute

	// DefaultCleanupInterval is how often expired sessions are removed.
	DefaultCleanupInterval = time.Minute
)

// Session is one interactive scheduler.
type Session struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ttl time.Duration

	mu        sync.Mutex
	sched     *engine.Scheduler
	expiresAt time.Time
}

// New creates a session with a fresh scheduler for cfg.
func New(cfg engine.Config, logger *log.Logger, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	id := uuid.New()
	if logger != nil {
		logger = logger.With("session", id.String()[:8])
	}
	return &Session{
		ID:        id,
		CreatedAt: now,
		ttl:       ttl,
		sched:     engine.New(cfg, logger),
		expiresAt: now.Add(ttl),
	}
}

// Do runs fn with exclusive access to the scheduler and extends the
// session's lifetime.
func (s *Session) Do(fn func(*engine.Scheduler) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = time.Now().Add(s.ttl)
	return fn(s.sched)
}

// ExpiresAt returns when the session expires unless it is used again.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt())
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session doesn't exist and ErrExpired if it
	// exists but has expired.
	Get(ctx context.Context, id uuid.UUID) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id uuid.UUID) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}
