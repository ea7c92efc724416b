package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/glitcher/pkg/engine"
	"github.com/matzehuels/glitcher/pkg/errors"
)

func TestNewSession(t *testing.T) {
	sess := New(engine.DefaultConfig(), nil, 0)
	if sess.ID == uuid.Nil {
		t.Error("New() ID is nil")
	}
	if got := sess.ExpiresAt().Sub(sess.CreatedAt); got != DefaultTTL {
		t.Errorf("lifetime = %v, want %v", got, DefaultTTL)
	}
	if sess.IsExpired() {
		t.Error("new session is expired")
	}
}

func TestSessionDoExtendsLifetime(t *testing.T) {
	sess := New(engine.DefaultConfig(), nil, time.Hour)
	before := sess.ExpiresAt()
	time.Sleep(2 * time.Millisecond)

	var loaded bool
	err := sess.Do(func(s *engine.Scheduler) error {
		loaded = s.Loaded()
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if loaded {
		t.Error("fresh scheduler reports a loaded image")
	}
	if !sess.ExpiresAt().After(before) {
		t.Error("Do did not extend the session")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	sess := New(engine.DefaultConfig(), nil, time.Hour)

	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get(missing) = %v, want %s", err, errors.ErrCodeSessionNotFound)
	}
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get(ctx, sess.ID)
	if err != nil || got != sess {
		t.Fatalf("Get = %v, %v; want stored session", got, err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len() = %d after Delete, want 0", store.Len())
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	short := New(engine.DefaultConfig(), nil, time.Millisecond)
	long := New(engine.DefaultConfig(), nil, time.Hour)
	store.Set(ctx, short)
	store.Set(ctx, long)
	time.Sleep(5 * time.Millisecond)

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d after Cleanup, want 1", store.Len())
	}

	store.Set(ctx, short)
	if _, err := store.Get(ctx, short.ID); err != ErrExpired {
		t.Errorf("Get(expired) = %v, want ErrExpired", err)
	}
	if store.Len() != 1 {
		t.Error("Get(expired) did not remove the session")
	}
}

func TestMemoryStoreLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(1)
	first := New(engine.DefaultConfig(), nil, 0)
	if err := store.Set(ctx, first); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, first); err != nil {
		t.Errorf("re-Set of a stored session = %v, want nil", err)
	}
	if err := store.Set(ctx, New(engine.DefaultConfig(), nil, 0)); err != ErrFull {
		t.Errorf("Set over limit = %v, want ErrFull", err)
	}
}

func TestRunCleanupStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunCleanup(ctx, NewMemoryStore(0), time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not return after cancel")
	}
}
