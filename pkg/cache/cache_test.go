package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/glitcher/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "render:abc", []byte("gif"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if data, hit, err := c.Get(ctx, "render:abc"); hit || data != nil || err != nil {
		t.Errorf("Get after Set = %v, %v, %v, want a clean miss", data, hit, err)
	}
	if err := c.Delete(ctx, "render:abc"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestHash(t *testing.T) {
	a, b := Hash([]byte("frame")), Hash([]byte("frame"))
	if a != b {
		t.Error("Hash is not deterministic")
	}
	if a == Hash([]byte("frames")) {
		t.Error("distinct inputs share a hash")
	}
	if len(a) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(a))
	}
	if k := hashKey("image", "abc"); !strings.HasPrefix(k, "image:") || len(k) != len("image:")+64 {
		t.Errorf("hashKey = %q", k)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// ImageKey depends on the target dimensions
	ik1 := k.ImageKey("abc", ImageKeyOpts{Width: 1024, Height: 1024})
	ik2 := k.ImageKey("abc", ImageKeyOpts{Width: 1280, Height: 768})
	if ik1 == ik2 {
		t.Error("Different ImageKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(ik1, "image:") {
		t.Errorf("ImageKey unexpected prefix: %s", ik1)
	}

	// RenderKey should include every option in the hash
	base := RenderKeyOpts{ConfigHash: "cfg", Frames: 60, FPS: 30, Format: "gif", Seed: 1}
	rk := k.RenderKey("abc", base)
	variants := []RenderKeyOpts{base, base, base, base, base}
	variants[0].ConfigHash = "other"
	variants[1].Frames = 61
	variants[2].FPS = 60
	variants[3].Format = "png"
	variants[4].Seed = 2
	for _, v := range variants {
		if k.RenderKey("abc", v) == rk {
			t.Errorf("RenderKey(%+v) collides with %+v", v, base)
		}
	}
	if k.RenderKey("abc", base) != rk {
		t.Error("RenderKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	// All keys should be prefixed
	opts := RenderKeyOpts{Frames: 10, Format: "png"}
	key := scoped.RenderKey("abc", opts)
	if key != "user:123:"+inner.RenderKey("abc", opts) {
		t.Errorf("ScopedKeyer RenderKey unexpected: %s", key)
	}

	imageKey := scoped.ImageKey("abc", ImageKeyOpts{})
	if !strings.HasPrefix(imageKey, "user:123:image:") {
		t.Errorf("ScopedKeyer ImageKey should be prefixed: %s", imageKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ImageKey("abc", ImageKeyOpts{Width: 1})
	if key != "prefix:"+NewDefaultKeyer().ImageKey("abc", ImageKeyOpts{Width: 1}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("empty cache should miss")
	}

	value := []byte("value")
	if err := c.Set(ctx, "key", value, 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	value[0] = 'X' // the cache keeps its own copy

	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get = %q, %v, %v, want \"value\", true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Set(ctx, "key", []byte("v"), time.Minute)
	if _, hit, _ := c.Get(ctx, "key"); !hit {
		t.Fatal("entry should be live before its ttl")
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("entry should expire after its ttl")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after lazy expiry", c.Len())
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), time.Hour); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	data, hit, err := c.Get(ctx, "b")
	if err != nil || !hit || string(data) != "b" {
		t.Errorf("Get(b) = %q, %v, %v", data, hit, err)
	}

	// Entries without a ttl are counted too
	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}

	entries, size, err := c.Usage()
	if err != nil || entries != 4 || size != int64(4*8+3+1) {
		t.Errorf("Usage() = %d entries, %d bytes, %v", entries, size, err)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 4 {
		t.Errorf("Clear() removed %d entries, want 4", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestFileCacheExpiryAndCorruption(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "render:x", []byte("GIF89a"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if data, hit, _ := c.Get(ctx, "render:x"); !hit || string(data) != "GIF89a" {
		t.Fatalf("Get before expiry = %q, %v", data, hit)
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "render:x"); hit {
		t.Error("entry survived its ttl")
	}

	broken := c.path("broken")
	if err := os.MkdirAll(filepath.Dir(broken), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte{1, 2}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "broken"); hit || err != nil {
		t.Errorf("truncated entry = %v, %v, want a miss", hit, err)
	}
}

type countingHooks struct {
	observability.NoopCacheHooks
	hits, misses, sets int
}

func (h *countingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestInstrumented(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	ctx := context.Background()
	c := Instrumented(NewMemoryCache(), "render")
	c.Get(ctx, "k")
	c.Set(ctx, "k", []byte("v"), 0)
	c.Get(ctx, "k")

	if hooks.hits != 1 || hooks.misses != 1 || hooks.sets != 1 {
		t.Errorf("hooks = %d hits, %d misses, %d sets, want 1 each", hooks.hits, hooks.misses, hooks.sets)
	}
}

func TestTransient(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) != nil")
	}
	err := Transient(ErrUnavailable)
	if !IsTransient(err) || !errors.Is(err, ErrUnavailable) {
		t.Errorf("Transient(ErrUnavailable) = %v, lost its marking or cause", err)
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("message = %q", err.Error())
	}
	if IsTransient(ErrUnavailable) {
		t.Error("unmarked error reported as transient")
	}
}

func TestBackoffDo(t *testing.T) {
	b := Backoff{Attempts: 3, Delay: time.Millisecond}
	permanent := errors.New("bad key")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"first try", 0, nil, 1, nil},
		{"permanent", 5, permanent, 1, permanent},
		{"recovers", 2, Transient(ErrUnavailable), 3, nil},
		{"exhausted", 5, Transient(ErrUnavailable), 3, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("Do() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Do() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffDoCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Backoff{Attempts: 5, Delay: time.Hour}.Do(ctx, func() error {
		return Transient(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("Do() = %v, want context.Canceled", err)
	}
}
