package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := New("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("connect cache: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "vis:test", []byte(`{"tier":"premium"}`), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := c.Get(ctx, "vis:test")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"tier":"premium"}` {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestCache_MissingKeyIsMiss(t *testing.T) {
	c, _ := newTestCache(t)

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss, got %v", err)
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Second)

	_, err := c.Get(ctx, "short")
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("expected expiry miss, got %v", err)
	}
}

func TestCache_NilCacheAlwaysMisses(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("nil cache set must be a no-op, got %v", err)
	}
	_, err := c.Get(ctx, "k")
	if !errors.Is(err, ErrMiss) {
		t.Fatalf("expected ErrMiss from nil cache, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil cache close must be a no-op, got %v", err)
	}
}
