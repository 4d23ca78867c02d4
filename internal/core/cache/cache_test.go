package cache

import (
	"testing"
	"time"
)

func TestCacheGetSet(t *testing.T) {
	c := New[string, int](time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("k", 42)

	v, ok := c.Get("k")
	if !ok || v != 42 {
		t.Fatalf("Get = (%v, %v), want (42, true)", v, ok)
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := New[string, string](time.Minute)

	c.Set("k", "old")
	c.Set("k", "new")

	v, ok := c.Get("k")
	if !ok || v != "new" {
		t.Fatalf("Get = (%q, %v), want last write", v, ok)
	}

	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	c := New[string, int](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", 7)

	now = now.Add(59 * time.Second)

	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired before TTL")
	}

	now = now.Add(2 * time.Second)

	if _, ok := c.Get("k"); ok {
		t.Fatal("entry still fresh past TTL")
	}

	// The stale entry is evicted on read.
	if c.Len() != 0 {
		t.Fatalf("Len after eviction = %d, want 0", c.Len())
	}
}

func TestCacheZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	c := New[string, int](0)
	c.now = func() time.Time { return now }

	c.Set("k", 1)

	now = now.Add(24 * 365 * time.Hour)

	if _, ok := c.Get("k"); !ok {
		t.Fatal("zero-TTL entry should never expire")
	}
}

func TestCacheRefreshResetsTTL(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	c := New[string, int](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", 1)

	now = now.Add(50 * time.Second)
	c.Set("k", 2)

	now = now.Add(50 * time.Second)

	v, ok := c.Get("k")
	if !ok || v != 2 {
		t.Fatalf("Get = (%v, %v), want refreshed entry (2, true)", v, ok)
	}
}
