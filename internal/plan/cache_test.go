package plan

import (
	"testing"
	"time"
)

func TestTTLCacheHitAndExpiry(t *testing.T) {
	c := NewTTLCache[string](time.Minute)
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Set("k", "v")
	if got, ok := c.Get("k"); !ok || got != "v" {
		t.Fatalf("Get = %q, %v", got, ok)
	}

	// Advance past the TTL; the entry is treated as absent.
	base = base.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry still served")
	}
	if c.Len() != 0 {
		t.Fatal("expired entry not reaped on read")
	}
}

func TestTTLCacheSetRefreshes(t *testing.T) {
	c := NewTTLCache[int](time.Minute)
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Set("k", 1)
	base = base.Add(50 * time.Second)
	c.Set("k", 2)
	base = base.Add(30 * time.Second)

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("refreshed entry expired")
	}
	if got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache[string](time.Minute)
	c.Set("k", "v")
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("deleted entry still present")
	}
}
