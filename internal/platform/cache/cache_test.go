package cache

import (
	"testing"
	"time"
)

func TestTags_PutGet(t *testing.T) {
	t.Parallel()

	c := NewTags(time.Minute)
	tags := []string{"reports"}

	if _, ok := c.Get("k", tags); ok {
		t.Fatalf("empty cache should miss")
	}
	c.Put("k", tags, 42)
	v, ok := c.Get("k", tags)
	if !ok || v != 42 {
		t.Fatalf("Get = (%v, %v)", v, ok)
	}
}

func TestTags_InvalidateStalesEntries(t *testing.T) {
	t.Parallel()

	c := NewTags(time.Minute)
	c.Put("rev", []string{"reports", "analytics"}, "x")
	c.Put("menu", []string{"menu"}, "y")

	c.Invalidate("reports")

	if _, ok := c.Get("rev", []string{"reports", "analytics"}); ok {
		t.Fatalf("entry under bumped tag should be stale")
	}
	if v, ok := c.Get("menu", []string{"menu"}); !ok || v != "y" {
		t.Fatalf("unrelated tag should survive, got (%v, %v)", v, ok)
	}

	// refill under the new version works
	c.Put("rev", []string{"reports", "analytics"}, "x2")
	if v, ok := c.Get("rev", []string{"reports", "analytics"}); !ok || v != "x2" {
		t.Fatalf("refilled entry should hit, got (%v, %v)", v, ok)
	}
}

func TestTags_InvalidateMatchesWholeTagName(t *testing.T) {
	t.Parallel()

	c := NewTags(time.Minute)
	c.Put("items", []string{"submenu"}, "deep")

	c.Invalidate("menu")

	if v, ok := c.Get("items", []string{"submenu"}); !ok || v != "deep" {
		t.Fatalf("tag sharing a suffix must not be evicted, got (%v, %v)", v, ok)
	}
}

func TestTags_TTLExpiry(t *testing.T) {
	t.Parallel()

	c := NewTags(time.Minute)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Put("k", []string{"reports"}, 1)
	c.now = func() time.Time { return base.Add(2 * time.Minute) }

	if _, ok := c.Get("k", []string{"reports"}); ok {
		t.Fatalf("expired entry should miss")
	}
}
