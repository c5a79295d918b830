// Package cache provides a small in-process read cache invalidated by tag.
//
// Report reads cache under one or more tags; a sync run bumps the tags it
// touched and every entry filled under an older tag version goes stale.
// Best effort only: a miss just recomputes.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const defaultTTL = 5 * time.Minute

type entry struct {
	val      any
	stamp    string
	filledAt time.Time
}

// Tags is a tag-versioned cache safe for concurrent use
type Tags struct {
	mu       sync.RWMutex
	versions map[string]uint64
	entries  map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

// NewTags builds a cache with the given entry TTL, <=0 uses the default
func NewTags(ttl time.Duration) *Tags {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Tags{
		versions: make(map[string]uint64),
		entries:  make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Invalidate bumps each tag's version, staling everything filled under it
func (t *Tags) Invalidate(tags ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tag := range tags {
		t.versions[tag]++
	}
	// drop entries eagerly so a churn-heavy sync does not pin dead values
	for k, e := range t.entries {
		if stampHasTag(e.stamp, tags) {
			delete(t.entries, k)
		}
	}
}

// stampHasTag reports whether any segment of a version stamp belongs to
// one of the given tags. Segments match on the whole tag name, so "menu"
// never touches entries stamped under "submenu".
func stampHasTag(stamp string, tags []string) bool {
	for _, seg := range strings.Split(stamp, ",") {
		name, _, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		for _, tag := range tags {
			if name == tag {
				return true
			}
		}
	}
	return false
}

// stampLocked renders the current version vector for a tag set
func (t *Tags) stampLocked(tags []string) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = fmt.Sprintf("%s=%d", tag, t.versions[tag])
	}
	return strings.Join(parts, ",")
}

// Get returns the cached value for key when it is fresh under tags
func (t *Tags) Get(key string, tags []string) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[key]
	if !ok {
		return nil, false
	}
	if e.stamp != t.stampLocked(tags) {
		return nil, false
	}
	if t.now().Sub(e.filledAt) > t.ttl {
		return nil, false
	}
	return e.val, true
}

// Put stores val for key stamped with the current tag versions
func (t *Tags) Put(key string, tags []string, val any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key] = entry{val: val, stamp: t.stampLocked(tags), filledAt: t.now()}
}
