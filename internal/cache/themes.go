// Package cache provides a small TTL cache for resolved theme preferences
// so repeated dashboard loads do not hit the preference store every time.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/storeops/sum-backend/model"
)

// DefaultTTL bounds how long a cached theme resolution is trusted.
const DefaultTTL = 5 * time.Minute

// DefaultMaxEntries bounds the cache size; the oldest entry is evicted when
// a new user would exceed it.
const DefaultMaxEntries = 1024

type entry struct {
	userID    string
	theme     model.Theme
	expiresAt time.Time
}

// ThemeCache maps user ids to their resolved theme with expiry and a bounded
// LRU eviction policy. Safe for concurrent use.
type ThemeCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	max   int
	items map[string]*list.Element
	order *list.List

	// now is swappable so tests can control expiry without sleeping
	now func() time.Time
}

// NewThemeCache builds a cache with the given TTL and entry bound. Zero
// values fall back to the defaults.
func NewThemeCache(ttl time.Duration, maxEntries int) *ThemeCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &ThemeCache{
		ttl:   ttl,
		max:   maxEntries,
		items: make(map[string]*list.Element),
		order: list.New(),
		now:   time.Now,
	}
}

// Get returns the cached theme for the user, or false when absent or
// expired. Expired entries are removed on access.
func (c *ThemeCache) Get(userID string) (model.Theme, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[userID]
	if !ok {
		return model.Theme{}, false
	}

	ent := el.Value.(*entry)
	if c.now().After(ent.expiresAt) {
		c.removeLocked(el)
		return model.Theme{}, false
	}

	c.order.MoveToFront(el)
	return ent.theme, true
}

// Put stores the resolved theme for the user, evicting the least recently
// used entry when the cache is full.
func (c *ThemeCache) Put(userID string, theme model.Theme) {
	if userID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[userID]; ok {
		ent := el.Value.(*entry)
		ent.theme = theme
		ent.expiresAt = c.now().Add(c.ttl)
		c.order.MoveToFront(el)
		return
	}

	for len(c.items) >= c.max {
		if oldest := c.order.Back(); oldest != nil {
			c.removeLocked(oldest)
		}
	}

	el := c.order.PushFront(&entry{
		userID:    userID,
		theme:     theme,
		expiresAt: c.now().Add(c.ttl),
	})
	c.items[userID] = el
}

// Invalidate drops the cached entry for one user, used when a preference
// is written so the next read resolves fresh.
func (c *ThemeCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[userID]; ok {
		c.removeLocked(el)
	}
}

// Len returns the number of live entries, counting expired ones not yet
// swept by access.
func (c *ThemeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *ThemeCache) removeLocked(el *list.Element) {
	ent := el.Value.(*entry)
	delete(c.items, ent.userID)
	c.order.Remove(el)
}
