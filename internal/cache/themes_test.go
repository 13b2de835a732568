package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/storeops/sum-backend/model"
)

func TestThemeCachePutGet(t *testing.T) {
	c := NewThemeCache(time.Minute, 10)

	c.Put("u1", model.Theme{Name: "midnight"})
	theme, ok := c.Get("u1")
	if !ok || theme.Name != "midnight" {
		t.Errorf("Get(u1) = (%+v, %v), want cached midnight", theme, ok)
	}

	if _, ok := c.Get("u2"); ok {
		t.Error("Get(u2) = true for never-cached user")
	}
}

func TestThemeCacheExpiry(t *testing.T) {
	c := NewThemeCache(time.Minute, 10)
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Put("u1", model.Theme{Name: "midnight"})

	clock = clock.Add(30 * time.Second)
	if _, ok := c.Get("u1"); !ok {
		t.Error("entry expired before its TTL")
	}

	clock = clock.Add(45 * time.Second)
	if _, ok := c.Get("u1"); ok {
		t.Error("entry survived past its TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expired access, want 0", c.Len())
	}
}

func TestThemeCacheLRUEviction(t *testing.T) {
	c := NewThemeCache(time.Minute, 3)

	for i := 1; i <= 3; i++ {
		c.Put(fmt.Sprintf("u%d", i), model.Theme{Name: "t"})
	}

	// touch u1 so u2 becomes the eviction candidate
	c.Get("u1")
	c.Put("u4", model.Theme{Name: "t"})

	if _, ok := c.Get("u2"); ok {
		t.Error("u2 survived eviction; expected it to be the least recently used")
	}
	for _, id := range []string{"u1", "u3", "u4"} {
		if _, ok := c.Get(id); !ok {
			t.Errorf("%s missing after eviction of u2", id)
		}
	}
}

func TestThemeCachePutRefreshesExistingEntry(t *testing.T) {
	c := NewThemeCache(time.Minute, 10)
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Put("u1", model.Theme{Name: "midnight"})
	clock = clock.Add(50 * time.Second)
	c.Put("u1", model.Theme{Name: "daylight"})

	clock = clock.Add(30 * time.Second)
	theme, ok := c.Get("u1")
	if !ok || theme.Name != "daylight" {
		t.Errorf("Get(u1) = (%+v, %v), want refreshed daylight entry", theme, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after in-place update", c.Len())
	}
}

func TestThemeCacheInvalidate(t *testing.T) {
	c := NewThemeCache(time.Minute, 10)
	c.Put("u1", model.Theme{Name: "midnight"})
	c.Invalidate("u1")
	if _, ok := c.Get("u1"); ok {
		t.Error("entry survived Invalidate")
	}
	c.Invalidate("nonexistent")
}

func TestThemeCacheIgnoresEmptyUser(t *testing.T) {
	c := NewThemeCache(time.Minute, 10)
	c.Put("", model.Theme{Name: "midnight"})
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after empty-user Put", c.Len())
	}
}
