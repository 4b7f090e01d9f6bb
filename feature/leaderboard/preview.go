package leaderboard

import (
	"context"
	"sync"
	"time"

	"puzzle-leaderboard/feature/leaderboard/models"

	"golang.org/x/sync/singleflight"
)

const previewKey = "preview"

// previewEntry is a fetched snapshot and when it was fetched.
type previewEntry struct {
	snap  *models.Snapshot
	built time.Time
}

func (e *previewEntry) expired(ttl time.Duration, now time.Time) bool {
	if ttl == 0 {
		return true
	}
	return now.Sub(e.built) > ttl
}

// previewCache shares live fetches between callers.
type previewCache struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	entry *previewEntry
	sf    singleflight.Group
}

func newPreviewCache(ttl time.Duration) *previewCache {
	return &previewCache{ttl: ttl, now: time.Now}
}

// get returns a cached snapshot, or fetches one. Concurrent misses share one fetch.
func (c *previewCache) get(ctx context.Context, fetch func(context.Context) (*models.Snapshot, error)) (*models.Snapshot, error) {
	// Fast path: fresh entry
	c.mu.RLock()
	entry := c.entry
	c.mu.RUnlock()

	if entry != nil && !entry.expired(c.ttl, c.now()) {
		return entry.snap, nil
	}

	result, err, _ := c.sf.Do(previewKey, func() (interface{}, error) {
		// Double-check after winning the flight
		c.mu.RLock()
		entry := c.entry
		c.mu.RUnlock()

		if entry != nil && !entry.expired(c.ttl, c.now()) {
			return entry.snap, nil
		}

		snap, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entry = &previewEntry{snap: snap, built: c.now()}
		c.mu.Unlock()

		return snap, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*models.Snapshot), nil
}

// invalidate drops the cached entry.
func (c *previewCache) invalidate() {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
}
