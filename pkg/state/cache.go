// Package state holds the in-memory snapshot of bridge lights that every
// command consults for existence and capability checks. Groups and scenes
// are deliberately not cached; those reads always go to the bridge live.
package state

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tlind/huemcp/pkg/bridge"
)

// Source is the read side of the bridge the cache refreshes from.
type Source interface {
	Lights(ctx context.Context) (map[int]bridge.Light, error)
}

// Cache is a point-in-time snapshot of all lights. Reads see the snapshot
// as of the last Refresh; stale reads between refreshes are an accepted
// tradeoff. The snapshot map is replaced wholesale under the write lock,
// so concurrent readers observe either the old or the new snapshot, never
// a mix. Refresh itself is serialized on its own mutex: a second
// concurrent refresh queues behind the first.
type Cache struct {
	mu        sync.RWMutex
	refreshMu sync.Mutex
	lights    map[int]bridge.Light
	ids       []int // snapshot iteration order, ascending
}

// New creates an empty cache. Call Refresh to take the first snapshot.
func New() *Cache {
	return &Cache{lights: make(map[int]bridge.Light)}
}

// Refresh replaces the entire snapshot from src and returns the number of
// lights in the new snapshot. On error the previous snapshot stays intact.
func (c *Cache) Refresh(ctx context.Context, src Source) (int, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	lights, err := src.Lights(ctx)
	if err != nil {
		return 0, err
	}

	ids := make([]int, 0, len(lights))
	for id := range lights {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	c.mu.Lock()
	c.lights = lights
	c.ids = ids
	c.mu.Unlock()

	log.Debug().Int("lights", len(lights)).Msg("Light cache refreshed")
	return len(lights), nil
}

// Get returns the cached record for id.
func (c *Cache) Get(id int) (bridge.Light, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lights[id]
	return l, ok
}

// All returns a copy of the snapshot keyed by light id.
func (c *Cache) All() map[int]bridge.Light {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[int]bridge.Light, len(c.lights))
	for id, l := range c.lights {
		out[id] = l
	}
	return out
}

// Len returns the number of lights in the snapshot.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lights)
}

// FindByName returns lights whose display name contains query,
// case-insensitively, in snapshot (ascending id) order. No matches is an
// empty slice, not an error.
func (c *Cache) FindByName(query string) []bridge.Light {
	query = strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()

	matches := []bridge.Light{}
	for _, id := range c.ids {
		l := c.lights[id]
		if strings.Contains(strings.ToLower(l.Name), query) {
			matches = append(matches, l)
		}
	}
	return matches
}
