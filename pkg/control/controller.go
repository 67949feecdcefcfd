// Package control implements the command layer between callers and the
// bridge: validation, color/preset translation and per-intent dispatch.
// Every operation is total — it returns a structured result or a typed,
// human-readable error, and never panics through to the caller.
package control

import (
	"context"
	"fmt"

	"github.com/tlind/huemcp/pkg/bridge"
	"github.com/tlind/huemcp/pkg/state"
)

// Controller owns the session's bridge client and light cache. Light
// existence and capability checks are answered from the cache; group and
// scene facts are fetched live because the bridge keeps their aggregate
// state and membership current.
type Controller struct {
	bridge bridge.Client
	cache  *state.Cache
}

// New creates a Controller on top of client and cache.
func New(client bridge.Client, cache *state.Cache) *Controller {
	return &Controller{bridge: client, cache: cache}
}

// Ping reports whether the bridge currently answers.
func (c *Controller) Ping(ctx context.Context) error {
	if err := c.bridge.Ping(ctx); err != nil {
		return upstream(err)
	}
	return nil
}

// Lights returns the cached snapshot of all lights.
func (c *Controller) Lights() map[int]bridge.Light {
	return c.cache.All()
}

// Light returns the cached record for id.
func (c *Controller) Light(id int) (bridge.Light, error) {
	l, ok := c.cache.Get(id)
	if !ok {
		return bridge.Light{}, fmt.Errorf("light with ID %d %w", id, ErrNotFound)
	}
	return l, nil
}

// FindLights returns cached lights whose name contains query,
// case-insensitively.
func (c *Controller) FindLights(query string) []bridge.Light {
	return c.cache.FindByName(query)
}

// RefreshLights re-reads every light from the bridge and replaces the
// cache snapshot. Returns the updated light count.
func (c *Controller) RefreshLights(ctx context.Context) (int, error) {
	n, err := c.cache.Refresh(ctx, c.bridge)
	if err != nil {
		return 0, upstream(err)
	}
	return n, nil
}

// Groups fetches all groups live from the bridge.
func (c *Controller) Groups(ctx context.Context) (map[int]bridge.Group, error) {
	groups, err := c.bridge.Groups(ctx)
	if err != nil {
		return nil, upstream(err)
	}
	return groups, nil
}

// Group fetches one group live from the bridge.
func (c *Controller) Group(ctx context.Context, id int) (bridge.Group, error) {
	groups, err := c.Groups(ctx)
	if err != nil {
		return bridge.Group{}, err
	}
	g, ok := groups[id]
	if !ok {
		return bridge.Group{}, fmt.Errorf("group with ID %d %w", id, ErrNotFound)
	}
	return g, nil
}

// Scenes fetches all scenes live from the bridge.
func (c *Controller) Scenes(ctx context.Context) (map[string]bridge.Scene, error) {
	scenes, err := c.bridge.Scenes(ctx)
	if err != nil {
		return nil, upstream(err)
	}
	return scenes, nil
}

// Scene fetches one scene live from the bridge.
func (c *Controller) Scene(ctx context.Context, id string) (bridge.Scene, error) {
	scenes, err := c.Scenes(ctx)
	if err != nil {
		return bridge.Scene{}, err
	}
	s, ok := scenes[id]
	if !ok {
		return bridge.Scene{}, fmt.Errorf("scene with ID %q %w", id, ErrNotFound)
	}
	return s, nil
}
