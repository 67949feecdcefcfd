package bridge

import (
	"context"
	"fmt"
	"sync"
)

// Write records a single state write issued through the Fake.
type Write struct {
	Target string // "light" or "group"
	ID     int
	Key    string
	Value  any
}

// Fake is an in-memory Client. It serves seeded lights, groups and scenes
// and records every write instead of performing it, which makes it useful
// both in tests and as a stand-in when no bridge is reachable.
type Fake struct {
	mu          sync.Mutex
	lights      map[int]Light
	groups      map[int]Group
	scenes      map[string]Scene
	writes      []Write
	nextGroupID int
	failWith    error
}

// NewFake creates an empty fake bridge.
func NewFake() *Fake {
	return &Fake{
		lights:      make(map[int]Light),
		groups:      make(map[int]Group),
		scenes:      make(map[string]Scene),
		nextGroupID: 1,
	}
}

// SetLight seeds or replaces a light.
func (f *Fake) SetLight(l Light) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lights[l.ID] = l
}

// RemoveLight deletes a light, simulating removal on the real bridge.
func (f *Fake) RemoveLight(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lights, id)
}

// SetGroup seeds or replaces a group.
func (f *Fake) SetGroup(g Group) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[g.ID] = g
	if g.ID >= f.nextGroupID {
		f.nextGroupID = g.ID + 1
	}
}

// SetScene seeds or replaces a scene.
func (f *Fake) SetScene(s Scene) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scenes[s.ID] = s
}

// FailWith makes every subsequent write return err. Pass nil to clear.
func (f *Fake) FailWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = err
}

// Writes returns a copy of the recorded write log.
func (f *Fake) Writes() []Write {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Write, len(f.writes))
	copy(out, f.writes)
	return out
}

// Ping always succeeds.
func (f *Fake) Ping(ctx context.Context) error { return nil }

// Lights returns a copy of the seeded lights.
func (f *Fake) Lights(ctx context.Context) (map[int]Light, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]Light, len(f.lights))
	for id, l := range f.lights {
		out[id] = l
	}
	return out, nil
}

// Groups returns a copy of the seeded groups.
func (f *Fake) Groups(ctx context.Context) (map[int]Group, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]Group, len(f.groups))
	for id, g := range f.groups {
		out[id] = g
	}
	return out, nil
}

// Scenes returns a copy of the seeded scenes.
func (f *Fake) Scenes(ctx context.Context) (map[string]Scene, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]Scene, len(f.scenes))
	for id, s := range f.scenes {
		out[id] = s
	}
	return out, nil
}

// SetLightState records the write.
func (f *Fake) SetLightState(ctx context.Context, id int, key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.lights[id]; !ok {
		return fmt.Errorf("light %d does not exist on bridge", id)
	}
	f.writes = append(f.writes, Write{Target: "light", ID: id, Key: key, Value: value})
	return nil
}

// SetGroupState records the write.
func (f *Fake) SetGroupState(ctx context.Context, id int, key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.groups[id]; !ok {
		return fmt.Errorf("group %d does not exist on bridge", id)
	}
	f.writes = append(f.writes, Write{Target: "group", ID: id, Key: key, Value: value})
	return nil
}

// CreateGroup stores the group under a fresh id and returns it.
func (f *Fake) CreateGroup(ctx context.Context, name string, lightIDs []int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return 0, f.failWith
	}

	id := f.nextGroupID
	f.nextGroupID++
	f.groups[id] = Group{
		ID:     id,
		Name:   name,
		Type:   "LightGroup",
		Lights: IDList(lightIDs),
	}
	return id, nil
}
