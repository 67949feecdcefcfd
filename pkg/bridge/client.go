package bridge

import "context"

// Client is the boundary the command layer writes through. Read methods
// return the bridge's current view; write methods mutate one parameter at
// a time using the fixed key vocabulary from types.go.
type Client interface {
	// Ping checks that the bridge answers with our credentials.
	Ping(ctx context.Context) error

	// Lights returns every light keyed by id.
	Lights(ctx context.Context) (map[int]Light, error)

	// Groups returns every group keyed by id.
	Groups(ctx context.Context) (map[int]Group, error)

	// Scenes returns every scene keyed by its (string) id.
	Scenes(ctx context.Context) (map[string]Scene, error)

	// SetLightState writes a single state parameter on a light.
	SetLightState(ctx context.Context, id int, key string, value any) error

	// SetGroupState writes a single action parameter on a group.
	SetGroupState(ctx context.Context, id int, key string, value any) error

	// CreateGroup creates a group and returns the bridge-assigned id.
	CreateGroup(ctx context.Context, name string, lightIDs []int) (int, error)
}
