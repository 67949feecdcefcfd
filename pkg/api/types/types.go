package types

import "time"

// --- Request DTOs ---

// PowerRequest is the request body for POST /lights/{id}/power and
// POST /groups/{id}/power
type PowerRequest struct {
	On *bool `json:"on" binding:"required"`
}

// BrightnessRequest is the request body for brightness endpoints
type BrightnessRequest struct {
	Brightness *int `json:"brightness" binding:"required"`
}

// ColorRequest is the request body for RGB color endpoints
type ColorRequest struct {
	Red   *int `json:"red" binding:"required"`
	Green *int `json:"green" binding:"required"`
	Blue  *int `json:"blue" binding:"required"`
}

// PresetRequest is the request body for preset endpoints
type PresetRequest struct {
	Preset string `json:"preset" binding:"required"`
}

// EffectRequest is the request body for POST /lights/{id}/effect
type EffectRequest struct {
	Effect string `json:"effect" binding:"required"`
}

// SceneRequest is the request body for POST /groups/{id}/scene
type SceneRequest struct {
	SceneID string `json:"scene_id" binding:"required"`
}

// CreateGroupRequest is the request body for POST /groups
type CreateGroupRequest struct {
	Name     string `json:"name" binding:"required"`
	LightIDs []int  `json:"light_ids" binding:"required"`
}

// QuickSceneRequest is the request body for POST /quick-scene
type QuickSceneRequest struct {
	Name        string `json:"name" binding:"required"`
	GroupID     int    `json:"group_id"`
	Brightness  *int   `json:"brightness,omitempty"`
	RGB         []int  `json:"rgb,omitempty"`
	Temperature *int   `json:"temperature,omitempty"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Bridge    string    `json:"bridge"`
	Lights    int       `json:"lights"`
	Timestamp time.Time `json:"timestamp"`
}

// Light describes one light in API responses
type Light struct {
	ID                int         `json:"id"`
	Name              string      `json:"name"`
	On                bool        `json:"on"`
	Reachable         bool        `json:"reachable"`
	Brightness        *int        `json:"brightness,omitempty"`
	ColorMode         string      `json:"color_mode,omitempty"`
	XY                *[2]float64 `json:"xy,omitempty"`
	ColorTemp         *int        `json:"color_temp,omitempty"`
	Type              string      `json:"type,omitempty"`
	Model             string      `json:"model,omitempty"`
	SupportsColor     bool        `json:"supports_color"`
	SupportsColorTemp bool        `json:"supports_color_temp"`
}

// ListLightsResponse is returned from GET /lights
type ListLightsResponse struct {
	Lights []Light `json:"lights"`
	Count  int     `json:"count"`
}

// LightResponse is returned from GET /lights/{id}
type LightResponse struct {
	Light Light `json:"light"`
}

// Group describes one group in API responses
type Group struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Lights []int  `json:"lights"`
	AllOn  bool   `json:"all_on"`
	AnyOn  bool   `json:"any_on"`
}

// ListGroupsResponse is returned from GET /groups
type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
	Count  int     `json:"count"`
}

// GroupResponse is returned from GET /groups/{id}
type GroupResponse struct {
	Group Group `json:"group"`
}

// Scene describes one scene in API responses
type Scene struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Group  string `json:"group,omitempty"`
	Lights []int  `json:"lights,omitempty"`
}

// ListScenesResponse is returned from GET /scenes
type ListScenesResponse struct {
	Scenes []Scene `json:"scenes"`
	Count  int     `json:"count"`
}

// CommandResponse is returned from command endpoints
type CommandResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateGroupResponse is returned from POST /groups
type CreateGroupResponse struct {
	Success bool   `json:"success"`
	GroupID int    `json:"group_id"`
	Message string `json:"message"`
}

// RefreshResponse is returned from POST /refresh
type RefreshResponse struct {
	Count   int    `json:"count"`
	Message string `json:"message"`
}
