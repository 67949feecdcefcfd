package mcp

import (
	"sort"

	"github.com/tlind/huemcp/pkg/bridge"
)

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or unhealthy)"`
	Bridge    string `json:"bridge" jsonschema:"description=Bridge connection status"`
	Lights    int    `json:"lights" jsonschema:"description=Number of lights in the cache snapshot"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- Light Tools ---

// LightInfo represents a light in tool outputs
type LightInfo struct {
	ID                int    `json:"id" jsonschema:"description=Bridge-assigned light id"`
	Name              string `json:"name" jsonschema:"description=Display name"`
	On                bool   `json:"on" jsonschema:"description=Whether the light is on"`
	Reachable         bool   `json:"reachable" jsonschema:"description=Whether the bridge can reach the light"`
	Brightness        *int   `json:"brightness,omitempty" jsonschema:"description=Brightness 0-254, absent for non-dimmable devices"`
	ColorMode         string `json:"color_mode,omitempty" jsonschema:"description=Active color mode (xy or ct)"`
	Type              string `json:"type,omitempty" jsonschema:"description=Device type"`
	Model             string `json:"model,omitempty" jsonschema:"description=Device model"`
	Manufacturer      string `json:"manufacturer,omitempty" jsonschema:"description=Device manufacturer"`
	SupportsColor     bool   `json:"supports_color" jsonschema:"description=Whether the light has an xy color channel"`
	SupportsColorTemp bool   `json:"supports_color_temp" jsonschema:"description=Whether the light has a ct channel"`
}

// ListLightsOutput is the output for the get_all_lights tool
type ListLightsOutput struct {
	Lights []LightInfo `json:"lights" jsonschema:"description=All cached lights in id order"`
	Count  int         `json:"count" jsonschema:"description=Total number of lights"`
}

// GetLightOutput is the output for the get_light tool
type GetLightOutput struct {
	Light LightInfo `json:"light" jsonschema:"description=Light information"`
}

// FindLightsOutput is the output for the find_light_by_name tool
type FindLightsOutput struct {
	Matches []LightInfo `json:"matches" jsonschema:"description=Lights whose name contains the query"`
	Count   int         `json:"count" jsonschema:"description=Number of matches"`
}

// --- Group and Scene Tools ---

// GroupInfo represents a group in tool outputs
type GroupInfo struct {
	ID     int    `json:"id" jsonschema:"description=Bridge-assigned group id (0 is the all-lights group)"`
	Name   string `json:"name" jsonschema:"description=Group name"`
	Type   string `json:"type,omitempty" jsonschema:"description=Group type"`
	Lights []int  `json:"lights" jsonschema:"description=Member light ids"`
	AllOn  bool   `json:"all_on" jsonschema:"description=Whether every member is on"`
	AnyOn  bool   `json:"any_on" jsonschema:"description=Whether at least one member is on"`
}

// ListGroupsOutput is the output for the get_all_groups tool
type ListGroupsOutput struct {
	Groups []GroupInfo `json:"groups" jsonschema:"description=All groups in id order"`
	Count  int         `json:"count" jsonschema:"description=Total number of groups"`
}

// GetGroupOutput is the output for the get_group tool
type GetGroupOutput struct {
	Group GroupInfo `json:"group" jsonschema:"description=Group information"`
}

// SceneInfo represents a scene in tool outputs
type SceneInfo struct {
	ID     string `json:"id" jsonschema:"description=Bridge-assigned scene id (opaque string)"`
	Name   string `json:"name" jsonschema:"description=Scene name"`
	Type   string `json:"type,omitempty" jsonschema:"description=Scene type"`
	Group  string `json:"group,omitempty" jsonschema:"description=Owning group id"`
	Lights []int  `json:"lights,omitempty" jsonschema:"description=Member light ids"`
	Owner  string `json:"owner,omitempty" jsonschema:"description=Scene owner reference"`
}

// ListScenesOutput is the output for the get_all_scenes tool
type ListScenesOutput struct {
	Scenes []SceneInfo `json:"scenes" jsonschema:"description=All scenes in id order"`
	Count  int         `json:"count" jsonschema:"description=Total number of scenes"`
}

// --- Command Tools ---

// CommandOutput is the shared output for every command tool
type CommandOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the command succeeded"`
	Message string `json:"message" jsonschema:"description=Human-readable confirmation"`
}

// CreateGroupOutput is the output for the create_group tool
type CreateGroupOutput struct {
	Success bool   `json:"success" jsonschema:"description=Whether the group was created"`
	GroupID int    `json:"group_id" jsonschema:"description=Bridge-assigned id of the new group"`
	Message string `json:"message" jsonschema:"description=Human-readable confirmation"`
}

// RefreshLightsOutput is the output for the refresh_lights tool
type RefreshLightsOutput struct {
	Count   int    `json:"count" jsonschema:"description=Number of lights in the refreshed snapshot"`
	Message string `json:"message" jsonschema:"description=Human-readable confirmation"`
}

// --- Helper conversions ---

// LightToInfo converts a bridge.Light to LightInfo
func LightToInfo(l bridge.Light) LightInfo {
	return LightInfo{
		ID:                l.ID,
		Name:              l.Name,
		On:                l.State.On,
		Reachable:         l.State.Reachable,
		Brightness:        l.State.Bri,
		ColorMode:         l.State.ColorMode,
		Type:              l.Type,
		Model:             l.ModelID,
		Manufacturer:      l.Manufacturer,
		SupportsColor:     l.SupportsColor(),
		SupportsColorTemp: l.SupportsColorTemp(),
	}
}

// LightsToInfos converts a light map into an id-ordered slice
func LightsToInfos(lights map[int]bridge.Light) []LightInfo {
	infos := make([]LightInfo, 0, len(lights))
	for _, l := range lights {
		infos = append(infos, LightToInfo(l))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// GroupToInfo converts a bridge.Group to GroupInfo
func GroupToInfo(g bridge.Group) GroupInfo {
	lights := []int(g.Lights)
	if lights == nil {
		lights = []int{}
	}
	return GroupInfo{
		ID:     g.ID,
		Name:   g.Name,
		Type:   g.Type,
		Lights: lights,
		AllOn:  g.State.AllOn,
		AnyOn:  g.State.AnyOn,
	}
}

// GroupsToInfos converts a group map into an id-ordered slice
func GroupsToInfos(groups map[int]bridge.Group) []GroupInfo {
	infos := make([]GroupInfo, 0, len(groups))
	for _, g := range groups {
		infos = append(infos, GroupToInfo(g))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// SceneToInfo converts a bridge.Scene to SceneInfo
func SceneToInfo(s bridge.Scene) SceneInfo {
	return SceneInfo{
		ID:     s.ID,
		Name:   s.Name,
		Type:   s.Type,
		Group:  s.Group,
		Lights: s.Lights,
		Owner:  s.Owner,
	}
}

// ScenesToInfos converts a scene map into an id-ordered slice
func ScenesToInfos(scenes map[string]bridge.Scene) []SceneInfo {
	infos := make([]SceneInfo, 0, len(scenes))
	for _, s := range scenes {
		infos = append(infos, SceneToInfo(s))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}
