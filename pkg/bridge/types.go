// Package bridge talks to a Philips Hue bridge over its REST API and
// defines the wire models the rest of the system consumes.
package bridge

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tlind/huemcp/pkg/color"
)

// State parameter keys accepted by the bridge. This vocabulary is fixed;
// the command layer never invents new keys.
const (
	KeyOn     = "on"     // bool
	KeyBri    = "bri"    // int 0-254
	KeyXY     = "xy"     // color.XY
	KeyCT     = "ct"     // mired int
	KeyAlert  = "alert"  // "none" | "select" | "lselect"
	KeyEffect = "effect" // "none" | "colorloop"
	KeyScene  = "scene"  // scene id, groups only
)

// AlertSelect is the brief identify flash.
const AlertSelect = "select"

// Valid effect values for KeyEffect.
const (
	EffectNone      = "none"
	EffectColorloop = "colorloop"
)

// LightState is the point-in-time state of a light. Bri, XY and CT are
// pointers because the bridge omits them for devices that lack the
// corresponding channel: presence of the key, not its value, is what
// signals capability.
type LightState struct {
	On        bool      `json:"on"`
	Reachable bool      `json:"reachable"`
	Bri       *int      `json:"bri,omitempty"`
	ColorMode string    `json:"colormode,omitempty"`
	XY        *color.XY `json:"xy,omitempty"`
	CT        *int      `json:"ct,omitempty"`
	Alert     string    `json:"alert,omitempty"`
	Effect    string    `json:"effect,omitempty"`
}

// Light is a single bulb or fixture known to the bridge.
type Light struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	ModelID      string     `json:"modelid,omitempty"`
	Manufacturer string     `json:"manufacturername,omitempty"`
	State        LightState `json:"state"`
}

// SupportsColor reports whether the light has an xy color channel.
func (l Light) SupportsColor() bool { return l.State.XY != nil }

// SupportsColorTemp reports whether the light has a ct channel.
func (l Light) SupportsColorTemp() bool { return l.State.CT != nil }

// GroupState is the bridge-computed aggregate over a group's members.
type GroupState struct {
	AllOn bool `json:"all_on"`
	AnyOn bool `json:"any_on"`
}

// Group is a set of lights addressed together. Group 0 is the bridge's
// reserved "all lights" group and always exists.
type Group struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Type   string     `json:"type,omitempty"`
	Lights IDList     `json:"lights"`
	State  GroupState `json:"state"`
}

// Scene is a bridge-stored lighting scene. Scene identifiers are opaque
// bridge-assigned strings, unlike the small integer light and group ids.
type Scene struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Group  string `json:"group,omitempty"`
	Lights IDList `json:"lights,omitempty"`
	Owner  string `json:"owner,omitempty"`
}

// IDList is a list of light ids. The v1 API transmits them as decimal
// strings; this keeps them as integers on our side.
type IDList []int

// UnmarshalJSON accepts both string and numeric id arrays.
func (l *IDList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ids := make([]int, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			id, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", s, err)
			}
			ids = append(ids, id)
			continue
		}
		var n int
		if err := json.Unmarshal(item, &n); err != nil {
			return fmt.Errorf("invalid id %s", item)
		}
		ids = append(ids, n)
	}
	*l = ids
	return nil
}

// MarshalJSON emits the string form the v1 API expects.
func (l IDList) MarshalJSON() ([]byte, error) {
	strs := make([]string, len(l))
	for i, id := range l {
		strs[i] = strconv.Itoa(id)
	}
	return json.Marshal(strs)
}
