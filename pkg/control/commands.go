package control

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tlind/huemcp/pkg/bridge"
	"github.com/tlind/huemcp/pkg/color"
	"github.com/tlind/huemcp/pkg/preset"
)

// Every command follows the same shape: validate (fail fast, before any
// write), translate to native parameters, write through the bridge, and
// confirm with the resolved name of the target. Failed writes are surfaced
// once and never retried; repeated blind toggling of lights is worse than
// reporting the failure.

func percent(bri int) int {
	return int(math.Round(float64(bri) / 254.0 * 100))
}

// SetLightPower turns a single light on or off.
func (c *Controller) SetLightPower(ctx context.Context, id int, on bool) (string, error) {
	l, err := c.Light(id)
	if err != nil {
		return "", err
	}

	if err := c.bridge.SetLightState(ctx, id, bridge.KeyOn, on); err != nil {
		return "", upstream(err)
	}

	verb := "off"
	if on {
		verb = "on"
	}
	return fmt.Sprintf("Light %d (%s) turned %s.", id, l.Name, verb), nil
}

// SetLightBrightness sets a light's brightness on the bridge's 0-254
// scale, turning the light on first if the cache says it is off.
func (c *Controller) SetLightBrightness(ctx context.Context, id, brightness int) (string, error) {
	if err := validBrightness(brightness); err != nil {
		return "", err
	}
	l, err := c.Light(id)
	if err != nil {
		return "", err
	}

	if err := c.ensureLightOn(ctx, l); err != nil {
		return "", err
	}
	if err := c.bridge.SetLightState(ctx, id, bridge.KeyBri, brightness); err != nil {
		return "", upstream(err)
	}

	return fmt.Sprintf("Light %d (%s) brightness set to %d (%d%%).", id, l.Name, brightness, percent(brightness)), nil
}

// SetLightColor sets a light's color from RGB channels. Rejected with
// ErrUnsupported when the light has no color channel.
func (c *Controller) SetLightColor(ctx context.Context, id, r, g, b int) (string, error) {
	if err := validRGB(r, g, b); err != nil {
		return "", err
	}
	l, err := c.Light(id)
	if err != nil {
		return "", err
	}
	if err := needsColor(l); err != nil {
		return "", err
	}

	if err := c.ensureLightOn(ctx, l); err != nil {
		return "", err
	}
	if err := c.bridge.SetLightState(ctx, id, bridge.KeyXY, color.RGBToXY(r, g, b)); err != nil {
		return "", upstream(err)
	}

	return fmt.Sprintf("Light %d (%s) color set to RGB(%d, %d, %d).", id, l.Name, r, g, b), nil
}

// ApplyLightPreset applies a named preset to a light. Capability for every
// sub-key the preset carries is checked before any of them is written.
func (c *Controller) ApplyLightPreset(ctx context.Context, id int, name string) (string, error) {
	p, err := preset.Lookup(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	l, err := c.Light(id)
	if err != nil {
		return "", err
	}
	if p.NeedsColorTemp() {
		if err := needsColorTemp(l); err != nil {
			return "", err
		}
	}
	if p.NeedsColor() {
		if err := needsColor(l); err != nil {
			return "", err
		}
	}

	if err := c.ensureLightOn(ctx, l); err != nil {
		return "", err
	}
	if err := c.applyPreset(ctx, p, func(key string, value any) error {
		return c.bridge.SetLightState(ctx, id, key, value)
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("Applied %q preset to light %d (%s).", name, id, l.Name), nil
}

// applyPreset writes the preset's populated fields through write, in a
// fixed ct/xy/bri order so partial failures are deterministic.
func (c *Controller) applyPreset(ctx context.Context, p preset.Preset, write func(key string, value any) error) error {
	if p.CT != nil {
		if err := write(bridge.KeyCT, *p.CT); err != nil {
			return upstream(err)
		}
	}
	if p.XY != nil {
		if err := write(bridge.KeyXY, *p.XY); err != nil {
			return upstream(err)
		}
	}
	if p.Bri != nil {
		if err := write(bridge.KeyBri, *p.Bri); err != nil {
			return upstream(err)
		}
	}
	return nil
}

// AlertLight makes a light flash briefly so it can be identified.
func (c *Controller) AlertLight(ctx context.Context, id int) (string, error) {
	l, err := c.Light(id)
	if err != nil {
		return "", err
	}

	if err := c.bridge.SetLightState(ctx, id, bridge.KeyAlert, bridge.AlertSelect); err != nil {
		return "", upstream(err)
	}

	return fmt.Sprintf("Light %d (%s) alerted with a brief flash.", id, l.Name), nil
}

// SetLightEffect starts or stops a dynamic effect. Effects need the color
// channel, so non-color lights are rejected.
func (c *Controller) SetLightEffect(ctx context.Context, id int, effect string) (string, error) {
	if err := validEffect(effect); err != nil {
		return "", err
	}
	l, err := c.Light(id)
	if err != nil {
		return "", err
	}
	if err := needsColor(l); err != nil {
		return "", err
	}

	if err := c.ensureLightOn(ctx, l); err != nil {
		return "", err
	}
	if err := c.bridge.SetLightState(ctx, id, bridge.KeyEffect, effect); err != nil {
		return "", upstream(err)
	}

	described := "no effect"
	if effect == bridge.EffectColorloop {
		described = "color loop"
	}
	return fmt.Sprintf("Set %s on light %d (%s).", described, id, l.Name), nil
}

// ApplyLightState performs a raw, pre-validated state write: the caller
// has already checked the payload against the light's schema. Keys are
// written one at a time in a fixed order.
func (c *Controller) ApplyLightState(ctx context.Context, id int, stateMap map[string]any) (string, error) {
	l, err := c.Light(id)
	if err != nil {
		return "", err
	}

	applied := make([]string, 0, len(stateMap))
	for _, key := range []string{bridge.KeyOn, bridge.KeyBri, bridge.KeyXY, bridge.KeyCT, bridge.KeyAlert, bridge.KeyEffect} {
		raw, ok := stateMap[key]
		if !ok {
			continue
		}
		value, err := normalizeStateValue(key, raw)
		if err != nil {
			return "", err
		}
		if err := c.bridge.SetLightState(ctx, id, key, value); err != nil {
			return "", upstream(err)
		}
		applied = append(applied, key)
	}

	return fmt.Sprintf("Light %d (%s) state updated: %s.", id, l.Name, strings.Join(applied, ", ")), nil
}

// normalizeStateValue converts JSON-decoded values into the native types
// the bridge client expects.
func normalizeStateValue(key string, raw any) (any, error) {
	switch key {
	case bridge.KeyBri, bridge.KeyCT:
		n, ok := raw.(float64)
		if !ok {
			return nil, fmt.Errorf("%s %w: expected a number", key, ErrOutOfRange)
		}
		return int(n), nil
	case bridge.KeyXY:
		pair, ok := raw.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("xy %w: expected a [x, y] array", ErrOutOfRange)
		}
		x, xok := pair[0].(float64)
		y, yok := pair[1].(float64)
		if !xok || !yok {
			return nil, fmt.Errorf("xy %w: expected numeric coordinates", ErrOutOfRange)
		}
		return color.XY{X: x, Y: y}, nil
	default:
		return raw, nil
	}
}

// SetGroupPower turns every light in a group on or off.
func (c *Controller) SetGroupPower(ctx context.Context, id int, on bool) (string, error) {
	g, err := c.Group(ctx, id)
	if err != nil {
		return "", err
	}

	if err := c.bridge.SetGroupState(ctx, id, bridge.KeyOn, on); err != nil {
		return "", upstream(err)
	}

	verb := "off"
	if on {
		verb = "on"
	}
	return fmt.Sprintf("Group %d (%s) turned %s.", id, g.Name, verb), nil
}

// SetGroupBrightness sets brightness for every light in a group, turning
// the group on first when the live any_on aggregate says it is fully off.
func (c *Controller) SetGroupBrightness(ctx context.Context, id, brightness int) (string, error) {
	if err := validBrightness(brightness); err != nil {
		return "", err
	}
	g, err := c.Group(ctx, id)
	if err != nil {
		return "", err
	}

	if err := c.ensureGroupOn(ctx, g); err != nil {
		return "", err
	}
	if err := c.bridge.SetGroupState(ctx, id, bridge.KeyBri, brightness); err != nil {
		return "", upstream(err)
	}

	return fmt.Sprintf("Group %d (%s) brightness set to %d (%d%%).", id, g.Name, brightness, percent(brightness)), nil
}

// SetGroupColor sets the color of every light in a group from RGB
// channels. Member lights without a color channel ignore the write on the
// bridge side.
func (c *Controller) SetGroupColor(ctx context.Context, id, r, g, b int) (string, error) {
	if err := validRGB(r, g, b); err != nil {
		return "", err
	}
	grp, err := c.Group(ctx, id)
	if err != nil {
		return "", err
	}

	if err := c.ensureGroupOn(ctx, grp); err != nil {
		return "", err
	}
	if err := c.bridge.SetGroupState(ctx, id, bridge.KeyXY, color.RGBToXY(r, g, b)); err != nil {
		return "", upstream(err)
	}

	return fmt.Sprintf("Group %d (%s) color set to RGB(%d, %d, %d).", id, grp.Name, r, g, b), nil
}

// ApplyGroupPreset applies a named preset to a group.
func (c *Controller) ApplyGroupPreset(ctx context.Context, id int, name string) (string, error) {
	p, err := preset.Lookup(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	g, err := c.Group(ctx, id)
	if err != nil {
		return "", err
	}

	if err := c.ensureGroupOn(ctx, g); err != nil {
		return "", err
	}
	if err := c.applyPreset(ctx, p, func(key string, value any) error {
		return c.bridge.SetGroupState(ctx, id, key, value)
	}); err != nil {
		return "", err
	}

	return fmt.Sprintf("Applied %q preset to group %d (%s).", name, id, g.Name), nil
}

// ApplyScene recalls a bridge-stored scene on a group. Both the group and
// the scene must exist before anything is written.
func (c *Controller) ApplyScene(ctx context.Context, groupID int, sceneID string) (string, error) {
	g, err := c.Group(ctx, groupID)
	if err != nil {
		return "", err
	}
	s, err := c.Scene(ctx, sceneID)
	if err != nil {
		return "", err
	}

	if err := c.bridge.SetGroupState(ctx, groupID, bridge.KeyScene, sceneID); err != nil {
		return "", upstream(err)
	}

	return fmt.Sprintf("Scene %q applied to group %q.", s.Name, g.Name), nil
}

// CreateGroup creates a new group from light ids, all of which must exist
// in the current cache snapshot. Returns the bridge-assigned id.
func (c *Controller) CreateGroup(ctx context.Context, name string, lightIDs []int) (int, string, error) {
	var invalid []int
	for _, id := range lightIDs {
		if _, ok := c.cache.Get(id); !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return 0, "", fmt.Errorf("light IDs %v %w", invalid, ErrNotFound)
	}

	id, err := c.bridge.CreateGroup(ctx, name, lightIDs)
	if err != nil {
		return 0, "", upstream(err)
	}

	msg := fmt.Sprintf("Group %q created with ID %d, containing %d lights.", name, id, len(lightIDs))
	return id, msg, nil
}

// QuickScene bundles brightness, RGB color and/or color temperature into
// one composite command against a group.
type QuickScene struct {
	Name        string
	GroupID     int // defaults to group 0, the bridge's "all lights" group
	Brightness  *int
	RGB         *[3]int
	Temperature *int // Kelvin
}

// ApplyQuickScene validates every provided field, turns the group on and
// applies the fields in brightness/color/temperature order. A write that
// fails midway leaves the earlier writes in effect; the error says so and
// nothing is rolled back.
func (c *Controller) ApplyQuickScene(ctx context.Context, req QuickScene) (string, error) {
	if req.Brightness != nil {
		if err := validBrightness(*req.Brightness); err != nil {
			return "", err
		}
	}
	if req.RGB != nil {
		if err := validRGB(req.RGB[0], req.RGB[1], req.RGB[2]); err != nil {
			return "", err
		}
	}
	if req.Temperature != nil {
		if err := validTemperature(*req.Temperature); err != nil {
			return "", err
		}
	}

	g, err := c.Group(ctx, req.GroupID)
	if err != nil {
		return "", err
	}

	if err := c.bridge.SetGroupState(ctx, req.GroupID, bridge.KeyOn, true); err != nil {
		return "", upstream(err)
	}

	var changes []string
	if req.Brightness != nil {
		if err := c.bridge.SetGroupState(ctx, req.GroupID, bridge.KeyBri, *req.Brightness); err != nil {
			return "", upstream(err)
		}
		changes = append(changes, fmt.Sprintf("brightness %d (%d%%)", *req.Brightness, percent(*req.Brightness)))
	}
	if req.RGB != nil {
		xy := color.RGBToXY(req.RGB[0], req.RGB[1], req.RGB[2])
		if err := c.bridge.SetGroupState(ctx, req.GroupID, bridge.KeyXY, xy); err != nil {
			return "", upstream(err)
		}
		changes = append(changes, fmt.Sprintf("color RGB(%d, %d, %d)", req.RGB[0], req.RGB[1], req.RGB[2]))
	}
	if req.Temperature != nil {
		mired := color.KelvinToMired(*req.Temperature)
		if err := c.bridge.SetGroupState(ctx, req.GroupID, bridge.KeyCT, mired); err != nil {
			return "", upstream(err)
		}
		changes = append(changes, fmt.Sprintf("temperature %dK", *req.Temperature))
	}

	if len(changes) == 0 {
		return fmt.Sprintf("Scene %q applied to group %q: turned on.", req.Name, g.Name), nil
	}
	return fmt.Sprintf("Scene %q applied to group %q with %s.", req.Name, g.Name, strings.Join(changes, ", ")), nil
}
