package control

import (
	"context"
	"fmt"

	"github.com/tlind/huemcp/pkg/bridge"
)

// Pre-flight validators. Each returns nil or a typed failure; none mutates
// state or writes to the bridge.

func validBrightness(v int) error {
	if v < 0 || v > 254 {
		return fmt.Errorf("brightness %w: must be between 0 and 254, got %d", ErrOutOfRange, v)
	}
	return nil
}

func validRGB(r, g, b int) error {
	for _, ch := range []int{r, g, b} {
		if ch < 0 || ch > 255 {
			return fmt.Errorf("RGB values %w: each channel must be between 0 and 255, got (%d, %d, %d)", ErrOutOfRange, r, g, b)
		}
	}
	return nil
}

func validTemperature(kelvin int) error {
	if kelvin < 2000 || kelvin > 6500 {
		return fmt.Errorf("temperature %w: must be between 2000K and 6500K, got %d", ErrOutOfRange, kelvin)
	}
	return nil
}

func validEffect(effect string) error {
	if effect != bridge.EffectNone && effect != bridge.EffectColorloop {
		return fmt.Errorf("effect %q %w, valid effects: %s, %s", effect, ErrNotFound, bridge.EffectNone, bridge.EffectColorloop)
	}
	return nil
}

func needsColor(l bridge.Light) error {
	if !l.SupportsColor() {
		return fmt.Errorf("light %d (%s) has no color channel: %w", l.ID, l.Name, ErrUnsupported)
	}
	return nil
}

func needsColorTemp(l bridge.Light) error {
	if !l.SupportsColorTemp() {
		return fmt.Errorf("light %d (%s) has no color temperature channel: %w", l.ID, l.Name, ErrUnsupported)
	}
	return nil
}

// ensureLightOn turns the light on if the cache says it is off. Commands
// with a visible effect do this so the change is not silently invisible;
// it is a documented side effect of those commands.
func (c *Controller) ensureLightOn(ctx context.Context, l bridge.Light) error {
	if l.State.On {
		return nil
	}
	if err := c.bridge.SetLightState(ctx, l.ID, bridge.KeyOn, true); err != nil {
		return upstream(err)
	}
	return nil
}

// ensureGroupOn turns the group on when none of its members are on,
// using the live any_on aggregate rather than the light cache.
func (c *Controller) ensureGroupOn(ctx context.Context, g bridge.Group) error {
	if g.State.AnyOn {
		return nil
	}
	if err := c.bridge.SetGroupState(ctx, g.ID, bridge.KeyOn, true); err != nil {
		return upstream(err)
	}
	return nil
}
