package schema

import (
	"testing"

	"github.com/tlind/huemcp/pkg/bridge"
	"github.com/tlind/huemcp/pkg/color"
)

func colorLight() bridge.Light {
	bri := 200
	ct := 366
	return bridge.Light{
		ID:   1,
		Name: "Desk",
		State: bridge.LightState{
			On:        true,
			Reachable: true,
			Bri:       &bri,
			XY:        &color.XY{X: 0.4, Y: 0.4},
			CT:        &ct,
		},
	}
}

func plugLight() bridge.Light {
	// On/off plug: no bri, xy or ct channels.
	return bridge.Light{
		ID:    2,
		Name:  "Plug",
		State: bridge.LightState{On: false, Reachable: true},
	}
}

func TestValidateState_FullColorPayload(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(colorLight(), map[string]any{
		"on":  true,
		"bri": float64(200),
		"xy":  []any{float64(0.3), float64(0.3)},
	})
	if err != nil {
		t.Errorf("expected valid payload, got: %v", err)
	}
}

func TestValidateState_BrightnessOutOfRange(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(colorLight(), map[string]any{"bri": float64(300)})
	if err == nil {
		t.Error("expected validation error for out-of-range brightness")
	}
}

func TestValidateState_ColorKeyOnPlug(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(plugLight(), map[string]any{"xy": []any{float64(0.3), float64(0.3)}})
	if err == nil {
		t.Error("xy should be rejected for a light without a color channel")
	}

	err = v.ValidateState(plugLight(), map[string]any{"bri": float64(10)})
	if err == nil {
		t.Error("bri should be rejected for a non-dimmable light")
	}
}

func TestValidateState_PlugStillSwitches(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateState(plugLight(), map[string]any{"on": true}); err != nil {
		t.Errorf("on/off should always validate: %v", err)
	}
	if err := v.ValidateState(plugLight(), map[string]any{"alert": "select"}); err != nil {
		t.Errorf("alert should always validate: %v", err)
	}
}

func TestValidateState_UnknownKey(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(colorLight(), map[string]any{"scene": "abc"})
	if err == nil {
		t.Error("keys outside the vocabulary should be rejected")
	}
}

func TestValidateState_EmptyPayload(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(colorLight(), map[string]any{})
	if err == nil {
		t.Error("an empty state payload should be rejected")
	}
}

func TestValidateState_InvalidEffect(t *testing.T) {
	v := NewValidator()

	err := v.ValidateState(colorLight(), map[string]any{"effect": "strobe"})
	if err == nil {
		t.Error("unsupported effect names should fail validation")
	}
}

func TestValidateState_CachesPerCapabilitySet(t *testing.T) {
	v := NewValidator()

	// Two different lights with the same capability set share one schema.
	other := colorLight()
	other.ID = 9
	other.Name = "Shelf"

	if err := v.ValidateState(colorLight(), map[string]any{"on": true}); err != nil {
		t.Fatal(err)
	}
	if err := v.ValidateState(other, map[string]any{"on": false}); err != nil {
		t.Fatal(err)
	}

	v.mu.Lock()
	cacheSize := len(v.cache)
	v.mu.Unlock()
	if cacheSize != 1 {
		t.Errorf("expected 1 cached schema, got %d", cacheSize)
	}

	if err := v.ValidateState(plugLight(), map[string]any{"on": true}); err != nil {
		t.Fatal(err)
	}

	v.mu.Lock()
	cacheSize = len(v.cache)
	v.mu.Unlock()
	if cacheSize != 2 {
		t.Errorf("expected 2 cached schemas after a second capability set, got %d", cacheSize)
	}
}
