package control

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tlind/huemcp/pkg/bridge"
	"github.com/tlind/huemcp/pkg/color"
	"github.com/tlind/huemcp/pkg/state"
)

func intp(v int) *int { return &v }

// newFixture builds a controller over a fake bridge with:
// light 1 "Desk" (color+ct, on), light 2 "Hallway" (dimmable, off),
// light 3 "Plug" (switch only, off); group 0 "All" (any_on),
// group 1 "Living Room" (fully off); scene "abc123" "Sunset".
func newFixture(t *testing.T) (*Controller, *bridge.Fake) {
	t.Helper()

	f := bridge.NewFake()
	f.SetLight(bridge.Light{
		ID: 1, Name: "Desk", Type: "Extended color light",
		State: bridge.LightState{
			On: true, Reachable: true,
			Bri: intp(200), XY: &color.XY{X: 0.4, Y: 0.4}, CT: intp(366),
		},
	})
	f.SetLight(bridge.Light{
		ID: 2, Name: "Hallway", Type: "Dimmable light",
		State: bridge.LightState{On: false, Reachable: true, Bri: intp(100)},
	})
	f.SetLight(bridge.Light{
		ID: 3, Name: "Plug", Type: "On/Off plug-in unit",
		State: bridge.LightState{On: false, Reachable: true},
	})
	f.SetGroup(bridge.Group{
		ID: 0, Name: "All", Lights: bridge.IDList{1, 2, 3},
		State: bridge.GroupState{AllOn: false, AnyOn: true},
	})
	f.SetGroup(bridge.Group{
		ID: 1, Name: "Living Room", Lights: bridge.IDList{1, 2},
		State: bridge.GroupState{AllOn: false, AnyOn: false},
	})
	f.SetScene(bridge.Scene{ID: "abc123", Name: "Sunset", Group: "1", Lights: bridge.IDList{1, 2}})

	cache := state.New()
	if _, err := cache.Refresh(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	return New(f, cache), f
}

func TestSetLightPower(t *testing.T) {
	c, f := newFixture(t)

	msg, err := c.SetLightPower(context.Background(), 2, true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "Hallway") || !strings.Contains(msg, "turned on") {
		t.Errorf("confirmation should name the target: %q", msg)
	}

	writes := f.Writes()
	if len(writes) != 1 || writes[0].Key != bridge.KeyOn || writes[0].Value != true {
		t.Errorf("unexpected writes: %+v", writes)
	}
}

func TestSetLightPower_UnknownLight(t *testing.T) {
	c, f := newFixture(t)

	_, err := c.SetLightPower(context.Background(), 99, true)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(f.Writes()) != 0 {
		t.Error("no write may be attempted for an unknown light")
	}
}

func TestSetLightBrightness_OutOfRange(t *testing.T) {
	c, f := newFixture(t)

	for _, v := range []int{-1, 255, 1000} {
		_, err := c.SetLightBrightness(context.Background(), 1, v)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("brightness %d: expected ErrOutOfRange, got %v", v, err)
		}
	}
	if len(f.Writes()) != 0 {
		t.Errorf("out-of-range brightness must be rejected before any write, got %+v", f.Writes())
	}
}

func TestSetLightBrightness_AutoOn(t *testing.T) {
	c, f := newFixture(t)

	// Light 2 is off: expect an on write before the brightness write.
	if _, err := c.SetLightBrightness(context.Background(), 2, 120); err != nil {
		t.Fatal(err)
	}
	writes := f.Writes()
	if len(writes) != 2 {
		t.Fatalf("expected on + bri writes, got %+v", writes)
	}
	if writes[0].Key != bridge.KeyOn || writes[0].Value != true {
		t.Errorf("first write should power on: %+v", writes[0])
	}
	if writes[1].Key != bridge.KeyBri || writes[1].Value != 120 {
		t.Errorf("second write should set brightness: %+v", writes[1])
	}
}

func TestSetLightBrightness_AlreadyOn(t *testing.T) {
	c, f := newFixture(t)

	if _, err := c.SetLightBrightness(context.Background(), 1, 254); err != nil {
		t.Fatal(err)
	}
	writes := f.Writes()
	if len(writes) != 1 || writes[0].Key != bridge.KeyBri {
		t.Errorf("a light already on needs only the brightness write: %+v", writes)
	}
}

func TestSetLightColor_Unsupported(t *testing.T) {
	c, f := newFixture(t)

	_, err := c.SetLightColor(context.Background(), 2, 255, 0, 0)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported for a color write on a dimmable light, got %v", err)
	}
	if len(f.Writes()) != 0 {
		t.Error("unsupported capability must be rejected before any write")
	}
}

func TestSetLightColor_WritesConvertedXY(t *testing.T) {
	c, f := newFixture(t)

	if _, err := c.SetLightColor(context.Background(), 1, 0, 255, 0); err != nil {
		t.Fatal(err)
	}
	writes := f.Writes()
	if len(writes) != 1 || writes[0].Key != bridge.KeyXY {
		t.Fatalf("expected a single xy write, got %+v", writes)
	}
	if writes[0].Value != color.RGBToXY(0, 255, 0) {
		t.Errorf("xy value should come from the converter: %+v", writes[0].Value)
	}
}

func TestSetLightColor_BadChannel(t *testing.T) {
	c, _ := newFixture(t)

	_, err := c.SetLightColor(context.Background(), 1, 300, 0, 0)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestApplyLightPreset(t *testing.T) {
	c, f := newFixture(t)

	msg, err := c.ApplyLightPreset(context.Background(), 1, "relax")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "relax") || !strings.Contains(msg, "Desk") {
		t.Errorf("confirmation should name preset and target: %q", msg)
	}

	// relax bundles ct + bri; light 1 is already on.
	writes := f.Writes()
	if len(writes) != 2 || writes[0].Key != bridge.KeyCT || writes[1].Key != bridge.KeyBri {
		t.Errorf("expected ct then bri writes, got %+v", writes)
	}
}

func TestApplyLightPreset_UnknownName(t *testing.T) {
	c, f := newFixture(t)

	_, err := c.ApplyLightPreset(context.Background(), 1, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "warm") {
		t.Errorf("error should enumerate valid presets: %v", err)
	}
	if len(f.Writes()) != 0 {
		t.Error("unknown preset must not reach the bridge")
	}
}

func TestApplyLightPreset_CapabilityCheckedBeforeAnyWrite(t *testing.T) {
	c, f := newFixture(t)

	// "warm" needs ct; the hallway light has none.
	_, err := c.ApplyLightPreset(context.Background(), 2, "warm")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	// "red" needs xy; also missing.
	_, err = c.ApplyLightPreset(context.Background(), 2, "red")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	if len(f.Writes()) != 0 {
		t.Errorf("no partial preset application allowed: %+v", f.Writes())
	}
}

func TestAlertLight(t *testing.T) {
	c, f := newFixture(t)

	if _, err := c.AlertLight(context.Background(), 3); err != nil {
		t.Fatal(err)
	}
	writes := f.Writes()
	if len(writes) != 1 || writes[0].Key != bridge.KeyAlert || writes[0].Value != bridge.AlertSelect {
		t.Errorf("expected a single alert select write, got %+v", writes)
	}
}

func TestSetLightEffect(t *testing.T) {
	c, f := newFixture(t)

	if _, err := c.SetLightEffect(context.Background(), 1, "colorloop"); err != nil {
		t.Fatal(err)
	}
	writes := f.Writes()
	if len(writes) != 1 || writes[0].Key != bridge.KeyEffect || writes[0].Value != "colorloop" {
		t.Errorf("unexpected writes: %+v", writes)
	}

	_, err := c.SetLightEffect(context.Background(), 1, "strobe")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown effect name should be ErrNotFound, got %v", err)
	}

	_, err = c.SetLightEffect(context.Background(), 2, "colorloop")
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("effects need the color channel, got %v", err)
	}
}

func TestSetGroupBrightness_AutoOnUsesLiveAnyOn(t *testing.T) {
	c, f := newFixture(t)

	// Group 1 reports any_on=false, so an on write must precede brightness.
	if _, err := c.SetGroupBrightness(context.Background(), 1, 144); err != nil {
		t.Fatal(err)
	}
	writes := f.Writes()
	if len(writes) != 2 || writes[0].Key != bridge.KeyOn || writes[1].Key != bridge.KeyBri {
		t.Fatalf("expected group on + bri, got %+v", writes)
	}
	if writes[0].Target != "group" || writes[1].Target != "group" {
		t.Errorf("writes should target the group: %+v", writes)
	}
}

func TestSetGroupPower_UnknownGroup(t *testing.T) {
	c, f := newFixture(t)

	_, err := c.SetGroupPower(context.Background(), 42, true)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(f.Writes()) != 0 {
		t.Error("no write may be attempted for an unknown group")
	}
}

func TestApplyScene(t *testing.T) {
	c, f := newFixture(t)

	msg, err := c.ApplyScene(context.Background(), 1, "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "Sunset") || !strings.Contains(msg, "Living Room") {
		t.Errorf("confirmation should resolve both names: %q", msg)
	}
	writes := f.Writes()
	if len(writes) != 1 || writes[0].Key != bridge.KeyScene || writes[0].Value != "abc123" {
		t.Errorf("unexpected writes: %+v", writes)
	}
}

func TestApplyScene_MissingSceneOrGroup(t *testing.T) {
	c, f := newFixture(t)

	if _, err := c.ApplyScene(context.Background(), 1, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown scene, got %v", err)
	}
	if _, err := c.ApplyScene(context.Background(), 9, "abc123"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown group, got %v", err)
	}
	if len(f.Writes()) != 0 {
		t.Error("both ids must be validated before writing")
	}
}

func TestCreateGroup(t *testing.T) {
	c, _ := newFixture(t)

	id, msg, err := c.CreateGroup(context.Background(), "Office", []int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if id <= 0 {
		t.Errorf("expected a bridge-assigned id, got %d", id)
	}
	if !strings.Contains(msg, "Office") || !strings.Contains(msg, "2 lights") {
		t.Errorf("unexpected confirmation: %q", msg)
	}
}

func TestCreateGroup_RejectsInvalidIDs(t *testing.T) {
	c, f := newFixture(t)

	_, _, err := c.CreateGroup(context.Background(), "Office", []int{1, 77})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "77") {
		t.Errorf("error should name the invalid ids: %v", err)
	}
	if len(f.Writes()) != 0 {
		t.Error("group must not be created when any id is invalid")
	}
}

func TestApplyQuickScene_ExactWrites(t *testing.T) {
	c, f := newFixture(t)

	msg, err := c.ApplyQuickScene(context.Background(), QuickScene{
		Name:       "Evening",
		GroupID:    0,
		Brightness: intp(200),
		RGB:        &[3]int{0, 255, 0},
	})
	if err != nil {
		t.Fatal(err)
	}

	writes := f.Writes()
	if len(writes) != 3 {
		t.Fatalf("expected exactly on + bri + xy, got %+v", writes)
	}
	if writes[0].Key != bridge.KeyOn || writes[0].Value != true {
		t.Errorf("first write should power on the group: %+v", writes[0])
	}
	if writes[1].Key != bridge.KeyBri || writes[1].Value != 200 {
		t.Errorf("second write should set brightness 200: %+v", writes[1])
	}
	if writes[2].Key != bridge.KeyXY || writes[2].Value != color.RGBToXY(0, 255, 0) {
		t.Errorf("third write should set converted color: %+v", writes[2])
	}
	for _, w := range writes {
		if w.Key == bridge.KeyCT {
			t.Error("no temperature write when temperature is omitted")
		}
	}

	if !strings.Contains(msg, "brightness 200") || !strings.Contains(msg, "RGB(0, 255, 0)") {
		t.Errorf("summary should describe exactly the applied fields: %q", msg)
	}
	if strings.Contains(msg, "temperature") {
		t.Errorf("summary must not mention omitted fields: %q", msg)
	}
}

func TestApplyQuickScene_ValidatesBeforeAnyWrite(t *testing.T) {
	c, f := newFixture(t)

	_, err := c.ApplyQuickScene(context.Background(), QuickScene{
		Name:        "Bad",
		GroupID:     0,
		Brightness:  intp(50),
		Temperature: intp(9000),
	})
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if len(f.Writes()) != 0 {
		t.Errorf("every provided field is validated before the first write: %+v", f.Writes())
	}
}

func TestApplyQuickScene_TemperatureConvertsToMired(t *testing.T) {
	c, f := newFixture(t)

	if _, err := c.ApplyQuickScene(context.Background(), QuickScene{
		Name:        "Warm evening",
		GroupID:     1,
		Temperature: intp(2500),
	}); err != nil {
		t.Fatal(err)
	}

	writes := f.Writes()
	if len(writes) != 2 || writes[1].Key != bridge.KeyCT || writes[1].Value != 400 {
		t.Errorf("expected on + ct 400 mired, got %+v", writes)
	}
}

func TestUpstreamFailureSurfacedOnce(t *testing.T) {
	c, f := newFixture(t)
	f.FailWith(errors.New("bridge unplugged"))

	_, err := c.SetLightPower(context.Background(), 1, false)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
	if len(f.Writes()) != 0 {
		t.Error("failed writes must not be retried")
	}
}

func TestRefreshLights_ChangesVisibility(t *testing.T) {
	c, f := newFixture(t)

	f.RemoveLight(3)
	f.SetLight(bridge.Light{ID: 4, Name: "New Bulb", State: bridge.LightState{On: true, Reachable: true}})

	n, err := c.RefreshLights(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expected 3 lights after refresh, got %d", n)
	}

	if _, err := c.Light(3); !errors.Is(err, ErrNotFound) {
		t.Errorf("removed light should be ErrNotFound after refresh, got %v", err)
	}
	if _, err := c.Light(4); err != nil {
		t.Errorf("new light should be visible after refresh: %v", err)
	}
}

func TestFindLights(t *testing.T) {
	c, _ := newFixture(t)

	matches := c.FindLights("desk")
	if len(matches) != 1 || matches[0].ID != 1 {
		t.Errorf("unexpected matches: %+v", matches)
	}
	if got := c.FindLights("zzz"); len(got) != 0 {
		t.Errorf("no match should be an empty result, got %+v", got)
	}
}

func TestApplyLightState_FixedKeyOrder(t *testing.T) {
	c, f := newFixture(t)

	_, err := c.ApplyLightState(context.Background(), 1, map[string]any{
		"xy":  []any{float64(0.2), float64(0.3)},
		"on":  true,
		"bri": float64(10),
	})
	if err != nil {
		t.Fatal(err)
	}

	writes := f.Writes()
	if len(writes) != 3 {
		t.Fatalf("expected 3 writes, got %+v", writes)
	}
	wantKeys := []string{bridge.KeyOn, bridge.KeyBri, bridge.KeyXY}
	for i, key := range wantKeys {
		if writes[i].Key != key {
			t.Errorf("write %d should be %s, got %s", i, key, writes[i].Key)
		}
	}
	if writes[1].Value != 10 {
		t.Errorf("bri should be normalized to int, got %T %v", writes[1].Value, writes[1].Value)
	}
	if writes[2].Value != (color.XY{X: 0.2, Y: 0.3}) {
		t.Errorf("xy should be normalized to color.XY, got %v", writes[2].Value)
	}
}
