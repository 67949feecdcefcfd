package preset

import (
	"strings"
	"testing"
)

func TestLookup_AllKnownNames(t *testing.T) {
	names := []string{
		"warm", "cool", "daylight",
		"concentration", "relax", "reading", "energize",
		"red", "green", "blue", "purple", "orange",
	}

	for _, name := range names {
		p, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q) failed: %v", name, err)
			continue
		}
		if p.CT == nil && p.XY == nil && p.Bri == nil {
			t.Errorf("preset %q has no parameters", name)
		}
	}
}

func TestLookup_CatalogHasTwelveEntries(t *testing.T) {
	if got := len(Names()); got != 12 {
		t.Errorf("expected 12 presets, got %d", got)
	}
}

func TestLookup_UnknownNameEnumeratesValidSet(t *testing.T) {
	_, err := Lookup("disco")
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
	for _, name := range Names() {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should list valid preset %q: %v", name, err)
		}
	}
}

func TestLookup_IsCaseSensitive(t *testing.T) {
	if _, err := Lookup("Warm"); err == nil {
		t.Error("lookup should be case-sensitive exact match")
	}
}

func TestPreset_CapabilityNeeds(t *testing.T) {
	warm, _ := Lookup("warm")
	if !warm.NeedsColorTemp() || warm.NeedsColor() {
		t.Errorf("warm should need ct only: %+v", warm)
	}

	red, _ := Lookup("red")
	if !red.NeedsColor() || red.NeedsColorTemp() {
		t.Errorf("red should need xy only: %+v", red)
	}

	relax, _ := Lookup("relax")
	if !relax.NeedsColorTemp() || relax.Bri == nil {
		t.Errorf("relax should bundle ct and brightness: %+v", relax)
	}
}
