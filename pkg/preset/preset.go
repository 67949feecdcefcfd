// Package preset holds the fixed catalog of named lighting presets. Each
// preset is a partial parameter set; the command layer decides which device
// capabilities the entry needs before applying it.
package preset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tlind/huemcp/pkg/color"
)

// Preset is a partial bridge parameter set. Nil fields are not part of the
// preset. CT is in mired, Bri in the bridge's 0-254 scale.
type Preset struct {
	CT  *int
	XY  *color.XY
	Bri *int
}

// NeedsColorTemp reports whether applying the preset requires the ct channel.
func (p Preset) NeedsColorTemp() bool { return p.CT != nil }

// NeedsColor reports whether applying the preset requires the xy channel.
func (p Preset) NeedsColor() bool { return p.XY != nil }

// catalog is built once at init and never mutated afterwards.
var catalog = buildCatalog()

func buildCatalog() map[string]Preset {
	return map[string]Preset{
		// White temperature presets.
		"warm":     {CT: mired(2500)},
		"cool":     {CT: mired(4500)},
		"daylight": {CT: mired(6500)},

		// Activity presets, Philips' recommended settings.
		"concentration": {CT: mired(4600), Bri: intp(254)},
		"relax":         {CT: mired(2700), Bri: intp(144)},
		"reading":       {CT: mired(3200), Bri: intp(219)},
		"energize":      {CT: mired(6000), Bri: intp(254)},

		// Hue presets, chromaticity precomputed from RGB.
		"red":    {XY: xy(255, 0, 0)},
		"green":  {XY: xy(0, 255, 0)},
		"blue":   {XY: xy(0, 0, 255)},
		"purple": {XY: xy(128, 0, 128)},
		"orange": {XY: xy(255, 165, 0)},
	}
}

func mired(kelvin int) *int {
	m := color.KelvinToMired(kelvin)
	return &m
}

func intp(v int) *int { return &v }

func xy(r, g, b int) *color.XY {
	c := color.RGBToXY(r, g, b)
	return &c
}

// Lookup returns the preset for name. The match is case-sensitive and
// exact; an unknown name yields an error enumerating the valid set.
func Lookup(name string) (Preset, error) {
	p, ok := catalog[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q, available presets: %s", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns all preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
