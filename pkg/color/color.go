// Package color converts caller-facing color values (RGB, Kelvin) into the
// native encodings the Hue bridge accepts (CIE xy chromaticity, mired).
// All functions are pure.
package color

import "math"

// XY is a CIE chromaticity coordinate pair. Both components are in [0,1]
// by construction. On the wire the bridge represents it as a two-element
// JSON array, which MarshalJSON/UnmarshalJSON preserve.
type XY struct {
	X float64
	Y float64
}

// MarshalJSON encodes the coordinate as [x, y].
func (c XY) MarshalJSON() ([]byte, error) {
	return encodePair(c.X, c.Y), nil
}

// UnmarshalJSON decodes a [x, y] array.
func (c *XY) UnmarshalJSON(data []byte) error {
	return decodePair(data, &c.X, &c.Y)
}

// Wide RGB D65 conversion matrix, the one the Hue developer documentation
// recommends for bulbs without a published gamut.
const (
	mXR, mXG, mXB = 0.649926, 0.103455, 0.197109
	mYR, mYG, mYB = 0.234327, 0.743075, 0.022598
	mZR, mZG, mZB = 0.000000, 0.053077, 1.035763
)

// RGBToXY converts 8-bit RGB channels to a chromaticity coordinate.
// Channels outside [0,255] are the caller's problem; range checks live in
// the command layer so this stays a total function.
//
// Pure black has no chromaticity (X+Y+Z == 0) and maps to (0,0) rather
// than dividing by zero.
func RGBToXY(r, g, b int) XY {
	rf := gamma(float64(r) / 255.0)
	gf := gamma(float64(g) / 255.0)
	bf := gamma(float64(b) / 255.0)

	x := rf*mXR + gf*mXG + bf*mXB
	y := rf*mYR + gf*mYG + bf*mYB
	z := rf*mZR + gf*mZG + bf*mZB

	sum := x + y + z
	if sum == 0 {
		return XY{}
	}

	return XY{X: x / sum, Y: y / sum}
}

// gamma applies the piecewise correction curve: linear scale for dark
// channel values, a 2.2 power curve above the 0.04045 threshold.
func gamma(c float64) float64 {
	if c > 0.04045 {
		return math.Pow(c, 2.2)
	}
	return c / 12.92
}

// KelvinToMired converts a color temperature in Kelvin to the bridge's
// reciprocal mired scale, rounded to the nearest integer. Callers enforce
// the sane visible range (2000-6500K) before converting.
func KelvinToMired(kelvin int) int {
	return int(math.Round(1_000_000 / float64(kelvin)))
}
