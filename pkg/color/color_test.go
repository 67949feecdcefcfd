package color

import (
	"encoding/json"
	"testing"
)

func TestRGBToXY_Black(t *testing.T) {
	xy := RGBToXY(0, 0, 0)
	if xy.X != 0 || xy.Y != 0 {
		t.Errorf("expected (0,0) for pure black, got (%v,%v)", xy.X, xy.Y)
	}
}

func TestRGBToXY_PrimaryBias(t *testing.T) {
	red := RGBToXY(255, 0, 0)
	if red.X <= red.Y {
		t.Errorf("pure red should be x-dominant, got (%v,%v)", red.X, red.Y)
	}
	if red.X < 0.6 {
		t.Errorf("pure red x should be near the red vertex, got %v", red.X)
	}

	green := RGBToXY(0, 255, 0)
	if green.Y <= green.X {
		t.Errorf("pure green should be y-dominant, got (%v,%v)", green.X, green.Y)
	}
	if green.Y < 0.6 {
		t.Errorf("pure green y should be near the green vertex, got %v", green.Y)
	}

	blue := RGBToXY(0, 0, 255)
	if blue.X > 0.25 || blue.Y > 0.1 {
		t.Errorf("pure blue should sit near the blue vertex, got (%v,%v)", blue.X, blue.Y)
	}
}

func TestRGBToXY_WhiteIsNeutral(t *testing.T) {
	xy := RGBToXY(255, 255, 255)
	if xy.X < 0.2 || xy.X > 0.4 || xy.Y < 0.2 || xy.Y > 0.4 {
		t.Errorf("white should land in the neutral region, got (%v,%v)", xy.X, xy.Y)
	}
}

func TestRGBToXY_OutputBounds(t *testing.T) {
	for r := 0; r <= 255; r += 51 {
		for g := 0; g <= 255; g += 51 {
			for b := 0; b <= 255; b += 51 {
				xy := RGBToXY(r, g, b)
				if xy.X < 0 || xy.X > 1 || xy.Y < 0 || xy.Y > 1 {
					t.Fatalf("RGBToXY(%d,%d,%d) out of [0,1]: (%v,%v)", r, g, b, xy.X, xy.Y)
				}
			}
		}
	}
}

func TestKelvinToMired(t *testing.T) {
	tests := []struct {
		kelvin int
		mired  int
	}{
		{2000, 500},
		{2500, 400},
		{4000, 250},
		{6500, 154}, // 153.846 rounds up
	}

	for _, tt := range tests {
		if got := KelvinToMired(tt.kelvin); got != tt.mired {
			t.Errorf("KelvinToMired(%d) = %d, want %d", tt.kelvin, got, tt.mired)
		}
	}
}

func TestXY_JSONRoundTrip(t *testing.T) {
	in := XY{X: 0.675, Y: 0.322}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[0.675,0.322]" {
		t.Errorf("expected wire form [x,y], got %s", data)
	}

	var out XY
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestXY_UnmarshalRejectsBadShapes(t *testing.T) {
	var xy XY
	for _, raw := range []string{`[0.1]`, `[0.1,0.2,0.3]`, `{"x":0.1}`} {
		if err := json.Unmarshal([]byte(raw), &xy); err == nil {
			t.Errorf("expected error unmarshalling %s", raw)
		}
	}
}
