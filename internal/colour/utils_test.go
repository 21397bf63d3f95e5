package colour

import (
	"testing"
)

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name    string
		in      RGBf
		h, s, l float64
	}{
		{"black", RGBf{}, 0, 0, 0},
		{"white", RGBf{R: 1, G: 1, B: 1}, 0, 0, 1},
		{"grey", RGBf{R: 0.5, G: 0.5, B: 0.5}, 0, 0, 0.5},
		{"red", RGBf{R: 1}, 0, 1, 0.5},
		{"green", RGBf{G: 1}, 1.0 / 3, 1, 0.5},
		{"blue", RGBf{B: 1}, 2.0 / 3, 1, 0.5},
		{"red leaning magenta", RGBf{R: 1, B: 0.2}, 1 - 0.2/6, 1, 0.5},
		{"dark teal", RGBf{G: 0.5, B: 0.5}, 0.5, 1, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, l := rgbToHSL(tt.in)
			if !approx(h, tt.h) || !approx(s, tt.s) || !approx(l, tt.l) {
				t.Errorf("rgbToHSL(%v) = (%g, %g, %g), want (%g, %g, %g)", tt.in, h, s, l, tt.h, tt.s, tt.l)
			}
			if h < 0 || h >= 1 {
				t.Errorf("hue %g outside [0,1)", h)
			}
		})
	}
}

func TestHueArcDistance(t *testing.T) {
	tests := []struct {
		name   string
		h1, h2 float64
		want   float64
	}{
		{"identical", 0.3, 0.3, 0},
		{"simple", 0.1, 0.3, 0.2},
		{"wraparound", 2.0 / 360, 358.0 / 360, 4.0 / 360},
		{"opposite", 0, 0.5, 0.5},
		{"symmetric", 0.9, 0.05, 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HueArcDistance(tt.h1, tt.h2); !approx(got, tt.want) {
				t.Errorf("HueArcDistance(%g, %g) = %g, want %g", tt.h1, tt.h2, got, tt.want)
			}
		})
	}
}

func TestToByte(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-0.1, 0},
		{0, 0},
		{0.5, 128},
		{16.0 / 31, 132},
		{1, 255},
		{1.2, 255},
	}

	for _, tt := range tests {
		if got := toByte(tt.in); got != tt.want {
			t.Errorf("toByte(%g) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance(RGB{}); got != 0 {
		t.Errorf("Luminance(black) = %g, want 0", got)
	}
	if got := Luminance(RGB{R: 255, G: 255, B: 255}); !approx(got, 1) {
		t.Errorf("Luminance(white) = %g, want 1", got)
	}
}

func approx(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
