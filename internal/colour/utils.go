package colour

import "math"

// rgbToHSL converts a normalised RGB colour to hue, saturation and
// lightness, all in [0,1]. Hue is in [0,1) where 1.0 is a full turn.
func rgbToHSL(c RGBf) (h, s, l float64) {
	maxVal := math.Max(c.R, math.Max(c.G, c.B))
	minVal := math.Min(c.R, math.Min(c.G, c.B))

	l = (maxVal + minVal) / 2.0

	if maxVal == minVal {
		// Achromatic.
		return 0, 0, l
	}

	delta := maxVal - minVal
	if l > 0.5 {
		s = delta / (2.0 - maxVal - minVal)
	} else {
		s = delta / (maxVal + minVal)
	}

	switch maxVal {
	case c.R:
		h = (c.G - c.B) / delta
		if c.G < c.B {
			h += 6
		}
	case c.G:
		h = (c.B-c.R)/delta + 2
	default:
		h = (c.R-c.G)/delta + 4
	}

	h /= 6
	return h, s, l
}

// HueArcDistance returns the shortest distance between two hues on the
// circular [0,1) scale. The result is in [0, 0.5].
func HueArcDistance(h1, h2 float64) float64 {
	d := math.Abs(h1 - h2)
	if d > 0.5 {
		d = 1.0 - d // wraparound
	}
	return d
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(rgb RGB) float64 {
	r := gammaCorrect(float64(rgb.R) / 255.0)
	g := gammaCorrect(float64(rgb.G) / 255.0)
	b := gammaCorrect(float64(rgb.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// toByte maps a normalised channel to 0..255 with rounding.
func toByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255.0))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
