package colour

import "math"

const (
	quantBits   = 5
	quantLevels = 1 << quantBits                          // 32
	quantSize   = quantLevels * quantLevels * quantLevels // 32768
)

// RGBf is a colour with each channel normalised to [0,1].
type RGBf struct {
	R, G, B float64
}

// WeightedSample is a quantised colour and the number of sampled pixels
// that fell into its bucket.
type WeightedSample struct {
	Colour RGBf
	Weight uint32
}

// histogram counts pixels per quantised colour. The index packs the three
// 5-bit levels as r<<10 | g<<5 | b.
type histogram [quantSize]uint32

// sampleStep returns the grid stride that keeps the number of visited
// pixels near budget.
func sampleStep(totalPixels, budget int) int {
	if budget <= 0 || totalPixels <= budget {
		return 1
	}
	step := int(math.Ceil(math.Sqrt(float64(totalPixels) / float64(budget))))
	return max(step, 1)
}

// quantize maps an 8-bit channel to one of quantLevels levels.
func quantize(v uint8) uint32 {
	return (uint32(v) * quantLevels) >> 8
}

// levelToUnit maps a quantisation level back to [0,1] so that the top level
// is exactly 1.0.
func levelToUnit(q uint32) float64 {
	return float64(q) / float64(quantLevels-1)
}

// samplePixels walks the buffer with the given stride, drops pixels whose
// alpha is <= alphaThreshold and returns one WeightedSample per non-empty
// histogram bucket, ordered by bucket index.
func samplePixels(buf PixelBuffer, step, alphaThreshold int) []WeightedSample {
	hist := new(histogram)

	for y := 0; y < buf.Height; y += step {
		for x := 0; x < buf.Width; x += step {
			r, g, b, a := buf.At(x, y)
			if int(a) <= alphaThreshold {
				continue
			}
			idx := quantize(r)<<(2*quantBits) | quantize(g)<<quantBits | quantize(b)
			hist[idx]++
		}
	}

	n := 0
	for _, c := range hist {
		if c != 0 {
			n++
		}
	}
	if n == 0 {
		return nil
	}

	samples := make([]WeightedSample, 0, n)
	for idx, c := range hist {
		if c == 0 {
			continue
		}
		i := uint32(idx)
		samples = append(samples, WeightedSample{
			Colour: RGBf{
				R: levelToUnit((i >> (2 * quantBits)) & (quantLevels - 1)),
				G: levelToUnit((i >> quantBits) & (quantLevels - 1)),
				B: levelToUnit(i & (quantLevels - 1)),
			},
			Weight: c,
		})
	}
	return samples
}

// totalWeight sums the pixel counts of all samples.
func totalWeight(samples []WeightedSample) float64 {
	var total float64
	for _, s := range samples {
		total += float64(s.Weight)
	}
	return total
}

// dist2 returns the squared Euclidean distance between two colours.
func dist2(a, b RGBf) float64 {
	dr := a.R - b.R
	dg := a.G - b.G
	db := a.B - b.B
	return dr*dr + dg*dg + db*db
}
