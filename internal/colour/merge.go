package colour

import (
	"cmp"
	"math"
	"slices"
)

// ColorAggregate is a merged bucket of clusters with its HSL cached.
type ColorAggregate struct {
	Colour     RGBf
	Weight     float64
	Hue        float64
	Saturation float64
	Lightness  float64
}

// absorb folds a cluster into the bucket as a weighted running average.
func (a *ColorAggregate) absorb(c RGBf, w float64) {
	total := a.Weight + w
	if total > 0 {
		a.Colour = RGBf{
			R: (a.Colour.R*a.Weight + c.R*w) / total,
			G: (a.Colour.G*a.Weight + c.G*w) / total,
			B: (a.Colour.B*a.Weight + c.B*w) / total,
		}
	}
	a.Weight = total
	a.Hue, a.Saturation, a.Lightness = rgbToHSL(a.Colour)
}

// similar reports whether a colour with the given HSL belongs in the bucket:
// either close in RGB, or close in hue, saturation and lightness at once.
func (a *ColorAggregate) similar(c RGBf, h, s, l float64, opts Options) bool {
	// The RGB cube diagonal is sqrt(3), so a normalised threshold d becomes
	// d²·3 on squared distances.
	if dist2(c, a.Colour) <= opts.Distance*opts.Distance*3 {
		return true
	}
	return HueArcDistance(h, a.Hue) < opts.HueDistance &&
		math.Abs(s-a.Saturation) < opts.SaturationDistance &&
		math.Abs(l-a.Lightness) < opts.LightnessDistance
}

// mergeClusters greedily merges clusters into buckets, largest first, so big
// clusters absorb smaller nearby ones. Buckets are returned in the order
// they were created.
func mergeClusters(clusters []Cluster, opts Options) []ColorAggregate {
	sorted := slices.Clone(clusters)
	slices.SortStableFunc(sorted, func(a, b Cluster) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	buckets := make([]ColorAggregate, 0, len(sorted))
	for _, cl := range sorted {
		if cl.Weight <= 0 {
			continue
		}
		h, s, l := rgbToHSL(cl.Centroid)

		merged := false
		for j := range buckets {
			if buckets[j].similar(cl.Centroid, h, s, l, opts) {
				buckets[j].absorb(cl.Centroid, cl.Weight)
				merged = true
				break
			}
		}
		if !merged {
			buckets = append(buckets, ColorAggregate{
				Colour:     cl.Centroid,
				Weight:     cl.Weight,
				Hue:        h,
				Saturation: s,
				Lightness:  l,
			})
		}
	}
	return buckets
}
