package colour

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hueColour returns a fully saturated, mid-lightness colour at deg degrees.
func hueColour(deg float64) RGBf {
	h := math.Mod(deg, 360) / 60
	x := 1 - math.Abs(math.Mod(h, 2)-1)
	switch {
	case h < 1:
		return RGBf{R: 1, G: x}
	case h < 2:
		return RGBf{R: x, G: 1}
	case h < 3:
		return RGBf{G: 1, B: x}
	case h < 4:
		return RGBf{G: x, B: 1}
	case h < 5:
		return RGBf{R: x, B: 1}
	default:
		return RGBf{R: 1, B: x}
	}
}

func TestMergeClustersHueWraparound(t *testing.T) {
	clusters := []Cluster{
		{Centroid: hueColour(2), Weight: 10},
		{Centroid: hueColour(358), Weight: 5},
	}

	// Disable the RGB rule so only HSL similarity can merge them.
	opts := DefaultOptions()
	opts.Distance = 0

	buckets := mergeClusters(clusters, opts)
	require.Len(t, buckets, 1)
	assert.Equal(t, 15.0, buckets[0].Weight)

	opts.HueDistance = 2.0 / 360
	assert.Len(t, mergeClusters(clusters, opts), 2)
}

func TestMergeClustersOrderAndZeroWeight(t *testing.T) {
	clusters := []Cluster{
		{Centroid: RGBf{R: 1}, Weight: 1},
		{Centroid: RGBf{G: 1}, Weight: 5},
		{Centroid: RGBf{R: 1, G: 1, B: 1}, Weight: 0},
		{Centroid: RGBf{B: 1}, Weight: 3},
	}

	buckets := mergeClusters(clusters, DefaultOptions())
	require.Len(t, buckets, 3)
	assert.Equal(t, RGBf{G: 1}, buckets[0].Colour)
	assert.Equal(t, RGBf{B: 1}, buckets[1].Colour)
	assert.Equal(t, RGBf{R: 1}, buckets[2].Colour)

	// The input slice is left untouched.
	assert.Equal(t, 1.0, clusters[0].Weight)
}

func TestMergeClustersWeightedAverage(t *testing.T) {
	clusters := []Cluster{
		{Centroid: RGBf{R: 0.9}, Weight: 1},
		{Centroid: RGBf{R: 1}, Weight: 3},
	}

	buckets := mergeClusters(clusters, DefaultOptions())
	require.Len(t, buckets, 1)

	b := buckets[0]
	assert.Equal(t, 4.0, b.Weight)
	assert.InDelta(t, 0.975, b.Colour.R, 1e-12)

	h, s, l := rgbToHSL(b.Colour)
	assert.Equal(t, h, b.Hue)
	assert.Equal(t, s, b.Saturation)
	assert.Equal(t, l, b.Lightness)
}

func TestMergeClustersRGBThreshold(t *testing.T) {
	// Two greys 0.2 apart on every channel: normalised distance 0.2.
	clusters := []Cluster{
		{Centroid: RGBf{R: 0.3, G: 0.3, B: 0.3}, Weight: 2},
		{Centroid: RGBf{R: 0.5, G: 0.5, B: 0.5}, Weight: 1},
	}

	opts := DefaultOptions()
	opts.LightnessDistance = 0
	assert.Len(t, mergeClusters(clusters, opts), 1)

	opts.Distance = 0.19
	assert.Len(t, mergeClusters(clusters, opts), 2)
}

func TestMergeClustersFirstMatchWins(t *testing.T) {
	clusters := []Cluster{
		{Centroid: RGBf{R: 1}, Weight: 10},
		{Centroid: RGBf{B: 1}, Weight: 9},
		{Centroid: RGBf{R: 0.5, B: 0.5}, Weight: 1},
	}

	opts := DefaultOptions()
	opts.Distance = 0.5
	buckets := mergeClusters(clusters, opts)
	require.Len(t, buckets, 2)
	assert.Equal(t, 11.0, buckets[0].Weight)
	assert.Equal(t, 9.0, buckets[1].Weight)
}
