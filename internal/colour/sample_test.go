package colour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillBuffer returns a w×h buffer where every pixel has the given RGBA.
func fillBuffer(w, h int, r, g, b, a uint8) PixelBuffer {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, a
	}
	return PixelBuffer{Width: w, Height: h, Pix: pix}
}

func setPixel(buf PixelBuffer, x, y int, r, g, b, a uint8) {
	i := (y*buf.Width + x) * 4
	buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = r, g, b, a
}

func TestSampleStep(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		budget int
		want   int
	}{
		{"below budget", 100, 64000, 1},
		{"equal to budget", 64000, 64000, 1},
		{"just above budget", 64001, 64000, 2},
		{"four times budget", 256000, 64000, 2},
		{"large image", 1920 * 1080, 64000, 6},
		{"zero budget", 1000, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sampleStep(tt.total, tt.budget))
		})
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		in   uint8
		want uint32
	}{
		{0, 0},
		{7, 0},
		{8, 1},
		{127, 15},
		{128, 16},
		{248, 31},
		{255, 31},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, quantize(tt.in), "quantize(%d)", tt.in)
	}
	assert.Equal(t, 1.0, levelToUnit(quantLevels-1))
	assert.Equal(t, 0.0, levelToUnit(0))
}

func TestSamplePixelsAlphaBoundary(t *testing.T) {
	buf := fillBuffer(2, 1, 0, 0, 0, 0)
	setPixel(buf, 0, 0, 255, 0, 0, 250)
	setPixel(buf, 1, 0, 0, 0, 255, 251)

	samples := samplePixels(buf, 1, 250)
	require.Len(t, samples, 1)
	assert.Equal(t, RGBf{R: 0, G: 0, B: 1}, samples[0].Colour)
	assert.Equal(t, uint32(1), samples[0].Weight)
}

func TestSamplePixelsTransparent(t *testing.T) {
	buf := fillBuffer(16, 16, 120, 40, 200, 0)
	assert.Empty(t, samplePixels(buf, 1, 250))
}

func TestSamplePixelsWeightsAndGrid(t *testing.T) {
	buf := fillBuffer(10, 10, 255, 255, 255, 255)
	for x := range 10 {
		for y := range 3 {
			setPixel(buf, x, y, 10, 20, 30, 255)
		}
	}

	samples := samplePixels(buf, 1, 250)
	require.Len(t, samples, 2)

	var total uint32
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.Weight, uint32(1))
		for _, ch := range []float64{s.Colour.R, s.Colour.G, s.Colour.B} {
			level := ch * (quantLevels - 1)
			assert.InDelta(t, float64(int(level+0.5)), level, 1e-9, "channel off the quantisation grid")
		}
		total += s.Weight
	}
	assert.Equal(t, uint32(100), total)

	// Buckets come out in index order, so the dark bucket is first.
	assert.Equal(t, uint32(30), samples[0].Weight)
	assert.Equal(t, uint32(70), samples[1].Weight)
}

func TestSamplePixelsStride(t *testing.T) {
	buf := fillBuffer(10, 10, 0, 0, 0, 255)
	samples := samplePixels(buf, 3, 250)
	require.Len(t, samples, 1)
	// Rows and columns 0, 3, 6, 9.
	assert.Equal(t, uint32(16), samples[0].Weight)
}

func TestSamplePixelsDeterministic(t *testing.T) {
	buf := fillBuffer(32, 32, 0, 0, 0, 255)
	for i := 0; i < len(buf.Pix); i += 4 {
		buf.Pix[i] = uint8(i * 7)
		buf.Pix[i+1] = uint8(i * 13)
		buf.Pix[i+2] = uint8(i * 29)
	}

	first := samplePixels(buf, 1, 250)
	second := samplePixels(buf, 1, 250)
	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), quantSize)
}

func TestNewPixelBuffer(t *testing.T) {
	_, err := NewPixelBuffer(0, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewPixelBuffer(10, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = NewPixelBuffer(2, 2, make([]byte, 15))
	assert.ErrorIs(t, err, ErrInvalidBuffer)

	buf, err := NewPixelBuffer(2, 2, make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, 4, buf.Len())

	setPixel(buf, 1, 1, 1, 2, 3, 4)
	r, g, b, a := buf.At(1, 1)
	assert.Equal(t, []uint8{1, 2, 3, 4}, []uint8{r, g, b, a})
}
