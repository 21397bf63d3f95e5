package image

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/swatch/internal/colour"
)

// ToPixelBuffer converts img to a non-premultiplied RGBA8 pixel buffer.
// When maxDimension is positive and the image's longest side exceeds it,
// the image is first downscaled with Catmull-Rom resampling, keeping its
// aspect ratio.
func ToPixelBuffer(img image.Image, maxDimension int) (colour.PixelBuffer, error) {
	if img == nil {
		return colour.PixelBuffer{}, fmt.Errorf("image cannot be nil")
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return colour.PixelBuffer{}, fmt.Errorf("%w: %dx%d", colour.ErrInvalidDimensions, w, h)
	}

	dw, dh := FitWithin(w, h, maxDimension)
	if dw != w || dh != h {
		dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
		return colour.NewPixelBuffer(dw, dh, dst.Pix)
	}

	// Already tightly packed NRGBA: reuse the pixels without copying.
	if n, ok := img.(*image.NRGBA); ok && n.Stride == w*4 {
		start := n.PixOffset(bounds.Min.X, bounds.Min.Y)
		return colour.NewPixelBuffer(w, h, n.Pix[start:start+w*h*4])
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return colour.NewPixelBuffer(w, h, dst.Pix)
}

// FitWithin returns dimensions no larger than maxDimension on either side,
// preserving aspect ratio. A non-positive maxDimension disables scaling.
func FitWithin(w, h, maxDimension int) (int, int) {
	if maxDimension <= 0 || (w <= maxDimension && h <= maxDimension) {
		return w, h
	}
	if w >= h {
		return maxDimension, max(1, h*maxDimension/w)
	}
	return max(1, w*maxDimension/h), maxDimension
}
