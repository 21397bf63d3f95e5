package colour

import (
	"fmt"
	"math"
)

// PixelBuffer is a row-major RGBA8 image with a stride of Width*4 bytes.
// Channels are non-premultiplied.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewPixelBuffer wraps pix as a PixelBuffer after checking its dimensions.
func NewPixelBuffer(width, height int, pix []byte) (PixelBuffer, error) {
	buf := PixelBuffer{Width: width, Height: height, Pix: pix}
	if err := buf.validate(); err != nil {
		return PixelBuffer{}, err
	}
	return buf, nil
}

// Len returns the number of pixels in the buffer.
func (b PixelBuffer) Len() int {
	return b.Width * b.Height
}

// At returns the RGBA bytes of the pixel at (x, y).
func (b PixelBuffer) At(x, y int) (r, g, bl, a uint8) {
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

func (b PixelBuffer) validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.Width, b.Height)
	}
	if b.Width > math.MaxInt/4/b.Height {
		return fmt.Errorf("%w: %dx%d overflows addressable size", ErrInvalidDimensions, b.Width, b.Height)
	}
	if need := b.Width * b.Height * 4; len(b.Pix) < need {
		return fmt.Errorf("%w: need %d bytes for %dx%d, got %d", ErrInvalidBuffer, need, b.Width, b.Height, len(b.Pix))
	}
	return nil
}
