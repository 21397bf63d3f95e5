package image

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/jmylchreest/swatch/internal/colour"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h, max    int
		wantW, wantH int
	}{
		{"disabled", 4000, 3000, 0, 4000, 3000},
		{"already small", 300, 200, 512, 300, 200},
		{"landscape", 4000, 2000, 1000, 1000, 500},
		{"portrait", 1000, 4000, 800, 200, 800},
		{"square", 1024, 1024, 256, 256, 256},
		{"thin strip", 10000, 1, 100, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitWithin(tt.w, tt.h, tt.max)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitWithin(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestToPixelBufferNRGBA(t *testing.T) {
	img := solidImage(3, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	buf, err := ToPixelBuffer(img, 0)
	if err != nil {
		t.Fatalf("ToPixelBuffer() error = %v", err)
	}
	if buf.Width != 3 || buf.Height != 2 || len(buf.Pix) != 24 {
		t.Fatalf("ToPixelBuffer() = %dx%d (%d bytes)", buf.Width, buf.Height, len(buf.Pix))
	}
	if r, g, b, a := buf.At(2, 1); r != 10 || g != 20 || b != 30 || a != 128 {
		t.Errorf("At(2,1) = %d,%d,%d,%d", r, g, b, a)
	}
}

func TestToPixelBufferSubImage(t *testing.T) {
	img := solidImage(4, 4, color.NRGBA{A: 255})
	img.SetNRGBA(2, 2, color.NRGBA{R: 255, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 4))

	buf, err := ToPixelBuffer(sub, 0)
	if err != nil {
		t.Fatalf("ToPixelBuffer() error = %v", err)
	}
	if buf.Width != 2 || buf.Height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", buf.Width, buf.Height)
	}
	if r, _, _, _ := buf.At(0, 0); r != 255 {
		t.Errorf("At(0,0).R = %d, want 255", r)
	}
	if r, _, _, _ := buf.At(1, 1); r != 0 {
		t.Errorf("At(1,1).R = %d, want 0", r)
	}
}

func TestToPixelBufferUnpremultiplies(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	// Premultiplied half-transparent white.
	img.SetRGBA(0, 0, color.RGBA{R: 128, G: 128, B: 128, A: 128})

	buf, err := ToPixelBuffer(img, 0)
	if err != nil {
		t.Fatalf("ToPixelBuffer() error = %v", err)
	}
	r, g, b, a := buf.At(0, 0)
	if r != 255 || g != 255 || b != 255 || a != 128 {
		t.Errorf("At(0,0) = %d,%d,%d,%d, want 255,255,255,128", r, g, b, a)
	}
}

func TestToPixelBufferDownscales(t *testing.T) {
	img := solidImage(400, 100, color.NRGBA{G: 255, A: 255})

	buf, err := ToPixelBuffer(img, 100)
	if err != nil {
		t.Fatalf("ToPixelBuffer() error = %v", err)
	}
	if buf.Width != 100 || buf.Height != 25 {
		t.Fatalf("size = %dx%d, want 100x25", buf.Width, buf.Height)
	}
	if _, g, _, a := buf.At(50, 12); g < 250 || a < 250 {
		t.Errorf("At(50,12) green=%d alpha=%d, want ~255", g, a)
	}
}

func TestToPixelBufferErrors(t *testing.T) {
	if _, err := ToPixelBuffer(nil, 0); err == nil {
		t.Error("ToPixelBuffer(nil) expected error")
	}

	empty := image.NewNRGBA(image.Rect(0, 0, 0, 5))
	_, err := ToPixelBuffer(empty, 0)
	if !errors.Is(err, colour.ErrInvalidDimensions) {
		t.Errorf("ToPixelBuffer(empty) error = %v, want ErrInvalidDimensions", err)
	}
}
