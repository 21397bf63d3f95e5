package colour

import "errors"

var (
	// ErrInvalidDimensions is returned when a pixel buffer has a non-positive
	// width or height, or dimensions too large to address.
	ErrInvalidDimensions = errors.New("invalid image dimensions")

	// ErrInvalidBuffer is returned when the pixel slice is shorter than
	// width*height*4 bytes.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")

	// ErrInvalidOptions is returned by Options.Validate.
	ErrInvalidOptions = errors.New("invalid extraction options")
)
