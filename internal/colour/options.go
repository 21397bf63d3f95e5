package colour

import "fmt"

// Options configures a single extraction run.
type Options struct {
	// Pixels is the target number of sampled pixels. Larger images are
	// subsampled on a regular grid to stay close to this budget.
	Pixels int `yaml:"pixels" json:"pixels"`

	// Distance is the normalised RGB distance (0..1, black to white is 1)
	// under which two clusters are merged.
	Distance float64 `yaml:"distance" json:"distance"`

	// SaturationDistance, LightnessDistance and HueDistance must all be
	// satisfied for two clusters to merge on HSL similarity.
	SaturationDistance float64 `yaml:"saturation_distance" json:"saturation_distance"`
	LightnessDistance  float64 `yaml:"lightness_distance" json:"lightness_distance"`

	// HueDistance is measured as an arc on the hue circle where 1.0 is 360°.
	HueDistance float64 `yaml:"hue_distance" json:"hue_distance"`

	// AlphaThreshold excludes pixels with alpha <= AlphaThreshold.
	AlphaThreshold int `yaml:"alpha_threshold" json:"alpha_threshold"`

	// MaxColours is the number of k-means clusters seeded before merging.
	// It is clamped to the number of distinct sampled colours.
	MaxColours int `yaml:"max_colours" json:"max_colours"`
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		Pixels:             64000,
		Distance:           0.22,
		SaturationDistance: 0.2,
		LightnessDistance:  0.2,
		HueDistance:        1.0 / 12.0, // ~30°
		AlphaThreshold:     250,
		MaxColours:         16,
	}
}

// Validate checks that every option is within its accepted range.
func (o Options) Validate() error {
	if o.Pixels <= 0 {
		return fmt.Errorf("%w: pixels must be positive, got %d", ErrInvalidOptions, o.Pixels)
	}
	if !(o.Distance >= 0 && o.Distance <= 1) {
		return fmt.Errorf("%w: distance must be in [0,1], got %g", ErrInvalidOptions, o.Distance)
	}
	if !(o.SaturationDistance >= 0 && o.SaturationDistance <= 1) {
		return fmt.Errorf("%w: saturation distance must be in [0,1], got %g", ErrInvalidOptions, o.SaturationDistance)
	}
	if !(o.LightnessDistance >= 0 && o.LightnessDistance <= 1) {
		return fmt.Errorf("%w: lightness distance must be in [0,1], got %g", ErrInvalidOptions, o.LightnessDistance)
	}
	if !(o.HueDistance >= 0 && o.HueDistance < 1) {
		return fmt.Errorf("%w: hue distance must be in [0,1), got %g", ErrInvalidOptions, o.HueDistance)
	}
	if o.AlphaThreshold < 0 || o.AlphaThreshold > 255 {
		return fmt.Errorf("%w: alpha threshold must be in [0,255], got %d", ErrInvalidOptions, o.AlphaThreshold)
	}
	if o.MaxColours < 1 {
		return fmt.Errorf("%w: max colours must be at least 1, got %d", ErrInvalidOptions, o.MaxColours)
	}
	return nil
}
