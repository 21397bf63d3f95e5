package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/swatch/internal/colour"
)

// ConfigEnv names an options file used when --config is not given.
const ConfigEnv = "SWATCH_CONFIG"

// loadOptionsFile overlays the options in a YAML file onto opts. Keys not
// present in the file keep their current value; unknown keys are an error.
func loadOptionsFile(path string, opts *colour.Options) error {
	f, err := os.Open(path) // #nosec G304 - User-specified config path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// resolveOptions merges defaults, the options file and explicitly set
// flags, in that order of precedence, and validates the result.
func resolveOptions(flags *pflag.FlagSet, f *extractFlags) (colour.Options, error) {
	opts := colour.DefaultOptions()

	path := f.config
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		if err := loadOptionsFile(path, &opts); err != nil {
			return colour.Options{}, err
		}
	}

	if flags.Changed("pixels") {
		opts.Pixels = f.pixels
	}
	if flags.Changed("distance") {
		opts.Distance = f.distance
	}
	if flags.Changed("saturation-distance") {
		opts.SaturationDistance = f.saturationDistance
	}
	if flags.Changed("lightness-distance") {
		opts.LightnessDistance = f.lightnessDistance
	}
	if flags.Changed("hue-distance") {
		opts.HueDistance = f.hueDistance
	}
	if flags.Changed("alpha-threshold") {
		opts.AlphaThreshold = f.alphaThreshold
	}
	if flags.Changed("max-colours") {
		opts.MaxColours = f.maxColours
	}

	if err := opts.Validate(); err != nil {
		return colour.Options{}, err
	}
	return opts, nil
}
