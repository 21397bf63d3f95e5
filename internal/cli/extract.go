package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/security"
	httputil "github.com/jmylchreest/swatch/internal/util/http"
	"github.com/jmylchreest/swatch/internal/util/imagecache"
)

// extractFlags holds the flag values of one extract command.
type extractFlags struct {
	pixels             int
	distance           float64
	saturationDistance float64
	lightnessDistance  float64
	hueDistance        float64
	alphaThreshold     int
	maxColours         int

	seed         uint64
	workers      int
	maxDimension int
	format       string
	sort         string
	output       string
	preview      string
	config       string
	cache        bool
	cacheDir     string
	refresh      bool
	timeout      time.Duration
	maxDownload  int64
	headers      map[string]string
}

var (
	validFormats  = []string{"hex", "rgb", "json", "yaml", "table"}
	validSorts    = []string{"none", "area", "score"}
	validPreviews = []string{"auto", "always", "never"}
)

func newExtractCmd() *cobra.Command {
	f := &extractFlags{}
	defaults := colour.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "extract <image|directory|url>",
		Short: "Extract a colour palette from an image",
		Long: `Extract a ranked colour palette from an image.

The image is sampled on a regular grid, quantised to a 32-level colour
histogram, clustered with weighted k-means and the resulting clusters are
merged when they are close in RGB or in hue, saturation and lightness.

A directory picks a random supported image from inside it. HTTP(S) URLs
are downloaded, and optionally cached with --cache.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Extract a palette as hex codes
  swatch extract wallpaper.jpg

  # JSON output, ranked by the intensity/area score
  swatch extract --format json --sort score wallpaper.png

  # Reproducible output with at most 8 seed clusters
  swatch extract --seed 42 -c 8 wallpaper.jpg

  # Options from a YAML file, with one flag overriding it
  swatch extract --config palette.yaml --distance 0.3 wallpaper.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], f)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.pixels, "pixels", defaults.Pixels, "target number of sampled pixels")
	flags.Float64Var(&f.distance, "distance", defaults.Distance, "normalised RGB distance for merging colours (0-1)")
	flags.Float64Var(&f.saturationDistance, "saturation-distance", defaults.SaturationDistance, "saturation difference for merging colours (0-1)")
	flags.Float64Var(&f.lightnessDistance, "lightness-distance", defaults.LightnessDistance, "lightness difference for merging colours (0-1)")
	flags.Float64Var(&f.hueDistance, "hue-distance", defaults.HueDistance, "hue arc for merging colours (0-1, 1 is 360°)")
	flags.IntVar(&f.alphaThreshold, "alpha-threshold", defaults.AlphaThreshold, "ignore pixels with alpha at or below this value (0-255)")
	flags.IntVarP(&f.maxColours, "max-colours", "c", defaults.MaxColours, "number of k-means clusters before merging (at least 1, clamped to the distinct colours)")

	flags.Uint64Var(&f.seed, "seed", 0, "random seed for reproducible output (default: time based)")
	flags.IntVar(&f.workers, "workers", 1, "goroutines used for cluster assignment")
	flags.IntVar(&f.maxDimension, "max-dimension", 0, "downscale images whose longest side exceeds this (0 disables)")
	flags.StringVarP(&f.format, "format", "f", "hex", "output format (hex, rgb, json, yaml, table)")
	flags.StringVar(&f.sort, "sort", "none", "palette order (none, area, score)")
	flags.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVar(&f.preview, "preview", "auto", "colour previews in terminal output (auto, always, never)")
	flags.StringVar(&f.config, "config", "", "YAML options file (default: $"+ConfigEnv+")")
	flags.BoolVar(&f.cache, "cache", false, "cache downloaded images on disk")
	flags.StringVar(&f.cacheDir, "cache-dir", "", "directory for cached images (default: user cache dir)")
	flags.BoolVar(&f.refresh, "refresh", false, "download again even when a cached copy exists (with --cache)")
	flags.DurationVar(&f.timeout, "timeout", 30*time.Second, "timeout for loading the image")
	flags.Int64Var(&f.maxDownload, "max-download", httputil.DefaultMaxBytes, "maximum size in bytes of a downloaded image")
	flags.StringToStringVar(&f.headers, "header", nil, "extra HTTP header for image downloads (key=value, repeatable)")

	return cmd
}

func (f *extractFlags) validate() error {
	if !slices.Contains(validFormats, f.format) {
		return fmt.Errorf("unsupported format: %s (supported: %v)", f.format, validFormats)
	}
	if !slices.Contains(validSorts, f.sort) {
		return fmt.Errorf("unsupported sort: %s (supported: %v)", f.sort, validSorts)
	}
	if !slices.Contains(validPreviews, f.preview) {
		return fmt.Errorf("unsupported preview mode: %s (supported: %v)", f.preview, validPreviews)
	}
	if f.workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", f.workers)
	}
	if f.maxDimension < 0 {
		return fmt.Errorf("max dimension cannot be negative, got %d", f.maxDimension)
	}
	if f.timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", f.timeout)
	}
	if f.maxDownload <= 0 {
		return fmt.Errorf("max download must be positive, got %d", f.maxDownload)
	}
	if f.refresh && !f.cache {
		return fmt.Errorf("--refresh requires --cache")
	}
	return nil
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, source string, f *extractFlags) error {
	logger := newLogger(cmd)

	if err := f.validate(); err != nil {
		return err
	}
	if f.output != "" {
		if err := security.ValidateOutputPath(f.output); err != nil {
			return fmt.Errorf("invalid output path: %w", err)
		}
	}
	opts, err := resolveOptions(cmd.Flags(), f)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := image.ValidateImagePath(source); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	imagePath, err := image.ResolveImagePath(source)
	if err != nil {
		return fmt.Errorf("failed to resolve image path: %w", err)
	}
	if imagePath != source {
		logger.Info("selected image from directory", "path", imagePath)
	}

	loaderOpts := []image.SmartLoaderOption{
		image.WithFetchOptions(httputil.FetchOptions{
			Timeout:  f.timeout,
			MaxBytes: f.maxDownload,
			Headers:  f.headers,
		}),
	}
	if f.cache {
		loaderOpts = append(loaderOpts, image.WithCache(imagecache.CacheOptions{
			CacheDir: f.cacheDir,
			Refresh:  f.refresh,
		}))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()

	logger.Debug("loading image", "path", imagePath)
	img, err := image.NewSmartLoader(loaderOpts...).Load(ctx, imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	buf, err := image.ToPixelBuffer(img, f.maxDimension)
	if err != nil {
		return fmt.Errorf("failed to read image pixels: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded",
		"width", bounds.Dx(), "height", bounds.Dy(),
		"buffer_width", buf.Width, "buffer_height", buf.Height)

	extractorOpts := []colour.ExtractorOption{
		colour.WithLogger(logger.Named("extract")),
		colour.WithWorkers(f.workers),
	}
	if cmd.Flags().Changed("seed") {
		extractorOpts = append(extractorOpts, colour.WithSeed(f.seed))
	}

	palette, err := colour.NewExtractor(opts, extractorOpts...).Extract(buf)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	if palette.Len() == 0 {
		logger.Warn("no colours found: every sampled pixel is at or below the alpha threshold",
			"alpha_threshold", opts.AlphaThreshold)
	} else {
		logger.Debug("extracted palette", "colours", palette.Len())
	}

	switch f.sort {
	case "area":
		palette = palette.SortByArea()
	case "score":
		palette = palette.SortByScore()
	}

	var out io.Writer = cmd.OutOrStdout()
	showPreview := f.output == "" && wantPreview(f.preview, out)

	output, err := formatPalette(palette, f.format, showPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if f.output == "" {
		_, err := io.WriteString(out, output)
		return err
	}

	if err := os.WriteFile(f.output, []byte(output), 0o644); err != nil { // #nosec G306 - Palette output is not sensitive
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("wrote palette", "path", f.output, "colours", palette.Len())
	return nil
}

// wantPreview decides whether to draw ANSI colour blocks. In auto mode
// previews are only drawn when out is a terminal.
func wantPreview(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	file, ok := out.(*os.File)
	return ok && term.IsTerminal(int(file.Fd())) // #nosec G115 - file descriptors fit in int
}
