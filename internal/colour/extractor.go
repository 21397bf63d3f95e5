// Package colour extracts ranked colour palettes from RGBA pixel buffers
// using quantised sampling, weighted k-means and similarity merging.
package colour

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Extractor runs the palette pipeline with a fixed set of options.
// An Extractor is not safe for concurrent use because it owns its
// random source.
type Extractor struct {
	opts       Options
	rng        *rand.Rand
	workers    int
	iterations int
	logger     hclog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithRand sets the random source used for k-means++ seeding.
func WithRand(rng *rand.Rand) ExtractorOption {
	return func(e *Extractor) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds the random source so repeated runs are reproducible.
func WithSeed(seed uint64) ExtractorOption {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithWorkers sets how many goroutines share the assignment phase.
// Values below 2 keep it single-threaded.
func WithWorkers(n int) ExtractorOption {
	return func(e *Extractor) {
		e.workers = max(n, 1)
	}
}

// WithIterations overrides the Lloyd pass budget.
func WithIterations(n int) ExtractorOption {
	return func(e *Extractor) {
		if n > 0 {
			e.iterations = n
		}
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger hclog.Logger) ExtractorOption {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates an Extractor for opts. Options are validated by
// Extract, not here.
func NewExtractor(opts Options, options ...ExtractorOption) *Extractor {
	e := &Extractor{
		opts:       opts,
		workers:    1,
		iterations: defaultIterations,
		logger:     hclog.NewNullLogger(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.rng == nil {
		now := uint64(time.Now().UnixNano())
		e.rng = rand.New(rand.NewPCG(now, now>>1))
	}
	return e
}

// Extract returns the palette for buf. The palette is empty, not an error,
// when no sampled pixel passes the alpha threshold. Records are in the order
// their buckets were discovered, which is close to but not strictly by area.
func (e *Extractor) Extract(buf PixelBuffer) (*Palette, error) {
	if err := buf.validate(); err != nil {
		return nil, err
	}
	if err := e.opts.Validate(); err != nil {
		return nil, err
	}

	step := sampleStep(buf.Len(), e.opts.Pixels)
	samples := samplePixels(buf, step, e.opts.AlphaThreshold)
	e.logger.Debug("sampled pixel buffer",
		"width", buf.Width, "height", buf.Height, "step", step, "samples", len(samples))

	if len(samples) == 0 {
		e.logger.Debug("no pixels passed the alpha threshold", "threshold", e.opts.AlphaThreshold)
		return NewPalette([]ColorRecord{}), nil
	}

	k := clampK(e.opts.MaxColours, len(samples))
	clusters := seedClusters(samples, k, e.rng)

	passes := newLloyd(samples, clusters, e.workers).run(e.iterations)
	e.logger.Debug("k-means finished", "k", k, "passes", passes, "workers", e.workers)

	total := totalWeight(samples)
	buckets := mergeClusters(clusters, e.opts)
	e.logger.Debug("merged clusters", "clusters", k, "buckets", len(buckets))

	records := make([]ColorRecord, len(buckets))
	for i, b := range buckets {
		records[i] = newRecord(b, total)
	}
	return NewPalette(records), nil
}

// Extract is a convenience wrapper that runs a freshly seeded Extractor.
func Extract(buf PixelBuffer, opts Options) (*Palette, error) {
	palette, err := NewExtractor(opts).Extract(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	return palette, nil
}
