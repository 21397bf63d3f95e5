package colour

// defaultIterations is the Lloyd pass budget per extraction.
const defaultIterations = 12

// lloyd runs weighted k-means over a fixed sample set. All scratch buffers
// belong to one extraction and are reset at the start of every pass.
type lloyd struct {
	samples  []WeightedSample
	clusters []Cluster

	assign   []int     // cluster index per sample, -1 before the first pass
	bestDist []float64 // squared distance to the assigned centroid
	sums     []RGBf    // weight * colour per cluster
	members  []int     // samples per cluster

	workers  int
	partials []accumulator
}

func newLloyd(samples []WeightedSample, clusters []Cluster, workers int) *lloyd {
	k := len(clusters)
	l := &lloyd{
		samples:  samples,
		clusters: clusters,
		assign:   make([]int, len(samples)),
		bestDist: make([]float64, len(samples)),
		sums:     make([]RGBf, k),
		members:  make([]int, k),
		workers:  workers,
	}
	for i := range l.assign {
		l.assign[i] = -1
	}
	return l
}

// run iterates until no sample changes cluster or the budget is spent.
// It returns the number of passes performed.
func (l *lloyd) run(iterations int) int {
	pass := 0
	for pass < iterations {
		pass++
		l.reset()

		var changed bool
		if l.workers > 1 && len(l.samples) >= 2*l.workers {
			changed = l.assignParallel()
		} else {
			changed = l.assignScalar()
		}
		if l.repair() {
			changed = true
		}
		l.update()

		if !changed {
			break
		}
	}
	return pass
}

func (l *lloyd) reset() {
	for k := range l.clusters {
		l.clusters[k].Weight = 0
		l.sums[k] = RGBf{}
		l.members[k] = 0
	}
}

// nearest returns the index of the closest centroid and its squared
// distance. Ties resolve to the lowest index.
func (l *lloyd) nearest(c RGBf) (int, float64) {
	best := 0
	bestD := dist2(c, l.clusters[0].Centroid)
	for k := 1; k < len(l.clusters); k++ {
		if d := dist2(c, l.clusters[k].Centroid); d < bestD {
			best, bestD = k, d
		}
	}
	return best, bestD
}

// assignScalar assigns every sample to its nearest centroid and
// accumulates the per-cluster weighted sums.
func (l *lloyd) assignScalar() bool {
	changed := false
	for i, s := range l.samples {
		k, d := l.nearest(s.Colour)
		l.bestDist[i] = d
		if l.assign[i] != k {
			l.assign[i] = k
			changed = true
		}
		w := float64(s.Weight)
		l.sums[k].R += w * s.Colour.R
		l.sums[k].G += w * s.Colour.G
		l.sums[k].B += w * s.Colour.B
		l.clusters[k].Weight += w
		l.members[k]++
	}
	return changed
}

// repair reseeds every empty cluster with the farthest sample whose current
// cluster would not become empty, moving that sample's weight with it.
func (l *lloyd) repair() bool {
	repaired := false
	for k := range l.clusters {
		if l.clusters[k].Weight > 0 {
			continue
		}

		far, farD := -1, -1.0
		for i := range l.samples {
			if l.members[l.assign[i]] <= 1 {
				continue
			}
			if l.bestDist[i] > farD {
				far, farD = i, l.bestDist[i]
			}
		}
		if far < 0 {
			continue
		}

		s := l.samples[far]
		w := float64(s.Weight)
		old := l.assign[far]

		l.sums[old].R -= w * s.Colour.R
		l.sums[old].G -= w * s.Colour.G
		l.sums[old].B -= w * s.Colour.B
		l.clusters[old].Weight -= w
		l.members[old]--

		l.assign[far] = k
		l.sums[k] = RGBf{R: w * s.Colour.R, G: w * s.Colour.G, B: w * s.Colour.B}
		l.clusters[k].Weight = w
		l.members[k] = 1

		// The sample now sits on its own centroid.
		l.bestDist[far] = 0
		repaired = true
	}
	return repaired
}

// update moves each non-empty cluster to its weighted mean.
func (l *lloyd) update() {
	for k := range l.clusters {
		w := l.clusters[k].Weight
		if w <= 0 {
			continue
		}
		l.clusters[k].Centroid = RGBf{
			R: l.sums[k].R / w,
			G: l.sums[k].G / w,
			B: l.sums[k].B / w,
		}
	}
}
