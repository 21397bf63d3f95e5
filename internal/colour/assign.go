package colour

import "golang.org/x/sync/errgroup"

// accumulator holds one worker's share of the per-cluster sums.
type accumulator struct {
	sums    []RGBf
	weights []float64
	members []int
	changed bool
}

func (a *accumulator) reset(k int) {
	if cap(a.sums) < k {
		a.sums = make([]RGBf, k)
		a.weights = make([]float64, k)
		a.members = make([]int, k)
	}
	a.sums = a.sums[:k]
	a.weights = a.weights[:k]
	a.members = a.members[:k]
	clear(a.sums)
	clear(a.weights)
	clear(a.members)
	a.changed = false
}

// assignParallel splits the samples into contiguous chunks, one per worker.
// Each worker writes only its own range of assign/bestDist and its own
// accumulator; the accumulators are then reduced in worker order.
func (l *lloyd) assignParallel() bool {
	k := len(l.clusters)
	n := len(l.samples)
	chunk := (n + l.workers - 1) / l.workers

	if len(l.partials) != l.workers {
		l.partials = make([]accumulator, l.workers)
	}

	var g errgroup.Group
	for w := range l.workers {
		lo := w * chunk
		hi := min(lo+chunk, n)
		acc := &l.partials[w]
		acc.reset(k)
		if lo >= hi {
			continue
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				s := l.samples[i]
				c, d := l.nearest(s.Colour)
				l.bestDist[i] = d
				if l.assign[i] != c {
					l.assign[i] = c
					acc.changed = true
				}
				wt := float64(s.Weight)
				acc.sums[c].R += wt * s.Colour.R
				acc.sums[c].G += wt * s.Colour.G
				acc.sums[c].B += wt * s.Colour.B
				acc.weights[c] += wt
				acc.members[c]++
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail

	changed := false
	for w := range l.partials {
		acc := &l.partials[w]
		changed = changed || acc.changed
		for c := range k {
			l.sums[c].R += acc.sums[c].R
			l.sums[c].G += acc.sums[c].G
			l.sums[c].B += acc.sums[c].B
			l.clusters[c].Weight += acc.weights[c]
			l.members[c] += acc.members[c]
		}
	}
	return changed
}
