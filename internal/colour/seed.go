package colour

import "math/rand/v2"

// Cluster is a k-means centroid and the sample weight assigned to it.
type Cluster struct {
	Centroid RGBf
	Weight   float64
}

// clampK bounds the requested cluster count to [1, n].
func clampK(k, n int) int {
	if k > n {
		k = n
	}
	return max(k, 1)
}

// seedClusters picks k initial centroids with weighted k-means++: each new
// centroid is drawn with probability proportional to weight * squared
// distance to the nearest centroid already chosen, so a bucket holding many
// pixels is more likely to seed a cluster than a rare colour.
// k must already be clamped to [1, len(samples)].
func seedClusters(samples []WeightedSample, k int, rng *rand.Rand) []Cluster {
	n := len(samples)
	if n == 0 || k <= 0 {
		return nil
	}

	clusters := make([]Cluster, k)
	clusters[0].Centroid = samples[rng.IntN(n)].Colour

	// Squared distance from each sample to its nearest chosen centroid.
	nearest := make([]float64, n)
	for i, s := range samples {
		nearest[i] = dist2(s.Colour, clusters[0].Centroid)
	}

	for c := 1; c < k; c++ {
		var total float64
		for i, s := range samples {
			total += float64(s.Weight) * nearest[i]
		}

		var pick int
		if total <= 0 {
			// Every sample coincides with a chosen centroid.
			pick = rng.IntN(n)
		} else {
			pick = weightedPick(samples, nearest, rng.Float64()*total)
		}

		clusters[c].Centroid = samples[pick].Colour
		for i, s := range samples {
			if d := dist2(s.Colour, clusters[c].Centroid); d < nearest[i] {
				nearest[i] = d
			}
		}
	}

	return clusters
}

// weightedPick returns the first index whose cumulative weight*distance
// reaches target. Rounding can leave the running sum just short of target,
// in which case the last sample with a non-zero share is returned.
func weightedPick(samples []WeightedSample, nearest []float64, target float64) int {
	var acc float64
	last := 0
	for i, s := range samples {
		share := float64(s.Weight) * nearest[i]
		if share <= 0 {
			continue
		}
		last = i
		acc += share
		if acc >= target {
			return i
		}
	}
	return last
}
