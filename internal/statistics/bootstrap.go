// Package statistics provides the bootstrap confidence-interval estimator
// used when aggregating trial metrics.
package statistics

import (
	"math"
	"math/rand"
	"sort"
)

// DefaultIterations is the default number of bootstrap resamples.
const DefaultIterations = 1000

// ConfidenceInterval holds the result of a bootstrap CI computation.
// Bounds are the 5th and 95th percentiles of the resampled means: an
// approximate, simulation-based interval, not a closed-form guarantee.
type ConfidenceInterval struct {
	Mean       float64 `json:"mean"`
	Lower      float64 `json:"lower"`
	Upper      float64 `json:"upper"`
	Iterations int     `json:"iterations"`
}

// BootstrapCI resamples values with replacement iters times, takes the mean
// of each resample, and returns the 5th/95th percentiles of those means as
// the interval bounds. A non-negative seed gives reproducible output.
//
// Fewer than 2 observations make resampling meaningless: the interval
// collapses to the point mean with zero iterations.
func BootstrapCI(values []float64, iters int, seed int64) ConfidenceInterval {
	n := len(values)
	m := Mean(values)
	if n < 2 {
		return ConfidenceInterval{Mean: m, Lower: m, Upper: m}
	}
	if iters <= 0 {
		iters = DefaultIterations
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewSource(seed))
	} else {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	bootMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			sample[j] = values[rng.Intn(n)]
		}
		bootMeans[i] = Mean(sample)
	}
	sort.Float64s(bootMeans)

	loIdx := int(math.Floor(0.05 * float64(iters)))
	hiIdx := int(math.Floor(0.95 * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}

	return ConfidenceInterval{
		Mean:       m,
		Lower:      bootMeans[loIdx],
		Upper:      bootMeans[hiIdx],
		Iterations: iters,
	}
}

// Mean computes the arithmetic mean; 0.0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
