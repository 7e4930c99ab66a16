package testutil

import (
	"math/rand"
	"slices"
)

// UniformSpikes draws n sample indices uniformly from [0, duration) with a
// fixed seed and returns them sorted with duplicates removed.
func UniformSpikes(seed int64, n int, duration int64) []int64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int64, n)
	for i := range out {
		out[i] = rng.Int63n(duration)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// InjectLag returns a sorted copy of target in which every step-th spike is
// replaced by the matching spike of source shifted by lag samples. It also
// returns the number of injected spikes.
func InjectLag(source, target []int64, step int, lag int64) ([]int64, int) {
	n := min(len(source), len(target))
	out := slices.Clone(target[:n])
	injected := 0
	for i := 0; i < n; i += step {
		out[i] = source[i] + lag
		injected++
	}
	slices.Sort(out)
	return out, injected
}

// Median returns the median of counts.
func Median(counts []int64) float64 {
	if len(counts) == 0 {
		return 0
	}
	s := slices.Clone(counts)
	slices.Sort(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return float64(s[mid])
	}
	return float64(s[mid-1]+s[mid]) / 2
}
