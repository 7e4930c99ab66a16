package train

import "math"

// ISIStats summarizes the inter-spike intervals of one unit.
type ISIStats struct {
	Spikes     int
	Intervals  int
	MeanMs     float64
	StdMs      float64
	CV         float64 // StdMs / MeanMs
	MinMs      float64
	Violations int // intervals shorter than the refractory period
}

// ISIAccumulator collects inter-spike interval statistics across segments.
// Intervals never span two trains passed to separate Update calls.
type ISIAccumulator struct {
	fs         float64
	refractory float64 // samples
	spikes     int
	n          int
	mean       float64
	m2         float64
	min        int64
	violations int
}

// NewISIAccumulator creates an accumulator for trains sampled at fs Hz.
func NewISIAccumulator(fs, refractoryMs float64) *ISIAccumulator {
	return &ISIAccumulator{fs: fs, refractory: refractoryMs * fs / 1000}
}

// Update adds the intervals of one sorted train.
func (a *ISIAccumulator) Update(t Train) {
	a.spikes += len(t)
	for i := 1; i < len(t); i++ {
		d := t[i] - t[i-1]

		a.n++
		x := float64(d)
		delta := x - a.mean
		a.mean += delta / float64(a.n)
		a.m2 += delta * (x - a.mean)

		if a.n == 1 || d < a.min {
			a.min = d
		}
		if float64(d) < a.refractory {
			a.violations++
		}
	}
}

// Result converts the accumulated intervals to milliseconds.
func (a *ISIAccumulator) Result() ISIStats {
	st := ISIStats{Spikes: a.spikes, Intervals: a.n, Violations: a.violations}
	if a.n == 0 || !(a.fs > 0) {
		return st
	}

	toMs := 1000 / a.fs
	st.MeanMs = a.mean * toMs
	st.StdMs = math.Sqrt(a.m2/float64(a.n)) * toMs
	st.MinMs = float64(a.min) * toMs
	if st.MeanMs > 0 {
		st.CV = st.StdMs / st.MeanMs
	}
	return st
}

// Reset clears the accumulated data.
func (a *ISIAccumulator) Reset() {
	*a = ISIAccumulator{fs: a.fs, refractory: a.refractory}
}

// UnitISI returns the interval statistics of one unit over all segments.
func UnitISI(s Sorting, unitID string, refractoryMs float64) ISIStats {
	acc := NewISIAccumulator(s.SamplingFrequency(), refractoryMs)
	for seg := 0; seg < s.NumSegments(); seg++ {
		acc.Update(s.SpikeTrain(unitID, seg))
	}
	return acc.Result()
}
