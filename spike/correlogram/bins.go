package correlogram

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spike/spike/correlogram/internal/arch/registry"
)

// maxBins bounds the histogram length PlanBins accepts.
const maxBins = 1 << 24

// Geometry is the bin layout of a correlogram.
//
// In samples, edge k sits at (2k - NumBins) * BinSize / 2, so
// Edges[k] == -Edges[NumBins-k] and bin NumBins/2 holds lag 0. A lag in the
// window satisfies |2*lag| < NumBins*BinSize. Non-negative lags use bins
// [edge_k, edge_k+1); a negative lag goes to the mirror of the bin of its
// absolute value, so lags sitting on an edge stay symmetric.
type Geometry struct {
	SamplingFrequency float64 // Hz
	BinSize           int64   // samples
	WindowSize        int64   // half window in samples, rounded down
	NumBins           int
	Edges             []float64 // ms, length NumBins+1
}

// PlanBins derives the bin geometry for a window and bin width given in
// milliseconds. The bin width is rounded to whole samples (at least one);
// the number of bins is floor(windowMs/binMs) + 1 regardless of that
// rounding.
func PlanBins(fs, windowMs, binMs float64) (Geometry, error) {
	if err := validatePositive("sampling_frequency", fs); err != nil {
		return Geometry{}, err
	}
	if err := validatePositive("window_ms", windowMs); err != nil {
		return Geometry{}, err
	}
	if err := validatePositive("bin_ms", binMs); err != nil {
		return Geometry{}, err
	}
	if binMs > windowMs {
		return Geometry{}, &ParamError{Param: "bin_ms", Value: binMs, Reason: "must be <= window_ms"}
	}

	ratio := math.Floor(windowMs / binMs)
	if ratio >= maxBins {
		return Geometry{}, &ParamError{Param: "window_ms", Value: windowMs, Reason: "too many bins for bin_ms"}
	}
	numBins := int(ratio) + 1

	binSize := max(int64(math.Round(binMs*fs/1000)), 1)
	span := int64(numBins) * binSize

	samples := make([]float64, numBins+1)
	for k := range samples {
		samples[k] = float64(int64(2*k-numBins)*binSize) / 2
	}
	edges := make([]float64, numBins+1)
	vecmath.ScaleBlock(edges, samples, 1000/fs)

	return Geometry{
		SamplingFrequency: fs,
		BinSize:           binSize,
		WindowSize:        span / 2,
		NumBins:           numBins,
		Edges:             edges,
	}, nil
}

func validatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ParamError{Param: name, Value: v, Reason: "must be finite"}
	}
	if v <= 0 {
		return &ParamError{Param: name, Value: v, Reason: "must be > 0"}
	}
	return nil
}

// Span returns the full window width in samples.
func (g Geometry) Span() int64 {
	return int64(g.NumBins) * g.BinSize
}

// CenterBin returns the index of the bin containing lag 0.
func (g Geometry) CenterBin() int {
	return g.NumBins / 2
}

// LagBin returns the bin holding a lag in samples, and false when the lag
// lies outside the window.
func (g Geometry) LagBin(lag int64) (int, bool) {
	span := g.Span()
	abs := max(lag, -lag)
	if 2*abs >= span {
		return 0, false
	}
	k := g.kernelBins().Index(abs)
	if lag < 0 {
		return g.NumBins - 1 - k, true
	}
	return k, true
}

// BinSeconds returns the bin width in seconds.
func (g Geometry) BinSeconds() float64 {
	return float64(g.BinSize) / g.SamplingFrequency
}

// Centers returns the bin centers in milliseconds.
func (g Geometry) Centers() []float64 {
	if g.NumBins == 0 {
		return nil
	}
	out := make([]float64, g.NumBins)
	vecmath.AddMulBlock(out, g.Edges[:g.NumBins], g.Edges[1:], 0.5)
	return out
}

// Rates converts the counts of one pair into the firing rate of the target
// unit conditioned on a spike of the reference unit, in Hz.
func (g Geometry) Rates(counts []int64, referenceSpikes int) ([]float64, error) {
	if len(counts) != g.NumBins {
		return nil, &ParamError{Param: "counts", Value: len(counts), Reason: "length must equal the bin count"}
	}
	if referenceSpikes <= 0 {
		return nil, &ParamError{Param: "reference_spikes", Value: referenceSpikes, Reason: "must be > 0"}
	}

	src := make([]float64, len(counts))
	for i, c := range counts {
		src[i] = float64(c)
	}
	out := make([]float64, len(counts))
	vecmath.ScaleBlock(out, src, 1/(float64(referenceSpikes)*g.BinSeconds()))
	return out, nil
}

func (g Geometry) kernelBins() registry.Bins {
	return registry.Bins{BinSize: g.BinSize, NumBins: g.NumBins}
}
