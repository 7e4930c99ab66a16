package correlogram

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// PowerSpectrum returns the one-sided power spectrum of a correlogram after
// removing its mean, which exposes rhythmic firing as spectral peaks.
// The counts are zero-padded to the next power of two; freqs are in Hz for
// bins of binSeconds.
func PowerSpectrum(counts []int64, binSeconds float64) (freqs, power []float64, err error) {
	if len(counts) == 0 {
		return nil, nil, &ParamError{Param: "counts", Value: 0, Reason: "must not be empty"}
	}
	if err := validatePositive("bin_seconds", binSeconds); err != nil {
		return nil, nil, err
	}

	size := nextPowerOf2(len(counts))
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, nil, fmt.Errorf("correlogram: failed to create FFT plan: %w", err)
	}

	var mean float64
	for _, c := range counts {
		mean += float64(c)
	}
	mean /= float64(len(counts))

	in := make([]complex128, size)
	for i, c := range counts {
		in[i] = complex(float64(c)-mean, 0)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, nil, fmt.Errorf("correlogram: forward FFT failed: %w", err)
	}

	half := size/2 + 1
	re := make([]float64, half)
	im := make([]float64, half)
	freqs = make([]float64, half)
	df := 1 / (float64(size) * binSeconds)
	for k := range half {
		re[k] = real(out[k])
		im[k] = imag(out[k])
		freqs[k] = float64(k) * df
	}

	power = make([]float64, half)
	vecmath.Power(power, re, im)
	return freqs, power, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
