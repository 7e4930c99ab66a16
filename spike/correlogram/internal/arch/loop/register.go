//go:build !purego

// Package loop implements the compiled nested-loop correlogram kernel.
package loop

import (
	"github.com/cwbudde/algo-spike/spike/correlogram/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:        "loop",
		Kind:        registry.KindLoop,
		SIMDLevel:   cpu.SIMDNone,
		Priority:    10,
		Accelerated: true,
		Histogram:   histogram,
	})
}

// histogram walks A once. For each spike of A the lower pointer into B only
// moves forward, and the inner loop stops at the first lag past the window.
func histogram(a, b []int64, bins registry.Bins, autoPair bool) []int64 {
	counts := make([]int64, bins.NumBins)
	span := bins.Span()
	width := 2 * bins.BinSize
	last := int64(bins.NumBins - 1)

	lo := 0
	for i, ta := range a {
		for lo < len(b) && 2*(ta-b[lo]) >= span {
			lo++
		}
		for j := lo; j < len(b); j++ {
			d := b[j] - ta
			if 2*d >= span {
				break
			}
			switch {
			case autoPair && i == j:
			case d > 0 || (d == 0 && !(autoPair && j < i)):
				counts[(span+2*d)/width]++
			default:
				counts[last-(span-2*d)/width]++
			}
		}
	}

	return counts
}
