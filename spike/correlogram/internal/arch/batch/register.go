// Package batch implements the vectorized shift-scan correlogram kernel.
package batch

import (
	"slices"

	"github.com/cwbudde/algo-spike/spike/correlogram/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "batch",
		Kind:      registry.KindBatch,
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Histogram: histogram,
	})
}

const (
	labelA uint8 = iota
	labelB
)

type event struct {
	t     int64
	label uint8
}

// histogram compares every event with the event shift positions later in
// the time-ordered stream, for shift = 1, 2, ... An event leaves the scan
// once its lag reaches the window, so the work is proportional to the
// number of pairs inside the window.
//
// All lags seen by the scan are non-negative. An A-then-B pair adds lag +d
// to bin k and a B-then-A pair adds -d to the mirrored bin NumBins-1-k.
// Simultaneous spikes of A and B are lag 0 whichever order the sort left
// them in. Auto pairs add both orders.
func histogram(a, b []int64, bins registry.Bins, autoPair bool) []int64 {
	counts := make([]int64, bins.NumBins)

	var events []event
	if autoPair {
		events = labelled(a, labelA, nil)
	} else {
		events = merge(a, b)
	}
	n := len(events)
	if n < 2 {
		return counts
	}

	span := bins.Span()
	width := 2 * bins.BinSize
	last := int64(bins.NumBins - 1)

	active := make([]int32, n)
	for i := range active {
		active[i] = int32(i)
	}

	for shift := 1; len(active) > 0; shift++ {
		kept := active[:0]
		for _, i := range active {
			j := int(i) + shift
			if j >= n {
				continue
			}
			d := events[j].t - events[i].t
			if 2*d >= span {
				continue
			}
			kept = append(kept, i)

			k := (span + 2*d) / width
			first, second := events[i].label, events[j].label
			switch {
			case autoPair:
				counts[k]++
				counts[last-k]++
			case first == second:
			case first == labelA || d == 0:
				counts[k]++
			default:
				counts[last-k]++
			}
		}
		active = kept
	}

	return counts
}

func labelled(times []int64, label uint8, dst []event) []event {
	for _, t := range times {
		dst = append(dst, event{t: t, label: label})
	}
	return dst
}

// merge concatenates both trains and orders the result by time. The sort is
// not stable: simultaneous spikes of A and B end up in either order.
func merge(a, b []int64) []event {
	events := make([]event, 0, len(a)+len(b))
	events = labelled(a, labelA, events)
	events = labelled(b, labelB, events)
	slices.SortFunc(events, func(x, y event) int {
		switch {
		case x.t < y.t:
			return -1
		case x.t > y.t:
			return 1
		default:
			return 0
		}
	})
	return events
}
