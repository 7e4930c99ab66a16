// Package registry stores the pair-histogram kernels available to the
// correlogram engine and selects one per kernel kind from CPU features.
package registry

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Kind identifies a histogram strategy family.
type Kind int

const (
	// KindBatch is the vectorized shift-scan strategy.
	KindBatch Kind = iota
	// KindLoop is the compiled nested-loop strategy.
	KindLoop
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBatch:
		return "batch"
	case KindLoop:
		return "loop"
	default:
		return "unknown"
	}
}

// Bins is the integer bin layout shared by all kernels.
//
// A lag d (samples) lies in the window when |2d| < Span, where
// Span = NumBins*BinSize. A lag d >= 0 falls into bin Index(d); a negative
// lag falls into NumBins-1-Index(-d), the mirror of its absolute value.
type Bins struct {
	BinSize int64
	NumBins int
}

// Span returns the full window width in samples.
func (b Bins) Span() int64 {
	return int64(b.NumBins) * b.BinSize
}

// Index returns the bin of a non-negative lag inside the window.
func (b Bins) Index(d int64) int {
	return int((b.Span() + 2*d) / (2 * b.BinSize))
}

// HistogramFn bins the lags b[j]-a[i] of two sorted trains. With autoPair
// set, a and b are the same train and the pair i == j is skipped; a zero lag
// between duplicate timestamps counts once for each order, the order j < i
// taking the mirrored bin.
// The result has length bins.NumBins.
type HistogramFn func(a, b []int64, bins Bins, autoPair bool) []int64

// OpEntry is one registered kernel implementation.
type OpEntry struct {
	Name        string
	Kind        Kind
	SIMDLevel   cpu.SIMDLevel
	Priority    int
	Accelerated bool // disabled when features force the generic path
	Histogram   HistogramFn
}

// OpRegistry stores available implementations.
type OpRegistry struct {
	mu      sync.RWMutex
	entries []OpEntry
	sorted  bool
}

// Global is the default kernel registry.
var Global = &OpRegistry{}

// Register adds an implementation entry.
func (r *OpRegistry) Register(entry OpEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	r.sorted = false
}

// Lookup returns the highest-priority implementation of kind supported by
// features, or nil.
func (r *OpRegistry) Lookup(kind Kind, features cpu.Features) *OpEntry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		entry := &r.entries[i]
		if entry.Kind != kind {
			continue
		}
		if entry.Accelerated && features.ForceGeneric {
			continue
		}
		if cpu.Supports(features, entry.SIMDLevel) {
			return entry
		}
	}

	return nil
}

func (r *OpRegistry) sortByPriority() {
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1
		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}
		r.entries[j+1] = key
	}
}

// ListEntries returns a copy of entries for tests/debugging.
func (r *OpRegistry) ListEntries() []OpEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]OpEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Reset clears all entries. Intended for tests.
func (r *OpRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
	r.sorted = false
}
