package correlogram

import (
	"fmt"
	"slices"
)

// Tensor holds correlogram counts indexed [i][j][bin], stored flat.
// Pair(i, j) is the histogram of lags t_j - t_i with unit i as reference.
type Tensor struct {
	UnitIDs []string
	NumBins int
	Counts  []int64
}

// NewTensor returns a zeroed tensor for the given units.
func NewTensor(unitIDs []string, numBins int) Tensor {
	n := len(unitIDs)
	return Tensor{
		UnitIDs: slices.Clone(unitIDs),
		NumBins: numBins,
		Counts:  make([]int64, n*n*numBins),
	}
}

// NumUnits returns the size of the two unit axes.
func (t Tensor) NumUnits() int { return len(t.UnitIDs) }

// Shape returns (units, units, bins).
func (t Tensor) Shape() (int, int, int) {
	n := len(t.UnitIDs)
	return n, n, t.NumBins
}

func (t Tensor) offset(i, j int) int {
	return (i*len(t.UnitIDs) + j) * t.NumBins
}

// Pair returns the counts of one ordered pair. The slice aliases t.Counts.
func (t Tensor) Pair(i, j int) []int64 {
	off := t.offset(i, j)
	return t.Counts[off : off+t.NumBins : off+t.NumBins]
}

// At returns a single count.
func (t Tensor) At(i, j, bin int) int64 {
	return t.Counts[t.offset(i, j)+bin]
}

// Total returns the sum of all counts.
func (t Tensor) Total() int64 {
	var sum int64
	for _, c := range t.Counts {
		sum += c
	}
	return sum
}

// Add accumulates other into t elementwise. Both tensors must have the same
// units and bin count.
func (t *Tensor) Add(other Tensor) error {
	if !slices.Equal(t.UnitIDs, other.UnitIDs) || t.NumBins != other.NumBins {
		return fmt.Errorf("%w: %d units x %d bins vs %d units x %d bins",
			ErrShapeMismatch, len(t.UnitIDs), t.NumBins, len(other.UnitIDs), other.NumBins)
	}
	for i, c := range other.Counts {
		t.Counts[i] += c
	}
	return nil
}

// IsSymmetric reports whether every Pair(j, i) is the reverse of Pair(i, j).
func (t Tensor) IsSymmetric() bool {
	n := len(t.UnitIDs)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a, b := t.Pair(i, j), t.Pair(j, i)
			for k := range a {
				if a[k] != b[t.NumBins-1-k] {
					return false
				}
			}
		}
	}
	return true
}

// Select returns a new tensor restricted to the given units, in that order.
func (t Tensor) Select(unitIDs ...string) (Tensor, error) {
	index := make([]int, len(unitIDs))
	for k, id := range unitIDs {
		pos := slices.Index(t.UnitIDs, id)
		if pos < 0 {
			return Tensor{}, fmt.Errorf("%w: %q", ErrUnknownUnit, id)
		}
		index[k] = pos
	}

	out := NewTensor(unitIDs, t.NumBins)
	for a, i := range index {
		for b, j := range index {
			copy(out.Pair(a, b), t.Pair(i, j))
		}
	}
	return out, nil
}

func reverseInto(dst, src []int64) {
	n := len(src)
	for k, c := range src {
		dst[n-1-k] = c
	}
}
