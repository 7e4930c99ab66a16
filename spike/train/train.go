package train

import (
	"errors"
	"fmt"
)

// Errors returned by constructors in this package.
var (
	ErrInvalidSorting = errors.New("train: invalid sorting")
	ErrUnsortedTrain  = errors.New("train: spike train is not sorted")
)

// Train is a non-decreasing sequence of spike times in samples.
// Equal neighbouring values represent simultaneous spikes.
type Train []int64

// Len returns the number of spikes.
func (t Train) Len() int { return len(t) }

// Validate reports whether t is non-decreasing and non-negative.
func (t Train) Validate() error {
	for i, v := range t {
		if v < 0 {
			return fmt.Errorf("%w: negative sample %d at index %d", ErrUnsortedTrain, v, i)
		}
		if i > 0 && v < t[i-1] {
			return fmt.Errorf("%w: sample %d at index %d precedes %d", ErrUnsortedTrain, v, i, t[i-1])
		}
	}
	return nil
}

// Clone returns an independent copy of t.
func (t Train) Clone() Train {
	if t == nil {
		return nil
	}
	out := make(Train, len(t))
	copy(out, t)
	return out
}
