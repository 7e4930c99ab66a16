package train

import (
	"fmt"
	"math"
	"sort"
)

// Sorting is the read-only view of spike-sorting output used by the
// correlogram engine.
type Sorting interface {
	// UnitIDs returns the unit identifiers in a stable order without duplicates.
	UnitIDs() []string
	// SamplingFrequency returns the sampling rate in Hz.
	SamplingFrequency() float64
	// NumSegments returns the number of recording segments.
	NumSegments() int
	// SpikeTrain returns the spikes of a unit in one segment. Unknown units
	// and empty segments yield an empty train.
	SpikeTrain(unitID string, segment int) Train
}

// MemorySorting is a Sorting backed by in-memory trains.
// It is immutable after construction and safe for concurrent reads.
type MemorySorting struct {
	fs       float64
	unitIDs  []string
	segments []map[string]Train
}

// NewSorting builds a MemorySorting from per-segment unit trains.
// unitIDs fixes the unit order; a unit missing from a segment has an empty
// train there. Trains are copied and validated.
func NewSorting(fs float64, unitIDs []string, segments ...map[string]Train) (*MemorySorting, error) {
	if !(fs > 0) || math.IsInf(fs, 0) {
		return nil, fmt.Errorf("%w: sampling frequency must be > 0: %f", ErrInvalidSorting, fs)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: at least one segment is required", ErrInvalidSorting)
	}

	known := make(map[string]struct{}, len(unitIDs))
	for _, id := range unitIDs {
		if _, dup := known[id]; dup {
			return nil, fmt.Errorf("%w: duplicate unit id %q", ErrInvalidSorting, id)
		}
		known[id] = struct{}{}
	}

	s := &MemorySorting{
		fs:       fs,
		unitIDs:  append([]string(nil), unitIDs...),
		segments: make([]map[string]Train, len(segments)),
	}

	for seg, units := range segments {
		copied := make(map[string]Train, len(units))
		for id, tr := range units {
			if _, ok := known[id]; !ok {
				return nil, fmt.Errorf("%w: segment %d references unknown unit %q", ErrInvalidSorting, seg, id)
			}
			if err := tr.Validate(); err != nil {
				return nil, fmt.Errorf("unit %q segment %d: %w", id, seg, err)
			}
			copied[id] = tr.Clone()
		}
		s.segments[seg] = copied
	}

	return s, nil
}

// FromUnits builds a single-segment MemorySorting. Units are ordered by
// their identifiers.
func FromUnits(fs float64, units map[string]Train) (*MemorySorting, error) {
	ids := make([]string, 0, len(units))
	for id := range units {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return NewSorting(fs, ids, units)
}

// UnitIDs returns a copy of the unit identifiers.
func (s *MemorySorting) UnitIDs() []string {
	return append([]string(nil), s.unitIDs...)
}

// SamplingFrequency returns the sampling rate in Hz.
func (s *MemorySorting) SamplingFrequency() float64 { return s.fs }

// NumSegments returns the number of segments.
func (s *MemorySorting) NumSegments() int { return len(s.segments) }

// SpikeTrain returns the stored train. The result must not be modified.
func (s *MemorySorting) SpikeTrain(unitID string, segment int) Train {
	if segment < 0 || segment >= len(s.segments) {
		return nil
	}
	return s.segments[segment][unitID]
}

// NumSpikes returns the total spike count of a unit over all segments.
func (s *MemorySorting) NumSpikes(unitID string) int {
	n := 0
	for _, units := range s.segments {
		n += len(units[unitID])
	}
	return n
}
