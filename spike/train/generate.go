package train

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strconv"
)

// GenerateConfig describes a synthetic sorting.
type GenerateConfig struct {
	NumUnits          int
	SamplingFrequency float64   // Hz
	Durations         []float64 // seconds, one entry per segment
	FiringRate        float64   // Hz
	RefractoryMs      float64
	Seed              int64
}

// DefaultGenerateConfig returns a five-unit, single-segment configuration.
func DefaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		NumUnits:          5,
		SamplingFrequency: 30000,
		Durations:         []float64{10},
		FiringRate:        10,
		RefractoryMs:      4,
		Seed:              1,
	}
}

// Generate creates a sorting whose units fire uniformly at random at
// cfg.FiringRate, with spikes closer than the refractory period removed.
// Unit identifiers are "0", "1", ... The result depends only on cfg.
func Generate(cfg GenerateConfig) (*MemorySorting, error) {
	if cfg.NumUnits < 0 {
		return nil, fmt.Errorf("%w: unit count must be >= 0: %d", ErrInvalidSorting, cfg.NumUnits)
	}
	if !(cfg.SamplingFrequency > 0) {
		return nil, fmt.Errorf("%w: sampling frequency must be > 0: %f", ErrInvalidSorting, cfg.SamplingFrequency)
	}
	if len(cfg.Durations) == 0 {
		return nil, fmt.Errorf("%w: at least one segment duration is required", ErrInvalidSorting)
	}
	if cfg.FiringRate < 0 || cfg.RefractoryMs < 0 {
		return nil, fmt.Errorf("%w: firing rate and refractory period must be >= 0", ErrInvalidSorting)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	refractory := int64(math.Round(cfg.RefractoryMs * cfg.SamplingFrequency / 1000))

	ids := make([]string, cfg.NumUnits)
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}

	segments := make([]map[string]Train, len(cfg.Durations))
	for seg, dur := range cfg.Durations {
		if !(dur > 0) {
			return nil, fmt.Errorf("%w: segment %d duration must be > 0: %f", ErrInvalidSorting, seg, dur)
		}
		numSamples := int64(math.Round(dur * cfg.SamplingFrequency))
		units := make(map[string]Train, cfg.NumUnits)
		for _, id := range ids {
			n := int(math.Round(cfg.FiringRate * dur))
			units[id] = uniformTrain(rng, n, numSamples, refractory)
		}
		segments[seg] = units
	}

	return NewSorting(cfg.SamplingFrequency, ids, segments...)
}

func uniformTrain(rng *rand.Rand, n int, numSamples, refractory int64) Train {
	if n <= 0 || numSamples <= 0 {
		return Train{}
	}
	times := make(Train, n)
	for i := range times {
		times[i] = rng.Int63n(numSamples)
	}
	slices.Sort(times)

	out := times[:1]
	for _, t := range times[1:] {
		if t-out[len(out)-1] > refractory {
			out = append(out, t)
		}
	}
	return out
}
