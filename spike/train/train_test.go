package train

import (
	"errors"
	"strings"
	"testing"
)

func TestTrainValidate(t *testing.T) {
	tests := []struct {
		name    string
		train   Train
		wantErr bool
	}{
		{"empty", Train{}, false},
		{"sorted", Train{1, 5, 9}, false},
		{"ties", Train{3, 3, 4}, false},
		{"unsorted", Train{4, 2}, true},
		{"negative", Train{-1, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.train.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrUnsortedTrain) {
					t.Fatalf("expected ErrUnsortedTrain, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewSorting(t *testing.T) {
	src := Train{10, 20, 30}
	s, err := NewSorting(1000, []string{"a", "b"},
		map[string]Train{"a": src},
		map[string]Train{"a": {5}, "b": {1, 2}},
	)
	if err != nil {
		t.Fatalf("NewSorting: %v", err)
	}

	if s.NumSegments() != 2 {
		t.Fatalf("segments = %d, want 2", s.NumSegments())
	}
	if got := s.SpikeTrain("b", 0); len(got) != 0 {
		t.Fatalf("missing unit should be empty, got %v", got)
	}
	if got := s.NumSpikes("a"); got != 4 {
		t.Fatalf("NumSpikes(a) = %d, want 4", got)
	}

	src[0] = 99
	if s.SpikeTrain("a", 0)[0] != 10 {
		t.Fatal("sorting shares memory with caller train")
	}

	ids := s.UnitIDs()
	ids[0] = "z"
	if s.UnitIDs()[0] != "a" {
		t.Fatal("UnitIDs exposes internal slice")
	}

	if got := s.SpikeTrain("a", 7); got != nil {
		t.Fatalf("out of range segment = %v, want nil", got)
	}
}

func TestNewSortingErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
		want error
	}{
		{"zero fs", func() error {
			_, err := NewSorting(0, nil, map[string]Train{})
			return err
		}, ErrInvalidSorting},
		{"no segments", func() error {
			_, err := NewSorting(1000, []string{"a"})
			return err
		}, ErrInvalidSorting},
		{"duplicate id", func() error {
			_, err := NewSorting(1000, []string{"a", "a"}, map[string]Train{})
			return err
		}, ErrInvalidSorting},
		{"unknown unit", func() error {
			_, err := NewSorting(1000, []string{"a"}, map[string]Train{"b": {1}})
			return err
		}, ErrInvalidSorting},
		{"unsorted train", func() error {
			_, err := NewSorting(1000, []string{"a"}, map[string]Train{"a": {3, 1}})
			return err
		}, ErrUnsortedTrain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromUnitsOrdersIDs(t *testing.T) {
	s, err := FromUnits(10000, map[string]Train{"2": {1}, "1": {2}, "10": {3}})
	if err != nil {
		t.Fatalf("FromUnits: %v", err)
	}
	got := strings.Join(s.UnitIDs(), ",")
	if got != "1,10,2" {
		t.Fatalf("UnitIDs = %s, want 1,10,2", got)
	}
	if s.NumSegments() != 1 {
		t.Fatalf("segments = %d, want 1", s.NumSegments())
	}
}

func TestGenerate(t *testing.T) {
	cfg := GenerateConfig{
		NumUnits:          5,
		SamplingFrequency: 30000,
		Durations:         []float64{10.325, 3.5},
		FiringRate:        20,
		RefractoryMs:      2,
		Seed:              7,
	}

	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(a.UnitIDs()) != 5 || a.NumSegments() != 2 {
		t.Fatalf("shape = %d units, %d segments", len(a.UnitIDs()), a.NumSegments())
	}

	for seg, dur := range cfg.Durations {
		limit := int64(dur * cfg.SamplingFrequency)
		for _, id := range a.UnitIDs() {
			ta, tb := a.SpikeTrain(id, seg), b.SpikeTrain(id, seg)
			if len(ta) == 0 {
				t.Fatalf("unit %s segment %d has no spikes", id, seg)
			}
			if len(ta) != len(tb) {
				t.Fatalf("non-deterministic spike count for unit %s", id)
			}
			for i := range ta {
				if ta[i] != tb[i] {
					t.Fatalf("non-deterministic spike at unit %s index %d", id, i)
				}
				if ta[i] < 0 || ta[i] > limit {
					t.Fatalf("spike %d outside segment of %d samples", ta[i], limit)
				}
				if i > 0 && ta[i]-ta[i-1] <= 60 {
					t.Fatalf("refractory violation: %d after %d", ta[i], ta[i-1])
				}
			}
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	cfg := DefaultGenerateConfig()
	cfg.Durations = nil
	if _, err := Generate(cfg); !errors.Is(err, ErrInvalidSorting) {
		t.Fatalf("expected ErrInvalidSorting, got %v", err)
	}

	cfg = DefaultGenerateConfig()
	cfg.Durations = []float64{-1}
	if _, err := Generate(cfg); !errors.Is(err, ErrInvalidSorting) {
		t.Fatalf("expected ErrInvalidSorting for negative duration, got %v", err)
	}
}

func TestReadText(t *testing.T) {
	input := `# unit segment sample
u1 0 30
u1 0 10
u2 0 15

u2 1 7
u1 1 3
`
	s, err := ReadText(strings.NewReader(input), 20000)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}

	if got := strings.Join(s.UnitIDs(), ","); got != "u1,u2" {
		t.Fatalf("UnitIDs = %s", got)
	}
	if s.NumSegments() != 2 {
		t.Fatalf("segments = %d, want 2", s.NumSegments())
	}
	got := s.SpikeTrain("u1", 0)
	if len(got) != 2 || got[0] != 10 || got[1] != 30 {
		t.Fatalf("u1 segment 0 = %v, want [10 30]", got)
	}
	if s.SamplingFrequency() != 20000 {
		t.Fatalf("fs = %v", s.SamplingFrequency())
	}
}

func TestReadTextErrors(t *testing.T) {
	for _, input := range []string{"u1 0", "u1 x 10", "u1 0 ten", "u1 -1 10"} {
		if _, err := ReadText(strings.NewReader(input), 1000); !errors.Is(err, ErrInvalidSorting) {
			t.Errorf("%q: expected ErrInvalidSorting, got %v", input, err)
		}
	}
}
