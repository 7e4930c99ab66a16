package correlogram

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spike/internal/testutil"
)

func TestPlanBinsCountLaw(t *testing.T) {
	rates := []float64{1000, 10000, 20000, 30000, 44100}
	windows := []float64{0.5, 1, 10, 43.57, 50, 60, 100.3}
	widths := []float64{0.05, 0.1, 0.25, 1, 1.6421, 2, 7.3}

	for _, fs := range rates {
		for _, w := range windows {
			for _, b := range widths {
				if b > w {
					continue
				}
				g, err := PlanBins(fs, w, b)
				if err != nil {
					t.Fatalf("PlanBins(%v, %v, %v): %v", fs, w, b, err)
				}

				want := int(math.Floor(w/b)) + 1
				if g.NumBins != want || len(g.Edges)-1 != want {
					t.Fatalf("fs=%v w=%v b=%v: %d bins / %d edges, want %d bins", fs, w, b, g.NumBins, len(g.Edges), want)
				}
				if g.BinSize < 1 {
					t.Fatalf("bin size %d < 1", g.BinSize)
				}
				for k := range g.Edges {
					if g.Edges[k] != -g.Edges[g.NumBins-k] {
						t.Fatalf("edges not symmetric at %d: %v vs %v", k, g.Edges[k], g.Edges[g.NumBins-k])
					}
					if k > 0 && g.Edges[k] <= g.Edges[k-1] {
						t.Fatalf("edges not increasing at %d", k)
					}
				}
			}
		}
	}
}

func TestPlanBinsConcreteScenario(t *testing.T) {
	g, err := PlanBins(30000, 43.57, 1.6421)
	if err != nil {
		t.Fatalf("PlanBins: %v", err)
	}

	if len(g.Edges) != 28 {
		t.Fatalf("len(edges) = %d, want 28", len(g.Edges))
	}
	if g.NumBins != 27 || g.BinSize != 49 || g.WindowSize != 661 {
		t.Fatalf("geometry = %+v", g)
	}

	// 27 bins of 49 samples span 1323 samples = 44.1 ms.
	if math.Abs(g.Edges[0]+22.05) > 1e-10 || math.Abs(g.Edges[27]-22.05) > 1e-10 {
		t.Fatalf("outer edges = %v, %v, want -/+22.05", g.Edges[0], g.Edges[27])
	}
	if g.CenterBin() != 13 {
		t.Fatalf("CenterBin = %d, want 13", g.CenterBin())
	}
}

func TestPlanBinsErrors(t *testing.T) {
	tests := []struct {
		name      string
		fs, w, b  float64
		wantParam string
	}{
		{"zero window", 30000, 0, 1, "window_ms"},
		{"negative window", 30000, -5, 1, "window_ms"},
		{"nan window", 30000, math.NaN(), 1, "window_ms"},
		{"infinite window", 30000, math.Inf(1), 1, "window_ms"},
		{"zero bin", 30000, 10, 0, "bin_ms"},
		{"negative bin", 30000, 10, -1, "bin_ms"},
		{"bin wider than window", 30000, 10, 11, "bin_ms"},
		{"zero sampling frequency", 0, 10, 1, "sampling_frequency"},
		{"too many bins", 30000, 1e9, 1e-3, "window_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlanBins(tt.fs, tt.w, tt.b)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			var pe *ParamError
			if !errors.As(err, &pe) || pe.Param != tt.wantParam {
				t.Fatalf("expected ParamError for %s, got %v", tt.wantParam, err)
			}
		})
	}
}

func TestPlanBinsEqualWindowAndBin(t *testing.T) {
	g, err := PlanBins(10000, 2, 2)
	if err != nil {
		t.Fatalf("PlanBins: %v", err)
	}
	if g.NumBins != 2 || g.BinSize != 20 {
		t.Fatalf("geometry = %+v", g)
	}
	testutil.RequireSliceNearlyEqual(t, g.Edges, []float64{-2, 0, 2}, 1e-12)
}

func TestGeometryLagBin(t *testing.T) {
	g, err := PlanBins(10000, 10, 0.1)
	if err != nil {
		t.Fatalf("PlanBins: %v", err)
	}
	if g.NumBins != 101 || g.BinSize != 1 {
		t.Fatalf("geometry = %+v", g)
	}

	tests := []struct {
		lag  int64
		bin  int
		inOK bool
	}{
		{0, 50, true},
		{14, 64, true},
		{50, 100, true},
		{-50, 0, true},
		{51, 0, false},
		{-51, 0, false},
	}
	for _, tt := range tests {
		bin, ok := g.LagBin(tt.lag)
		if ok != tt.inOK || (ok && bin != tt.bin) {
			t.Errorf("LagBin(%d) = %d, %v, want %d, %v", tt.lag, bin, ok, tt.bin, tt.inOK)
		}
	}
}

func TestGeometryEvenLagBin(t *testing.T) {
	g, err := PlanBins(1000, 3, 1)
	if err != nil {
		t.Fatalf("PlanBins: %v", err)
	}
	// Four bins of one sample with edges at -2, -1, 0, 1, 2. Lag 0 takes
	// [0,1); its mirror bin only receives lag 0 seen from the other side.
	if g.NumBins != 4 || g.CenterBin() != 2 {
		t.Fatalf("geometry = %+v", g)
	}

	tests := []struct {
		lag  int64
		bin  int
		inOK bool
	}{
		{0, 2, true},
		{1, 3, true},
		{-1, 0, true},
		{2, 0, false},
		{-2, 0, false},
	}
	for _, tt := range tests {
		bin, ok := g.LagBin(tt.lag)
		if ok != tt.inOK || (ok && bin != tt.bin) {
			t.Errorf("LagBin(%d) = %d, %v, want %d, %v", tt.lag, bin, ok, tt.bin, tt.inOK)
		}
	}
}

func TestGeometryLagBinMirrorsOnIntegerEdges(t *testing.T) {
	// 2 ms at 30 kHz is 60 samples, so every edge is a whole sample.
	g, err := PlanBins(30000, 60, 2)
	if err != nil {
		t.Fatalf("PlanBins: %v", err)
	}
	if g.NumBins != 31 || g.BinSize != 60 {
		t.Fatalf("geometry = %+v", g)
	}

	for lag := int64(1); ; lag++ {
		pos, ok := g.LagBin(lag)
		neg, negOK := g.LagBin(-lag)
		if ok != negOK {
			t.Fatalf("lag %d: in window %v, lag %d: %v", lag, ok, -lag, negOK)
		}
		if !ok {
			if lag != g.Span()/2 {
				t.Fatalf("window ends at lag %d, want %d", lag, g.Span()/2)
			}
			break
		}
		if neg != g.NumBins-1-pos {
			t.Fatalf("LagBin(%d) = %d, LagBin(%d) = %d: not mirrored", lag, pos, -lag, neg)
		}
	}

	for _, tt := range []struct {
		lag int64
		bin int
	}{{29, 15}, {-29, 15}, {30, 16}, {-30, 14}} {
		if bin, _ := g.LagBin(tt.lag); bin != tt.bin {
			t.Errorf("LagBin(%d) = %d, want %d", tt.lag, bin, tt.bin)
		}
	}
}

func TestGeometryCenters(t *testing.T) {
	g, err := PlanBins(1000, 4, 1)
	if err != nil {
		t.Fatalf("PlanBins: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, g.Centers(), []float64{-2, -1, 0, 1, 2}, 1e-12)
}

func TestGeometryRates(t *testing.T) {
	g, err := PlanBins(10000, 10, 0.1)
	if err != nil {
		t.Fatalf("PlanBins: %v", err)
	}

	counts := make([]int64, g.NumBins)
	for i := range counts {
		counts[i] = 10
	}
	rates, err := g.Rates(counts, 100)
	if err != nil {
		t.Fatalf("Rates: %v", err)
	}
	for i, r := range rates {
		if math.Abs(r-1000) > 1e-9 {
			t.Fatalf("rates[%d] = %v, want 1000", i, r)
		}
	}

	if _, err := g.Rates(counts[:3], 100); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for short counts, got %v", err)
	}
	if _, err := g.Rates(counts, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for zero spikes, got %v", err)
	}
}
