// Command ccginfo computes spike-train correlograms and prints a summary of
// every unit pair.
//
// Usage:
//
//	ccginfo [flags]
//
// Without -input it generates a random sorting.
//
// Examples:
//
//	ccginfo
//	ccginfo -units 3 -durations 10.325,3.5 -window 43.57 -bin 1.6421
//	ccginfo -input spikes.txt -fs 20000 -method compiled
//	ccginfo -spectrum -pairs all
//
// Flag defaults can be set through CCG_WINDOW_MS, CCG_BIN_MS, CCG_METHOD,
// CCG_FS, CCG_UNITS, CCG_DURATIONS, CCG_RATE, CCG_SEED and CCG_WORKERS,
// either in the environment or in a .env file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-spike/spike/correlogram"
	"github.com/cwbudde/algo-spike/spike/train"
	"github.com/dustin/go-humanize"
)

func main() {
	def, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	window := flag.Float64("window", def.WindowMs, "correlogram window in ms")
	bin := flag.Float64("bin", def.BinMs, "bin width in ms")
	method := flag.String("method", def.Method, "auto, vectorized (numpy) or compiled (numba)")
	fs := flag.Float64("fs", def.FS, "sampling frequency in Hz")
	input := flag.String("input", "", `read "unit segment sample" records from this file ("-" for stdin)`)
	units := flag.Int("units", def.Units, "number of generated units")
	durations := flag.String("durations", formatDurations(def.Durations), "comma-separated generated segment durations in seconds")
	rate := flag.Float64("rate", def.Rate, "generated firing rate in Hz")
	seed := flag.Int64("seed", def.Seed, "generator seed")
	workers := flag.Int("workers", def.Workers, "worker goroutines (0 = one per CPU)")
	pairs := flag.String("pairs", "upper", "pairs to print: upper, auto or all")
	spectrum := flag.Bool("spectrum", false, "also print the dominant frequency of each correlogram")
	refractory := flag.Float64("refractory", 1.5, "refractory period in ms for the unit table")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ccginfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Computes spike-train correlograms and prints a per-pair summary.\n")
		fmt.Fprintf(os.Stderr, "Without -input a random sorting is generated.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ccginfo -units 3 -durations 10.325,3.5\n")
		fmt.Fprintf(os.Stderr, "  ccginfo -input spikes.txt -fs 20000 -method compiled\n")
		fmt.Fprintf(os.Stderr, "  ccginfo -spectrum -pairs all\n")
	}
	flag.Parse()

	m, err := correlogram.ParseMethod(*method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	sorting, err := loadSorting(*input, *fs, *units, *durations, *rate, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	opts := []correlogram.Option{correlogram.WithLogger(logger)}
	if *workers > 0 {
		opts = append(opts, correlogram.WithWorkers(*workers))
	}

	counts, edges, err := correlogram.Compute(sorting, *window, *bin, m, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := printReport(os.Stdout, sorting, counts, newLayout(sorting.SamplingFrequency(), edges), *pairs, *spectrum, *refractory); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func loadSorting(input string, fs float64, units int, durations string, rate float64, seed int64) (train.Sorting, error) {
	if input != "" {
		var r io.Reader = os.Stdin
		if input != "-" {
			f, err := os.Open(input)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		return train.ReadText(r, fs)
	}

	d, err := parseDurations(durations)
	if err != nil {
		return nil, fmt.Errorf("invalid -durations: %w", err)
	}
	cfg := train.DefaultGenerateConfig()
	cfg.NumUnits = units
	cfg.SamplingFrequency = fs
	cfg.Durations = d
	cfg.FiringRate = rate
	cfg.Seed = seed
	return train.Generate(cfg)
}

// layout describes the bins behind the edges returned by Compute.
type layout struct {
	fs      float64
	edges   []float64 // ms
	centers []float64 // ms
}

func newLayout(fs float64, edges []float64) layout {
	l := layout{fs: fs, edges: edges}
	if len(edges) > 1 {
		l.centers = make([]float64, len(edges)-1)
		for k := range l.centers {
			l.centers[k] = (edges[k] + edges[k+1]) / 2
		}
	}
	return l
}

func (l layout) numBins() int { return len(l.centers) }

func (l layout) binSeconds() float64 {
	if len(l.edges) < 2 {
		return 0
	}
	return (l.edges[1] - l.edges[0]) / 1000
}

func (l layout) binSamples() int64 {
	return int64(math.Round(l.binSeconds() * l.fs))
}

// pairRow summarizes one ordered pair.
type pairRow struct {
	ref, target string
	total       int64
	peakLagMs   float64
	peakCount   int64
	peakHz      float64
}

func selectPairs(n int, mode string) ([][2]int, error) {
	var out [][2]int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch mode {
			case "upper":
				if j < i {
					continue
				}
			case "auto":
				if j != i {
					continue
				}
			case "all":
			default:
				return nil, fmt.Errorf("unknown -pairs mode %q", mode)
			}
			out = append(out, [2]int{i, j})
		}
	}
	return out, nil
}

func summarize(counts correlogram.Tensor, l layout, pairs [][2]int, spectrum bool) ([]pairRow, error) {
	rows := make([]pairRow, 0, len(pairs))
	for _, p := range pairs {
		c := counts.Pair(p[0], p[1])
		row := pairRow{ref: counts.UnitIDs[p[0]], target: counts.UnitIDs[p[1]]}

		peak := 0
		for k, v := range c {
			row.total += v
			if v > c[peak] {
				peak = k
			}
		}
		row.peakCount = c[peak]
		row.peakLagMs = l.centers[peak]

		if spectrum && row.total > 0 {
			freqs, power, err := correlogram.PowerSpectrum(c, l.binSeconds())
			if err != nil {
				return nil, err
			}
			best := 1
			for k := 2; k < len(power); k++ {
				if power[k] > power[best] {
					best = k
				}
			}
			if best < len(freqs) {
				row.peakHz = freqs[best]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func printUnits(w io.Writer, s train.Sorting, refractoryMs float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "Unit\tSpikes\tMean ISI [ms]\tCV\tMin ISI [ms]\tViolations"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "----\t------\t-------------\t--\t------------\t----------"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	for _, id := range s.UnitIDs() {
		st := train.UnitISI(s, id, refractoryMs)
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\t%.3f\t%s\n",
			id, humanize.Comma(int64(st.Spikes)), st.MeanMs, st.CV, st.MinMs, humanize.Comma(int64(st.Violations))); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func printReport(w io.Writer, s train.Sorting, counts correlogram.Tensor, l layout, mode string, spectrum bool, refractoryMs float64) error {
	pairs, err := selectPairs(counts.NumUnits(), mode)
	if err != nil {
		return err
	}
	rows, err := summarize(counts, l, pairs, spectrum)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Units: %d  Segments: %d  Fs: %g Hz\n", counts.NumUnits(), s.NumSegments(), l.fs); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Bins: %d x %d samples  Window: %.4f to %.4f ms\n",
		l.numBins(), l.binSamples(), l.edges[0], l.edges[len(l.edges)-1]); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if _, err := fmt.Fprintf(w, "Total pairs counted: %s\n\n", humanize.Comma(counts.Total())); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if err := printUnits(w, s, refractoryMs); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Ref\tTarget\tCount\tPeak Lag [ms]\tPeak Count"
	rule := "---\t------\t-----\t-------------\t----------"
	if spectrum {
		header += "\tPeak Freq [Hz]"
		rule += "\t--------------"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, rule); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}

	for _, r := range rows {
		line := fmt.Sprintf("%s\t%s\t%s\t%.4f\t%s",
			r.ref, r.target, humanize.Comma(r.total), r.peakLagMs, humanize.Comma(r.peakCount))
		if spectrum {
			line += fmt.Sprintf("\t%.2f", r.peakHz)
		}
		if _, err := fmt.Fprintln(tw, line); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
