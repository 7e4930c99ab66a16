package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// settings are the flag defaults. Each can be overridden by a CCG_*
// environment variable, optionally read from a .env file.
type settings struct {
	WindowMs  float64
	BinMs     float64
	Method    string
	FS        float64
	Units     int
	Durations []float64
	Rate      float64
	Seed      int64
	Workers   int
}

func defaultSettings() settings {
	return settings{
		WindowMs:  50,
		BinMs:     1,
		Method:    "auto",
		FS:        30000,
		Units:     5,
		Durations: []float64{10},
		Rate:      10,
		Seed:      1,
	}
}

// loadSettings applies the environment on top of the defaults.
func loadSettings() (settings, error) {
	_ = godotenv.Load() // optional
	return settingsFromEnv(os.Getenv)
}

func settingsFromEnv(getenv func(string) string) (settings, error) {
	s := defaultSettings()
	var err error

	if v := getenv("CCG_WINDOW_MS"); v != "" {
		if s.WindowMs, err = strconv.ParseFloat(v, 64); err != nil {
			return s, fmt.Errorf("CCG_WINDOW_MS: %w", err)
		}
	}
	if v := getenv("CCG_BIN_MS"); v != "" {
		if s.BinMs, err = strconv.ParseFloat(v, 64); err != nil {
			return s, fmt.Errorf("CCG_BIN_MS: %w", err)
		}
	}
	if v := getenv("CCG_METHOD"); v != "" {
		s.Method = v
	}
	if v := getenv("CCG_FS"); v != "" {
		if s.FS, err = strconv.ParseFloat(v, 64); err != nil {
			return s, fmt.Errorf("CCG_FS: %w", err)
		}
	}
	if v := getenv("CCG_UNITS"); v != "" {
		if s.Units, err = strconv.Atoi(v); err != nil {
			return s, fmt.Errorf("CCG_UNITS: %w", err)
		}
	}
	if v := getenv("CCG_DURATIONS"); v != "" {
		if s.Durations, err = parseDurations(v); err != nil {
			return s, fmt.Errorf("CCG_DURATIONS: %w", err)
		}
	}
	if v := getenv("CCG_RATE"); v != "" {
		if s.Rate, err = strconv.ParseFloat(v, 64); err != nil {
			return s, fmt.Errorf("CCG_RATE: %w", err)
		}
	}
	if v := getenv("CCG_SEED"); v != "" {
		if s.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return s, fmt.Errorf("CCG_SEED: %w", err)
		}
	}
	if v := getenv("CCG_WORKERS"); v != "" {
		if s.Workers, err = strconv.Atoi(v); err != nil {
			return s, fmt.Errorf("CCG_WORKERS: %w", err)
		}
	}
	return s, nil
}

// parseDurations parses a comma-separated list of segment durations in
// seconds.
func parseDurations(v string) ([]float64, error) {
	parts := strings.Split(v, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no durations in %q", v)
	}
	return out, nil
}

func formatDurations(d []float64) string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
