package train

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// ReadText parses a sorting from whitespace-separated "unit segment sample"
// records, one per line. Blank lines and lines starting with '#' are
// ignored. Units are ordered by first appearance; samples need not be
// sorted. Segments are numbered from zero and the segment count is one more
// than the largest index seen.
func ReadText(r io.Reader, fs float64) (*MemorySorting, error) {
	var (
		ids      []string
		segments []map[string]Train
		seen     = map[string]struct{}{}
	)

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: want 3 fields, got %d", ErrInvalidSorting, line, len(fields))
		}
		seg, err := strconv.Atoi(fields[1])
		if err != nil || seg < 0 {
			return nil, fmt.Errorf("%w: line %d: bad segment %q", ErrInvalidSorting, line, fields[1])
		}
		sample, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad sample %q", ErrInvalidSorting, line, fields[2])
		}

		id := fields[0]
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
		for len(segments) <= seg {
			segments = append(segments, map[string]Train{})
		}
		segments[seg][id] = append(segments[seg][id], sample)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("train: read: %w", err)
	}
	if len(segments) == 0 {
		segments = append(segments, map[string]Train{})
	}

	for _, units := range segments {
		for _, tr := range units {
			slices.Sort(tr)
		}
	}

	return NewSorting(fs, ids, segments...)
}
