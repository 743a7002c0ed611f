package kinematics

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEmptySeries   = errors.New("series has no samples")
	ErrInvalidField  = errors.New("unknown projection field")
	ErrInvalidSeries = errors.New("invalid series")
)

// Sample is one kinematic measurement: seconds, meters, meters/second.
type Sample struct {
	Time     float64 `json:"time"`
	Position float64 `json:"position"`
	Velocity float64 `json:"velocity"`
}

// Series is the ordered samples of one analysis run. Timestamps must be
// strictly increasing; callers own the slice and the aggregation functions
// never mutate it.
type Series []Sample

// Validate checks the series invariants required by ComputeMetrics and
// Project: at least one sample, non-negative time and position, strictly
// increasing timestamps.
func (s Series) Validate() error {
	if len(s) == 0 {
		return ErrEmptySeries
	}
	for i, sample := range s {
		// strconv.ParseFloat accepts NaN/Inf tokens, and NaN slips
		// through ordering comparisons, so finiteness is checked first.
		if !isFinite(sample.Time) || !isFinite(sample.Position) || !isFinite(sample.Velocity) {
			return fmt.Errorf("%w: sample values must be finite", ErrInvalidSeries)
		}
		if sample.Time < 0 {
			return fmt.Errorf("%w: sample time must be non-negative", ErrInvalidSeries)
		}
		if sample.Position < 0 {
			return fmt.Errorf("%w: sample position must be non-negative", ErrInvalidSeries)
		}
		if i > 0 && sample.Time <= s[i-1].Time {
			return fmt.Errorf("%w: sample times must be strictly increasing", ErrInvalidSeries)
		}
	}
	return nil
}

// ParseSeries reads the whitespace-delimited upload format: a header line
// followed by rows of `mass A`, `t`, `x`, `v` columns. The mass column is
// ignored; rows that are short or unparsable are skipped, matching the
// permissive behavior of the original capture tooling.
func ParseSeries(r io.Reader) (Series, error) {
	scanner := bufio.NewScanner(r)
	var series Series
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			continue
		}
		t, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			continue
		}
		x, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			continue
		}
		if !isFinite(t) || !isFinite(x) || !isFinite(v) {
			continue
		}
		series = append(series, Sample{Time: t, Position: x, Velocity: v})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return series, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
