// Package stats implements the descriptive measures and the extreme-value
// model the reports are built on.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	mstats "github.com/montanaflynn/stats"
)

// Round2 rounds to two decimal places, the precision every report uses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	m, err := mstats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// Median returns the median, or 0 for an empty slice.
func Median(values []float64) float64 {
	m, err := mstats.Median(values)
	if err != nil {
		return 0
	}
	return m
}

// StdDev returns the sample standard deviation. A single observation has
// no spread, so it returns 0.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	s, err := mstats.StandardDeviationSample(values)
	if err != nil {
		return 0
	}
	return s
}

// Sum returns the total of values.
func Sum(values []float64) float64 {
	s, err := mstats.Sum(values)
	if err != nil {
		return 0
	}
	return s
}

// Min returns the smallest value, or 0 for an empty slice.
func Min(values []float64) float64 {
	m, err := mstats.Min(values)
	if err != nil {
		return 0
	}
	return m
}

// Max returns the largest value, or 0 for an empty slice.
func Max(values []float64) float64 {
	m, err := mstats.Max(values)
	if err != nil {
		return 0
	}
	return m
}

// ModeResult carries the most frequent values of a sample together with
// their occurrence counts. When every value occurs the same number of
// times the sample has no mode and Values is empty.
type ModeResult struct {
	Values []float64
	Count  int
}

// HasMode reports whether the sample has at least one mode.
func (m ModeResult) HasMode() bool { return len(m.Values) > 0 }

// String renders the modes for tabular output: a single value as-is,
// ties joined with commas, and "no mode" when frequencies are uniform.
func (m ModeResult) String() string {
	if !m.HasMode() {
		return "no mode"
	}
	parts := make([]string, len(m.Values))
	for i, v := range m.Values {
		parts[i] = trimFloat(v)
	}
	return strings.Join(parts, ", ")
}

// CountString renders the occurrence counts alongside String.
func (m ModeResult) CountString() string {
	if !m.HasMode() {
		return "0"
	}
	parts := make([]string, len(m.Values))
	for i := range m.Values {
		parts[i] = fmt.Sprintf("%d", m.Count)
	}
	return strings.Join(parts, ", ")
}

func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// Mode finds the most frequent values of a sample. Ties are all reported,
// sorted ascending. A sample where every value has the same frequency,
// including the all-distinct case, has no mode.
func Mode(values []float64) ModeResult {
	if len(values) == 0 {
		return ModeResult{}
	}
	freq := make(map[float64]int, len(values))
	for _, v := range values {
		freq[v]++
	}
	best := 0
	for _, n := range freq {
		if n > best {
			best = n
		}
	}
	uniform := true
	for _, n := range freq {
		if n != best {
			uniform = false
			break
		}
	}
	if uniform && len(freq) > 1 {
		return ModeResult{}
	}
	var modes []float64
	for v, n := range freq {
		if n == best {
			modes = append(modes, v)
		}
	}
	sort.Float64s(modes)
	return ModeResult{Values: modes, Count: best}
}

// PctBelow returns the percentage of values strictly below x, rounded to
// two decimals.
func PctBelow(values []float64, x float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := 0
	for _, v := range values {
		if v < x {
			n++
		}
	}
	return Round2(float64(n) / float64(len(values)) * 100)
}

// PctAtOrBelow returns the percentage of values at or below x, rounded to
// two decimals.
func PctAtOrBelow(values []float64, x float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := 0
	for _, v := range values {
		if v <= x {
			n++
		}
	}
	return Round2(float64(n) / float64(len(values)) * 100)
}

// Below returns the values strictly below x, in input order.
func Below(values []float64, x float64) []float64 {
	var out []float64
	for _, v := range values {
		if v < x {
			out = append(out, v)
		}
	}
	return out
}
