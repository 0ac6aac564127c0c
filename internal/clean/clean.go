// Package clean validates raw provider tables and derives the flags the
// downstream reports rely on. Validation happens at the acquisition
// boundary: a schema change in the provider response surfaces here as a
// MissingColumnError rather than a panic inside a model fit.
package clean

import (
	"fmt"
	"strings"
)

// MissingColumnError reports a required column absent from a provider table.
type MissingColumnError struct {
	Column string
	Table  string
}

func (e *MissingColumnError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("required column %q is missing", e.Column)
	}
	return fmt.Sprintf("required column %q is missing from %s", e.Column, e.Table)
}

// Venue of a game derived from the matchup text.
type Venue int

const (
	VenueUnknown Venue = iota
	VenueHome
	VenueAway
)

// ParseMatchup derives venue and opponent abbreviation from the provider's
// matchup text. "BKN vs. PHI" is a home game, "BKN @ PHI" an away game.
func ParseMatchup(matchup string) (Venue, string) {
	fields := strings.Fields(matchup)
	opponent := ""
	if len(fields) > 0 {
		opponent = fields[len(fields)-1]
	}
	switch {
	case strings.Contains(matchup, "vs."):
		return VenueHome, opponent
	case strings.Contains(matchup, "@"):
		return VenueAway, opponent
	default:
		return VenueUnknown, opponent
	}
}

// ParseWinLoss maps the provider's "W"/"L" flag to a boolean. Anything
// else (an unplayed game, a null) reports ok=false.
func ParseWinLoss(wl string) (win, ok bool) {
	switch strings.TrimSpace(wl) {
	case "W":
		return true, true
	case "L":
		return false, true
	default:
		return false, false
	}
}

// FillNumeric replaces NaN-like gaps (negative sentinel or unparsed zero
// slots are already zero after decoding) and is kept as an explicit stage
// so the policy has one home: numeric gaps become 0.
func FillNumeric(series []float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		if v != v { // NaN
			out[i] = 0
			continue
		}
		out[i] = v
	}
	return out
}

// ForwardFill fills gaps (NaN) with the previous observed value, then
// back-fills any leading gap with the first observed value.
func ForwardFill(series []float64) []float64 {
	out := make([]float64, len(series))
	copy(out, series)

	last := 0.0
	seen := false
	for i, v := range out {
		if v == v {
			last, seen = v, true
			continue
		}
		if seen {
			out[i] = last
		}
	}
	// Leading gap: backfill from the first real value.
	first := 0.0
	for _, v := range out {
		if v == v {
			first = v
			break
		}
	}
	for i, v := range out {
		if v != v {
			out[i] = first
		}
	}
	return out
}
