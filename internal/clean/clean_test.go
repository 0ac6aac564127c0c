package clean

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMatchup(t *testing.T) {
	venue, opp := ParseMatchup("BKN vs. PHI")
	assert.Equal(t, VenueHome, venue)
	assert.Equal(t, "PHI", opp)

	venue, opp = ParseMatchup("BKN @ BOS")
	assert.Equal(t, VenueAway, venue)
	assert.Equal(t, "BOS", opp)

	venue, opp = ParseMatchup("")
	assert.Equal(t, VenueUnknown, venue)
	assert.Equal(t, "", opp)
}

func TestParseWinLoss(t *testing.T) {
	win, ok := ParseWinLoss("W")
	assert.True(t, win)
	assert.True(t, ok)

	win, ok = ParseWinLoss(" L ")
	assert.False(t, win)
	assert.True(t, ok)

	_, ok = ParseWinLoss("")
	assert.False(t, ok)
	_, ok = ParseWinLoss("null")
	assert.False(t, ok)
}

func TestFillNumeric(t *testing.T) {
	nan := math.NaN()
	out := FillNumeric([]float64{1, nan, 3})
	assert.Equal(t, []float64{1, 0, 3}, out)

	// Input stays untouched.
	in := []float64{nan}
	_ = FillNumeric(in)
	assert.True(t, math.IsNaN(in[0]))
}

func TestForwardFill(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, []float64{1, 1, 3, 3}, ForwardFill([]float64{1, nan, 3, nan}))

	// Leading gap backfills from the first observed value.
	assert.Equal(t, []float64{5, 5, 7}, ForwardFill([]float64{nan, 5, 7}))
}

func TestMissingColumnError(t *testing.T) {
	err := &MissingColumnError{Column: "PTS", Table: "TeamGameLog"}
	assert.Contains(t, err.Error(), "PTS")
	assert.Contains(t, err.Error(), "TeamGameLog")

	err = &MissingColumnError{Column: "PTS"}
	assert.Contains(t, err.Error(), "PTS")
}
