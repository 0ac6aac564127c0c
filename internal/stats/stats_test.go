package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/courtside/internal/clean"
	"github.com/fortuna/courtside/internal/nba"
)

func TestModeSingle(t *testing.T) {
	m := Mode([]float64{1, 1, 1, 2, 2, 3})
	require.True(t, m.HasMode())
	assert.Equal(t, []float64{1}, m.Values)
	assert.Equal(t, 3, m.Count)
	assert.Equal(t, "1", m.String())
	assert.Equal(t, "3", m.CountString())
}

func TestModeNone(t *testing.T) {
	m := Mode([]float64{1, 2, 3, 4})
	assert.False(t, m.HasMode())
	assert.Equal(t, "no mode", m.String())
	assert.Equal(t, "0", m.CountString())

	// Equal frequencies above one are still uniform.
	m = Mode([]float64{1, 1, 2, 2})
	assert.False(t, m.HasMode())
}

func TestModeTie(t *testing.T) {
	m := Mode([]float64{5, 5, 7, 7, 9})
	require.True(t, m.HasMode())
	assert.Equal(t, []float64{5, 7}, m.Values)
	assert.Equal(t, "5, 7", m.String())
	assert.Equal(t, "2, 2", m.CountString())
}

func TestModeEmptyAndConstant(t *testing.T) {
	assert.False(t, Mode(nil).HasMode())

	m := Mode([]float64{4, 4, 4})
	require.True(t, m.HasMode())
	assert.Equal(t, []float64{4}, m.Values)
	assert.Equal(t, 3, m.Count)
}

func TestPctBelow(t *testing.T) {
	series := []float64{10, 20, 20, 30}
	assert.InDelta(t, 25.0, PctBelow(series, 20), 1e-9)
	assert.InDelta(t, 75.0, PctAtOrBelow(series, 20), 1e-9)
	assert.Equal(t, []float64{10}, Below(series, 20))
	assert.InDelta(t, 0.0, PctBelow(nil, 20), 1e-9)
}

func TestDescriptiveBasics(t *testing.T) {
	series := []float64{2, 4, 6, 8}
	assert.InDelta(t, 5.0, Mean(series), 1e-9)
	assert.InDelta(t, 5.0, Median(series), 1e-9)
	assert.InDelta(t, 20.0, Sum(series), 1e-9)
	assert.InDelta(t, 2.0, Min(series), 1e-9)
	assert.InDelta(t, 8.0, Max(series), 1e-9)
	// Sample standard deviation of 2,4,6,8.
	assert.InDelta(t, 2.5819888974716116, StdDev(series), 1e-9)
}

func TestGumbelConstantSeries(t *testing.T) {
	series := []float64{5, 5, 5, 5}
	assert.InDelta(t, 0.0, StdDev(series), 1e-12)

	g, err := FitGumbel(series)
	require.NoError(t, err)

	tail := g.Tail(series, 5)
	assert.InDelta(t, 0.0, tail.ProbAbove, 1e-9)
	assert.InDelta(t, 100.0, tail.ProbAtOrBelow, 1e-9)
	assert.InDelta(t, 100.0, tail.PropAtOrBelow, 1e-9)
	assert.InDelta(t, 0.0, tail.PropBelow, 1e-9)
	assert.Empty(t, tail.ValuesBelow)

	assert.InDelta(t, 0.0, g.CDF(4.9), 1e-9)
	assert.InDelta(t, 1.0, g.CDF(5.1), 1e-9)
}

func TestGumbelFitRecovers(t *testing.T) {
	series := []float64{12, 18, 25, 31, 22, 15, 28, 19, 24, 27, 14, 21, 26, 33, 17}

	g, err := FitGumbel(series)
	require.NoError(t, err)
	require.Greater(t, g.Beta, 0.0)

	// CDF must be monotone and bracket the sample.
	assert.Less(t, g.CDF(10), g.CDF(20))
	assert.Less(t, g.CDF(20), g.CDF(35))

	tail := g.TailAtMedian(series)
	assert.Equal(t, Median(series), tail.Threshold)
	assert.InDelta(t, 100.0, tail.ProbAbove+tail.ProbAtOrBelow, 0.02)
	assert.Greater(t, tail.ProbAbove, 0.0)
}

func TestFitGumbelEmpty(t *testing.T) {
	_, err := FitGumbel(nil)
	assert.Error(t, err)
}

func TestGumbelCDFClosedForm(t *testing.T) {
	g := &Gumbel{Mu: 20, Beta: 4}
	for _, x := range []float64{10, 18, 20, 24, 35} {
		want := math.Exp(-math.Exp(-(x - g.Mu) / g.Beta))
		assert.InDelta(t, want, g.CDF(x), 1e-12)
		assert.InDelta(t, 1-want, g.Survival(x), 1e-12)
	}
}

func TestAggregate(t *testing.T) {
	games := []nba.GameRecord{
		{Venue: clean.VenueHome, Win: true, Played: true, Points: 110, Rebounds: 44, Assists: 25},
		{Venue: clean.VenueAway, Win: false, Played: true, Points: 98, Rebounds: 40, Assists: 20},
		{Venue: clean.VenueHome, Win: false, Played: true, Points: 101, Rebounds: 38, Assists: 22},
		{Venue: clean.VenueAway, Played: false, Points: 0},
	}
	a := Aggregate(games)
	assert.Equal(t, 4, a.Games)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 2, a.Losses)
	assert.Equal(t, 1, a.HomeWins)
	assert.Equal(t, 1, a.HomeLosses)
	assert.Equal(t, 0, a.AwayWins)
	assert.Equal(t, 1, a.AwayLosses)
	assert.Equal(t, 309, a.Points)

	home, away := SplitHomeAway(games)
	assert.Len(t, home, 2)
	assert.Len(t, away, 2)

	pts := Column(games[:3], Points)
	assert.Equal(t, []float64{110, 98, 101}, pts)
}
