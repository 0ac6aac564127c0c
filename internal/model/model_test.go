package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obsFromXY(xs, ys []float64) []Observation {
	obs := make([]Observation, len(xs))
	for i := range xs {
		obs[i] = Observation{Features: []float64{xs[i]}, Actual: ys[i]}
	}
	return obs
}

func TestFitLinearExactLine(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 2 * x
	}

	result, err := FitLinear(obsFromXY(xs, ys))
	require.NoError(t, err)

	require.Len(t, result.Coefficients, 1)
	assert.InDelta(t, 2.0, result.Coefficients[0], 1e-9)
	assert.InDelta(t, 0.0, result.Intercept, 1e-9)
	assert.InDelta(t, 1.0, result.R2, 1e-9)
	assert.InDelta(t, 0.0, result.MSE, 1e-9)
	require.NotEmpty(t, result.Predictions)
	for _, p := range result.Predictions {
		assert.InDelta(t, p.Actual, p.Predicted, 1e-9)
		assert.True(t, p.AboveMin)
		assert.False(t, p.AboveMax)
	}
}

func TestFitLinearTinySampleUsesLeaveOneOut(t *testing.T) {
	xs := []float64{1, 2, 3}
	ys := []float64{3, 5, 7}

	result, err := FitLinear(obsFromXY(xs, ys))
	require.NoError(t, err)
	// Every sample gets a held-out prediction.
	assert.Len(t, result.Predictions, 3)
	assert.InDelta(t, 2.0, result.Coefficients[0], 1e-9)
}

func TestFitLinearThresholdsFromFullSample(t *testing.T) {
	// Leave-one-out territory: the reported thresholds must come from
	// the whole sample, not whichever fold ran last.
	obs := obsFromXY([]float64{1, 2, 3}, []float64{1, 2, 9})
	result, err := FitLinear(obs)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, result.Thresholds.Mean, 1e-9)
	assert.InDelta(t, 2.0, result.Thresholds.Median, 1e-9)
	assert.InDelta(t, 9.0, result.Thresholds.Max, 1e-9)
	assert.InDelta(t, 1.0, result.Thresholds.Min, 1e-9)
	assert.True(t, math.IsNaN(result.Thresholds.Mode))
}

func TestFitLinearRejectsSingleton(t *testing.T) {
	_, err := FitLinear(obsFromXY([]float64{1}, []float64{2}))
	assert.Error(t, err)
}

func TestThresholdFlagsWithoutMode(t *testing.T) {
	th := trainThresholds([]float64{1, 2, 3, 4})
	assert.True(t, math.IsNaN(th.Mode))
	// NaN comparisons are always false, matching the flag convention.
	assert.False(t, 10.0 > th.Mode)
}

func TestClassifyRegression(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = 3 * x
	}

	result, err := ClassifyRegression(obsFromXY(xs, ys))
	require.NoError(t, err)

	// A perfect regression classifies every held-out row correctly.
	assert.Zero(t, result.Confusion.FalsePositive)
	assert.Zero(t, result.Confusion.FalseNegative)
	assert.InDelta(t, 1.0, result.Confusion.Accuracy(), 1e-9)
	for _, row := range result.Rows {
		assert.Equal(t, row.ActualAbove, row.PredAbove)
		assert.GreaterOrEqual(t, row.Probability, 0.0)
		assert.LessOrEqual(t, row.Probability, 1.0)
	}
}

func TestFitLogisticSeparable(t *testing.T) {
	// Two well-separated clusters around the median boundary.
	var obs []Observation
	for i := 0; i < 10; i++ {
		obs = append(obs, Observation{Features: []float64{1 + float64(i)*0.1, 2}, Actual: 5})
		obs = append(obs, Observation{Features: []float64{9 + float64(i)*0.1, 8}, Actual: 25})
	}

	result, err := FitLogistic(obs)
	require.NoError(t, err)

	assert.Zero(t, result.Confusion.FalsePositive)
	assert.Zero(t, result.Confusion.FalseNegative)
	assert.InDelta(t, 1.0, result.Accuracy, 1e-9)
	assert.InDelta(t, 1.0, result.AUC, 1e-9)
}

func TestFitLogisticInsufficientClass(t *testing.T) {
	// Binarizing at the median leaves only one value above it.
	obs := obsFromXY([]float64{1, 2, 3, 4, 5}, []float64{3, 3, 3, 3, 9})
	_, err := FitLogistic(obs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientClasses)
}

func TestConfusionAndAccuracy(t *testing.T) {
	cm := Confusion(
		[]bool{true, true, false, false, true},
		[]bool{true, false, false, true, true},
	)
	assert.Equal(t, 2, cm.TruePositive)
	assert.Equal(t, 1, cm.FalseNegative)
	assert.Equal(t, 1, cm.FalsePositive)
	assert.Equal(t, 1, cm.TrueNegative)
	assert.InDelta(t, 0.6, cm.Accuracy(), 1e-9)
}

func TestROCPerfectScores(t *testing.T) {
	actual := []bool{true, true, false, false}
	scores := []float64{0.9, 0.8, 0.2, 0.1}
	curve := ROC(actual, scores)
	assert.InDelta(t, 1.0, AUC(curve), 1e-9)

	// Reversed scores give the worst possible ranking.
	bad := ROC(actual, []float64{0.1, 0.2, 0.8, 0.9})
	assert.InDelta(t, 0.0, AUC(bad), 1e-9)
}

func TestFoldsPolicy(t *testing.T) {
	loo := Folds(3)
	assert.Len(t, loo, 3)
	for _, f := range loo {
		assert.Len(t, f.Test, 1)
		assert.Len(t, f.Train, 2)
	}

	split := Folds(10)
	require.Len(t, split, 1)
	assert.Len(t, split[0].Test, 3)
	assert.Len(t, split[0].Train, 7)

	// Deterministic across calls.
	again := Folds(10)
	assert.Equal(t, split, again)
}

func TestGAMGaussianSmoothLine(t *testing.T) {
	n := 30
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(i + 1)
		ys[i] = 10 + 0.5*float64(i+1)
	}

	g, err := FitGAM(xs, ys, FamilyGaussian)
	require.NoError(t, err)

	// In-sample fit tracks the line and the next point extends it.
	assert.InDelta(t, 17.5, g.Predict(15), 0.5)
	next := g.Predict(float64(n + 1))
	assert.InDelta(t, 10+0.5*float64(n+1), next, 1.5)
	assert.Greater(t, g.Sigma, 0.0)
}

func TestGAMPoissonConstantRate(t *testing.T) {
	n := 25
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(i + 1)
		// Alternate around a rate of 20.
		ys[i] = 20 + float64(i%3) - 1
	}

	g, err := FitGAM(xs, ys, FamilyPoisson)
	require.NoError(t, err)
	pred := g.Predict(float64(n + 1))
	assert.InDelta(t, 20.0, pred, 2.5)
	assert.Greater(t, pred, 0.0)
}

func TestGAMPoissonRejectsNegative(t *testing.T) {
	_, err := FitGAM([]float64{1, 2}, []float64{3, -1}, FamilyPoisson)
	assert.Error(t, err)
}

func TestClassifyGAMTrend(t *testing.T) {
	n := 30
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = float64(i + 1)
		ys[i] = 5 + float64(i+1)
	}
	g, err := FitGAM(xs, ys, FamilyPoisson)
	require.NoError(t, err)

	cls, err := ClassifyGAM(g, xs, ys)
	require.NoError(t, err)

	// Median of 6..35 splits the trend down the middle.
	assert.InDelta(t, 20.5, cls.Threshold, 1e-9)
	cm := cls.Confusion
	assert.Equal(t, n, cm.TruePositive+cm.TrueNegative+cm.FalsePositive+cm.FalseNegative)
	assert.Greater(t, cm.Accuracy(), 0.9)
	assert.Greater(t, cls.AUC, 0.95)
}

func TestClassifyGAMRejectsMismatch(t *testing.T) {
	g, err := FitGAM([]float64{1, 2, 3, 4}, []float64{2, 3, 4, 5}, FamilyGaussian)
	require.NoError(t, err)
	_, err = ClassifyGAM(g, []float64{1, 2}, []float64{2})
	assert.Error(t, err)
}

func TestPoissonExceedance(t *testing.T) {
	// P(X >= 10) = 1 - P(X <= 9) at rate 10.
	assert.InDelta(t, 0.542, PoissonExceedance(10, 9), 0.01)
	assert.InDelta(t, 1.0, PoissonExceedance(10, -1), 1e-9)
}

func TestPoissonProbs(t *testing.T) {
	refs := []RefProbability{{Name: "mean", Ref: 10}}
	out := PoissonProbs(10, refs)
	require.Len(t, out, 1)

	// P(X <= 10) + P(X >= 10) counts the mass at 10 twice.
	overlap := out[0].ProbBelow + out[0].ProbAbove
	assert.Greater(t, overlap, 1.0)
	assert.InDelta(t, 0.583, out[0].ProbBelow, 0.01)
}

func TestNormalProbs(t *testing.T) {
	refs := []RefProbability{{Name: "median", Ref: 20}}
	out := NormalProbs(20, 5, refs)
	require.Len(t, out, 1)
	assert.InDelta(t, 0.5, out[0].ProbBelow, 1e-9)
	assert.InDelta(t, 0.5, out[0].ProbAbove, 1e-9)

	// Zero spread still yields defined probabilities.
	out = NormalProbs(20, 0, []RefProbability{{Ref: 19}})
	assert.InDelta(t, 0.0, out[0].ProbBelow, 1e-9)
}

func TestPartialDependenceGrid(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	ys := []float64{5, 6, 7, 8, 9, 10, 11, 12, 13, 14}
	g, err := FitGAM(xs, ys, FamilyGaussian)
	require.NoError(t, err)

	gx, gy := g.PartialDependence(100)
	assert.Len(t, gx, 100)
	assert.Len(t, gy, 100)
	assert.InDelta(t, 1.0, gx[0], 1e-9)
	assert.InDelta(t, 11.0, gx[99], 1e-9)
}
