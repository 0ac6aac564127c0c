package model

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Observation is one labeled sample: a feature vector and its target
// value, tagged with the player it belongs to for the report tables.
type Observation struct {
	PlayerID int
	Player   string
	Features []float64
	Actual   float64
}

// Thresholds are the central tendency cutoffs computed from a training
// target, used to flag predictions. Mode is NaN when the training target
// has no mode, which makes every above-mode comparison false.
type Thresholds struct {
	Mean   float64
	Median float64
	Mode   float64
	Max    float64
	Min    float64
}

// Prediction is one held-out row with its model output and threshold
// flags.
type Prediction struct {
	Observation
	Predicted   float64
	AboveMean   bool
	AboveMedian bool
	AboveMode   bool
	AboveMax    bool
	AboveMin    bool
}

// LinearResult is a fitted and evaluated least squares regression.
type LinearResult struct {
	Predictions  []Prediction
	Coefficients []float64
	Intercept    float64
	Thresholds   Thresholds
	R2           float64
	MSE          float64
}

// linearFit solves the least squares problem with an intercept column.
type linearFit struct {
	intercept float64
	coef      []float64
}

func fitLeastSquares(X [][]float64, y []float64) (*linearFit, error) {
	n := len(X)
	if n == 0 {
		return nil, fmt.Errorf("least squares: empty sample")
	}
	p := len(X[0])
	a := mat.NewDense(n, p+1, nil)
	for i, row := range X {
		a.Set(i, 0, 1)
		for j, v := range row {
			a.Set(i, j+1, v)
		}
	}
	b := mat.NewVecDense(n, y)

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("least squares solve: %w", err)
	}
	fit := &linearFit{intercept: sol.AtVec(0), coef: make([]float64, p)}
	for j := 0; j < p; j++ {
		fit.coef[j] = sol.AtVec(j + 1)
	}
	return fit, nil
}

func (f *linearFit) predict(x []float64) float64 {
	y := f.intercept
	for j, v := range x {
		y += f.coef[j] * v
	}
	return y
}

// trainThresholds derives the flag cutoffs from a training target.
func trainThresholds(y []float64) Thresholds {
	t := Thresholds{
		Mean:   meanOf(y),
		Median: medianOf(y),
		Mode:   math.NaN(),
		Max:    math.Inf(-1),
		Min:    math.Inf(1),
	}
	for _, v := range y {
		if v > t.Max {
			t.Max = v
		}
		if v < t.Min {
			t.Min = v
		}
	}
	if m, ok := modeOf(y); ok {
		t.Mode = m
	}
	return t
}

// FitLinear trains and evaluates an ordinary least squares regression
// under the sample-size split policy. Coefficients and the reported
// Thresholds come from the full sample; predictions and scores come from
// the held-out rows of each fold, with each row's flags cut at its own
// fold's training thresholds.
func FitLinear(obs []Observation) (*LinearResult, error) {
	if len(obs) < 2 {
		return nil, fmt.Errorf("linear regression: need at least 2 samples, have %d", len(obs))
	}

	full, err := fitLeastSquares(featureMatrix(obs), targets(obs))
	if err != nil {
		return nil, err
	}
	result := &LinearResult{
		Coefficients: full.coef,
		Intercept:    full.intercept,
		Thresholds:   trainThresholds(targets(obs)),
	}

	var actuals, preds []float64
	for _, fold := range Folds(len(obs)) {
		train := subset(obs, fold.Train)
		fit, err := fitLeastSquares(featureMatrix(train), targets(train))
		if err != nil {
			return nil, err
		}
		th := trainThresholds(targets(train))

		for _, i := range fold.Test {
			p := fit.predict(obs[i].Features)
			actuals = append(actuals, obs[i].Actual)
			preds = append(preds, p)
			result.Predictions = append(result.Predictions, Prediction{
				Observation: obs[i],
				Predicted:   p,
				AboveMean:   p > th.Mean,
				AboveMedian: p > th.Median,
				AboveMode:   p > th.Mode,
				AboveMax:    p > th.Max,
				AboveMin:    p > th.Min,
			})
		}
	}
	result.R2 = R2(actuals, preds)
	result.MSE = MSE(actuals, preds)
	return result, nil
}

// ClassificationRow is one held-out row of the regression-as-classifier
// evaluation.
type ClassificationRow struct {
	Observation
	Predicted   float64
	Probability float64
	ActualAbove bool
	PredAbove   bool
}

// RegressionClassification reads a fitted regression as a binary
// classifier: above or below the full-sample target mean, with a sigmoid
// of the margin as the score.
type RegressionClassification struct {
	Threshold    float64
	Rows         []ClassificationRow
	Coefficients []float64
	Confusion    ConfusionMatrix
	ROC          []ROCPoint
	AUC          float64
}

// ClassifyRegression evaluates the regression's above/below-mean calls on
// held-out rows.
func ClassifyRegression(obs []Observation) (*RegressionClassification, error) {
	if len(obs) < 2 {
		return nil, fmt.Errorf("regression classification: need at least 2 samples, have %d", len(obs))
	}
	threshold := meanOf(targets(obs))

	full, err := fitLeastSquares(featureMatrix(obs), targets(obs))
	if err != nil {
		return nil, err
	}
	result := &RegressionClassification{
		Threshold:    threshold,
		Coefficients: full.coef,
	}

	var actual, predicted []bool
	var scores []float64
	for _, fold := range Folds(len(obs)) {
		train := subset(obs, fold.Train)
		fit, err := fitLeastSquares(featureMatrix(train), targets(train))
		if err != nil {
			return nil, err
		}
		for _, i := range fold.Test {
			p := fit.predict(obs[i].Features)
			row := ClassificationRow{
				Observation: obs[i],
				Predicted:   p,
				Probability: sigmoid(p - threshold),
				ActualAbove: obs[i].Actual > threshold,
				PredAbove:   p > threshold,
			}
			result.Rows = append(result.Rows, row)
			actual = append(actual, row.ActualAbove)
			predicted = append(predicted, row.PredAbove)
			scores = append(scores, row.Probability)
		}
	}
	result.Confusion = Confusion(actual, predicted)
	result.ROC = ROC(actual, scores)
	result.AUC = AUC(result.ROC)
	return result, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func featureMatrix(obs []Observation) [][]float64 {
	X := make([][]float64, len(obs))
	for i, o := range obs {
		X[i] = o.Features
	}
	return X
}

func targets(obs []Observation) []float64 {
	y := make([]float64, len(obs))
	for i, o := range obs {
		y[i] = o.Actual
	}
	return y
}

func subset(obs []Observation, idx []int) []Observation {
	out := make([]Observation, len(idx))
	for i, j := range idx {
		out[i] = obs[j]
	}
	return out
}

func meanOf(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var s float64
	for _, v := range y {
		s += v
	}
	return s / float64(len(y))
}

func medianOf(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sorted := append([]float64(nil), y...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// modeOf returns the smallest most frequent value, or false when every
// value is equally frequent.
func modeOf(y []float64) (float64, bool) {
	if len(y) == 0 {
		return 0, false
	}
	freq := make(map[float64]int, len(y))
	for _, v := range y {
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
		return 0, false
	}
	mode := math.Inf(1)
	for v, n := range freq {
		if n == best && v < mode {
			mode = v
		}
	}
	return mode, true
}
