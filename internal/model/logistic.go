package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInsufficientClasses is returned when a binarized target does not
// hold at least two examples of each class, which makes a classifier
// unfittable. Callers log and skip the unit.
var ErrInsufficientClasses = errors.New("fewer than two examples in a class")

// Logistic is a binary classifier trained by gradient descent on
// log-loss. Features are standardized internally so the step size works
// across stat scales.
type Logistic struct {
	Weights []float64
	Bias    float64

	featMean []float64
	featStd  []float64

	LearningRate float64
	Epochs       int
}

// NewLogistic returns a classifier with the default training schedule.
func NewLogistic() *Logistic {
	return &Logistic{LearningRate: 0.1, Epochs: 2000}
}

// Fit trains on the sample. Labels are 0/1 encoded as bool.
func (l *Logistic) Fit(X [][]float64, y []bool) error {
	n := len(X)
	if n == 0 {
		return fmt.Errorf("logistic regression: empty sample")
	}
	p := len(X[0])
	l.standardize(X)
	Z := make([][]float64, n)
	for i, row := range X {
		Z[i] = l.scale(row)
	}

	l.Weights = make([]float64, p)
	l.Bias = 0
	for epoch := 0; epoch < l.Epochs; epoch++ {
		gradW := make([]float64, p)
		var gradB float64
		for i, row := range Z {
			target := 0.0
			if y[i] {
				target = 1.0
			}
			err := sigmoid(dot(l.Weights, row)+l.Bias) - target
			for j, v := range row {
				gradW[j] += err * v
			}
			gradB += err
		}
		for j := range l.Weights {
			l.Weights[j] -= l.LearningRate * gradW[j] / float64(n)
		}
		l.Bias -= l.LearningRate * gradB / float64(n)
	}
	return nil
}

// Prob returns P(class = 1) for one feature vector.
func (l *Logistic) Prob(x []float64) float64 {
	return sigmoid(dot(l.Weights, l.scale(x)) + l.Bias)
}

// Predict returns the hard call at the 0.5 boundary.
func (l *Logistic) Predict(x []float64) bool {
	return l.Prob(x) >= 0.5
}

func (l *Logistic) standardize(X [][]float64) {
	p := len(X[0])
	l.featMean = make([]float64, p)
	l.featStd = make([]float64, p)
	for j := 0; j < p; j++ {
		var sum float64
		for _, row := range X {
			sum += row[j]
		}
		mean := sum / float64(len(X))
		var sq float64
		for _, row := range X {
			sq += (row[j] - mean) * (row[j] - mean)
		}
		std := math.Sqrt(sq / float64(len(X)))
		if std == 0 {
			std = 1
		}
		l.featMean[j] = mean
		l.featStd[j] = std
	}
}

func (l *Logistic) scale(x []float64) []float64 {
	z := make([]float64, len(x))
	for j, v := range x {
		z[j] = (v - l.featMean[j]) / l.featStd[j]
	}
	return z
}

func dot(a, b []float64) float64 {
	var s float64
	for i, v := range a {
		s += v * b[i]
	}
	return s
}

// LogisticRow is one held-out row of the logistic evaluation.
type LogisticRow struct {
	Observation
	Probability float64
	Actual1     bool
	Predicted1  bool
}

// LogisticResult is a fitted and evaluated logistic classifier over a
// target binarized at its median.
type LogisticResult struct {
	Threshold float64
	Rows      []LogisticRow
	Confusion ConfusionMatrix
	ROC       []ROCPoint
	AUC       float64
	Accuracy  float64
}

// FitLogistic binarizes the target at its median, checks class support,
// and trains/evaluates on a stratified 70/30 split. Returns
// ErrInsufficientClasses when either class holds fewer than two samples.
func FitLogistic(obs []Observation) (*LogisticResult, error) {
	if len(obs) == 0 {
		return nil, fmt.Errorf("logistic regression: empty sample")
	}
	threshold := medianOf(targets(obs))
	labels := make([]bool, len(obs))
	pos, neg := 0, 0
	for i, o := range obs {
		labels[i] = o.Actual > threshold
		if labels[i] {
			pos++
		} else {
			neg++
		}
	}
	if pos < 2 || neg < 2 {
		return nil, fmt.Errorf("logistic regression at median %.2f: %w", threshold, ErrInsufficientClasses)
	}

	fold := StratifiedSplit(labels, 0.3)
	clf := NewLogistic()
	trainX := make([][]float64, len(fold.Train))
	trainY := make([]bool, len(fold.Train))
	for i, j := range fold.Train {
		trainX[i] = obs[j].Features
		trainY[i] = labels[j]
	}
	if err := clf.Fit(trainX, trainY); err != nil {
		return nil, err
	}

	result := &LogisticResult{Threshold: threshold}
	var actual, predicted []bool
	var scores []float64
	for _, i := range fold.Test {
		prob := clf.Prob(obs[i].Features)
		row := LogisticRow{
			Observation: obs[i],
			Probability: prob,
			Actual1:     labels[i],
			Predicted1:  prob >= 0.5,
		}
		result.Rows = append(result.Rows, row)
		actual = append(actual, row.Actual1)
		predicted = append(predicted, row.Predicted1)
		scores = append(scores, prob)
	}
	result.Confusion = Confusion(actual, predicted)
	result.ROC = ROC(actual, scores)
	result.AUC = AUC(result.ROC)
	result.Accuracy = result.Confusion.Accuracy()
	return result, nil
}
