// Package model implements the regression, classification and additive
// models behind the prediction reports.
package model

import (
	"math"
	"sort"
)

// R2 is the coefficient of determination of predictions against actuals.
func R2(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	var mean float64
	for _, v := range actual {
		mean += v
	}
	mean /= float64(len(actual))

	var ssRes, ssTot float64
	for i, v := range actual {
		ssRes += (v - predicted[i]) * (v - predicted[i])
		ssTot += (v - mean) * (v - mean)
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// MSE is the mean squared error.
func MSE(actual, predicted []float64) float64 {
	if len(actual) == 0 {
		return 0
	}
	var sum float64
	for i, v := range actual {
		sum += (v - predicted[i]) * (v - predicted[i])
	}
	return sum / float64(len(actual))
}

// ConfusionMatrix counts binary outcomes. Rows are actual, columns
// predicted.
type ConfusionMatrix struct {
	TrueNegative  int
	FalsePositive int
	FalseNegative int
	TruePositive  int
}

// Confusion tallies the matrix from parallel label slices.
func Confusion(actual, predicted []bool) ConfusionMatrix {
	var cm ConfusionMatrix
	for i, a := range actual {
		p := predicted[i]
		switch {
		case a && p:
			cm.TruePositive++
		case a && !p:
			cm.FalseNegative++
		case !a && p:
			cm.FalsePositive++
		default:
			cm.TrueNegative++
		}
	}
	return cm
}

// Accuracy is the share of correct predictions.
func (cm ConfusionMatrix) Accuracy() float64 {
	total := cm.TruePositive + cm.TrueNegative + cm.FalsePositive + cm.FalseNegative
	if total == 0 {
		return 0
	}
	return float64(cm.TruePositive+cm.TrueNegative) / float64(total)
}

// ROCPoint is one operating point of a receiver operating characteristic
// curve.
type ROCPoint struct {
	FPR float64
	TPR float64
}

// ROC sweeps score thresholds from high to low and returns the curve,
// anchored at (0,0) and (1,1).
func ROC(actual []bool, scores []float64) []ROCPoint {
	type pair struct {
		score float64
		label bool
	}
	pairs := make([]pair, len(actual))
	pos, neg := 0, 0
	for i, a := range actual {
		pairs[i] = pair{scores[i], a}
		if a {
			pos++
		} else {
			neg++
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score > pairs[j].score })

	curve := []ROCPoint{{0, 0}}
	tp, fp := 0, 0
	for i := 0; i < len(pairs); {
		// Step over tied scores together.
		j := i
		for j < len(pairs) && pairs[j].score == pairs[i].score {
			if pairs[j].label {
				tp++
			} else {
				fp++
			}
			j++
		}
		i = j
		pt := ROCPoint{}
		if neg > 0 {
			pt.FPR = float64(fp) / float64(neg)
		}
		if pos > 0 {
			pt.TPR = float64(tp) / float64(pos)
		}
		curve = append(curve, pt)
	}
	last := curve[len(curve)-1]
	if last.FPR != 1 || last.TPR != 1 {
		curve = append(curve, ROCPoint{1, 1})
	}
	return curve
}

// AUC integrates a ROC curve with the trapezoid rule.
func AUC(curve []ROCPoint) float64 {
	var area float64
	for i := 1; i < len(curve); i++ {
		dx := curve[i].FPR - curve[i-1].FPR
		area += dx * (curve[i].TPR + curve[i-1].TPR) / 2
	}
	if math.IsNaN(area) {
		return 0
	}
	return area
}
