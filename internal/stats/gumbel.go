package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Gumbel is a right-skewed extreme value distribution fitted to a sample
// by maximum likelihood.
type Gumbel struct {
	Mu   float64 // location
	Beta float64 // scale

	pointMass bool
	value     float64
}

// FitGumbel fits the distribution to a sample. A sample with no spread
// cannot support a scale parameter, so it degenerates to a point mass at
// the common value.
func FitGumbel(values []float64) (*Gumbel, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("fitting extreme value distribution: empty sample")
	}
	mean := Mean(values)
	sigma := StdDev(values)
	if sigma == 0 {
		return &Gumbel{pointMass: true, value: values[0]}, nil
	}

	// Method-of-moments start, then the one-parameter likelihood
	// fixed point for beta.
	beta := sigma * math.Sqrt(6) / math.Pi
	for i := 0; i < 200; i++ {
		var sumW, sumXW float64
		for _, x := range values {
			w := math.Exp(-x / beta)
			sumW += w
			sumXW += x * w
		}
		next := mean - sumXW/sumW
		if next <= 0 {
			break
		}
		if math.Abs(next-beta) < 1e-10 {
			beta = next
			break
		}
		beta = next
	}

	var sumW float64
	for _, x := range values {
		sumW += math.Exp(-x / beta)
	}
	mu := -beta * math.Log(sumW/float64(len(values)))
	return &Gumbel{Mu: mu, Beta: beta}, nil
}

// CDF returns P(X <= x).
func (g *Gumbel) CDF(x float64) float64 {
	if g.pointMass {
		if x >= g.value {
			return 1
		}
		return 0
	}
	return distuv.GumbelRight{Mu: g.Mu, Beta: g.Beta}.CDF(x)
}

// Survival returns P(X > x).
func (g *Gumbel) Survival(x float64) float64 {
	return 1 - g.CDF(x)
}

// TailReport summarizes the fitted tail behavior at a threshold, with the
// empirical proportions alongside. Probabilities are percentages rounded
// to two decimals.
type TailReport struct {
	Threshold     float64
	ProbAbove     float64   // modeled P(X > x)
	ProbAtOrAbove float64   // modeled survival at x
	ProbAtOrBelow float64   // modeled P(X <= x)
	PropAtOrBelow float64   // empirical share of sample <= x
	ValuesBelow   []float64 // sample values strictly below x
	PropBelow     float64   // empirical share of sample < x
}

// Tail evaluates the report at x for the sample the model was fitted on.
func (g *Gumbel) Tail(values []float64, x float64) TailReport {
	return TailReport{
		Threshold:     x,
		ProbAbove:     Round2(g.Survival(x) * 100),
		ProbAtOrAbove: Round2(g.Survival(x) * 100),
		ProbAtOrBelow: Round2(g.CDF(x) * 100),
		PropAtOrBelow: PctAtOrBelow(values, x),
		ValuesBelow:   Below(values, x),
		PropBelow:     PctBelow(values, x),
	}
}

// TailAtMedian evaluates the report at the sample median, the default
// threshold when none is configured.
func (g *Gumbel) TailAtMedian(values []float64) TailReport {
	return g.Tail(values, Median(values))
}
