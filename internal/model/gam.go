package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Family selects the GAM's response distribution.
type Family int

const (
	// FamilyPoisson fits counts with a log link.
	FamilyPoisson Family = iota
	// FamilyGaussian fits an identity-link penalized least squares.
	FamilyGaussian
)

func (f Family) String() string {
	if f == FamilyPoisson {
		return "poisson"
	}
	return "gaussian"
}

const (
	gamSplines   = 10
	splineDegree = 3
	irlsMaxIter  = 50
	irlsTol      = 1e-8
)

// lambdaGrid is the smoothing grid searched by GCV, log-spaced over
// [1e-3, 1e3].
var lambdaGrid = func() []float64 {
	grid := make([]float64, 11)
	for i := range grid {
		grid[i] = math.Pow(10, -3+float64(i)*0.6)
	}
	return grid
}()

// GAM is a univariate generalized additive model: a penalized cubic
// B-spline smooth of the response over one covariate. The smoothing
// parameter is chosen by generalized cross validation.
type GAM struct {
	Family Family
	Lambda float64
	EDoF   float64

	// Sigma is the residual standard deviation of a Gaussian fit,
	// floored at 1e-6 so probability queries stay defined.
	Sigma float64

	knots []float64
	coef  []float64
	xMin  float64
	xMax  float64
}

// FitGAM fits the smooth of y over x. The basis domain extends one unit
// past the observed maximum so the next point ahead of the sample can be
// predicted without extrapolating outside the knots.
func FitGAM(x, y []float64, family Family) (*GAM, error) {
	n := len(x)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("gam: need matched non-empty samples, have %d/%d", len(x), len(y))
	}
	if family == FamilyPoisson {
		for _, v := range y {
			if v < 0 {
				return nil, fmt.Errorf("gam: poisson response must be non-negative, have %g", v)
			}
		}
	}

	lo, hi := x[0], x[0]
	for _, v := range x {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	g := &GAM{Family: family, xMin: lo, xMax: hi + 1}
	g.knots = splineKnots(g.xMin, g.xMax, gamSplines)

	B := basisMatrix(g.knots, x)
	P := penaltyMatrix(gamSplines)

	bestGCV := math.Inf(1)
	var bestCoef []float64
	var bestEDoF float64
	for _, lam := range lambdaGrid {
		coef, edof, err := g.solve(B, y, P, lam)
		if err != nil {
			continue
		}
		rss := 0.0
		for i := range y {
			fit := g.linkInverse(rowDot(B, i, coef))
			rss += (y[i] - fit) * (y[i] - fit)
		}
		denom := float64(n) - edof
		if denom <= 0 {
			continue
		}
		gcv := float64(n) * rss / (denom * denom)
		if gcv < bestGCV {
			bestGCV = gcv
			bestCoef = coef
			bestEDoF = edof
			g.Lambda = lam
		}
	}
	if bestCoef == nil {
		return nil, fmt.Errorf("gam: no smoothing parameter produced a stable fit")
	}
	g.coef = bestCoef
	g.EDoF = bestEDoF

	var ss float64
	for i := range y {
		r := y[i] - g.Predict(x[i])
		ss += r * r
	}
	g.Sigma = math.Sqrt(ss / float64(n))
	if g.Sigma == 0 {
		g.Sigma = 1e-6
	}
	return g, nil
}

// solve runs one penalized fit at a fixed smoothing parameter and
// returns the coefficients with the effective degrees of freedom.
func (g *GAM) solve(B *mat.Dense, y []float64, P *mat.SymDense, lam float64) ([]float64, float64, error) {
	n, m := B.Dims()
	switch g.Family {
	case FamilyGaussian:
		w := make([]float64, n)
		for i := range w {
			w[i] = 1
		}
		return penalizedWLS(B, y, w, P, lam)
	case FamilyPoisson:
		// Penalized IRLS with log link.
		coef := make([]float64, m)
		mean := meanOf(y)
		if mean <= 0 {
			mean = 1e-3
		}
		coef[0] = math.Log(mean)
		eta := make([]float64, n)
		z := make([]float64, n)
		w := make([]float64, n)
		var edof float64
		for iter := 0; iter < irlsMaxIter; iter++ {
			for i := 0; i < n; i++ {
				eta[i] = rowDot(B, i, coef)
				mu := math.Exp(eta[i])
				if mu < 1e-8 {
					mu = 1e-8
				}
				w[i] = mu
				z[i] = eta[i] + (y[i]-mu)/mu
			}
			next, ed, err := penalizedWLS(B, z, w, P, lam)
			if err != nil {
				return nil, 0, err
			}
			edof = ed
			delta := 0.0
			for j := range coef {
				delta += math.Abs(next[j] - coef[j])
			}
			coef = next
			if delta < irlsTol {
				break
			}
		}
		return coef, edof, nil
	}
	return nil, 0, fmt.Errorf("gam: unknown family %d", g.Family)
}

// penalizedWLS solves (BᵀWB + λP)c = BᵀWz and reports trace of the hat
// matrix as the effective degrees of freedom.
func penalizedWLS(B *mat.Dense, z, w []float64, P *mat.SymDense, lam float64) ([]float64, float64, error) {
	n, m := B.Dims()

	btwb := mat.NewDense(m, m, nil)
	btwz := make([]float64, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			bij := B.At(i, j)
			if bij == 0 {
				continue
			}
			wb := w[i] * bij
			btwz[j] += wb * z[i]
			for k := 0; k < m; k++ {
				btwb.Set(j, k, btwb.At(j, k)+wb*B.At(i, k))
			}
		}
	}
	lhs := mat.NewDense(m, m, nil)
	for j := 0; j < m; j++ {
		for k := 0; k < m; k++ {
			lhs.Set(j, k, btwb.At(j, k)+lam*P.At(j, k))
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(lhs); err != nil {
		return nil, 0, fmt.Errorf("penalized system is singular: %w", err)
	}

	coef := make([]float64, m)
	for j := 0; j < m; j++ {
		for k := 0; k < m; k++ {
			coef[j] += inv.At(j, k) * btwz[k]
		}
	}

	// edof = tr((BᵀWB + λP)⁻¹ BᵀWB)
	var edof float64
	for j := 0; j < m; j++ {
		for k := 0; k < m; k++ {
			edof += inv.At(j, k) * btwb.At(k, j)
		}
	}
	return coef, edof, nil
}

func (g *GAM) linkInverse(eta float64) float64 {
	if g.Family == FamilyPoisson {
		return math.Exp(eta)
	}
	return eta
}

// Predict evaluates the smooth at x on the response scale.
func (g *GAM) Predict(x float64) float64 {
	row := basisRow(g.knots, x)
	var eta float64
	for j, b := range row {
		eta += b * g.coef[j]
	}
	return g.linkInverse(eta)
}

// PartialDependence samples the smooth over an evenly spaced grid across
// the fitted domain.
func (g *GAM) PartialDependence(points int) (xs, ys []float64) {
	if points < 2 {
		points = 2
	}
	xs = make([]float64, points)
	ys = make([]float64, points)
	step := (g.xMax - g.xMin) / float64(points-1)
	for i := 0; i < points; i++ {
		xs[i] = g.xMin + float64(i)*step
		ys[i] = g.Predict(xs[i])
	}
	return xs, ys
}

// RefProbability is one reference value with the chance of the next
// observation landing below or above it.
type RefProbability struct {
	Name      string
	Ref       float64
	ProbBelow float64
	ProbAbove float64
}

// PoissonProbs evaluates the references against a Poisson with the given
// predicted rate. References are rounded to the nearest count; below
// means P(X <= k) and above means P(X >= k).
func PoissonProbs(rate float64, refs []RefProbability) []RefProbability {
	if rate <= 0 {
		rate = 1e-6
	}
	dist := distuv.Poisson{Lambda: rate}
	out := make([]RefProbability, len(refs))
	for i, r := range refs {
		k := math.Round(r.Ref)
		r.ProbBelow = dist.CDF(k)
		r.ProbAbove = 1 - dist.CDF(k-1)
		out[i] = r
	}
	return out
}

// NormalProbs evaluates the references against a Normal centered on the
// predicted value with the fit's residual spread.
func NormalProbs(pred, sigma float64, refs []RefProbability) []RefProbability {
	if sigma <= 0 {
		sigma = 1e-6
	}
	dist := distuv.Normal{Mu: pred, Sigma: sigma}
	out := make([]RefProbability, len(refs))
	for i, r := range refs {
		r.ProbBelow = dist.CDF(r.Ref)
		r.ProbAbove = 1 - dist.CDF(r.Ref)
		out[i] = r
	}
	return out
}

// PoissonExceedance is P(X > x) under a Poisson with the given rate, the
// score used when the count smooth is read as a classifier.
func PoissonExceedance(rate, x float64) float64 {
	if rate <= 0 {
		rate = 1e-6
	}
	return 1 - distuv.Poisson{Lambda: rate}.CDF(x)
}

// GAMClassification reads the count smooth as a binary classifier over
// its own training sample: each observation is called above or below the
// response median, scored by the Poisson exceedance probability at its
// fitted rate.
type GAMClassification struct {
	Threshold float64
	Confusion ConfusionMatrix
	ROC       []ROCPoint
	AUC       float64
}

// ClassifyGAM evaluates the fitted smooth's above/below-median calls on
// the sample it was fitted to.
func ClassifyGAM(g *GAM, x, y []float64) (*GAMClassification, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("gam classification: need matched non-empty samples, have %d/%d", len(x), len(y))
	}
	med := medianOf(y)
	actual := make([]bool, len(y))
	predicted := make([]bool, len(y))
	scores := make([]float64, len(y))
	for i := range y {
		mu := g.Predict(x[i])
		actual[i] = y[i] > med
		predicted[i] = mu > med
		scores[i] = PoissonExceedance(mu, med)
	}
	result := &GAMClassification{Threshold: med}
	result.Confusion = Confusion(actual, predicted)
	result.ROC = ROC(actual, scores)
	result.AUC = AUC(result.ROC)
	return result, nil
}

// PoissonPMF returns the probability mass at each count 0..maxK for the
// given rate, for plotting the predicted distribution.
func PoissonPMF(rate float64, maxK int) []float64 {
	if rate <= 0 {
		rate = 1e-6
	}
	dist := distuv.Poisson{Lambda: rate}
	pmf := make([]float64, maxK+1)
	for k := 0; k <= maxK; k++ {
		pmf[k] = dist.Prob(float64(k))
	}
	return pmf
}

// splineKnots builds the padded knot vector for m cubic basis functions
// over [lo, hi].
func splineKnots(lo, hi float64, m int) []float64 {
	interior := m - splineDegree + 1
	step := (hi - lo) / float64(interior-1)
	knots := make([]float64, 0, m+splineDegree+1)
	for i := 0; i < splineDegree; i++ {
		knots = append(knots, lo-float64(splineDegree-i)*step)
	}
	for i := 0; i < interior; i++ {
		knots = append(knots, lo+float64(i)*step)
	}
	for i := 1; i <= splineDegree; i++ {
		knots = append(knots, hi+float64(i)*step)
	}
	return knots
}

// basisRow evaluates every cubic B-spline basis function at x by the
// Cox-de Boor recursion.
func basisRow(knots []float64, x float64) []float64 {
	m := len(knots) - splineDegree - 1
	lo, hi := knots[splineDegree], knots[m]
	if x < lo {
		x = lo
	}
	// Clamp just inside the right edge so the last basis stays active.
	if x >= hi {
		x = hi - 1e-9
	}

	deg0 := make([]float64, len(knots)-1)
	for i := range deg0 {
		if knots[i] <= x && x < knots[i+1] {
			deg0[i] = 1
		}
	}
	prev := deg0
	for d := 1; d <= splineDegree; d++ {
		cur := make([]float64, len(prev)-1)
		for i := range cur {
			var left, right float64
			if den := knots[i+d] - knots[i]; den > 0 {
				left = (x - knots[i]) / den * prev[i]
			}
			if den := knots[i+d+1] - knots[i+1]; den > 0 {
				right = (knots[i+d+1] - x) / den * prev[i+1]
			}
			cur[i] = left + right
		}
		prev = cur
	}
	return prev[:m]
}

func basisMatrix(knots []float64, x []float64) *mat.Dense {
	m := len(knots) - splineDegree - 1
	B := mat.NewDense(len(x), m, nil)
	for i, v := range x {
		row := basisRow(knots, v)
		for j, b := range row {
			B.Set(i, j, b)
		}
	}
	return B
}

// penaltyMatrix is DᵀD for the second-order difference operator, the
// standard P-spline wiggliness penalty.
func penaltyMatrix(m int) *mat.SymDense {
	P := mat.NewSymDense(m, nil)
	for r := 0; r < m-2; r++ {
		// Row r of D has entries 1, -2, 1 at columns r, r+1, r+2.
		d := []float64{1, -2, 1}
		for a := 0; a < 3; a++ {
			for b := a; b < 3; b++ {
				P.SetSym(r+a, r+b, P.At(r+a, r+b)+d[a]*d[b])
			}
		}
	}
	return P
}

func rowDot(B *mat.Dense, i int, coef []float64) float64 {
	var s float64
	for j, c := range coef {
		s += B.At(i, j) * c
	}
	return s
}
