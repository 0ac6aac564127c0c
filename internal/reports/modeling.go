package reports

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/model"
	"github.com/fortuna/courtside/internal/nba"
	"github.com/fortuna/courtside/internal/report"
	"github.com/fortuna/courtside/internal/stats"
)

var (
	modelTargets  = []string{"PTS", "AST", "REB"}
	modelFeatures = []string{"MIN", "FGA", "TOV"}
)

func (g *Generator) modelingJobs() []Job {
	var jobs []Job
	for _, player := range g.cfg.Players {
		player := player
		jobs = append(jobs, Job{
			Name: "gumbel_tails_" + playerSlug(player.Name),
			Run: func(ctx context.Context) error {
				return g.gumbelTails(ctx, player)
			},
		})
	}
	for _, season := range g.cfg.Seasons {
		season := season
		tag := seasonTag(season)
		jobs = append(jobs,
			Job{Name: "linear_regression_" + tag, Run: func(ctx context.Context) error {
				return g.linearRegression(ctx, season)
			}},
			Job{Name: "regression_classification_" + tag, Run: func(ctx context.Context) error {
				return g.regressionClassification(ctx, season)
			}},
			Job{Name: "logistic_regression_" + tag, Run: func(ctx context.Context) error {
				return g.logisticRegression(ctx, season)
			}},
		)
	}
	jobs = append(jobs, Job{Name: "gam_predictions", Run: g.gamPredictions})
	return jobs
}

// gumbelTails fits the extreme-value model per stat for one player and
// writes the tail probability table with its chart.
func (g *Generator) gumbelTails(ctx context.Context, player config.Player) error {
	games, err := g.playerSeasonGames(ctx, player)
	if err != nil {
		return err
	}
	names, series := statSeries(games)
	slug := playerSlug(player.Name)

	table := &report.Table{
		Title:   fmt.Sprintf("%s Extreme Value Tail Probabilities", player.Name),
		Columns: append([]string{"Metric"}, names...),
	}
	rows := [][]string{
		{"P(above threshold) (%)"},
		{"P(at or above threshold) (%)"},
		{"P(at or below threshold) (%)"},
		{"Observed share at or below (%)"},
		{"Values below threshold"},
		{"Observed share below (%)"},
	}
	chartRows := make(map[string][]float64)
	for i := range names {
		fit, err := stats.FitGumbel(series[i])
		if err != nil {
			return fmt.Errorf("fitting tail model for %s %s: %w", player.Name, names[i], err)
		}
		tail := fit.TailAtMedian(series[i])

		rows[0] = append(rows[0], report.F2(tail.ProbAbove))
		rows[1] = append(rows[1], report.F2(tail.ProbAtOrAbove))
		rows[2] = append(rows[2], report.F2(tail.ProbAtOrBelow))
		rows[3] = append(rows[3], report.F2(tail.PropAtOrBelow))
		rows[4] = append(rows[4], floatList(tail.ValuesBelow))
		rows[5] = append(rows[5], report.F2(tail.PropBelow))

		chartRows["P(above)"] = append(chartRows["P(above)"], tail.ProbAbove)
		chartRows["P(at or below)"] = append(chartRows["P(at or below)"], tail.ProbAtOrBelow)
		chartRows["Observed below"] = append(chartRows["Observed below"], tail.PropBelow)
	}
	for _, row := range rows {
		table.AddRow(row...)
	}
	if err := g.writer.WriteTable("gumbel_tails_"+slug, table); err != nil {
		return err
	}
	return report.GroupedBarChart(
		g.writer.ImagePath("gumbel_tails_"+slug),
		fmt.Sprintf("%s Tail Probabilities at the Median", player.Name),
		"%", names, chartRows,
	)
}

func floatList(values []float64) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = report.F2(v)
	}
	return strings.Join(parts, " ")
}

// seasonObservations fetches the team's aggregated player lines for one
// season and shapes them into model samples for the given target. When
// trackedOnly is set, only the configured players are kept.
func (g *Generator) seasonObservations(ctx context.Context, season, target string, trackedOnly bool) ([]model.Observation, error) {
	lines, err := g.stats.LeagueDashPlayerStats(ctx, g.cfg.TeamID, season)
	if err != nil {
		return nil, fmt.Errorf("fetching player dashboard %s: %w", season, err)
	}

	tracked := make(map[int]bool, len(g.cfg.Players))
	for _, p := range g.cfg.Players {
		tracked[p.ID] = true
	}

	var obs []model.Observation
	for _, line := range lines {
		if trackedOnly && !tracked[line.PlayerID] {
			continue
		}
		obs = append(obs, model.Observation{
			PlayerID: line.PlayerID,
			Player:   line.Name,
			Features: []float64{line.Minutes, line.FGA, line.TOV},
			Actual:   targetValue(line, target),
		})
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("no player lines for %s in %s", target, season)
	}
	return obs, nil
}

func targetValue(line nba.PlayerSeasonLine, target string) float64 {
	switch target {
	case "AST":
		return line.Assists
	case "REB":
		return line.Rebounds
	default:
		return line.Points
	}
}

// linearRegression writes the held-out prediction table per target with
// the threshold flags.
func (g *Generator) linearRegression(ctx context.Context, season string) error {
	tag := seasonTag(season)
	for _, target := range modelTargets {
		obs, err := g.seasonObservations(ctx, season, target, true)
		if err != nil {
			return err
		}
		result, err := model.FitLinear(obs)
		if err != nil {
			g.log.WithError(err).WithFields(map[string]interface{}{
				"season": season, "target": target,
			}).Warn("skipping linear regression unit")
			continue
		}

		table := &report.Table{
			Title: fmt.Sprintf("Linear Regression %s %s (R2=%.2f, MSE=%.2f)",
				target, season, result.R2, result.MSE),
			Columns: append(append([]string{"Player ID", "Player"}, modelFeatures...),
				target, "Predicted", "Above Mean", "Above Median", "Above Mode", "Above Max", "Above Min"),
		}
		for _, p := range result.Predictions {
			table.AddRow(
				report.I(p.PlayerID),
				p.Player,
				report.F2(p.Features[0]),
				report.F2(p.Features[1]),
				report.F2(p.Features[2]),
				report.F2(p.Actual),
				report.F2(p.Predicted),
				report.B(p.AboveMean),
				report.B(p.AboveMedian),
				report.B(p.AboveMode),
				report.B(p.AboveMax),
				report.B(p.AboveMin),
			)
		}
		code := fmt.Sprintf("linear_regression_%s_%s", strings.ToLower(target), tag)
		if err := g.writer.WriteTable(code, table); err != nil {
			return err
		}

		points := make([]report.XY, len(result.Predictions))
		for i, p := range result.Predictions {
			points[i] = report.XY{X: p.Actual, Y: p.Predicted}
		}
		if err := report.ScatterChart(
			g.writer.ImagePath(code),
			fmt.Sprintf("Predicted vs Actual %s %s", target, season),
			"Actual", "Predicted", points,
		); err != nil {
			return err
		}
	}
	return nil
}

// regressionClassification writes the above/below-mean reading of the
// regression: table, confusion heatmap, ROC, coefficient bar, scatter
// and a combined page.
func (g *Generator) regressionClassification(ctx context.Context, season string) error {
	tag := seasonTag(season)
	for _, target := range modelTargets {
		obs, err := g.seasonObservations(ctx, season, target, true)
		if err != nil {
			return err
		}
		result, err := model.ClassifyRegression(obs)
		if err != nil {
			g.log.WithError(err).WithFields(map[string]interface{}{
				"season": season, "target": target,
			}).Warn("skipping regression classification unit")
			continue
		}
		lowTarget := strings.ToLower(target)

		table := &report.Table{
			Title: fmt.Sprintf("Regression Classification %s %s (mean threshold %.2f)",
				target, season, result.Threshold),
			Columns: append(append([]string{"Player ID", "Player"}, modelFeatures...),
				target, "Predicted", "Probability", "Actual Above", "Predicted Above"),
		}
		for _, row := range result.Rows {
			table.AddRow(
				report.I(row.PlayerID),
				row.Player,
				report.F2(row.Features[0]),
				report.F2(row.Features[1]),
				report.F2(row.Features[2]),
				report.F2(row.Actual),
				report.F2(row.Predicted),
				report.F4(row.Probability),
				report.B(row.ActualAbove),
				report.B(row.PredAbove),
			)
		}
		tableCode := fmt.Sprintf("regression_class_%s_%s", lowTarget, tag)
		if err := g.writer.WriteTable(tableCode, table); err != nil {
			return err
		}

		confusionCode := fmt.Sprintf("regression_confusion_%s_%s", lowTarget, tag)
		cm := result.Confusion
		if err := report.HeatmapChart(
			g.writer.ImagePath(confusionCode),
			fmt.Sprintf("Confusion Matrix %s %s", target, season),
			[]string{"Actual: Below", "Actual: Above"},
			[]string{"Pred: Below", "Pred: Above"},
			[][]float64{
				{float64(cm.TrueNegative), float64(cm.FalsePositive)},
				{float64(cm.FalseNegative), float64(cm.TruePositive)},
			},
		); err != nil {
			return err
		}

		rocCode := fmt.Sprintf("regression_roc_%s_%s", lowTarget, tag)
		if err := g.writeROC(rocCode, fmt.Sprintf("ROC %s %s", target, season), result.ROC, result.AUC); err != nil {
			return err
		}

		coefCode := fmt.Sprintf("regression_coef_%s_%s", lowTarget, tag)
		if err := report.BarChart(
			g.writer.ImagePath(coefCode),
			fmt.Sprintf("Model Coefficients %s %s", target, season),
			"Coefficient", modelFeatures, result.Coefficients,
		); err != nil {
			return err
		}

		scatterCode := fmt.Sprintf("regression_individual_%s_%s", lowTarget, tag)
		points := make([]report.XY, len(result.Rows))
		for i, row := range result.Rows {
			points[i] = report.XY{X: row.Actual, Y: row.Predicted}
		}
		if err := report.ScatterChart(
			g.writer.ImagePath(scatterCode),
			fmt.Sprintf("Individual Predictions %s %s", target, season),
			"Actual", "Predicted", points,
		); err != nil {
			return err
		}

		pageCode := fmt.Sprintf("regression_report_%s_%s", lowTarget, tag)
		if err := g.writer.WritePage(pageCode,
			fmt.Sprintf("Regression Results %s - %s", target, season),
			table,
			[]string{confusionCode, rocCode, coefCode, scatterCode},
		); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeROC(code, title string, curve []model.ROCPoint, auc float64) error {
	points := make([]report.XY, len(curve))
	for i, pt := range curve {
		points[i] = report.XY{X: pt.FPR, Y: pt.TPR}
	}
	titled := fmt.Sprintf("%s (AUC=%.2f)", title, auc)
	if err := report.LineChart(
		g.writer.ImagePath(code), titled,
		"False Positive Rate", "True Positive Rate",
		map[string][]report.XY{
			"ROC":    points,
			"Chance": {{X: 0, Y: 0}, {X: 1, Y: 1}},
		},
	); err != nil {
		return err
	}
	if g.engine == report.EngineHTML {
		return report.InteractiveScatter(g.writer.HTMLPath(code), titled, points)
	}
	return nil
}

// logisticRegression classifies above/below the median per target over
// the whole team roster. Units without two examples per class are
// skipped with a warning.
func (g *Generator) logisticRegression(ctx context.Context, season string) error {
	tag := seasonTag(season)
	for _, target := range modelTargets {
		obs, err := g.seasonObservations(ctx, season, target, false)
		if err != nil {
			return err
		}
		result, err := model.FitLogistic(obs)
		if err != nil {
			if errors.Is(err, model.ErrInsufficientClasses) {
				g.log.WithFields(map[string]interface{}{
					"season": season, "target": target,
				}).Warn("logistic unit lacks class support, skipping")
				continue
			}
			return err
		}
		lowTarget := strings.ToLower(target)

		table := &report.Table{
			Title: fmt.Sprintf("Logistic Regression %s %s (median threshold %.2f, accuracy %.2f)",
				target, season, result.Threshold, result.Accuracy),
			Columns: append(append([]string{"Player ID", "Player"}, modelFeatures...),
				"Probability", "Actual", "Predicted"),
		}
		for _, row := range result.Rows {
			table.AddRow(
				report.I(row.PlayerID),
				row.Player,
				report.F2(row.Features[0]),
				report.F2(row.Features[1]),
				report.F2(row.Features[2]),
				report.F4(row.Probability),
				report.B(row.Actual1),
				report.B(row.Predicted1),
			)
		}
		tableCode := fmt.Sprintf("logistic_%s_%s", lowTarget, tag)
		if err := g.writer.WriteTable(tableCode, table); err != nil {
			return err
		}

		cm := result.Confusion
		if err := report.HeatmapChart(
			g.writer.ImagePath(fmt.Sprintf("logistic_confusion_%s_%s", lowTarget, tag)),
			fmt.Sprintf("Logistic Confusion Matrix %s %s", target, season),
			[]string{"Actual: Below", "Actual: Above"},
			[]string{"Pred: Below", "Pred: Above"},
			[][]float64{
				{float64(cm.TrueNegative), float64(cm.FalsePositive)},
				{float64(cm.FalseNegative), float64(cm.TruePositive)},
			},
		); err != nil {
			return err
		}
		if err := g.writeROC(
			fmt.Sprintf("logistic_roc_%s_%s", lowTarget, tag),
			fmt.Sprintf("Logistic ROC %s %s", target, season),
			result.ROC, result.AUC,
		); err != nil {
			return err
		}
	}
	return nil
}

// gamPredictions fits the additive models over every player's game
// sequence and writes the wide next-game prediction table with the
// per-unit charts.
func (g *Generator) gamPredictions(ctx context.Context) error {
	refNames := []string{"mean", "median", "mode", "min", "max"}
	columns := []string{
		"Player", "Stat", "Next Game",
		"Poisson Prediction", "Gaussian Prediction",
		"Mean", "Median", "Mode", "Min", "Max",
	}
	for _, ref := range refNames {
		columns = append(columns,
			fmt.Sprintf("P(below %s) Poisson", ref),
			fmt.Sprintf("P(above %s) Poisson", ref),
		)
	}
	for _, ref := range refNames {
		columns = append(columns,
			fmt.Sprintf("P(below %s) Gaussian", ref),
			fmt.Sprintf("P(above %s) Gaussian", ref),
		)
	}
	table := &report.Table{Title: "Next Game Predictions", Columns: columns}

	for _, player := range g.cfg.Players {
		games, err := g.playerSeasonGames(ctx, player)
		if err != nil {
			g.log.WithError(err).WithField("player", player.Name).Warn("skipping additive model")
			continue
		}
		names, series := statSeries(games)
		for i, stat := range names {
			if err := g.gamUnit(table, player, stat, series[i], refNames); err != nil {
				g.log.WithError(err).WithFields(map[string]interface{}{
					"player": player.Name, "stat": stat,
				}).Warn("skipping additive model unit")
			}
		}
	}
	return g.writer.WriteTable("gam_predictions", table)
}

func (g *Generator) gamUnit(table *report.Table, player config.Player, stat string, series []float64, refNames []string) error {
	x := make([]float64, len(series))
	for i := range series {
		x[i] = float64(i + 1)
	}
	nextGame := float64(len(series) + 1)

	poissonFit, err := model.FitGAM(x, series, model.FamilyPoisson)
	if err != nil {
		return err
	}
	gaussianFit, err := model.FitGAM(x, series, model.FamilyGaussian)
	if err != nil {
		return err
	}
	poissonPred := poissonFit.Predict(nextGame)
	gaussianPred := gaussianFit.Predict(nextGame)

	refs := historyRefs(series, refNames)
	poissonProbs := model.PoissonProbs(poissonPred, refs)
	gaussianProbs := model.NormalProbs(gaussianPred, gaussianFit.Sigma, refs)

	row := []string{
		player.Name, stat, report.I(int(nextGame)),
		report.F2(poissonPred), report.F2(gaussianPred),
	}
	for _, r := range refs {
		row = append(row, report.F2(r.Ref))
	}
	for _, r := range poissonProbs {
		row = append(row, report.F4(r.ProbBelow), report.F4(r.ProbAbove))
	}
	for _, r := range gaussianProbs {
		row = append(row, report.F4(r.ProbBelow), report.F4(r.ProbAbove))
	}
	table.AddRow(row...)

	return g.gamCharts(player, stat, series, poissonFit, gaussianFit, poissonPred, refs)
}

// historyRefs computes the reference set over a player's stat history.
// The mode falls back to the smallest value when frequencies are uniform.
func historyRefs(series []float64, names []string) []model.RefProbability {
	modeVal := stats.Min(series)
	if m := stats.Mode(series); m.HasMode() {
		modeVal = m.Values[0]
	}
	values := map[string]float64{
		"mean":   stats.Mean(series),
		"median": stats.Median(series),
		"mode":   modeVal,
		"min":    stats.Min(series),
		"max":    stats.Max(series),
	}
	refs := make([]model.RefProbability, len(names))
	for i, name := range names {
		refs[i] = model.RefProbability{Name: name, Ref: values[name]}
	}
	return refs
}

// gamCharts renders the per-unit artifacts: Poisson PMF with reference
// lines, the above/below-median confusion matrix and ROC of the count
// model, and the fitted curves over the history.
func (g *Generator) gamCharts(player config.Player, stat string, series []float64, poissonFit, gaussianFit *model.GAM, poissonPred float64, refs []model.RefProbability) error {
	slug := playerSlug(player.Name)
	low := strings.ToLower(stat)

	refLines := make(map[string]float64, len(refs))
	for _, r := range refs {
		refLines[r.Name] = r.Ref
	}

	maxK := int(math.Ceil(stats.Max(series))) + 10
	pmf := model.PoissonPMF(poissonPred, maxK)
	pmfCode := fmt.Sprintf("gam_pmf_%s_%s", low, slug)
	pmfTitle := fmt.Sprintf("%s Next Game %s Distribution", player.Name, stat)
	if g.engine == report.EngineHTML {
		labels := make([]string, len(pmf))
		for k := range pmf {
			labels[k] = report.I(k)
		}
		if err := report.InteractiveBar(
			g.writer.HTMLPath(pmfCode), pmfTitle,
			labels, map[string][]float64{"P(X=k)": pmf},
		); err != nil {
			return err
		}
	} else {
		if err := report.PMFChart(
			g.writer.ImagePath(pmfCode), pmfTitle, stat, pmf, refLines,
		); err != nil {
			return err
		}
	}

	x := make([]float64, len(series))
	for i := range series {
		x[i] = float64(i + 1)
	}
	cls, err := model.ClassifyGAM(poissonFit, x, series)
	if err != nil {
		return err
	}
	cm := cls.Confusion
	if err := report.HeatmapChart(
		g.writer.ImagePath(fmt.Sprintf("gam_confusion_%s_%s", low, slug)),
		fmt.Sprintf("GAM Confusion Matrix %s %s (median %.1f)", player.Name, stat, cls.Threshold),
		[]string{"Actual: Below", "Actual: Above"},
		[]string{"Pred: Below", "Pred: Above"},
		[][]float64{
			{float64(cm.TrueNegative), float64(cm.FalsePositive)},
			{float64(cm.FalseNegative), float64(cm.TruePositive)},
		},
	); err != nil {
		return err
	}
	rocCode := fmt.Sprintf("gam_roc_%s_%s", low, slug)
	if err := g.writeROC(rocCode, fmt.Sprintf("GAM ROC %s %s", player.Name, stat), cls.ROC, cls.AUC); err != nil {
		return err
	}

	observed := make([]report.XY, len(series))
	for i, v := range series {
		observed[i] = report.XY{X: x[i], Y: v}
	}
	px, py := poissonFit.PartialDependence(100)
	gx, gy := gaussianFit.PartialDependence(100)
	poissonCurve := make([]report.XY, len(px))
	gaussianCurve := make([]report.XY, len(gx))
	for i := range px {
		poissonCurve[i] = report.XY{X: px[i], Y: py[i]}
		gaussianCurve[i] = report.XY{X: gx[i], Y: gy[i]}
	}
	fitCode := fmt.Sprintf("gam_fit_%s_%s", low, slug)
	fitTitle := fmt.Sprintf("%s %s Trend", player.Name, stat)
	if err := report.LineChart(
		g.writer.ImagePath(fitCode), fitTitle, "Game", stat,
		map[string][]report.XY{
			"Observed": observed,
			"Poisson":  poissonCurve,
			"Gaussian": gaussianCurve,
		},
	); err != nil {
		return err
	}
	if g.engine == report.EngineHTML {
		gameLabels := make([]string, len(series))
		fitted := map[string][]float64{
			"Observed": series,
			"Poisson":  make([]float64, len(series)),
			"Gaussian": make([]float64, len(series)),
		}
		for i := range series {
			gameLabels[i] = report.I(i + 1)
			fitted["Poisson"][i] = poissonFit.Predict(x[i])
			fitted["Gaussian"][i] = gaussianFit.Predict(x[i])
		}
		return report.InteractiveLine(g.writer.HTMLPath(fitCode), fitTitle, gameLabels, fitted)
	}
	return nil
}
