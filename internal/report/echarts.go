package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Interactive chart rendering. Each function writes a standalone HTML
// page with the chart embedded, the browsable counterpart of the static
// PNGs.

func renderChart(path string, c components.Charter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart page: %w", err)
	}
	defer f.Close()
	page := components.NewPage()
	page.AddCharts(c)
	if err := page.Render(f); err != nil {
		return fmt.Errorf("rendering chart page: %w", err)
	}
	return nil
}

// InteractiveBar writes a bar chart HTML page.
func InteractiveBar(path, title string, labels []string, series map[string][]float64) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels)
	for _, name := range seriesKeys(series) {
		values := series[name]
		items := make([]opts.BarData, len(values))
		for i, v := range values {
			items[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(name, items)
	}
	return renderChart(path, bar)
}

// InteractivePie writes a pie chart HTML page.
func InteractivePie(path, title string, labels []string, values []float64) error {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	items := make([]opts.PieData, len(values))
	for i, v := range values {
		items[i] = opts.PieData{Name: labels[i], Value: v}
	}
	pie.AddSeries(title, items)
	return renderChart(path, pie)
}

// InteractiveLine writes a multi-series line chart HTML page.
func InteractiveLine(path, title string, labels []string, series map[string][]float64) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(labels)
	for _, name := range seriesKeys(series) {
		values := series[name]
		items := make([]opts.LineData, len(values))
		for i, v := range values {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(name, items)
	}
	return renderChart(path, line)
}

// InteractiveScatter writes a scatter chart HTML page.
func InteractiveScatter(path, title string, points []XY) error {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	items := make([]opts.ScatterData, len(points))
	labels := make([]float64, len(points))
	for i, p := range points {
		items[i] = opts.ScatterData{Value: []float64{p.X, p.Y}}
		labels[i] = p.X
	}
	scatter.SetXAxis(labels)
	scatter.AddSeries(title, items)
	return renderChart(path, scatter)
}

// InteractiveRadar writes a radar chart HTML page comparing named series
// across the given axes.
func InteractiveRadar(path, title string, axes []string, series map[string][]float64) error {
	axisMax := make([]float64, len(axes))
	for _, values := range series {
		for i, v := range values {
			if i < len(axisMax) && v > axisMax[i] {
				axisMax[i] = v
			}
		}
	}
	indicators := make([]*opts.Indicator, len(axes))
	for i, axis := range axes {
		max := axisMax[i]
		if max == 0 {
			max = 1
		}
		indicators[i] = &opts.Indicator{Name: axis, Max: float32(max * 1.1)}
	}

	radar := charts.NewRadar()
	radar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)
	for _, name := range seriesKeys(series) {
		radar.AddSeries(name, []opts.RadarData{{Name: name, Value: series[name]}})
	}
	return renderChart(path, radar)
}
