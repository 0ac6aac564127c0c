package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// seriesKeys returns map keys sorted, so legend entries and colors come
// out the same on every run.
func seriesKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// XY is one chart point.
type XY struct {
	X float64
	Y float64
}

func xysOf(points []XY) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return xys
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	return p
}

const (
	chartWidth  = 7 * vg.Inch
	chartHeight = 5 * vg.Inch
)

// ScatterChart writes a scatter PNG.
func ScatterChart(path, title, xLabel, yLabel string, points []XY) error {
	p := newPlot(title, xLabel, yLabel)
	s, err := plotter.NewScatter(xysOf(points))
	if err != nil {
		return fmt.Errorf("scatter %s: %w", title, err)
	}
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s, plotter.NewGrid())
	return p.Save(chartWidth, chartHeight, path)
}

// LineChart writes a line PNG. A second series may be passed for an
// overlay such as a fitted curve.
func LineChart(path, title, xLabel, yLabel string, series map[string][]XY) error {
	p := newPlot(title, xLabel, yLabel)
	p.Add(plotter.NewGrid())
	for i, name := range seriesKeys(series) {
		l, err := plotter.NewLine(xysOf(series[name]))
		if err != nil {
			return fmt.Errorf("line %s: %w", title, err)
		}
		l.Color = plotColor(i)
		p.Add(l)
		p.Legend.Add(name, l)
	}
	p.Legend.Top = true
	return p.Save(chartWidth, chartHeight, path)
}

// BarChart writes a labeled bar PNG.
func BarChart(path, title, yLabel string, labels []string, values []float64) error {
	p := newPlot(title, "", yLabel)
	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(24))
	if err != nil {
		return fmt.Errorf("bars %s: %w", title, err)
	}
	bars.LineStyle.Width = 0
	bars.Color = plotColor(0)
	p.Add(bars)
	p.NominalX(labels...)
	return p.Save(chartWidth, chartHeight, path)
}

// PMFChart writes a predicted probability mass function as bars over the
// counts 0..len(pmf)-1, with dashed reference lines at notable sample
// values.
func PMFChart(path, title, xLabel string, pmf []float64, refs map[string]float64) error {
	p := newPlot(title, xLabel, "Probability")
	bars, err := plotter.NewBarChart(plotter.Values(pmf), vg.Points(6))
	if err != nil {
		return fmt.Errorf("pmf %s: %w", title, err)
	}
	bars.LineStyle.Width = 0
	bars.Color = plotColor(0)
	p.Add(bars)

	top := 0.0
	for _, v := range pmf {
		if v > top {
			top = v
		}
	}
	if top == 0 {
		top = 1
	}
	for i, name := range seriesKeys(refs) {
		line := verticalLine(refs[name], top)
		line.Color = plotColor(i + 1)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s: %.1f", name, refs[name]), line)
	}
	p.Legend.Top = true
	return p.Save(chartWidth, chartHeight, path)
}

// GroupedBarChart writes side-by-side bar groups, one offset series per
// entry, e.g. wins and losses per venue.
func GroupedBarChart(path, title, yLabel string, labels []string, series map[string][]float64) error {
	p := newPlot(title, "", yLabel)
	width := vg.Points(18)
	for i, name := range seriesKeys(series) {
		bars, err := plotter.NewBarChart(plotter.Values(series[name]), width)
		if err != nil {
			return fmt.Errorf("bars %s: %w", title, err)
		}
		bars.LineStyle.Width = 0
		bars.Color = plotColor(i)
		bars.Offset = width * vg.Length(i)
		p.Add(bars)
		p.Legend.Add(name, bars)
	}
	p.Legend.Top = true
	p.NominalX(labels...)
	return p.Save(chartWidth, chartHeight, path)
}

// HistogramChart writes a histogram PNG with reference lines at notable
// values (mean, median, mode).
func HistogramChart(path, title, xLabel string, values []float64, refs map[string]float64) error {
	p := newPlot(title, xLabel, "Frequency")
	vals := make(plotter.Values, len(values))
	copy(vals, values)
	h, err := plotter.NewHist(vals, 12)
	if err != nil {
		return fmt.Errorf("histogram %s: %w", title, err)
	}
	h.FillColor = plotColor(0)
	p.Add(h)

	for i, name := range seriesKeys(refs) {
		line := verticalLine(refs[name], histMax(h))
		line.Color = plotColor(i + 1)
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("%s: %.2f", name, refs[name]), line)
	}
	p.Legend.Top = true
	return p.Save(chartWidth, chartHeight, path)
}

func histMax(h *plotter.Histogram) float64 {
	max := 1.0
	for _, bin := range h.Bins {
		if bin.Weight > max {
			max = bin.Weight
		}
	}
	return max
}

func verticalLine(x, height float64) *plotter.Line {
	l, _ := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: height}})
	return l
}

// BoxChart writes side-by-side box plots, one per labeled series.
func BoxChart(path, title, yLabel string, labels []string, series [][]float64) error {
	p := newPlot(title, "", yLabel)
	for i, values := range series {
		vals := make(plotter.Values, len(values))
		copy(vals, values)
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), vals)
		if err != nil {
			return fmt.Errorf("box plot %s: %w", title, err)
		}
		p.Add(box)
	}
	p.NominalX(labels...)
	return p.Save(chartWidth, chartHeight, path)
}
