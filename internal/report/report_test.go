package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWriter(t *testing.T) *Writer {
	t.Helper()
	log := logrus.New()
	log.SetOutput(os.Stderr)
	w, err := NewWriter(t.TempDir(), log)
	require.NoError(t, err)
	return w
}

func sampleTable() *Table {
	t := &Table{
		Title:   "Player Averages",
		Columns: []string{"Player", "PTS", "REB", "AST"},
	}
	t.AddRow("Cam Thomas", F2(22.5), F2(3.2), F2(2.9))
	t.AddRow("Cameron Johnson", F2(13.4), F2(4.3), F2(2.4))
	return t
}

func TestWriteTableRoundTrip(t *testing.T) {
	w := testWriter(t)
	table := sampleTable()
	require.NoError(t, w.WriteTable("averages", table))

	// CSV keeps the column set and row count.
	f, err := os.Open(w.CSVPath("averages"))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, table.Columns, records[0])
	assert.Equal(t, table.Rows[0], records[1])

	// HTML carries the same cells.
	hf, err := os.Open(w.HTMLPath("averages"))
	require.NoError(t, err)
	defer hf.Close()
	doc, err := goquery.NewDocumentFromReader(hf)
	require.NoError(t, err)
	assert.Equal(t, len(table.Columns), doc.Find("th").Length())
	assert.Equal(t, len(table.Rows), doc.Find("tbody tr").Length())
	assert.Equal(t, "Cam Thomas", strings.TrimSpace(doc.Find("tbody tr").First().Find("td").First().Text()))

	// Image artifact exists and is non-trivial.
	info, err := os.Stat(w.ImagePath("averages"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))
}

func TestWriteTableSkipsEmpty(t *testing.T) {
	w := testWriter(t)
	empty := &Table{Title: "Nothing", Columns: []string{"A"}}
	require.NoError(t, w.WriteTable("nothing", empty))
	_, err := os.Stat(w.CSVPath("nothing"))
	assert.True(t, os.IsNotExist(err))
}

func TestAddRowPads(t *testing.T) {
	table := &Table{Columns: []string{"A", "B", "C"}}
	table.AddRow("only")
	require.Len(t, table.Rows[0], 3)
	assert.Equal(t, "", table.Rows[0][2])
}

func TestCellFormatters(t *testing.T) {
	assert.Equal(t, "3.14", F2(3.14159))
	assert.Equal(t, "0.5830", F4(0.583))
	assert.Equal(t, "7", I(7))
	assert.Equal(t, "1", B(true))
	assert.Equal(t, "0", B(false))
	assert.Equal(t, "42.50%", Pct(42.5))
}

func TestStaticCharts(t *testing.T) {
	dir := t.TempDir()

	scatter := filepath.Join(dir, "scatter.png")
	require.NoError(t, ScatterChart(scatter, "Points", "Game", "PTS",
		[]XY{{1, 20}, {2, 25}, {3, 18}}))
	assertFile(t, scatter)

	line := filepath.Join(dir, "line.png")
	require.NoError(t, LineChart(line, "Trend", "Game", "PTS",
		map[string][]XY{"observed": {{1, 20}, {2, 25}, {3, 18}}}))
	assertFile(t, line)

	bar := filepath.Join(dir, "bar.png")
	require.NoError(t, BarChart(bar, "Wins", "Count", []string{"Home", "Away"}, []float64{18, 14}))
	assertFile(t, bar)

	hist := filepath.Join(dir, "hist.png")
	require.NoError(t, HistogramChart(hist, "PTS", "Points",
		[]float64{10, 12, 15, 18, 20, 22, 25, 28, 30, 14, 19, 21},
		map[string]float64{"mean": 19.5}))
	assertFile(t, hist)

	box := filepath.Join(dir, "box.png")
	require.NoError(t, BoxChart(box, "Spread", "Points",
		[]string{"PTS", "REB"}, [][]float64{{10, 20, 30, 25}, {3, 5, 8, 6}}))
	assertFile(t, box)

	pie := filepath.Join(dir, "pie.png")
	require.NoError(t, PieChart(pie, "W/L", []string{"Wins", "Losses"}, []float64{32, 50}))
	assertFile(t, pie)

	radar := filepath.Join(dir, "radar.png")
	require.NoError(t, RadarChart(radar, "Home vs Away",
		[]string{"PTS", "REB", "AST", "STL"},
		map[string][]float64{"Home": {110, 44, 26, 7}, "Away": {104, 41, 23, 6}}))
	assertFile(t, radar)

	heat := filepath.Join(dir, "heat.png")
	require.NoError(t, HeatmapChart(heat, "Confusion",
		[]string{"Actual: No", "Actual: Yes"},
		[]string{"Pred: No", "Pred: Yes"},
		[][]float64{{5, 1}, {0, 4}}))
	assertFile(t, heat)

	pmf := filepath.Join(dir, "pmf.png")
	require.NoError(t, PMFChart(pmf, "Next Game Points", "PTS",
		[]float64{0.05, 0.1, 0.2, 0.3, 0.2, 0.1, 0.05},
		map[string]float64{"mean": 3.1, "median": 3}))
	assertFile(t, pmf)
}

func TestChartSeriesOrderStable(t *testing.T) {
	dir := t.TempDir()
	series := map[string][]XY{
		"Observed": {{1, 20}, {2, 25}, {3, 18}},
		"Poisson":  {{1, 21}, {2, 23}, {3, 20}},
		"Gaussian": {{1, 19}, {2, 24}, {3, 19}},
	}

	first := filepath.Join(dir, "first.png")
	second := filepath.Join(dir, "second.png")
	require.NoError(t, LineChart(first, "Trend", "Game", "PTS", series))
	require.NoError(t, LineChart(second, "Trend", "Game", "PTS", series))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	assert.Equal(t, []string{"Gaussian", "Observed", "Poisson"}, seriesKeys(series))
}

func TestInteractiveCharts(t *testing.T) {
	dir := t.TempDir()

	bar := filepath.Join(dir, "bar.html")
	require.NoError(t, InteractiveBar(bar, "Wins", []string{"Home", "Away"},
		map[string][]float64{"Wins": {18, 14}}))
	assertFile(t, bar)

	pie := filepath.Join(dir, "pie.html")
	require.NoError(t, InteractivePie(pie, "W/L", []string{"Wins", "Losses"}, []float64{32, 50}))
	assertFile(t, pie)

	radar := filepath.Join(dir, "radar.html")
	require.NoError(t, InteractiveRadar(radar, "Home vs Away",
		[]string{"PTS", "REB", "AST"},
		map[string][]float64{"Home": {110, 44, 26}}))
	assertFile(t, radar)

	line := filepath.Join(dir, "line.html")
	require.NoError(t, InteractiveLine(line, "Trend", []string{"1", "2", "3"},
		map[string][]float64{"Observed": {20, 25, 18}, "Poisson": {21, 23, 20}}))
	assertFile(t, line)

	scatter := filepath.Join(dir, "scatter.html")
	require.NoError(t, InteractiveScatter(scatter, "ROC",
		[]XY{{0, 0}, {0.25, 0.8}, {1, 1}}))
	assertFile(t, scatter)
}

func TestParseChartEngine(t *testing.T) {
	assert.Equal(t, EnginePNG, ParseChartEngine(""))
	assert.Equal(t, EnginePNG, ParseChartEngine("png"))
	assert.Equal(t, EngineHTML, ParseChartEngine("html"))
	assert.Equal(t, EngineHTML, ParseChartEngine("ECharts"))
	assert.Equal(t, "html", EngineHTML.String())
}

func assertFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
