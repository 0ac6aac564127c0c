package report

import "strings"

// ChartEngine selects how the distribution charts are exported.
type ChartEngine int

const (
	// EnginePNG renders static images.
	EnginePNG ChartEngine = iota
	// EngineHTML renders interactive pages.
	EngineHTML
)

// ParseChartEngine maps the CHART_ENGINE setting to an engine. Anything
// other than the interactive keywords falls back to static images.
func ParseChartEngine(s string) ChartEngine {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "interactive", "echarts":
		return EngineHTML
	default:
		return EnginePNG
	}
}

func (e ChartEngine) String() string {
	if e == EngineHTML {
		return "html"
	}
	return "png"
}
