package models

// ChartKind hints how a series should be rendered.
type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
)

// SeriesPoint is one value of a named series, aligned by age week. Value is
// nil when the source row had nothing to plot for that week (e.g. no weight
// was observed), so charts can show a gap instead of a fake zero.
type SeriesPoint struct {
	Week  int      `json:"week"`
	Value *float64 `json:"value"`
}

// NamedSeries is one chart-ready projection of the weekly indicator rows.
// Values are copied verbatim from the rows; no rounding or unit conversion
// happens at this level.
type NamedSeries struct {
	Key    string        `json:"key"`
	Name   string        `json:"name"`
	Color  string        `json:"color"`
	Kind   ChartKind     `json:"kind"`
	Points []SeriesPoint `json:"points"`
}
