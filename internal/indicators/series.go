package indicators

import "github.com/granjasoft/avicore/internal/domain/models"

// SeriesSpec names one chart projection of the weekly rows: a stable key and
// color, a render hint, and the accessor that pulls the value out of a row.
// Accessors return nil for weeks with nothing to plot.
type SeriesSpec struct {
	Key   string
	Name  string
	Color string
	Kind  models.ChartKind
	Value func(row models.WeeklyIndicator) *float64
}

// ProjectSeries reshapes the indicator rows into named series aligned by
// week. Values are taken verbatim from the rows; this layer never rounds,
// converts or recomputes.
func ProjectSeries(rows []models.WeeklyIndicator, specs []SeriesSpec) []models.NamedSeries {
	series := make([]models.NamedSeries, 0, len(specs))
	for _, spec := range specs {
		points := make([]models.SeriesPoint, 0, len(rows))
		for _, row := range rows {
			points = append(points, models.SeriesPoint{Week: row.Week, Value: spec.Value(row)})
		}
		series = append(series, models.NamedSeries{
			Key:    spec.Key,
			Name:   spec.Name,
			Color:  spec.Color,
			Kind:   spec.Kind,
			Points: points,
		})
	}
	return series
}

// DefaultSpecs returns the chart set the farm UI renders for a phase.
func DefaultSpecs(phase models.Phase) []SeriesSpec {
	specs := []SeriesSpec{
		{
			Key:   "feed_conversion_females",
			Name:  "Feed Conversion",
			Color: "#1f77b4",
			Kind:  models.ChartLine,
			Value: func(row models.WeeklyIndicator) *float64 {
				return ptr(row.Females.FeedConversion)
			},
		},
		{
			Key:   "mortality_pct_females",
			Name:  "Mortality %",
			Color: "#d62728",
			Kind:  models.ChartBar,
			Value: func(row models.WeeklyIndicator) *float64 {
				return ptr(row.Females.MortalityPct)
			},
		},
		{
			Key:   "weight_females",
			Name:  "Body Weight",
			Color: "#2ca02c",
			Kind:  models.ChartLine,
			Value: func(row models.WeeklyIndicator) *float64 {
				return row.Females.Weight
			},
		},
		{
			Key:   "weight_guide",
			Name:  "Guide Weight",
			Color: "#9467bd",
			Kind:  models.ChartLine,
			Value: func(row models.WeeklyIndicator) *float64 {
				if row.Guide == nil {
					return nil
				}
				return ptr(row.Guide.Reference.Weight)
			},
		},
		{
			Key:   "uniformity_females",
			Name:  "Uniformity %",
			Color: "#ff7f0e",
			Kind:  models.ChartLine,
			Value: func(row models.WeeklyIndicator) *float64 {
				return row.Females.Uniformity
			},
		},
		{
			Key:   "cum_feed_per_bird_females",
			Name:  "Cumulative Feed per Bird",
			Color: "#8c564b",
			Kind:  models.ChartLine,
			Value: func(row models.WeeklyIndicator) *float64 {
				return ptr(row.Females.CumFeedPerBird)
			},
		},
	}

	if phase == models.PhaseProduction {
		specs = append(specs,
			SeriesSpec{
				Key:   "eggs_total",
				Name:  "Eggs",
				Color: "#e377c2",
				Kind:  models.ChartBar,
				Value: func(row models.WeeklyIndicator) *float64 {
					return ptr(float64(row.EggsTotal))
				},
			},
			SeriesSpec{
				Key:   "eggs_incubable",
				Name:  "Incubable Eggs",
				Color: "#7f7f7f",
				Kind:  models.ChartBar,
				Value: func(row models.WeeklyIndicator) *float64 {
					return ptr(float64(row.EggsIncubable))
				},
			},
		)
	}

	return specs
}

// SpecsByKey filters the default set down to the requested keys, keeping the
// default order. Unknown keys are ignored.
func SpecsByKey(phase models.Phase, keys []string) []SeriesSpec {
	if len(keys) == 0 {
		return DefaultSpecs(phase)
	}
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}
	var specs []SeriesSpec
	for _, spec := range DefaultSpecs(phase) {
		if wanted[spec.Key] {
			specs = append(specs, spec)
		}
	}
	return specs
}

func ptr(v float64) *float64 { return &v }
