package models

import "time"

// SexIndicators carries the weekly figures for one sex of a lot. Feed
// conversion and per-bird consumption are expressed in grams per surviving
// bird even though intake is recorded in kilograms; the conversion happens
// once, here, and presentation layers must not repeat it.
type SexIndicators struct {
	PopulationStart int `json:"population_start"`
	PopulationEnd   int `json:"population_end"`

	Mortality int     `json:"mortality"`
	Selected  int     `json:"selected"`
	Errors    int     `json:"errors"`
	FeedKg    float64 `json:"feed_kg"`

	MortalityPct float64 `json:"mortality_pct"`
	SelectedPct  float64 `json:"selected_pct"`
	ErrorPct     float64 `json:"error_pct"`

	CumMortality int     `json:"cum_mortality"`
	CumSelected  int     `json:"cum_selected"`
	CumErrors    int     `json:"cum_errors"`
	CumFeedKg    float64 `json:"cum_feed_kg"`

	Weight     *float64 `json:"weight,omitempty"`
	Uniformity *float64 `json:"uniformity,omitempty"`
	Cv         *float64 `json:"cv,omitempty"`

	FeedConversion float64 `json:"feed_conversion"`
	CumFeedPerBird float64 `json:"cum_feed_per_bird"`
	Efficiency     float64 `json:"efficiency"`
	Productivity   float64 `json:"productivity"`
}

// GuideComparison attaches the genetic reference for the week and the
// deviation of each actual against it. Deviations are nil when the guide
// value is zero or the actual was not observed: "not comparable" is not the
// same as "no deviation".
type GuideComparison struct {
	Reference GuideReference `json:"reference"`

	WeightDevPct     *float64 `json:"weight_dev_pct,omitempty"`
	FeedDevPct       *float64 `json:"feed_dev_pct,omitempty"`
	UniformityDevPct *float64 `json:"uniformity_dev_pct,omitempty"`
	MortalityDevPct  *float64 `json:"mortality_dev_pct,omitempty"`
}

// WeeklyIndicator is one computed output row per age week. Rows are
// regenerated from scratch on every computation; they are never partially
// updated.
type WeeklyIndicator struct {
	Week        int       `json:"week"`
	PeriodStart time.Time `json:"period_start"`
	AgeDays     int       `json:"age_days"`

	Females SexIndicators `json:"females"`
	Males   SexIndicators `json:"males"`

	EggsTotal        int `json:"eggs_total"`
	EggsIncubable    int `json:"eggs_incubable"`
	CumEggsTotal     int `json:"cum_eggs_total"`
	CumEggsIncubable int `json:"cum_eggs_incubable"`

	// PopulationAnomaly marks a week whose recorded losses exceeded the
	// running population. The population floors at zero and the series
	// continues; the flag is for the presentation layer to surface.
	PopulationAnomaly bool `json:"population_anomaly"`

	Guide *GuideComparison `json:"guide,omitempty"`
}
