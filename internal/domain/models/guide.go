package models

// GuideReference is one row of a breed's genetic reference curve: the
// expected figures for a given age. Rows are read-only lookups keyed by
// breed, guide year and age in days.
type GuideReference struct {
	Breed   string `json:"breed"`
	Year    int    `json:"year"`
	AgeDays int    `json:"age_days"`

	Weight      float64 `json:"weight"`
	FeedPerBird float64 `json:"feed_per_bird"`
	Uniformity  float64 `json:"uniformity"`
	Mortality   float64 `json:"mortality"`
}
