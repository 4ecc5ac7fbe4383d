package models

import "time"

// DailyRecord is one field observation for a lot on one date. Counts and feed
// are additive within a week; weight, uniformity and coefficient of variation
// are point-in-time measurements where the latest observation wins. Optional
// measurements use pointers so "not observed" is distinguishable from zero.
type DailyRecord struct {
	ID    string    `bson:"-" json:"id,omitempty"`
	LotID string    `bson:"lot_id" json:"lot_id"`
	Date  time.Time `bson:"date" json:"date"`

	MortalityFemales int `bson:"mortality_females" json:"mortality_females"`
	MortalityMales   int `bson:"mortality_males" json:"mortality_males"`
	SelectedFemales  int `bson:"selected_females" json:"selected_females"`
	SelectedMales    int `bson:"selected_males" json:"selected_males"`
	ErrorFemales     int `bson:"error_females" json:"error_females"`
	ErrorMales       int `bson:"error_males" json:"error_males"`

	FeedKgFemales float64 `bson:"feed_kg_females" json:"feed_kg_females"`
	FeedKgMales   float64 `bson:"feed_kg_males" json:"feed_kg_males"`

	WeightFemales     *float64 `bson:"weight_females,omitempty" json:"weight_females,omitempty"`
	WeightMales       *float64 `bson:"weight_males,omitempty" json:"weight_males,omitempty"`
	UniformityFemales *float64 `bson:"uniformity_females,omitempty" json:"uniformity_females,omitempty"`
	UniformityMales   *float64 `bson:"uniformity_males,omitempty" json:"uniformity_males,omitempty"`
	CvFemales         *float64 `bson:"cv_females,omitempty" json:"cv_females,omitempty"`
	CvMales           *float64 `bson:"cv_males,omitempty" json:"cv_males,omitempty"`

	EggsTotal     int `bson:"eggs_total" json:"eggs_total"`
	EggsIncubable int `bson:"eggs_incubable" json:"eggs_incubable"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
