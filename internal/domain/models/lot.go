package models

import "time"

// Phase identifies which tracking variant applies to a lot.
type Phase string

const (
	// PhaseRearing covers early-life tracking: mortality, selection, sexing
	// errors, body weight and feed.
	PhaseRearing Phase = "rearing"
	// PhaseProduction covers the laying period: mortality, feed and egg counts.
	PhaseProduction Phase = "production"
)

// Valid reports whether the phase is one of the supported variants.
func (p Phase) Valid() bool {
	return p == PhaseRearing || p == PhaseProduction
}

// Lot holds the static cohort facts needed for age math and normalization.
// PlacementDate is fixed for the lot's lifetime; all age calculations hang
// off it.
type Lot struct {
	ID             string    `bson:"-" json:"id"`
	FarmName       string    `bson:"farm_name" json:"farm_name"`
	HouseName      string    `bson:"house_name" json:"house_name"`
	Phase          Phase     `bson:"phase" json:"phase"`
	PlacementDate  time.Time `bson:"placement_date" json:"placement_date"`
	InitialFemales int       `bson:"initial_females" json:"initial_females"`
	InitialMales   int       `bson:"initial_males" json:"initial_males"`
	Breed          string    `bson:"breed,omitempty" json:"breed,omitempty"`
	GuideYear      int       `bson:"guide_year,omitempty" json:"guide_year,omitempty"`
	Active         bool      `bson:"active" json:"active"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
