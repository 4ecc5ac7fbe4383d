package indicators

import (
	"sort"
	"time"

	"github.com/granjasoft/avicore/internal/domain/models"
)

// SkippedRecord reports a record that was excluded from the computation,
// together with the reason. Skipped records are a side channel: the rest of
// the series is computed as if they were never in the input.
type SkippedRecord struct {
	Record models.DailyRecord `json:"record"`
	Reason string             `json:"reason"`
}

// weekAggregate is the reduction of all records falling into one age week.
// Counts and feed are summed; weight, uniformity and CV carry the last
// observed value of the week.
type weekAggregate struct {
	Week        int
	AgeDays     int
	PeriodStart time.Time

	MortalityFemales int
	MortalityMales   int
	SelectedFemales  int
	SelectedMales    int
	ErrorFemales     int
	ErrorMales       int

	FeedKgFemales float64
	FeedKgMales   float64

	WeightFemales     *float64
	WeightMales       *float64
	UniformityFemales *float64
	UniformityMales   *float64
	CvFemales         *float64
	CvMales           *float64

	EggsTotal     int
	EggsIncubable int
}

type taggedRecord struct {
	rec   models.DailyRecord
	index int
	days  int
	week  int
}

// bucketRecords assigns every record an age week, drops records that predate
// placement (reporting them), and reduces each week's records in ascending
// date order. Weeks without records produce no aggregate: gaps are not
// zero-filled. Input order is irrelevant except as a stable tie-breaker for
// same-date records.
func bucketRecords(records []models.DailyRecord, placementDate time.Time) ([]weekAggregate, []SkippedRecord) {
	tagged := make([]taggedRecord, 0, len(records))
	var skipped []SkippedRecord

	for i, rec := range records {
		days, err := ageDays(rec.Date, placementDate)
		if err != nil {
			skipped = append(skipped, SkippedRecord{Record: rec, Reason: err.Error()})
			continue
		}
		tagged = append(tagged, taggedRecord{rec: rec, index: i, days: days, week: ageWeek(days)})
	}

	sort.SliceStable(tagged, func(a, b int) bool {
		if tagged[a].week != tagged[b].week {
			return tagged[a].week < tagged[b].week
		}
		da, db := truncateToDay(tagged[a].rec.Date), truncateToDay(tagged[b].rec.Date)
		if !da.Equal(db) {
			return da.Before(db)
		}
		return tagged[a].index < tagged[b].index
	})

	var aggregates []weekAggregate
	for _, t := range tagged {
		if len(aggregates) == 0 || aggregates[len(aggregates)-1].Week != t.week {
			aggregates = append(aggregates, weekAggregate{
				Week:        t.week,
				AgeDays:     weekStartAgeDays(t.week),
				PeriodStart: weekStartDate(placementDate, t.week),
			})
		}
		reduceInto(&aggregates[len(aggregates)-1], t.rec)
	}

	return aggregates, skipped
}

func reduceInto(agg *weekAggregate, rec models.DailyRecord) {
	agg.MortalityFemales += rec.MortalityFemales
	agg.MortalityMales += rec.MortalityMales
	agg.SelectedFemales += rec.SelectedFemales
	agg.SelectedMales += rec.SelectedMales
	agg.ErrorFemales += rec.ErrorFemales
	agg.ErrorMales += rec.ErrorMales

	agg.FeedKgFemales += rec.FeedKgFemales
	agg.FeedKgMales += rec.FeedKgMales

	agg.EggsTotal += rec.EggsTotal
	agg.EggsIncubable += rec.EggsIncubable

	// Records arrive in ascending date order here, so overwriting yields
	// last-observed-wins. Values are copied so output rows never alias the
	// caller's records.
	agg.WeightFemales = copyValue(rec.WeightFemales, agg.WeightFemales)
	agg.WeightMales = copyValue(rec.WeightMales, agg.WeightMales)
	agg.UniformityFemales = copyValue(rec.UniformityFemales, agg.UniformityFemales)
	agg.UniformityMales = copyValue(rec.UniformityMales, agg.UniformityMales)
	agg.CvFemales = copyValue(rec.CvFemales, agg.CvFemales)
	agg.CvMales = copyValue(rec.CvMales, agg.CvMales)
}

func copyValue(observed, current *float64) *float64 {
	if observed == nil {
		return current
	}
	v := *observed
	return &v
}
