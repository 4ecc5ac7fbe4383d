package indicators

import "github.com/granjasoft/avicore/internal/domain/models"

const gramsPerKg = 1000.0

// fieldSet describes how a phase variant parameterizes the shared
// calculator: whether sexing errors count, whether egg fields apply, and
// what feeds the productivity numerator. Rearing and production share one
// calculator shape; only this descriptor differs.
type fieldSet struct {
	errorsApply bool
	eggsApply   bool
	// productivityNumerator picks the value that stands in for growth in the
	// productivity index: body weight while rearing, egg output in
	// production.
	productivityNumerator func(agg weekAggregate, female bool) float64
}

func fieldsFor(phase models.Phase) fieldSet {
	if phase == models.PhaseProduction {
		return fieldSet{
			errorsApply: false,
			eggsApply:   true,
			productivityNumerator: func(agg weekAggregate, _ bool) float64 {
				return float64(agg.EggsTotal)
			},
		}
	}
	return fieldSet{
		errorsApply: true,
		eggsApply:   false,
		productivityNumerator: func(agg weekAggregate, female bool) float64 {
			w := agg.WeightMales
			if female {
				w = agg.WeightFemales
			}
			if w == nil {
				return 0
			}
			return *w
		},
	}
}

// pct returns part/whole*100, or 0 when the denominator is zero. Business
// data with an empty population yields zeros, never NaN or Inf.
func pct(part float64, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return part / float64(whole) * 100
}

// perBird divides grams by the surviving population, treating an empty
// population as one bird so the figure stays finite.
func perBird(grams float64, population int) float64 {
	if population < 1 {
		population = 1
	}
	return grams / float64(population)
}

func efficiencyOf(numerator, feedConversion float64) float64 {
	if feedConversion <= 0 {
		return 0
	}
	return numerator / feedConversion / 10
}

func productivityOf(numerator, feedConversion float64) float64 {
	if feedConversion <= 0 {
		return 0
	}
	return efficiencyOf(numerator, feedConversion) / feedConversion
}

type sexInputs struct {
	start, end          int
	mortality, selected int
	errors              int
	feedKg              float64
	cumMortality        int
	cumSelected         int
	cumErrors           int
	cumFeedKg           float64
	weight              *float64
	uniformity          *float64
	cv                  *float64
	productivityValue   float64
}

// buildSexIndicators derives one sex's weekly figures from the aggregate and
// the running state. Weekly feed intake is recorded in kilograms but the
// conversion and per-bird figures are grams per bird; the kg-to-g switch
// happens here and nowhere else.
func buildSexIndicators(in sexInputs, fields fieldSet) models.SexIndicators {
	feedConversion := perBird(in.feedKg*gramsPerKg, in.end)

	weight := 0.0
	if in.weight != nil {
		weight = *in.weight
	}

	out := models.SexIndicators{
		PopulationStart: in.start,
		PopulationEnd:   in.end,

		Mortality: in.mortality,
		Selected:  in.selected,
		FeedKg:    in.feedKg,

		MortalityPct: pct(float64(in.mortality), in.start),
		SelectedPct:  pct(float64(in.selected), in.start),

		CumMortality: in.cumMortality,
		CumSelected:  in.cumSelected,
		CumFeedKg:    in.cumFeedKg,

		Weight:     in.weight,
		Uniformity: in.uniformity,
		Cv:         in.cv,

		FeedConversion: feedConversion,
		CumFeedPerBird: perBird(in.cumFeedKg*gramsPerKg, in.end),
		Efficiency:     efficiencyOf(weight, feedConversion),
		Productivity:   productivityOf(in.productivityValue, feedConversion),
	}

	if fields.errorsApply {
		out.Errors = in.errors
		out.ErrorPct = pct(float64(in.errors), in.start)
		out.CumErrors = in.cumErrors
	}

	return out
}
