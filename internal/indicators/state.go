package indicators

import "github.com/granjasoft/avicore/internal/domain/models"

// runningState is the fold state carried left-to-right over ascending weeks:
// the surviving population per sex and the cumulative totals to date. Weeks
// with no records never reach the fold, so the population carries straight
// from the last existing week to the next.
type runningState struct {
	PopFemales int
	PopMales   int

	CumMortalityFemales int
	CumMortalityMales   int
	CumSelectedFemales  int
	CumSelectedMales    int
	CumErrorFemales     int
	CumErrorMales       int

	CumFeedKgFemales float64
	CumFeedKgMales   float64

	CumEggsTotal     int
	CumEggsIncubable int
}

func newRunningState(lot models.Lot) runningState {
	return runningState{
		PopFemales: lot.InitialFemales,
		PopMales:   lot.InitialMales,
	}
}

// weekOutcome is what one fold step produces besides the mutated state.
type weekOutcome struct {
	StartFemales int
	StartMales   int
	EndFemales   int
	EndMales     int
	Anomaly      bool
}

// advance applies one week's losses to the running population and folds the
// week's sums into the cumulative totals. Sexing errors count as losses only
// when the phase tracks them. If losses exceed the running population the
// result floors at zero and the outcome is flagged; the fold never aborts.
func (s *runningState) advance(agg weekAggregate, errorsApply bool) weekOutcome {
	out := weekOutcome{
		StartFemales: s.PopFemales,
		StartMales:   s.PopMales,
	}

	lossF := agg.MortalityFemales + agg.SelectedFemales
	lossM := agg.MortalityMales + agg.SelectedMales
	if errorsApply {
		lossF += agg.ErrorFemales
		lossM += agg.ErrorMales
	}

	out.EndFemales = out.StartFemales - lossF
	out.EndMales = out.StartMales - lossM
	if out.EndFemales < 0 {
		out.EndFemales = 0
		out.Anomaly = true
	}
	if out.EndMales < 0 {
		out.EndMales = 0
		out.Anomaly = true
	}

	s.PopFemales = out.EndFemales
	s.PopMales = out.EndMales

	s.CumMortalityFemales += agg.MortalityFemales
	s.CumMortalityMales += agg.MortalityMales
	s.CumSelectedFemales += agg.SelectedFemales
	s.CumSelectedMales += agg.SelectedMales
	s.CumErrorFemales += agg.ErrorFemales
	s.CumErrorMales += agg.ErrorMales
	s.CumFeedKgFemales += agg.FeedKgFemales
	s.CumFeedKgMales += agg.FeedKgMales
	s.CumEggsTotal += agg.EggsTotal
	s.CumEggsIncubable += agg.EggsIncubable

	return out
}
