package indicators

import (
	"context"
	"errors"
	"fmt"

	"github.com/granjasoft/avicore/internal/domain/models"
)

// ErrInvalidLot marks cohort metadata the engine cannot work with. Unlike
// record-level problems this aborts the whole computation: without a
// placement date no age math is possible.
var ErrInvalidLot = errors.New("invalid lot metadata")

// Options tunes one computation run.
type Options struct {
	// Phase overrides the lot's phase when set. Normally left empty.
	Phase models.Phase
	// Guide resolves genetic reference rows. Nil disables the comparison;
	// every guide field stays nil and nothing else changes.
	Guide GuideLookup
}

// Result is the full output of one computation: one row per week that has
// records, plus the side channel of excluded records.
type Result struct {
	Weeks   []models.WeeklyIndicator `json:"weeks"`
	Skipped []SkippedRecord          `json:"skipped,omitempty"`
}

// Compute turns a lot's full record set into its weekly indicator series.
// The computation is a pure left-fold: records are bucketed by age week,
// each bucket is reduced, and the running population and cumulative totals
// advance week over week. Recomputing with the same inputs yields the same
// rows; callers must always pass the complete record set, never a delta.
func Compute(ctx context.Context, records []models.DailyRecord, lot models.Lot, opts Options) (Result, error) {
	if err := validateLot(lot); err != nil {
		return Result{}, err
	}

	phase := opts.Phase
	if phase == "" {
		phase = lot.Phase
	}
	if !phase.Valid() {
		return Result{}, fmt.Errorf("%w: unknown phase %q", ErrInvalidLot, phase)
	}
	fields := fieldsFor(phase)

	lookup := opts.Guide
	if lookup != nil {
		lookup = memoizeGuide(lookup)
	}

	aggregates, skipped := bucketRecords(records, lot.PlacementDate)

	state := newRunningState(lot)
	weeks := make([]models.WeeklyIndicator, 0, len(aggregates))

	for _, agg := range aggregates {
		outcome := state.advance(agg, fields.errorsApply)

		row := models.WeeklyIndicator{
			Week:              agg.Week,
			PeriodStart:       agg.PeriodStart,
			AgeDays:           agg.AgeDays,
			PopulationAnomaly: outcome.Anomaly,
			Females: buildSexIndicators(sexInputs{
				start:             outcome.StartFemales,
				end:               outcome.EndFemales,
				mortality:         agg.MortalityFemales,
				selected:          agg.SelectedFemales,
				errors:            agg.ErrorFemales,
				feedKg:            agg.FeedKgFemales,
				cumMortality:      state.CumMortalityFemales,
				cumSelected:       state.CumSelectedFemales,
				cumErrors:         state.CumErrorFemales,
				cumFeedKg:         state.CumFeedKgFemales,
				weight:            agg.WeightFemales,
				uniformity:        agg.UniformityFemales,
				cv:                agg.CvFemales,
				productivityValue: fields.productivityNumerator(agg, true),
			}, fields),
			Males: buildSexIndicators(sexInputs{
				start:             outcome.StartMales,
				end:               outcome.EndMales,
				mortality:         agg.MortalityMales,
				selected:          agg.SelectedMales,
				errors:            agg.ErrorMales,
				feedKg:            agg.FeedKgMales,
				cumMortality:      state.CumMortalityMales,
				cumSelected:       state.CumSelectedMales,
				cumErrors:         state.CumErrorMales,
				cumFeedKg:         state.CumFeedKgMales,
				weight:            agg.WeightMales,
				uniformity:        agg.UniformityMales,
				cv:                agg.CvMales,
				productivityValue: fields.productivityNumerator(agg, false),
			}, fields),
		}

		if fields.eggsApply {
			row.EggsTotal = agg.EggsTotal
			row.EggsIncubable = agg.EggsIncubable
			row.CumEggsTotal = state.CumEggsTotal
			row.CumEggsIncubable = state.CumEggsIncubable
		}

		if lookup != nil && lot.Breed != "" {
			ref, err := lookup(ctx, lot.Breed, lot.GuideYear, agg.AgeDays)
			if err != nil {
				return Result{}, fmt.Errorf("guide lookup for week %d: %w", agg.Week, err)
			}
			compareGuide(&row, ref)
		}

		weeks = append(weeks, row)
	}

	return Result{Weeks: weeks, Skipped: skipped}, nil
}

func validateLot(lot models.Lot) error {
	if lot.PlacementDate.IsZero() {
		return fmt.Errorf("%w: placement date missing", ErrInvalidLot)
	}
	if lot.InitialFemales < 0 || lot.InitialMales < 0 {
		return fmt.Errorf("%w: negative initial counts", ErrInvalidLot)
	}
	return nil
}
