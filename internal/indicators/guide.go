package indicators

import (
	"context"

	"github.com/granjasoft/avicore/internal/domain/models"
)

// GuideLookup resolves the genetic reference row for a breed, guide year and
// exact age in days. A nil reference with a nil error means no guide exists
// for that key, which is never an error: the row stays usable without
// deviations. A non-nil error aborts the computation and is meant for
// infrastructure failures, not missing data.
type GuideLookup func(ctx context.Context, breed string, year, ageDays int) (*models.GuideReference, error)

type guideKey struct {
	breed   string
	year    int
	ageDays int
}

// memoizeGuide caches lookups so an I/O-backed source is called at most once
// per distinct (breed, year, age) within one computation. Negative results
// are cached too.
func memoizeGuide(lookup GuideLookup) GuideLookup {
	cache := make(map[guideKey]*models.GuideReference)
	hit := make(map[guideKey]bool)

	return func(ctx context.Context, breed string, year, ageDays int) (*models.GuideReference, error) {
		key := guideKey{breed: breed, year: year, ageDays: ageDays}
		if hit[key] {
			return cache[key], nil
		}
		ref, err := lookup(ctx, breed, year, ageDays)
		if err != nil {
			return nil, err
		}
		cache[key] = ref
		hit[key] = true
		return ref, nil
	}
}

// compareGuide attaches the reference and the per-field deviations to a row.
// Deviations compare the female side, which drives the reference curves. A
// zero guide value or a missing actual leaves that deviation nil.
func compareGuide(row *models.WeeklyIndicator, ref *models.GuideReference) {
	if ref == nil {
		return
	}

	cmp := &models.GuideComparison{Reference: *ref}

	if row.Females.Weight != nil {
		cmp.WeightDevPct = deviationPct(*row.Females.Weight, ref.Weight)
	}
	cmp.FeedDevPct = deviationPct(row.Females.FeedConversion, ref.FeedPerBird)
	if row.Females.Uniformity != nil {
		cmp.UniformityDevPct = deviationPct(*row.Females.Uniformity, ref.Uniformity)
	}
	cmp.MortalityDevPct = deviationPct(row.Females.MortalityPct, ref.Mortality)

	row.Guide = cmp
}

// deviationPct returns (actual-guide)/guide*100, or nil when the guide value
// is zero: against a zero reference the deviation is not comparable, which
// is different from being zero.
func deviationPct(actual, guide float64) *float64 {
	if guide == 0 {
		return nil
	}
	dev := (actual - guide) / guide * 100
	return &dev
}
