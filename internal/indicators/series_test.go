package indicators

import (
	"testing"
	"time"

	"github.com/granjasoft/avicore/internal/domain/models"
)

func sampleRows() []models.WeeklyIndicator {
	w1 := 105.0
	return []models.WeeklyIndicator{
		{
			Week:        1,
			PeriodStart: date(2024, time.January, 1),
			Females:     models.SexIndicators{FeedConversion: 141.987, MortalityPct: 1.4, Weight: &w1},
		},
		{
			Week:        3,
			PeriodStart: date(2024, time.January, 15),
			Females:     models.SexIndicators{FeedConversion: 150.5, MortalityPct: 0.8},
		},
	}
}

func TestProjectSeries_ValuesVerbatim(t *testing.T) {
	series := ProjectSeries(sampleRows(), SpecsByKey(models.PhaseRearing, []string{"feed_conversion_females"}))
	if len(series) != 1 {
		t.Fatalf("expected 1 series, got %d", len(series))
	}

	s := series[0]
	if s.Name != "Feed Conversion" || s.Kind != models.ChartLine {
		t.Errorf("unexpected series metadata: %+v", s)
	}
	if len(s.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(s.Points))
	}
	if s.Points[0].Week != 1 || *s.Points[0].Value != 141.987 {
		t.Errorf("point 0 not copied verbatim: %+v", s.Points[0])
	}
	if s.Points[1].Week != 3 || *s.Points[1].Value != 150.5 {
		t.Errorf("point 1 not copied verbatim: %+v", s.Points[1])
	}
}

func TestProjectSeries_MissingValuesStayNil(t *testing.T) {
	series := ProjectSeries(sampleRows(), SpecsByKey(models.PhaseRearing, []string{"weight_females"}))
	points := series[0].Points

	if points[0].Value == nil || *points[0].Value != 105.0 {
		t.Errorf("expected observed weight 105.0, got %v", points[0].Value)
	}
	if points[1].Value != nil {
		t.Errorf("week without weight must project nil, got %v", *points[1].Value)
	}
}

func TestDefaultSpecs_ProductionAddsEggSeries(t *testing.T) {
	rearing := DefaultSpecs(models.PhaseRearing)
	production := DefaultSpecs(models.PhaseProduction)

	if len(production) != len(rearing)+2 {
		t.Fatalf("expected production to add 2 egg series, got %d vs %d", len(production), len(rearing))
	}
	for _, spec := range rearing {
		if spec.Key == "eggs_total" {
			t.Errorf("rearing specs must not include egg series")
		}
	}
}

func TestSpecsByKey_UnknownKeysIgnored(t *testing.T) {
	specs := SpecsByKey(models.PhaseRearing, []string{"mortality_pct_females", "no_such_series"})
	if len(specs) != 1 || specs[0].Key != "mortality_pct_females" {
		t.Errorf("expected only the known key, got %+v", specs)
	}
}
