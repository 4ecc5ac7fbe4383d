package performance

import (
	"strings"
	"testing"
	"time"

	"github.com/granjasoft/avicore/internal/domain/models"
)

func TestExportRow_WidthMatchesSheetRange(t *testing.T) {
	// The append range ends at column R; the row must fill exactly A..R.
	if !strings.HasSuffix(exportRange, "!A:R") {
		t.Fatalf("export range changed to %q, update this test and exportRow together", exportRange)
	}
	const wantColumns = 18 // A..R

	row := exportRow(testLot("lot-1"), models.WeeklyIndicator{
		Week:        1,
		PeriodStart: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})
	if len(row) != wantColumns {
		t.Errorf("exportRow has %d columns, range expects %d", len(row), wantColumns)
	}
}

func TestExportRow_AnomalyMarkerAndOptionals(t *testing.T) {
	weight := 152.5
	week := models.WeeklyIndicator{
		Week:              2,
		PeriodStart:       time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
		PopulationAnomaly: true,
		Females:           models.SexIndicators{Weight: &weight},
	}

	row := exportRow(testLot("lot-1"), week)
	if row[len(row)-1] != "ANOMALY" {
		t.Errorf("expected anomaly marker in last column, got %v", row[len(row)-1])
	}
	if row[15] != 152.5 {
		t.Errorf("expected observed weight exported, got %v", row[15])
	}

	week.PopulationAnomaly = false
	week.Females.Weight = nil
	row = exportRow(testLot("lot-1"), week)
	if row[len(row)-1] != "" {
		t.Errorf("expected empty marker without anomaly, got %v", row[len(row)-1])
	}
	if row[15] != "" {
		t.Errorf("unobserved weight must export as empty cell, got %v", row[15])
	}
}
