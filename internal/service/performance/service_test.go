package performance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/granjasoft/avicore/internal/domain/models"
	"github.com/granjasoft/avicore/internal/repository/mongodb"
)

type fakeRepo struct {
	lots    map[string]models.Lot
	records map[string][]models.DailyRecord

	insertedRecords []models.DailyRecord
	recordsErr      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		lots:    make(map[string]models.Lot),
		records: make(map[string][]models.DailyRecord),
	}
}

func (f *fakeRepo) FetchLot(_ context.Context, lotID string) (*models.Lot, error) {
	lot, ok := f.lots[lotID]
	if !ok {
		return nil, mongodb.ErrLotNotFound
	}
	return &lot, nil
}

func (f *fakeRepo) ListActiveLots(_ context.Context) ([]models.Lot, error) {
	var lots []models.Lot
	for _, lot := range f.lots {
		if lot.Active {
			lots = append(lots, lot)
		}
	}
	return lots, nil
}

func (f *fakeRepo) FetchRecords(_ context.Context, lotID string, _, _ *time.Time) ([]models.DailyRecord, error) {
	if f.recordsErr != nil {
		return nil, f.recordsErr
	}
	return f.records[lotID], nil
}

func (f *fakeRepo) InsertDailyRecord(_ context.Context, record models.DailyRecord) (string, error) {
	f.insertedRecords = append(f.insertedRecords, record)
	return "rec-1", nil
}

type fakeGuide struct {
	refs  map[int]*models.GuideReference
	err   error
	calls int
}

func (f *fakeGuide) Lookup(_ context.Context, breed string, year, ageDays int) (*models.GuideReference, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.refs[ageDays], nil
}

type fakeExporter struct {
	ranges []string
	rows   [][][]interface{}
	err    error
}

func (f *fakeExporter) AppendRows(_ context.Context, sheetRange string, rows [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.ranges = append(f.ranges, sheetRange)
	f.rows = append(f.rows, rows)
	return nil
}

func testLot(id string) models.Lot {
	return models.Lot{
		ID:             id,
		Phase:          models.PhaseRearing,
		PlacementDate:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		InitialFemales: 1000,
		InitialMales:   100,
		Breed:          "cobb500",
		GuideYear:      2023,
		Active:         true,
	}
}

func testRecords(lotID string) []models.DailyRecord {
	records := make([]models.DailyRecord, 0, 7)
	for i := 0; i < 7; i++ {
		records = append(records, models.DailyRecord{
			LotID:            lotID,
			Date:             time.Date(2024, time.January, 1+i, 0, 0, 0, 0, time.UTC),
			MortalityFemales: 2,
			FeedKgFemales:    20,
		})
	}
	return records
}

func TestWeeklyIndicators_ComputesSeries(t *testing.T) {
	repo := newFakeRepo()
	repo.lots["lot-1"] = testLot("lot-1")
	repo.records["lot-1"] = testRecords("lot-1")

	svc := NewService(repo, nil, nil, nil)

	result, err := svc.WeeklyIndicators(context.Background(), "lot-1")
	if err != nil {
		t.Fatalf("WeeklyIndicators failed: %v", err)
	}
	if len(result.Weeks) != 1 {
		t.Fatalf("expected 1 week, got %d", len(result.Weeks))
	}
	if result.Weeks[0].Females.PopulationEnd != 986 {
		t.Errorf("expected population end 986, got %d", result.Weeks[0].Females.PopulationEnd)
	}
	if result.Lot.ID != "lot-1" {
		t.Errorf("expected lot metadata on the result")
	}
}

func TestWeeklyIndicators_RecordFetchFailurePropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.lots["lot-1"] = testLot("lot-1")
	repo.recordsErr = errors.New("cursor timeout")

	svc := NewService(repo, nil, nil, nil)

	_, err := svc.WeeklyIndicators(context.Background(), "lot-1")
	if !errors.Is(err, repo.recordsErr) {
		t.Errorf("expected store failure to propagate, got %v", err)
	}
}

func TestWeeklyIndicators_UnknownLot(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, nil)

	_, err := svc.WeeklyIndicators(context.Background(), "missing")
	if !errors.Is(err, mongodb.ErrLotNotFound) {
		t.Errorf("expected ErrLotNotFound, got %v", err)
	}
}

func TestWeeklyIndicators_GuideFailureDegradesToMissing(t *testing.T) {
	repo := newFakeRepo()
	repo.lots["lot-1"] = testLot("lot-1")
	repo.records["lot-1"] = testRecords("lot-1")

	guide := &fakeGuide{err: errors.New("guide api down")}
	svc := NewService(repo, guide, nil, nil)

	result, err := svc.WeeklyIndicators(context.Background(), "lot-1")
	if err != nil {
		t.Fatalf("expected degraded computation, got error: %v", err)
	}
	if guide.calls == 0 {
		t.Fatalf("guide client was never called")
	}
	for _, week := range result.Weeks {
		if week.Guide != nil {
			t.Errorf("expected no guide fields after lookup failure")
		}
	}
}

func TestWeeklyIndicators_GuideAttached(t *testing.T) {
	repo := newFakeRepo()
	repo.lots["lot-1"] = testLot("lot-1")
	repo.records["lot-1"] = testRecords("lot-1")

	guide := &fakeGuide{refs: map[int]*models.GuideReference{
		1: {Breed: "cobb500", Year: 2023, AgeDays: 1, Weight: 120},
	}}
	svc := NewService(repo, guide, nil, nil)

	result, err := svc.WeeklyIndicators(context.Background(), "lot-1")
	if err != nil {
		t.Fatalf("WeeklyIndicators failed: %v", err)
	}
	if result.Weeks[0].Guide == nil {
		t.Fatalf("expected guide comparison on week 1")
	}
	if result.Weeks[0].Guide.Reference.Weight != 120 {
		t.Errorf("expected guide weight 120, got %f", result.Weeks[0].Guide.Reference.Weight)
	}
}

func TestSeries_UsesPhaseDefaults(t *testing.T) {
	repo := newFakeRepo()
	repo.lots["lot-1"] = testLot("lot-1")
	repo.records["lot-1"] = testRecords("lot-1")

	svc := NewService(repo, nil, nil, nil)

	result, err := svc.Series(context.Background(), "lot-1", nil)
	if err != nil {
		t.Fatalf("Series failed: %v", err)
	}
	if len(result.Series) == 0 {
		t.Fatalf("expected default series set")
	}
	for _, s := range result.Series {
		if len(s.Points) != 1 {
			t.Errorf("series %s should have 1 point per week, got %d", s.Key, len(s.Points))
		}
		if s.Key == "eggs_total" {
			t.Errorf("rearing lot must not project egg series")
		}
	}
}

func TestAddDailyRecord_Validation(t *testing.T) {
	repo := newFakeRepo()
	repo.lots["lot-1"] = testLot("lot-1")
	svc := NewService(repo, nil, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		record models.DailyRecord
	}{
		{"missing date", models.DailyRecord{MortalityFemales: 1}},
		{"before placement", models.DailyRecord{Date: time.Date(2023, time.December, 20, 0, 0, 0, 0, time.UTC)}},
		{"negative count", models.DailyRecord{Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), MortalityFemales: -1}},
		{"negative feed", models.DailyRecord{Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), FeedKgMales: -0.5}},
	}

	for _, c := range cases {
		if _, err := svc.AddDailyRecord(ctx, "lot-1", c.record); !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("%s: expected ErrInvalidRecord, got %v", c.name, err)
		}
	}

	if len(repo.insertedRecords) != 0 {
		t.Errorf("invalid records must not reach the store")
	}
}

func TestAddDailyRecord_StoresValidRecord(t *testing.T) {
	repo := newFakeRepo()
	repo.lots["lot-1"] = testLot("lot-1")
	svc := NewService(repo, nil, nil, nil)

	record := models.DailyRecord{
		Date:             time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		MortalityFemales: 3,
		FeedKgFemales:    18.5,
	}

	id, err := svc.AddDailyRecord(context.Background(), "lot-1", record)
	if err != nil {
		t.Fatalf("AddDailyRecord failed: %v", err)
	}
	if id != "rec-1" {
		t.Errorf("expected stored record id, got %q", id)
	}
	if len(repo.insertedRecords) != 1 || repo.insertedRecords[0].LotID != "lot-1" {
		t.Errorf("record not stored with lot id: %+v", repo.insertedRecords)
	}
}

func TestExportLot_AppendsOneRowPerWeek(t *testing.T) {
	repo := newFakeRepo()
	repo.lots["lot-1"] = testLot("lot-1")
	repo.records["lot-1"] = append(testRecords("lot-1"), models.DailyRecord{
		LotID:            "lot-1",
		Date:             time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		MortalityFemales: 1,
	})

	exporter := &fakeExporter{}
	svc := NewService(repo, nil, exporter, nil)

	if err := svc.ExportLot(context.Background(), repo.lots["lot-1"]); err != nil {
		t.Fatalf("ExportLot failed: %v", err)
	}
	if len(exporter.rows) != 1 || len(exporter.rows[0]) != 2 {
		t.Fatalf("expected one append with 2 rows, got %+v", exporter.rows)
	}
	if exporter.ranges[0] != exportRange {
		t.Errorf("unexpected export range %q", exporter.ranges[0])
	}
}

func TestExportActiveLots_ContinuesPastFailingLot(t *testing.T) {
	repo := newFakeRepo()
	broken := testLot("broken")
	broken.PlacementDate = time.Time{}
	repo.lots["broken"] = broken
	repo.lots["lot-1"] = testLot("lot-1")
	repo.records["lot-1"] = testRecords("lot-1")

	exporter := &fakeExporter{}
	svc := NewService(repo, nil, exporter, nil)

	if err := svc.ExportActiveLots(context.Background()); err != nil {
		t.Fatalf("ExportActiveLots failed: %v", err)
	}
	if len(exporter.rows) != 1 {
		t.Errorf("expected the healthy lot to export despite the broken one, got %d appends", len(exporter.rows))
	}
}
