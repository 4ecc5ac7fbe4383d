package performance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/granjasoft/avicore/internal/domain/models"
	"github.com/granjasoft/avicore/internal/indicators"
	"github.com/granjasoft/avicore/internal/repository/mongodb"
	"github.com/granjasoft/avicore/internal/repository/sheets"
	guideclient "github.com/granjasoft/avicore/pkg/clients/guide"
)

// ErrInvalidRecord marks a daily record rejected at intake.
var ErrInvalidRecord = errors.New("invalid daily record")

const exportRange = "Indicators!A:R"

// Service orchestrates the indicator engine with its collaborators: the lot
// and record store, the genetic-guide API and the export sheet. The engine
// itself stays pure; every computation here runs on a fresh full snapshot of
// the lot's records.
type Service struct {
	repo     mongodb.Repository
	guide    guideclient.Client
	exporter sheets.Exporter
	logger   *zap.Logger
}

// NewService wires a new performance service instance. guide and exporter
// may be nil when the respective integrations are not configured.
func NewService(repo mongodb.Repository, guide guideclient.Client, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, guide: guide, exporter: exporter, logger: logger}
}

// LotIndicators is the full computed view for one lot.
type LotIndicators struct {
	Lot     models.Lot                 `json:"lot"`
	Weeks   []models.WeeklyIndicator   `json:"weeks"`
	Skipped []indicators.SkippedRecord `json:"skipped,omitempty"`
}

// WeeklyIndicators fetches a lot with its complete record set and computes
// the weekly indicator series.
func (s *Service) WeeklyIndicators(ctx context.Context, lotID string) (*LotIndicators, error) {
	lot, err := s.repo.FetchLot(ctx, lotID)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FetchRecords(ctx, lotID, nil, nil)
	if err != nil {
		return nil, err
	}

	result, err := indicators.Compute(ctx, records, *lot, indicators.Options{Guide: s.guideLookup(*lot)})
	if err != nil {
		return nil, fmt.Errorf("compute indicators for lot %s: %w", lotID, err)
	}

	if len(result.Skipped) > 0 {
		s.logger.Warn("records excluded from computation",
			zap.String("lot_id", lotID),
			zap.Int("count", len(result.Skipped)))
	}

	return &LotIndicators{Lot: *lot, Weeks: result.Weeks, Skipped: result.Skipped}, nil
}

// LotSeries is the chart-ready projection for one lot.
type LotSeries struct {
	Lot    models.Lot           `json:"lot"`
	Series []models.NamedSeries `json:"series"`
}

// Series computes the lot's indicators and projects them into the requested
// named series. An empty key list yields the default chart set for the lot's
// phase.
func (s *Service) Series(ctx context.Context, lotID string, keys []string) (*LotSeries, error) {
	computed, err := s.WeeklyIndicators(ctx, lotID)
	if err != nil {
		return nil, err
	}

	specs := indicators.SpecsByKey(computed.Lot.Phase, keys)
	return &LotSeries{
		Lot:    computed.Lot,
		Series: indicators.ProjectSeries(computed.Weeks, specs),
	}, nil
}

// AddDailyRecord validates and stores one field observation. The indicator
// series is not recomputed inline; readers always recompute from the full
// snapshot.
func (s *Service) AddDailyRecord(ctx context.Context, lotID string, record models.DailyRecord) (string, error) {
	lot, err := s.repo.FetchLot(ctx, lotID)
	if err != nil {
		return "", err
	}

	record.LotID = lot.ID
	if err := validateRecord(record, *lot); err != nil {
		return "", err
	}

	id, err := s.repo.InsertDailyRecord(ctx, record)
	if err != nil {
		return "", err
	}

	s.logger.Info("daily record stored",
		zap.String("lot_id", lotID),
		zap.String("record_id", id),
		zap.Time("date", record.Date))
	return id, nil
}

// ExportLot recomputes a lot's series and appends one row per week to the
// export sheet.
func (s *Service) ExportLot(ctx context.Context, lot models.Lot) error {
	if s.exporter == nil {
		return errors.New("sheet export is not configured")
	}

	computed, err := s.WeeklyIndicators(ctx, lot.ID)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(computed.Weeks))
	for _, week := range computed.Weeks {
		rows = append(rows, exportRow(lot, week))
	}

	if err := s.exporter.AppendRows(ctx, exportRange, rows); err != nil {
		return fmt.Errorf("export lot %s: %w", lot.ID, err)
	}

	s.logger.Info("lot exported",
		zap.String("lot_id", lot.ID),
		zap.Int("weeks", len(rows)))
	return nil
}

// ExportActiveLots runs the sheet export for every active lot. A failing lot
// is logged and skipped so one bad lot cannot block the rest.
func (s *Service) ExportActiveLots(ctx context.Context) error {
	lots, err := s.repo.ListActiveLots(ctx)
	if err != nil {
		return err
	}

	for _, lot := range lots {
		if err := s.ExportLot(ctx, lot); err != nil {
			s.logger.Error("failed to export lot",
				zap.String("lot_id", lot.ID),
				zap.Error(err))
		}
	}

	return nil
}

// guideLookup adapts the guide API client into the engine's lookup shape.
// Lookup failures degrade to a missing guide with a warning instead of
// blanking the whole series; the guide annotation is best-effort.
func (s *Service) guideLookup(lot models.Lot) indicators.GuideLookup {
	if s.guide == nil || lot.Breed == "" {
		return nil
	}

	return func(ctx context.Context, breed string, year, ageDays int) (*models.GuideReference, error) {
		ref, err := s.guide.Lookup(ctx, breed, year, ageDays)
		if err != nil {
			s.logger.Warn("guide lookup failed, continuing without reference",
				zap.String("breed", breed),
				zap.Int("year", year),
				zap.Int("age_days", ageDays),
				zap.Error(err))
			return nil, nil
		}
		return ref, nil
	}
}

func validateRecord(record models.DailyRecord, lot models.Lot) error {
	if record.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRecord)
	}
	if record.Date.Before(lot.PlacementDate) && !sameDay(record.Date, lot.PlacementDate) {
		return fmt.Errorf("%w: date precedes lot placement", ErrInvalidRecord)
	}

	counts := []int{
		record.MortalityFemales, record.MortalityMales,
		record.SelectedFemales, record.SelectedMales,
		record.ErrorFemales, record.ErrorMales,
		record.EggsTotal, record.EggsIncubable,
	}
	for _, v := range counts {
		if v < 0 {
			return fmt.Errorf("%w: negative count", ErrInvalidRecord)
		}
	}

	if record.FeedKgFemales < 0 || record.FeedKgMales < 0 {
		return fmt.Errorf("%w: negative feed", ErrInvalidRecord)
	}

	percentages := []*float64{
		record.UniformityFemales, record.UniformityMales,
	}
	for _, p := range percentages {
		if p != nil && (*p < 0 || *p > 100) {
			return fmt.Errorf("%w: uniformity out of range", ErrInvalidRecord)
		}
	}

	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
