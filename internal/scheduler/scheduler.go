package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/granjasoft/avicore/internal/config"
	"github.com/granjasoft/avicore/internal/service/performance"
)

// Scheduler manages the periodic indicator export. Each run recomputes every
// active lot's series from a fresh snapshot; no incremental state survives
// between runs.
type Scheduler struct {
	cron   *cron.Cron
	svc    *performance.Service
	cfg    config.ExportConfig
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ExportConfig, svc *performance.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []cron.Option{}
	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		opts = append(opts, cron.WithLocation(loc))
	} else {
		logger.Warn("invalid timezone, scheduler falls back to local time",
			zap.String("timezone", cfg.Timezone),
			zap.Error(err))
	}

	return &Scheduler{
		cron:   cron.New(opts...),
		svc:    svc,
		cfg:    cfg,
		logger: logger,
	}
}

// Start registers the export job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.exportActiveLots); err != nil {
		s.logger.Error("failed to schedule indicator export", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) exportActiveLots() {
	s.logger.Info("running scheduled indicator export")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.svc.ExportActiveLots(ctx); err != nil {
		s.logger.Error("scheduled export failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled indicator export finished")
}
