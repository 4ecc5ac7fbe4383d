package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/granjasoft/avicore/internal/config"
	"github.com/granjasoft/avicore/internal/repository/mongodb"
	"github.com/granjasoft/avicore/internal/repository/sheets"
	"github.com/granjasoft/avicore/internal/scheduler"
	"github.com/granjasoft/avicore/internal/server/handlers"
	"github.com/granjasoft/avicore/internal/server/router"
	performancesvc "github.com/granjasoft/avicore/internal/service/performance"
	guideclient "github.com/granjasoft/avicore/pkg/clients/guide"
	"github.com/granjasoft/avicore/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var guide guideclient.Client
	if cfg.GuideEnabled() {
		guide = guideclient.NewClient(cfg.Guide)
		baseLogger.Info("genetic guide client enabled")
	} else {
		baseLogger.Warn("guide api not configured, indicator rows will carry no guide comparison")
	}

	var exporter sheets.Exporter
	if cfg.ExportEnabled() {
		exporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("sheet export enabled")
	}

	performanceSvc := performancesvc.NewService(mongoRepo, guide, exporter, baseLogger.Named("svc.performance"))
	indicatorsHandler := handlers.NewIndicatorsHandler(performanceSvc, baseLogger.Named("handlers.indicators"))
	engine := router.New(indicatorsHandler, baseLogger.Named("router"))

	var sched *scheduler.Scheduler
	if cfg.ExportEnabled() {
		sched = scheduler.NewScheduler(cfg.Export, performanceSvc, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
