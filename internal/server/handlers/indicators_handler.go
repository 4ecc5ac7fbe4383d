package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/granjasoft/avicore/internal/domain/models"
	"github.com/granjasoft/avicore/internal/indicators"
	"github.com/granjasoft/avicore/internal/repository/mongodb"
	"github.com/granjasoft/avicore/internal/service/performance"
)

// PerformanceService is the slice of the performance service the HTTP layer
// depends on.
type PerformanceService interface {
	WeeklyIndicators(ctx context.Context, lotID string) (*performance.LotIndicators, error)
	Series(ctx context.Context, lotID string, keys []string) (*performance.LotSeries, error)
	AddDailyRecord(ctx context.Context, lotID string, record models.DailyRecord) (string, error)
}

// IndicatorsHandler handles the weekly indicator HTTP endpoints.
type IndicatorsHandler struct {
	svc    PerformanceService
	logger *zap.Logger
}

// NewIndicatorsHandler constructs the HTTP handler adapter.
func NewIndicatorsHandler(svc PerformanceService, logger *zap.Logger) *IndicatorsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IndicatorsHandler{svc: svc, logger: logger}
}

// Indicators returns the full weekly indicator series for a lot, including
// the skipped-record side channel.
func (h *IndicatorsHandler) Indicators(c *gin.Context) {
	lotID := c.Param("lotID")

	result, err := h.svc.WeeklyIndicators(c.Request.Context(), lotID)
	if err != nil {
		h.renderError(c, lotID, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Series returns chart-ready named series for a lot. The optional "keys"
// query parameter is a comma-separated filter over the default series set.
func (h *IndicatorsHandler) Series(c *gin.Context) {
	lotID := c.Param("lotID")

	var keys []string
	if raw := c.Query("keys"); raw != "" {
		keys = strings.Split(raw, ",")
	}

	result, err := h.svc.Series(c.Request.Context(), lotID, keys)
	if err != nil {
		h.renderError(c, lotID, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AddRecord ingests one daily field observation for a lot.
func (h *IndicatorsHandler) AddRecord(c *gin.Context) {
	lotID := c.Param("lotID")

	var record models.DailyRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		h.logger.Warn("invalid record payload", zap.String("lot_id", lotID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.svc.AddDailyRecord(c.Request.Context(), lotID, record)
	if err != nil {
		h.renderError(c, lotID, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *IndicatorsHandler) renderError(c *gin.Context, lotID string, err error) {
	switch {
	case errors.Is(err, mongodb.ErrLotNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "lot not found"})
	case errors.Is(err, indicators.ErrInvalidLot):
		h.logger.Warn("lot metadata unusable", zap.String("lot_id", lotID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, performance.ErrInvalidRecord):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.String("lot_id", lotID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
