package guide

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/granjasoft/avicore/internal/config"
	"github.com/granjasoft/avicore/internal/domain/models"
)

// Client exposes the breed genetic-guide API operations used by the
// application.
type Client interface {
	Lookup(ctx context.Context, breed string, year, ageDays int) (*models.GuideReference, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a guide API client using the provided configuration values.
func NewClient(cfg config.GuideConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	if cfg.Token != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
	}

	return &APIClient{httpClient: restyClient}
}

// apiError represents a guide API error payload.
type apiError struct {
	Error string `json:"error"`
}

// Lookup fetches the reference row for a breed, guide year and exact age in
// days. A 404 means no guide exists for that key and returns (nil, nil):
// absence is data, not an error.
func (c *APIClient) Lookup(ctx context.Context, breed string, year, ageDays int) (*models.GuideReference, error) {
	result := new(models.GuideReference)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("breed", breed).
		SetQueryParam("year", fmt.Sprint(year)).
		SetQueryParam("age_days", fmt.Sprint(ageDays)).
		SetResult(result).
		SetError(apiErr).
		Get("/breeds/{breed}/guide")
	if err != nil {
		return nil, fmt.Errorf("lookup guide for breed %s: %w", breed, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		message := ""
		if apiErr != nil {
			message = apiErr.Error
		}
		return nil, fmt.Errorf("guide api error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return result, nil
}
