package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caredomi/homecare-backend-go/internal/domain/tour"
	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
)

// Client talks to the external proximity/routing service that owns all
// distance computation and the authoritative tour feasibility check.
// Travel segments are cached in Redis keyed by the event id set.
type Client struct {
	httpClient *resty.Client
	cache      *redis.Client // nil disables caching
	cacheTTL   time.Duration
	logger     *slog.Logger
}

func NewClient(baseURL, apiKey string, cacheTTL time.Duration, cache *redis.Client, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(apiKey)

	return &Client{
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

type travelSegmentsRequest struct {
	EventIDs []string `json:"event_ids"`
}

type travelSegmentsResponse struct {
	Segments []tour.TravelSegment `json:"segments"`
}

func segmentsCacheKey(eventIDs []string) string {
	return "routing:segments:" + strings.Join(eventIDs, ":")
}

// GetTravelSegments implements tour.TravelProvider.
func (c *Client) GetTravelSegments(ctx context.Context, eventIDs []string) ([]tour.TravelSegment, error) {
	if len(eventIDs) < 2 {
		return nil, nil
	}

	key := segmentsCacheKey(eventIDs)
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key).Result(); err == nil {
			var segments []tour.TravelSegment
			if err := json.Unmarshal([]byte(cached), &segments); err == nil {
				return segments, nil
			}
		}
	}

	var response travelSegmentsResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(travelSegmentsRequest{EventIDs: eventIDs}).
		SetResult(&response).
		Post("/v1/travel-segments")
	if err != nil {
		return nil, fmt.Errorf("failed to call routing service: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("routing service returned %s", resp.Status())
	}

	if c.cache != nil {
		if payload, err := json.Marshal(response.Segments); err == nil {
			if err := c.cache.Set(ctx, key, payload, c.cacheTTL).Err(); err != nil {
				c.logger.Warn("failed to cache travel segments", "error", err)
			}
		}
	}

	return response.Segments, nil
}

type proximityRequest struct {
	SourceEventID  string   `json:"source_event_id"`
	TargetEventIDs []string `json:"target_event_ids"`
}

// CalculateProximity implements tour.TravelProvider.
func (c *Client) CalculateProximity(ctx context.Context, sourceEventID string, targetEventIDs []string) (tour.ProximityResult, error) {
	var response tour.ProximityResult
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(proximityRequest{
			SourceEventID:  sourceEventID,
			TargetEventIDs: targetEventIDs,
		}).
		SetResult(&response).
		Post("/v1/proximity")
	if err != nil {
		return tour.ProximityResult{}, fmt.Errorf("failed to call routing service: %w", err)
	}
	if resp.IsError() {
		return tour.ProximityResult{}, fmt.Errorf("routing service returned %s", resp.Status())
	}
	return response, nil
}

// ValidateProposedTour implements tour.Validator.
func (c *Client) ValidateProposedTour(ctx context.Context, proposed tour.ProposedTour) (tour.ValidationOutcome, error) {
	var response tour.ValidationOutcome
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(proposed).
		SetResult(&response).
		Post("/v1/tours/validate")
	if err != nil {
		return tour.ValidationOutcome{}, fmt.Errorf("failed to call routing service: %w", err)
	}
	if resp.IsError() {
		return tour.ValidationOutcome{}, fmt.Errorf("routing service returned %s", resp.Status())
	}

	c.logger.Debug("tour validated",
		"tour_id", proposed.TourID,
		"is_valid", response.IsValid,
		"errors", len(response.Errors),
		"warnings", len(response.Warnings),
	)
	return response, nil
}
