// Package tba wraps the read-only match/event data service. It is the
// only source of raw match records for the batch pipeline.
package tba

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/models"
)

// Official event types: regionals through championship divisions.
// Offseason and preseason events are excluded from training data.
const maxOfficialEventType = 6

// Client talks to the match data API. Every request carries the static
// API key in the X-TBA-Auth-Key header.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewClient creates a match data client.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Sugar(),
	}
}

// EventsForYear returns the year's official events.
func (c *Client) EventsForYear(ctx context.Context, year int) ([]models.Event, error) {
	var events []models.Event
	if err := c.get(ctx, fmt.Sprintf("/events/%d", year), &events); err != nil {
		return nil, err
	}

	official := events[:0]
	for _, e := range events {
		if e.EventType >= 0 && e.EventType <= maxOfficialEventType {
			official = append(official, e)
		}
	}
	return official, nil
}

// MatchesForEvent returns the event's completed matches, meaning those
// where both alliances have a recorded score.
func (c *Client) MatchesForEvent(ctx context.Context, eventKey string) ([]models.Match, error) {
	var matches []models.Match
	if err := c.get(ctx, fmt.Sprintf("/event/%s/matches", eventKey), &matches); err != nil {
		return nil, err
	}

	completed := matches[:0]
	for _, m := range matches {
		if m.Completed() {
			completed = append(completed, m)
		}
	}
	return completed, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", endpoint, err)
	}
	req.Header.Set("X-TBA-Auth-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s: status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
