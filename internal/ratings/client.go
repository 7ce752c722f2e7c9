package ratings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/models"
)

// Client fetches per-team rating records from the rating service.
// The service is read-only and unauthenticated. Every failure mode
// (network error, non-200 status, unparseable payload) resolves to an
// absent rating (nil); callers never see an error and cannot distinguish
// a transient failure from a malformed record, since both mean "no
// usable rating".
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// NewClient creates a rating client. The timeout bounds each outbound
// call: the batch pipeline uses a generous bound, the server a short one.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Sugar(),
	}
}

// Fetch retrieves the rating for one team at one event. A nil result
// means the rating is absent; it is never an error.
func (c *Client) Fetch(ctx context.Context, team int, eventKey string) *models.TeamRating {
	url := fmt.Sprintf("%s/team_event/%d/%s", c.baseURL, team, eventKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warnw("Failed to build rating request", "team", team, "event", eventKey, "error", err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debugw("Rating request failed", "team", team, "event", eventKey, "error", err)
		fetchesTotal.WithLabelValues("error").Inc()
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debugw("Rating service returned non-OK status",
			"team", team, "event", eventKey, "status", resp.StatusCode)
		fetchesTotal.WithLabelValues("status").Inc()
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRatingBodySize))
	if err != nil {
		fetchesTotal.WithLabelValues("error").Inc()
		return nil
	}

	rating := parseRating(body)
	if rating == nil {
		c.logger.Debugw("Rating payload had no usable shape", "team", team, "event", eventKey)
		fetchesTotal.WithLabelValues("shape").Inc()
		return nil
	}

	rating.TeamNumber = team
	rating.EventKey = eventKey
	fetchesTotal.WithLabelValues("ok").Inc()
	return rating
}

// maxRatingBodySize caps rating payload reads at 1MB
const maxRatingBodySize = 1048576
