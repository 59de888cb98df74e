// Package mapbox implements the geocoding, duration matrix and path rendering
// collaborators against the Mapbox web APIs.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Client struct {
	baseURL     string
	accessToken string
	profile     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	log         *zap.Logger
}

// NewClient creates a client for baseURL (https://api.mapbox.com in
// production). Outgoing requests are limited to requestsPerSecond; a
// non-positive value disables the limit.
func NewClient(baseURL, accessToken, profile string, timeout time.Duration, requestsPerSecond float64,
	log *zap.Logger) *Client {
	limit := rate.Inf
	burst := 1
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
		burst = int(requestsPerSecond)
		if burst < 1 {
			burst = 1
		}
	}
	if profile == "" {
		profile = "driving"
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
		profile:     profile,
		httpClient:  &http.Client{Timeout: timeout},
		limiter:     rate.NewLimiter(limit, burst),
		log:         log,
	}
}

// get issues a GET for the already escaped path and returns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("access_token", c.accessToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mapbox request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call mapbox api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapbox response: %w", err)
	}

	c.log.Debug("mapbox request", zap.String("path", req.URL.Path), zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("mapbox api returned status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("mapbox api returned status %d", resp.StatusCode)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	body, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode mapbox response: %w", err)
	}
	return nil
}
