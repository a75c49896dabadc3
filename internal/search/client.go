package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mamadousow/clipsentry/internal/analysis"
	"github.com/mamadousow/clipsentry/internal/config"
	"github.com/mamadousow/clipsentry/internal/models"
	"github.com/mamadousow/clipsentry/pkg/logger"
)

// httpSearchClient queries the external search collaborator. The service is
// a black box returning candidate items; the filtering policy is applied
// here, from config, because the thresholds are product policy.
type httpSearchClient struct {
	cfg        config.SearchConfig
	policy     FilterPolicy
	httpClient *http.Client
	logger     logger.Logger
}

func NewHTTPSearchClient(cfg config.SearchConfig, logger logger.Logger) analysis.SearchProvider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &httpSearchClient{
		cfg:    cfg,
		policy: PolicyFromConfig(cfg),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type searchResponse struct {
	Items []models.SearchResult `json:"items"`
}

func (c *httpSearchClient) Search(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	if limit <= 0 || limit > c.cfg.MaxResults {
		limit = c.cfg.MaxResults
	}

	endpoint, err := url.Parse(c.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}
	q := endpoint.Query()
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(limit))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Errorf("search service returned %d: %s", resp.StatusCode, respBody)
		return nil, fmt.Errorf("search service returned status %d", resp.StatusCode)
	}

	var result searchResponse
	if err = json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("invalid search response: %w", err)
	}
	return c.policy.Apply(result.Items), nil
}
