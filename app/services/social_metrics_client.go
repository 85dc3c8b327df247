// Package services provides external service integrations and technical concerns like metrics fetching and tokens
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cliphaus/cliphaus-platform/config"
	"github.com/cliphaus/cliphaus-platform/models"
)

// PostMetrics is one snapshot of a social post's engagement counters.
// Tags carries the hashtags and mentions found in the post text, lowercased,
// for required-tag compliance checks.
type PostMetrics struct {
	Views       int64    `json:"views"`
	Likes       int64    `json:"likes"`
	Comments    int64    `json:"comments"`
	Shares      int64    `json:"shares"`
	Retweets    int64    `json:"retweets"`
	Impressions int64    `json:"impressions"`
	Tags        []string `json:"tags"`
}

// SocialMetricsClient fetches engagement metrics for published posts.
// A nil result with a nil error means the post no longer exists.
type SocialMetricsClient interface {
	FetchPostMetrics(ctx context.Context, platform models.ClipPlatform, externalPostID string) (*PostMetrics, error)
}

// SocialMetricsClientImpl implements SocialMetricsClient against the metrics
// aggregator API
type SocialMetricsClientImpl struct {
	config *config.SocialAPIConfig
	client *http.Client
}

// NewSocialMetricsClient creates a new social metrics client instance
func NewSocialMetricsClient(cfg *config.SocialAPIConfig) SocialMetricsClient {
	return &SocialMetricsClientImpl{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// metricsAPIResponse is the aggregator's per-post payload
type metricsAPIResponse struct {
	Found       bool     `json:"found"`
	Views       int64    `json:"views"`
	Likes       int64    `json:"likes"`
	Comments    int64    `json:"comments"`
	Shares      int64    `json:"shares"`
	Retweets    int64    `json:"retweets"`
	Impressions int64    `json:"impressions"`
	Tags        []string `json:"tags"`
}

// FetchPostMetrics fetches the current engagement counters for one post
func (s *SocialMetricsClientImpl) FetchPostMetrics(ctx context.Context, platform models.ClipPlatform, externalPostID string) (*PostMetrics, error) {
	url := fmt.Sprintf("%s/v1/%s/posts/%s/metrics", s.config.BaseURL, platform, externalPostID)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post metrics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metrics API returned status %d for post %s", resp.StatusCode, externalPostID)
	}

	var payload metricsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode metrics response: %w", err)
	}
	if !payload.Found {
		return nil, nil
	}

	return &PostMetrics{
		Views:       payload.Views,
		Likes:       payload.Likes,
		Comments:    payload.Comments,
		Shares:      payload.Shares,
		Retweets:    payload.Retweets,
		Impressions: payload.Impressions,
		Tags:        payload.Tags,
	}, nil
}

// MockSocialMetricsClient implements SocialMetricsClient for testing
type MockSocialMetricsClient struct {
	MetricsByPostID map[string]*PostMetrics
	Err             error
	Calls           []string
}

// NewMockSocialMetricsClient creates a mock client instance
func NewMockSocialMetricsClient() *MockSocialMetricsClient {
	return &MockSocialMetricsClient{
		MetricsByPostID: make(map[string]*PostMetrics),
	}
}

// FetchPostMetrics returns the canned metrics for the post id
func (m *MockSocialMetricsClient) FetchPostMetrics(ctx context.Context, platform models.ClipPlatform, externalPostID string) (*PostMetrics, error) {
	m.Calls = append(m.Calls, externalPostID)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.MetricsByPostID[externalPostID], nil
}
