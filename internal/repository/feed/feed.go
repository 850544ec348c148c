// Package feed pulls incident records from an upstream HTTP JSON feed.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/crimemap/backend/internal/domain"
)

// Source implements domain.RecordSource over an HTTP feed.
// When the feed is unreachable or answers non-200, the fallback source is used.
type Source struct {
	feedURL    string
	httpClient *http.Client
	fallback   domain.RecordSource
}

// NewSource creates a feed source; fallback may be nil
func NewSource(feedURL string, fallback domain.RecordSource) *Source {
	return &Source{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		fallback: fallback,
	}
}

type feedResponse struct {
	Records []domain.RecordInput `json:"records"`
}

// FetchRecords calls GET <feed>/records
func (s *Source) FetchRecords(ctx context.Context) ([]domain.RecordInput, error) {
	url := fmt.Sprintf("%s/records", s.feedURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "feed: failed to create request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return s.fallbackRecords(ctx, eris.Wrap(err, "feed: request failed"))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return s.fallbackRecords(ctx, eris.Errorf("feed: unexpected status %d", resp.StatusCode))
	}

	var body feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return s.fallbackRecords(ctx, eris.Wrap(err, "feed: failed to decode response"))
	}

	return body.Records, nil
}

func (s *Source) fallbackRecords(ctx context.Context, cause error) ([]domain.RecordInput, error) {
	if s.fallback == nil {
		return nil, cause
	}
	zap.L().Warn("feed unavailable, using fallback records", zap.Error(cause))
	return s.fallback.FetchRecords(ctx)
}

// Health checks feed connectivity
func (s *Source) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", s.feedURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrap(err, "feed: failed to create health request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return eris.Wrap(err, "feed: health check failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("feed: health check returned status %d", resp.StatusCode)
	}

	return nil
}
