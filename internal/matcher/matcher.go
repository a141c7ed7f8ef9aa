// Package matcher talks to the external visual-match service. The service
// holds the image index and the matching algorithm; this side only ships a
// base64 image across and reads back a photo id or null.
package matcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"galleryapi/internal/config"
)

// Matcher resolves a captured image to a known photo id.
// An empty id with a nil error means "no match".
type Matcher interface {
	Match(ctx context.Context, imageB64 string) (string, error)
}

type httpMatcher struct {
	endpoint string
	client   *http.Client
}

// NewHTTP builds a Matcher over the configured HTTP endpoint.
func NewHTTP(cfg config.MatcherConfig) (Matcher, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("matcher endpoint is required")
	}
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &httpMatcher{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

type matchRequest struct {
	Image string `json:"image"`
}

type matchResponse struct {
	PhotoID *string `json:"photoId"`
}

// Match posts the image and decodes the {photoId: string|null} answer.
// Single attempt; a failed call is the caller's to report and retry.
func (m *httpMatcher) Match(ctx context.Context, imageB64 string) (string, error) {
	body, err := json.Marshal(matchRequest{Image: imageB64})
	if err != nil {
		return "", fmt.Errorf("encode match request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build match request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call matcher: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("matcher returned status %d", resp.StatusCode)
	}

	var out matchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode match response: %w", err)
	}
	if out.PhotoID == nil {
		return "", nil
	}
	return *out.PhotoID, nil
}
