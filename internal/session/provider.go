package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Doer abstracts the HTTP client used to reach the Session Data Provider so
// tests can substitute a canned transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider fetches raw session documents from the upstream Session Data
// Provider over HTTP. It owns nothing beyond retrieval; decoding and
// validation live in DecodeSession and caching in the repository.
type Provider struct {
	client  Doer
	baseURL string
}

// NewProvider creates a provider client for the given base URL. A nil
// client falls back to a default with a fetch timeout; session payloads can
// run to tens of megabytes, hence the generous limit.
func NewProvider(client Doer, baseURL string) *Provider {
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	return &Provider{client: client, baseURL: baseURL}
}

// FetchRaw retrieves the raw JSON document for one session.
func (p *Provider) FetchRaw(ctx context.Context, key Key) ([]byte, error) {
	u := fmt.Sprintf("%s/sessions/%d/%s/%s", p.baseURL, key.Season, url.PathEscape(key.Event), key.Kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider returned %d for %s", resp.StatusCode, u)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}
	return payload, nil
}
