// Package fetch retrieves raw page markup. The rest of the system only sees
// the Fetcher contract: a URL in, markup or a typed failure out. Retry,
// rate limiting and caching live in wrappers here, never in parsers.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher retrieves the markup of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Failure is a typed fetch error carrying enough context for the caller to
// count and log it. Callers never retry through it.
type Failure struct {
	URL        string
	StatusCode int
	Reason     string
}

func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", f.URL, f.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s", f.URL, f.Reason)
}

// HTTPFetcher fetches with the standard client and a fixed User-Agent.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// NewHTTPFetcher builds a fetcher with a 30s request timeout.
func NewHTTPFetcher(userAgent string) *HTTPFetcher {
	return &HTTPFetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: userAgent,
	}
}

// Fetch retrieves the URL, returning *Failure on network or HTTP errors.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Failure{URL: url, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Failure{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Failure{URL: url, Reason: err.Error()}
	}
	return string(body), nil
}
