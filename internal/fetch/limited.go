package fetch

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limited wraps a Fetcher with a politeness rate limit: one request per
// configured delay, enforced across all callers of this instance. The wait
// inside Fetch is the scrape loop's only suspension point.
type Limited struct {
	inner   Fetcher
	limiter *rate.Limiter
}

// NewLimited wraps inner with one request per delay.
func NewLimited(inner Fetcher, delay time.Duration) *Limited {
	return &Limited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

// Fetch waits for the limiter, then delegates.
func (l *Limited) Fetch(ctx context.Context, url string) (string, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return l.inner.Fetch(ctx, url)
}
