package fetch

import "context"

// Pages is the cache contract Cached needs; satisfied by cache.PageCache.
type Pages interface {
	Get(ctx context.Context, url string) (string, bool)
	Put(ctx context.Context, url, body string) error
}

// Cached serves fetches from a page cache, falling back to the inner
// fetcher on a miss. Cache write failures are ignored; the page was fetched
// either way.
type Cached struct {
	inner Fetcher
	pages Pages
}

// NewCached wraps inner with the page cache.
func NewCached(inner Fetcher, pages Pages) *Cached {
	return &Cached{inner: inner, pages: pages}
}

// Fetch checks the cache first, then delegates and stores the result.
func (c *Cached) Fetch(ctx context.Context, url string) (string, error) {
	if body, ok := c.pages.Get(ctx, url); ok {
		return body, nil
	}
	body, err := c.inner.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	_ = c.pages.Put(ctx, url, body)
	return body, nil
}
