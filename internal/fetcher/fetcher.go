// Package fetcher provides cache-aside HTTP page fetching.
//
// A Fetcher looks a URL up in its cache store and only goes to the network on
// a miss. Successful bodies are cached for the caller's TTL; failed fetches
// are never cached, so the next caller retries immediately.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/owapi/owscrape/internal/cache"
	"github.com/owapi/owscrape/internal/logger"
)

const (
	// UserAgent matches the header the target sites already see from this scraper.
	UserAgent = "OWAPI Scraper/1.0.0"

	// Timeout bounds each network call; cache hits return immediately.
	Timeout = 30 * time.Second
)

// Fetcher fetches page bodies with a shared TTL cache in front of the network.
type Fetcher struct {
	client    *http.Client
	cache     cache.Store
	userAgent string
}

// New creates a Fetcher backed by the given store.
func New(store cache.Store) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
		cache:     store,
		userAgent: UserAgent,
	}
}

// NewWithClient creates a Fetcher with a caller-supplied HTTP client and
// User-Agent. Used by tests and callers that need custom transport settings.
func NewWithClient(store cache.Store, client *http.Client, userAgent string) *Fetcher {
	return &Fetcher{
		client:    client,
		cache:     store,
		userAgent: userAgent,
	}
}

// Fetch returns the body for url, serving from cache when a live entry exists.
// On a miss it performs a GET: a 200 body is stored under url for ttl and
// returned; any other status or a transport error returns ok=false and caches
// nothing. A ttl of zero stores the body already stale, so subsequent calls
// always refetch.
func (f *Fetcher) Fetch(ctx context.Context, url string, ttl time.Duration) (string, bool) {
	if body, ok := f.cache.Get(url); ok {
		logger.IncrCounter("fetch.cache_hit")
		return body, true
	}

	logger.IncrCounter("fetch.network")
	logger.Info("GET", logger.Fields{"url": url})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.IncrCounter("fetch.error")
		logger.Warn("building request failed", logger.Fields{"url": url})
		return "", false
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		logger.IncrCounter("fetch.error")
		logger.Warn("fetch failed", logger.Fields{"url": url})
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.IncrCounter("fetch.error")
		logger.Debug("non-200 response", logger.Fields{
			"url":    url,
			"status": resp.StatusCode,
		})
		return "", false
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.IncrCounter("fetch.error")
		logger.Warn("reading body failed", logger.Fields{"url": url})
		return "", false
	}

	body := string(data)
	f.cache.Put(url, body, ttl)

	return body, true
}
