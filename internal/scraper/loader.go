package scraper

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/owapi/owscrape/internal/fetcher"
	"github.com/owapi/owscrape/internal/logger"
)

// Loader fetches a page through the cache-aside fetcher and parses it on the
// worker pool. Only raw bodies are cached; parsing is redone on every cache
// hit so each caller owns its own document.
type Loader struct {
	fetcher *fetcher.Fetcher
	pool    *Pool
}

// NewLoader creates a Loader over the given fetcher and parse pool.
func NewLoader(f *fetcher.Fetcher, pool *Pool) *Loader {
	return &Loader{
		fetcher: f,
		pool:    pool,
	}
}

// Load fetches url with the given cache ttl and returns the parsed document.
// ok is false when the fetch came back absent; no parse is attempted then.
func (l *Loader) Load(ctx context.Context, url string, ttl time.Duration) (*goquery.Document, bool) {
	body, ok := l.fetcher.Fetch(ctx, url, ttl)
	if !ok {
		return nil, false
	}

	doc, err := l.pool.Parse(ctx, body)
	if err != nil {
		// Only reachable via ctx cancellation; goquery accepts any bytes.
		logger.Warn("parse abandoned", logger.Fields{"url": url})
		return nil, false
	}

	return doc, true
}
