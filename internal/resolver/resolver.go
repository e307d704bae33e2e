package resolver

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/owapi/owscrape/internal/fetcher"
	"github.com/owapi/owscrape/internal/logger"
	"github.com/owapi/owscrape/internal/scraper"
)

// DefaultRegions is the fallback probe order when the caller names no region.
var DefaultRegions = []string{"eu", "us", "kr"}

// DefaultTTL is the cache window applied to every page fetched during a
// resolve, the probe and the update call included.
const DefaultTTL = 5 * time.Minute

// Resolver drives the per-region fetch/update/fetch loop.
type Resolver struct {
	loader    *scraper.Loader
	fetcher   *fetcher.Fetcher
	endpoints scraper.Endpoints
	ttl       time.Duration
}

// New creates a Resolver. A ttl of zero or less falls back to DefaultTTL.
func New(loader *scraper.Loader, f *fetcher.Fetcher, endpoints scraper.Endpoints, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Resolver{
		loader:    loader,
		fetcher:   f,
		endpoints: endpoints,
		ttl:       ttl,
	}
}

// Resolution is the final output of a resolve. On success both fields are set.
// When every candidate region was skipped, both are zero. A region with a nil
// Document means the full page fetch failed after a successful probe and
// update; the resolver does not try further regions in that case.
type Resolution struct {
	Document *goquery.Document
	Region   string
}

// Found reports whether the resolution carries a parsed page.
func (r Resolution) Found() bool {
	return r.Document != nil
}

// Resolve finds the page for battletag. With a non-empty region only that
// region is tried; otherwise the candidates are eu, us, kr in order, first
// success wins. extra is appended verbatim to the full profile URL. A fatal
// update failure aborts with an error; plain exhaustion returns a zero
// Resolution and no error.
func (r *Resolver) Resolve(ctx context.Context, battletag, region, extra string) (Resolution, error) {
	start := time.Now()
	resolveID := uuid.NewString()

	regions := DefaultRegions
	if region != "" {
		regions = []string{region}
	}

	for _, reg := range regions {
		// Force the career page to download, if possible. A missing
		// career page means MasterOverwatch has no data to recompute,
		// so the region is skipped without an update call. Probing also
		// gives the remote side a chance to materialize the record.
		_, exists := r.loader.Load(ctx, r.endpoints.Career(reg, battletag), r.ttl)
		if !exists {
			logger.Debug("no career page", logger.Fields{
				"resolve_id": resolveID,
				"battletag":  battletag,
				"region":     reg,
			})
			continue
		}

		result, err := r.triggerUpdate(ctx, battletag, reg)
		if err != nil {
			return Resolution{}, err
		}
		if result == NotFound {
			logger.Debug("player not known to updater", logger.Fields{
				"resolve_id": resolveID,
				"battletag":  battletag,
				"region":     reg,
			})
			continue
		}

		// The probe and update both passed, so this is the player's
		// region. Return it even if the full page fetch comes back
		// absent; later regions would only be other players.
		doc, _ := r.loader.Load(ctx, r.endpoints.Profile(reg, battletag, extra), r.ttl)

		logger.RecordTiming("resolve", time.Since(start))
		return Resolution{Document: doc, Region: reg}, nil
	}

	logger.Info("battletag not found in any region", logger.Fields{
		"resolve_id": resolveID,
		"battletag":  battletag,
		"regions":    regions,
	})
	logger.RecordTiming("resolve", time.Since(start))

	return Resolution{}, nil
}
