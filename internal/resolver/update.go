package resolver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/owapi/owscrape/internal/logger"
)

// UpdateResult is the outcome of asking MasterOverwatch to recompute a player.
type UpdateResult int

const (
	// Updated means the remote system accepted the player. Any response other
	// than the one recognized "no such player" payload counts, including
	// unrecognized errors; the caller proceeds to the full page.
	Updated UpdateResult = iota

	// NotFound means the remote system reports no such player in this region.
	NotFound
)

// notFoundMessage is the single payload that maps to NotFound. The match is
// deliberately exact; loosening it changes which regions get skipped.
const notFoundMessage = "We couldn't find a player with that name."

type updateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// triggerUpdate asks the update endpoint to recompute (battletag, region).
// A fetch failure or undecodable body is fatal for the resolve in progress.
func (r *Resolver) triggerUpdate(ctx context.Context, battletag, region string) (UpdateResult, error) {
	url := r.endpoints.Update(region, battletag)

	body, ok := r.fetcher.Fetch(ctx, url, r.ttl)
	if !ok {
		return Updated, fmt.Errorf("update fetch failed for %s in %s", battletag, region)
	}

	var resp updateResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return Updated, fmt.Errorf("decoding update response for %s in %s: %w", battletag, region, err)
	}

	if resp.Status == "error" && resp.Message == notFoundMessage {
		return NotFound, nil
	}

	logger.Info("updated player", logger.Fields{
		"battletag": battletag,
		"region":    region,
		"response":  body,
	})

	return Updated, nil
}
