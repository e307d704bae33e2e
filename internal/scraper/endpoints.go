package scraper

import (
	"fmt"
	"strings"
)

const (
	// BlizzardBaseURL is the career site root, including the locale segment.
	BlizzardBaseURL = "https://playoverwatch.com/en-gb"

	// MasterBaseURL is the MasterOverwatch site root.
	MasterBaseURL = "https://masteroverwatch.com"
)

// Endpoints builds the page URLs for one pair of site bases. The zero value is
// not usable; construct with DefaultEndpoints or supply test-server bases.
type Endpoints struct {
	BlizzardBase string
	MasterBase   string
}

// DefaultEndpoints returns the production site bases.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		BlizzardBase: BlizzardBaseURL,
		MasterBase:   MasterBaseURL,
	}
}

// NormalizeBattletag converts a battletag to its URL form: every "#" becomes "-".
func NormalizeBattletag(battletag string) string {
	return strings.ReplaceAll(battletag, "#", "-")
}

// Career returns the lightweight career page URL used as an existence probe.
func (e Endpoints) Career(region, battletag string) string {
	return fmt.Sprintf("%s/career/pc/%s/%s", e.BlizzardBase, region, NormalizeBattletag(battletag))
}

// Profile returns the full profile page URL. extra is an opaque path or query
// suffix appended verbatim.
func (e Endpoints) Profile(region, battletag, extra string) string {
	return fmt.Sprintf("%s/profile/pc/%s/%s%s", e.MasterBase, region, NormalizeBattletag(battletag), extra)
}

// Update returns the profile update endpoint URL.
func (e Endpoints) Update(region, battletag string) string {
	return fmt.Sprintf("%s/profile/pc/%s/%s/update", e.MasterBase, region, NormalizeBattletag(battletag))
}
