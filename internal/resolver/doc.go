// Package resolver walks an ordered list of candidate regions for a battletag
// and returns the first region that yields a usable profile page.
//
// Each region pass is: existence probe against the career site, remote update
// against MasterOverwatch, then the full profile fetch. A failed probe or a
// definitive "no such player" from the update endpoint skips to the next
// region; a network or decode failure on the update call aborts the whole
// resolve, because treating it as "not found" would wrongly abandon a region
// that may exist.
package resolver
