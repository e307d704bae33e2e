// Package scraper turns cached page fetches into parsed HTML documents.
//
// It builds the wire-compatible URLs for the Blizzard career site and the
// MasterOverwatch profile site, and offloads the CPU-bound HTML parse to a
// fixed worker pool so parsing never blocks concurrent network work.
package scraper
