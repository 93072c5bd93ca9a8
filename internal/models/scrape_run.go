// Package models defines data structures and domain types.
package models

import "time"

// ScrapeRun records one refresh of the draw history from the results site.
type ScrapeRun struct {
	Timestamp  time.Time
	Error      string
	ID         int64
	Pages      int
	Fetched    int
	Added      int
	DurationMs int64
}

// Failed reports whether the run ended with an error.
func (r ScrapeRun) Failed() bool {
	return r.Error != ""
}

// ArchiveStats summarizes the local draw archive.
type ArchiveStats struct {
	FirstDate  string
	LastDate   string
	TotalDraws int
	LastImport time.Time
	LastScrape *ScrapeRun
}
