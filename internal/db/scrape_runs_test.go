package db

import (
	"testing"
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

func TestInsertScrapeRun(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	run := &models.ScrapeRun{Pages: 3, Fetched: 30, Added: 2, DurationMs: 1200}
	if err := db.InsertScrapeRun(run); err != nil {
		t.Fatalf("InsertScrapeRun() failed: %v", err)
	}
	if run.ID == 0 {
		t.Error("InsertScrapeRun() should set ID")
	}
}

func TestGetRecentScrapeRuns(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	runs := []*models.ScrapeRun{
		{Timestamp: now.Add(-2 * time.Hour), Pages: 1, Added: 1},
		{Timestamp: now.Add(-1 * time.Hour), Pages: 2, Error: "connection refused"},
		{Timestamp: now, Pages: 3, Added: 5},
	}
	for _, r := range runs {
		if err := db.InsertScrapeRun(r); err != nil {
			t.Fatalf("InsertScrapeRun() failed: %v", err)
		}
	}

	got, err := db.GetRecentScrapeRuns(2)
	if err != nil {
		t.Fatalf("GetRecentScrapeRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetRecentScrapeRuns() returned %d runs, want 2", len(got))
	}

	if got[0].Pages != 3 || got[0].Added != 5 || got[0].Failed() {
		t.Errorf("newest run = %+v", got[0])
	}
	if !got[0].Timestamp.Equal(now) {
		t.Errorf("newest run timestamp = %v, want %v", got[0].Timestamp, now)
	}
	if got[1].Error != "connection refused" || !got[1].Failed() {
		t.Errorf("second run = %+v, want failed run", got[1])
	}
}
