package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// InsertScrapeRun logs a scrape run to the database.
func (db *DB) InsertScrapeRun(run *models.ScrapeRun) error {
	query := `
		INSERT INTO scrape_runs (timestamp, pages, fetched, added, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	timestamp := run.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.UTC().Format("2006-01-02 15:04:05"),
		run.Pages,
		run.Fetched,
		run.Added,
		run.DurationMs,
		nullString(run.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert scrape run: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		run.ID = id
	}

	return nil
}

// GetRecentScrapeRuns returns the most recent scrape runs, newest first.
func (db *DB) GetRecentScrapeRuns(limit int) ([]models.ScrapeRun, error) {
	query := `
		SELECT id, timestamp, pages, fetched, added, duration_ms, error
		FROM scrape_runs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scrape runs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var runs []models.ScrapeRun
	for rows.Next() {
		var run models.ScrapeRun
		var ts string
		var errStr sql.NullString

		err := rows.Scan(
			&run.ID,
			&ts,
			&run.Pages,
			&run.Fetched,
			&run.Added,
			&run.DurationMs,
			&errStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scrape run: %w", err)
		}

		run.Timestamp = parseDBTime(ts)
		run.Error = errStr.String
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
