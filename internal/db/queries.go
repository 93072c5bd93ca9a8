package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// ErrInvalidDraw is returned when a draw cannot be stored in the fixed
// five-number layout of the draws table.
var ErrInvalidDraw = errors.New("draw must have exactly 5 numbers")

// UpsertDraws inserts or updates draws keyed by date in a single transaction
// and returns how many dates were not in the archive before.
func (db *DB) UpsertDraws(draws []models.DrawRecord) (int, error) {
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var before int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM draws").Scan(&before); err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO draws (`+sqlDrawColumns+`, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			n1 = excluded.n1,
			n2 = excluded.n2,
			n3 = excluded.n3,
			n4 = excluded.n4,
			n5 = excluded.n5,
			timestamp = excluded.timestamp
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare draw upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	importedAt := time.Now().UTC().Format("2006-01-02 15:04:05")
	for _, d := range draws {
		if len(d.Numbers) != 5 {
			return 0, fmt.Errorf("%w: %s has %d", ErrInvalidDraw, d.Date, len(d.Numbers))
		}
		_, err := stmt.ExecContext(ctx,
			d.Date,
			d.Numbers[0], d.Numbers[1], d.Numbers[2], d.Numbers[3], d.Numbers[4],
			normalizeTimestamp(d),
			importedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert draw %s: %w", d.Date, err)
		}
	}

	var after int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM draws").Scan(&after); err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit draws: %w", err)
	}

	return after - before, nil
}

// GetDraws returns archived draws newest-first. A limit of 0 or less
// returns every draw.
func (db *DB) GetDraws(limit int) ([]models.DrawRecord, error) {
	query := `SELECT ` + sqlDrawColumns + ` FROM draws ORDER BY timestamp DESC, date DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("failed to close rows", "error", err)
		}
	}()

	var draws []models.DrawRecord
	for rows.Next() {
		d, err := scanDraw(rows)
		if err != nil {
			return nil, err
		}
		draws = append(draws, d)
	}

	return draws, rows.Err()
}

// GetDraw returns the draw for a date, or nil if it is not archived.
func (db *DB) GetDraw(date string) (*models.DrawRecord, error) {
	row := db.QueryRowContext(context.Background(),
		`SELECT `+sqlDrawColumns+` FROM draws WHERE date = ?`, date)

	d, err := scanDraw(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// LatestDraw returns the newest archived draw, or nil for an empty archive.
func (db *DB) LatestDraw() (*models.DrawRecord, error) {
	draws, err := db.GetDraws(1)
	if err != nil {
		return nil, err
	}
	if len(draws) == 0 {
		return nil, nil
	}
	return &draws[0], nil
}

// CountDraws returns the number of archived draws.
func (db *DB) CountDraws() (int, error) {
	var n int
	if err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM draws").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return n, nil
}

// DeleteAll removes every archived draw.
func (db *DB) DeleteAll() error {
	if _, err := db.ExecContext(context.Background(), "DELETE FROM draws"); err != nil {
		return fmt.Errorf("failed to delete draws: %w", err)
	}
	return nil
}

// GetArchiveStats summarizes the archive contents.
func (db *DB) GetArchiveStats() (*models.ArchiveStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE((SELECT date FROM draws ORDER BY timestamp ASC LIMIT 1), ''),
			COALESCE((SELECT date FROM draws ORDER BY timestamp DESC LIMIT 1), ''),
			MAX(imported_at)
		FROM draws
	`

	var stats models.ArchiveStats
	var lastImport sql.NullString
	err := db.QueryRowContext(context.Background(), query).Scan(
		&stats.TotalDraws,
		&stats.FirstDate,
		&stats.LastDate,
		&lastImport,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive stats: %w", err)
	}
	if lastImport.Valid {
		stats.LastImport = parseDBTime(lastImport.String)
	}

	runs, err := db.GetRecentScrapeRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) > 0 {
		stats.LastScrape = &runs[0]
	}

	return &stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraw(row rowScanner) (models.DrawRecord, error) {
	var d models.DrawRecord
	nums := make([]int, 5)
	err := row.Scan(&d.Date, &nums[0], &nums[1], &nums[2], &nums[3], &nums[4], &d.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return d, err
	}
	if err != nil {
		return d, fmt.Errorf("failed to scan draw: %w", err)
	}
	d.Numbers = nums
	return d, nil
}

// normalizeTimestamp returns the stored form of a draw timestamp, deriving it
// from the date when the record carries none.
func normalizeTimestamp(d models.DrawRecord) string {
	if t := d.Time(); !t.IsZero() {
		return t.Format(timestampLayout)
	}
	if t, err := time.Parse("2006/01/02", d.Date); err == nil {
		return t.Format(timestampLayout)
	}
	return d.Timestamp
}

// parseDBTime parses a DATETIME column value written by SQLite or by this package.
func parseDBTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
