package db

import (
	"context"
	"fmt"
)

// NormalizeTimestamps rewrites draw timestamps that were archived in an older
// format so that ORDER BY timestamp stays chronological.
// Dates written as "YYYY/MM/DD" or with a " +0000 UTC" suffix are converted to
// the "YYYY-MM-DDTHH:MM:SS" form the scraper produces.
func (db *DB) NormalizeTimestamps() error {
	queries := []string{
		// "2024/01/10" -> "2024-01-10T00:00:00"
		`UPDATE draws
		 SET timestamp = REPLACE(timestamp, '/', '-') || 'T00:00:00'
		 WHERE length(timestamp) = 10 AND timestamp LIKE '____/__/__'`,

		// "2024-01-10 00:00:00 +0000 UTC" -> "2024-01-10T00:00:00"
		`UPDATE draws
		 SET timestamp = REPLACE(SUBSTR(timestamp, 1, 19), ' ', 'T')
		 WHERE length(timestamp) > 19 AND timestamp LIKE '% UTC'`,

		`UPDATE scrape_runs
		 SET timestamp = SUBSTR(timestamp, 1, 19)
		 WHERE length(timestamp) > 19 AND timestamp LIKE '% UTC'`,
	}

	for _, query := range queries {
		if _, err := db.ExecContext(context.Background(), query); err != nil {
			return fmt.Errorf("failed to normalize timestamps: %w", err)
		}
	}

	return nil
}
