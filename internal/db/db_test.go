package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	if db.Path() != dbPath {
		t.Errorf("Expected path %s, got %s", dbPath, db.Path())
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("Nested directories were not created")
	}
}

func TestNew_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	if _, err := db.UpsertDraws(sampleDraws()); err != nil {
		t.Fatalf("UpsertDraws() failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer reopened.Close()

	n, err := reopened.CountDraws()
	if err != nil {
		t.Fatalf("CountDraws() failed: %v", err)
	}
	if n != len(sampleDraws()) {
		t.Errorf("CountDraws() = %d, want %d", n, len(sampleDraws()))
	}
}

func TestSchema_TablesExist(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	tables := []string{
		"draws",
		"scrape_runs",
	}

	for _, table := range tables {
		var name string
		err := db.QueryRowContext(context.Background(), "SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("Table %s does not exist: %v", table, err)
		}
	}
}

func TestNormalizeTimestamps(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	ctx := context.Background()
	legacy := []struct {
		date, ts string
	}{
		{"2024/01/10", "2024/01/10"},
		{"2024/01/09", "2024-01-09 00:00:00 +0000 UTC"},
	}
	for _, l := range legacy {
		_, err := db.ExecContext(ctx,
			"INSERT INTO draws (date, n1, n2, n3, n4, n5, timestamp) VALUES (?, 1, 2, 3, 4, 5, ?)",
			l.date, l.ts)
		if err != nil {
			t.Fatalf("insert legacy row: %v", err)
		}
	}

	if err := db.NormalizeTimestamps(); err != nil {
		t.Fatalf("NormalizeTimestamps() failed: %v", err)
	}

	want := map[string]string{
		"2024/01/10": "2024-01-10T00:00:00",
		"2024/01/09": "2024-01-09T00:00:00",
	}
	for date, ts := range want {
		d, err := db.GetDraw(date)
		if err != nil || d == nil {
			t.Fatalf("GetDraw(%s) = %v, %v", date, d, err)
		}
		if d.Timestamp != ts {
			t.Errorf("timestamp for %s = %q, want %q", date, d.Timestamp, ts)
		}
	}
}

func TestVacuum(t *testing.T) {
	db := newTestDB(t)
	defer db.Close()

	if err := db.Vacuum(); err != nil {
		t.Errorf("Vacuum failed: %v", err)
	}
}

func TestClose(t *testing.T) {
	db := newTestDB(t)

	if err := db.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	_, err := db.QueryContext(context.Background(), "SELECT 1")
	if err == nil {
		t.Error("Expected error querying closed database")
	}
}

// Helper to create a test database
func newTestDB(t *testing.T) *DB {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	return db
}
