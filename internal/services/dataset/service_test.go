package dataset

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

const validDoc = `{
  "last_updated": "2024-01-10T21:00:00",
  "total_records": 3,
  "data": [
    {"date": "2024/01/10", "numbers": [1, 2, 3, 4, 5], "timestamp": "2024-01-10T00:00:00"},
    {"date": "2024/01/09", "numbers": [1, 2, 6, 7, 40], "timestamp": "2024-01-09T00:00:00"},
    {"date": "2024/01/08", "numbers": [1, 3, 9, 10, 11], "timestamp": "2024-01-08T00:00:00"}
  ]
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func newFileService(t *testing.T, content string) (*Service, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lottery_data.json")
	if content != "" {
		writeFile(t, path, content)
	}

	svc, err := New(context.Background(), Config{Path: path})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	t.Cleanup(func() {
		if err := svc.Close(); err != nil {
			t.Logf("Close() failed: %v", err)
		}
	})
	return svc, path
}

// waitForEvent drains events until one of type want arrives.
func waitForEvent(t *testing.T, svc *Service, want EventType) Event {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case ev := <-svc.Events():
			if ev.Type == want {
				return ev
			}
		case <-timeout:
			t.Fatalf("timed out waiting for event %d", want)
			return Event{}
		}
	}
}

func TestDecode(t *testing.T) {
	ds, rejected, err := Decode([]byte(validDoc))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if rejected != 1 {
		t.Errorf("rejected = %d, want 1", rejected)
	}
	if len(ds.Data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(ds.Data))
	}
	if ds.Data[0].Date != "2024/01/10" || ds.Data[1].Date != "2024/01/08" {
		t.Errorf("order not preserved: %s, %s", ds.Data[0].Date, ds.Data[1].Date)
	}
	if ds.LastUpdated != "2024-01-10T21:00:00" || ds.TotalRecords != 3 {
		t.Errorf("header = %q/%d", ds.LastUpdated, ds.TotalRecords)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"NotJSON", "<html>"},
		{"Array", `[{"date":"d"}]`},
		{"MissingData", `{"last_updated":"x"}`},
		{"NullData", `{"data":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode([]byte(tt.doc))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode() error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestNew_LoadsFile(t *testing.T) {
	svc, path := newFileService(t, validDoc)

	snap := svc.Snapshot()
	if !snap.OK() {
		t.Fatalf("Snapshot().OK() = false, err = %v", snap.Err)
	}
	if snap.Source != path {
		t.Errorf("Source = %q, want %q", snap.Source, path)
	}
	if snap.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", snap.Rejected)
	}
	if len(svc.Records()) != 2 {
		t.Errorf("Records() = %d, want 2", len(svc.Records()))
	}
	if svc.Path() != path {
		t.Errorf("Path() = %q, want %q", svc.Path(), path)
	}

	ev := waitForEvent(t, svc, EventLoaded)
	if len(ev.Snapshot.Dataset.Data) != 2 {
		t.Errorf("event snapshot has %d draws, want 2", len(ev.Snapshot.Dataset.Data))
	}
}

func TestNew_MissingFile(t *testing.T) {
	svc, _ := newFileService(t, "")

	snap := svc.Snapshot()
	if snap.OK() {
		t.Fatal("Snapshot().OK() should be false for a missing file")
	}
	if !errors.Is(snap.Err, os.ErrNotExist) {
		t.Errorf("Err = %v, want os.ErrNotExist", snap.Err)
	}
	waitForEvent(t, svc, EventError)
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Error("New() should fail without path or URL")
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	svc, path := newFileService(t, validDoc)
	waitForEvent(t, svc, EventLoaded)

	records := []models.DrawRecord{
		{Date: "2024/01/11", Numbers: []int{7, 8, 9, 10, 11}, Timestamp: "2024-01-11T00:00:00"},
		{Date: "2024/01/10", Numbers: []int{1, 2, 3, 4, 5}, Timestamp: "2024-01-10T00:00:00"},
	}
	if err := Save(path, records); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	ev := waitForEvent(t, svc, EventChanged)
	if got := len(ev.Snapshot.Dataset.Data); got != 2 {
		t.Errorf("reloaded %d draws, want 2", got)
	}
	if latest := svc.Snapshot().Dataset.Latest(); latest == nil || latest.Date != "2024/01/11" {
		t.Errorf("Latest() = %+v, want 2024/01/11", latest)
	}
}

func TestWatcher_KeepsLastGoodOnBrokenWrite(t *testing.T) {
	svc, path := newFileService(t, validDoc)
	waitForEvent(t, svc, EventLoaded)

	writeFile(t, path, "{ not json")

	ev := waitForEvent(t, svc, EventError)
	if !errors.Is(ev.Error, ErrMalformed) {
		t.Errorf("event error = %v, want ErrMalformed", ev.Error)
	}

	snap := svc.Snapshot()
	if snap.OK() {
		t.Error("Snapshot().OK() should be false after a failed reload")
	}
	if len(snap.Dataset.Data) != 2 {
		t.Errorf("last good dataset lost: %d draws", len(snap.Dataset.Data))
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "lottery_data.json")
	records := []models.DrawRecord{
		{Date: "2024/01/10", Numbers: []int{1, 2, 3, 4, 5}, Timestamp: "2024-01-10T00:00:00"},
	}

	if err := Save(path, records); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	ds, rejected, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() of saved file failed: %v", err)
	}
	if rejected != 0 || ds.TotalRecords != 1 || len(ds.Data) != 1 {
		t.Errorf("saved dataset = %+v, rejected %d", ds, rejected)
	}
	if _, err := time.Parse("2006-01-02T15:04:05", ds.LastUpdated); err != nil {
		t.Errorf("LastUpdated %q is not a timestamp: %v", ds.LastUpdated, err)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}

func TestSave_EmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lottery_data.json")
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if _, _, err := Decode(data); err != nil {
		t.Errorf("empty dataset should decode, got %v", err)
	}
}

func TestURLMode(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validDoc))
	}))
	defer srv.Close()

	svc, err := New(context.Background(), Config{URL: srv.URL, Attempts: 3})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer svc.Close()

	snap := svc.Snapshot()
	if !snap.OK() {
		t.Fatalf("Snapshot().OK() = false, err = %v", snap.Err)
	}
	if hits.Load() != 2 {
		t.Errorf("server hit %d times, want 2 (one retry)", hits.Load())
	}
	if svc.Path() != "" {
		t.Errorf("Path() = %q, want empty in URL mode", svc.Path())
	}
	if snap.Source != srv.URL {
		t.Errorf("Source = %q, want %q", snap.Source, srv.URL)
	}
}

func TestURLMode_NotFoundIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	svc, err := New(context.Background(), Config{URL: srv.URL, Attempts: 3})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer svc.Close()

	if !errors.Is(svc.Snapshot().Err, ErrHTTPStatus) {
		t.Errorf("Err = %v, want ErrHTTPStatus", svc.Snapshot().Err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
}

func TestClose_Idempotent(t *testing.T) {
	svc, _ := newFileService(t, validDoc)
	if err := svc.Close(); err != nil {
		t.Fatalf("first Close() failed: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}
