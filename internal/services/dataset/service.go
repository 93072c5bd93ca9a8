// Package dataset loads the draw history document from disk or over HTTP and
// keeps it current, reloading the file whenever it changes.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-json"

	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/lottery"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// ErrMalformed is returned when the dataset is not a JSON object with a data array.
var ErrMalformed = errors.New("malformed dataset")

// ErrHTTPStatus is returned when the dataset URL answers with a non-200 status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// Config selects where the dataset comes from. URL wins over Path when both are set.
type Config struct {
	Path        string
	URL         string
	HTTPTimeout time.Duration
	// Attempts bounds HTTP retries; zero means 3.
	Attempts uint
	// HTTPClient overrides the client used for URL mode.
	HTTPClient *http.Client
}

// Snapshot is the last load result. Err is set when the most recent load
// failed; Dataset then still holds the last good document, if any.
type Snapshot struct {
	Dataset  models.Dataset
	LoadedAt time.Time
	Source   string
	Rejected int
	Err      error
}

// OK reports whether the most recent load succeeded.
func (s Snapshot) OK() bool {
	return s.Err == nil && !s.LoadedAt.IsZero()
}

// Event represents a dataset service event.
type Event struct {
	Type     EventType
	Error    error
	Snapshot Snapshot
}

// EventType defines the type of dataset event.
type EventType int

const (
	EventLoaded EventType = iota
	EventChanged
	EventError
)

// Service holds the current dataset and reloads it on file changes.
type Service struct {
	mu            sync.RWMutex
	cfg           Config
	snapshot      Snapshot
	client        *http.Client
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	stopOnce      sync.Once
	debounceTimer *time.Timer
}

// New creates the service and performs the first load. A missing or broken
// dataset is not an error here: it is recorded in the snapshot and reported
// as an EventError, and a file that appears later is picked up by the watcher.
func New(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.Path == "" && cfg.URL == "" {
		return nil, errors.New("dataset path or URL is required")
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	s := &Service{
		cfg:       cfg,
		client:    client,
		eventChan: make(chan Event, 100),
		stopChan:  make(chan struct{}),
	}

	if cfg.URL == "" {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if err := s.reload(ctx, EventLoaded); err != nil {
		logger.Warn("initial dataset load failed", "source", s.source(), "error", err)
	}

	if cfg.URL == "" {
		if err := s.startWatcher(); err != nil {
			return nil, fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	return s, nil
}

// Events returns the event channel for subscribing to dataset changes.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Snapshot returns the current load state. The draw slice is shared and
// must not be modified.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Records returns the newest-first draw history of the current snapshot.
func (s *Service) Records() []models.DrawRecord {
	return s.Snapshot().Dataset.Data
}

// Path returns the dataset file path, empty in URL mode.
func (s *Service) Path() string {
	if s.cfg.URL != "" {
		return ""
	}
	return s.cfg.Path
}

// Reload re-reads the dataset from its source.
func (s *Service) Reload(ctx context.Context) error {
	return s.reload(ctx, EventChanged)
}

func (s *Service) reload(ctx context.Context, success EventType) error {
	data, err := s.read(ctx)
	if err == nil {
		var ds models.Dataset
		var rejected int
		ds, rejected, err = Decode(data)
		if err == nil {
			snap := Snapshot{
				Dataset:  ds,
				LoadedAt: time.Now(),
				Source:   s.source(),
				Rejected: rejected,
			}
			s.mu.Lock()
			s.snapshot = snap
			s.mu.Unlock()

			logger.Info("dataset loaded", "source", snap.Source, "draws", len(ds.Data), "rejected", rejected)
			s.sendEvent(Event{Type: success, Snapshot: snap})
			return nil
		}
	}

	s.mu.Lock()
	s.snapshot.Err = err
	s.snapshot.Source = s.source()
	snap := s.snapshot
	s.mu.Unlock()

	s.sendEvent(Event{Type: EventError, Error: err, Snapshot: snap})
	return err
}

func (s *Service) source() string {
	if s.cfg.URL != "" {
		return s.cfg.URL
	}
	return s.cfg.Path
}

func (s *Service) read(ctx context.Context) ([]byte, error) {
	if s.cfg.URL != "" {
		return s.fetch(ctx)
	}
	data, err := os.ReadFile(s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	return data, nil
}

// fetch GETs the dataset URL, retrying network errors and 5xx responses.
func (s *Service) fetch(ctx context.Context) ([]byte, error) {
	var body []byte

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, http.NoBody)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("Accept", "application/json")

			resp, err := s.client.Do(req)
			if err != nil {
				return err
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusOK {
				statusErr := fmt.Errorf("%w: %d", ErrHTTPStatus, resp.StatusCode)
				if resp.StatusCode < http.StatusInternalServerError {
					return retry.Unrecoverable(statusErr)
				}
				return statusErr
			}

			body, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.cfg.Attempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	return body, nil
}

// rawDataset mirrors models.Dataset but keeps records undecoded so each
// one can be validated on its own.
type rawDataset struct {
	LastUpdated  string            `json:"last_updated"`
	TotalRecords int               `json:"total_records"`
	Data         []json.RawMessage `json:"data"`
}

// Decode parses a dataset document. Records that fail validation are
// dropped and counted in rejected; the remaining order is preserved.
func Decode(data []byte) (ds models.Dataset, rejected int, err error) {
	var raw rawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Dataset{}, 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if raw.Data == nil {
		return models.Dataset{}, 0, fmt.Errorf("%w: missing data array", ErrMalformed)
	}

	ds.LastUpdated = raw.LastUpdated
	ds.TotalRecords = raw.TotalRecords
	ds.Data = make([]models.DrawRecord, 0, len(raw.Data))

	for i, item := range raw.Data {
		rec, err := lottery.ParseRecord(item)
		if err != nil {
			rejected++
			logger.Warn("dropping invalid draw record", "index", i, "error", err)
			continue
		}
		ds.Data = append(ds.Data, rec)
	}

	return ds, rejected, nil
}

// Save writes records as a dataset document to path, atomically replacing
// any existing file. last_updated and total_records are filled in.
func Save(path string, records []models.DrawRecord) error {
	ds := models.Dataset{
		LastUpdated:  time.Now().Format("2006-01-02T15:04:05"),
		TotalRecords: len(records),
		Data:         records,
	}
	if ds.Data == nil {
		ds.Data = []models.DrawRecord{}
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Write to temp file first, then rename
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		removeTemp(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		removeTemp(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		removeTemp(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

func removeTemp(name string) {
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		logger.Error("failed to remove temp file", "error", err)
	}
}

// startWatcher starts the file system watcher.
func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Watch the directory (to catch file creation and atomic renames)
	dir := filepath.Dir(s.cfg.Path)
	if err := watcher.Add(dir); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

// watchLoop handles file system events with debouncing.
func (s *Service) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}

			// Only care about the dataset file
			if filepath.Base(event.Name) != filepath.Base(s.cfg.Path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.mu.Lock()
				if s.debounceTimer != nil {
					s.debounceTimer.Stop()
				}
				s.debounceTimer = time.AfterFunc(debounceInterval, s.handleFileChange)
				s.mu.Unlock()
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

// handleFileChange reloads the dataset after an external change.
func (s *Service) handleFileChange() {
	select {
	case <-s.stopChan:
		return
	default:
	}

	if err := s.Reload(context.Background()); err != nil {
		logger.Warn("dataset reload failed", "path", s.cfg.Path, "error", err)
	}
}

// sendEvent sends an event to the event channel non-blocking.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		// Channel full, drop oldest event
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the file watcher and cleans up resources.
func (s *Service) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
