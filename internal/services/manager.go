// Package services provides service orchestration for the TUI.
package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"

	"github.com/j-veylop/lotto-dashboard-tui/internal/config"
	"github.com/j-veylop/lotto-dashboard-tui/internal/db"
	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services/dataset"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services/scraper"
)

// SourceArchive marks draws served from the local archive because the
// dataset could not be read.
const SourceArchive = "archive"

type (
	// DrawsChangedEvent is emitted when the draw history changes.
	DrawsChangedEvent struct {
		Draws  []models.DrawRecord
		Source string
		Added  int
	}

	// ScrapeFinishedEvent is emitted after a scrape run, successful or not.
	ScrapeFinishedEvent struct {
		Run models.ScrapeRun
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}

	// StatsEvent is emitted when dataset or archive statistics change.
	StatsEvent struct {
		LoadedAt      time.Time
		LastScrape    *models.ScrapeRun
		DatasetErr    error
		Source        string
		LatestDate    string
		LastUpdated   string
		TotalDraws    int
		ArchivedDraws int
		Rejected      int
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (DrawsChangedEvent) isServiceEvent()   {}
func (ScrapeFinishedEvent) isServiceEvent() {}
func (ErrorEvent) isServiceEvent()          {}
func (StatsEvent) isServiceEvent()          {}

// notifyFunc sends a desktop notification.
type notifyFunc func(title, message string) error

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	dataset     *dataset.Service
	scraper     *scraper.Scraper
	database    *db.DB
	eventChan   chan ServiceEvent
	stopChan    chan struct{}
	subscribers []chan<- ServiceEvent
	draws       []models.DrawRecord
	source      string
	notify      notifyFunc
	scrapeMu    sync.Mutex
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:       cfg,
		eventChan: make(chan ServiceEvent, 100),
		stopChan:  make(chan struct{}),
		notify:    desktopNotify,
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	m.dataset, err = dataset.New(context.Background(), dataset.Config{
		Path:        cfg.DataPath,
		URL:         cfg.DataURL,
		HTTPTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		_ = m.database.Close()
		return nil, fmt.Errorf("failed to initialize dataset: %w", err)
	}

	m.scraper = scraper.New(scraper.Config{
		BaseURL:    cfg.ScrapeBaseURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.HTTPTimeout,
		Delay:      cfg.ScrapeDelay,
		WebhookURL: cfg.DiscordWebhookURL,
	})

	m.syncSnapshot(m.dataset.Snapshot())

	go m.routeEvents()

	return m, nil
}

// routeEvents routes events from individual services to subscribers.
func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.dataset.Events():
			m.handleDatasetEvent(event)

		case <-m.stopChan:
			return
		}
	}
}

// handleDatasetEvent converts and broadcasts dataset events.
func (m *Manager) handleDatasetEvent(event dataset.Event) {
	switch event.Type {
	case dataset.EventLoaded, dataset.EventChanged:
		added := m.syncSnapshot(event.Snapshot)
		if event.Type == dataset.EventChanged {
			m.checkNotifications(added)
		}

		m.broadcast(m.drawsChanged(added))
		m.broadcast(m.GetStats())

	case dataset.EventError:
		m.broadcast(ErrorEvent{
			Service: "dataset",
			Error:   event.Error,
		})
		if m.syncSnapshot(event.Snapshot) > 0 {
			m.broadcast(m.drawsChanged(0))
		}
		m.broadcast(m.GetStats())
	}
}

// syncSnapshot adopts the snapshot's draws and mirrors them into the archive.
// With no usable dataset it falls back to the archived history. It returns
// how many draws are new compared with the previous history.
func (m *Manager) syncSnapshot(snap dataset.Snapshot) int {
	records := snap.Dataset.Data
	source := snap.Source

	if len(records) > 0 {
		if _, err := m.database.UpsertDraws(records); err != nil {
			logger.Warn("failed to archive draws", "error", err)
		}
	} else {
		archived, err := m.database.GetDraws(0)
		if err != nil {
			logger.Warn("failed to read archived draws", "error", err)
		}
		if len(archived) == 0 {
			return 0
		}
		records = archived
		source = SourceArchive
		logger.Info("serving draws from archive", "draws", len(records))
	}

	return m.setDraws(records, source)
}

// setDraws replaces the history and returns the number of dates not seen before.
func (m *Manager) setDraws(records []models.DrawRecord, source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	known := make(map[string]struct{}, len(m.draws))
	for _, d := range m.draws {
		known[d.Date] = struct{}{}
	}
	added := 0
	for _, d := range records {
		if _, ok := known[d.Date]; !ok {
			added++
		}
	}

	m.draws = slices.Clone(records)
	m.source = source
	return added
}

func (m *Manager) drawsChanged(added int) DrawsChangedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return DrawsChangedEvent{
		Draws:  slices.Clone(m.draws),
		Source: m.source,
		Added:  added,
	}
}

// checkNotifications sends a desktop notification when new draws arrive.
func (m *Manager) checkNotifications(added int) {
	if added <= 0 || !m.cfg.Notifications {
		return
	}

	latest := "unknown"
	m.mu.RLock()
	if len(m.draws) > 0 {
		latest = m.draws[0].Date
	}
	m.mu.RUnlock()

	title := fmt.Sprintf("New 539 draws: %d", added)
	body := fmt.Sprintf("Latest draw %s", latest)
	if err := m.notify(title, body); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	// Send to main event channel
	select {
	case m.eventChan <- event:
	default:
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd for the next event on a channel.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Draws returns the newest-first draw history.
func (m *Manager) Draws() []models.DrawRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.draws)
}

// Reload re-reads the dataset from its source.
func (m *Manager) Reload(ctx context.Context) error {
	return m.dataset.Reload(ctx)
}

// RunScrape fetches recent result pages, merges them into the history, writes
// the dataset file, archives the draws and sends notifications. The run is
// recorded in the archive whether or not it succeeds.
func (m *Manager) RunScrape(ctx context.Context) (models.ScrapeRun, error) {
	m.scrapeMu.Lock()
	defer m.scrapeMu.Unlock()

	start := time.Now()
	run := models.ScrapeRun{Timestamp: start, Pages: m.cfg.ScrapePages}

	err := m.scrape(ctx, &run)
	if err != nil {
		run.Error = err.Error()
	}
	run.DurationMs = time.Since(start).Milliseconds()

	if dbErr := m.database.InsertScrapeRun(&run); dbErr != nil {
		logger.Warn("failed to record scrape run", "error", dbErr)
	}

	m.broadcast(ScrapeFinishedEvent{Run: run})
	if err != nil {
		m.broadcast(ErrorEvent{Service: "scraper", Error: err})
		return run, err
	}
	m.broadcast(m.GetStats())
	return run, nil
}

func (m *Manager) scrape(ctx context.Context, run *models.ScrapeRun) error {
	fresh, err := m.scraper.ScrapeRecent(ctx, m.cfg.ScrapePages)
	if err != nil {
		return fmt.Errorf("failed to scrape results: %w", err)
	}
	run.Fetched = len(fresh)

	merged, added := scraper.Merge(m.Draws(), fresh)
	run.Added = added
	logger.Info("scrape merged", "fetched", len(fresh), "added", added, "total", len(merged))

	if added == 0 {
		return nil
	}

	if path := m.dataset.Path(); path != "" {
		if err := dataset.Save(path, merged); err != nil {
			return fmt.Errorf("failed to save dataset: %w", err)
		}
	}
	if _, err := m.database.UpsertDraws(merged); err != nil {
		return fmt.Errorf("failed to archive draws: %w", err)
	}

	m.setDraws(merged, m.sourceName())
	m.checkNotifications(added)
	m.broadcast(m.drawsChanged(added))

	if err := m.scraper.Notify(ctx, merged[0].Date, len(merged), added); err != nil {
		logger.Warn("webhook notification failed", "error", err)
	}
	return nil
}

func (m *Manager) sourceName() string {
	if m.cfg.DataURL != "" {
		return m.cfg.DataURL
	}
	return m.cfg.DataPath
}

// GetStats returns dataset and archive statistics.
func (m *Manager) GetStats() StatsEvent {
	snap := m.dataset.Snapshot()

	stats := StatsEvent{
		LoadedAt:    snap.LoadedAt,
		DatasetErr:  snap.Err,
		LastUpdated: snap.Dataset.LastUpdated,
		Rejected:    snap.Rejected,
	}

	m.mu.RLock()
	stats.Source = m.source
	stats.TotalDraws = len(m.draws)
	if len(m.draws) > 0 {
		stats.LatestDate = m.draws[0].Date
	}
	m.mu.RUnlock()

	if archive, err := m.database.GetArchiveStats(); err == nil {
		stats.ArchivedDraws = archive.TotalDraws
		stats.LastScrape = archive.LastScrape
	} else {
		logger.Debug("failed to read archive stats", "error", err)
	}

	return stats
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Dataset returns the dataset service.
func (m *Manager) Dataset() *dataset.Service {
	return m.dataset
}

// Scraper returns the scraper.
func (m *Manager) Scraper() *scraper.Scraper {
	return m.scraper
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	close(m.stopChan)

	m.mu.Lock()
	for _, sub := range m.subscribers {
		close(sub)
	}
	m.subscribers = nil
	m.mu.Unlock()

	var errs []error

	if err := m.dataset.Close(); err != nil {
		errs = append(errs, err)
	}

	if m.database != nil {
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// InitialState returns the initial state of all services for TUI initialization.
func (m *Manager) InitialState() ([]models.DrawRecord, StatsEvent) {
	return m.Draws(), m.GetStats()
}
