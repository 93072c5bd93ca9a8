// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"slices"
	"sync"
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/lottery"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// LoadingState tracks loading states for different resources.
type LoadingState struct {
	Initial bool
	Draws   bool
	Scrape  bool
	Stats   bool
}

// Analysis is the statistics computed for the active window.
type Analysis struct {
	Window       models.Window
	Numbers      []models.NumberStat
	Combinations []models.CombinationStat
	Summary      lottery.Summary
}

// State is the application state shared by all tabs.
type State struct {
	mu sync.RWMutex

	draws        []models.DrawRecord
	source       string
	stats        *services.StatsEvent
	selectedDate string
	lookback     models.LookbackRange
	topCount     int
	analysis     Analysis

	Loading     LoadingState
	LastUpdated time.Time

	notifications   []Notification
	notificationSeq int
}

// NewState creates an empty state using the default 30 period window.
func NewState() *State {
	s := &State{
		lookback:      models.Lookback30,
		topCount:      lottery.DefaultTopCount,
		notifications: make([]Notification, 0),
		Loading: LoadingState{
			Initial: true,
		},
	}
	s.recompute()
	return s
}

// recompute refreshes the cached analysis. Callers must hold the write lock.
func (s *State) recompute() {
	window := lottery.FilterRecordsByDate(s.draws, s.selectedDate, s.lookback.Resolve(len(s.draws)))
	numbers := lottery.CalculateNumberStatistics(window.Records)

	s.analysis = Analysis{
		Window:       window,
		Numbers:      numbers,
		Combinations: lottery.CalculateCombinationStatistics(window.Records),
		Summary:      lottery.Summarize(numbers),
	}
}

// SetDraws replaces the draw history. A selected date that no longer exists
// in the history is cleared.
func (s *State) SetDraws(draws []models.DrawRecord, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draws = slices.Clone(draws)
	s.source = source
	s.LastUpdated = time.Now()

	if s.selectedDate != "" && !slices.ContainsFunc(s.draws, func(d models.DrawRecord) bool {
		return d.Date == s.selectedDate
	}) {
		s.selectedDate = ""
	}
	s.recompute()
}

// GetDraws returns a copy of the newest-first draw history.
func (s *State) GetDraws() []models.DrawRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.draws)
}

// DrawCount returns the number of draws in the history.
func (s *State) DrawCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.draws)
}

// LatestDraw returns the most recent draw, or nil when there is none.
func (s *State) LatestDraw() *models.DrawRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.draws) == 0 {
		return nil
	}
	d := s.draws[0].Clone()
	return &d
}

// GetSource returns where the current history was loaded from.
func (s *State) GetSource() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// SetSelectedDate anchors the statistics window at a draw date. An empty
// date returns to the most recent draws.
func (s *State) SetSelectedDate(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedDate == date {
		return
	}
	s.selectedDate = date
	s.recompute()
}

// GetSelectedDate returns the anchor date, empty when none is selected.
func (s *State) GetSelectedDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDate
}

// SetLookback changes the statistics period.
func (s *State) SetLookback(l models.LookbackRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookback == l {
		return
	}
	s.lookback = l
	s.recompute()
}

// CycleLookback advances to the next period and returns it.
func (s *State) CycleLookback() models.LookbackRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookback = s.lookback.Next()
	s.recompute()
	return s.lookback
}

// GetLookback returns the statistics period.
func (s *State) GetLookback() models.LookbackRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookback
}

// SetTopCount sets how many hot numbers the dashboard shows.
func (s *State) SetTopCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.topCount = n
	}
}

// GetTopCount returns how many hot numbers the dashboard shows.
func (s *State) GetTopCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.topCount
}

// Analysis returns the statistics for the active window.
func (s *State) Analysis() Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analysis
}

// SetLoading sets the loading state for a specific resource.
func (s *State) SetLoading(resource string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch resource {
	case "initial":
		s.Loading.Initial = loading
	case "draws":
		s.Loading.Draws = loading
	case "scrape":
		s.Loading.Scrape = loading
	case "stats":
		s.Loading.Stats = loading
	}
}

// AnyLoading returns true if any resource is currently loading.
func (s *State) AnyLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.Loading.Initial ||
		s.Loading.Draws ||
		s.Loading.Scrape ||
		s.Loading.Stats
}

// PendingLoads names the resources other than the initial load that are
// still loading, in a fixed order.
func (s *State) PendingLoads() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pending []string
	if s.Loading.Draws {
		pending = append(pending, "draws")
	}
	if s.Loading.Stats {
		pending = append(pending, "stats")
	}
	if s.Loading.Scrape {
		pending = append(pending, "scrape")
	}
	return pending
}

// IsInitialLoading returns true if initial data is still loading.
func (s *State) IsInitialLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Initial
}

// IsScraping returns true while a scrape run is in progress.
func (s *State) IsScraping() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Loading.Scrape
}

// SetStats updates the dataset and archive statistics.
func (s *State) SetStats(stats services.StatsEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = &stats
}

// GetStats returns the current statistics.
func (s *State) GetStats() *services.StatsEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = slices.DeleteFunc(s.notifications, func(n Notification) bool {
		return n.ID == id
	})
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = slices.DeleteFunc(s.notifications, func(n Notification) bool {
		return n.IsExpired()
	})
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}

// GetLastUpdated returns the last time the history was updated.
func (s *State) GetLastUpdated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.LastUpdated
}

// TimeSinceUpdate returns the duration since the last update.
func (s *State) TimeSinceUpdate() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.LastUpdated.IsZero() {
		return 0
	}
	return time.Since(s.LastUpdated)
}
