package app

import (
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to trigger state refresh.
type TickMsg struct {
	Time time.Time
}

// StartLoadingMsg signals that a resource is starting to load.
type StartLoadingMsg struct {
	Resource string
}

// StopLoadingMsg signals that a resource has finished loading.
type StopLoadingMsg struct {
	Resource string
}

// DrawsLoadedMsg contains the draw history and dataset statistics.
type DrawsLoadedMsg struct {
	Source string
	Draws  []models.DrawRecord
	Stats  services.StatsEvent
}

// StatsLoadedMsg contains loaded statistics.
type StatsLoadedMsg struct {
	Stats services.StatsEvent
}

// ReloadResultMsg contains the result of re-reading the dataset.
type ReloadResultMsg struct {
	Error error
}

// ScrapeResultMsg contains the result of a scrape run.
type ScrapeResultMsg struct {
	Error error
	Run   models.ScrapeRun
}

// RefreshMsg requests a refresh of data.
type RefreshMsg struct {
	Resource string // "all", "draws", "stats"
}

// SelectDateMsg anchors the statistics window at a draw date. An empty
// date clears the selection.
type SelectDateMsg struct {
	Date string
}

// LookbackChangedMsg signals that the statistics period changed.
type LookbackChangedMsg struct {
	Lookback models.LookbackRange
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Message  string
	Type     NotificationType
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}
