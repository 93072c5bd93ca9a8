package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
)

// testDraws returns n newest-first draws dated one day apart.
func testDraws(n int) []models.DrawRecord {
	base := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	draws := make([]models.DrawRecord, n)
	for i := range draws {
		day := base.AddDate(0, 0, -i)
		draws[i] = models.DrawRecord{
			Date:      day.Format("2006/01/02"),
			Numbers:   []int{1, 2, 3, 4, 5 + i%30},
			Timestamp: day.Format("2006-01-02T15:04:05"),
		}
	}
	return draws
}

func TestNewState(t *testing.T) {
	s := NewState()
	if s == nil {
		t.Fatal("NewState returned nil")
	}
	if s.DrawCount() != 0 {
		t.Error("Draws should be empty")
	}
	if !s.Loading.Initial {
		t.Error("Initial loading should be true")
	}
	if s.GetLookback() != models.Lookback30 {
		t.Errorf("GetLookback = %v, want 30 periods", s.GetLookback())
	}

	a := s.Analysis()
	if len(a.Numbers) != 39 {
		t.Errorf("empty analysis should still rank 39 numbers, got %d", len(a.Numbers))
	}
	if len(a.Combinations) != 741 {
		t.Errorf("empty analysis should still rank 741 pairs, got %d", len(a.Combinations))
	}
}

func TestState_SetLoading(t *testing.T) {
	s := NewState()

	s.SetLoading("draws", true)
	if !s.Loading.Draws {
		t.Error("Draws loading should be true")
	}

	s.SetLoading("draws", false)
	if !s.AnyLoading() {
		t.Error("AnyLoading should be true (Initial is true)")
	}

	s.SetLoading("initial", false)
	if s.AnyLoading() {
		t.Error("AnyLoading should be false")
	}

	s.SetLoading("scrape", true)
	if !s.IsScraping() || !s.AnyLoading() {
		t.Error("scrape loading should be reported")
	}
}

func TestState_SetDraws(t *testing.T) {
	s := NewState()
	draws := testDraws(40)

	s.SetDraws(draws, "file")

	if s.DrawCount() != 40 {
		t.Errorf("DrawCount = %d, want 40", s.DrawCount())
	}
	if s.GetSource() != "file" {
		t.Errorf("GetSource = %q, want file", s.GetSource())
	}
	if latest := s.LatestDraw(); latest == nil || latest.Date != "2024/03/31" {
		t.Errorf("LatestDraw = %+v", latest)
	}
	if s.GetLastUpdated().IsZero() {
		t.Error("LastUpdated should be set")
	}

	// The state keeps its own copy.
	draws[0].Date = "changed"
	if s.GetDraws()[0].Date != "2024/03/31" {
		t.Error("SetDraws should copy the history")
	}

	a := s.Analysis()
	if a.Window.Len() != 30 {
		t.Errorf("window = %d draws, want 30", a.Window.Len())
	}
	if a.Window.Title != "Statistics (most recent 30 periods)" {
		t.Errorf("Title = %q", a.Window.Title)
	}
	if a.Numbers[0].Count != 30 {
		t.Errorf("top count = %d, want 30", a.Numbers[0].Count)
	}
}

func TestState_SelectedDate(t *testing.T) {
	s := NewState()
	s.SetDraws(testDraws(40), "file")

	s.SetSelectedDate("2024/03/21")
	if s.GetSelectedDate() != "2024/03/21" {
		t.Fatalf("GetSelectedDate = %q", s.GetSelectedDate())
	}

	a := s.Analysis()
	if a.Window.Len() != 30 {
		t.Errorf("window = %d draws, want 30", a.Window.Len())
	}
	if a.Window.Records[0].Date != "2024/03/21" {
		t.Errorf("window starts at %s, want 2024/03/21", a.Window.Records[0].Date)
	}
	if a.Window.Title != "Statistics (2024/03/21 looking back 30 periods)" {
		t.Errorf("Title = %q", a.Window.Title)
	}

	// A reload that drops the selected draw clears the selection.
	s.SetDraws(testDraws(5), "file")
	if s.GetSelectedDate() != "" {
		t.Errorf("selection should be cleared, got %q", s.GetSelectedDate())
	}

	s.SetSelectedDate("2024/03/30")
	s.SetSelectedDate("")
	if s.Analysis().Window.SelectedDate != "" {
		t.Error("clearing the date should return to the latest draws")
	}
}

func TestState_Lookback(t *testing.T) {
	s := NewState()
	s.SetDraws(testDraws(120), "file")

	want := []struct {
		lookback models.LookbackRange
		window   int
	}{
		{models.Lookback50, 50},
		{models.Lookback100, 100},
		{models.LookbackAll, 120},
		{models.Lookback10, 10},
		{models.Lookback30, 30},
	}

	for _, w := range want {
		t.Run(w.lookback.String(), func(t *testing.T) {
			if got := s.CycleLookback(); got != w.lookback {
				t.Fatalf("CycleLookback = %v, want %v", got, w.lookback)
			}
			if got := s.Analysis().Window.Len(); got != w.window {
				t.Errorf("window = %d, want %d", got, w.window)
			}
		})
	}

	s.SetLookback(models.Lookback10)
	if s.Analysis().Window.Len() != 10 {
		t.Errorf("SetLookback(10) window = %d", s.Analysis().Window.Len())
	}
}

func TestState_TopCount(t *testing.T) {
	s := NewState()
	if s.GetTopCount() != 5 {
		t.Errorf("default TopCount = %d, want 5", s.GetTopCount())
	}
	s.SetTopCount(7)
	s.SetTopCount(0)
	if s.GetTopCount() != 7 {
		t.Errorf("TopCount = %d, want 7", s.GetTopCount())
	}
}

func TestState_Stats(t *testing.T) {
	s := NewState()
	if s.GetStats() != nil {
		t.Error("GetStats should be nil initially")
	}

	s.SetStats(services.StatsEvent{TotalDraws: 12, LatestDate: "2024/03/31"})
	stats := s.GetStats()
	if stats == nil || stats.TotalDraws != 12 {
		t.Errorf("GetStats = %+v", stats)
	}
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "test", time.Minute)
	if id == "" {
		t.Error("AddNotification returned empty ID")
	}

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("GetNotifications len = %d, want 1", len(notifs))
	}
	if notifs[0].Message != "test" {
		t.Errorf("Notification message = %s, want test", notifs[0].Message)
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("Notification should be removed")
	}
}

func TestState_NotificationLimit(t *testing.T) {
	s := NewState()
	for i := range 15 {
		s.AddNotification(NotificationInfo, fmt.Sprintf("n%d", i), time.Minute)
	}

	notifs := s.GetNotifications()
	if len(notifs) != maxNotifications {
		t.Fatalf("kept %d notifications, want %d", len(notifs), maxNotifications)
	}
	if notifs[0].Message != "n5" {
		t.Errorf("oldest kept = %s, want n5", notifs[0].Message)
	}
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState()

	s.notifications = append(s.notifications,
		Notification{ID: "expired", CreatedAt: time.Now().Add(-2 * time.Minute), Duration: time.Minute},
		Notification{ID: "active", CreatedAt: time.Now(), Duration: time.Minute},
		Notification{ID: "sticky", CreatedAt: time.Now().Add(-time.Hour)},
	)

	s.ClearExpiredNotifications()

	if len(s.notifications) != 2 {
		t.Fatalf("notifications = %d, want 2", len(s.notifications))
	}
	if s.notifications[0].ID != "active" || s.notifications[1].ID != "sticky" {
		t.Errorf("remaining = %s, %s", s.notifications[0].ID, s.notifications[1].ID)
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Loading...")
	s.SetLoadingNotification("Still loading...")

	notifs := s.GetNotifications()
	if len(notifs) != 1 {
		t.Fatalf("loading notification should be unique, got %d", len(notifs))
	}
	if notifs[0].Type != NotificationLoading || notifs[0].Message != "Still loading..." {
		t.Errorf("notification = %+v", notifs[0])
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationLoading, "loading"},
		{NotificationType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestState_TimeSinceUpdate(t *testing.T) {
	s := NewState()
	if s.TimeSinceUpdate() != 0 {
		t.Error("TimeSinceUpdate should be 0 before any update")
	}
	s.SetDraws(testDraws(1), "file")
	if s.TimeSinceUpdate() < 0 {
		t.Error("TimeSinceUpdate should not be negative")
	}
}

func TestState_PendingLoads(t *testing.T) {
	s := NewState()
	s.SetLoading("draws", false)
	s.SetLoading("stats", false)
	s.SetLoading("scrape", false)
	if got := s.PendingLoads(); len(got) != 0 {
		t.Errorf("PendingLoads = %v, want none", got)
	}

	s.SetLoading("scrape", true)
	s.SetLoading("draws", true)
	got := s.PendingLoads()
	if len(got) != 2 || got[0] != "draws" || got[1] != "scrape" {
		t.Errorf("PendingLoads = %v, want [draws scrape]", got)
	}
}
