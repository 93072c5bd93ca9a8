package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
)

func newReadyModel() *Model {
	model := NewModel(nil)
	model.ready = true
	model.width = 100
	model.height = 40
	return model
}

// lastNotification runs a notification command through the model and
// returns the notification it added.
func lastNotification(t *testing.T, model *Model, cmd tea.Cmd) Notification {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a notification command")
	}
	msg, ok := cmd().(AddNotificationMsg)
	if !ok {
		t.Fatal("command should return AddNotificationMsg")
	}
	model.Update(msg)
	notifs := model.state.GetNotifications()
	if len(notifs) == 0 {
		t.Fatal("no notification added")
	}
	return notifs[len(notifs)-1]
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil)
	if model == nil {
		t.Fatal("NewModel returned nil")
	}
	if model.state == nil {
		t.Error("State should be initialized")
	}
	if model.activeTab != TabDashboard {
		t.Error("Default tab should be Dashboard")
	}
	if len(model.tabs) != 5 {
		t.Errorf("Should have 5 tabs placeholder, got %d", len(model.tabs))
	}
	if model.tabNames[TabCombinations] != "Combinations" {
		t.Errorf("tabNames[2] = %s, want Combinations", model.tabNames[TabCombinations])
	}
}

func TestModel_Init(t *testing.T) {
	model := NewModel(nil)
	if cmd := model.Init(); cmd == nil {
		t.Error("Init returned nil command")
	}
	if len(model.state.GetNotifications()) != 1 {
		t.Error("Init should show a loading notification")
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	model := NewModel(nil)
	newModel, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	m, ok := newModel.(*Model)
	if !ok {
		t.Fatal("Update returned wrong model type")
	}
	if m.width != 100 || m.height != 50 {
		t.Errorf("size = %dx%d, want 100x50", m.width, m.height)
	}
	if !m.IsReady() {
		t.Error("Model should be ready after WindowSizeMsg")
	}
}

func TestModel_Update_TabSwitch(t *testing.T) {
	model := newReadyModel()

	model.Update(TabSwitchMsg{Tab: TabHistory})
	if model.GetActiveTab() != TabHistory {
		t.Errorf("ActiveTab = %v, want History", model.activeTab)
	}

	keys := map[rune]TabID{
		'1': TabDashboard,
		'2': TabStatistics,
		'3': TabCombinations,
		'4': TabHistory,
		'5': TabInfo,
	}
	for r, want := range keys {
		model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		if model.activeTab != want {
			t.Errorf("key %c: ActiveTab = %v, want %v", r, model.activeTab, want)
		}
	}

	model.Update(TabSwitchMsg{Tab: TabInfo})
	model.Update(tea.KeyMsg{Type: tea.KeyTab})
	if model.activeTab != TabDashboard {
		t.Errorf("next tab should wrap to Dashboard, got %v", model.activeTab)
	}
	model.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.activeTab != TabInfo {
		t.Errorf("prev tab should wrap to Info, got %v", model.activeTab)
	}
}

func TestModel_Update_Tick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(TickMsg{Time: time.Now()})
	if cmd == nil {
		t.Error("TickMsg should return a command (next tick)")
	}
}

func TestModel_View(t *testing.T) {
	model := NewModel(nil)

	if view := model.View(); !strings.Contains(view, "Loading...") {
		t.Error("View should show Loading when not ready")
	}

	model.ready = true
	model.width = 120
	model.height = 24

	view := model.View()
	for _, name := range []string{"Dashboard", "Statistics", "Combinations", "History", "Info"} {
		if !strings.Contains(view, name) {
			t.Errorf("View should show %s tab", name)
		}
	}
	if !strings.Contains(view, "not yet implemented") {
		t.Error("View should show placeholder text")
	}
}

func TestModel_Help(t *testing.T) {
	model := newReadyModel()

	model.Update(ToggleHelpMsg{})
	if !model.IsHelpVisible() {
		t.Error("showHelp should be true")
	}

	view := model.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("View should show help modal")
	}
	if !strings.Contains(view, "Scrape new draws") {
		t.Error("Help should list the scrape action")
	}

	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyEsc})
	if model.showHelp {
		t.Error("Esc should close help")
	}

	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if model.showHelp {
		t.Error("showHelp should be false after toggling twice")
	}
}

func TestModel_HelpTallTerminal(t *testing.T) {
	model := newReadyModel()
	model.height = 80
	model.Update(ToggleHelpMsg{})

	view := model.View()
	if !strings.Contains(view, "Keyboard Shortcuts") {
		t.Error("help should be drawn below a short tab view")
	}
	if lines := strings.Count(view, "\n") + 1; lines < 40 {
		t.Errorf("view has %d lines, want the help centred in an 80 line terminal", lines)
	}
}

func TestPadLines(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		n     int
		want  int
	}{
		{"Shorter", []string{"a"}, 3, 3},
		{"Equal", []string{"a", "b"}, 2, 2},
		{"Longer", []string{"a", "b", "c"}, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padLines(tt.lines, tt.n)
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
			if got[0] != "a" {
				t.Errorf("first line = %q, want a", got[0])
			}
		})
	}
}

func TestModel_Notifications(t *testing.T) {
	model := NewModel(nil)

	model.Update(AddNotificationMsg{Message: "Test Note", Type: NotificationInfo})

	if len(model.state.GetNotifications()) != 1 {
		t.Errorf("Expected 1 notification, got %d", len(model.state.GetNotifications()))
	}

	model.ready = true
	model.width = 80
	model.height = 24
	if view := model.View(); !strings.Contains(view, "Test Note") {
		t.Error("View should show notification")
	}
}

func TestModel_DrawsLoaded(t *testing.T) {
	model := NewModel(nil)
	model.Init()

	model.Update(DrawsLoadedMsg{
		Draws:  testDraws(12),
		Source: "file",
		Stats:  services.StatsEvent{TotalDraws: 12, Source: "file"},
	})

	if model.state.DrawCount() != 12 {
		t.Errorf("DrawCount = %d, want 12", model.state.DrawCount())
	}
	if model.state.GetStats().TotalDraws != 12 {
		t.Error("Stats should be updated")
	}
	if model.state.IsInitialLoading() {
		t.Error("Initial loading should be false")
	}
	if len(model.state.GetNotifications()) != 0 {
		t.Error("loading notification should be cleared")
	}
}

func TestModel_SelectDate(t *testing.T) {
	model := newReadyModel()
	model.state.SetDraws(testDraws(40), "file")

	_, cmd := model.Update(SelectDateMsg{Date: "2024/03/11"})
	if cmd == nil {
		t.Fatal("SelectDateMsg should return a notification command")
	}
	if model.activeTab != TabStatistics {
		t.Errorf("ActiveTab = %v, want Statistics", model.activeTab)
	}
	if model.state.GetSelectedDate() != "2024/03/11" {
		t.Errorf("SelectedDate = %q", model.state.GetSelectedDate())
	}
	if got := model.state.Analysis().Window.Records[0].Date; got != "2024/03/11" {
		t.Errorf("window starts at %s", got)
	}

	model.Update(TabSwitchMsg{Tab: TabHistory})
	model.Update(SelectDateMsg{})
	if model.state.GetSelectedDate() != "" {
		t.Error("empty date should clear the selection")
	}
	if model.activeTab != TabHistory {
		t.Error("clearing the date should not switch tabs")
	}
}

func TestModel_LookbackChanged(t *testing.T) {
	model := NewModel(nil)
	cmds := model.handleAppMsg(LookbackChangedMsg{Lookback: models.Lookback50})
	if len(cmds) != 1 {
		t.Fatalf("got %d commands, want 1", len(cmds))
	}
	n := lastNotification(t, model, cmds[0])
	if n.Message != "Period: 50 Periods" {
		t.Errorf("Message = %q", n.Message)
	}
}

func TestModel_HandleServiceEvent(t *testing.T) {
	model := NewModel(nil)

	model.handleServiceEvent(services.StatsEvent{TotalDraws: 5})
	if model.state.GetStats().TotalDraws != 5 {
		t.Error("Stats should be updated")
	}

	cmd := model.handleServiceEvent(services.DrawsChangedEvent{Draws: testDraws(3), Source: "file", Added: 2})
	if model.state.DrawCount() != 3 {
		t.Errorf("DrawCount = %d, want 3", model.state.DrawCount())
	}
	if n := lastNotification(t, model, cmd); !strings.Contains(n.Message, "2 new draws") {
		t.Errorf("Message = %q", n.Message)
	}

	if cmd := model.handleServiceEvent(services.DrawsChangedEvent{Draws: testDraws(3)}); cmd != nil {
		t.Error("an unchanged reload should not notify")
	}

	cmd = model.handleServiceEvent(services.ErrorEvent{Service: "dataset", Error: errors.New("boom")})
	if n := lastNotification(t, model, cmd); n.Type != NotificationError || n.Message != "[dataset] boom" {
		t.Errorf("notification = %+v", n)
	}
}

func TestModel_ReloadAndScrapeResults(t *testing.T) {
	model := NewModel(nil)

	model.Update(StartLoadingMsg{Resource: "draws"})
	if !model.state.Loading.Draws {
		t.Error("Loading.Draws should be true")
	}

	cmds := model.handleReloadResult(ReloadResultMsg{})
	if model.state.Loading.Draws {
		t.Error("Loading.Draws should be false")
	}
	if n := lastNotification(t, model, cmds[0]); n.Type != NotificationSuccess {
		t.Errorf("reload notification = %+v", n)
	}

	cmds = model.handleReloadResult(ReloadResultMsg{Error: errors.New("missing")})
	if n := lastNotification(t, model, cmds[0]); n.Type != NotificationError {
		t.Errorf("failed reload notification = %+v", n)
	}

	model.state.SetLoading("scrape", true)
	cmds = model.handleScrapeResult(ScrapeResultMsg{Run: models.ScrapeRun{Fetched: 4, Added: 3}})
	if model.state.IsScraping() {
		t.Error("scrape loading should be cleared")
	}
	if n := lastNotification(t, model, cmds[0]); n.Message != "Scrape added 3 new draws" {
		t.Errorf("Message = %q", n.Message)
	}

	cmds = model.handleScrapeResult(ScrapeResultMsg{})
	if n := lastNotification(t, model, cmds[0]); n.Message != "No new draws" {
		t.Errorf("Message = %q", n.Message)
	}

	cmds = model.handleScrapeResult(ScrapeResultMsg{Error: errors.New("offline")})
	if n := lastNotification(t, model, cmds[0]); n.Type != NotificationError {
		t.Errorf("failed scrape notification = %+v", n)
	}
}

func TestModel_Update_Messages(t *testing.T) {
	model := NewModel(nil)

	model.Update(StatsLoadedMsg{Stats: services.StatsEvent{TotalDraws: 2}})
	if model.state.GetStats().TotalDraws != 2 {
		t.Error("Stats should be updated")
	}
	if model.state.Loading.Stats {
		t.Error("Stats loading should be false")
	}

	model.Update(StartLoadingMsg{Resource: "scrape"})
	if !model.state.IsScraping() {
		t.Error("scrape should be loading")
	}
	model.Update(StopLoadingMsg{Resource: "scrape"})
	if model.state.IsScraping() {
		t.Error("scrape should be stopped")
	}

	// services is nil, so refreshes are no-ops.
	model.Update(RefreshMsg{Resource: "all"})
	model.Update(RefreshMsg{Resource: "stats"})
	model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if model.state.IsScraping() {
		t.Error("scrape key without services should not start a scrape")
	}

	model.Update(ErrorMsg{Error: errors.New("bad")})
	model.Update(RemoveNotificationMsg{ID: "nonexistent"})
	model.Update(ClearExpiredNotificationsMsg{})
}

func TestModel_HandleSpinnerTick(t *testing.T) {
	model := NewModel(nil)
	_, cmd := model.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("Spinner tick should return command")
	}
}

func TestTabID_String(t *testing.T) {
	tests := map[TabID]string{
		TabDashboard:    "Dashboard",
		TabStatistics:   "Statistics",
		TabCombinations: "Combinations",
		TabHistory:      "History",
		TabInfo:         "Info",
		TabID(999):      "Unknown",
	}
	for id, want := range tests {
		if got := id.String(); got != want {
			t.Errorf("TabID(%d).String() = %s, want %s", id, got, want)
		}
	}
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp empty")
	}
	if len(km.FullHelp()) != 4 {
		t.Errorf("FullHelp groups = %d, want 4", len(km.FullHelp()))
	}
}
