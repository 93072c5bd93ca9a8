// Package history provides the history tab for browsing past draws.
package history

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
)

// recentRuns is how many scrape runs the tab lists.
const recentRuns = 5

// keyMap defines the key bindings specific to the history tab.
type keyMap struct {
	Select key.Binding
	Top    key.Binding
	Bottom key.Binding
	Up     key.Binding
	Down   key.Binding
}

// defaultKeyMap returns the default key bindings for the history tab.
func defaultKeyMap() keyMap {
	return keyMap{
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "analyze from this draw"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "newest"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "oldest"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// runsLoadedMsg is sent when the scrape run log is loaded.
type runsLoadedMsg struct {
	runs []models.ScrapeRun
}

// runsErrorMsg is sent when the scrape run log cannot be read.
type runsErrorMsg struct {
	err string
}

// Model represents the history tab state.
type Model struct {
	state    *app.State
	services *services.Manager
	keys     keyMap
	table    table.Model
	width    int
	height   int

	runs     []models.ScrapeRun
	errorMsg string
}

// New creates a new history model.
func New(state *app.State, svc *services.Manager) *Model {
	return &Model{
		state:    state,
		services: svc,
		keys:     defaultKeyMap(),
		table: components.NewTable([]table.Column{
			{Title: "#", Width: 6},
			{Title: "Date", Width: 12},
			{Title: "Numbers", Width: 16},
			{Title: "Sum", Width: 5},
			{Title: "", Width: 2},
		}, 10),
	}
}

// Init initializes the history tab.
func (m *Model) Init() tea.Cmd {
	return m.loadRunsCmd()
}

// loadRunsCmd creates a command to load the recent scrape runs.
func (m *Model) loadRunsCmd() tea.Cmd {
	if m.services == nil {
		return nil
	}
	svc := m.services
	return func() tea.Msg {
		runs, err := svc.Database().GetRecentScrapeRuns(recentRuns)
		if err != nil {
			return runsErrorMsg{err: err.Error()}
		}
		return runsLoadedMsg{runs: runs}
	}
}

// Update handles messages for the history tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case runsLoadedMsg:
		m.runs = msg.runs
		m.errorMsg = ""

	case runsErrorMsg:
		m.errorMsg = msg.err
		return m, func() tea.Msg {
			return app.AddNotificationMsg{
				Type:     app.NotificationError,
				Message:  fmt.Sprintf("Scrape log error: %s", msg.err),
				Duration: app.LongNotificationDuration,
			}
		}

	case app.ScrapeResultMsg, app.DrawsLoadedMsg:
		return m, m.loadRunsCmd()

	case app.TabSwitchMsg:
		if msg.Tab == app.TabHistory {
			return m, m.loadRunsCmd()
		}

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (app.Tab, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		draws := m.state.GetDraws()
		cursor := m.table.Cursor()
		if cursor < 0 || cursor >= len(draws) {
			return m, nil
		}
		date := draws[cursor].Date
		return m, func() tea.Msg {
			return app.SelectDateMsg{Date: date}
		}

	case key.Matches(msg, m.keys.Top):
		m.table.GotoTop()

	case key.Matches(msg, m.keys.Bottom):
		m.updateTableData()
		m.table.GotoBottom()

	default:
		m.updateTableData()
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateTableData rebuilds the draw rows from the shared history.
func (m *Model) updateTableData() {
	draws := m.state.GetDraws()
	selected := m.state.GetSelectedDate()

	rows := make([]table.Row, 0, len(draws))
	for i, d := range draws {
		sum := 0
		for _, n := range d.Numbers {
			sum += n
		}
		marker := ""
		if d.Date == selected {
			marker = "◆"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", len(draws)-i),
			d.Date,
			components.FormatNumbers(d.Numbers),
			fmt.Sprintf("%d", sum),
			marker,
		})
	}

	m.table.SetRows(rows)
}

// SetSize sets the available size for the history tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-16, 5))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.Select,
		m.keys.Top,
		m.keys.Bottom,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Select},
		{m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom},
	}
}
