// Package statistics provides the number frequency tab.
package statistics

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
)

// trendWidth is the sparkline width of the trend column.
const trendWidth = 20

// keyMap defines the key bindings specific to the statistics tab.
type keyMap struct {
	CycleLookback key.Binding
	ClearDate     key.Binding
	ToggleView    key.Binding
	Up            key.Binding
	Down          key.Binding
}

// defaultKeyMap returns the default key bindings for the statistics tab.
func defaultKeyMap() keyMap {
	return keyMap{
		CycleLookback: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle period"),
		),
		ClearDate: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear date"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "table/chart"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// Model represents the statistics tab state.
type Model struct {
	state     *app.State
	keys      keyMap
	table     table.Model
	viewport  viewport.Model
	width     int
	height    int
	showChart bool
}

// New creates a new statistics model.
func New(state *app.State) *Model {
	return &Model{
		state:    state,
		keys:     defaultKeyMap(),
		table:    components.NewTable(columns(), 10),
		viewport: viewport.New(0, 0),
	}
}

func columns() []table.Column {
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Number", Width: 7},
		{Title: "Count", Width: 6},
		{Title: "Percent", Width: 8},
		{Title: "Trend", Width: trendWidth},
	}
}

// Init initializes the statistics tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the statistics tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.CycleLookback):
		lookback := m.state.CycleLookback()
		return m, func() tea.Msg {
			return app.LookbackChangedMsg{Lookback: lookback}
		}

	case key.Matches(keyMsg, m.keys.ClearDate):
		if m.state.GetSelectedDate() == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			return app.SelectDateMsg{}
		}

	case key.Matches(keyMsg, m.keys.ToggleView):
		m.showChart = !m.showChart
		m.viewport.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	if m.showChart {
		m.viewport, cmd = m.viewport.Update(keyMsg)
	} else {
		m.table, cmd = m.table.Update(keyMsg)
	}
	return m, cmd
}

// updateTableData rebuilds the frequency rows from the current analysis.
func (m *Model) updateTableData() {
	a := m.state.Analysis()
	rows := make([]table.Row, 0, len(a.Numbers))

	for i, s := range a.Numbers {
		trend := components.RenderSparkline(components.Appearances(a.Window.Records, s.Number), trendWidth)
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%02d", s.Number),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.2f%%", s.Percentage),
			trend,
		})
	}

	m.table.SetRows(rows)
}

// SetSize sets the available size for the statistics tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-12, 5))
	m.viewport.Width = width
	m.viewport.Height = max(height-8, 5)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.CycleLookback,
		m.keys.ClearDate,
		m.keys.ToggleView,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.CycleLookback, m.keys.ClearDate, m.keys.ToggleView},
		{m.keys.Up, m.keys.Down},
	}
}
