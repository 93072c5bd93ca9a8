// Package combinations provides the pair frequency tab.
package combinations

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
)

// keyMap defines the key bindings specific to the combinations tab.
type keyMap struct {
	ToggleZero key.Binding
	Up         key.Binding
	Down       key.Binding
}

// defaultKeyMap returns the default key bindings for the combinations tab.
func defaultKeyMap() keyMap {
	return keyMap{
		ToggleZero: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "show/hide unseen pairs"),
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

// Model represents the combinations tab state.
type Model struct {
	state    *app.State
	keys     keyMap
	table    table.Model
	width    int
	height   int
	showZero bool
}

// New creates a new combinations model.
func New(state *app.State) *Model {
	return &Model{
		state: state,
		keys:  defaultKeyMap(),
		table: components.NewTable([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Pair", Width: 7},
			{Title: "Count", Width: 6},
			{Title: "Percent", Width: 8},
			{Title: "Last drawn", Width: 12},
		}, 10),
	}
}

// Init initializes the combinations tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the combinations tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, m.keys.ToggleZero) {
		m.showZero = !m.showZero
		m.table.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(keyMsg)
	return m, cmd
}

// visible returns the combinations shown in the table.
func (m *Model) visible(all []models.CombinationStat) []models.CombinationStat {
	if m.showZero {
		return all
	}
	return lo.Filter(all, func(c models.CombinationStat, _ int) bool {
		return c.Count > 0
	})
}

// lastDrawn maps each pair to the most recent window date it appeared in.
func lastDrawn(window []models.DrawRecord) map[models.Pair]string {
	seen := make(map[models.Pair]string)
	for _, d := range window {
		for i, a := range d.Numbers {
			for _, b := range d.Numbers[i+1:] {
				p := models.Pair{Low: min(a, b), High: max(a, b)}
				if _, ok := seen[p]; !ok {
					seen[p] = d.Date
				}
			}
		}
	}
	return seen
}

// updateTableData rebuilds the pair rows from the current analysis.
func (m *Model) updateTableData() {
	a := m.state.Analysis()
	combos := m.visible(a.Combinations)
	last := lastDrawn(a.Window.Records)

	rows := make([]table.Row, 0, len(combos))
	for i, c := range combos {
		date, ok := last[c.Pair]
		if !ok {
			date = "-"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			c.Pair.String(),
			fmt.Sprintf("%d", c.Count),
			fmt.Sprintf("%.2f%%", c.Percentage),
			date,
		})
	}

	m.table.SetRows(rows)
}

// SetSize sets the available size for the combinations tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(height-12, 5))
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{
		m.keys.ToggleZero,
		m.keys.Up,
		m.keys.Down,
	}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.ToggleZero},
		{m.keys.Up, m.keys.Down},
	}
}
