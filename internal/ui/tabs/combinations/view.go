package combinations

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// View renders the combinations tab.
func (m *Model) View() string {
	sections := []string{m.renderTitle()}

	a := m.state.Analysis()
	if a.Window.Len() == 0 {
		sections = append(sections, styles.CardStyle.Width(max(m.width-6, 40)).Render(
			styles.HelpStyle.Render("No draws in the selected window."),
		))
	} else {
		sections = append(sections, m.renderTop(), m.renderTable())
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderTitle() string {
	a := m.state.Analysis()
	title := styles.TitleStyle.Render("Combinations")

	seen := 0
	for _, c := range a.Combinations {
		if c.Count > 0 {
			seen++
		}
	}

	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%s · %d of %d pairs drawn",
		a.Window.Title, seen, len(a.Combinations)))

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) renderTop() string {
	a := m.state.Analysis()
	if len(a.Combinations) == 0 || a.Combinations[0].Count == 0 {
		return ""
	}
	top := a.Combinations[0]
	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Most frequent pair %s drawn together %d times (%.2f%%)",
			components.RenderPair(top.Pair), top.Count, top.Percentage),
		"",
	)
}

func (m *Model) renderTable() string {
	m.updateTableData()
	return styles.CardStyle.Width(max(m.width-6, 50)).Render(m.table.View())
}
