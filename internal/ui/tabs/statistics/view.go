package statistics

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// View renders the statistics tab.
func (m *Model) View() string {
	sections := []string{m.renderHeader(), m.renderSummary()}

	if m.state.Analysis().Window.Len() == 0 {
		sections = append(sections, m.renderEmpty())
	} else if m.showChart {
		sections = append(sections, m.renderChart())
	} else {
		sections = append(sections, m.renderTable())
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderHeader() string {
	a := m.state.Analysis()
	title := styles.TitleStyle.Render(a.Window.Title)

	rangeStyle := lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Primary)

	indicators := []string{title, "  ", rangeStyle.Render(fmt.Sprintf("[t] %s", m.state.GetLookback()))}
	if date := m.state.GetSelectedDate(); date != "" {
		indicators = append(indicators, "  ", styles.SelectedDateStyle.Render(fmt.Sprintf("[x] %s", date)))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center, indicators...)

	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%d draws in window", a.Window.Len()))
	if a.Window.Len() > 0 {
		first := a.Window.Records[len(a.Window.Records)-1].Date
		last := a.Window.Records[0].Date
		subtitle = styles.HelpStyle.Render(fmt.Sprintf("%d draws in window: %s → %s", a.Window.Len(), first, last))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, subtitle, "")
}

func (m *Model) renderSummary() string {
	s := m.state.Analysis().Summary
	line := fmt.Sprintf("mean %.2f  median %.2f  stddev %.2f  min %.0f  max %.0f",
		s.Mean, s.Median, s.StdDev, s.Min, s.Max)
	return lipgloss.JoinVertical(lipgloss.Left, styles.HelpStyle.Render(line), "")
}

func (m *Model) renderEmpty() string {
	return styles.CardStyle.Width(max(m.width-6, 40)).Render(
		styles.HelpStyle.Render("No draws in the selected window."),
	)
}

func (m *Model) renderTable() string {
	m.updateTableData()
	return styles.CardStyle.Width(max(m.width-6, 60)).Render(m.table.View())
}

func (m *Model) renderChart() string {
	a := m.state.Analysis()
	cardWidth := max(m.width-6, 40)

	chart := components.RenderFrequencyChart(a.Numbers, a.Summary.Mean, a.Summary.StdDev, cardWidth-6)
	content := lipgloss.JoinVertical(lipgloss.Left, chart, "", components.FrequencyLegend())

	m.viewport.SetContent(content)
	return styles.CardStyle.Width(cardWidth).Render(m.viewport.View())
}
