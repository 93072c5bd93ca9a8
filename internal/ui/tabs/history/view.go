package history

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// View renders the history tab.
func (m *Model) View() string {
	if m.state.DrawCount() == 0 {
		return m.renderEmpty()
	}

	sections := []string{
		m.renderHeader(),
		m.renderTable(),
		m.renderRuns(),
	}

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderEmpty() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("History"),
		"",
		styles.HelpStyle.Render("No draws loaded yet."),
		styles.HelpStyle.Render("Draws appear once the dataset is read or a scrape finishes."),
	)
	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(content)
}

func (m *Model) renderHeader() string {
	title := styles.TitleStyle.Render("History")

	subtitle := fmt.Sprintf("%s draws from %s", humanize.Comma(int64(m.state.DrawCount())), m.state.GetSource())
	if date := m.state.GetSelectedDate(); date != "" {
		subtitle += " · " + styles.SelectedDateStyle.Render("◆ "+date)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, styles.HelpStyle.Render(subtitle), "")
}

func (m *Model) renderTable() string {
	m.updateTableData()
	return styles.CardStyle.Width(max(m.width-6, 50)).Render(m.table.View())
}

func (m *Model) renderRuns() string {
	rows := []string{styles.CardTitleStyle.Render("Recent scrapes")}

	switch {
	case m.errorMsg != "":
		rows = append(rows, fmt.Sprintf("%s %s", styles.ErrorTextStyle.Render("Error:"), m.errorMsg))
	case len(m.runs) == 0:
		rows = append(rows, styles.HelpStyle.Render("No scrapes recorded. Press s to scrape."))
	default:
		for _, run := range m.runs {
			line := fmt.Sprintf("%-16s %d pages, %d fetched, %d added (%dms)",
				humanize.Time(run.Timestamp), run.Pages, run.Fetched, run.Added, run.DurationMs)
			if run.Failed() {
				line = styles.ErrorTextStyle.Render(fmt.Sprintf("%-16s failed: %s", humanize.Time(run.Timestamp), run.Error))
			}
			rows = append(rows, line)
		}
	}

	return styles.CardStyle.Width(max(m.width-6, 50)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
