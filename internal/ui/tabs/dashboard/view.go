package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/lotto-dashboard-tui/internal/lottery"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// sumChartDraws is how many recent draws the sum chart plots.
const sumChartDraws = 60

// View renders the dashboard component.
func (m *Model) View() string {
	if m.state.IsInitialLoading() {
		return m.renderLoading()
	}

	sections := []string{
		m.renderTitle(),
		m.renderLatestDraw(),
		m.renderHotCold(),
		m.renderSumChart(),
		m.renderStatus(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderLoading renders the loading state.
func (m *Model) renderLoading() string {
	return components.RenderLoaderCentered(m.loader.WithPending(m.state.PendingLoads()...), m.width, m.height)
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("今彩539 Dashboard")
	subtitle := styles.HelpStyle.Render("Draw history and number frequency monitor")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return max(m.width-6, 40)
}

func cardHeader(icon, title string) string {
	i := lipgloss.NewStyle().Foreground(styles.Primary).Render(icon)
	return fmt.Sprintf("%s %s", i, styles.CardTitleStyle.Render(title))
}

func (m *Model) renderLatestDraw() string {
	rows := []string{cardHeader("◈", "Latest Draw")}

	latest := m.state.LatestDraw()
	if latest == nil {
		emptyIcon := lipgloss.NewStyle().Foreground(styles.Subtle).Render("○")
		rows = append(rows,
			fmt.Sprintf("  %s %s", emptyIcon, styles.HelpStyle.Render("No draws loaded")),
			"",
			styles.InfoTextStyle.Render("  ╰─▶ Press s to scrape the results site or set DATA_PATH"),
		)
		return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	a := m.state.Analysis()
	rows = append(rows,
		fmt.Sprintf("  %s", lipgloss.NewStyle().Bold(true).Render(latest.Date)),
		"",
		"  "+components.RenderBalls(latest.Numbers, a.Summary.Hot),
	)

	if date := m.state.GetSelectedDate(); date != "" {
		rows = append(rows, "", "  "+styles.SelectedDateStyle.Render("Statistics anchored at "+date))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderHotCold() string {
	a := m.state.Analysis()
	rows := []string{
		cardHeader("◆", a.Window.Title),
	}

	if a.Window.Len() == 0 {
		rows = append(rows, styles.HelpStyle.Render("  No draws in the selected window"))
		return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	hot := lottery.TopNumbers(a.Window.Records, m.state.GetTopCount())
	rows = append(rows,
		fmt.Sprintf("  %-14s %s", "Hot numbers", components.RenderBalls(hot, hot)),
		fmt.Sprintf("  %-14s %s", "Cold numbers", components.RenderBalls(a.Summary.Cold, nil)),
	)

	if pair, ok := lottery.TopCombination(a.Window.Records); ok {
		count := 0
		if len(a.Combinations) > 0 {
			count = a.Combinations[0].Count
		}
		rows = append(rows, fmt.Sprintf("  %-14s %s  %s",
			"Top pair", components.RenderPair(pair), styles.HelpStyle.Render(fmt.Sprintf("drawn together %d times", count))))
	}

	rows = append(rows, "", styles.HelpStyle.Render(fmt.Sprintf(
		"  mean %.2f  median %.2f  stddev %.2f  range %.0f-%.0f",
		a.Summary.Mean, a.Summary.Median, a.Summary.StdDev, a.Summary.Min, a.Summary.Max)))

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderSumChart() string {
	draws := m.state.GetDraws()
	if len(draws) < 2 {
		return ""
	}
	draws = draws[:min(len(draws), sumChartDraws)]

	chart := components.RenderLineChart(
		components.DrawSums(draws),
		max(m.cardWidth()-14, 20),
		6,
		fmt.Sprintf("sum of numbers, last %d draws", len(draws)),
	)

	rows := []string{cardHeader("◇", "Draw Sums"), chart}
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *Model) renderStatus() string {
	rows := []string{cardHeader("○", "Dataset")}

	line := func(label, value string) string {
		return fmt.Sprintf("  %-16s %s", styles.HelpStyle.Render(label), value)
	}

	rows = append(rows,
		line("Source", orDash(m.state.GetSource())),
		line("Draws", humanize.Comma(int64(m.state.DrawCount()))),
	)

	stats := m.state.GetStats()
	if stats != nil {
		rows = append(rows,
			line("Latest date", orDash(stats.LatestDate)),
			line("Last updated", orDash(stats.LastUpdated)),
			line("Archived draws", humanize.Comma(int64(stats.ArchivedDraws))),
		)
		if stats.Rejected > 0 {
			rows = append(rows, line("Rejected", styles.WarningTextStyle.Render(fmt.Sprintf("%d invalid records", stats.Rejected))))
		}
		if run := stats.LastScrape; run != nil {
			scrape := fmt.Sprintf("%s, %d fetched, %d added", humanize.Time(run.Timestamp), run.Fetched, run.Added)
			if run.Failed() {
				scrape = styles.ErrorTextStyle.Render(fmt.Sprintf("%s, failed: %s", humanize.Time(run.Timestamp), run.Error))
			}
			rows = append(rows, line("Last scrape", scrape))
		}
		if stats.DatasetErr != nil {
			rows = append(rows, "", styles.ErrorTextStyle.Render("  "+stats.DatasetErr.Error()))
		}
	}

	if !m.state.GetLastUpdated().IsZero() {
		rows = append(rows, line("Loaded", humanize.Time(m.state.GetLastUpdated())))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
