package info

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/lotto-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderAboutCard(),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	m.viewport.SetContent(content)

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration and application information")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

// renderConfigCard renders the configuration card.
func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	cfg := m.config
	if cfg == nil {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
		return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	dataSource := cfg.DataPath
	if cfg.UsesURL() {
		dataSource = cfg.DataURL
	}

	rows = append(rows,
		renderConfigRow("Dataset", orNone(dataSource)),
		renderConfigRow("Database", cfg.DatabasePath),
		renderConfigRow("Log File", cfg.LogPath),
		renderConfigRow("Results Site", cfg.ScrapeBaseURL),
		renderConfigRow("Scrape Pages", strconv.Itoa(cfg.ScrapePages)),
		renderConfigRow("Scrape Delay", cfg.ScrapeDelay.String()),
		renderConfigRow("HTTP Timeout", cfg.HTTPTimeout.String()),
		renderConfigRow("Lookback", fmt.Sprintf("%d periods", cfg.LookbackPeriods)),
		renderConfigRow("Top Count", strconv.Itoa(cfg.TopCount)),
		renderConfigRow("Discord Webhook", enabled(cfg.DiscordWebhookURL != "")),
		renderConfigRow("Notifications", enabled(cfg.Notifications)),
	)

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderConfigRow renders a configuration key-value row.
func renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the about/version information card.
func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About " + version.AppName),
		"",
		renderConfigRow("Version", version.GetVersion()),
		renderConfigRow("Build Date", version.GetDate()),
		renderConfigRow("Git Commit", version.GetCommit()),
		renderConfigRow("Go Version", runtime.Version()),
		renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
		"",
		fmt.Sprintf("Draws loaded: %s", styles.InfoTextStyle.Render(strconv.Itoa(m.state.DrawCount()))),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
