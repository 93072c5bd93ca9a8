package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// Loader is the spinner shown while the draw history is being read. It
// lists the resources still pending below the label.
type Loader struct {
	spinner spinner.Model
	label   string
	pending []string
}

// NewLoader creates a loader with the given label.
func NewLoader(label string) Loader {
	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return Loader{spinner: s, label: label}
}

// Init starts the spinner animation.
func (l Loader) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the animation on spinner ticks.
func (l Loader) Update(msg tea.Msg) (Loader, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// WithPending returns a copy of l that lists resources as still loading.
func (l Loader) WithPending(resources ...string) Loader {
	l.pending = resources
	return l
}

// Label returns the loader's label.
func (l Loader) Label() string {
	return l.label
}

// View renders the spinner, its label and the pending resources.
func (l Loader) View() string {
	line := l.spinner.View() + " " + lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(l.label)
	if len(l.pending) == 0 {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Center, line,
		styles.HelpStyle.Render("waiting on "+strings.Join(l.pending, ", ")))
}

// RenderLoaderCentered renders the loader in the middle of a width x height area.
func RenderLoaderCentered(l Loader, width, height int) string {
	return styles.CenterBoth(l.View(), width, height)
}
