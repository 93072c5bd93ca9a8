// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	// Ensure minimum dimensions
	width = max(width, 20)
	height = max(height, 3)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Red),
	)
}

// DrawSums returns the sum of each draw's numbers, oldest first, for
// plotting how the draws move over time.
func DrawSums(draws []models.DrawRecord) []float64 {
	sums := make([]float64, len(draws))
	for i, d := range draws {
		total := 0
		for _, n := range d.Numbers {
			total += n
		}
		sums[len(draws)-1-i] = float64(total)
	}
	return sums
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := maxOf(values)

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, lipgloss.Width(l))
	}

	// Leave room for label and value
	barWidth := max(width-maxLabelLen-10, 10)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}

		barLen := max(int((v/maxVal)*float64(barWidth)), 0)
		line := fmt.Sprintf("%*s │%s %.1f", maxLabelLen, label, strings.Repeat("█", barLen), v)
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// RenderFrequencyChart draws one bar per number, colored by how far its
// count sits from the window mean.
func RenderFrequencyChart(ranked []models.NumberStat, mean, stdDev float64, width int) string {
	if len(ranked) == 0 {
		return styles.HelpStyle.Render("No data available")
	}

	maxCount := 0
	for _, s := range ranked {
		maxCount = max(maxCount, s.Count)
	}
	if maxCount == 0 {
		maxCount = 1
	}

	// "NN │" prefix and " CC (PP.PP%)" suffix
	barWidth := max(width-20, 10)

	lines := make([]string, 0, len(ranked))
	for _, s := range ranked {
		barLen := s.Count * barWidth / maxCount
		bar := styles.GetFrequencyStyle(float64(s.Count), mean, stdDev).
			Render(strings.Repeat("█", barLen))
		lines = append(lines, fmt.Sprintf("%02d │%s %d (%.2f%%)", s.Number, bar, s.Count, s.Percentage))
	}

	return strings.Join(lines, "\n")
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	maxVal := maxOf(values)

	// Sample values to fit width
	var result strings.Builder
	step := max(float64(len(values))/float64(width), 1)

	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		val := values[int(float64(i)*step)]
		normalized := int((val / maxVal) * float64(len(sparkChars)-1))
		normalized = min(max(normalized, 0), len(sparkChars)-1)
		result.WriteRune(sparkChars[normalized])
	}

	return result.String()
}

// Appearances returns 1 for every draw containing n and 0 otherwise,
// oldest first.
func Appearances(draws []models.DrawRecord, n int) []float64 {
	out := make([]float64, len(draws))
	for i, d := range draws {
		for _, v := range d.Numbers {
			if v == n {
				out[len(draws)-1-i] = 1
				break
			}
		}
	}
	return out
}

// RenderLegend creates a chart legend.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		colorBox := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		parts = append(parts, fmt.Sprintf("%s %s", colorBox, item.Label))
	}
	return strings.Join(parts, "  ")
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label string
	Color lipgloss.Color
}

// FrequencyLegend explains the colors used by RenderFrequencyChart.
func FrequencyLegend() string {
	return RenderLegend([]LegendItem{
		{Label: "hot", Color: styles.Hot},
		{Label: "average", Color: styles.Warm},
		{Label: "cold", Color: styles.Cold},
	})
}

func maxOf(values []float64) float64 {
	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		return 1
	}
	return maxVal
}
