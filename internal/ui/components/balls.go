package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/styles"
)

// RenderBall renders a single number as a two-digit ball.
func RenderBall(n int, hot bool) string {
	if hot {
		return styles.HotBallStyle.Render(fmt.Sprintf("%02d", n))
	}
	return styles.BallStyle.Render(fmt.Sprintf("%02d", n))
}

// RenderBalls renders a draw's numbers in a row. Numbers present in hot
// are highlighted.
func RenderBalls(numbers []int, hot []int) string {
	hotSet := make(map[int]struct{}, len(hot))
	for _, n := range hot {
		hotSet[n] = struct{}{}
	}

	balls := make([]string, 0, len(numbers))
	for _, n := range numbers {
		_, isHot := hotSet[n]
		balls = append(balls, RenderBall(n, isHot))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, balls...)
}

// RenderPair renders a combination as "03-17".
func RenderPair(p models.Pair) string {
	return styles.PairStyle.Render(p.String())
}

// FormatNumbers joins numbers as zero-padded text for plain table cells.
func FormatNumbers(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, " ")
}

// HitCount returns how many of numbers appear in draw.
func HitCount(numbers []int, draw models.DrawRecord) int {
	hits := 0
	for _, n := range numbers {
		for _, d := range draw.Numbers {
			if n == d {
				hits++
				break
			}
		}
	}
	return hits
}
