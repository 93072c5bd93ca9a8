package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/j-veylop/lotto-dashboard-tui/internal/lottery"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
)

// pairsShown caps the pair list of the text report.
const pairsShown = 10

// statsReport is the --json form of the stats command output.
type statsReport struct {
	Title        string                   `json:"title"`
	SelectedDate string                   `json:"selected_date,omitempty"`
	Lookback     int                      `json:"lookback"`
	Draws        int                      `json:"draws"`
	TopNumbers   []int                    `json:"top_numbers"`
	Summary      lottery.Summary          `json:"summary"`
	Numbers      []models.NumberStat      `json:"number_statistics"`
	Combinations []models.CombinationStat `json:"combination_statistics"`
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Print number and pair frequencies for a window of draws",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "date",
				Aliases: []string{"d"},
				Usage:   "anchor the window at the draw on this date (YYYY/MM/DD)",
			},
			&cli.IntFlag{
				Name:    "lookback",
				Aliases: []string{"l"},
				Usage:   "number of draws in the window (default LOOKBACK_PERIODS)",
			},
			&cli.IntFlag{
				Name:    "top",
				Aliases: []string{"n"},
				Usage:   "how many hot numbers to list (default TOP_COUNT)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the full statistics as JSON",
			},
		},
		Action: runStats,
	}
}

func runStats(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lookback := cfg.LookbackPeriods
	if ctx.IsSet("lookback") {
		lookback = ctx.Int("lookback")
	}
	top := cfg.TopCount
	if ctx.IsSet("top") {
		top = ctx.Int("top")
	}

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer closeManager(mgr)

	window := lottery.FilterRecordsByDate(mgr.Draws(), ctx.String("date"), lookback)
	report := statsReport{
		Title:        window.Title,
		SelectedDate: window.SelectedDate,
		Lookback:     window.Lookback,
		Draws:        window.Len(),
		TopNumbers:   lottery.TopNumbers(window.Records, top),
		Numbers:      lottery.CalculateNumberStatistics(window.Records),
		Combinations: lottery.CalculateCombinationStatistics(window.Records),
	}
	report.Summary = lottery.Summarize(report.Numbers)

	if ctx.Bool("json") {
		enc := json.NewEncoder(ctx.App.Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode statistics: %w", err)
		}
		return nil
	}

	return writeStatsText(ctx.App.Writer, report)
}

func writeStatsText(w io.Writer, r statsReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.Title)
	if r.Draws == 0 {
		b.WriteString("No draws in window.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "%d draws in window\n\n", r.Draws)
	fmt.Fprintf(&b, "Hot numbers: %s\n", strings.Join(lo.Map(r.TopNumbers, func(n int, _ int) string {
		return fmt.Sprintf("%02d", n)
	}), " "))
	fmt.Fprintf(&b, "Counts: mean %.2f, median %.2f, stddev %.2f, range %.0f-%.0f\n\n",
		r.Summary.Mean, r.Summary.Median, r.Summary.StdDev, r.Summary.Min, r.Summary.Max)

	b.WriteString("Number  Count  Percent\n")
	for _, s := range r.Numbers {
		fmt.Fprintf(&b, "%6s %6d %7.2f%%\n", fmt.Sprintf("%02d", s.Number), s.Count, s.Percentage)
	}

	drawn := lo.Filter(r.Combinations, func(c models.CombinationStat, _ int) bool { return c.Count > 0 })
	fmt.Fprintf(&b, "\nTop pairs (%d of %d drawn):\n", len(drawn), len(r.Combinations))
	for _, c := range drawn[:min(pairsShown, len(drawn))] {
		fmt.Fprintf(&b, "  %s  %d (%.2f%%)\n", c.Pair, c.Count, c.Percentage)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write statistics: %w", err)
	}
	return nil
}
