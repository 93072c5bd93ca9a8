package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/j-veylop/lotto-dashboard-tui/internal/db"
	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/components"
)

func archiveCommand() *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Inspect or maintain the local draw archive",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "date",
				Aliases: []string{"d"},
				Usage:   "print the archived draw for this date (YYYY/MM/DD)",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "remove every archived draw",
			},
			&cli.BoolFlag{
				Name:  "vacuum",
				Usage: "reclaim unused database space",
			},
		},
		Action: runArchive,
	}
}

func runArchive(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	archive, err := db.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := archive.Close(); closeErr != nil {
			logger.Warn("failed to close archive", "error", closeErr)
		}
	}()

	w := ctx.App.Writer

	if ctx.Bool("reset") {
		if err := archive.DeleteAll(); err != nil {
			return fmt.Errorf("failed to reset archive: %w", err)
		}
		fmt.Fprintln(w, "Archive cleared.")
	}
	if ctx.Bool("vacuum") {
		if err := archive.Vacuum(); err != nil {
			return fmt.Errorf("failed to vacuum archive: %w", err)
		}
		fmt.Fprintln(w, "Archive vacuumed.")
	}

	if date := ctx.String("date"); date != "" {
		draw, err := archive.GetDraw(date)
		if err != nil {
			return err
		}
		if draw == nil {
			return fmt.Errorf("no archived draw on %s", date)
		}
		_, err = fmt.Fprintf(w, "%s  %s\n", draw.Date, components.FormatNumbers(draw.Numbers))
		return err
	}

	stats, err := archive.GetArchiveStats()
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Archive:      %s\n", archive.Path())
	fmt.Fprintf(&b, "Draws:        %s\n", humanize.Comma(int64(stats.TotalDraws)))
	if stats.TotalDraws > 0 {
		fmt.Fprintf(&b, "Range:        %s to %s\n", stats.FirstDate, stats.LastDate)
	}
	if latest, err := archive.LatestDraw(); err == nil && latest != nil {
		fmt.Fprintf(&b, "Latest draw:  %s\n", components.FormatNumbers(latest.Numbers))
	}
	if !stats.LastImport.IsZero() {
		fmt.Fprintf(&b, "Last import:  %s\n", humanize.Time(stats.LastImport))
	}
	if run := stats.LastScrape; run != nil {
		status := fmt.Sprintf("%d fetched, %d added", run.Fetched, run.Added)
		if run.Failed() {
			status = "failed: " + run.Error
		}
		fmt.Fprintf(&b, "Last scrape:  %s (%s)\n", humanize.Time(run.Timestamp), status)
	}

	_, err = fmt.Fprint(w, b.String())
	return err
}
