package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
)

func scrapeCommand() *cli.Command {
	return &cli.Command{
		Name:        "scrape",
		Usage:       "Fetch recent results and merge them into the dataset",
		Description: "Fetches the most recent result pages, adds draws not already in the dataset, writes the dataset file and archives every draw.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "pages",
				Aliases: []string{"p"},
				Usage:   "number of result pages to fetch (default SCRAPE_PAGES)",
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if ctx.IsSet("pages") {
				cfg.ScrapePages = ctx.Int("pages")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			mgr, err := services.NewManager(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			defer closeManager(mgr)

			run, err := mgr.RunScrape(ctx.Context)
			if err != nil {
				return fmt.Errorf("failed to scrape: %w", err)
			}

			draws := mgr.Draws()
			latest := "-"
			if len(draws) > 0 {
				latest = draws[0].Date
			}

			_, err = fmt.Fprintf(ctx.App.Writer,
				"Fetched %d draws from %d pages, added %d. %s draws in history, latest %s (%dms)\n",
				run.Fetched, run.Pages, run.Added, humanize.Comma(int64(len(draws))), latest, run.DurationMs)
			return err
		},
	}
}
