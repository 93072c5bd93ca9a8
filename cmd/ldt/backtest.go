package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/j-veylop/lotto-dashboard-tui/internal/backtest"
	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
)

func backtestCommand() *cli.Command {
	return &cli.Command{
		Name:  "backtest",
		Usage: "Replay hot-number betting strategies over the draw history",
		Description: `Each draw is bet using only the draws before it. Without --strategy every
   strategy is replayed and a comparison table is printed.
   Strategies: top5, clear-top5, top2-pair, top-combination.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Usage:   "strategy to replay with a full report",
			},
			&cli.IntFlag{
				Name:    "lookback",
				Aliases: []string{"l"},
				Usage:   "draws considered before each bet (default LOOKBACK_PERIODS)",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "write the report to this file instead of stdout",
			},
		},
		Action: runBacktest,
	}
}

func runBacktest(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lookback := cfg.LookbackPeriods
	if ctx.IsSet("lookback") {
		lookback = ctx.Int("lookback")
	}

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer closeManager(mgr)

	draws := mgr.Draws()
	if len(draws) == 0 {
		return fmt.Errorf("no draws available from %s", cfg.DataPath)
	}

	var w io.Writer = ctx.App.Writer
	if path := ctx.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create report file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				logger.Warn("failed to close report file", "path", path, "error", closeErr)
			}
		}()
		w = f
	}

	if name := ctx.String("strategy"); name != "" {
		strategy, err := backtest.ParseStrategy(name)
		if err != nil {
			return err
		}
		result, err := backtest.Run(draws, strategy, lookback)
		if err != nil {
			return err
		}
		logger.Info("backtest finished", "strategy", strategy, "bets", result.Placed(), "net", result.NetGain())
		return backtest.RenderReport(w, result)
	}

	results, err := backtest.RunAll(draws, lookback)
	if err != nil {
		return err
	}
	logger.Info("backtest finished", "strategies", len(results), "draws", len(draws), "lookback", lookback)
	return backtest.RenderSummaryTable(w, results)
}
