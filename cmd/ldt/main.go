// Package main is the entry point for the Lotto Dashboard TUI.
// Without a subcommand it runs the Bubble Tea dashboard; the subcommands
// scrape, backtest and print statistics from the shell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/j-veylop/lotto-dashboard-tui/internal/config"
	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
	"github.com/j-veylop/lotto-dashboard-tui/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	tui := tuiCommand()

	return &cli.App{
		Name:        "ldt",
		Usage:       "今彩539 draw history dashboard",
		Description: "Browse number and pair frequencies over recent 今彩539 draws, scrape new results and backtest hot-number strategies.",
		Version:     version.GetVersion(),
		Action:      tui.Action,
		Commands: []*cli.Command{
			tui,
			scrapeCommand(),
			backtestCommand(),
			statsCommand(),
			archiveCommand(),
			versionCommand(),
		},
	}
}

// loadConfig reads the configuration and points the logger at stderr,
// which the non-interactive commands own.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.SetOutput(os.Stderr, logger.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

// closeManager stops the services, logging rather than returning cleanup errors.
func closeManager(mgr *services.Manager) {
	if err := mgr.Close(); err != nil {
		logger.Warn("error closing services", "error", err)
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx *cli.Context) error {
			_, err := fmt.Fprintln(ctx.App.Writer, version.Info())
			return err
		},
	}
}
