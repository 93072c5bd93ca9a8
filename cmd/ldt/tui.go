package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/j-veylop/lotto-dashboard-tui/internal/app"
	"github.com/j-veylop/lotto-dashboard-tui/internal/config"
	"github.com/j-veylop/lotto-dashboard-tui/internal/logger"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
	"github.com/j-veylop/lotto-dashboard-tui/internal/services"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/tabs/combinations"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/tabs/dashboard"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/tabs/history"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/tabs/info"
	"github.com/j-veylop/lotto-dashboard-tui/internal/ui/tabs/statistics"
)

func tuiCommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Run the interactive dashboard (default)",
		Description: `Keyboard shortcuts:
   1-5             Switch between tabs
   Tab/Shift+Tab   Navigate between tabs
   t               Cycle the lookback period (Statistics)
   enter           Anchor statistics at the selected draw (History)
   s               Scrape new draws
   r               Reload the dataset
   ?               Toggle help
   q, Ctrl+C       Quit`,
		Action: runTUI,
	}
}

func runTUI(ctx *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// The alternate screen owns the terminal, so logs go to a file.
	logFile, err := logger.SetupFile(cfg.LogPath, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := mgr.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(mgr)

	state := model.GetState()
	state.SetLookback(models.LookbackRangeFor(cfg.LookbackPeriods))
	state.SetTopCount(cfg.TopCount)

	model.SetTabs([]app.Tab{
		dashboard.New(state),
		statistics.New(state),
		combinations.New(state),
		history.New(state, mgr),
		info.New(state, cfg),
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx.Context),
	)

	logger.Info("starting dashboard", "draws", len(mgr.Draws()))
	if _, err := p.Run(); err != nil && ctx.Context.Err() == nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
