package cmd

import (
	"context"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/logging"
	"github.com/twiced-technology-gmbh/tasklist/internal/tui"
	"github.com/twiced-technology-gmbh/tasklist/internal/watcher"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file next to the slots.
	logger, closeLog, err := logging.File(cfg.DataPath(), cfg.LogOptions())
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // best-effort close on exit

	e, err := openEnvWith(cfg, logger)
	if err != nil {
		return err
	}

	model := tui.New(e.svc, e.coord, e.pref, tui.Options{
		Filter:     cfg.Filter(),
		DateLayout: cfg.DateLayout(),
		Logger:     logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	go startTUIWatcher(ctx, e, p, logger)

	logger.Info("tui started", "dir", e.data.Root())
	_, err = p.Run()
	return err
}

// startTUIWatcher forwards slot writes from other processes to the program.
func startTUIWatcher(ctx context.Context, e *env, p *tea.Program, logger *log.Logger) {
	listKey, themeKey := e.store.Key(), e.pref.Key()
	w, err := watcher.New(e.data.Root(), []string{listKey, themeKey}, func(keys []string) {
		if slices.Contains(keys, listKey) {
			p.Send(tui.ReloadMsg{})
		}
		if slices.Contains(keys, themeKey) {
			p.Send(tui.ThemeChangedMsg{})
		}
	})
	if err != nil {
		logger.Warn("live refresh disabled", "err", err)
		return // non-fatal: TUI works without live refresh
	}
	defer w.Close()
	w.Run(ctx, func(watchErr error) {
		logger.Debug("watcher error", "err", watchErr)
	})
}
