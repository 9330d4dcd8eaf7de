package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/watcher"
)

var flagWatch bool

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"summary", "count"},
	Short:   "Show task counters",
	Long: `Displays the total, pending and done counters and the completion percentage.

Use --watch to keep the display live-updating. The counters re-render whenever
the list changes on disk (e.g., from another terminal). Press Ctrl+C to stop.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "live-update the counters on changes")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	if err := renderStats(e); err != nil {
		return err
	}

	if !flagWatch {
		return nil
	}

	return watchStats(cmd.Context(), e)
}

func renderStats(e *env) error {
	c := e.store.Counters()

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, map[string]any{
			"total":   c.Total,
			"pending": c.Pending,
			"done":    c.Done,
			"percent": c.Percent(),
		})
	case output.FormatCompact:
		output.CountersCompact(os.Stdout, c)
	default:
		output.CountersTable(os.Stdout, c)
	}
	return nil
}

func watchStats(ctx context.Context, e *env) error {
	w, err := watcher.New(e.data.Root(), []string{e.cfg.StorageKey}, func(keys []string) {
		if !slices.Contains(keys, e.cfg.StorageKey) {
			return
		}
		if err := e.store.Reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: reloading tasks: %v\n", err)
			return
		}
		clearScreen()
		if err := renderStats(e); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: rendering counters: %v\n", err)
		}
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer w.Close()

	fmt.Fprintln(os.Stderr, "Watching for changes... (Ctrl+C to stop)")

	w.Run(ctx, func(watchErr error) {
		fmt.Fprintf(os.Stderr, "Warning: file watcher: %v\n", watchErr)
	})

	return nil
}

// clearScreen sends ANSI escape codes to clear the terminal and move the
// cursor to the top-left corner.
func clearScreen() {
	fmt.Fprint(os.Stdout, "\033[2J\033[H")
}
