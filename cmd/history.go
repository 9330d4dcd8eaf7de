package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/journal"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
)

const defaultHistoryLimit = 20

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"log"},
	Short:   "Show recent changes",
	Long:    `Prints the most recent entries of the activity journal, oldest first.`,
	Args:    cobra.NoArgs,
	RunE:    runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", defaultHistoryLimit, "number of entries (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := e.journal.Tail(limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []journal.Entry{}
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, entries)
	case output.FormatCompact:
		output.HistoryCompact(os.Stdout, entries)
	default:
		output.HistoryTable(os.Stdout, entries, e.cfg.DateLayout())
	}
	return nil
}
