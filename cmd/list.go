package cmd

import (
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists tasks newest first. --filter selects all, pending or done;
the default comes from tui.default_filter in the config.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringP("filter", "f", "", "filter (all, pending, done)")
	listCmd.Flags().BoolP("reverse", "r", false, "oldest first")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	filter := e.cfg.Filter()
	if v, _ := cmd.Flags().GetString("filter"); v != "" {
		if filter, err = task.ParseFilter(v); err != nil {
			return err
		}
	}
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")

	tasks := e.store.View(filter)
	task.NewestFirst(tasks)
	if reverse {
		slices.Reverse(tasks)
	}
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	return outputTaskList(tasks, e.cfg.DateLayout())
}

func outputTaskList(tasks []task.Task, layout string) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks, layout)
	}
	return nil
}
