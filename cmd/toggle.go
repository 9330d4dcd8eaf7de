package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/action"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle ID",
	Aliases: []string{"done", "check"},
	Short:   "Mark a task done, or pending again",
	Long: `Flips a task between pending and done. ID may be a unique prefix.
Prompts for confirmation in interactive mode.`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

func init() {
	addYesFlag(toggleCmd)
	rootCmd.AddCommand(toggleCmd)
}

// mutationResult wraps a task with a changed flag for JSON output.
type mutationResult struct {
	task.Task
	Changed bool `json:"changed"`
}

func runToggle(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	id, err := e.store.Resolve(args[0])
	if err != nil {
		return err
	}

	res, ok, err := e.dispatch(cmd.Context(), cmd, e.svc.Toggle(id))
	if err != nil {
		return err
	}
	if !ok {
		return reportCanceled(action.KindToggle, id)
	}

	return outputMutation(res, func(t task.Task) string {
		if t.Completed {
			return "Completed task %s: %s"
		}
		return "Reopened task %s: %s"
	})
}

// outputMutation prints an applied intent's result. message picks the
// human-readable format, which receives the short id and title.
func outputMutation(res action.Result, message func(task.Task) string) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, mutationResult{Task: res.Task, Changed: res.Changed})
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, []task.Task{res.Task})
	default:
		output.Messagef(os.Stdout, message(res.Task), output.ShortID(res.Task.ID), res.Task.Title)
	}
	return nil
}
