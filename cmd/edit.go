package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/action"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var editCmd = &cobra.Command{
	Use:     "edit ID TITLE",
	Aliases: []string{"rename"},
	Short:   "Rename a task",
	Long: `Replaces the title of a pending task. Completed tasks must be reopened
first. Prompts for confirmation in interactive mode.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // id and title
	RunE: runEdit,
}

func init() {
	addYesFlag(editCmd)
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	id, err := e.store.Resolve(args[0])
	if err != nil {
		return err
	}

	in, err := e.svc.Edit(id, args[1])
	if err != nil {
		if clierr.HasCode(err, clierr.InvalidInput, clierr.TaskCompleted) {
			return e.warn(cmd.Context(), err)
		}
		return err
	}
	if in == nil {
		t, _ := e.store.Find(id)
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, mutationResult{Task: t, Changed: false})
		}
		output.Messagef(os.Stdout, "No changes to task %s", output.ShortID(id))
		return nil
	}

	res, ok, err := e.dispatch(cmd.Context(), cmd, in)
	if err != nil {
		return err
	}
	if !ok {
		return reportCanceled(action.KindEdit, id)
	}

	return outputMutation(res, func(task.Task) string { return "Updated task %s: %s" })
}
