package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/action"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
)

var rmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a task",
	Long: `Deletes a task permanently. Prompts for confirmation in interactive mode;
use --yes in scripts.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	addYesFlag(rmCmd)
	rootCmd.AddCommand(rmCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	id, err := e.store.Resolve(args[0])
	if err != nil {
		return err
	}

	res, ok, err := e.dispatch(cmd.Context(), cmd, e.svc.Remove(id))
	if err != nil {
		return err
	}
	if !ok {
		return reportCanceled(action.KindRemove, id)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":  "removed",
			"id":      id,
			"title":   res.Task.Title,
			"changed": res.Changed,
		})
	}

	output.Messagef(os.Stdout, "Removed task %s: %s", output.ShortID(id), res.Task.Title)
	return nil
}
