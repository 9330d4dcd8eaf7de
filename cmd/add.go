package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add [TITLE]",
	Aliases: []string{"create", "new"},
	Short:   "Add a task",
	Long: `Adds a pending task to the top of the list.

Title can be provided as a positional argument or via --title flag.
Surrounding whitespace is trimmed; a blank title is rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	addCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "text" {
			name = "title"
		}
		return pflag.NormalizedName(name)
	})
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title, err := resolveAddTitle(cmd, args)
	if err != nil {
		return err
	}

	e, err := openEnv()
	if err != nil {
		return err
	}

	t, err := e.svc.Add(title)
	if err != nil {
		if clierr.HasCode(err, clierr.InvalidInput) {
			return e.warn(cmd.Context(), err)
		}
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, t)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, []task.Task{t})
	default:
		output.Messagef(os.Stdout, "Added task %s: %s", output.ShortID(t.ID), t.Title)
	}
	return nil
}

// resolveAddTitle returns the task title from either the positional arg or --title flag.
func resolveAddTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := cmd.Flags().Changed("title")

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagTitle, nil
	default:
		return "", errors.New("title is required: provide it as an argument or with --title")
	}
}
