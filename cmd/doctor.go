package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/doctor"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the stored list for problems",
	Long: `Validates the stored task list against the task schema without changing it.
Loading repairs what it can (missing timestamps, duplicate ids) and resets
an unreadable list to empty; doctor shows what that would touch.
Exits 1 when problems are found.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}

	rep, err := doctor.Check(e.data, e.cfg.StorageKey, time.Now())
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, rep); err != nil {
			return err
		}
	} else {
		printReport(rep, e.data.Path(rep.Key))
	}

	if !rep.Valid {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}

func printReport(rep doctor.Report, path string) {
	output.Messagef(os.Stdout, "Slot:    %s", path)
	if !rep.Present {
		output.Messagef(os.Stdout, "Status:  empty (no tasks saved yet)")
		return
	}
	output.Messagef(os.Stdout, "Size:    %d bytes, %d entries", rep.Bytes, rep.Entries)

	switch {
	case rep.Valid:
		output.Messagef(os.Stdout, "Status:  ok")
	case rep.Malformed:
		output.Messagef(os.Stdout, "Status:  unreadable; the list loads as empty and the next change overwrites it")
	default:
		output.Messagef(os.Stdout, "Status:  repairable; %d of %d entries load", rep.Loaded, rep.Entries)
	}

	for _, issue := range rep.Issues {
		fmt.Fprintf(os.Stdout, "  %s: %s\n", issue.Path, issue.Message)
	}
}
