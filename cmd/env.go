package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/tasklist/internal/action"
	"github.com/twiced-technology-gmbh/tasklist/internal/clierr"
	"github.com/twiced-technology-gmbh/tasklist/internal/config"
	"github.com/twiced-technology-gmbh/tasklist/internal/journal"
	"github.com/twiced-technology-gmbh/tasklist/internal/logging"
	"github.com/twiced-technology-gmbh/tasklist/internal/output"
	"github.com/twiced-technology-gmbh/tasklist/internal/prompt"
	"github.com/twiced-technology-gmbh/tasklist/internal/slot"
	"github.com/twiced-technology-gmbh/tasklist/internal/store"
	"github.com/twiced-technology-gmbh/tasklist/internal/theme"
)

// env is everything a command needs to read or change the list.
type env struct {
	cfg     *config.Config
	data    *slot.Dir
	store   *store.Store
	svc     *action.Service
	coord   *prompt.Coordinator
	pref    *theme.Preference
	journal *journal.Journal
	logger  *log.Logger
}

// openEnv loads the config and opens the store with the CLI logger.
func openEnv() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openEnvWith(cfg, logging.Stderr(cfg.LogOptions()))
}

func openEnvWith(cfg *config.Config, logger *log.Logger) (*env, error) {
	data, err := slot.OpenDir(cfg.DataPath())
	if err != nil {
		return nil, err
	}

	j := journal.New(data.Root())
	st, err := store.Open(data, cfg.StorageKey,
		store.WithLogger(logger),
		store.WithJournal(j),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("store opened", "dir", data.Root(), "key", cfg.StorageKey, "tasks", len(st.Tasks()))

	return &env{
		cfg:     cfg,
		data:    data,
		store:   st,
		svc:     action.NewService(st),
		coord:   prompt.NewCoordinator(prompt.WithDebounce(cfg.DebounceDuration()), prompt.WithLogger(logger)),
		pref:    theme.NewPreference(data, cfg.ThemeKey),
		journal: j,
		logger:  logger,
	}, nil
}

// addYesFlag registers --yes (and its --force spelling) on a mutating command.
func addYesFlag(c *cobra.Command) {
	c.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	c.Flags().SetNormalizeFunc(normalizeYes)
}

// responderFor picks how a mutating command confirms: --yes accepts
// everything, a terminal gets asked, anything else is refused.
func responderFor(c *cobra.Command) (prompt.Responder, error) {
	if yes, _ := c.Flags().GetBool("yes"); yes {
		return prompt.Auto(true), nil
	}
	if !prompt.Interactive(os.Stdin) {
		return nil, clierr.New(clierr.ConfirmationReq,
			"cannot prompt for confirmation (not a terminal); use --yes")
	}
	return prompt.NewConsole(), nil
}

// dispatch confirms and applies in. Validation failures are shown as an
// alert when a terminal is attached and returned as errors otherwise.
func (e *env) dispatch(ctx context.Context, c *cobra.Command, in *action.Intent) (action.Result, bool, error) {
	r, err := responderFor(c)
	if err != nil {
		return action.Result{}, false, err
	}
	return action.NewDispatcher(e.coord, r).Run(ctx, in)
}

// warn reports a validation error. On a terminal in human output mode the
// alert is printed and the command exits 1 without repeating the message.
func (e *env) warn(ctx context.Context, err error) error {
	if outputFormat() == output.FormatJSON || !prompt.Interactive(os.Stdin) {
		return err
	}
	if action.NewDispatcher(e.coord, prompt.NewConsole()).Warn(ctx, err) {
		return &clierr.SilentError{Code: 1}
	}
	return err
}

// reportCanceled prints the outcome of a declined prompt.
func reportCanceled(kind action.Kind, id string) error {
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status": "canceled",
			"action": kind,
			"id":     id,
		})
	}
	return nil
}

func normalizeYes(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "force" {
		name = "yes"
	}
	return pflag.NormalizedName(name)
}
