// Package cli provides the command-line interface for focusd.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandeepkv93/focusd/internal/app"
	"github.com/sandeepkv93/focusd/internal/config"
	"github.com/sandeepkv93/focusd/internal/storage"
)

type rootOptions struct {
	cfgFile  string
	dataFile string
	backend  string
	verbose  bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd builds the focusd command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "focusd",
		Short: "Focus sprints, sleep log and weekly reviews in the terminal",
		Long: `focusd keeps a task list, runs fixed five-minute focus sprints,
logs sleep and wake times, and collects a weekly review.

Run without a subcommand to open the interactive dashboard.`,
		SilenceUsage:      true,
		PersistentPreRunE: o.setup,
		RunE:              o.runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (default is ./focusd.yaml, then $XDG_CONFIG_HOME/focusd/focusd.yaml)")
	rootCmd.PersistentFlags().StringVar(&o.dataFile, "data", "", "data file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&o.backend, "backend", "", "storage backend: json or sqlite (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(newTUICmd(o))
	rootCmd.AddCommand(newTaskCmd(o))
	rootCmd.AddCommand(newSprintCmd(o))
	rootCmd.AddCommand(newSleepCmd(o, "sleep"))
	rootCmd.AddCommand(newSleepCmd(o, "wake"))
	rootCmd.AddCommand(newReviewCmd(o))
	rootCmd.AddCommand(newStatsCmd(o))
	rootCmd.AddCommand(newExportCmd(o))
	rootCmd.AddCommand(newResetCmd(o))
	rootCmd.AddCommand(newDoCmd(o))
	rootCmd.AddCommand(newConfigCmd(o))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return err
	}
	if o.dataFile != "" {
		cfg.DataFile = o.dataFile
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	o.cfg = cfg
	o.logger = newLogger(cmd.ErrOrStderr(), cfg.Level())
	if src := cfg.Source(); src != "" {
		o.logger.Debug("using config file", "path", src)
	}
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openState loads the document. The returned cleanup stops the timer and
// closes the store.
func (o *rootOptions) openState(ctx context.Context, opts ...app.Option) (*app.State, func(), error) {
	store, err := storage.Open(o.cfg.Backend, o.cfg.DataFile)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]app.Option{app.WithLogger(o.logger)}, opts...)
	st, err := app.New(ctx, store, opts...)
	if err != nil {
		_ = storage.Close(store)
		if errors.Is(err, storage.ErrCorruptState) {
			return nil, nil, fmt.Errorf("%w: fix or move %s and retry", err, o.cfg.DataFile)
		}
		return nil, nil, err
	}
	o.logger.Debug("state opened", "backend", o.cfg.Backend, "path", o.cfg.DataFile)
	cleanup := func() {
		st.Close()
		if err := storage.Close(store); err != nil {
			o.logger.Warn("closing store", "path", o.cfg.DataFile, "err", err)
		}
	}
	return st, cleanup, nil
}

// markdownStyle resolves "auto" to a glamour style for the command output.
func (o *rootOptions) markdownStyle(cmd *cobra.Command) string {
	if o.cfg.MarkdownStyle != "auto" {
		return o.cfg.MarkdownStyle
	}
	if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
