package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/focusd/internal/update"
)

func newTUICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive dashboard",
		Args:  cobra.NoArgs,
		RunE:  o.runTUI,
	}
}

func (o *rootOptions) runTUI(cmd *cobra.Command, args []string) error {
	logPath := o.cfg.TUILogFile()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	o.logger = newLogger(logFile, o.cfg.Level())

	st, cleanup, err := o.openState(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	m := update.NewModel(st, update.Options{
		Context:       cmd.Context(),
		MarkdownStyle: o.markdownStyle(cmd),
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("focusd failed: %w", err)
	}
	return nil
}
