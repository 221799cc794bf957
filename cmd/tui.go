package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/wayfare/internal/config"
	"github.com/theirongolddev/wayfare/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// The dashboard draws over stderr, so debug logging only goes to the file.
	flagVerbose = false

	return withEnv(cmd, func(_ context.Context, e *env) error {
		app := tui.NewApp(tui.Options{
			Services:  e.svc,
			Config:    e.cfg,
			Logger:    e.log,
			NeedSetup: !config.Exists(),
		})
		p := tea.NewProgram(app, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})
}
