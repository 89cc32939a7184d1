package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yildizm/TrendLens/internal/logger"
	"github.com/yildizm/TrendLens/internal/ui"
	"github.com/yildizm/TrendLens/internal/workflow"
)

var tuiTheme string

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI",
		Long: `Start the interactive terminal UI. Enter a niche, pick a keyword and browse
the outperforming videos while adjusting the filters.

This is also what runs when trendlens is started without a subcommand.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	cmd.Flags().StringVar(&tuiTheme, "theme", "", "color theme (default, high-contrast, minimal)")

	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, "tui")
	if err != nil {
		return err
	}
	defer a.close()

	filters, err := configuredFilters(a.cfg)
	if err != nil {
		return err
	}

	theme := a.cfg.Output.Theme
	if cmd.Flags().Lookup("theme") != nil && cmd.Flags().Changed("theme") {
		theme = tuiTheme
	}

	// the TUI owns the terminal; diagnostics only go to a configured log file
	if logFile == nil {
		logger.SetOutput(io.Discard)
	}

	ctrl := workflow.New(
		workflow.WithFilters(filters.state),
		workflow.WithPolicy(filters.policy),
		workflow.WithLogger(a.log),
	)
	return ui.Run(cmd.Context(), a.services(), ui.Options{
		Theme:      theme,
		Monochrome: !useColor(a.cfg.Output.ColorMode, os.Stdout),
		Controller: ctrl,
		Logger:     a.log,
	})
}
