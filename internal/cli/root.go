package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yildizm/TrendLens/internal/config"
	"github.com/yildizm/TrendLens/internal/emoji"
	"github.com/yildizm/TrendLens/internal/logger"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	provider  string
	baseURL   string
	showStats bool
)

// globalConfig is the configuration loaded by the root pre-run hook
var globalConfig *config.Config

// logFile is the optional file diagnostics are written to
var logFile *os.File

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "trendlens",
		Short: "Find fast-growing YouTube videos from small channels",
		Long: `TrendLens helps creators find video ideas. Enter a niche, pick one of the
discovered keywords and TrendLens lists recent videos that outperform the
size of their channel.

Run without a subcommand to start the interactive terminal UI.`,
		SilenceUsage:       true,
		PersistentPreRunE:  setupRun,
		PersistentPostRunE: teardownRun,
		RunE:               runTUI,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, table, json, markdown, csv)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "backend provider (http, offline)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "backend-url", "", "backend base URL")
	rootCmd.PersistentFlags().BoolVar(&showStats, "stats", false, "print backend call statistics to stderr")

	rootCmd.AddCommand(newTUICommand())
	rootCmd.AddCommand(newDiscoverCommand())
	rootCmd.AddCommand(newIdeasCommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newScanCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// setupRun loads the configuration and prepares logging and emoji state.
// The config subcommands load files themselves and only need emoji state.
func setupRun(cmd *cobra.Command, args []string) error {
	// Auto-disable emojis on Windows if not explicitly set
	if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
		noEmoji = true
	}
	emoji.SetEmojiDisabled(noEmoji)

	if isConfigCommand(cmd) || cmd.Name() == "version" {
		return nil
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		return err
	}
	globalConfig = cfg

	if cfg.Output.NoEmoji && !cmd.Flag("no-emoji").Changed {
		noEmoji = true
		emoji.SetEmojiDisabled(true)
	}

	var w io.Writer = os.Stderr
	if cfg.Logging.File != "" {
		// #nosec G304 - log path comes from the user's own configuration
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		w = f
	}
	logger.Configure(cfg.Logging.Format, w)
	return nil
}

func teardownRun(cmd *cobra.Command, args []string) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// applyFlagOverrides copies explicitly set global flags over the loaded config
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Backend.Provider = provider
	}
	if flags.Changed("backend-url") {
		cfg.Backend.BaseURL = baseURL
	}
	if flags.Changed("output") {
		cfg.Output.Format = outputFmt
	}
	if flags.Changed("verbose") {
		cfg.Logging.Verbose = verbose
	}
	if flags.Changed("no-color") && noColor {
		cfg.Output.ColorMode = "never"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "TrendLens %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers
func isVerbose() bool {
	if globalConfig != nil {
		return globalConfig.Logging.Verbose
	}
	return verbose
}

func getOutputFormat() string {
	if globalConfig != nil && globalConfig.Output.Format != "" {
		return globalConfig.Output.Format
	}
	if outputFmt != "" {
		return outputFmt
	}
	return "text"
}

func isEmojiDisabled() bool {
	return noEmoji
}
