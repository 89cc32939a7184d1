package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/TrendLens/internal/backend"
	"github.com/yildizm/TrendLens/internal/cache"
	"github.com/yildizm/TrendLens/internal/config"
	"github.com/yildizm/TrendLens/internal/emoji"
	"github.com/yildizm/TrendLens/internal/logger"
)

// defaultConfigFile is where config init writes when no path is given
const defaultConfigFile = ".trendlens.yaml"

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create, inspect and check TrendLens configuration",
	}
	configCmd.AddCommand(
		newConfigInitCommand(),
		newConfigShowCommand(),
		newConfigValidateCommand(),
		newConfigPathCommand(),
	)
	return configCmd
}

// newConfigInitCommand creates the config init subcommand
func newConfigInitCommand() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		force      bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Long: `Write a commented sample configuration holding every backend, cache,
filter and output setting. --minimal writes only the backend, the cache and
the default filters.`,
		Example: `  trendlens config init
  trendlens config init --minimal
  trendlens config init -o ~/.config/trendlens/config.yaml --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				outputPath = defaultConfigFile
			}
			return writeSampleConfig(cmd.OutOrStdout(), outputPath, minimal, force)
		},
	}

	initCmd.Flags().StringVarP(&outputPath, "output", "o", "", "where to write the file (default: .trendlens.yaml)")
	initCmd.Flags().BoolVarP(&minimal, "minimal", "m", false, "write only the essential settings")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing file")

	return initCmd
}

func writeSampleConfig(out io.Writer, path string, minimal, force bool) error {
	if fileExists(path) && !force {
		return fmt.Errorf("%s already exists (use --force to replace it)", path)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	content, kind := config.SampleConfig(), "full configuration with every option documented"
	if minimal {
		content, kind = config.MinimalSampleConfig(), "minimal configuration"
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "%s Configuration file created at: %s\n", emoji.GetEmoji("success"), path)
	fmt.Fprintf(out, "%s Wrote a %s\n", emoji.GetEmoji("config"), kind)
	return nil
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var format string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the effective configuration after merging defaults, config files,
the .env file and TRENDLENS_* environment variables.`,
		Example: `  trendlens config show
  trendlens config show --format json --config ./profiles/shorts.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var marshal func(interface{}) ([]byte, error)
			switch format {
			case "json":
				marshal = func(v interface{}) ([]byte, error) {
					data, err := json.MarshalIndent(v, "", "  ")
					return append(data, '\n'), err
				}
			case "yaml":
				marshal = yaml.Marshal
			default:
				return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
			}

			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			data, err := marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config as %s: %w", format, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")

	return showCmd
}

// newConfigValidateCommand creates the config validate subcommand
func newConfigValidateCommand() *cobra.Command {
	var ping bool

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Load the configuration the same way every command does and report any
problem: unknown providers, cache backends or output formats, bad filter
values or auto-apply names, and non-positive timeouts. --ping also calls the
backend's health endpoint.`,
		Example: `  trendlens config validate
  trendlens config validate --config ./trendlens.yaml --ping`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed:\n", emoji.GetEmoji("error"))
				fmt.Fprintf(out, "   %v\n", err)
				return err
			}

			fmt.Fprintf(out, "%s Configuration is valid\n", emoji.GetEmoji("success"))
			fmt.Fprintf(out, "%s Configuration summary:\n", emoji.GetEmoji("statistics"))
			fmt.Fprintf(out, "   Version: %s\n", cfg.Version)
			fmt.Fprintf(out, "   Backend: %s (%s)\n", cfg.Backend.Provider, cfg.Backend.BaseURL)
			fmt.Fprintf(out, "   Cache: %s\n", cfg.Cache.Backend)
			fmt.Fprintf(out, "   Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "   Auto-apply Filters: %s\n", strings.Join(cfg.Filters.AutoApply, ", "))

			if !ping {
				return nil
			}
			if err := pingBackend(cmd.Context(), cfg); err != nil {
				fmt.Fprintf(out, "%s Backend unreachable: %v\n", emoji.GetEmoji("error"), err)
				return err
			}
			fmt.Fprintf(out, "%s Backend is reachable\n", emoji.GetEmoji("success"))
			return nil
		},
	}

	validateCmd.Flags().BoolVar(&ping, "ping", false, "check that the backend is reachable")

	return validateCmd
}

// pingBackend runs the provider health check without a cache
func pingBackend(ctx context.Context, cfg *config.Config) error {
	b, err := backend.New(cfg.Backend, cache.Nop{}, 0, logger.NewWithCallback("config", isVerbose))
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	ctx, cancel := context.WithTimeout(ctx, cfg.Backend.Timeout+time.Second)
	defer cancel()
	return b.HealthCheck(ctx)
}

// newConfigPathCommand creates the config path subcommand
func newConfigPathCommand() *cobra.Command {
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show configuration file search paths",
		Long:  "List the files TrendLens reads its configuration from; the first one found wins.",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Config search paths, first match wins:\n", emoji.GetEmoji("config"))

			for i, path := range config.GetConfigPaths() {
				state := emoji.GetEmoji("error") + " missing"
				if fileExists(path) {
					state = emoji.GetEmoji("success") + " found"
				}
				fmt.Fprintf(out, "  %d. %-45s %s\n", i+1, path, state)
			}
			fmt.Fprintln(out)

			if current, ok := config.FindConfigFile(); ok {
				fmt.Fprintf(out, "%s In use: %s\n", emoji.GetEmoji("target"), current)
			} else {
				fmt.Fprintf(out, "%s No config file found, built-in defaults apply\n", emoji.GetEmoji("info"))
			}
			fmt.Fprintf(out, "%s %s* environment variables and a .env file override file settings\n", emoji.GetEmoji("idea"), config.EnvPrefix)
		},
	}

	return pathCmd
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
