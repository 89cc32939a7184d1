package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yildizm/TrendLens/internal/backend"
	"github.com/yildizm/TrendLens/internal/cache"
	"github.com/yildizm/TrendLens/internal/config"
	"github.com/yildizm/TrendLens/internal/formatter"
	"github.com/yildizm/TrendLens/internal/logger"
	"github.com/yildizm/TrendLens/internal/monitor"
	"github.com/yildizm/TrendLens/internal/workflow"
)

// app bundles what every backend-facing command needs
type app struct {
	cfg     *config.Config
	backend *backend.Backend
	metrics *monitor.Collector
	log     *logger.Logger
	stderr  io.Writer
}

// newApp opens the cache and the configured backend provider
func newApp(cmd *cobra.Command, component string) (*app, error) {
	ctx := cmd.Context()
	cfg := globalConfig
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := logger.NewWithCallback(component, isVerbose)

	store, err := cache.New(ctx, cfg.Cache, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	b, err := backend.New(cfg.Backend, store, cfg.Cache.TTL, log)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}

	log.DebugWithFields("backend ready", []logger.Field{
		logger.F("provider", b.Provider().Name()),
		logger.F("cache", cfg.Cache.Backend),
	})
	return &app{
		cfg:     cfg,
		backend: b,
		metrics: monitor.NewCollector(),
		log:     log,
		stderr:  cmd.ErrOrStderr(),
	}, nil
}

// close releases the backend and prints call statistics when asked to
func (a *app) close() {
	if showStats {
		if _, err := io.WriteString(a.stderr, a.metrics.Snapshot().RenderText()); err != nil {
			a.log.Warn("failed to write stats: %v", err)
		}
	}
	if err := a.backend.Close(); err != nil {
		a.log.Warn("failed to close backend: %v", err)
	}
}

// services returns the backend collaborators with call tracking
func (a *app) services() workflow.Services {
	return a.metrics.Instrument(a.backend.Services())
}

// newSession creates a synchronous workflow session seeded with filters
func (a *app) newSession(filters workflowFilters) *workflow.Session {
	return workflow.NewSession(a.services(), a.log,
		workflow.WithFilters(filters.state),
		workflow.WithPolicy(filters.policy))
}

// formatter builds the output formatter for w
func (a *app) formatter(w io.Writer) (formatter.Formatter, error) {
	return formatter.New(getOutputFormat(), useColor(a.cfg.Output.ColorMode, w), !isEmojiDisabled())
}

// useColor resolves the color mode against the output stream
func useColor(mode string, w io.Writer) bool {
	if noColor {
		return false
	}
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// writeOutput writes formatted output, ending it with a newline
func writeOutput(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
