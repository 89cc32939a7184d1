package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/logger"
	"github.com/yildizm/TrendLens/internal/workflow"
)

// profileDebounce collapses the burst of events an editor produces on save
const profileDebounce = 150 * time.Millisecond

var (
	watchNiche   string
	watchFilters filterFlags
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <keyword> <profile.yaml>",
		Short: "Re-run an analysis whenever a filter profile changes",
		Long: `Analyze a keyword, then watch a YAML filter profile and re-run the analysis
every time the profile is saved. Only the filters that changed are applied,
following the same auto-apply rules as the interactive UI.

A profile holds any subset of the filter keys:

  time_window: month
  video_format: shorts
  small_channels_only: true
  view_range:
    low: 20
    high: 80

Press Ctrl+C to stop watching.

Examples:
  trendlens watch "home workouts" filters.yaml
  trendlens watch "budget gym" filters.yaml -o table`,
		Args: cobra.ExactArgs(2),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchNiche, "niche", "n", "", "niche shown with the results (default: the keyword)")
	watchFilters.register(cmd)

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	keyword, profilePath := strings.TrimSpace(args[0]), args[1]

	if err := validateWatchFilePath(profilePath); err != nil {
		return fmt.Errorf("invalid profile path: %w", err)
	}

	a, err := newApp(cmd, "watch")
	if err != nil {
		return err
	}
	defer a.close()

	filters, err := watchFilters.resolve(cmd, a.cfg)
	if err != nil {
		return err
	}
	if filters.state, err = loadProfile(profilePath, filters.state); err != nil {
		return err
	}

	niche := watchNiche
	if niche == "" {
		niche = keyword
	}
	session := a.newSession(filters)
	if err := session.UseKeywords(niche, []string{keyword}); err != nil {
		return err
	}
	if err := session.SelectKeyword(cmd.Context(), keyword); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := printAnalysis(a, session, out); err != nil {
		return err
	}

	watcher, err := createWatcher(profilePath)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching profile: %s\n", profilePath)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case <-signals:
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return runWatchLoop(ctx, watcher, profilePath, func() {
		applyProfile(ctx, a, session, profilePath, out)
	})
}

// applyProfile reloads the profile and re-runs the analysis if any filter
// changed. Errors are reported and the watch goes on.
func applyProfile(ctx context.Context, a *app, session *workflow.Session, path string, out io.Writer) {
	target, err := loadProfile(path, session.Controller().Filters())
	if err != nil {
		a.log.Warn("ignoring profile: %v", err)
		return
	}

	// a save without changes retries an analysis that failed last time
	retry := session.Controller().Notice() != nil

	changed, err := session.ApplyFilters(ctx, target)
	if err != nil {
		a.log.WarnWithFields("re-analysis failed, save the profile again to retry", []logger.Field{logger.Error(err)})
		return
	}
	if len(changed) == 0 && !retry {
		a.log.Debug("profile saved without filter changes")
		return
	}

	if len(changed) > 0 {
		names := make([]string, 0, len(changed))
		for _, f := range changed {
			names = append(names, string(f))
		}
		a.log.InfoWithFields("filters changed", []logger.Field{logger.F("fields", strings.Join(names, ","))})
	}

	if err := printAnalysis(a, session, out); err != nil {
		a.log.Warn("failed to print analysis: %v", err)
	}
}

// loadProfile decodes a filter profile on top of base. Keys absent from the
// file keep their value in base; an inverted view range is swapped.
func loadProfile(path string, base filter.State) (filter.State, error) {
	// #nosec G304 - path is validated by validateWatchFilePath
	data, err := os.ReadFile(path)
	if err != nil {
		return filter.State{}, fmt.Errorf("failed to read profile: %w", err)
	}

	next := base
	if err := yaml.Unmarshal(data, &next); err != nil {
		return filter.State{}, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	next = next.Normalized()
	if err := next.Validate(); err != nil {
		return filter.State{}, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return next, nil
}

func printAnalysis(a *app, session *workflow.Session, out io.Writer) error {
	f, err := a.formatter(out)
	if err != nil {
		return err
	}
	data, err := f.Format(analysisReport(session))
	if err != nil {
		return err
	}
	return writeOutput(out, data)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher watches the directory holding path, since many editors save
// by replacing the file rather than writing to it
func createWatcher(path string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch profile: %w", err)
	}

	return watcher, nil
}

// runWatchLoop calls onChange once per burst of changes to path until ctx ends
func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, onChange func()) error {
	target := filepath.Clean(path)

	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if isProfileChange(event, target) {
				debounce.Reset(profileDebounce)
			}

		case <-debounce.C:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
			}
		}
	}
}

// isProfileChange reports whether event wrote or replaced the profile
func isProfileChange(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// validateWatchFilePath validates that a profile path is safe to read
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("profile must have .yaml or .yml extension")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file")
	}
	return nil
}
