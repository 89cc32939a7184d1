package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yildizm/TrendLens/internal/filter"
	"github.com/yildizm/TrendLens/internal/formatter"
	"github.com/yildizm/TrendLens/internal/logger"
	"github.com/yildizm/TrendLens/internal/present"
	"github.com/yildizm/TrendLens/internal/query"
	"github.com/yildizm/TrendLens/internal/workflow"
)

var (
	scanConcurrency int
	scanTopGems     int
	scanFilters     filterFlags
)

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <niche>",
		Short: "Analyze every keyword of a niche",
		Long: `Discover the keywords of a niche, analyze each of them with the same filters
and summarize the viral gems per keyword. Keywords are analyzed concurrently;
a keyword that fails is reported without stopping the others.

Examples:
  trendlens scan fitness
  trendlens scan "personal finance" --concurrency 2 --top 5 -o markdown`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScan,
	}

	cmd.Flags().IntVar(&scanConcurrency, "concurrency", 0, "keywords analyzed in parallel (default from config)")
	cmd.Flags().IntVar(&scanTopGems, "top", 0, "gems listed per keyword (default from config)")
	scanFilters.register(cmd)

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	niche := strings.Join(args, " ")

	a, err := newApp(cmd, "scan")
	if err != nil {
		return err
	}
	defer a.close()

	filters, err := scanFilters.resolve(cmd, a.cfg)
	if err != nil {
		return err
	}

	session := a.newSession(filters)
	if err := session.Discover(cmd.Context(), niche); err != nil {
		return err
	}
	snap := session.Snapshot()

	concurrency := a.cfg.Scan.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = scanConcurrency
	}
	topGems := a.cfg.Scan.TopGems
	if cmd.Flags().Changed("top") {
		topGems = scanTopGems
	}

	results, err := scanKeywords(cmd.Context(), a.services().Analysis, snap.Keywords, filters.state, concurrency, a.log)
	if err != nil {
		return err
	}

	f, err := a.formatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	out, err := f.FormatScan(&formatter.ScanReport{
		Niche:   snap.Niche,
		Filters: filters.state,
		Results: results,
		TopGems: topGems,
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), out)
}

// scanKeywords analyzes keywords with at most concurrency requests in flight.
// Results keep the keyword order. A failed keyword is recorded in its result;
// only cancellation of ctx aborts the scan.
func scanKeywords(ctx context.Context, analyzer workflow.Analyzer, keywords []string, filters filter.State, concurrency int, log *logger.Logger) ([]formatter.ScanResult, error) {
	results := make([]formatter.ScanResult, len(keywords))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, kw := range keywords {
		g.Go(func() error {
			start := time.Now()
			records, err := analyzer.Analyze(gctx, query.BuildAnalysisRequest(kw, filters))
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.WarnWithFields("keyword analysis failed", []logger.Field{
					logger.F("keyword", kw),
					logger.Error(err),
				})
				results[i] = formatter.ScanResult{Keyword: kw, Err: err}
				return nil
			}

			log.DebugWithFields("keyword analyzed", []logger.Field{
				logger.F("keyword", kw),
				logger.Count(len(records)),
				logger.Duration(time.Since(start)),
			})
			results[i] = formatter.ScanResult{Keyword: kw, Cards: present.PresentAll(records)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
