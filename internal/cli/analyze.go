package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/TrendLens/internal/logger"
)

var (
	analyzeNiche   string
	analyzeFilters filterFlags
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <keyword>",
		Short: "Find outperforming videos for a keyword",
		Long: `Analyze the videos published for a keyword and rank them by viral score,
the ratio of views to channel subscribers. Videos from small channels with a
high score are marked as viral gems.

Filters default to the config file and can be overridden per run.

Examples:
  trendlens analyze "home workouts"
  trendlens analyze "home workouts" --time month --small
  trendlens analyze "budget gym" --view-low 20 --view-high 80 -o table`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeNiche, "niche", "n", "", "niche shown with the results (default: the keyword)")
	analyzeFilters.register(cmd)

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	keyword := strings.TrimSpace(strings.Join(args, " "))

	a, err := newApp(cmd, "analyze")
	if err != nil {
		return err
	}
	defer a.close()

	filters, err := analyzeFilters.resolve(cmd, a.cfg)
	if err != nil {
		return err
	}

	niche := analyzeNiche
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

	report := analysisReport(session)
	a.log.DebugWithFields("analysis complete", []logger.Field{
		logger.F("keyword", keyword),
		logger.Count(len(report.Cards)),
	})

	f, err := a.formatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	out, err := f.Format(report)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), out)
}
