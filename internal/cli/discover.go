package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/TrendLens/internal/formatter"
	"github.com/yildizm/TrendLens/internal/workflow"
)

func newDiscoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discover <niche>",
		Short: "Discover keywords for a niche",
		Long: `Ask the backend for search keywords that fit a niche. The first keyword is
usually the niche itself, followed by related searches.

Examples:
  trendlens discover fitness
  trendlens discover "retro gaming" -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDiscover,
	}
}

func newIdeasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ideas",
		Short: "Generate random viral video ideas",
		Long: `Ask the backend for a set of random high-potential topics when you do not
have a niche in mind yet.`,
		Args: cobra.NoArgs,
		RunE: runIdeas,
	}
}

func runDiscover(cmd *cobra.Command, args []string) error {
	return runKeywords(cmd, func(s *workflow.Session) error {
		return s.Discover(cmd.Context(), strings.Join(args, " "))
	})
}

func runIdeas(cmd *cobra.Command, args []string) error {
	return runKeywords(cmd, func(s *workflow.Session) error {
		return s.GenerateViralIdeas(cmd.Context())
	})
}

// runKeywords runs one keyword operation and prints the resulting set
func runKeywords(cmd *cobra.Command, op func(*workflow.Session) error) error {
	a, err := newApp(cmd, "discover")
	if err != nil {
		return err
	}
	defer a.close()

	filters, err := configuredFilters(a.cfg)
	if err != nil {
		return err
	}
	session := a.newSession(filters)
	if err := op(session); err != nil {
		return err
	}

	f, err := a.formatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	snap := session.Snapshot()
	out, err := f.FormatKeywords(&formatter.KeywordReport{Niche: snap.Niche, Keywords: snap.Keywords})
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), out)
}
