package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/logger"
	"github.com/jonathan/job-matcher/internal/observability"
	"github.com/jonathan/job-matcher/internal/ranking"
	"github.com/jonathan/job-matcher/internal/recommendation"
	"github.com/jonathan/job-matcher/internal/server"
	"github.com/jonathan/job-matcher/internal/types"
)

var (
	rankLimit   int
	rankJSON    bool
	rankVerbose bool
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank matches from the command line",
	Long:  "Runs the ranking pipeline once against the configured store backend and prints the results.",
}

var rankCandidateCmd = &cobra.Command{
	Use:   "candidate <candidate-id>",
	Short: "Rank active postings for a candidate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRank(cmd, "postings", args[0])
	},
}

var rankPostingCmd = &cobra.Command{
	Use:   "posting <posting-id>",
	Short: "Rank active candidates for a posting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRank(cmd, "candidates", args[0])
	},
}

func init() {
	rankCmd.PersistentFlags().IntVarP(&rankLimit, "limit", "n", recommendation.DefaultLimit, "Maximum number of results")
	rankCmd.PersistentFlags().BoolVar(&rankJSON, "json", false, "Print results as JSON")
	rankCmd.PersistentFlags().BoolVarP(&rankVerbose, "verbose", "v", false, "Log pipeline activity")

	rankCmd.AddCommand(rankCandidateCmd, rankPostingCmd)
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, direction, anchorID string) error {
	if rankLimit < 1 || rankLimit > server.MaxLimit {
		return fmt.Errorf("--limit must be between 1 and %d", server.MaxLimit)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if rankVerbose {
		if log, err = logger.New(cfg.Log.JSON, true); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() { _ = log.Sync() }()
	}

	b, err := openBackend(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer b.close()

	results, err := rankOnce(cmd.Context(), cfg, b, log, direction, anchorID, rankLimit)
	if err != nil {
		return err
	}
	return printRanking(cmd.OutOrStdout(), direction, anchorID, rankLimit, rankJSON, results)
}

// rankOnce builds a pipeline over b and runs a single ranking.
func rankOnce(ctx context.Context, cfg *config.Config, b *backend, log *zap.Logger, direction, anchorID string, limit int) ([]types.MatchResult, error) {
	scorer, err := ranking.NewScorer(cfg.Ranking.Weights)
	if err != nil {
		return nil, fmt.Errorf("invalid ranking weights: %w", err)
	}

	svc := recommendation.NewService(scorer, b.profiles, b.postings, nil, log, recommendation.Config{
		Workers:      cfg.Ranking.Workers,
		FetchTimeout: cfg.Ranking.FetchTimeout,
	})

	if direction == "candidates" {
		return svc.RankCandidatesForPosting(ctx, anchorID, limit), nil
	}
	return svc.RankPostingsForCandidate(ctx, anchorID, limit), nil
}

func printRanking(out io.Writer, direction, anchorID string, limit int, asJSON bool, results []types.MatchResult) error {
	printer := observability.NewPrinter(out)
	if asJSON {
		return printer.PrintJSON(results)
	}
	return printer.PrintRanking(&observability.Ranking{
		Direction: direction,
		AnchorID:  anchorID,
		Limit:     limit,
		Results:   results,
	})
}
