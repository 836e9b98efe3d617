package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/fitscore/internal/db"
	"github.com/jonathan/fitscore/internal/ingestion"
	"github.com/jonathan/fitscore/internal/matching"
	"github.com/jonathan/fitscore/internal/observability"
	"github.com/jonathan/fitscore/internal/schemas"
	"github.com/jonathan/fitscore/internal/types"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a job catalog against a candidate profile",
	Long: `Rank job records against a candidate profile and print the best matches as JSON.
Records come from a JSON or YAML file (--jobs), a SQLite catalog (--sqlite) or Postgres
(--database-url). Without any of these the catalog configured in the config file or the
environment is used.`,
	RunE: runRank,
}

var (
	rankProfileFile  string
	rankSearch       string
	rankJobsFile     string
	rankSQLitePath   string
	rankDatabaseURL  string
	rankOutputFile   string
	rankCatalogLimit int
	rankWorkers      int
)

func init() {
	rankCmd.Flags().StringVarP(&rankProfileFile, "profile", "p", "", "Path to the profile JSON/YAML file (required)")
	rankCmd.Flags().StringVarP(&rankSearch, "search", "s", "", "Search query (overrides the profile's search)")
	rankCmd.Flags().StringVar(&rankJobsFile, "jobs", "", "Path to a JSON/YAML file of job records")
	rankCmd.Flags().StringVar(&rankSQLitePath, "sqlite", "", "Path to a SQLite job catalog")
	rankCmd.Flags().StringVar(&rankDatabaseURL, "database-url", "", "Postgres URL of the job catalog")
	rankCmd.Flags().StringVarP(&rankOutputFile, "out", "o", "", "Write JSON to this file instead of stdout")
	rankCmd.Flags().IntVar(&rankCatalogLimit, "catalog-limit", 1000, "Maximum records read from a database catalog")
	rankCmd.Flags().IntVar(&rankWorkers, "workers", 0, "Concurrent scoring workers (default from config)")

	_ = rankCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	sources := 0
	for _, s := range []string{rankJobsFile, rankSQLitePath, rankDatabaseURL} {
		if s != "" {
			sources++
		}
	}
	if sources > 1 {
		return errors.New("use only one of --jobs, --sqlite and --database-url")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	profile, err := ingestion.LoadProfile(rankProfileFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	jobs, err := loadJobs(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return err
	}

	var extra []matching.Option
	if rankWorkers > 0 {
		extra = append(extra, matching.WithWorkers(rankWorkers))
	}
	extra = append(extra, matching.WithLogger(slog.Default()))
	ranker, err := cfg.NewRanker(extra...)
	if err != nil {
		return err
	}

	ranking, err := ranker.RankDetailed(ctx, *profile, rankSearch, jobs)
	if err != nil {
		return err
	}
	slog.Debug("ranked catalog", "scored", ranking.Scored, "matches", len(ranking.Matches), "warnings", len(ranking.Warnings))

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRanking(ranking)
	}
	return writeJSON(cmd.OutOrStdout(), rankOutputFile, ranking, schemas.MatchResultsPath)
}

// loadJobs reads the catalog named by the flags, falling back to the configured one.
func loadJobs(ctx context.Context, cfgDatabaseURL, cfgSQLitePath string) ([]types.JobRecord, error) {
	if rankJobsFile != "" {
		return ingestion.LoadJobRecords(rankJobsFile)
	}

	databaseURL, sqlitePath := rankDatabaseURL, rankSQLitePath
	if databaseURL == "" && sqlitePath == "" {
		databaseURL, sqlitePath = cfgDatabaseURL, cfgSQLitePath
	}

	source, err := db.OpenSource(ctx, databaseURL, sqlitePath)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, errors.New("no job catalog: use --jobs, --sqlite or --database-url")
	}
	defer source.Close()

	jobs, err := source.ListJobRecords(ctx, rankCatalogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return jobs, nil
}
