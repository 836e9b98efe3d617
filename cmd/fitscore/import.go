package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonathan/fitscore/internal/db"
	"github.com/jonathan/fitscore/internal/ingestion"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import-jobs",
	Short: "Load job records into a SQLite or Postgres catalog",
	Long:  "Load job records into a SQLite or Postgres catalog. Records whose id is already present are skipped.",
	RunE:  runImport,
}

var (
	importJobsFile    string
	importSQLitePath  string
	importDatabaseURL string
)

func init() {
	importCmd.Flags().StringVar(&importJobsFile, "jobs", "", "Path to a JSON/YAML file of job records (required)")
	importCmd.Flags().StringVar(&importSQLitePath, "sqlite", "", "Path to the SQLite catalog (created if missing)")
	importCmd.Flags().StringVar(&importDatabaseURL, "database-url", "", "Postgres URL of the catalog")

	_ = importCmd.MarkFlagRequired("jobs")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	if (importSQLitePath == "") == (importDatabaseURL == "") {
		return errors.New("use exactly one of --sqlite and --database-url")
	}

	jobs, err := ingestion.LoadJobRecords(importJobsFile)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	store, err := db.OpenStore(ctx, importDatabaseURL, importSQLitePath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitSchema(ctx); err != nil {
		return err
	}
	imported, skipped := 0, 0
	for _, job := range jobs {
		existing, err := store.GetJobRecord(ctx, job.ID)
		if err != nil {
			return fmt.Errorf("failed to look up job %s: %w", job.ID, err)
		}
		if existing != nil {
			slog.Debug("job already in catalog", "id", job.ID)
			skipped++
			continue
		}

		id, err := store.InsertJobRecord(ctx, job)
		if err != nil {
			return fmt.Errorf("failed to import job %s: %w", job.ID, err)
		}
		slog.Debug("imported job", "id", id)
		imported++
	}

	cmd.Printf("Imported %d job records (%d already present)\n", imported, skipped)
	return nil
}
