package main

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/fitscore/internal/ingestion"
	"github.com/jonathan/fitscore/internal/observability"
	"github.com/jonathan/fitscore/internal/schemas"
	"github.com/jonathan/fitscore/internal/types"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume for ATS compatibility",
	Long: `Score a resume (plain text, Markdown or HTML) and print the composite score with its
sub-scores and recommendations as JSON. With --job, keywords are drawn from the job description
as well as the canonical vocabulary.`,
	RunE: runScore,
}

var (
	scoreResumeFile string
	scoreJobFile    string
	scoreOutputFile string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResumeFile, "resume", "r", "", "Path to the resume file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to a job description file")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Write JSON to this file instead of stdout")

	_ = scoreCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resume, meta, err := ingestion.ReadDocument(scoreResumeFile, types.DocumentResume)
	if err != nil {
		return err
	}
	slog.Debug("read resume", "path", meta.Path, "format", meta.Format, "chars", meta.Chars, "sha256", meta.Hash)

	jd, err := ingestion.ReadOptionalDocument(scoreJobFile, types.DocumentJobDescription)
	if err != nil {
		return err
	}

	checker, err := cfg.NewChecker()
	if err != nil {
		return err
	}
	score, err := checker.Score(resume.Text, jd)
	if err != nil {
		return fmt.Errorf("failed to score %s: %w", scoreResumeFile, err)
	}

	if verbose {
		p := observability.NewPrinter(cmd.ErrOrStderr())
		p.PrintFeatureVector(&score.Sections)
		p.PrintCompositeScore(score)
	}

	return writeJSON(cmd.OutOrStdout(), scoreOutputFile, score, schemas.CompositeScorePath)
}
