package main

import (
	"fmt"

	"github.com/jonathan/fitscore/internal/features"
	"github.com/jonathan/fitscore/internal/ingestion"
	"github.com/jonathan/fitscore/internal/observability"
	"github.com/jonathan/fitscore/internal/schemas"
	"github.com/jonathan/fitscore/internal/types"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the feature vector of a resume",
	Long:  "Extract the keyword, formatting, structure and readability sub-scores of a resume without combining them.",
	RunE:  runExtract,
}

var (
	extractResumeFile string
	extractJobFile    string
	extractOutputFile string
)

func init() {
	extractCmd.Flags().StringVarP(&extractResumeFile, "resume", "r", "", "Path to the resume file (required)")
	extractCmd.Flags().StringVarP(&extractJobFile, "job", "j", "", "Path to a job description file")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Write JSON to this file instead of stdout")

	_ = extractCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	resume, _, err := ingestion.ReadDocument(extractResumeFile, types.DocumentResume)
	if err != nil {
		return err
	}
	jd, err := ingestion.ReadOptionalDocument(extractJobFile, types.DocumentJobDescription)
	if err != nil {
		return err
	}

	extractor := features.NewExtractor(cfg.CheckerOptions().Features)
	vector, err := extractor.Extract(resume.Text, jd)
	if err != nil {
		return fmt.Errorf("failed to extract features from %s: %w", extractResumeFile, err)
	}

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintFeatureVector(&vector)
	}
	return writeJSON(cmd.OutOrStdout(), extractOutputFile, vector, schemas.FeatureVectorPath)
}
