// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/fitscore/internal/matching"
	"github.com/jonathan/fitscore/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintFeatureVector outputs the sub-scores and keyword lists of one document.
func (p *Printer) PrintFeatureVector(fv *types.FeatureVector) {
	if fv == nil {
		return
	}
	p.printBox("FEATURE VECTOR", strings.TrimSuffix(featureLines(fv), "\n"))
}

func featureLines(fv *types.FeatureVector) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Keywords:     %3d\n", fv.Keywords))
	sb.WriteString(fmt.Sprintf("Formatting:   %3d\n", fv.Formatting))
	sb.WriteString(fmt.Sprintf("Structure:    %3d\n", fv.Structure))
	sb.WriteString(fmt.Sprintf("Readability:  %3d\n", fv.Readability))

	if len(fv.Matched) > 0 {
		sb.WriteString(fmt.Sprintf("\nMatched (%d): %s\n", len(fv.Matched), strings.Join(fv.Matched, ", ")))
	}
	if len(fv.Missing) > 0 {
		sb.WriteString("Missing:\n")
		count := min(len(fv.Missing), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", fv.Missing[i]))
		}
		if len(fv.Missing) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(fv.Missing)-maxItemsToShow))
		}
	}
	return sb.String()
}

// PrintCompositeScore outputs the overall score, its sections and the recommendations.
func (p *Printer) PrintCompositeScore(score *types.CompositeScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall:      %3d / 100\n\n", score.Overall))
	sb.WriteString(featureLines(&score.Sections))

	if len(score.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range score.Recommendations {
			sb.WriteString(fmt.Sprintf("  • %s\n", rec))
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the top matches with their factors, then any warnings.
func (p *Printer) PrintRanking(ranking *matching.Ranking) {
	if ranking == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scored: %d  Matched: %d\n", ranking.Scored, len(ranking.Matches)))

	count := min(len(ranking.Matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		m := ranking.Matches[i]
		sb.WriteString(fmt.Sprintf("\n#%d  %s (%s)\n", i+1, displayTitle(m.Job), m.Job.ID))
		sb.WriteString(fmt.Sprintf("    Score: %d\n", m.Score))
		if len(m.MatchingFactors) > 0 {
			sb.WriteString(fmt.Sprintf("    Factors: %s\n", strings.Join(m.MatchingFactors, ", ")))
		}
		if len(m.MissingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Missing: %s\n", strings.Join(m.MissingSkills, ", ")))
		}
	}
	if len(ranking.Matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(ranking.Matches)-maxItemsToShow))
	}

	p.printBox("JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))

	if len(ranking.Warnings) > 0 {
		p.PrintWarnings(ranking.Warnings)
	}
}

// PrintWarnings outputs partial-result warnings, one per line.
func (p *Printer) PrintWarnings(warnings []matching.PartialResultWarning) {
	if len(warnings) == 0 {
		p.printBox("WARNINGS", "✓ No warnings")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d warning(s):\n\n", len(warnings)))
	for _, w := range warnings {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", w.Error()))
	}
	p.printBox("WARNINGS", strings.TrimSuffix(sb.String(), "\n"))
}

func displayTitle(job types.JobRecord) string {
	if job.Title == "" {
		return "(untitled)"
	}
	if job.Company == "" {
		return job.Title
	}
	return job.Title + " @ " + job.Company
}
