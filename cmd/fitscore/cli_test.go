package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fitscore/internal/matching"
	"github.com/jonathan/fitscore/internal/types"
)

// resetFlags restores every flag to its default so commands can run repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command in-process with an isolated environment.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FITSCORE_CONFIG", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FITSCORE_SQLITE", "")
	t.Setenv("PORT", "")

	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const jobsYAML = `- id: a
  title: Buyer
  description: Purchasing role
  company: Acme
  location: Nairobi
- id: b
  title: Senior Buyer
  description: Purchasing
  company: Beta
  location: Mombasa
- id: c
  title: Driver
  description: Deliveries
  company: Gamma
  location: Kisumu
`

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "manages inventory using SAP ERP")

	stdout, _, err := execute(t, "score", "--resume", resume)
	require.NoError(t, err)

	var score types.CompositeScore
	require.NoError(t, json.Unmarshal([]byte(stdout), &score))
	assert.Equal(t, 24, score.Overall)
	assert.Equal(t, []string{"inventory", "sap", "erp"}, score.Sections.Matched)
}

func TestScoreCommand_OutFileAndHTMLJob(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.md", "Procurement and customs clearance.")
	job := writeFile(t, dir, "job.html", "<html><body><nav>Menu</nav><main><p>Customs specialist.</p></main></body></html>")
	out := filepath.Join(dir, "score.json")

	stdout, _, err := execute(t, "score", "-r", resume, "-j", job, "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var score types.CompositeScore
	require.NoError(t, json.Unmarshal(data, &score))
	assert.Contains(t, score.Sections.Matched, "customs")
}

func TestScoreCommand_Verbose(t *testing.T) {
	resume := writeFile(t, t.TempDir(), "resume.txt", "manages inventory using SAP ERP")

	_, stderr, err := execute(t, "score", "--resume", resume, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "ATS SCORE")
}

func TestScoreCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	blank := writeFile(t, dir, "blank.txt", "  \n\n ")

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"missing resume flag", []string{"score"}, "required flag"},
		{"unreadable resume", []string{"score", "--resume", filepath.Join(dir, "nope.txt")}, "nope.txt"},
		{"blank resume", []string{"score", "--resume", blank}, "empty"},
		{"bad log format", []string{"score", "--resume", blank, "--log-format", "xml"}, "unknown log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestScoreCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "manages inventory using SAP ERP")
	cfg := writeFile(t, dir, "fitscore.yaml", `resume_weights:
  - {name: keywords, value: 1.0}
  - {name: formatting, value: 0}
  - {name: structure, value: 0}
  - {name: readability, value: 0}
`)

	stdout, _, err := execute(t, "score", "--resume", resume, "--config", cfg)
	require.NoError(t, err)
	var score types.CompositeScore
	require.NoError(t, json.Unmarshal([]byte(stdout), &score))
	assert.Equal(t, 15, score.Overall)
}

func TestScoreCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "inventory")
	cfg := writeFile(t, dir, "fitscore.json", `{"resume_weights":[{"name":"keywords","value":0.5}]}`)

	_, _, err := execute(t, "score", "--resume", resume, "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestExtractCommand(t *testing.T) {
	resume := writeFile(t, t.TempDir(), "resume.txt", "manages inventory using SAP ERP")

	stdout, _, err := execute(t, "extract", "--resume", resume)
	require.NoError(t, err)

	var vector types.FeatureVector
	require.NoError(t, json.Unmarshal([]byte(stdout), &vector))
	assert.Equal(t, 15, vector.Keywords)
	assert.Equal(t, 90, vector.Formatting)
	assert.Len(t, vector.Missing, 10)
}

func TestRankCommand_JobsFile(t *testing.T) {
	dir := t.TempDir()
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)
	profile := writeFile(t, dir, "profile.json", `{"location":"Nairobi","search":"buyer"}`)

	stdout, _, err := execute(t, "rank", "--profile", profile, "--jobs", jobs)
	require.NoError(t, err)

	var ranking matching.Ranking
	require.NoError(t, json.Unmarshal([]byte(stdout), &ranking))
	require.Len(t, ranking.Matches, 2)
	assert.Equal(t, "a", ranking.Matches[0].Job.ID)
	assert.Equal(t, 50, ranking.Matches[0].Score)
	assert.Equal(t, 3, ranking.Scored)
}

func TestRankCommand_SearchOverridesProfile(t *testing.T) {
	dir := t.TempDir()
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)
	profile := writeFile(t, dir, "profile.yaml", "search: buyer\n")

	stdout, _, err := execute(t, "rank", "--profile", profile, "--jobs", jobs, "--search", "driver")
	require.NoError(t, err)

	var ranking matching.Ranking
	require.NoError(t, json.Unmarshal([]byte(stdout), &ranking))
	require.Len(t, ranking.Matches, 1)
	assert.Equal(t, "c", ranking.Matches[0].Job.ID)
}

func TestRankCommand_ImportThenSQLite(t *testing.T) {
	dir := t.TempDir()
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)
	profile := writeFile(t, dir, "profile.json", `{"search":"buyer"}`)
	catalog := filepath.Join(dir, "catalog.db")

	stdout, _, err := execute(t, "import-jobs", "--jobs", jobs, "--sqlite", catalog)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 3 job records (0 already present)")

	stdout, _, err = execute(t, "rank", "--profile", profile, "--sqlite", catalog)
	require.NoError(t, err)
	var ranking matching.Ranking
	require.NoError(t, json.Unmarshal([]byte(stdout), &ranking))
	assert.Len(t, ranking.Matches, 2)
}

func TestImportCommand_SkipsExistingIDs(t *testing.T) {
	dir := t.TempDir()
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)
	catalog := filepath.Join(dir, "catalog.db")

	_, _, err := execute(t, "import-jobs", "--jobs", jobs, "--sqlite", catalog)
	require.NoError(t, err)

	stdout, _, err := execute(t, "import-jobs", "--jobs", jobs, "--sqlite", catalog)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Imported 0 job records (3 already present)")
}

func TestRankCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	jobs := writeFile(t, dir, "jobs.yaml", jobsYAML)
	profile := writeFile(t, dir, "profile.json", `{"search":"buyer"}`)

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"missing profile", []string{"rank", "--jobs", jobs}, "required flag"},
		{"two sources", []string{"rank", "--profile", profile, "--jobs", jobs, "--sqlite", "x.db"}, "only one of"},
		{"no catalog", []string{"rank", "--profile", profile}, "no job catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestImportCommand_RequiresOneTarget(t *testing.T) {
	jobs := writeFile(t, t.TempDir(), "jobs.yaml", jobsYAML)

	_, _, err := execute(t, "import-jobs", "--jobs", jobs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "fitscore dev")
}
