// Package config provides configuration loading and validation for the scorer and ranker.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/fitscore/internal/ats"
	"github.com/jonathan/fitscore/internal/features"
	"github.com/jonathan/fitscore/internal/gaps"
	"github.com/jonathan/fitscore/internal/matching"
	"github.com/jonathan/fitscore/internal/scoring"
	"github.com/jonathan/fitscore/internal/vocabulary"
)

// Environment variables read by FromEnv
const (
	EnvConfigPath  = "FITSCORE_CONFIG"
	EnvDatabaseURL = "DATABASE_URL"
	EnvSQLitePath  = "FITSCORE_SQLITE"
	EnvPort        = "PORT"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// Config represents the scoring configuration that can be loaded from a JSON or YAML file.
// All fields are optional; zero values are replaced by defaults in MergeWithDefaults.
type Config struct {
	// Weights
	ResumeWeights  []scoring.Weight `json:"resume_weights,omitempty" yaml:"resume_weights,omitempty"`
	RankingWeights []scoring.Weight `json:"ranking_weights,omitempty" yaml:"ranking_weights,omitempty"`

	// Resume scoring
	SectionIncrement    int      `json:"section_increment,omitempty" yaml:"section_increment,omitempty"`
	TopTokens           int      `json:"top_tokens,omitempty" yaml:"top_tokens,omitempty"`
	MissingKeywordLimit int      `json:"missing_keyword_limit,omitempty" yaml:"missing_keyword_limit,omitempty"`
	CanonicalTerms      []string `json:"canonical_terms,omitempty" yaml:"canonical_terms,omitempty"`
	SectionLabels       []string `json:"section_labels,omitempty" yaml:"section_labels,omitempty"`
	Stopwords           []string `json:"stopwords,omitempty" yaml:"stopwords,omitempty"`

	// Ranking
	SkillTerms        []string `json:"skill_terms,omitempty" yaml:"skill_terms,omitempty"`
	MinScore          int      `json:"min_score,omitempty" yaml:"min_score,omitempty"`
	MaxResults        int      `json:"max_results,omitempty" yaml:"max_results,omitempty"`
	MissingSkillLimit int      `json:"missing_skill_limit,omitempty" yaml:"missing_skill_limit,omitempty"`
	Workers           int      `json:"workers,omitempty" yaml:"workers,omitempty"`

	// Catalog sources and serving
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"` // PostgreSQL connection URL
	SQLitePath  string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`   // SQLite catalog file
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ResumeWeights:       scoring.DefaultResumeWeights(),
		RankingWeights:      matching.DefaultWeights(),
		SectionIncrement:    features.DefaultSectionIncrement,
		TopTokens:           vocabulary.DefaultTopTokens,
		MissingKeywordLimit: gaps.DefaultLimit,
		CanonicalTerms:      vocabulary.Canonical().Terms(),
		SectionLabels:       vocabulary.SectionLabels(),
		Stopwords:           stopwordList(vocabulary.Stopwords()),
		SkillTerms:          vocabulary.Skills().Terms(),
		MinScore:            matching.DefaultMinScore,
		MaxResults:          matching.DefaultMaxResults,
		MissingSkillLimit:   matching.DefaultMissingSkillLimit,
		Workers:             matching.DefaultWorkers,
		Port:                DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON file, or a YAML file when the extension is .yaml or .yml.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv returns a Config holding only the values set in the environment.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL: os.Getenv(EnvDatabaseURL),
		SQLitePath:  os.Getenv(EnvSQLitePath),
	}
	if port, err := strconv.Atoi(os.Getenv(EnvPort)); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Weight tables are checked the same way the scorer and ranker check them at construction.
func (c *Config) Validate() error {
	if len(c.ResumeWeights) > 0 {
		if _, err := scoring.NewWeightTable(c.ResumeWeights...); err != nil {
			return fmt.Errorf("config error: resume_weights: %w", err)
		}
	}
	if len(c.RankingWeights) > 0 {
		if _, err := scoring.NewWeightTable(c.RankingWeights...); err != nil {
			return fmt.Errorf("config error: ranking_weights: %w", err)
		}
	}

	counts := []struct {
		name  string
		value int
	}{
		{"section_increment", c.SectionIncrement},
		{"top_tokens", c.TopTokens},
		{"missing_keyword_limit", c.MissingKeywordLimit},
		{"max_results", c.MaxResults},
		{"missing_skill_limit", c.MissingSkillLimit},
		{"workers", c.Workers},
	}
	for _, n := range counts {
		if n.value < 0 {
			return fmt.Errorf("config error: '%s' must be non-negative", n.name)
		}
	}

	if c.MinScore < scoring.MinScore || c.MinScore > scoring.MaxScore {
		return fmt.Errorf("config error: 'min_score' must be between 0 and 100")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.DatabaseURL != "" && c.SQLitePath != "" {
		return fmt.Errorf("config error: 'database_url' and 'sqlite_path' are mutually exclusive")
	}

	if c.SQLitePath != "" {
		if _, err := os.Stat(c.SQLitePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: sqlite file not found: %s", c.SQLitePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// Slice fields: use default if empty
	if len(result.ResumeWeights) == 0 {
		result.ResumeWeights = defaults.ResumeWeights
	}
	if len(result.RankingWeights) == 0 {
		result.RankingWeights = defaults.RankingWeights
	}
	if len(result.CanonicalTerms) == 0 {
		result.CanonicalTerms = defaults.CanonicalTerms
	}
	if len(result.SectionLabels) == 0 {
		result.SectionLabels = defaults.SectionLabels
	}
	if len(result.Stopwords) == 0 {
		result.Stopwords = defaults.Stopwords
	}
	if len(result.SkillTerms) == 0 {
		result.SkillTerms = defaults.SkillTerms
	}

	// String fields
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SQLitePath == "" {
		result.SQLitePath = defaults.SQLitePath
	}

	// Int fields: use default if zero
	if result.SectionIncrement == 0 {
		result.SectionIncrement = defaults.SectionIncrement
	}
	if result.TopTokens == 0 {
		result.TopTokens = defaults.TopTokens
	}
	if result.MissingKeywordLimit == 0 {
		result.MissingKeywordLimit = defaults.MissingKeywordLimit
	}
	if result.MinScore == 0 {
		result.MinScore = defaults.MinScore
	}
	if result.MaxResults == 0 {
		result.MaxResults = defaults.MaxResults
	}
	if result.MissingSkillLimit == 0 {
		result.MissingSkillLimit = defaults.MissingSkillLimit
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge

	return result
}

// CheckerOptions translates the configuration into resume checker options.
func (c *Config) CheckerOptions() ats.Options {
	return ats.Options{
		Weights: c.ResumeWeights,
		Features: features.Config{
			Canonical:        vocabulary.New(c.CanonicalTerms...),
			Stopwords:        stopwordSet(c.Stopwords),
			TopTokens:        c.TopTokens,
			SectionLabels:    c.SectionLabels,
			SectionIncrement: c.SectionIncrement,
			MissingLimit:     c.MissingKeywordLimit,
		},
	}
}

// RankerOptions translates the configuration into ranker options.
func (c *Config) RankerOptions() []matching.Option {
	var opts []matching.Option
	if len(c.RankingWeights) > 0 {
		opts = append(opts, matching.WithWeights(c.RankingWeights...))
	}
	if len(c.SkillTerms) > 0 {
		opts = append(opts, matching.WithSkills(vocabulary.New(c.SkillTerms...)))
	}
	if c.Workers > 0 {
		opts = append(opts, matching.WithWorkers(c.Workers))
	}
	if c.MinScore > 0 {
		opts = append(opts, matching.WithMinScore(c.MinScore))
	}
	if c.MaxResults > 0 {
		opts = append(opts, matching.WithMaxResults(c.MaxResults))
	}
	if c.MissingSkillLimit > 0 {
		opts = append(opts, matching.WithMissingSkillLimit(c.MissingSkillLimit))
	}
	return opts
}

// NewChecker builds a resume checker from the configuration.
func (c *Config) NewChecker() (*ats.Checker, error) {
	return ats.NewChecker(c.CheckerOptions())
}

// NewRanker builds a ranker from the configuration. Extra options are applied last.
func (c *Config) NewRanker(extra ...matching.Option) (*matching.Ranker, error) {
	return matching.NewRanker(append(c.RankerOptions(), extra...)...)
}

func stopwordSet(words []string) map[string]bool {
	if len(words) == 0 {
		return nil
	}
	return vocabulary.StopSet(words...)
}

func stopwordList(set map[string]bool) []string {
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
