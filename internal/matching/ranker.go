package matching

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fitscore/internal/scoring"
	"github.com/jonathan/fitscore/internal/types"
	"github.com/jonathan/fitscore/internal/vocabulary"
)

// Ranker scores job records against a profile and returns the best matches.
// It is immutable after construction and safe for concurrent use.
type Ranker struct {
	engine       *scoring.Engine[candidate]
	skills       vocabulary.Vocabulary
	workers      int
	minScore     int
	maxResults   int
	missingLimit int
	logger       *slog.Logger
}

type settings struct {
	weights      []scoring.Weight
	skills       vocabulary.Vocabulary
	workers      int
	minScore     int
	maxResults   int
	missingLimit int
	logger       *slog.Logger
}

// Option configures a Ranker.
type Option func(*settings)

// WithWeights replaces the ranking weight table.
func WithWeights(weights ...scoring.Weight) Option {
	return func(s *settings) { s.weights = weights }
}

// WithSkills replaces the skill vocabulary used for overlap and missing skills.
func WithSkills(skills vocabulary.Vocabulary) Option {
	return func(s *settings) { s.skills = skills }
}

// WithWorkers sets how many records are scored concurrently.
func WithWorkers(n int) Option {
	return func(s *settings) { s.workers = n }
}

// WithMinScore sets the threshold a match must exceed to be returned.
func WithMinScore(n int) Option {
	return func(s *settings) { s.minScore = n }
}

// WithMaxResults caps the number of returned matches.
func WithMaxResults(n int) Option {
	return func(s *settings) { s.maxResults = n }
}

// WithMissingSkillLimit caps the missing skills reported per match.
func WithMissingSkillLimit(n int) Option {
	return func(s *settings) { s.missingLimit = n }
}

// WithLogger sets the logger for warnings. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// NewRanker builds a Ranker. Invalid weights or limits are reported as *scoring.ConfigurationError.
func NewRanker(opts ...Option) (*Ranker, error) {
	s := settings{
		weights:      DefaultWeights(),
		skills:       vocabulary.Skills(),
		workers:      DefaultWorkers,
		minScore:     DefaultMinScore,
		maxResults:   DefaultMaxResults,
		missingLimit: DefaultMissingSkillLimit,
	}
	for _, opt := range opts {
		opt(&s)
	}

	switch {
	case s.workers < 1:
		return nil, &scoring.ConfigurationError{Field: "workers", Message: fmt.Sprintf("must be at least 1, got %d", s.workers)}
	case s.minScore < scoring.MinScore || s.minScore > scoring.MaxScore:
		return nil, &scoring.ConfigurationError{Field: "min_score", Message: fmt.Sprintf("must be in [0,100], got %d", s.minScore)}
	case s.maxResults < 1:
		return nil, &scoring.ConfigurationError{Field: "max_results", Message: fmt.Sprintf("must be at least 1, got %d", s.maxResults)}
	case s.missingLimit < 1:
		return nil, &scoring.ConfigurationError{Field: "missing_skill_limit", Message: fmt.Sprintf("must be at least 1, got %d", s.missingLimit)}
	case len(s.skills) == 0:
		return nil, &scoring.ConfigurationError{Field: "skills", Message: "skill vocabulary is empty"}
	}

	table, err := scoring.NewWeightTable(s.weights...)
	if err != nil {
		return nil, fmt.Errorf("invalid ranking weights: %w", err)
	}
	engine, err := scoring.NewEngine(table, extractors()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build ranking engine: %w", err)
	}

	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Ranker{
		engine:       engine,
		skills:       vocabulary.New(s.skills...),
		workers:      s.workers,
		minScore:     s.minScore,
		maxResults:   s.maxResults,
		missingLimit: s.missingLimit,
		logger:       logger,
	}, nil
}

// Ranking is the outcome of a ranking call.
type Ranking struct {
	Matches  []types.MatchResult    `json:"matches"`
	Warnings []PartialResultWarning `json:"warnings"`
	Scored   int                    `json:"scored"`
}

// Rank returns the records scoring above the threshold, best first, capped at the result limit.
// search overrides query.Search when non-blank.
func (r *Ranker) Rank(ctx context.Context, query types.ProfileQuery, search string, jobs []types.JobRecord) ([]types.MatchResult, error) {
	ranking, err := r.RankDetailed(ctx, query, search, jobs)
	if err != nil {
		return nil, err
	}
	return ranking.Matches, nil
}

// RankDetailed is Rank plus the per-record warnings collected along the way.
// The context is checked between records; cancellation abandons the whole batch.
func (r *Ranker) RankDetailed(ctx context.Context, query types.ProfileQuery, search string, jobs []types.JobRecord) (*Ranking, error) {
	p := newProfile(query, search, r.skills)

	results := make([]types.MatchResult, len(jobs))
	warnings := make([][]PartialResultWarning, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], warnings[i] = r.scoreRecord(&p, i, jobs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking abandoned: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ranking abandoned: %w", err)
	}

	ranking := &Ranking{
		Matches:  r.selectTop(results),
		Warnings: make([]PartialResultWarning, 0),
		Scored:   len(jobs),
	}
	for _, ws := range warnings {
		ranking.Warnings = append(ranking.Warnings, ws...)
	}
	return ranking, nil
}

// scoreRecord scores one record. A panic is contained to this record, which then scores 0.
func (r *Ranker) scoreRecord(p *profile, index int, job types.JobRecord) (result types.MatchResult, warnings []PartialResultWarning) {
	if missing := job.MissingFields(); len(missing) > 0 {
		w := PartialResultWarning{Index: index, JobID: job.ID, Fields: missing, Reason: ReasonMissingFields}
		r.logger.Debug("scoring partial job record", "job_id", job.ID, "index", index, "missing", missing)
		warnings = append(warnings, w)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("job record scoring failed", "job_id", job.ID, "index", index, "panic", rec)
			result = types.MatchResult{Job: job, Score: 0, MatchingFactors: []string{}, MissingSkills: []string{}}
			warnings = append(warnings, PartialResultWarning{
				Index:  index,
				JobID:  job.ID,
				Reason: fmt.Sprintf("%s: %v", ReasonScoringFailed, rec),
			})
		}
	}()

	return r.evaluate(p, job), warnings
}

func (r *Ranker) evaluate(p *profile, job types.JobRecord) types.MatchResult {
	c := newCandidate(p, job, r.skills)
	eval := r.engine.Evaluate(c)
	return types.MatchResult{
		Job:             job,
		Score:           eval.Overall,
		MatchingFactors: eval.Factors(),
		MissingSkills:   c.missingSkills(r.missingLimit),
	}
}

// selectTop filters out scores at or below the threshold, sorts descending with ties in
// input order, and truncates to the result limit.
func (r *Ranker) selectTop(results []types.MatchResult) []types.MatchResult {
	kept := make([]types.MatchResult, 0, len(results))
	for _, res := range results {
		if res.Score > r.minScore {
			kept = append(kept, res)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if len(kept) > r.maxResults {
		kept = kept[:r.maxResults]
	}
	return kept
}
