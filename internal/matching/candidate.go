package matching

import (
	"strings"

	"github.com/jonathan/fitscore/internal/gaps"
	"github.com/jonathan/fitscore/internal/scoring"
	"github.com/jonathan/fitscore/internal/types"
	"github.com/jonathan/fitscore/internal/vocabulary"
)

// profile is the normalized candidate side, built once per Rank call.
type profile struct {
	search     string
	location   string
	jobType    string
	experience string
	skills     []string
}

func newProfile(q types.ProfileQuery, search string, skills vocabulary.Vocabulary) profile {
	if strings.TrimSpace(search) == "" {
		search = q.Search
	}
	return profile{
		search:     normalize(search),
		location:   normalize(q.Location),
		jobType:    normalize(q.JobType),
		experience: normalize(q.Experience),
		skills:     skills.Present(q.FreeText()),
	}
}

// candidate is one job record paired with the profile it is scored against.
type candidate struct {
	profile  *profile
	blob     string
	location string
	jobType  string
	skills   []string
}

func newCandidate(p *profile, job types.JobRecord, skills vocabulary.Vocabulary) candidate {
	blob := job.Blob()
	return candidate{
		profile:  p,
		blob:     blob,
		location: normalize(job.Location),
		jobType:  normalize(job.JobType),
		skills:   skills.Present(blob),
	}
}

// matchedSkills returns the job skills the profile also has, in job extraction order.
func (c candidate) matchedSkills() []string {
	return gaps.Intersect(c.skills, c.profile.skills)
}

func (c candidate) missingSkills(limit int) []string {
	return gaps.Missing(c.skills, c.profile.skills, limit)
}

// contains reports a substring match. An empty needle never matches.
func contains(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func hit(ok bool) float64 {
	if ok {
		return scoring.MaxScore
	}
	return scoring.MinScore
}

func extractors() []scoring.Extractor[candidate] {
	return []scoring.Extractor[candidate]{
		{
			Name:  ComponentSearch,
			Label: LabelSearch,
			Score: func(c candidate) float64 { return hit(contains(c.blob, c.profile.search)) },
		},
		{
			Name:  ComponentSkills,
			Label: LabelSkills,
			Score: func(c candidate) float64 {
				j := len(c.skills)
				if j == 0 {
					return 0
				}
				return scoring.MaxScore * float64(len(c.matchedSkills())) / float64(j)
			},
		},
		{
			Name:  ComponentLocation,
			Label: LabelLocation,
			Score: func(c candidate) float64 { return hit(contains(c.location, c.profile.location)) },
		},
		{
			Name:  ComponentJobType,
			Label: LabelJobType,
			Score: func(c candidate) float64 { return hit(contains(c.jobType, c.profile.jobType)) },
		},
		{
			Name:  ComponentExperience,
			Label: LabelExperience,
			Score: func(c candidate) float64 { return hit(contains(c.blob, c.profile.experience)) },
		},
	}
}
