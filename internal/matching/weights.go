// Package matching ranks a catalog of job records against a candidate profile.
package matching

import "github.com/jonathan/fitscore/internal/scoring"

// Component names of the ranking weight table
const (
	ComponentSearch     = "search"
	ComponentSkills     = "skills"
	ComponentLocation   = "location"
	ComponentJobType    = "job_type"
	ComponentExperience = "experience"
)

// Default ranking weights. Each component value is in [0,100], so a full search match adds 40 points.
const (
	searchWeight     = 0.40
	skillsWeight     = 0.30
	locationWeight   = 0.10
	jobTypeWeight    = 0.10
	experienceWeight = 0.10
)

// Matching factor labels
const (
	LabelSearch     = "Matches search query"
	LabelSkills     = "Skills match"
	LabelLocation   = "Location match"
	LabelJobType    = "Job type match"
	LabelExperience = "Experience match"
)

// Pipeline defaults
const (
	DefaultMinScore          = 20
	DefaultMaxResults        = 20
	DefaultMissingSkillLimit = 5
	DefaultWorkers           = 4
)

// DefaultWeights returns the default ranking weight table entries.
func DefaultWeights() []scoring.Weight {
	return []scoring.Weight{
		{Name: ComponentSearch, Value: searchWeight},
		{Name: ComponentSkills, Value: skillsWeight},
		{Name: ComponentLocation, Value: locationWeight},
		{Name: ComponentJobType, Value: jobTypeWeight},
		{Name: ComponentExperience, Value: experienceWeight},
	}
}
