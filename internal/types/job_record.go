package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// JobRecord is a job posting as seen by the ranker. It is opaque beyond these fields.
type JobRecord struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Company     string    `json:"company" yaml:"company"`
	Location    string    `json:"location" yaml:"location"`
	JobType     string    `json:"job_type" yaml:"job_type"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

// Validate validates the JobRecord using the validator.
func (j *JobRecord) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}

// Blob returns the normalized text the ranker searches: title, description, company and location.
func (j JobRecord) Blob() string {
	return strings.ToLower(strings.Join([]string{j.Title, j.Description, j.Company, j.Location}, " "))
}

// MissingFields lists the optional fields that are empty, in declaration order.
func (j JobRecord) MissingFields() []string {
	var missing []string
	fields := []struct {
		name  string
		value string
	}{
		{"title", j.Title},
		{"description", j.Description},
		{"company", j.Company},
		{"location", j.Location},
		{"job_type", j.JobType},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// MatchResult is one job record's score with the factors that explain it.
type MatchResult struct {
	Job             JobRecord `json:"job"`
	Score           int       `json:"score"`
	MatchingFactors []string  `json:"matching_factors"`
	MissingSkills   []string  `json:"missing_skills"`
}
