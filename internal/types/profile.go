package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ProfileQuery carries the candidate-side matching inputs. The engine never persists it.
type ProfileQuery struct {
	Skills     string `json:"skills,omitempty" yaml:"skills,omitempty" validate:"max=4000"`
	Experience string `json:"experience,omitempty" yaml:"experience,omitempty" validate:"max=500"`
	Location   string `json:"location,omitempty" yaml:"location,omitempty" validate:"max=200"`
	JobType    string `json:"job_type,omitempty" yaml:"job_type,omitempty" validate:"max=100"`
	Search     string `json:"search,omitempty" yaml:"search,omitempty" validate:"max=200"`
}

// Validate validates the ProfileQuery using the validator.
func (q *ProfileQuery) Validate() error {
	validate := validator.New()
	return validate.Struct(q)
}

// FreeText returns the profile text used for skill extraction.
func (q ProfileQuery) FreeText() string {
	return strings.TrimSpace(q.Skills + " " + q.Experience)
}
