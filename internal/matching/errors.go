package matching

import (
	"fmt"
	"strings"
)

// PartialResultWarning is a non-fatal problem with one job record. The record was still scored,
// with empty strings for its missing fields, or with score 0 when scoring it failed.
type PartialResultWarning struct {
	Index  int      `json:"index"`
	JobID  string   `json:"job_id"`
	Fields []string `json:"fields,omitempty"`
	Reason string   `json:"reason"`
}

func (w PartialResultWarning) Error() string {
	if len(w.Fields) > 0 {
		return fmt.Sprintf("job %q (index %d): %s: %s", w.JobID, w.Index, w.Reason, strings.Join(w.Fields, ", "))
	}
	return fmt.Sprintf("job %q (index %d): %s", w.JobID, w.Index, w.Reason)
}

// Warning reasons
const (
	ReasonMissingFields = "missing optional fields"
	ReasonScoringFailed = "scoring failed"
)
