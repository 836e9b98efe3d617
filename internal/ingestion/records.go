package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/fitscore/internal/types"
)

// LoadError reports a catalog or profile file that could not be used.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error in %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error in %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// LoadJobRecords reads a JSON or YAML array of job records. Every record needs an id;
// other fields may be empty.
func LoadJobRecords(path string) ([]types.JobRecord, error) {
	var records []types.JobRecord
	if err := decodeFile(path, &records); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(records))
	for i := range records {
		if err := records[i].Validate(); err != nil {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("record %d is invalid", i), Cause: err}
		}
		if seen[records[i].ID] {
			return nil, &LoadError{Path: path, Message: fmt.Sprintf("duplicate job id %q", records[i].ID)}
		}
		seen[records[i].ID] = true
	}
	return records, nil
}

// LoadProfile reads a JSON or YAML profile query.
func LoadProfile(path string) (*types.ProfileQuery, error) {
	var q types.ProfileQuery
	if err := decodeFile(path, &q); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, &LoadError{Path: path, Message: "profile is invalid", Cause: err}
	}
	return &q, nil
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return &LoadError{Path: path, Message: "failed to parse YAML", Cause: err}
		}
	default:
		if err := json.Unmarshal(data, out); err != nil {
			return &LoadError{Path: path, Message: "failed to parse JSON", Cause: err}
		}
	}
	return nil
}
