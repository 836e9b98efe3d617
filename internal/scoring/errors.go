package scoring

import "fmt"

// ConfigurationError represents an invalid weight table or engine definition.
// It is raised when an engine is constructed, never while scoring.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}
