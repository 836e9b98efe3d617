package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonathan/fitscore/internal/config"
	"github.com/jonathan/fitscore/internal/schemas"
)

// loadConfig resolves the config file from --config or $FITSCORE_CONFIG, overlays the
// environment, fills defaults and validates the result.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigPath)
	}

	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		slog.Debug("loaded config", "path", path)
	}

	env := config.FromEnv()
	merged := cfg.MergeWithDefaults(env)
	merged = merged.MergeWithDefaults(config.Default())
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &merged, nil
}

// writeJSON writes v as indented JSON to path, or to w when path is empty, then checks it
// against the schema. Schema problems are reported as warnings only.
func writeJSON(w io.Writer, path string, v any, schemaPath string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	checkSchema(schemaPath, v)
	return nil
}

func checkSchema(schemaPath string, v any) {
	resolved := schemas.ResolveSchemaPath(schemaPath)
	if resolved == "" {
		slog.Debug("schema not found, skipping output validation", "schema", schemaPath)
		return
	}

	err := schemas.ValidateValue(resolved, v)
	if err == nil {
		return
	}
	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case errors.As(err, &validationErr):
		slog.Warn("output does not validate against schema", "schema", resolved, "error", err)
	case errors.As(err, &schemaLoadErr):
		slog.Warn("could not validate output against schema (schema loading failed)", "error", err)
	default:
		slog.Warn("could not validate output against schema", "error", err)
	}
}
