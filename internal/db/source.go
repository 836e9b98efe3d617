package db

import (
	"context"
	"fmt"

	"github.com/jonathan/fitscore/internal/types"
)

// JobStore is a catalog that can also be written to.
type JobStore interface {
	JobSource
	InitSchema(ctx context.Context) error
	InsertJobRecord(ctx context.Context, job types.JobRecord) (string, error)
	GetJobRecord(ctx context.Context, id string) (*types.JobRecord, error)
}

// OpenStore opens the configured catalog. databaseURL wins over sqlitePath; with neither set
// there is no store and OpenStore returns nil.
func OpenStore(ctx context.Context, databaseURL, sqlitePath string) (JobStore, error) {
	switch {
	case databaseURL != "":
		pg, err := Connect(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case sqlitePath != "":
		lite, err := OpenSQLite(ctx, sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog %s: %w", sqlitePath, err)
		}
		return lite, nil
	default:
		return nil, nil
	}
}

// OpenSource is OpenStore for read-only callers.
func OpenSource(ctx context.Context, databaseURL, sqlitePath string) (JobSource, error) {
	store, err := OpenStore(ctx, databaseURL, sqlitePath)
	if err != nil || store == nil {
		return nil, err
	}
	return store, nil
}
