// Package db stores job catalogs in PostgreSQL or SQLite. Job ids are opaque strings in both.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/fitscore/internal/types"
)

// JobSource supplies job records to the ranker.
type JobSource interface {
	ListJobRecords(ctx context.Context, limit int) ([]types.JobRecord, error)
	Close()
}

// postgresSchema creates the catalog table. Optional columns are nullable.
const postgresSchema = `CREATE TABLE IF NOT EXISTS job_records (
	id          TEXT PRIMARY KEY,
	title       TEXT,
	description TEXT,
	company     TEXT,
	location    TEXT,
	job_type    TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// InitSchema creates the job_records table if it does not exist.
func (db *DB) InitSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create job_records table: %w", err)
	}
	return nil
}

// InsertJobRecord stores a job record and returns its id. A blank id gets a new UUID.
func (db *DB) InsertJobRecord(ctx context.Context, job types.JobRecord) (string, error) {
	id := job.ID
	if id == "" {
		id = uuid.NewString()
	}

	createdAt := job.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO job_records (id, title, description, company, location, job_type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, nullIfEmpty(job.Title), nullIfEmpty(job.Description), nullIfEmpty(job.Company),
		nullIfEmpty(job.Location), nullIfEmpty(job.JobType), createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert job record: %w", err)
	}
	return id, nil
}

// ListJobRecords returns up to limit job records, newest first. A limit of 0 or less returns all.
// NULL columns become empty strings.
func (db *DB) ListJobRecords(ctx context.Context, limit int) ([]types.JobRecord, error) {
	query := `SELECT id, title, description, company, location, job_type, created_at
	          FROM job_records ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job records: %w", err)
	}
	defer rows.Close()

	records := make([]types.JobRecord, 0)
	for rows.Next() {
		var (
			id                                             string
			title, description, company, location, jobType *string
			createdAt                                      time.Time
		)
		if err := rows.Scan(&id, &title, &description, &company, &location, &jobType, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan job record: %w", err)
		}
		records = append(records, types.JobRecord{
			ID:          id,
			Title:       deref(title),
			Description: deref(description),
			Company:     deref(company),
			Location:    deref(location),
			JobType:     deref(jobType),
			CreatedAt:   createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job records: %w", err)
	}
	return records, nil
}

// GetJobRecord returns one job record, or nil if it does not exist.
func (db *DB) GetJobRecord(ctx context.Context, id string) (*types.JobRecord, error) {
	var (
		title, description, company, location, jobType *string
		createdAt                                      time.Time
	)
	err := db.pool.QueryRow(ctx,
		`SELECT title, description, company, location, job_type, created_at
		 FROM job_records WHERE id = $1`,
		id,
	).Scan(&title, &description, &company, &location, &jobType, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job record: %w", err)
	}

	return &types.JobRecord{
		ID:          id,
		Title:       deref(title),
		Description: deref(description),
		Company:     deref(company),
		Location:    deref(location),
		JobType:     deref(jobType),
		CreatedAt:   createdAt,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
