package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/fitscore/internal/types"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS job_records (
	id          TEXT PRIMARY KEY,
	title       TEXT,
	description TEXT,
	company     TEXT,
	location    TEXT,
	job_type    TEXT,
	created_at  TEXT NOT NULL
)`

// SQLite is a job catalog in a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the catalog at path and ensures the schema exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite catalog: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	s := &SQLite{db: db}
	if err := s.InitSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// InitSchema creates the job_records table if it does not exist.
func (s *SQLite) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create job_records table: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() {
	_ = s.db.Close()
}

// InsertJobRecord stores a job record and returns its id. A blank id gets a new UUID.
func (s *SQLite) InsertJobRecord(ctx context.Context, job types.JobRecord) (string, error) {
	id := job.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := job.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO job_records (id, title, description, company, location, job_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, nullString(job.Title), nullString(job.Description), nullString(job.Company),
		nullString(job.Location), nullString(job.JobType), createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert job record: %w", err)
	}
	return id, nil
}

// GetJobRecord returns one job record, or nil if it does not exist.
func (s *SQLite) GetJobRecord(ctx context.Context, id string) (*types.JobRecord, error) {
	var (
		createdAt                                      string
		title, description, company, location, jobType sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT title, description, company, location, job_type, created_at
		 FROM job_records WHERE id = ?`,
		id,
	).Scan(&title, &description, &company, &location, &jobType, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job record: %w", err)
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("job record %s has invalid created_at %q: %w", id, createdAt, err)
	}
	return &types.JobRecord{
		ID:          id,
		Title:       title.String,
		Description: description.String,
		Company:     company.String,
		Location:    location.String,
		JobType:     jobType.String,
		CreatedAt:   created,
	}, nil
}

// ListJobRecords returns up to limit job records, newest first. A limit of 0 or less returns all.
// NULL columns become empty strings.
func (s *SQLite) ListJobRecords(ctx context.Context, limit int) ([]types.JobRecord, error) {
	query := `SELECT id, title, description, company, location, job_type, created_at
	          FROM job_records ORDER BY created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]types.JobRecord, 0)
	for rows.Next() {
		var (
			id, createdAt                                  string
			title, description, company, location, jobType sql.NullString
		)
		if err := rows.Scan(&id, &title, &description, &company, &location, &jobType, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan job record: %w", err)
		}
		created, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("job record %s has invalid created_at %q: %w", id, createdAt, err)
		}
		records = append(records, types.JobRecord{
			ID:          id,
			Title:       title.String,
			Description: description.String,
			Company:     company.String,
			Location:    location.String,
			JobType:     jobType.String,
			CreatedAt:   created,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job records: %w", err)
	}
	return records, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
