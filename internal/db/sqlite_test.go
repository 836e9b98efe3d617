package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fitscore/internal/types"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSQLite_InsertAndList(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	older := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	_, err := s.InsertJobRecord(ctx, types.JobRecord{
		ID: "a", Title: "Buyer", Description: "SAP", Company: "Acme",
		Location: "Nairobi", JobType: "Full-time", CreatedAt: older,
	})
	require.NoError(t, err)
	_, err = s.InsertJobRecord(ctx, types.JobRecord{ID: "b", Title: "Clerk", CreatedAt: newer})
	require.NoError(t, err)

	records, err := s.ListJobRecords(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "", records[0].Location)
	assert.Equal(t, "", records[0].JobType)
	assert.Equal(t, []string{"description", "company", "location", "job_type"}, records[0].MissingFields())

	assert.Equal(t, "a", records[1].ID)
	assert.Equal(t, "Nairobi", records[1].Location)
	assert.True(t, older.Equal(records[1].CreatedAt))
}

func TestSQLite_ListLimit(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.InsertJobRecord(ctx, types.JobRecord{Title: "Job"})
		require.NoError(t, err)
	}

	records, err := s.ListJobRecords(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestSQLite_GeneratesIDs(t *testing.T) {
	s := openTestSQLite(t)

	id, err := s.InsertJobRecord(context.Background(), types.JobRecord{Title: "Driver"})
	require.NoError(t, err)

	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestSQLite_DuplicateID(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	_, err := s.InsertJobRecord(ctx, types.JobRecord{ID: "dup"})
	require.NoError(t, err)
	_, err = s.InsertJobRecord(ctx, types.JobRecord{ID: "dup"})
	assert.Error(t, err)
}

func TestSQLite_GetJobRecord(t *testing.T) {
	s := openTestSQLite(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	_, err := s.InsertJobRecord(ctx, types.JobRecord{ID: "q100", Title: "Buyer", Location: "Nairobi", CreatedAt: created})
	require.NoError(t, err)

	job, err := s.GetJobRecord(ctx, "q100")
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "q100", job.ID)
	assert.Equal(t, "Buyer", job.Title)
	assert.Equal(t, "", job.Company)
	assert.True(t, created.Equal(job.CreatedAt))

	missing, err := s.GetJobRecord(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSQLite_EmptyCatalog(t *testing.T) {
	records, err := openTestSQLite(t).ListJobRecords(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSQLite_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	_, err = s.InsertJobRecord(ctx, types.JobRecord{ID: "keep", Title: "Buyer"})
	require.NoError(t, err)
	s.Close()

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	records, err := s.ListJobRecords(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "keep", records[0].ID)
}

func TestOpenSource(t *testing.T) {
	ctx := context.Background()

	src, err := OpenSource(ctx, "", "")
	require.NoError(t, err)
	assert.Nil(t, src)

	src, err = OpenSource(ctx, "", filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	require.NotNil(t, src)
	defer src.Close()

	_, ok := src.(*SQLite)
	assert.True(t, ok)
}

func TestOpenStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "jobs.db")

	store, err := OpenStore(ctx, "", path)
	require.NoError(t, err)
	require.NoError(t, store.InitSchema(ctx))
	_, err = store.InsertJobRecord(ctx, types.JobRecord{ID: "x", Title: "Buyer"})
	require.NoError(t, err)
	store.Close()

	src, err := OpenSource(ctx, "", path)
	require.NoError(t, err)
	defer src.Close()
	records, err := src.ListJobRecords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Buyer", records[0].Title)
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	require.NotNil(t, nullIfEmpty("x"))
	assert.Equal(t, "x", *nullIfEmpty("x"))

	assert.Equal(t, "", deref(nil))
	v := "y"
	assert.Equal(t, "y", deref(&v))
}

func TestNullString(t *testing.T) {
	assert.False(t, nullString("").Valid)
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, nullString("x"))
}
