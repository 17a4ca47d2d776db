package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, title, company, location, status, applied_date, follow_up_date,
	job_link, job_description, resume_path, job_board_id, source, notes,
	created_at, updated_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Status,
		&j.AppliedDate, &j.FollowUpDate, &j.JobLink, &j.JobDescription,
		&j.ResumePath, &j.JobBoardID, &j.Source, &j.Notes,
		&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJob inserts a new job record, or returns the existing record
// unchanged when one already exists with the same (job_board_id, company).
// The guard is the partial unique index, so concurrent creations cannot
// produce duplicates.
func (db *DB) CreateJob(ctx context.Context, in *JobCreate) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, location, status, applied_date, follow_up_date,
		        job_link, job_description, resume_path, job_board_id, source, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (job_board_id, company) WHERE job_board_id IS NOT NULL DO NOTHING
		 RETURNING `+jobColumns,
		in.Title, in.Company, in.Location, in.Status, in.AppliedDate, in.FollowUpDate,
		in.JobLink, in.Description, in.ResumePath, in.JobBoardID, in.Source, in.Notes,
	)
	job, err := scanJob(row)
	if err == nil {
		return job, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	// No row returned means the insert hit the duplicate guard.
	if in.JobBoardID == nil {
		return nil, fmt.Errorf("failed to create job: insert returned no row")
	}
	existing, err := db.getJobByBoardID(ctx, *in.JobBoardID, in.Company)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("failed to create job: duplicate vanished for board id %s", *in.JobBoardID)
	}
	return existing, nil
}

func (db *DB) getJobByBoardID(ctx context.Context, boardID, company string) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE job_board_id = $1 AND company = $2`,
		boardID, company,
	)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job by board id: %w", err)
	}
	return job, nil
}

// CreateJobs creates each input independently via CreateJob. The result order
// matches the input order. There is no atomicity across the batch.
func (db *DB) CreateJobs(ctx context.Context, inputs []*JobCreate) ([]*Job, error) {
	jobs := make([]*Job, 0, len(inputs))
	for _, in := range inputs {
		job, err := db.CreateJob(ctx, in)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// GetJob retrieves a job by its ID, or nil when absent.
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// ListJobs retrieves jobs with pagination in natural order. Callers that rely
// on ordering should use SearchJobs with an explicit sort field.
func (db *DB) ListJobs(ctx context.Context, skip, limit int) ([]*Job, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// SearchJobs retrieves jobs matching the filters, sorted and paginated.
// An unknown sort field yields *ErrInvalidSortField.
func (db *DB) SearchJobs(ctx context.Context, f SearchFilters) ([]*Job, error) {
	query, args, err := buildSearchQuery(f)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// buildSearchQuery assembles the filtered, sorted, paginated SELECT for
// SearchJobs. created_at and id are always appended as tie-breakers so
// identical arguments yield identical sequences.
func buildSearchQuery(f SearchFilters) (string, []any, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []any{}
	argNum := 1

	substr := func(column, value string) {
		query += fmt.Sprintf(" AND %s ILIKE $%d", column, argNum)
		args = append(args, "%"+value+"%")
		argNum++
	}
	if f.Company != "" {
		substr("company", f.Company)
	}
	if f.Title != "" {
		substr("title", f.Title)
	}
	if f.Location != "" {
		substr("location", f.Location)
	}
	if f.Status != "" {
		substr("status", f.Status)
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "applied_date"
	}
	column, err := SortColumn(sortBy)
	if err != nil {
		return "", nil, err
	}
	direction := "ASC"
	if f.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, created_at, id", column, direction)

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" OFFSET $%d LIMIT $%d", argNum, argNum+1)
	args = append(args, f.Skip, limit)

	return query, args, nil
}

// UpdateJob applies a partial update to a job and returns the updated record,
// or nil when the job does not exist. updated_at is refreshed on every
// successful update, even when the applied fields are a no-op.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, upd *JobUpdate) (*Job, error) {
	query, args := buildUpdateQuery(id, upd)
	row := db.pool.QueryRow(ctx, query, args...)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// buildUpdateQuery assembles the SET clause from the non-nil fields of the
// partial update.
func buildUpdateQuery(id uuid.UUID, upd *JobUpdate) (string, []any) {
	set := []string{"updated_at = NOW()"}
	args := []any{}
	argNum := 1

	assign := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, argNum))
		args = append(args, value)
		argNum++
	}
	if upd.Title != nil {
		assign("title", *upd.Title)
	}
	if upd.Company != nil {
		assign("company", *upd.Company)
	}
	if upd.Location != nil {
		assign("location", *upd.Location)
	}
	if upd.Status != nil {
		assign("status", *upd.Status)
	}
	if upd.AppliedDate != nil {
		assign("applied_date", *upd.AppliedDate)
	}
	if upd.FollowUpDate != nil {
		assign("follow_up_date", *upd.FollowUpDate)
	}
	if upd.JobLink != nil {
		assign("job_link", *upd.JobLink)
	}
	if upd.Description != nil {
		assign("job_description", *upd.Description)
	}
	if upd.ResumePath != nil {
		assign("resume_path", *upd.ResumePath)
	}
	if upd.JobBoardID != nil {
		assign("job_board_id", *upd.JobBoardID)
	}
	if upd.Source != nil {
		assign("source", *upd.Source)
	}
	if upd.Notes != nil {
		assign("notes", *upd.Notes)
	}

	query := fmt.Sprintf("UPDATE jobs SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), argNum, jobColumns)
	args = append(args, id)
	return query, args
}

// DeleteJob removes a job and returns the deleted record, or nil when absent.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`DELETE FROM jobs WHERE id = $1 RETURNING `+jobColumns, id)
	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to delete job: %w", err)
	}
	return job, nil
}

func collectJobs(rows pgx.Rows) ([]*Job, error) {
	jobs := make([]*Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}
