// Package db provides PostgreSQL database access for job application records.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

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

	// Verify connection
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

// The partial unique index is the duplicate guard: at most one record per
// (job_board_id, company) when a board id is present. Creation relies on it
// via ON CONFLICT rather than a check-then-insert.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title           TEXT NOT NULL,
	company         TEXT NOT NULL,
	location        TEXT NOT NULL,
	status          TEXT,
	applied_date    DATE,
	follow_up_date  DATE,
	job_link        TEXT,
	job_description TEXT,
	resume_path     TEXT,
	job_board_id    TEXT,
	source          TEXT,
	notes           TEXT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS jobs_company_idx ON jobs (company);
CREATE INDEX IF NOT EXISTS jobs_status_idx ON jobs (status);
CREATE INDEX IF NOT EXISTS jobs_applied_date_idx ON jobs (applied_date);

CREATE UNIQUE INDEX IF NOT EXISTS jobs_board_company_key
	ON jobs (job_board_id, company)
	WHERE job_board_id IS NOT NULL;
`

// Migrate creates the jobs table and its indexes. It is idempotent and safe
// to run on every startup.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
