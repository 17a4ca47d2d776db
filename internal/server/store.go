package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/job-tracker/internal/db"
)

// JobStore is the persistence surface the job handlers depend on.
// *db.DB satisfies it; tests substitute an in-memory fake.
type JobStore interface {
	CreateJob(ctx context.Context, in *db.JobCreate) (*db.Job, error)
	CreateJobs(ctx context.Context, inputs []*db.JobCreate) ([]*db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, skip, limit int) ([]*db.Job, error)
	SearchJobs(ctx context.Context, f db.SearchFilters) ([]*db.Job, error)
	UpdateJob(ctx context.Context, id uuid.UUID, upd *db.JobUpdate) (*db.Job, error)
	DeleteJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
}
