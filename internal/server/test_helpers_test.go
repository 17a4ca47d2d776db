package server

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/job-tracker/internal/db"
)

// fakeStore is an in-memory JobStore used by the handler tests. It mirrors
// the store contract: duplicate guard on (job_board_id, company), partial
// updates, substring search with validated dynamic sort.
type fakeStore struct {
	jobs []*db.Job
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func newTestServer() (*Server, *fakeStore) {
	store := newFakeStore()
	return &Server{store: store}, store
}

func (f *fakeStore) CreateJob(_ context.Context, in *db.JobCreate) (*db.Job, error) {
	if in.JobBoardID != nil && in.Company != "" {
		for _, j := range f.jobs {
			if j.JobBoardID != nil && *j.JobBoardID == *in.JobBoardID && j.Company == in.Company {
				return j, nil
			}
		}
	}

	now := time.Now()
	job := &db.Job{
		ID:             uuid.New(),
		Title:          in.Title,
		Company:        in.Company,
		Location:       in.Location,
		Status:         in.Status,
		AppliedDate:    in.AppliedDate,
		FollowUpDate:   in.FollowUpDate,
		JobLink:        in.JobLink,
		JobDescription: in.Description,
		ResumePath:     in.ResumePath,
		JobBoardID:     in.JobBoardID,
		Source:         in.Source,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.jobs = append(f.jobs, job)
	return job, nil
}

func (f *fakeStore) CreateJobs(ctx context.Context, inputs []*db.JobCreate) ([]*db.Job, error) {
	jobs := make([]*db.Job, 0, len(inputs))
	for _, in := range inputs {
		job, err := f.CreateJob(ctx, in)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (f *fakeStore) GetJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListJobs(_ context.Context, skip, limit int) ([]*db.Job, error) {
	if limit <= 0 {
		limit = 100
	}
	return paginate(f.jobs, skip, limit), nil
}

func (f *fakeStore) SearchJobs(_ context.Context, filters db.SearchFilters) ([]*db.Job, error) {
	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "applied_date"
	}
	if _, err := db.SortColumn(sortBy); err != nil {
		return nil, err
	}

	matched := make([]*db.Job, 0)
	for _, j := range f.jobs {
		if containsFold(j.Company, filters.Company) &&
			containsFold(j.Title, filters.Title) &&
			containsFold(j.Location, filters.Location) &&
			containsFold(deref(j.Status), filters.Status) {
			matched = append(matched, j)
		}
	}

	sort.SliceStable(matched, func(a, b int) bool {
		less := sortKey(matched[a], sortBy) < sortKey(matched[b], sortBy)
		if filters.SortDesc {
			return sortKey(matched[b], sortBy) < sortKey(matched[a], sortBy)
		}
		return less
	})

	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}
	return paginate(matched, filters.Skip, limit), nil
}

func (f *fakeStore) UpdateJob(_ context.Context, id uuid.UUID, upd *db.JobUpdate) (*db.Job, error) {
	for _, j := range f.jobs {
		if j.ID != id {
			continue
		}
		if upd.Title != nil {
			j.Title = *upd.Title
		}
		if upd.Company != nil {
			j.Company = *upd.Company
		}
		if upd.Location != nil {
			j.Location = *upd.Location
		}
		if upd.Status != nil {
			j.Status = upd.Status
		}
		if upd.AppliedDate != nil {
			j.AppliedDate = upd.AppliedDate
		}
		if upd.FollowUpDate != nil {
			j.FollowUpDate = upd.FollowUpDate
		}
		if upd.JobLink != nil {
			j.JobLink = upd.JobLink
		}
		if upd.Description != nil {
			j.JobDescription = upd.Description
		}
		if upd.ResumePath != nil {
			j.ResumePath = upd.ResumePath
		}
		if upd.JobBoardID != nil {
			j.JobBoardID = upd.JobBoardID
		}
		if upd.Source != nil {
			j.Source = upd.Source
		}
		if upd.Notes != nil {
			j.Notes = upd.Notes
		}
		j.UpdatedAt = time.Now()
		return j, nil
	}
	return nil, nil
}

func (f *fakeStore) DeleteJob(_ context.Context, id uuid.UUID) (*db.Job, error) {
	for i, j := range f.jobs {
		if j.ID == id {
			f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
			return j, nil
		}
	}
	return nil, nil
}

func paginate(jobs []*db.Job, skip, limit int) []*db.Job {
	if skip >= len(jobs) {
		return []*db.Job{}
	}
	end := skip + limit
	if end > len(jobs) {
		end = len(jobs)
	}
	out := make([]*db.Job, end-skip)
	copy(out, jobs[skip:end])
	return out
}

func containsFold(value, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// sortKey renders the sortable fields used in tests as comparable strings.
func sortKey(j *db.Job, field string) string {
	switch field {
	case "applied_date":
		if j.AppliedDate == nil {
			return ""
		}
		return j.AppliedDate.Format("2006-01-02")
	case "company":
		return j.Company
	case "title":
		return j.Title
	case "created_at":
		return j.CreatedAt.Format(time.RFC3339Nano)
	default:
		return ""
	}
}
