package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/job-tracker/internal/db"
)

// parseQueryInt reads a non-negative integer query parameter, falling back
// to defaultValue and clamping to maxValue when maxValue > 0.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// parseQueryBool reads a boolean query parameter, falling back to
// defaultValue when absent or malformed.
func parseQueryBool(r *http.Request, key string, defaultValue bool) bool {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}

// handleCreateJob creates a job record. When the (job_board_id, company)
// pair is already tracked, the existing record is returned instead of a
// duplicate being inserted.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var in db.JobCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := in.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job: "+err.Error())
		return
	}

	job, err := s.store.CreateJob(r.Context(), &in)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists jobs with pagination in natural order
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	skip := parseQueryInt(r, "skip", 0, 0)
	limit := parseQueryInt(r, "limit", 100, 500)

	jobs, err := s.store.ListJobs(r.Context(), skip, limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleSearchJobs searches jobs by optional substring predicates with
// dynamic sorting and pagination. An unknown sort_by yields a 400.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := db.SearchFilters{
		Company:  q.Get("company"),
		Title:    q.Get("title"),
		Location: q.Get("location"),
		Status:   q.Get("status"),
		Skip:     parseQueryInt(r, "skip", 0, 0),
		Limit:    parseQueryInt(r, "limit", 100, 500),
		SortBy:   q.Get("sort_by"),
		SortDesc: parseQueryBool(r, "sort_desc", true),
	}

	jobs, err := s.store.SearchJobs(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleGetJob retrieves a single job by ID
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		nf := &ErrJobNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob applies a partial update to a job. Fields omitted from the
// payload are left untouched.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var upd db.JobUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	job, err := s.store.UpdateJob(r.Context(), id, &upd)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		nf := &ErrJobNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleDeleteJob removes a job and returns the deleted record
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.DeleteJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		nf := &ErrJobNotFound{ID: id}
		s.errorResponse(w, HTTPStatus(nf), nf.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleCreateJobsBatch creates a sequence of jobs, each processed
// independently through the duplicate guard. The response order matches the
// input order.
func (s *Server) handleCreateJobsBatch(w http.ResponseWriter, r *http.Request) {
	var inputs []*db.JobCreate
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			s.errorResponse(w, http.StatusBadRequest,
				"Invalid job at index "+strconv.Itoa(i)+": "+err.Error())
			return
		}
	}

	jobs, err := s.store.CreateJobs(r.Context(), inputs)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, jobs)
}
