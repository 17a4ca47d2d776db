// Package server provides the HTTP REST API for the job tracker.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/job-tracker/internal/db"
)

// ErrJobNotFound indicates the requested job does not exist
type ErrJobNotFound struct {
	ID uuid.UUID
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var notFound *ErrJobNotFound
	var invalidSort *db.ErrInvalidSortField

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalidSort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
