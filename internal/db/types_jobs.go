package db

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// dateLayout is the wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar date without a time component. It serializes as
// YYYY-MM-DD in JSON and maps to a DATE column.
type Date struct {
	time.Time
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected %q", s, dateLayout)
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", s, err)
	}
	d.Time = t
	return nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", v, err)
		}
		d.Time = t
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Job represents a tracked job application record.
type Job struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Status         *string   `json:"status"`
	AppliedDate    *Date     `json:"applied_date"`
	FollowUpDate   *Date     `json:"follow_up_date"`
	JobLink        *string   `json:"job_link"`
	JobDescription *string   `json:"job_description"`
	ResumePath     *string   `json:"resume_path"`
	JobBoardID     *string   `json:"job_board_id"`
	Source         *string   `json:"source"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JobCreate is the input for creating a job record. The incoming
// "description" field is stored as job_description.
type JobCreate struct {
	Title        string  `json:"title" validate:"required,min=1"`
	Company      string  `json:"company" validate:"required,min=1"`
	Location     string  `json:"location" validate:"required,min=1"`
	Status       *string `json:"status"`
	AppliedDate  *Date   `json:"applied_date"`
	FollowUpDate *Date   `json:"follow_up_date"`
	JobLink      *string `json:"job_link"`
	Description  *string `json:"description"`
	ResumePath   *string `json:"resume_path"`
	JobBoardID   *string `json:"job_board_id"`
	Source       *string `json:"source"`
	Notes        *string `json:"notes"`
}

// Validate validates the JobCreate input using the validator.
func (in *JobCreate) Validate() error {
	validate := validator.New()
	return validate.Struct(in)
}

// JobUpdate is a partial update. Only non-nil fields are applied; omitted
// fields are left untouched.
type JobUpdate struct {
	Title        *string `json:"title"`
	Company      *string `json:"company"`
	Location     *string `json:"location"`
	Status       *string `json:"status"`
	AppliedDate  *Date   `json:"applied_date"`
	FollowUpDate *Date   `json:"follow_up_date"`
	JobLink      *string `json:"job_link"`
	Description  *string `json:"description"`
	ResumePath   *string `json:"resume_path"`
	JobBoardID   *string `json:"job_board_id"`
	Source       *string `json:"source"`
	Notes        *string `json:"notes"`
}

// SearchFilters holds the optional predicates, sort selection and pagination
// for a job search. Text predicates are case-insensitive substring matches
// combined with AND.
type SearchFilters struct {
	Company  string
	Title    string
	Location string
	Status   string
	Skip     int
	Limit    int
	SortBy   string // defaults to applied_date
	SortDesc bool
}

// sortColumns is the closed set of sortable fields mapped to their columns.
// Sorting by anything outside this set is rejected at the boundary.
var sortColumns = map[string]string{
	"id":              "id",
	"title":           "title",
	"company":         "company",
	"location":        "location",
	"status":          "status",
	"applied_date":    "applied_date",
	"follow_up_date":  "follow_up_date",
	"job_link":        "job_link",
	"job_description": "job_description",
	"resume_path":     "resume_path",
	"job_board_id":    "job_board_id",
	"source":          "source",
	"notes":           "notes",
	"created_at":      "created_at",
	"updated_at":      "updated_at",
}

// ErrInvalidSortField indicates an unknown sort field was requested.
type ErrInvalidSortField struct {
	Field string
}

func (e *ErrInvalidSortField) Error() string {
	return fmt.Sprintf("invalid sort field: %s", e.Field)
}

// SortColumn resolves a sort field name to its column, or returns
// *ErrInvalidSortField for a name outside the sortable set.
func SortColumn(field string) (string, error) {
	column, ok := sortColumns[field]
	if !ok {
		return "", &ErrInvalidSortField{Field: field}
	}
	return column, nil
}
