package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchQuery_Defaults(t *testing.T) {
	query, args, err := buildSearchQuery(SearchFilters{SortDesc: true})
	require.NoError(t, err)

	assert.Contains(t, query, "ORDER BY applied_date DESC, created_at, id")
	assert.NotContains(t, query, "ILIKE")
	assert.Equal(t, []any{0, 100}, args)
}

func TestBuildSearchQuery_AllPredicates(t *testing.T) {
	query, args, err := buildSearchQuery(SearchFilters{
		Company:  "Google",
		Title:    "Engineer",
		Location: "Pittsburgh",
		Status:   "applied",
		Skip:     5,
		Limit:    10,
		SortBy:   "company",
	})
	require.NoError(t, err)

	assert.Contains(t, query, "company ILIKE $1")
	assert.Contains(t, query, "title ILIKE $2")
	assert.Contains(t, query, "location ILIKE $3")
	assert.Contains(t, query, "status ILIKE $4")
	assert.Contains(t, query, "ORDER BY company ASC, created_at, id")
	assert.Contains(t, query, "OFFSET $5 LIMIT $6")
	assert.Equal(t, []any{"%Google%", "%Engineer%", "%Pittsburgh%", "%applied%", 5, 10}, args)
}

func TestBuildSearchQuery_PartialPredicates(t *testing.T) {
	query, args, err := buildSearchQuery(SearchFilters{
		Location: "Remote",
		SortBy:   "applied_date",
		SortDesc: true,
		Limit:    25,
	})
	require.NoError(t, err)

	assert.NotContains(t, query, "company ILIKE")
	assert.Contains(t, query, "location ILIKE $1")
	assert.Contains(t, query, "ORDER BY applied_date DESC")
	assert.Equal(t, []any{"%Remote%", 0, 25}, args)
}

func TestBuildSearchQuery_InvalidSortField(t *testing.T) {
	_, _, err := buildSearchQuery(SearchFilters{SortBy: "favorite_color"})
	require.Error(t, err)

	var invalid *ErrInvalidSortField
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "favorite_color", invalid.Field)
}

func TestBuildUpdateQuery_AlwaysTouchesUpdatedAt(t *testing.T) {
	id := uuid.New()
	query, args := buildUpdateQuery(id, &JobUpdate{})

	assert.Contains(t, query, "SET updated_at = NOW() WHERE id = $1")
	assert.Equal(t, []any{id}, args)
}

func TestBuildUpdateQuery_SingleField(t *testing.T) {
	id := uuid.New()
	status := "rejected"
	query, args := buildUpdateQuery(id, &JobUpdate{Status: &status})

	assert.Contains(t, query, "updated_at = NOW(), status = $1")
	assert.Contains(t, query, "WHERE id = $2")
	assert.Equal(t, []any{"rejected", id}, args)
}

func TestBuildUpdateQuery_DescriptionMapsToJobDescription(t *testing.T) {
	id := uuid.New()
	desc := "Build distributed systems"
	title := "SRE"
	query, args := buildUpdateQuery(id, &JobUpdate{Title: &title, Description: &desc})

	assert.Contains(t, query, "title = $1")
	assert.Contains(t, query, "job_description = $2")
	assert.NotContains(t, query, " description =")
	assert.Equal(t, []any{"SRE", "Build distributed systems", id}, args)
}
