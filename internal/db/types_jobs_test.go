package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.March, 14)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-14"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, parsed.Equal(d.Time))
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20250314`), &d))
}

func TestDate_Scan(t *testing.T) {
	want := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		src  any
	}{
		{"time.Time", want},
		{"string", "2025-03-14"},
		{"bytes", []byte("2025-03-14")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			require.NoError(t, d.Scan(tt.src))
			assert.True(t, d.Equal(want))
		})
	}

	var d Date
	assert.Error(t, d.Scan(42))
}

func TestJobCreate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      JobCreate
		wantErr bool
	}{
		{
			name: "valid",
			in:   JobCreate{Title: "Software Engineer", Company: "Acme", Location: "Pittsburgh"},
		},
		{
			name:    "missing title",
			in:      JobCreate{Company: "Acme", Location: "Pittsburgh"},
			wantErr: true,
		},
		{
			name:    "missing company",
			in:      JobCreate{Title: "Software Engineer", Location: "Pittsburgh"},
			wantErr: true,
		},
		{
			name:    "missing location",
			in:      JobCreate{Title: "Software Engineer", Company: "Acme"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSortColumn(t *testing.T) {
	for field := range sortColumns {
		column, err := SortColumn(field)
		require.NoError(t, err)
		assert.NotEmpty(t, column)
	}

	_, err := SortColumn("salary; DROP TABLE jobs")
	require.Error(t, err)
	var invalid *ErrInvalidSortField
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "salary; DROP TABLE jobs", invalid.Field)
}
