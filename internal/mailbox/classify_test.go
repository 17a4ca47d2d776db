package mailbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsApplicationConfirmation(t *testing.T) {
	tests := []struct {
		name string
		e    Email
		want bool
	}{
		{
			name: "confirmation phrase in body",
			e: Email{
				From:    "careers@acme.com",
				Subject: "Your application",
				Body:    "Thank you for applying to Acme. We will be in touch.",
			},
			want: true,
		},
		{
			name: "confirmation phrase in subject only",
			e: Email{
				From:    "no-reply@startup.io",
				Subject: "Application received",
				Body:    "We will review your materials shortly.",
			},
			want: true,
		},
		{
			name: "mixed case phrase",
			e: Email{
				From: "jobs@bigco.com",
				Body: "THANK YOU FOR YOUR APPLICATION!",
			},
			want: true,
		},
		{
			name: "linkedin sender is excluded regardless of body",
			e: Email{
				From: "notifications@linkedin.com",
				Body: "Thank you for applying to Acme",
			},
			want: false,
		},
		{
			name: "indeed sender is excluded",
			e: Email{
				From:    "Indeed <no-reply@indeed.com>",
				Subject: "application received",
			},
			want: false,
		},
		{
			name: "glassdoor sender is excluded",
			e: Email{
				From: "alerts@glassdoor.com",
				Body: "you applied for Staff Engineer",
			},
			want: false,
		},
		{
			name: "unrelated mail",
			e: Email{
				From:    "newsletter@shop.com",
				Subject: "Weekly deals",
				Body:    "Save 20% this week only",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsApplicationConfirmation(tt.e))
		})
	}
}

func TestIsStatusUpdate(t *testing.T) {
	assert.True(t, IsStatusUpdate(Email{
		Subject: "Interview invitation",
		Body:    "We would like to schedule an interview with you.",
	}))
	assert.True(t, IsStatusUpdate(Email{
		Body: "Unfortunately we have decided not to move forward.",
	}))
	assert.False(t, IsStatusUpdate(Email{
		Subject: "Thank you for applying",
		Body:    "We received your application.",
	}))
}
