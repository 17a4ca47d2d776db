package mailbox

import "strings"

// boardDomains identify senders that are job boards themselves. Board
// notification mail is routed differently and is not treated as an
// application confirmation.
var boardDomains = []string{
	"linkedin",
	"indeed",
	"glassdoor",
}

// confirmationPhrases mark an email as confirming a submitted application.
var confirmationPhrases = []string{
	"thank you for applying",
	"thank you for your application",
	"application received",
	"application submitted",
	"application has been submitted",
	"you applied for",
	"your application was sent",
	"we received your application",
	"we have received your application",
}

// statusPhrases mark a later update on an existing application (interview,
// offer, rejection). Consumed by IsStatusUpdate only; the mailbox scan does
// not act on these.
var statusPhrases = []string{
	"interview",
	"next steps",
	"move forward with your application",
	"not to move forward",
	"unfortunately",
	"pleased to offer",
	"offer letter",
}

// IsApplicationConfirmation reports whether the email confirms a submitted
// job application. Mail sent by the job boards themselves is excluded
// regardless of content.
func IsApplicationConfirmation(e Email) bool {
	from := strings.ToLower(e.From)
	for _, domain := range boardDomains {
		if strings.Contains(from, domain) {
			return false
		}
	}

	text := strings.ToLower(e.Subject + " " + e.Body)
	for _, phrase := range confirmationPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// IsStatusUpdate reports whether the email looks like an interview, offer or
// rejection update rather than a confirmation.
func IsStatusUpdate(e Email) bool {
	text := strings.ToLower(e.Subject + " " + e.Body)
	for _, phrase := range statusPhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
