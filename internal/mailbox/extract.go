package mailbox

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Candidate is a suggested job application inferred from a single email.
// Candidates are never persisted directly; an operator promotes them through
// the normal job creation path.
type Candidate struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Source      string  `json:"source"`
	AppliedDate string  `json:"applied_date"` // raw Date header
	JobLink     *string `json:"job_link"`
}

var (
	// LinkedIn confirmation wording: "You applied to Software Engineer at OpenAI"
	appliedToRe = regexp.MustCompile(`(?i)you applied to\s+(.+?)\s+at\s+([^\n<.,]+)`)

	// Generic ATS wording: "application received for X at Y"
	receivedForRe = regexp.MustCompile(`(?i)application (?:received|submitted) for\s+(.+?)\s+at\s+([^\n<.,]+)`)

	subjectHintRe  = regexp.MustCompile(`(?i)(applied|application received|application submitted)`)
	subjectSplitRe = regexp.MustCompile(`(.+?) at (.+)`)
)

// jobLinkHosts are URL fragments that mark an anchor as pointing at a job
// posting.
var jobLinkHosts = []string{"linkedin.com", "indeed.com", "jobs."}

// ExtractCandidates runs the heuristic passes in order against one email and
// returns the deduplicated candidates. The passes are best-effort: spurious
// or missed candidates are acceptable since the output is reviewed by a
// human before any record is created.
func ExtractCandidates(e Email) []Candidate {
	var candidates []Candidate

	if m := appliedToRe.FindStringSubmatch(e.Body); m != nil {
		candidates = append(candidates, Candidate{
			Title:       strings.TrimSpace(m[1]),
			Company:     strings.TrimSpace(m[2]),
			Source:      "LinkedIn",
			AppliedDate: e.Date,
		})
	}

	if m := receivedForRe.FindStringSubmatch(e.Body); m != nil {
		candidates = append(candidates, Candidate{
			Title:       strings.TrimSpace(m[1]),
			Company:     strings.TrimSpace(m[2]),
			Source:      "unknown",
			AppliedDate: e.Date,
		})
	}

	candidates = append(candidates, anchorCandidates(e)...)

	// Subject fallback only fires when nothing else matched.
	if len(candidates) == 0 && subjectHintRe.MatchString(e.Subject) {
		if m := subjectSplitRe.FindStringSubmatch(e.Subject); m != nil {
			candidates = append(candidates, Candidate{
				Title:       strings.TrimSpace(m[1]),
				Company:     strings.TrimSpace(m[2]),
				Source:      "email-subject",
				AppliedDate: e.Date,
			})
		}
	}

	return dedupeCandidates(candidates)
}

// anchorCandidates scans every hyperlink in the body and emits a candidate
// for each anchor pointing at a known job source.
func anchorCandidates(e Email) []Candidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(e.Body))
	if err != nil {
		return nil
	}

	var out []Candidate
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !isJobLink(href) {
			return
		}

		title := strings.TrimSpace(s.Text())
		if title == "" {
			title = e.Subject
		}

		link := href
		out = append(out, Candidate{
			Title:       title,
			Company:     senderLocalPart(e.From),
			Source:      "link",
			AppliedDate: e.Date,
			JobLink:     &link,
		})
	})
	return out
}

func isJobLink(href string) bool {
	for _, host := range jobLinkHosts {
		if strings.Contains(href, host) {
			return true
		}
	}
	return false
}

// senderLocalPart returns the part of the sender address before the "@",
// used as the best guess for the company name on link candidates.
func senderLocalPart(from string) string {
	addr := from
	if a, err := mail.ParseAddress(from); err == nil {
		addr = a.Address
	}
	if i := strings.Index(addr, "@"); i >= 0 {
		return addr[:i]
	}
	return addr
}

// dedupeCandidates drops candidates whose case-folded (title, company) pair
// repeats an earlier entry. First occurrence wins.
func dedupeCandidates(in []Candidate) []Candidate {
	seen := make(map[[2]string]bool, len(in))
	out := make([]Candidate, 0, len(in))
	for _, c := range in {
		key := [2]string{strings.ToLower(c.Title), strings.ToLower(c.Company)}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
