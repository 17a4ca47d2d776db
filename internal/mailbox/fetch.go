package mailbox

import "context"

// DefaultQuery is the Gmail search used when the caller supplies none.
const DefaultQuery = `applied OR "thank you for your application" newer_than:365d`

// FetchApplicationCandidates scans the mailbox for application confirmation
// emails and returns every candidate extracted from them. Messages are
// fetched sequentially; a provider failure on any message aborts the scan.
// Candidates are deduplicated within each message but not across messages,
// so the operator reviews them per email.
func (c *Client) FetchApplicationCandidates(ctx context.Context, query string, max int64) ([]Candidate, error) {
	if query == "" {
		query = DefaultQuery
	}

	ids, err := c.ListMessageIDs(ctx, query, max)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0)
	for _, id := range ids {
		msg, err := c.GetMessage(ctx, id)
		if err != nil {
			return nil, err
		}

		email := ParseMessage(msg)
		if !IsApplicationConfirmation(email) {
			continue
		}
		candidates = append(candidates, ExtractCandidates(email)...)
	}
	return candidates, nil
}
