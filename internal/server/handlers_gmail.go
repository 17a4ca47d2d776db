package server

import (
	"net/http"

	"github.com/jonathan/job-tracker/internal/mailbox"
)

// GmailJobsResponse represents the response for a mailbox scan
type GmailJobsResponse struct {
	Count int                 `json:"count"`
	Jobs  []mailbox.Candidate `json:"jobs"`
}

func (s *Server) mailClient() (*mailbox.Client, error) {
	return mailbox.NewClient(s.mailCfg)
}

// callbackURL reconstructs the OAuth redirect URI for this deployment from
// the incoming request.
func (s *Server) callbackURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/gmail/auth/callback"
}

// handleGmailAuthURL returns the Google consent URL for mailbox access
func (s *Server) handleGmailAuthURL(w http.ResponseWriter, r *http.Request) {
	client, err := s.mailClient()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{
		"auth_url": client.AuthURL(s.callbackURL(r)),
	})
}

// handleGmailCallback exchanges the OAuth authorization code for a token and
// persists it.
func (s *Server) handleGmailCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		s.errorResponse(w, http.StatusBadRequest, "code query parameter is required")
		return
	}

	client, err := s.mailClient()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if _, err := client.Exchange(r.Context(), code, s.callbackURL(r)); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "OAuth failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Authorization successful"})
}

// handleGmailStatus reports whether valid Gmail credentials are available
func (s *Server) handleGmailStatus(w http.ResponseWriter, _ *http.Request) {
	client, err := s.mailClient()
	if err != nil {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"authorized": false,
			"message":    "No credentials found",
		})
		return
	}

	authorized, expired := client.Authorized()
	if !authorized {
		s.jsonResponse(w, http.StatusOK, map[string]any{
			"authorized": false,
			"message":    "No stored token, authorize first",
		})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"authorized":    true,
		"token_expired": expired,
	})
}

// handleGmailJobs scans the mailbox for application emails and returns the
// extracted candidates. Any provider or extractor failure surfaces as a 500
// with the underlying message.
func (s *Server) handleGmailJobs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	maxResults := parseQueryInt(r, "max_results", 20, 200)

	client, err := s.mailClient()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	candidates, err := client.FetchApplicationCandidates(r.Context(), query, int64(maxResults))
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch mailbox candidates: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, GmailJobsResponse{
		Count: len(candidates),
		Jobs:  candidates,
	})
}
