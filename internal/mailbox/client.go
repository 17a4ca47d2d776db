// Package mailbox scans a Gmail mailbox for job application emails and
// extracts candidate job records from them.
package mailbox

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Config holds the OAuth credential locations for the Gmail client.
type Config struct {
	CredentialsPath string
	TokenPath       string
}

// Client wraps the Gmail API for mailbox scanning. Each API call builds a
// request-scoped service from the stored token.
type Client struct {
	cfg   Config
	oauth *oauth2.Config
}

// NewClient creates a client from the OAuth client secrets file. It does not
// require a stored token yet; calls that reach the mailbox do.
func NewClient(cfg Config) (*Client, error) {
	b, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	oc, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	return &Client{cfg: cfg, oauth: oc}, nil
}

// AuthURL returns the Google consent URL the user must visit to grant
// read-only mailbox access.
func (c *Client) AuthURL(redirectURI string) string {
	oc := *c.oauth
	oc.RedirectURL = redirectURI
	return oc.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token and persists it.
func (c *Client) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	oc := *c.oauth
	oc.RedirectURL = redirectURI

	tok, err := oc.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange authorization code: %w", err)
	}
	if err := c.saveToken(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// Authorized reports whether a stored token exists and whether it has
// expired.
func (c *Client) Authorized() (authorized, expired bool) {
	tok, err := c.token()
	if err != nil {
		return false, false
	}
	return true, !tok.Valid()
}

func (c *Client) saveToken(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(c.cfg.TokenPath), 0700); err != nil {
		return fmt.Errorf("unable to create token directory: %w", err)
	}
	f, err := os.OpenFile(c.cfg.TokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to save oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}

func (c *Client) token() (*oauth2.Token, error) {
	f, err := os.Open(c.cfg.TokenPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func (c *Client) service(ctx context.Context) (*gmail.Service, error) {
	tok, err := c.token()
	if err != nil {
		return nil, fmt.Errorf("no stored token, authorize first: %w", err)
	}
	srv, err := gmail.NewService(ctx, option.WithHTTPClient(c.oauth.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}
	return srv, nil
}

// ListMessageIDs returns the ids of messages matching the Gmail search
// query, up to max results.
func (c *Client) ListMessageIDs(ctx context.Context, query string, max int64) ([]string, error) {
	srv, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	res, err := srv.Users.Messages.List("me").Q(query).MaxResults(max).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list messages: %w", err)
	}

	ids := make([]string, 0, len(res.Messages))
	for _, m := range res.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// GetMessage fetches a full message, including headers and the body part
// tree, by id.
func (c *Client) GetMessage(ctx context.Context, id string) (*gmail.Message, error) {
	srv, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	msg, err := srv.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to get message %s: %w", id, err)
	}
	return msg, nil
}
