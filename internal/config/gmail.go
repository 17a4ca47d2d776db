// Package config provides configuration loading for the job tracker.
package config

import (
	"fmt"
	"os"
)

// GmailConfig holds the locations of the Gmail OAuth credential files.
type GmailConfig struct {
	CredentialsPath string
	TokenPath       string
}

// NewGmailConfig creates Gmail configuration from environment variables.
// It reads GMAIL_CREDENTIALS_PATH (default: credentials/credentials.json)
// and GMAIL_TOKEN_PATH (default: token/gmail_token.json).
func NewGmailConfig() (*GmailConfig, error) {
	cfg := &GmailConfig{
		CredentialsPath: os.Getenv("GMAIL_CREDENTIALS_PATH"),
		TokenPath:       os.Getenv("GMAIL_TOKEN_PATH"),
	}
	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = "credentials/credentials.json"
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = "token/gmail_token.json"
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize validates the configuration.
func (c *GmailConfig) normalize() error {
	if c.CredentialsPath == "" {
		return fmt.Errorf("GMAIL_CREDENTIALS_PATH cannot be empty")
	}
	if c.TokenPath == "" {
		return fmt.Errorf("GMAIL_TOKEN_PATH cannot be empty")
	}
	return nil
}
