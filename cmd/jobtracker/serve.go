package main

import (
	"fmt"
	"os"

	"github.com/jonathan/job-tracker/internal/config"
	"github.com/jonathan/job-tracker/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for job records and the Gmail mailbox scan.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	gmailCfg, err := config.NewGmailConfig()
	if err != nil {
		return fmt.Errorf("failed to load Gmail config: %w", err)
	}

	cfg := server.Config{
		Port:                 servePort,
		DatabaseURL:          databaseURL,
		GmailCredentialsPath: gmailCfg.CredentialsPath,
		GmailTokenPath:       gmailCfg.TokenPath,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
