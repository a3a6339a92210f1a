package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/agentic-researcher/internal/server"
)

var (
	serveAddr        string
	serveConcurrency int
	serveTimeoutSecs int
	serveUseBrowser  bool
	serveVerbose     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for running research and fetching reports.

Requires JWT_SECRET and API_KEY_HASH for authentication. GEMINI_API_KEY, GOOGLE_SEARCH_API_KEY, GOOGLE_SEARCH_ENGINE_ID, and DATABASE_URL are optional; without them the matching capability falls back to its mock or stays disabled.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	serveCmd.Flags().IntVar(&serveConcurrency, "concurrency", 4, "Parallel source extractions per run")
	serveCmd.Flags().IntVar(&serveTimeoutSecs, "stage-timeout", 120, "Per-stage timeout in seconds (0 disables)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := server.Config{
		Addr:           serveAddr,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		SearchAPIKey:   os.Getenv("GOOGLE_SEARCH_API_KEY"),
		SearchEngineID: os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),
		UseBrowser:     serveUseBrowser,
		MaxConcurrency: serveConcurrency,
		StageTimeout:   time.Duration(serveTimeoutSecs) * time.Second,
		Verbose:        serveVerbose,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
