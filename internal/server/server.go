// Package server provides the HTTP REST API for the research agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/agentic-researcher/internal/agent"
	"github.com/jonathan/agentic-researcher/internal/config"
	"github.com/jonathan/agentic-researcher/internal/db"
	"github.com/jonathan/agentic-researcher/internal/discovery"
	"github.com/jonathan/agentic-researcher/internal/extraction"
	"github.com/jonathan/agentic-researcher/internal/fetch"
	"github.com/jonathan/agentic-researcher/internal/llm"
	"github.com/jonathan/agentic-researcher/internal/schemas"
	"github.com/jonathan/agentic-researcher/internal/server/middleware"
	"github.com/jonathan/agentic-researcher/internal/synthesis"
	"github.com/jonathan/agentic-researcher/internal/types"
)

// requestSchemaPath locates the research request schema relative to the repo root.
const requestSchemaPath = "schemas/research_request.schema.json"

// Server represents the HTTP server
type Server struct {
	httpServer    *http.Server
	db            *db.DB
	agentOpts     agent.Options
	llmClient     llm.Client
	jwtService    *JWTService
	authHandler   *AuthHandler
	requestSchema string

	mu   sync.Mutex
	runs map[uuid.UUID]*runEntry
}

// runEntry tracks a run started over the API, live or finished.
type runEntry struct {
	agent  *agent.Researcher
	topic  string
	depth  types.Depth
	report *types.ResearchReport
	err    error
	done   bool
}

// Config holds server configuration
type Config struct {
	Addr           string
	DatabaseURL    string
	APIKey         string // Gemini API key
	SearchAPIKey   string
	SearchEngineID string
	UseBrowser     bool
	MaxConcurrency int
	StageTimeout   time.Duration
	Verbose        bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	s := &Server{
		runs: make(map[uuid.UUID]*runEntry),
	}

	// Connect to database when configured; runs stay queryable in memory otherwise
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.db = database
	}

	opts, llmClient, err := buildAgentOptions(cfg, s.db)
	if err != nil {
		return nil, err
	}
	s.agentOpts = opts
	s.llmClient = llmClient

	schemaContent, err := schemas.LoadSchema(requestSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load request schema: %w", err)
	}
	s.requestSchema = schemaContent

	// Initialize authentication services
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	apiKeyConfig, err := config.NewAPIKeyConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create API key config: %w", err)
	}
	s.authHandler = NewAuthHandler(apiKeyConfig, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(s.router())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // long timeout for deep research runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// buildAgentOptions wires the configured collaborators into agent options.
// Missing credentials leave the matching slot nil, which falls back to the
// deterministic mock for that stage.
func buildAgentOptions(cfg Config, store *db.DB) (agent.Options, llm.Client, error) {
	opts := agent.Options{
		ExtractConcurrency: cfg.MaxConcurrency,
		StageTimeout:       cfg.StageTimeout,
		Verbose:            cfg.Verbose,
	}
	if store != nil {
		opts.Store = store
	}

	ctx := context.Background()

	if cfg.SearchAPIKey != "" && cfg.SearchEngineID != "" {
		provider, err := discovery.NewGoogleProvider(ctx, cfg.SearchAPIKey, cfg.SearchEngineID)
		if err != nil {
			return agent.Options{}, nil, fmt.Errorf("failed to create search provider: %w", err)
		}
		opts.SearchProvider = provider

		// Real sources need real fetching
		var fetcher extraction.Fetcher = fetch.NewContentFetcher(fetch.Config{
			UseBrowser: cfg.UseBrowser,
			Verbose:    cfg.Verbose,
		})
		opts.Fetcher = fetcher
	}

	var llmClient llm.Client
	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return agent.Options{}, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		llmClient = client
		opts.Summarizer = synthesis.NewLLMSummarizer(client, llm.TierStandard)
	}

	return opts, llmClient, nil
}

// router wires up all HTTP routes.
func (s *Server) router() http.Handler {
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/token", s.authHandler.IssueToken)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.Handle("POST /research", auth(http.HandlerFunc(s.handleResearch)))
	mux.Handle("GET /research/{id}/status", auth(http.HandlerFunc(s.handleStatus)))
	mux.Handle("GET /reports/{id}", auth(http.HandlerFunc(s.handleReport)))
	mux.Handle("GET /runs", auth(http.HandlerFunc(s.handleListRuns)))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
