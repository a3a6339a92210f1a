package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/agentic-researcher/internal/agent"
	"github.com/jonathan/agentic-researcher/internal/config"
	"github.com/jonathan/agentic-researcher/internal/db"
	"github.com/jonathan/agentic-researcher/internal/discovery"
	"github.com/jonathan/agentic-researcher/internal/extraction"
	"github.com/jonathan/agentic-researcher/internal/fetch"
	"github.com/jonathan/agentic-researcher/internal/llm"
	"github.com/jonathan/agentic-researcher/internal/observability"
	"github.com/jonathan/agentic-researcher/internal/synthesis"
	"github.com/jonathan/agentic-researcher/internal/types"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Research a topic and print the report",
	Long: `Runs the full research pipeline for a topic: query expansion -> source discovery -> content extraction -> relevance analysis -> report synthesis.

Without API credentials the agent runs on deterministic mock sources, which is useful for trying the pipeline offline. Configuration can be loaded from a JSON file using --config; command-line flags override config file values.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearch,
}

var (
	researchConfigPath  string
	researchDepth       string
	researchConcurrency int
	researchTimeoutSecs int
	researchAPIKey      string
	researchUseBrowser  bool
	researchVerbose     bool
	researchDatabaseURL string
	researchOutput      string
)

func init() {
	researchCmd.Flags().StringVar(&researchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	researchCmd.Flags().StringVarP(&researchDepth, "depth", "d", "", "Research depth: shallow, medium, or deep (default medium)")
	researchCmd.Flags().IntVar(&researchConcurrency, "concurrency", 0, "Parallel source extractions (default sequential)")
	researchCmd.Flags().IntVar(&researchTimeoutSecs, "stage-timeout", 0, "Per-stage timeout in seconds (0 disables)")
	researchCmd.Flags().StringVar(&researchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	researchCmd.Flags().BoolVar(&researchUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	researchCmd.Flags().BoolVarP(&researchVerbose, "verbose", "v", false, "Print detailed debug information")
	researchCmd.Flags().StringVar(&researchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	researchCmd.Flags().StringVarP(&researchOutput, "output", "o", "", "Write the report JSON to a file instead of stdout")

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	topic := strings.Join(args, " ")

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	opts, cleanup, err := buildAgentOptions(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	researcher := agent.New(opts)
	report, err := researcher.Research(ctx, topic, types.Depth(cfg.Depth))
	if err != nil {
		return fmt.Errorf("research failed: %w", err)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintFindings(report.Findings)
		printer.PrintReport(report)
		printer.PrintActionLog(researcher.Actions())
	}

	return writeReport(report, researchOutput)
}

// resolveConfig merges config file values, CLI flags, and defaults in priority
// order: flags beat the config file, the config file beats defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if researchConfigPath != "" {
		loadedCfg, err := config.LoadConfig(researchConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loadedCfg
		if researchVerbose {
			fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", researchConfigPath)
		}
	}

	// CLI overrides, applied only when the flag was explicitly set
	if cmd.Flags().Changed("depth") {
		cfg.Depth = researchDepth
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.MaxConcurrency = researchConcurrency
	}
	if cmd.Flags().Changed("stage-timeout") {
		cfg.StageTimeoutSecs = researchTimeoutSecs
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = researchAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = researchUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = researchVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = researchDatabaseURL
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		Depth: string(types.DepthMedium),
	})

	// Environment fallbacks for credentials
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.SearchAPIKey == "" {
		cfg.SearchAPIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	if cfg.SearchEngineID == "" {
		cfg.SearchEngineID = os.Getenv("GOOGLE_SEARCH_ENGINE_ID")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if !types.Depth(cfg.Depth).IsValid() {
		return cfg, fmt.Errorf("invalid depth %q: must be shallow, medium, or deep", cfg.Depth)
	}
	return cfg, nil
}

// buildAgentOptions wires configured collaborators into agent options.
// Slots without credentials stay nil and fall back to deterministic mocks.
// The returned cleanup closes whatever collaborators hold resources.
func buildAgentOptions(ctx context.Context, cfg config.Config) (agent.Options, func(), error) {
	opts := agent.Options{
		ExtractConcurrency: cfg.MaxConcurrency,
		StageTimeout:       time.Duration(cfg.StageTimeoutSecs) * time.Second,
		Verbose:            cfg.Verbose,
	}

	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	if cfg.SearchAPIKey != "" && cfg.SearchEngineID != "" {
		provider, err := discovery.NewGoogleProvider(ctx, cfg.SearchAPIKey, cfg.SearchEngineID)
		if err != nil {
			cleanup()
			return agent.Options{}, nil, fmt.Errorf("failed to create search provider: %w", err)
		}
		opts.SearchProvider = provider

		var fetcher extraction.Fetcher = fetch.NewContentFetcher(fetch.Config{
			UseBrowser: cfg.UseBrowser,
			Verbose:    cfg.Verbose,
		})
		opts.Fetcher = fetcher
	}

	if cfg.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			cleanup()
			return agent.Options{}, nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		opts.Summarizer = synthesis.NewLLMSummarizer(client, llm.TierStandard)
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			cleanup()
			return agent.Options{}, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		closers = append(closers, database.Close)
		opts.Store = database
	}

	return opts, cleanup, nil
}

// writeReport marshals the report to the output path, or stdout when empty.
func writeReport(report any, outputPath string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if outputPath == "" {
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	if err := os.WriteFile(outputPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Report written to %s\n", outputPath)
	return nil
}
