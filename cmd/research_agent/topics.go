package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/agentic-researcher/internal/agent"
	"github.com/jonathan/agentic-researcher/internal/types"
)

var topicsCmd = &cobra.Command{
	Use:   "topics [topic]...",
	Short: "Research several topics in sequence",
	Long: `Runs an isolated research pipeline for each topic and prints the reports keyed by topic.

A topic that fails contributes its error report and does not stop the remaining topics.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTopics,
}

func init() {
	topicsCmd.Flags().StringVar(&researchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	topicsCmd.Flags().StringVarP(&researchDepth, "depth", "d", "", "Research depth: shallow, medium, or deep (default medium)")
	topicsCmd.Flags().IntVar(&researchConcurrency, "concurrency", 0, "Parallel source extractions (default sequential)")
	topicsCmd.Flags().IntVar(&researchTimeoutSecs, "stage-timeout", 0, "Per-stage timeout in seconds (0 disables)")
	topicsCmd.Flags().StringVar(&researchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	topicsCmd.Flags().BoolVar(&researchUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	topicsCmd.Flags().BoolVarP(&researchVerbose, "verbose", "v", false, "Print detailed debug information")
	topicsCmd.Flags().StringVar(&researchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	topicsCmd.Flags().StringVarP(&researchOutput, "output", "o", "", "Write the reports JSON to a file instead of stdout")

	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	opts, cleanup, err := buildAgentOptions(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	multi := agent.NewMultiTopic(opts)
	reports, err := multi.ResearchAll(ctx, args, types.Depth(cfg.Depth))
	if err != nil {
		// Failed topics already carry error reports; surface the first cause
		// after printing what completed.
		if writeErr := writeReport(reports, researchOutput); writeErr != nil {
			return writeErr
		}
		return fmt.Errorf("research failed for at least one topic: %w", err)
	}

	return writeReport(reports, researchOutput)
}
