// Package main provides the entry point for the research agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "research_agent",
	Short: "Autonomous research agent",
	Long:  "Research agent that searches the web for a topic, extracts content from the discovered sources, scores the findings for relevance, and synthesizes a report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
