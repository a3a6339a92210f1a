package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/agentic-researcher/internal/config"
	"github.com/jonathan/agentic-researcher/internal/server"
)

var tokenAPIKey string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a JWT for API access",
	Long:  `Signs a JWT using JWT_SECRET, suitable for calling the authenticated API endpoints directly.`,
	RunE:  runToken,
}

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key",
	Short: "Hash an API key for API_KEY_HASH",
	Long:  `Bcrypt-hashes the given API key. Store the output in the API_KEY_HASH environment variable of the server; clients then exchange the plaintext key for a JWT at POST /auth/token.`,
	RunE:  runHashKey,
}

func init() {
	hashKeyCmd.Flags().StringVar(&tokenAPIKey, "api-key", "", "API key to hash (required)")
	_ = hashKeyCmd.MarkFlagRequired("api-key")

	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(hashKeyCmd)
}

func runToken(_ *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	token, expiresAt, err := server.NewJWTService(jwtConfig).GenerateToken(uuid.New())
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, token)
	fmt.Fprintf(os.Stderr, "Expires: %s\n", expiresAt)
	return nil
}

func runHashKey(_ *cobra.Command, _ []string) error {
	apiKeyConfig, err := config.NewAPIKeyConfig()
	if err != nil {
		return err
	}

	hash, err := apiKeyConfig.HashKey(tokenAPIKey)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, hash)
	return nil
}
