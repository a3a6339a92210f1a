// Package config provides API token hashing functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// APIKeyConfig holds configuration for hashing and verifying API access keys.
// Keys are stored bcrypt-hashed; the plaintext is only ever seen at issue time.
type APIKeyConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewAPIKeyConfig creates an API key configuration from environment variables.
// It reads BCRYPT_COST (default: 12) and optionally API_KEY_PEPPER.
func NewAPIKeyConfig() (*APIKeyConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12" // default
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}
	if cost < 10 || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}

	return &APIKeyConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("API_KEY_PEPPER"), // empty if not set
	}, nil
}

// HashKey hashes an API key using bcrypt (with optional pepper).
func (c *APIKeyConfig) HashKey(key string) (string, error) {
	if c.Pepper != "" {
		key = key + c.Pepper
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(key), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash API key: %w", err)
	}

	return string(hash), nil
}

// VerifyKey verifies an API key against a stored hash (with optional pepper).
func (c *APIKeyConfig) VerifyKey(key, storedHash string) bool {
	if c.Pepper != "" {
		key = key + c.Pepper
	}

	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(key)) == nil
}
