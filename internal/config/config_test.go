package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"depth": "deep",
		"max_concurrency": 4,
		"search_api_key": "key",
		"search_engine_id": "cx",
		"database_url": "postgres://localhost/research",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "deep", cfg.Depth)
	assert.Equal(t, 4, cfg.MaxConcurrency)
	assert.Equal(t, "key", cfg.SearchAPIKey)
	assert.Equal(t, "cx", cfg.SearchEngineID)
	assert.Equal(t, "postgres://localhost/research", cfg.DatabaseURL)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty config", Config{}, ""},
		{"valid depth", Config{Depth: "shallow"}, ""},
		{"bad depth", Config{Depth: "exhaustive"}, "'depth' must be"},
		{"negative concurrency", Config{MaxConcurrency: -1}, "'max_concurrency'"},
		{"negative timeout", Config{StageTimeoutSecs: -5}, "'stage_timeout_secs'"},
		{"search key without engine id", Config{SearchAPIKey: "key"}, "must be set together"},
		{"engine id without search key", Config{SearchEngineID: "cx"}, "must be set together"},
		{"full search credentials", Config{SearchAPIKey: "key", SearchEngineID: "cx"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Depth: "deep", Verbose: true}
	defaults := Config{
		Depth:          "medium",
		MaxConcurrency: 4,
		APIKey:         "default-key",
		ServerAddr:     ":8080",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "deep", merged.Depth) // explicit value wins
	assert.Equal(t, 4, merged.MaxConcurrency)
	assert.Equal(t, "default-key", merged.APIKey)
	assert.Equal(t, ":8080", merged.ServerAddr)
	assert.True(t, merged.Verbose)
}

func TestNewJWTConfig(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		cfg, err := NewJWTConfig()
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("defaults expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "")
		cfg, err := NewJWTConfig()
		require.NoError(t, err)
		assert.Equal(t, 24, cfg.ExpirationHours)
		assert.Equal(t, 24*60*60, int(cfg.TokenTTL().Seconds()))
	})

	t.Run("rejects non-numeric expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "soon")
		_, err := NewJWTConfig()
		assert.Error(t, err)
	})

	t.Run("rejects zero expiration", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		t.Setenv("JWT_EXPIRATION_HOURS", "0")
		_, err := NewJWTConfig()
		assert.Error(t, err)
	})
}

func TestAPIKeyConfig(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10") // lowest allowed, keeps the test fast
	t.Setenv("API_KEY_PEPPER", "")

	cfg, err := NewAPIKeyConfig()
	require.NoError(t, err)

	hash, err := cfg.HashKey("sk-test-key")
	require.NoError(t, err)
	assert.NotEqual(t, "sk-test-key", hash)

	assert.True(t, cfg.VerifyKey("sk-test-key", hash))
	assert.False(t, cfg.VerifyKey("sk-wrong-key", hash))
}

func TestAPIKeyConfigPepper(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("API_KEY_PEPPER", "pepper")

	cfg, err := NewAPIKeyConfig()
	require.NoError(t, err)

	hash, err := cfg.HashKey("sk-test-key")
	require.NoError(t, err)
	assert.True(t, cfg.VerifyKey("sk-test-key", hash))

	// A verifier without the pepper must not accept the key.
	plain := &APIKeyConfig{BcryptCost: 10}
	assert.False(t, plain.VerifyKey("sk-test-key", hash))
}

func TestAPIKeyConfigRejectsBadCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")
	_, err := NewAPIKeyConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
