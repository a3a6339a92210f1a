package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash-lite", config.Model(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.Model(TierStandard))
}

func TestModel_Fallback(t *testing.T) {
	config := &Config{
		Models: map[ModelTier]string{
			TierStandard: "standard-model",
		},
	}

	// Unknown tier should fall back to the standard tier
	assert.Equal(t, "standard-model", config.Model("unknown"))
}

func TestModel_EmptyConfig(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{}}

	assert.Equal(t, "", config.Model(TierLite))
}
