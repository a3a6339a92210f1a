package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunStateConstants(t *testing.T) {
	assert.Equal(t, "complete", RunStateComplete)
	assert.Equal(t, "error", RunStateError)
}

func TestRunType(t *testing.T) {
	run := Run{
		Topic: "quantum computing",
		Depth: "shallow",
		State: RunStateComplete,
	}

	assert.Equal(t, "quantum computing", run.Topic)
	assert.Equal(t, "shallow", run.Depth)
	assert.Equal(t, RunStateComplete, run.State)
	assert.Nil(t, run.CompletedAt)
	assert.Empty(t, run.ErrorMessage)
}
