package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents a persisted research run record
type Run struct {
	ID           uuid.UUID  `json:"id"`
	Topic        string     `json:"topic"`
	Depth        string     `json:"depth"`
	State        string     `json:"state"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// RunAction is a single persisted action-log entry of a run
type RunAction struct {
	ID       uuid.UUID      `json:"id"`
	RunID    uuid.UUID      `json:"run_id"`
	Seq      int            `json:"seq"`
	Action   string         `json:"action"`
	Params   map[string]any `json:"params,omitempty"`
	State    string         `json:"state"`
	LoggedAt string         `json:"logged_at"`
}

// Terminal run states as stored in the state column
const (
	RunStateComplete = "complete"
	RunStateError    = "error"
)
