package agent

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/agentic-researcher/internal/types"
)

// RunRecord is everything persisted about one research run.
type RunRecord struct {
	ID           uuid.UUID
	Topic        string
	Depth        types.Depth
	State        State
	ErrorMessage string
	Report       *types.ResearchReport
	Actions      []Entry
}

// Store persists completed runs. A nil Store disables persistence; failures
// are logged and never affect the run outcome.
type Store interface {
	SaveRun(ctx context.Context, rec RunRecord) error
}
