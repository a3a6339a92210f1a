package agent

import (
	"sync"
	"time"
)

// Entry records a single agent action with the state at time of logging.
type Entry struct {
	Action    string         `json:"action"`
	Params    map[string]any `json:"params,omitempty"`
	Timestamp string         `json:"timestamp"` // RFC3339 format
	State     State          `json:"state"`
}

// ActionLog is the append-only action history of an agent instance.
// It survives across runs and is cleared only by constructing a new agent.
// Safe for concurrent use.
type ActionLog struct {
	mu      sync.Mutex
	entries []Entry
}

// Append records an action.
func (l *ActionLog) Append(action string, params map[string]any, state State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		Action:    action,
		Params:    params,
		Timestamp: time.Now().Format(time.RFC3339),
		State:     state,
	})
}

// Entries returns a copy of the log.
func (l *ActionLog) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded actions.
func (l *ActionLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
