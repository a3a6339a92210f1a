// Package agent orchestrates the research pipeline as a validated state machine.
package agent

import "fmt"

// State represents the research agent's position in the pipeline.
type State string

// Canonical agent states.
const (
	StateIdle         State = "idle"
	StateSearching    State = "searching"
	StateExtracting   State = "extracting"
	StateAnalyzing    State = "analyzing"
	StateSynthesizing State = "synthesizing"
	StateComplete     State = "complete"
	StateError        State = "error"
)

// transitions maps each state to its allowed successor in the happy path.
// Error is reachable from any non-terminal state and handled in CanTransition.
var transitions = map[State]State{
	StateIdle:         StateSearching,
	StateSearching:    StateExtracting,
	StateExtracting:   StateAnalyzing,
	StateAnalyzing:    StateSynthesizing,
	StateSynthesizing: StateComplete,
}

// IsTerminal reports whether the state ends a run.
func (s State) IsTerminal() bool {
	return s == StateComplete || s == StateError
}

// IsValid reports whether the state is a recognized canonical state.
func (s State) IsValid() bool {
	switch s {
	case StateIdle, StateSearching, StateExtracting, StateAnalyzing,
		StateSynthesizing, StateComplete, StateError:
		return true
	default:
		return false
	}
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// CanTransition reports whether from → to is an allowed transition.
func CanTransition(from, to State) bool {
	if !from.IsValid() || !to.IsValid() {
		return false
	}
	if to == StateError {
		return !from.IsTerminal()
	}
	return transitions[from] == to
}

// TransitionError reports an attempted transition outside the table.
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal state transition %s -> %s", e.From, e.To)
}

// Machine is a research state machine that rejects illegal transitions.
// The zero value is not usable; construct with NewMachine.
type Machine struct {
	state State
}

// NewMachine returns a machine in the Idle state.
func NewMachine() *Machine {
	return &Machine{state: StateIdle}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// To advances the machine to next, or returns a *TransitionError.
func (m *Machine) To(next State) error {
	if !CanTransition(m.state, next) {
		return &TransitionError{From: m.state, To: next}
	}
	m.state = next
	return nil
}
