package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/agentic-researcher/internal/analysis"
	"github.com/jonathan/agentic-researcher/internal/discovery"
	"github.com/jonathan/agentic-researcher/internal/extraction"
	"github.com/jonathan/agentic-researcher/internal/synthesis"
	"github.com/jonathan/agentic-researcher/internal/types"
)

// persistTimeout bounds the post-run persistence write.
const persistTimeout = 5 * time.Second

// Options configures a Researcher. All collaborator slots are optional; a nil
// slot falls back to the deterministic mock generator for that stage.
type Options struct {
	SearchProvider     discovery.Provider
	Fetcher            extraction.Fetcher
	Summarizer         synthesis.Summarizer
	ExtractConcurrency int           // parallel extractions; values < 1 mean sequential
	StageTimeout       time.Duration // per-stage deadline; 0 disables
	Store              Store
	Verbose            bool
}

// Status is a read-only snapshot of the agent, safe to request mid-run.
type Status struct {
	State         State `json:"state"`
	FindingsCount int   `json:"findings_count"`
	SourcesCount  int   `json:"sources_count"`
	ActionsTaken  int   `json:"actions_taken"`
}

// Researcher drives the research pipeline: discovery, extraction, analysis,
// synthesis. Pipeline state is scoped to each run, so repeated Research calls
// on one instance never leak findings between topics; the action log is
// instance-level and append-only across runs.
type Researcher struct {
	opts Options
	log  *ActionLog

	mu            sync.Mutex
	state         State
	findingsCount int
	sourcesCount  int
}

// New creates a Researcher in the Idle state with an empty action log.
func New(opts Options) *Researcher {
	return &Researcher{opts: opts, log: &ActionLog{}, state: StateIdle}
}

// researchRun holds the state of a single run as it threads the pipeline.
type researchRun struct {
	id       uuid.UUID
	topic    string
	depth    types.Depth
	machine  *Machine
	logStart int
	sources  []types.Source
	findings []types.Finding
}

// Research runs the full pipeline for a topic and returns the report.
//
// Contained failures (a failed query, an unfetchable source, a summarizer
// outage) never surface. Any uncontained failure yields both signals at once:
// an Error-state report whose summary is "Error: <message>" and a non-nil
// error carrying the cause. Callers may check either.
func (a *Researcher) Research(ctx context.Context, topic string, depth types.Depth) (*types.ResearchReport, error) {
	run := &researchRun{
		id:       uuid.New(),
		topic:    topic,
		depth:    depth,
		machine:  NewMachine(),
		logStart: a.log.Len(),
	}
	a.setCounts(0, 0)

	report, err := a.runPipeline(ctx, run)
	if err != nil {
		return a.fail(run, err)
	}

	a.logAction("research_complete", map[string]any{"findings": len(run.findings)})
	a.persist(run, report, nil)
	return report, nil
}

// runPipeline advances the run through every stage in order.
func (a *Researcher) runPipeline(ctx context.Context, run *researchRun) (*types.ResearchReport, error) {
	if err := a.transition(run, StateSearching); err != nil {
		return nil, err
	}
	a.logAction("research_started", map[string]any{"topic": run.topic, "depth": string(run.depth)})

	err := a.withStageCtx(ctx, func(ctx context.Context) error {
		sources, err := discovery.FindSources(ctx, run.topic, run.depth.SourceCount(), discovery.Options{
			Provider: a.opts.SearchProvider,
			OnAction: a.logAction,
			Verbose:  a.opts.Verbose,
		})
		if err != nil {
			return err
		}
		run.sources = sources
		a.setCounts(len(run.sources), len(run.findings))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Discovery completing with zero sources still advances the run.
	if err := a.transition(run, StateExtracting); err != nil {
		return nil, err
	}
	err = a.withStageCtx(ctx, func(ctx context.Context) error {
		findings, err := extraction.ExtractAll(ctx, run.topic, run.sources, extraction.Options{
			Fetcher:     a.opts.Fetcher,
			Concurrency: a.opts.ExtractConcurrency,
			OnAction:    a.logAction,
			Verbose:     a.opts.Verbose,
		})
		if err != nil {
			return err
		}
		run.findings = findings
		a.setCounts(len(run.sources), len(run.findings))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := a.transition(run, StateAnalyzing); err != nil {
		return nil, err
	}
	err = a.withStageCtx(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return analysis.ScoreFindings(run.topic, run.findings)
	})
	if err != nil {
		return nil, err
	}

	if err := a.transition(run, StateSynthesizing); err != nil {
		return nil, err
	}
	var report types.ResearchReport
	err = a.withStageCtx(ctx, func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report = synthesis.Synthesize(ctx, run.topic, run.findings, run.sources, synthesis.Options{
			Summarizer: a.opts.Summarizer,
			Verbose:    a.opts.Verbose,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := a.transition(run, StateComplete); err != nil {
		return nil, err
	}
	return &report, nil
}

// fail transitions the run to Error and builds the Error-state report,
// retaining whatever sources and findings accumulated before the failure.
func (a *Researcher) fail(run *researchRun, cause error) (*types.ResearchReport, error) {
	cause = distinguishCause(cause)
	_ = a.transition(run, StateError) // Error is reachable from any non-terminal state
	a.logAction("research_failed", map[string]any{"error": cause.Error()})

	report := &types.ResearchReport{
		Topic:     run.topic,
		Summary:   "Error: " + cause.Error(),
		Findings:  run.findings,
		Sources:   run.sources,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	a.persist(run, report, cause)
	return report, cause
}

// distinguishCause labels cancellation and timeout so Error-state reports
// carry a distinguishing reason.
func distinguishCause(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("stage timed out: %w", err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("research cancelled: %w", err)
	default:
		return err
	}
}

// withStageCtx runs one stage under the configured stage timeout, if any.
func (a *Researcher) withStageCtx(ctx context.Context, fn func(context.Context) error) error {
	if a.opts.StageTimeout > 0 {
		stageCtx, cancel := context.WithTimeout(ctx, a.opts.StageTimeout)
		defer cancel()
		return fn(stageCtx)
	}
	return fn(ctx)
}

// transition advances the run machine and mirrors the new state into the
// agent snapshot, logging the transition.
func (a *Researcher) transition(run *researchRun, next State) error {
	from := run.machine.State()
	if err := run.machine.To(next); err != nil {
		return err
	}
	a.setState(next)
	a.log.Append("state_transition", map[string]any{"from": string(from), "to": string(next)}, next)
	return nil
}

// logAction appends an entry stamped with the agent's current state.
func (a *Researcher) logAction(action string, params map[string]any) {
	a.log.Append(action, params, a.currentState())
}

// persist writes the finished run through the store, best effort.
func (a *Researcher) persist(run *researchRun, report *types.ResearchReport, runErr error) {
	if a.opts.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	rec := RunRecord{
		ID:      run.id,
		Topic:   run.topic,
		Depth:   run.depth,
		State:   a.currentState(),
		Report:  report,
		Actions: a.log.Entries()[run.logStart:],
	}
	if runErr != nil {
		rec.ErrorMessage = runErr.Error()
	}
	if err := a.opts.Store.SaveRun(ctx, rec); err != nil {
		log.Printf("[AGENT] Warning: failed to persist run %s: %v", run.id, err)
	}
}

// GetStatus returns a snapshot of the agent, safe to call mid-run.
func (a *Researcher) GetStatus() Status {
	a.mu.Lock()
	state, findings, sources := a.state, a.findingsCount, a.sourcesCount
	a.mu.Unlock()

	return Status{
		State:         state,
		FindingsCount: findings,
		SourcesCount:  sources,
		ActionsTaken:  a.log.Len(),
	}
}

// Actions returns a copy of every action logged by this agent so far.
func (a *Researcher) Actions() []Entry {
	return a.log.Entries()
}

func (a *Researcher) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

func (a *Researcher) currentState() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Researcher) setCounts(sources, findings int) {
	a.mu.Lock()
	a.sourcesCount = sources
	a.findingsCount = findings
	a.mu.Unlock()
}
