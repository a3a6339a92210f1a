package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/agentic-researcher/internal/agent"
	"github.com/jonathan/agentic-researcher/internal/schemas"
	"github.com/jonathan/agentic-researcher/internal/types"
)

// ResearchResponse represents the response for POST /research
type ResearchResponse struct {
	RunID  string `json:"run_id"`
	Topic  string `json:"topic"`
	Depth  string `json:"depth"`
	Status string `json:"status"`
}

// StatusResponse represents the response for GET /research/{id}/status
type StatusResponse struct {
	RunID         string `json:"run_id"`
	Topic         string `json:"topic"`
	State         string `json:"state"`
	SourcesCount  int    `json:"sources_count"`
	FindingsCount int    `json:"findings_count"`
	ActionsTaken  int    `json:"actions_taken"`
	Error         string `json:"error,omitempty"`
}

// handleResearch starts a new research run
func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body: "+err.Error())
		return
	}

	if err := schemas.ValidateJSONString(s.requestSchema, string(body)); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var req types.ResearchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	depth := types.Depth(req.Depth)
	if req.Depth == "" {
		depth = types.DepthMedium
	}

	researcher := agent.New(s.agentOpts)
	runID := uuid.New()

	entry := &runEntry{agent: researcher, topic: req.Topic, depth: depth}
	s.mu.Lock()
	s.runs[runID] = entry
	s.mu.Unlock()

	log.Printf("Starting research run %s: topic=%q depth=%s", runID, req.Topic, depth)

	// Run research in background
	go func() {
		report, err := researcher.Research(context.Background(), req.Topic, depth)
		if err != nil {
			log.Printf("Research run %s failed: %v", runID, err)
		}
		s.mu.Lock()
		entry.report = report
		entry.err = err
		entry.done = true
		s.mu.Unlock()
	}()

	s.jsonResponse(w, http.StatusAccepted, ResearchResponse{
		RunID:  runID.String(),
		Topic:  req.Topic,
		Depth:  string(depth),
		Status: "started",
	})
}

// handleStatus returns the status of a research run
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runIDFromPath(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	entry, found := s.runs[runID]
	s.mu.Unlock()

	if found {
		status := entry.agent.GetStatus()
		resp := StatusResponse{
			RunID:         runID.String(),
			Topic:         entry.topic,
			State:         status.State.String(),
			SourcesCount:  status.SourcesCount,
			FindingsCount: status.FindingsCount,
			ActionsTaken:  status.ActionsTaken,
		}
		s.mu.Lock()
		if entry.err != nil {
			resp.Error = entry.err.Error()
		}
		s.mu.Unlock()
		s.jsonResponse(w, http.StatusOK, resp)
		return
	}

	// Fall back to persisted runs
	if s.db != nil {
		run, err := s.db.GetRun(r.Context(), runID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to load run: "+err.Error())
			return
		}
		if run != nil {
			s.jsonResponse(w, http.StatusOK, StatusResponse{
				RunID: run.ID.String(),
				Topic: run.Topic,
				State: run.State,
				Error: run.ErrorMessage,
			})
			return
		}
	}

	s.errorResponse(w, http.StatusNotFound, "Run not found: "+runID.String())
}

// handleReport returns the finished report of a research run
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	runID, ok := s.runIDFromPath(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	entry, found := s.runs[runID]
	var report *types.ResearchReport
	var done bool
	if found {
		report = entry.report
		done = entry.done
	}
	s.mu.Unlock()

	if found {
		if !done {
			s.errorResponse(w, http.StatusConflict, "Run still in progress: "+runID.String())
			return
		}
		if report == nil {
			s.errorResponse(w, http.StatusNotFound, "Run produced no report: "+runID.String())
			return
		}
		s.jsonResponse(w, http.StatusOK, report)
		return
	}

	if s.db != nil {
		stored, err := s.db.GetReport(r.Context(), runID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Failed to load report: "+err.Error())
			return
		}
		if stored != nil {
			s.jsonResponse(w, http.StatusOK, stored)
			return
		}
	}

	s.errorResponse(w, http.StatusNotFound, "Report not found: "+runID.String())
}

// handleListRuns lists persisted research runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotImplemented, "Run listing requires a database")
		return
	}

	runs, err := s.db.ListRuns(r.Context(), 50)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list runs: "+err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}

// runIDFromPath parses the {id} path segment, writing the error response itself.
func (s *Server) runIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := r.PathValue("id")
	if idStr == "" {
		s.errorResponse(w, http.StatusBadRequest, "Run ID is required")
		return uuid.Nil, false
	}
	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID: "+idStr)
		return uuid.Nil, false
	}
	return runID, true
}
