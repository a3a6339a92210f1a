package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/agentic-researcher/internal/agent"
	"github.com/jonathan/agentic-researcher/internal/types"
)

// SaveRun persists a finished run, its report, and its action log in one
// transaction. It implements agent.Store.
func (db *DB) SaveRun(ctx context.Context, rec agent.RunRecord) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var errMsg *string
	if rec.ErrorMessage != "" {
		errMsg = &rec.ErrorMessage
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO research_runs (id, topic, depth, state, error_message, completed_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())`,
		rec.ID, rec.Topic, string(rec.Depth), string(rec.State), errMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	if rec.Report != nil {
		reportJSON, err := json.Marshal(rec.Report)
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO reports (run_id, content) VALUES ($1, $2)`,
			rec.ID, reportJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
	}

	for i, entry := range rec.Actions {
		var paramsJSON []byte
		if entry.Params != nil {
			paramsJSON, err = json.Marshal(entry.Params)
			if err != nil {
				return fmt.Errorf("failed to marshal action params: %w", err)
			}
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO run_actions (run_id, seq, action, params, state, logged_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.ID, i, entry.Action, paramsJSON, string(entry.State), entry.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to save action %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun retrieves a research run by ID
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	var errMsg *string
	err := db.pool.QueryRow(ctx,
		`SELECT id, topic, depth, state, error_message, created_at, completed_at
		 FROM research_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Topic, &run.Depth, &run.State, &errMsg, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if errMsg != nil {
		run.ErrorMessage = *errMsg
	}
	return &run, nil
}

// GetReport retrieves the report of a run, or nil when none was stored
func (db *DB) GetReport(ctx context.Context, runID uuid.UUID) (*types.ResearchReport, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM reports WHERE run_id = $1`,
		runID,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report types.ResearchReport
	if err := json.Unmarshal(content, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// ListRuns retrieves recent research runs
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, topic, depth, state, error_message, created_at, completed_at
		 FROM research_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var errMsg *string
		if err := rows.Scan(&run.ID, &run.Topic, &run.Depth, &run.State, &errMsg, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if errMsg != nil {
			run.ErrorMessage = *errMsg
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// ListRunActions retrieves the persisted action log of a run in order
func (db *DB) ListRunActions(ctx context.Context, runID uuid.UUID) ([]RunAction, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, seq, action, params, state, logged_at
		 FROM run_actions WHERE run_id = $1 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list run actions: %w", err)
	}
	defer rows.Close()

	var actions []RunAction
	for rows.Next() {
		var a RunAction
		var paramsJSON []byte
		if err := rows.Scan(&a.ID, &a.RunID, &a.Seq, &a.Action, &paramsJSON, &a.State, &a.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run action: %w", err)
		}
		if len(paramsJSON) > 0 {
			_ = json.Unmarshal(paramsJSON, &a.Params)
		}
		actions = append(actions, a)
	}
	return actions, nil
}
