package state

import (
	"database/sql"
	"fmt"

	"github.com/somind-ai/somind/pkg/models"
)

// Store is the persistence surface the workflows write their audit trail
// through. The SQLite implementation is the default; the in-memory one
// covers environments without a writable data directory.
type Store interface {
	// SaveRun inserts a new team run record.
	SaveRun(run *models.TeamRun) error
	// UpdateRun rewrites a run's mutable fields after completion.
	UpdateRun(run *models.TeamRun) error
	// SaveDecision appends one human decision to the audit trail.
	SaveDecision(decision models.Decision) error
	// RecentRuns lists runs, newest first.
	RecentRuns(limit int) ([]models.TeamRun, error)
	// RecentDecisions lists decisions, newest first.
	RecentDecisions(limit int) ([]models.Decision, error)
	// Close releases the store.
	Close() error
}

// OpenStore opens the SQLite store at path and migrates it. When the
// database cannot be opened the returned store records in memory, so the
// demo still runs on a read-only home.
func OpenStore(path string) Store {
	db, err := Open(path)
	if err != nil {
		return NewMemoryStore()
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return NewMemoryStore()
	}
	return &sqliteStore{db: db}
}

type sqliteStore struct {
	db *DB
}

// SaveRun implements Store.
func (s *sqliteStore) SaveRun(run *models.TeamRun) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, team_name, task, status, human_interventions, tool_executions, quality_score, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.TeamName, run.Task, run.Status,
		run.HumanInterventions, run.ToolExecutions, run.QualityScore,
		formatTime(run.StartedAt))
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// UpdateRun implements Store.
func (s *sqliteStore) UpdateRun(run *models.TeamRun) error {
	var finishedAt any
	if run.FinishedAt != nil {
		finishedAt = formatTime(*run.FinishedAt)
	}

	_, err := s.db.Exec(`
		UPDATE runs
		SET status = ?, human_interventions = ?, tool_executions = ?, quality_score = ?, finished_at = ?
		WHERE id = ?
	`, run.Status, run.HumanInterventions, run.ToolExecutions,
		run.QualityScore, finishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// SaveDecision implements Store.
func (s *sqliteStore) SaveDecision(decision models.Decision) error {
	_, err := s.db.Exec(`
		INSERT INTO decisions (id, session_id, stage, prompt, kind, reason, decided_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, decision.ID, decision.SessionID, decision.Stage, decision.Prompt,
		string(decision.Kind), decision.Reason, formatTime(decision.DecidedAt))
	if err != nil {
		return fmt.Errorf("save decision: %w", err)
	}
	return nil
}

// RecentRuns implements Store.
func (s *sqliteStore) RecentRuns(limit int) ([]models.TeamRun, error) {
	rows, err := s.db.Query(`
		SELECT id, team_name, task, status, human_interventions, tool_executions, quality_score, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.TeamRun
	for rows.Next() {
		var run models.TeamRun
		var startedAt string
		var finishedAt sql.NullString

		if err := rows.Scan(&run.ID, &run.TeamName, &run.Task, &run.Status,
			&run.HumanInterventions, &run.ToolExecutions, &run.QualityScore,
			&startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		if run.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		run.FinishedAt = parseNullableTime(finishedAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RecentDecisions implements Store.
func (s *sqliteStore) RecentDecisions(limit int) ([]models.Decision, error) {
	rows, err := s.db.Query(`
		SELECT id, session_id, stage, prompt, kind, reason, decided_at
		FROM decisions
		ORDER BY decided_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []models.Decision
	for rows.Next() {
		var decision models.Decision
		var kind, decidedAt string

		if err := rows.Scan(&decision.ID, &decision.SessionID, &decision.Stage,
			&decision.Prompt, &kind, &decision.Reason, &decidedAt); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}

		decision.Kind = models.DecisionKind(kind)
		if decision.DecidedAt, err = parseTime(decidedAt); err != nil {
			return nil, fmt.Errorf("parse decided_at: %w", err)
		}
		decisions = append(decisions, decision)
	}
	return decisions, rows.Err()
}

// Close implements Store.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
