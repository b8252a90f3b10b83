package models

import "time"

// DecisionKind is the category of a human checkpoint response.
type DecisionKind string

const (
	// DecisionApprove accepts the proposal as-is.
	DecisionApprove DecisionKind = "approve"
	// DecisionReject declines the proposal with a reason.
	DecisionReject DecisionKind = "reject"
	// DecisionModify requests changes before proceeding.
	DecisionModify DecisionKind = "modify"
	// DecisionOverride replaces the agent's proposal with the human's.
	DecisionOverride DecisionKind = "override"
)

// Valid returns true if the kind is a known value.
func (k DecisionKind) Valid() bool {
	switch k {
	case DecisionApprove, DecisionReject, DecisionModify, DecisionOverride:
		return true
	default:
		return false
	}
}

// Decision records one human checkpoint response.
type Decision struct {
	// ID is the unique identifier for this decision.
	ID string `json:"id"`
	// SessionID links the decision to a team run.
	SessionID string `json:"session_id"`
	// Stage names the checkpoint (research_approval, analysis_validation, ...).
	Stage string `json:"stage"`
	// Prompt is a short excerpt of the prompt shown to the human.
	Prompt string `json:"prompt"`
	// Kind is the response category.
	Kind DecisionKind `json:"kind"`
	// Reason carries the free-form text after the response keyword.
	Reason string `json:"reason,omitempty"`
	// DecidedAt is when the response was recorded.
	DecidedAt time.Time `json:"decided_at"`
}

// DecisionSummary aggregates the decisions recorded during a run.
type DecisionSummary struct {
	// Total is the number of decisions recorded.
	Total int `json:"total"`
	// ByKind counts decisions per response category.
	ByKind map[DecisionKind]int `json:"by_kind"`
	// Last is the most recent decision, if any.
	Last *Decision `json:"last,omitempty"`
}

// TeamRun summarizes one inner-team execution.
type TeamRun struct {
	// ID is the unique identifier for this run.
	ID string `json:"id"`
	// TeamName is the inner team that executed the task.
	TeamName string `json:"team_name"`
	// Task is the task description.
	Task string `json:"task"`
	// Status is the final workflow status.
	Status string `json:"status"`
	// HumanInterventions counts checkpoint responses during the run.
	HumanInterventions int `json:"human_interventions"`
	// ToolExecutions counts tool invocations during the run.
	ToolExecutions int `json:"tool_executions"`
	// QualityScore is the run's 0-100 quality estimate.
	QualityScore float64 `json:"quality_score"`
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`
	// FinishedAt is when the run completed, if it did.
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}
