package team

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/somind-ai/somind/internal/approval"
	"github.com/somind-ai/somind/pkg/models"
)

// Strategic checkpoint stages.
const (
	StageCoordinationApproval = "coordination_approval"
	StageResourceAllocation   = "resource_allocation"
	StageStrategicValidation  = "strategic_validation"
)

// Project outcome statuses.
const (
	StatusStrategicallyValidated = "strategically_validated"
	StatusRevisionRequested      = "strategic_revision_requested"
	StatusCoordinationRejected   = "coordination_rejected"
)

// QualityMetrics aggregates inner-team performance for a project.
type QualityMetrics struct {
	AverageQuality      float64 `json:"average_quality"`
	SuccessRate         float64 `json:"success_rate"`
	HumanInterventions  int     `json:"human_interventions"`
	ToolExecutions      int     `json:"tool_executions"`
	StrategicConfidence string  `json:"strategic_confidence"`
}

// ProjectResult is the outcome of one outer-team coordination run.
type ProjectResult struct {
	ProjectID   string
	Status      string
	Approved    bool
	Assignments map[string]string
	TeamResults []*InnerResult
	Metrics     QualityMetrics
	Summary     string
}

// OuterTeam coordinates several inner teams over a set of tasks with
// strategic checkpoints before and after execution.
type OuterTeam struct {
	teams     []*InnerTeam
	approvals *approval.Manager
	out       io.Writer
	now       func() time.Time
}

// NewOuterTeam creates an outer team coordinating the given inner teams.
// The approvals manager is shared with the inner teams so one console
// serves every checkpoint.
func NewOuterTeam(teams []*InnerTeam, approvals *approval.Manager, out io.Writer) *OuterTeam {
	if approvals == nil {
		approvals = approval.NewManager()
	}
	if out == nil {
		out = io.Discard
	}
	return &OuterTeam{teams: teams, approvals: approvals, out: out, now: time.Now}
}

// CoordinateProject assigns tasks to inner teams and runs them under
// strategic oversight. Tasks beyond the number of teams are dropped;
// teams beyond the number of tasks stay idle.
func (o *OuterTeam) CoordinateProject(ctx context.Context, tasks []string) (*ProjectResult, error) {
	if len(o.teams) == 0 {
		return nil, fmt.Errorf("no inner teams configured")
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("no tasks to coordinate")
	}

	projectID := "project-" + uuid.NewString()[:8]

	color.New(color.FgCyan, color.Bold).Fprintf(o.out, "\nSTRATEGIC COORDINATION - %s\n", projectID)
	fmt.Fprintf(o.out, "Managing %d tasks across %d teams\n", len(tasks), len(o.teams))

	assignments := o.assign(tasks)
	result := &ProjectResult{ProjectID: projectID, Assignments: assignments}

	// Checkpoint 1: coordination plan.
	decision, err := o.strategicCheckpoint(ctx, projectID, StageCoordinationApproval, o.coordinationPlan(assignments))
	if err != nil {
		return nil, err
	}
	if decision.Kind != models.DecisionApprove {
		result.Status = StatusCoordinationRejected
		return result, nil
	}

	// Checkpoint 2: resource allocation. A modify decision proceeds with
	// the noted adjustments; only rejection stops the project.
	decision, err = o.strategicCheckpoint(ctx, projectID, StageResourceAllocation, o.allocationPlan(assignments))
	if err != nil {
		return nil, err
	}
	if decision.Kind == models.DecisionReject {
		result.Status = StatusCoordinationRejected
		return result, nil
	}

	// Execution: each assigned team runs its task. The checkpoints inside
	// each inner team keep execution sequential; a shared console cannot
	// answer two teams at once.
	for _, t := range o.teams {
		task, ok := assignments[t.Name()]
		if !ok {
			continue
		}
		teamResult, err := t.ExecuteTask(ctx, task)
		if err != nil {
			return nil, err
		}
		result.TeamResults = append(result.TeamResults, teamResult)
	}

	result.Metrics = o.metrics(result.TeamResults)
	result.Summary = o.strategicSummary(projectID, result)

	// Checkpoint 3: final strategic validation.
	decision, err = o.strategicCheckpoint(ctx, projectID, StageStrategicValidation, result.Summary)
	if err != nil {
		return nil, err
	}
	if decision.Kind == models.DecisionApprove {
		result.Status = StatusStrategicallyValidated
		result.Approved = true
		result.Metrics.StrategicConfidence = "HIGH"
	} else {
		result.Status = StatusRevisionRequested
	}

	return result, nil
}

// assign maps teams to tasks in order.
func (o *OuterTeam) assign(tasks []string) map[string]string {
	assignments := make(map[string]string)
	for i, t := range o.teams {
		if i >= len(tasks) {
			break
		}
		assignments[t.Name()] = tasks[i]
	}
	return assignments
}

func (o *OuterTeam) coordinationPlan(assignments map[string]string) string {
	var sb strings.Builder
	sb.WriteString("STRATEGIC COORDINATION PLAN\n\nTASK ASSIGNMENTS:\n")
	for _, t := range o.teams {
		task, ok := assignments[t.Name()]
		if !ok {
			fmt.Fprintf(&sb, "- %s: idle\n", t.Name())
			continue
		}
		fmt.Fprintf(&sb, "- %s: %s\n", t.Name(), task)
	}
	sb.WriteString("\nEach team runs its task under phase-level human checkpoints.\n")
	return sb.String()
}

func (o *OuterTeam) allocationPlan(assignments map[string]string) string {
	var sb strings.Builder
	sb.WriteString("RESOURCE ALLOCATION PLAN\n\n")
	fmt.Fprintf(&sb, "- Active teams: %d\n", len(assignments))
	fmt.Fprintf(&sb, "- Idle teams: %d\n", len(o.teams)-len(assignments))
	sb.WriteString("- Tooling: shared registry, per-plan execution strategies\n")
	sb.WriteString("- Oversight: every phase gated on operator decisions\n")
	return sb.String()
}

func (o *OuterTeam) metrics(results []*InnerResult) QualityMetrics {
	m := QualityMetrics{StrategicConfidence: "MEDIUM"}
	if len(results) == 0 {
		return m
	}

	succeeded := 0
	for _, r := range results {
		m.AverageQuality += r.Run.QualityScore
		m.HumanInterventions += r.Run.HumanInterventions
		m.ToolExecutions += r.Run.ToolExecutions
		if r.Succeeded() {
			succeeded++
		}
	}
	m.AverageQuality /= float64(len(results))
	m.SuccessRate = float64(succeeded) / float64(len(results)) * 100
	return m
}

func (o *OuterTeam) strategicSummary(projectID string, result *ProjectResult) string {
	var sb strings.Builder

	sb.WriteString("STRATEGIC PROJECT COMPLETION ANALYSIS\n\n")
	fmt.Fprintf(&sb, "Project ID: %s\n", projectID)
	fmt.Fprintf(&sb, "Completed: %s\n\n", o.now().Format(time.RFC3339))

	sb.WriteString("PERFORMANCE METRICS:\n")
	fmt.Fprintf(&sb, "- Teams coordinated: %d\n", len(result.TeamResults))
	fmt.Fprintf(&sb, "- Success rate: %.1f%%\n", result.Metrics.SuccessRate)
	fmt.Fprintf(&sb, "- Average quality score: %.2f/100\n", result.Metrics.AverageQuality)
	fmt.Fprintf(&sb, "- Human interventions: %d\n", result.Metrics.HumanInterventions)
	fmt.Fprintf(&sb, "- Tool executions: %d\n\n", result.Metrics.ToolExecutions)

	sb.WriteString("TEAM OUTCOMES:\n")
	for _, r := range result.TeamResults {
		fmt.Fprintf(&sb, "- %s: %s (quality %.1f)\n", r.Run.TeamName, r.Run.Status, r.Run.QualityScore)
	}

	return sb.String()
}

func (o *OuterTeam) strategicCheckpoint(ctx context.Context, projectID, stage, prompt string) (models.Decision, error) {
	return o.approvals.WaitForDecision(ctx, approval.Request{
		SessionID: projectID,
		Stage:     stage,
		Prompt:    prompt,
	})
}
