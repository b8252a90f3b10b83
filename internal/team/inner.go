// Package team implements the two-tier supervised workflows: inner
// teams run one task through research, analysis, and validation phases
// with a human checkpoint at each, and the outer team coordinates
// several inner teams under strategic checkpoints.
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
	"github.com/somind-ai/somind/internal/dispatch"
	"github.com/somind-ai/somind/internal/llm"
	"github.com/somind-ai/somind/internal/state"
	"github.com/somind-ai/somind/internal/toolkit"
	"github.com/somind-ai/somind/pkg/models"
)

// Phase outcome statuses.
const (
	StatusApprovedExecuted     = "approved_and_executed"
	StatusModified             = "modified"
	StatusRejected             = "rejected"
	StatusValidatedExecuted    = "validated_and_executed"
	StatusModificationRequest  = "modification_requested"
	StatusApprovedDocumented   = "approved_and_documented"
	StatusHumanOverride        = "human_override"
)

// Checkpoint stages.
const (
	StageResearchApproval   = "research_approval"
	StageAnalysisValidation = "analysis_validation"
	StageFinalApproval      = "final_approval"
)

// PhaseResult captures one supervised phase.
type PhaseResult struct {
	Stage    string
	Status   string
	Proposal string
	Decision models.Decision
	Results  []*toolkit.Result
}

// InnerResult is the full outcome of one inner-team task.
type InnerResult struct {
	Run        models.TeamRun
	Plan       *models.AnalysisPlan
	Research   *PhaseResult
	Analysis   *PhaseResult
	Validation *PhaseResult
	Report     string
}

// Succeeded reports whether every phase completed with approval.
func (r *InnerResult) Succeeded() bool {
	return r.Validation != nil && r.Validation.Status == StatusApprovedDocumented
}

// Deps bundles the collaborators a team needs. Zero-value fields get
// working defaults so tests can construct teams piecemeal.
type Deps struct {
	Dispatcher *dispatch.Dispatcher
	Registry   *toolkit.Registry
	Approvals  *approval.Manager
	Store      state.Store
	Completer  llm.Completer
	Out        io.Writer

	// ToolTimeout bounds each tool invocation. Zero means unbounded.
	ToolTimeout time.Duration
}

// InnerTeam runs one task through the three supervised phases.
type InnerTeam struct {
	name       string
	dispatcher *dispatch.Dispatcher
	registry   *toolkit.Registry
	executor   *toolkit.Executor
	approvals  *approval.Manager
	store      state.Store
	reporter   *toolkit.ReportBuilder

	research   *Agent
	analysis   *Agent
	validation *Agent

	out io.Writer
	now func() time.Time
}

// NewInnerTeam creates an inner team with the given name.
func NewInnerTeam(name string, deps Deps) *InnerTeam {
	if deps.Dispatcher == nil {
		deps.Dispatcher = dispatch.New(nil)
	}
	if deps.Registry == nil {
		deps.Registry = toolkit.DefaultRegistry()
	}
	if deps.Approvals == nil {
		deps.Approvals = approval.NewManager()
	}
	if deps.Store == nil {
		deps.Store = state.NewMemoryStore()
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}

	var execOpts []toolkit.ExecutorOption
	if deps.ToolTimeout > 0 {
		execOpts = append(execOpts, toolkit.WithToolTimeout(deps.ToolTimeout))
	}

	return &InnerTeam{
		name:       name,
		dispatcher: deps.Dispatcher,
		registry:   deps.Registry,
		executor:   toolkit.NewExecutor(deps.Registry, deps.Dispatcher, execOpts...),
		approvals:  deps.Approvals,
		store:      deps.Store,
		reporter:   toolkit.NewReportBuilder(),
		research:   NewResearchAgent(name+"_researcher", deps.Completer),
		analysis:   NewAnalysisAgent(name+"_analyst", deps.Completer),
		validation: NewValidationAgent(name+"_validator", deps.Completer),
		out:        deps.Out,
		now:        time.Now,
	}
}

// Name returns the team name.
func (t *InnerTeam) Name() string {
	return t.name
}

// ExecuteTask runs the task through research, analysis, and validation.
// Rejection or a modification request at any phase ends the run with
// that phase's status. The only error condition is a cancelled context.
func (t *InnerTeam) ExecuteTask(ctx context.Context, task string) (*InnerResult, error) {
	run := models.TeamRun{
		ID:        newRunID(),
		TeamName:  t.name,
		Task:      task,
		Status:    "active",
		StartedAt: t.now(),
	}
	t.store.SaveRun(&run)

	color.New(color.FgCyan, color.Bold).Fprintf(t.out, "\n%s - supervised task execution\n", strings.ToUpper(t.name))
	fmt.Fprintf(t.out, "Task: %s\n", task)

	result := &InnerResult{Run: run, Plan: t.dispatcher.Analyze(task)}

	research, err := t.researchPhase(ctx, &run, task, result.Plan)
	if err != nil {
		return nil, err
	}
	result.Research = research
	if research.Status != StatusApprovedExecuted {
		return t.finish(result, research.Status, 0), nil
	}

	analysis, err := t.analysisPhase(ctx, &run, research.Results)
	if err != nil {
		return nil, err
	}
	result.Analysis = analysis
	if analysis.Status != StatusValidatedExecuted {
		return t.finish(result, analysis.Status, 0), nil
	}

	validation, err := t.validationPhase(ctx, &run, research.Results, analysis.Results)
	if err != nil {
		return nil, err
	}
	result.Validation = validation
	if validation.Status == StatusApprovedDocumented {
		result.Report = t.reporter.Build("comprehensive",
			resultsText(research.Results), resultsText(analysis.Results))
	}

	return t.finish(result, validation.Status, t.qualityScore(result)), nil
}

func (t *InnerTeam) researchPhase(ctx context.Context, run *models.TeamRun, task string, plan *models.AnalysisPlan) (*PhaseResult, error) {
	t.phaseHeader("PHASE 1: research with tool selection")

	proposal := t.research.ResearchPlan(ctx, task, plan)
	decision, err := t.checkpoint(ctx, run, StageResearchApproval, proposal)
	if err != nil {
		return nil, err
	}

	phase := &PhaseResult{Stage: StageResearchApproval, Proposal: proposal, Decision: decision}

	switch decision.Kind {
	case models.DecisionApprove:
		results, err := t.executor.Run(ctx, plan)
		if err != nil {
			return nil, err
		}
		run.ToolExecutions += len(results)
		phase.Status = StatusApprovedExecuted
		phase.Results = results
	case models.DecisionModify:
		phase.Status = StatusModified
	default:
		phase.Status = StatusRejected
	}
	return phase, nil
}

func (t *InnerTeam) analysisPhase(ctx context.Context, run *models.TeamRun, researchResults []*toolkit.Result) (*PhaseResult, error) {
	t.phaseHeader("PHASE 2: analysis with statistical validation")

	proposal := t.analysis.AnalysisRequest(ctx, resultsText(researchResults))
	decision, err := t.checkpoint(ctx, run, StageAnalysisValidation, proposal)
	if err != nil {
		return nil, err
	}

	phase := &PhaseResult{Stage: StageAnalysisValidation, Proposal: proposal, Decision: decision}

	switch decision.Kind {
	case models.DecisionApprove:
		result, err := t.runAnalysisTool(ctx, researchResults)
		if err != nil {
			return nil, err
		}
		run.ToolExecutions++
		phase.Status = StatusValidatedExecuted
		phase.Results = []*toolkit.Result{result}
	case models.DecisionModify:
		phase.Status = StatusModificationRequest
	default:
		phase.Status = StatusRejected
	}
	return phase, nil
}

func (t *InnerTeam) validationPhase(ctx context.Context, run *models.TeamRun, researchResults, analysisResults []*toolkit.Result) (*PhaseResult, error) {
	t.phaseHeader("PHASE 3: validation with report generation")

	proposal := t.validation.ValidationRequest(ctx, resultsText(researchResults), resultsText(analysisResults))
	decision, err := t.checkpoint(ctx, run, StageFinalApproval, proposal)
	if err != nil {
		return nil, err
	}

	phase := &PhaseResult{Stage: StageFinalApproval, Proposal: proposal, Decision: decision}

	switch decision.Kind {
	case models.DecisionApprove:
		phase.Status = StatusApprovedDocumented
	case models.DecisionOverride:
		phase.Status = StatusHumanOverride
	default:
		phase.Status = StatusRejected
	}
	return phase, nil
}

// runAnalysisTool invokes the analysis tool directly with the research
// results as prior data, outside any plan.
func (t *InnerTeam) runAnalysisTool(ctx context.Context, prior []*toolkit.Result) (*toolkit.Result, error) {
	tool, err := t.registry.Get(models.ToolDataAnalysis)
	if err != nil {
		return nil, err
	}
	return tool.Execute(ctx, toolkit.Invocation{
		Params: models.AnalysisParams{
			CommonParams: models.CommonParams{Timestamp: t.now()},
			AnalysisType: "comprehensive",
		},
		Prior: prior,
	})
}

func (t *InnerTeam) checkpoint(ctx context.Context, run *models.TeamRun, stage, proposal string) (models.Decision, error) {
	decision, err := t.approvals.WaitForDecision(ctx, approval.Request{
		SessionID: run.ID,
		Stage:     stage,
		Prompt:    proposal,
	})
	if err != nil {
		return models.Decision{}, err
	}

	run.HumanInterventions++
	t.store.SaveDecision(decision)
	return decision, nil
}

func (t *InnerTeam) finish(result *InnerResult, status string, quality float64) *InnerResult {
	finishedAt := t.now()
	result.Run.Status = status
	result.Run.QualityScore = quality
	result.Run.FinishedAt = &finishedAt
	t.store.UpdateRun(&result.Run)

	color.New(color.FgGreen).Fprintf(t.out, "%s finished: %s (quality %.1f)\n", t.name, status, quality)
	return result
}

// qualityScore mirrors the demo's scoring: a base of 80, a bonus for
// tool-backed research, a confidence bonus from the analysis outcome,
// and two points per approval, capped at 100.
func (t *InnerTeam) qualityScore(result *InnerResult) float64 {
	score := 80.0

	if result.Research != nil && len(result.Research.Results) > 0 {
		score += 10.0
	}

	confidence := 0.8
	if result.Analysis != nil {
		for _, r := range result.Analysis.Results {
			if outcome, ok := r.Payload.(*toolkit.AnalysisOutcome); ok {
				confidence = outcome.ConfidenceScore
			}
		}
	}
	score += confidence * 10

	for _, phase := range []*PhaseResult{result.Research, result.Analysis, result.Validation} {
		if phase != nil && phase.Decision.Kind == models.DecisionApprove {
			score += 2.0
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

func (t *InnerTeam) phaseHeader(title string) {
	color.New(color.FgMagenta).Fprintf(t.out, "\n%s\n%s\n", title, strings.Repeat("-", 50))
}

// resultsText renders tool results for proposals and reports.
func resultsText(results []*toolkit.Result) string {
	var sb strings.Builder
	for _, result := range results {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		if result.Status == toolkit.StatusError {
			fmt.Fprintf(&sb, "%s: %s", result.Tool, result.Error)
			continue
		}
		fmt.Fprintf(&sb, "%s:\n%s", result.Tool, result.JSON())
	}
	return sb.String()
}

// newRunID returns a short unique identifier, the first uuid segment.
func newRunID() string {
	return uuid.NewString()[:8]
}
