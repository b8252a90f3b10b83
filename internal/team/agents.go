package team

import (
	"context"
	"fmt"
	"strings"

	"github.com/somind-ai/somind/internal/llm"
	"github.com/somind-ai/somind/pkg/models"
)

const proposalExcerptLen = 200

// Agent composes phase proposals. With no completer configured the
// agents run deterministic templates, so the demo needs no network.
type Agent struct {
	name      string
	role      string
	completer llm.Completer
}

// NewResearchAgent creates the research proposal agent.
func NewResearchAgent(name string, completer llm.Completer) *Agent {
	return &Agent{name: name, role: "research", completer: completer}
}

// NewAnalysisAgent creates the analysis proposal agent.
func NewAnalysisAgent(name string, completer llm.Completer) *Agent {
	return &Agent{name: name, role: "analysis", completer: completer}
}

// NewValidationAgent creates the validation proposal agent.
func NewValidationAgent(name string, completer llm.Completer) *Agent {
	return &Agent{name: name, role: "validation", completer: completer}
}

// Name returns the agent's name.
func (a *Agent) Name() string {
	return a.name
}

// ResearchPlan proposes a tool-backed research approach for a task.
func (a *Agent) ResearchPlan(ctx context.Context, task string, plan *models.AnalysisPlan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "RESEARCH PLAN FOR: %s\n\n", task)
	sb.WriteString("SELECTED TOOLS:\n")
	for _, tool := range plan.Tools {
		fmt.Fprintf(&sb, "- %s\n", tool)
	}
	fmt.Fprintf(&sb, "\nEXECUTION STRATEGY: %s (complexity: %s)\n", plan.ExecutionStrategy, plan.TaskComplexity)
	fmt.Fprintf(&sb, "LOCATION: %s\n", plan.ExtractedContext.Location)
	if plan.ExtractedContext.HasComparison {
		sb.WriteString("COMPARISON: year-over-year baselines requested\n")
	}
	sb.WriteString("\nEXPECTED OUTPUTS:\n- Real-time data collection\n- Multi-source validation\n")

	return a.refine(ctx, sb.String())
}

// AnalysisRequest proposes an analytical approach over collected data.
func (a *Agent) AnalysisRequest(ctx context.Context, researchData string) string {
	excerpt := researchData
	if len(excerpt) > proposalExcerptLen {
		excerpt = excerpt[:proposalExcerptLen]
	}

	var sb strings.Builder
	sb.WriteString("DATA ANALYSIS REQUEST\n\n")
	sb.WriteString("ANALYSIS APPROACH:\n- Statistical analysis over collected readings\n- Trend identification\n- Data reliability scoring\n\n")
	fmt.Fprintf(&sb, "DATA TO ANALYZE:\n%s\n", excerpt)

	return a.refine(ctx, sb.String())
}

// ValidationRequest proposes final recommendations from both phases.
func (a *Agent) ValidationRequest(ctx context.Context, researchData, analysisData string) string {
	var sb strings.Builder
	sb.WriteString("VALIDATION & REPORT GENERATION\n\n")
	sb.WriteString("REPORT SCOPE:\n- Executive summary with quality metrics\n- Implementation planning\n\n")
	fmt.Fprintf(&sb, "INPUT DATA:\n- Research results: %d characters\n- Analysis results: %d characters\n",
		len(researchData), len(analysisData))

	return a.refine(ctx, sb.String())
}

// refine consults the completer when one is configured, falling back to
// the template on any failure.
func (a *Agent) refine(ctx context.Context, template string) string {
	if a.completer == nil {
		return template
	}

	system := fmt.Sprintf("You are a %s specialist on a supervised workflow team. Refine the proposal below, keeping its structure.", a.role)
	refined, err := a.completer.Complete(ctx, system, template)
	if err != nil || strings.TrimSpace(refined) == "" {
		return template
	}
	return refined
}
