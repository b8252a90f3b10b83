package team

import (
	"context"
	"strings"
	"testing"

	"github.com/somind-ai/somind/internal/approval"
	"github.com/somind-ai/somind/pkg/models"
)

func newTestOuterTeam(m *approval.Manager, teamCount int) *OuterTeam {
	names := []string{"team_alpha", "team_beta", "team_gamma"}
	teams := make([]*InnerTeam, 0, teamCount)
	for i := 0; i < teamCount; i++ {
		teams = append(teams, NewInnerTeam(names[i], Deps{Approvals: m}))
	}
	return NewOuterTeam(teams, m, nil)
}

func TestOuterTeam_FullApproval(t *testing.T) {
	m := approval.NewManager()
	outer := newTestOuterTeam(m, 1)

	// Coordination, allocation, three inner checkpoints, final validation.
	answerSequence(m,
		models.DecisionApprove, models.DecisionApprove,
		models.DecisionApprove, models.DecisionApprove, models.DecisionApprove,
		models.DecisionApprove)

	result, err := outer.CoordinateProject(context.Background(), []string{"Analyze pollution trends"})
	if err != nil {
		t.Fatalf("CoordinateProject() error = %v", err)
	}

	if result.Status != StatusStrategicallyValidated {
		t.Errorf("Status = %q, want %q", result.Status, StatusStrategicallyValidated)
	}
	if !result.Approved {
		t.Error("project should be approved")
	}
	if len(result.TeamResults) != 1 {
		t.Fatalf("got %d team results, want 1", len(result.TeamResults))
	}
	if result.Metrics.SuccessRate != 100 {
		t.Errorf("SuccessRate = %v, want 100", result.Metrics.SuccessRate)
	}
	if result.Metrics.AverageQuality != 100 {
		t.Errorf("AverageQuality = %v, want 100", result.Metrics.AverageQuality)
	}
	if result.Metrics.StrategicConfidence != "HIGH" {
		t.Errorf("StrategicConfidence = %q, want HIGH", result.Metrics.StrategicConfidence)
	}
	if !strings.Contains(result.Summary, "team_alpha") {
		t.Error("summary missing the team outcome line")
	}
}

func TestOuterTeam_CoordinationRejected(t *testing.T) {
	m := approval.NewManager()
	outer := newTestOuterTeam(m, 1)

	answerSequence(m, models.DecisionReject)

	result, err := outer.CoordinateProject(context.Background(), []string{"task"})
	if err != nil {
		t.Fatalf("CoordinateProject() error = %v", err)
	}
	if result.Status != StatusCoordinationRejected {
		t.Errorf("Status = %q, want %q", result.Status, StatusCoordinationRejected)
	}
	if len(result.TeamResults) != 0 {
		t.Error("no teams should execute after coordination rejection")
	}
}

func TestOuterTeam_AllocationModifyProceeds(t *testing.T) {
	m := approval.NewManager()
	outer := newTestOuterTeam(m, 1)

	// Allocation answered with MODIFY still proceeds to execution.
	answerSequence(m,
		models.DecisionApprove, models.DecisionModify,
		models.DecisionReject, // inner research checkpoint
		models.DecisionApprove)

	result, err := outer.CoordinateProject(context.Background(), []string{"task"})
	if err != nil {
		t.Fatalf("CoordinateProject() error = %v", err)
	}
	if len(result.TeamResults) != 1 {
		t.Fatalf("team should still execute after an allocation modify, got %d results", len(result.TeamResults))
	}
	if result.TeamResults[0].Run.Status != StatusRejected {
		t.Errorf("inner status = %q, want rejected", result.TeamResults[0].Run.Status)
	}
	if result.Metrics.SuccessRate != 0 {
		t.Errorf("SuccessRate = %v, want 0 with a rejected inner run", result.Metrics.SuccessRate)
	}
}

func TestOuterTeam_FinalRevisionRequested(t *testing.T) {
	m := approval.NewManager()
	outer := newTestOuterTeam(m, 1)

	answerSequence(m,
		models.DecisionApprove, models.DecisionApprove,
		models.DecisionApprove, models.DecisionApprove, models.DecisionApprove,
		models.DecisionModify)

	result, err := outer.CoordinateProject(context.Background(), []string{"task"})
	if err != nil {
		t.Fatalf("CoordinateProject() error = %v", err)
	}
	if result.Status != StatusRevisionRequested {
		t.Errorf("Status = %q, want %q", result.Status, StatusRevisionRequested)
	}
	if result.Approved {
		t.Error("a revision-requested project is not approved")
	}
}

func TestOuterTeam_AssignsTasksInOrder(t *testing.T) {
	m := approval.NewManager()
	outer := newTestOuterTeam(m, 3)

	assignments := outer.assign([]string{"first", "second"})
	if len(assignments) != 2 {
		t.Fatalf("got %d assignments, want 2", len(assignments))
	}
	if assignments["team_alpha"] != "first" || assignments["team_beta"] != "second" {
		t.Errorf("assignments = %v, want in-order mapping", assignments)
	}
	if _, ok := assignments["team_gamma"]; ok {
		t.Error("team_gamma should be idle with only two tasks")
	}
}

func TestOuterTeam_EmptyInputs(t *testing.T) {
	m := approval.NewManager()

	if _, err := newTestOuterTeam(m, 1).CoordinateProject(context.Background(), nil); err == nil {
		t.Error("CoordinateProject() should fail with no tasks")
	}
	if _, err := NewOuterTeam(nil, m, nil).CoordinateProject(context.Background(), []string{"t"}); err == nil {
		t.Error("CoordinateProject() should fail with no teams")
	}
}
