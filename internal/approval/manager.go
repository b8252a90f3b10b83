// Package approval bridges workflow goroutines and the human operator.
// Workflows block on a checkpoint until a decision arrives; a console
// prompter (or a test) answers on the other side of the channel.
package approval

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/somind-ai/somind/pkg/models"
)

// Request is one checkpoint presented to the human.
type Request struct {
	// ID is the unique identifier for this checkpoint.
	ID string
	// SessionID links the checkpoint to a team run.
	SessionID string
	// Stage names the checkpoint (research_approval, analysis_validation, ...).
	Stage string
	// Prompt is the full text shown to the human.
	Prompt string
	// Proposal is the agent output under review.
	Proposal string
}

// Manager tracks pending checkpoints and records every decision taken.
type Manager struct {
	// pending maps request IDs to channels waiting for decisions.
	pending map[string]chan models.Decision
	// requestCh delivers checkpoints to the console listener.
	requestCh chan Request
	// decisions is the in-order record of everything decided.
	decisions []models.Decision
	// mu protects pending and decisions.
	mu sync.RWMutex

	now func() time.Time
}

// NewManager creates a Manager.
func NewManager() *Manager {
	return &Manager{
		pending:   make(map[string]chan models.Decision),
		requestCh: make(chan Request, 10),
		now:       time.Now,
	}
}

// RequestCh returns a read-only channel of checkpoints. The console
// listener receives from it and answers with SubmitDecision.
func (m *Manager) RequestCh() <-chan Request {
	return m.requestCh
}

// WaitForDecision blocks until the human answers the checkpoint or the
// context is cancelled. The decision is recorded before it is returned.
func (m *Manager) WaitForDecision(ctx context.Context, req Request) (models.Decision, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	decisionCh := make(chan models.Decision, 1)

	m.mu.Lock()
	m.pending[req.ID] = decisionCh
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.pending, req.ID)
		m.mu.Unlock()
	}()

	select {
	case m.requestCh <- req:
	case <-ctx.Done():
		return models.Decision{}, ctx.Err()
	}

	select {
	case decision := <-decisionCh:
		decision.ID = req.ID
		decision.SessionID = req.SessionID
		decision.Stage = req.Stage
		decision.Prompt = excerptPrompt(req.Prompt)
		if decision.DecidedAt.IsZero() {
			decision.DecidedAt = m.now()
		}
		m.record(decision)
		return decision, nil
	case <-ctx.Done():
		return models.Decision{}, ctx.Err()
	}
}

// SubmitDecision answers a pending checkpoint. Unknown request IDs and
// duplicate answers are ignored.
func (m *Manager) SubmitDecision(requestID string, kind models.DecisionKind, reason string) {
	m.mu.RLock()
	ch, exists := m.pending[requestID]
	m.mu.RUnlock()

	if !exists {
		return
	}
	select {
	case ch <- models.Decision{Kind: kind, Reason: reason}:
	default:
	}
}

// HasPending returns true if the checkpoint is still awaiting an answer.
func (m *Manager) HasPending(requestID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.pending[requestID]
	return exists
}

// Decisions returns a copy of every decision recorded so far, in order.
func (m *Manager) Decisions() []models.Decision {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Decision, len(m.decisions))
	copy(out, m.decisions)
	return out
}

// Summary aggregates the recorded decisions.
func (m *Manager) Summary() models.DecisionSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summary := models.DecisionSummary{
		Total:  len(m.decisions),
		ByKind: make(map[models.DecisionKind]int),
	}
	for _, decision := range m.decisions {
		summary.ByKind[decision.Kind]++
	}
	if len(m.decisions) > 0 {
		last := m.decisions[len(m.decisions)-1]
		summary.Last = &last
	}
	return summary
}

func (m *Manager) record(decision models.Decision) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, decision)
}

const promptExcerptLen = 120

func excerptPrompt(prompt string) string {
	if len(prompt) > promptExcerptLen {
		return prompt[:promptExcerptLen]
	}
	return prompt
}
