package state

import (
	"fmt"
	"sync"

	"github.com/somind-ai/somind/pkg/models"
)

// MemoryStore keeps the audit trail in process memory. It is the
// fallback when the SQLite database cannot be opened.
type MemoryStore struct {
	mu        sync.RWMutex
	runs      []models.TeamRun
	decisions []models.Decision
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveRun implements Store.
func (s *MemoryStore) SaveRun(run *models.TeamRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, *run)
	return nil
}

// UpdateRun implements Store.
func (s *MemoryStore) UpdateRun(run *models.TeamRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.runs {
		if s.runs[i].ID == run.ID {
			s.runs[i] = *run
			return nil
		}
	}
	return fmt.Errorf("run %s not found", run.ID)
}

// SaveDecision implements Store.
func (s *MemoryStore) SaveDecision(decision models.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.decisions = append(s.decisions, decision)
	return nil
}

// RecentRuns implements Store.
func (s *MemoryStore) RecentRuns(limit int) ([]models.TeamRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TeamRun, 0, limit)
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// RecentDecisions implements Store.
func (s *MemoryStore) RecentDecisions(limit int) ([]models.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Decision, 0, limit)
	for i := len(s.decisions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.decisions[i])
	}
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
