// Package memory provides the in-process store backing the workflow when no
// external datastore is configured. All state is lost on restart.
package memory

import (
	"context"
	"sync"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/nxtreasury/treasury-workflow/pkg/storage"
)

// Store keeps proposals and execution results in two mutex-guarded maps.
// Put/get are atomic per key; concurrent writers racing on the same key are
// last-write-wins.
type Store struct {
	mu        sync.RWMutex
	proposals map[string]*models.Proposal
	results   map[string]*models.ExecutionResult
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		proposals: make(map[string]*models.Proposal),
		results:   make(map[string]*models.ExecutionResult),
	}
}

// Make sure we conform to the interface
var _ storage.Store = (*Store)(nil)

// PutProposal stores a copy of the proposal under its id.
func (s *Store) PutProposal(ctx context.Context, proposal *models.Proposal) error {
	_ = ctx
	cp := cloneProposal(proposal)
	s.mu.Lock()
	s.proposals[proposal.ID] = cp
	s.mu.Unlock()
	return nil
}

// GetProposal returns a copy of the stored proposal.
func (s *Store) GetProposal(ctx context.Context, proposalID string) (*models.Proposal, error) {
	_ = ctx
	s.mu.RLock()
	p := s.proposals[proposalID]
	s.mu.RUnlock()
	if p == nil {
		return nil, storage.ErrNotFound
	}
	return cloneProposal(p), nil
}

// PutResult stores a copy of the execution result under its proposal id.
func (s *Store) PutResult(ctx context.Context, result *models.ExecutionResult) error {
	_ = ctx
	cp := cloneResult(result)
	s.mu.Lock()
	s.results[result.ProposalID] = cp
	s.mu.Unlock()
	return nil
}

// GetResult returns a copy of the stored execution result.
func (s *Store) GetResult(ctx context.Context, proposalID string) (*models.ExecutionResult, error) {
	_ = ctx
	s.mu.RLock()
	r := s.results[proposalID]
	s.mu.RUnlock()
	if r == nil {
		return nil, storage.ErrNotFound
	}
	return cloneResult(r), nil
}

// DeleteResult removes the execution result for a proposal.
func (s *Store) DeleteResult(ctx context.Context, proposalID string) error {
	_ = ctx
	s.mu.Lock()
	delete(s.results, proposalID)
	s.mu.Unlock()
	return nil
}

// Callers hold the returned records past the lock, so stored records are
// copied on both sides of the map.
func cloneProposal(p *models.Proposal) *models.Proposal {
	cp := *p
	cp.Entries = make([]models.PaymentEntry, len(p.Entries))
	copy(cp.Entries, p.Entries)
	for i := range cp.Entries {
		if sc := cp.Entries[i].Screening; sc != nil {
			scCopy := *sc
			scCopy.Factors = append([]string(nil), sc.Factors...)
			cp.Entries[i].Screening = &scCopy
		}
	}
	return &cp
}

func cloneResult(r *models.ExecutionResult) *models.ExecutionResult {
	cp := *r
	cp.Executed = append([]models.ExecutedPayment(nil), r.Executed...)
	cp.Failed = append([]models.FailedPayment(nil), r.Failed...)
	return &cp
}
