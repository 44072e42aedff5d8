package storage

import (
	"context"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
)

// ProposalStore is the single source of truth for proposal records.
// Puts are last-write-wins per key; every implementation must make put/get
// atomic per key.
type ProposalStore interface {
	// PutProposal stores a proposal under its id.
	PutProposal(ctx context.Context, proposal *models.Proposal) error

	// GetProposal retrieves a proposal by id. Returns ErrNotFound if the id
	// is unknown.
	GetProposal(ctx context.Context, proposalID string) (*models.Proposal, error)
}
