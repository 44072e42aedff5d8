package storage

import (
	"context"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
)

// ResultStore holds execution results keyed by proposal id.
type ResultStore interface {
	// PutResult stores an execution result under its proposal id.
	PutResult(ctx context.Context, result *models.ExecutionResult) error

	// GetResult retrieves the execution result for a proposal. Returns
	// ErrNotFound if no result has been stored for the id.
	GetResult(ctx context.Context, proposalID string) (*models.ExecutionResult, error)

	// DeleteResult removes the execution result for a proposal. Deleting a
	// missing result is not an error.
	DeleteResult(ctx context.Context, proposalID string) error
}
