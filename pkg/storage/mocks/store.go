// Package mocks contains testify mocks for the storage interfaces.
package mocks

import (
	"context"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of storage.Store.
type Store struct {
	mock.Mock
}

func (m *Store) PutProposal(ctx context.Context, proposal *models.Proposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}

func (m *Store) GetProposal(ctx context.Context, proposalID string) (*models.Proposal, error) {
	args := m.Called(ctx, proposalID)
	if p, ok := args.Get(0).(*models.Proposal); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) PutResult(ctx context.Context, result *models.ExecutionResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *Store) GetResult(ctx context.Context, proposalID string) (*models.ExecutionResult, error) {
	args := m.Called(ctx, proposalID)
	if r, ok := args.Get(0).(*models.ExecutionResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) DeleteResult(ctx context.Context, proposalID string) error {
	args := m.Called(ctx, proposalID)
	return args.Error(0)
}
