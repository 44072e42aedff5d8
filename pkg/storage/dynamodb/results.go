package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/nxtreasury/treasury-workflow/pkg/storage"
)

// PutResult stores the execution result for a proposal. Re-approval
// overwrites the previous result.
func (s *Store) PutResult(ctx context.Context, result *models.ExecutionResult) error {
	item, err := marshalRecord(result)
	if err != nil {
		return fmt.Errorf("failed to marshal execution result: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.ResultsTableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put execution result: %w", err)
	}
	return nil
}

// GetResult retrieves the execution result for a proposal.
func (s *Store) GetResult(ctx context.Context, proposalID string) (*models.ExecutionResult, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.ResultsTableName),
		Key: map[string]types.AttributeValue{
			"proposal_id": &types.AttributeValueMemberS{Value: proposalID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get execution result %s: %w", proposalID, err)
	}
	if out.Item == nil {
		return nil, storage.ErrNotFound
	}

	var result models.ExecutionResult
	if err := unmarshalRecord(out.Item, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal execution result %s: %w", proposalID, err)
	}
	return &result, nil
}

// DeleteResult removes the execution result for a proposal.
func (s *Store) DeleteResult(ctx context.Context, proposalID string) error {
	_, err := s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.ResultsTableName),
		Key: map[string]types.AttributeValue{
			"proposal_id": &types.AttributeValueMemberS{Value: proposalID},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete execution result %s: %w", proposalID, err)
	}
	return nil
}
