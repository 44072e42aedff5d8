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

// GetProposal retrieves a proposal by id.
func (s *Store) GetProposal(ctx context.Context, proposalID string) (*models.Proposal, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.ProposalsTableName),
		Key: map[string]types.AttributeValue{
			"proposal_id": &types.AttributeValueMemberS{Value: proposalID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal %s: %w", proposalID, err)
	}
	if out.Item == nil {
		return nil, storage.ErrNotFound
	}

	var proposal models.Proposal
	if err := unmarshalRecord(out.Item, &proposal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal proposal %s: %w", proposalID, err)
	}
	return &proposal, nil
}
