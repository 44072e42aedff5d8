package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/nxtreasury/treasury-workflow/pkg/storage"
)

// PutProposal stores a proposal record. Proposal ids are generated server
// side, so a second put with the same id means an id collision and is
// refused.
func (s *Store) PutProposal(ctx context.Context, proposal *models.Proposal) error {
	item, err := marshalRecord(proposal)
	if err != nil {
		return fmt.Errorf("failed to marshal proposal: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.ProposalsTableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(proposal_id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return storage.ErrDuplicateProposal
		}
		return fmt.Errorf("failed to put proposal: %w", err)
	}
	return nil
}
