package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nxtreasury/treasury-workflow/pkg/models"
	"github.com/nxtreasury/treasury-workflow/pkg/storage"
	"github.com/nxtreasury/treasury-workflow/pkg/storage/dynamodb/mocks"
)

func TestPutProposal(t *testing.T) {
	proposal := &models.Proposal{
		ID:          uuid.New().String(),
		UserID:      "treasury-ops",
		TotalAmount: decimal.NewFromInt(500),
		Currency:    "USDT",
		Status:      models.READY_FOR_REVIEW,
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ProposalsTableName: "proposals"}

		mockClient.On("PutItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.PutItemInput) bool {
			return *input.TableName == "proposals" && *input.ConditionExpression == "attribute_not_exists(proposal_id)"
		})).Return(&dynamodb.PutItemOutput{}, nil)

		err := store.PutProposal(context.Background(), proposal)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Id", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ProposalsTableName: "proposals"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.PutProposal(context.Background(), proposal)

		assert.ErrorIs(t, err, storage.ErrDuplicateProposal)
		mockClient.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, ProposalsTableName: "proposals"}

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		err := store.PutProposal(context.Background(), proposal)

		assert.ErrorContains(t, err, "failed to put proposal")
		mockClient.AssertExpectations(t)
	})
}
