// Package mocks contains testify mocks for the DynamoDB client interface.
package mocks

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/mock"
)

// DynamoDBAPI is a mock implementation of the store's DynamoDB client
// interface.
type DynamoDBAPI struct {
	mock.Mock
}

func (m *DynamoDBAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.GetItemOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DynamoDBAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.PutItemOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DynamoDBAPI) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	args := m.Called(ctx, params)
	if out, ok := args.Get(0).(*dynamodb.DeleteItemOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}
