// Package dynamodb implements the workflow store on AWS DynamoDB, with one
// table for proposals and one for execution results.
package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nxtreasury/treasury-workflow/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store implements the storage interfaces using AWS DynamoDB.
type Store struct {
	Client             DynamoDBAPI
	ProposalsTableName string
	ResultsTableName   string
}

// NewStore creates a new DynamoDB-backed Store.
func NewStore(client DynamoDBAPI, proposalsTable, resultsTable string) *Store {
	return &Store{
		Client:             client,
		ProposalsTableName: proposalsTable,
		ResultsTableName:   resultsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Store = (*Store)(nil)

// Amounts are decimal.Decimal, which attributevalue only handles through its
// encoding.TextMarshaler support, so both directions opt in to it.
func marshalRecord(v any) (map[string]types.AttributeValue, error) {
	enc := attributevalue.NewEncoder(func(o *attributevalue.EncoderOptions) {
		o.UseEncodingMarshalers = true
	})
	av, err := enc.Encode(v)
	if err != nil {
		return nil, err
	}
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		return nil, fmt.Errorf("expected map attribute, got %T", av)
	}
	return m.Value, nil
}

func unmarshalRecord(item map[string]types.AttributeValue, out any) error {
	dec := attributevalue.NewDecoder(func(o *attributevalue.DecoderOptions) {
		o.UseEncodingUnmarshalers = true
	})
	return dec.Decode(&types.AttributeValueMemberM{Value: item}, out)
}
