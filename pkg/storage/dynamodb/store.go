package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/trusted-token-transfers/pkg/storage"
)

// DynamoDBAPI captures the subset of the DynamoDB client used by the Store.
// It exists so the store can be tested against a mockery-generated mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                        DynamoDBAPI
	WalletsTableName              string
	TokensTableName               string
	TrustTableName                string
	HistoryTableName              string
	WebsocketConnectionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, walletsTable, tokensTable, trustTable, historyTable, connectionsTable string) *Store {
	return &Store{
		Client:                        client,
		WalletsTableName:              walletsTable,
		TokensTableName:               tokensTable,
		TrustTableName:                trustTable,
		HistoryTableName:              historyTable,
		WebsocketConnectionsTableName: connectionsTable,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// transactionConditionFailed reports whether a TransactWriteItems error was a
// lost compare-and-set, as opposed to an infrastructure failure.
func transactionConditionFailed(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}

// trustCounterKey is the primary key of the item holding the monotonically
// increasing relationship id.
const trustCounterKey = "COUNTER"

// nextRelationshipID atomically increments and returns the relationship id counter.
func (s *Store) nextRelationshipID(ctx context.Context) (int64, error) {
	out, err := s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.TrustTableName),
		Key:              map[string]types.AttributeValue{"pk": &types.AttributeValueMemberS{Value: trustCounterKey}},
		UpdateExpression: aws.String("ADD counter_value :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment relationship id counter: %w", err)
	}

	counter, ok := out.Attributes["counter_value"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("relationship id counter missing from update response")
	}

	id, err := strconv.ParseInt(counter.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse relationship id counter: %w", err)
	}
	return id, nil
}
