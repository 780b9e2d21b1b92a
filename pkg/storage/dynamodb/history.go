package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/trusted-token-transfers/pkg/models"
)

const historyTokenIndex = "token_id-executed_at-index"

// ListTransferRecordsByToken retrieves the transfer history of a token, most
// recent first.
func (s *Store) ListTransferRecordsByToken(ctx context.Context, tokenID string) ([]models.TransferRecord, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.HistoryTableName),
		IndexName:              aws.String(historyTokenIndex),
		KeyConditionExpression: aws.String("token_id = :token"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":token": &types.AttributeValueMemberS{Value: tokenID},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer history: %w", err)
	}

	var records []models.TransferRecord
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transfer records: %w", err)
	}

	return records, nil
}
