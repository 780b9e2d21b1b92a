package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/storage"
	"github.com/google/uuid"
)

const tokenOwnerIndex = "owner_wallet_id-index"

// CreateToken mints a new custody record.
func (s *Store) CreateToken(ctx context.Context, token *models.Token) (*models.Token, error) {
	if token.Id == "" {
		token.Id = uuid.New().String()
	}
	now := time.Now()
	token.CreatedAt = now
	token.UpdatedAt = now

	tokenAV, err := attributevalue.MarshalMap(token)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.TokensTableName),
		Item:                tokenAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("token %s already exists: %w", token.Id, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create token in DynamoDB: %w", err)
	}

	return token, nil
}

// GetToken retrieves a token custody record by its id.
func (s *Store) GetToken(ctx context.Context, tokenID string) (*models.Token, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": tokenID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal token id: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TokensTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get token from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("token %s: %w", tokenID, storage.ErrNotFound)
	}

	var token models.Token
	if err := attributevalue.UnmarshalMap(result.Item, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}

	return &token, nil
}

// ListTokensByOwner retrieves all tokens currently owned by a wallet.
func (s *Store) ListTokensByOwner(ctx context.Context, walletID string) ([]models.Token, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.TokensTableName),
		IndexName:              aws.String(tokenOwnerIndex),
		KeyConditionExpression: aws.String("owner_wallet_id = :owner"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: walletID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query tokens by owner: %w", err)
	}

	var tokens []models.Token
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tokens: %w", err)
	}

	return tokens, nil
}

// TransferTokens atomically reassigns custody of every token in tokenIDs from the
// sender to the receiver and appends one history record per token. Each token's
// update is guarded by a compare-and-set on its current owner, so the whole commit
// fails with ErrConflict if any single token moved since the caller's ownership
// check. DynamoDB caps a write transaction at 100 items, which bounds a transfer
// at 50 tokens.
func (s *Store) TransferTokens(ctx context.Context, tokenIDs []string, sender, receiver *models.Wallet) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	items := make([]types.TransactWriteItem, 0, 2*len(tokenIDs))
	for _, tokenID := range tokenIDs {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.TokensTableName),
				Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: tokenID}},
				UpdateExpression:    aws.String("SET owner_wallet_id = :to, updated_at = :now"),
				ConditionExpression: aws.String("owner_wallet_id = :from"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":to":   &types.AttributeValueMemberS{Value: receiver.Id},
					":from": &types.AttributeValueMemberS{Value: sender.Id},
					":now":  nowAV,
				},
			},
		})

		record := models.TransferRecord{
			Id:             uuid.New().String(),
			TokenId:        tokenID,
			SenderWallet:   sender.Name,
			ReceiverWallet: receiver.Name,
			ExecutedAt:     now,
		}
		recordAV, err := attributevalue.MarshalMap(record)
		if err != nil {
			return fmt.Errorf("failed to marshal transfer record: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(s.HistoryTableName),
				Item:      recordAV,
			},
		})
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if transactionConditionFailed(err) {
			return fmt.Errorf("token ownership changed during transfer: %w", storage.ErrConflict)
		}
		return fmt.Errorf("failed to execute custody transfer: %w", err)
	}

	return nil
}
