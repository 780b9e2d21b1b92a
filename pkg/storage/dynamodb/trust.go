package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/storage"
)

const (
	requesterWalletIndex = "requester_wallet_id-index"
	requesteeWalletIndex = "requestee_wallet_id-index"
)

// trustRelationshipKey builds the primary key of a relationship record.
func trustRelationshipKey(id int64) string {
	return fmt.Sprintf("TRUST#%d", id)
}

// activeTrustKey builds the primary key of the lock item that enforces the
// one-active-relationship-per-tuple invariant.
func activeTrustKey(requesterID, requesteeID string, relType models.TrustRelationshipType) string {
	return fmt.Sprintf("ACTIVE#%s#%s#%s", requesterID, requesteeID, relType)
}

// CreateTrustRelationship persists a new relationship in state "requested".
// The relationship record and an active-tuple lock item are written in one
// DynamoDB transaction; the conditional put on the lock guarantees that two
// concurrent first-time requests for the same tuple produce exactly one record.
// The loser of that race gets the winner's relationship back.
func (s *Store) CreateTrustRelationship(ctx context.Context, rel *models.TrustRelationship) (*models.TrustRelationship, error) {
	id, err := s.nextRelationshipID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rel.Id = id
	rel.State = models.TrustRequested
	rel.CreatedAt = now
	rel.UpdatedAt = now

	relAV, err := attributevalue.MarshalMap(rel)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trust relationship: %w", err)
	}
	relAV["pk"] = &types.AttributeValueMemberS{Value: trustRelationshipKey(rel.Id)}

	lockAV := map[string]types.AttributeValue{
		"pk":              &types.AttributeValueMemberS{Value: activeTrustKey(rel.RequesterWalletId, rel.RequesteeWalletId, rel.Type)},
		"relationship_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(rel.Id, 10)},
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(s.TrustTableName),
					Item:                lockAV,
					ConditionExpression: aws.String("attribute_not_exists(pk)"),
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(s.TrustTableName),
					Item:                relAV,
					ConditionExpression: aws.String("attribute_not_exists(pk)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		if transactionConditionFailed(err) {
			// Lost the race: another request already holds the active slot.
			existing, findErr := s.FindActiveTrustRelationship(ctx, rel.RequesterWalletId, rel.RequesteeWalletId, rel.Type)
			if findErr != nil {
				return nil, fmt.Errorf("concurrent trust request detected but existing relationship unreadable: %w", findErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create trust relationship: %w", err)
	}

	return rel, nil
}

// GetTrustRelationship retrieves a relationship by its id.
func (s *Store) GetTrustRelationship(ctx context.Context, id int64) (*models.TrustRelationship, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TrustTableName),
		Key:       map[string]types.AttributeValue{"pk": &types.AttributeValueMemberS{Value: trustRelationshipKey(id)}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get trust relationship from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("trust relationship %d: %w", id, storage.ErrNotFound)
	}

	var rel models.TrustRelationship
	if err := attributevalue.UnmarshalMap(result.Item, &rel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trust relationship: %w", err)
	}

	return &rel, nil
}

// FindActiveTrustRelationship returns the single active relationship for the
// tuple, resolved through its lock item, or ErrNotFound.
func (s *Store) FindActiveTrustRelationship(ctx context.Context, requesterID, requesteeID string, relType models.TrustRelationshipType) (*models.TrustRelationship, error) {
	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.TrustTableName),
		Key:       map[string]types.AttributeValue{"pk": &types.AttributeValueMemberS{Value: activeTrustKey(requesterID, requesteeID, relType)}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get active trust lock from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("no active %s trust between %s and %s: %w", relType, requesterID, requesteeID, storage.ErrNotFound)
	}

	idAttr, ok := result.Item["relationship_id"].(*types.AttributeValueMemberN)
	if !ok {
		return nil, fmt.Errorf("active trust lock is missing its relationship id")
	}
	id, err := strconv.ParseInt(idAttr.Value, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse relationship id from lock: %w", err)
	}

	return s.GetTrustRelationship(ctx, id)
}

// ListTrustRelationshipsByWallet returns every relationship where the wallet is
// requester or requestee, merged from both GSIs, in creation order.
func (s *Store) ListTrustRelationshipsByWallet(ctx context.Context, walletID string) ([]models.TrustRelationship, error) {
	var rels []models.TrustRelationship

	for _, q := range []struct {
		index string
		attr  string
	}{
		{requesterWalletIndex, "requester_wallet_id"},
		{requesteeWalletIndex, "requestee_wallet_id"},
	} {
		result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.TrustTableName),
			IndexName:              aws.String(q.index),
			KeyConditionExpression: aws.String(q.attr + " = :wallet"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":wallet": &types.AttributeValueMemberS{Value: walletID},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query trust relationships: %w", err)
		}

		var page []models.TrustRelationship
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal trust relationships: %w", err)
		}
		rels = append(rels, page...)
	}

	sort.Slice(rels, func(i, j int) bool {
		if rels[i].CreatedAt.Equal(rels[j].CreatedAt) {
			return rels[i].Id < rels[j].Id
		}
		return rels[i].CreatedAt.Before(rels[j].CreatedAt)
	})

	return rels, nil
}

// UpdateTrustState transitions a relationship between states with compare-and-set
// semantics. Transitions into a terminal state also release the active-tuple lock
// in the same transaction, so a fresh request for the pair can be opened.
func (s *Store) UpdateTrustState(ctx context.Context, id int64, from, to models.TrustState) (*models.TrustRelationship, error) {
	rel, err := s.GetTrustRelationship(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timestamp: %w", err)
	}

	items := []types.TransactWriteItem{
		{
			Update: &types.Update{
				TableName:           aws.String(s.TrustTableName),
				Key:                 map[string]types.AttributeValue{"pk": &types.AttributeValueMemberS{Value: trustRelationshipKey(id)}},
				UpdateExpression:    aws.String("SET #state = :to, updated_at = :now"),
				ConditionExpression: aws.String("#state = :from"),
				ExpressionAttributeNames: map[string]string{
					"#state": "state",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":to":   &types.AttributeValueMemberS{Value: string(to)},
					":from": &types.AttributeValueMemberS{Value: string(from)},
					":now":  nowAV,
				},
			},
		},
	}

	terminal := to == models.TrustCanceled || to == models.TrustDeclined
	if terminal {
		items = append(items, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName:           aws.String(s.TrustTableName),
				Key:                 map[string]types.AttributeValue{"pk": &types.AttributeValueMemberS{Value: activeTrustKey(rel.RequesterWalletId, rel.RequesteeWalletId, rel.Type)}},
				ConditionExpression: aws.String("relationship_id = :id"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":id": &types.AttributeValueMemberN{Value: strconv.FormatInt(id, 10)},
				},
			},
		})
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if transactionConditionFailed(err) {
			return nil, fmt.Errorf("trust relationship %d is not in state %s: %w", id, from, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update trust relationship state: %w", err)
	}

	rel.State = to
	rel.UpdatedAt = now
	return rel, nil
}
