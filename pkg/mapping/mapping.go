package mapping

import (
	"github.com/chris/trusted-token-transfers/pkg/api"
	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/transfer"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ToApiTrustRelationship converts a domain TrustRelationship to its API model.
func ToApiTrustRelationship(rel *models.TrustRelationship) *api.TrustRelationship {
	return &api.TrustRelationship{
		Id:              rel.Id,
		RequesterWallet: rel.RequesterWalletName,
		RequesteeWallet: rel.RequesteeWalletName,
		Type:            string(rel.Type),
		State:           string(rel.State),
		CreatedAt:       rel.CreatedAt,
		UpdatedAt:       rel.UpdatedAt,
	}
}

// ToApiTrustRelationshipList converts a slice of domain relationships to the
// list response shape.
func ToApiTrustRelationshipList(rels []models.TrustRelationship) *api.TrustRelationshipList {
	out := make([]api.TrustRelationship, len(rels))
	for i := range rels {
		out[i] = *ToApiTrustRelationship(&rels[i])
	}
	return &api.TrustRelationshipList{TrustRelationships: out}
}

// ToApiToken converts a domain Token to its API model. The owner wallet name is
// resolved by the caller; the domain record holds only the owner id.
func ToApiToken(token *models.Token, ownerName string) *api.Token {
	return &api.Token{
		Token:       ParseTokenID(token.Id),
		OwnerWallet: ownerName,
		UpdatedAt:   token.UpdatedAt,
	}
}

// ToApiTransferResult converts a transfer outcome to the API response shape.
func ToApiTransferResult(outcome *transfer.Outcome, senderName, receiverName string) *api.TransferResult {
	result := &api.TransferResult{
		Status:         string(outcome.Status),
		SenderWallet:   senderName,
		ReceiverWallet: receiverName,
	}
	for _, token := range outcome.Tokens {
		result.Tokens = append(result.Tokens, ParseTokenID(token.Id))
	}
	if outcome.Trust != nil {
		result.TrustRelationship = ToApiTrustRelationship(outcome.Trust)
	}
	return result
}

// ToApiTransferRecord converts a domain TransferRecord to its API model.
func ToApiTransferRecord(record *models.TransferRecord) *api.TransferRecord {
	return &api.TransferRecord{
		Token:          ParseTokenID(record.TokenId),
		SenderWallet:   record.SenderWallet,
		ReceiverWallet: record.ReceiverWallet,
		ExecutedAt:     record.ExecutedAt,
	}
}

// ParseTokenID converts a stored token id to the API's UUID type. Stored ids are
// written from uuid.New, so a parse failure yields the zero UUID rather than an
// error the caller cannot act on.
func ParseTokenID(id string) openapi_types.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return openapi_types.UUID{}
	}
	return openapi_types.UUID(parsed)
}
