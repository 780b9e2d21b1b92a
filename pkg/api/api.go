// Package api holds the request and response payload types of the HTTP surface.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// AuthRequest is the body of POST /auth.
type AuthRequest struct {
	Wallet   string `json:"wallet"`
	Password string `json:"password"`
}

// AuthToken is the response of POST /auth.
type AuthToken struct {
	Token string `json:"token"`
}

// TrustRequest is the body of POST /trust_relationships. Wallet names the
// counterparty being invited.
type TrustRequest struct {
	TrustRequestType string `json:"trust_request_type"`
	Wallet           string `json:"wallet"`
}

// TrustRelationship is the API shape of a trust relationship record.
type TrustRelationship struct {
	Id              int64     `json:"id"`
	RequesterWallet string    `json:"requester_wallet"`
	RequesteeWallet string    `json:"requestee_wallet"`
	Type            string    `json:"type"`
	State           string    `json:"state"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TrustRelationshipList is the response of GET /trust_relationships.
type TrustRelationshipList struct {
	TrustRelationships []TrustRelationship `json:"trust_relationships"`
}

// Token is the API shape of a token custody record.
type Token struct {
	Token       openapi_types.UUID `json:"token"`
	OwnerWallet string             `json:"owner_wallet"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// TokenList is the response of GET /tokens.
type TokenList struct {
	Tokens []Token `json:"tokens"`
}

// TransferRequest is the body of POST /transfers. Tokens is optional: when
// omitted, the sender's full holdings are transferred.
type TransferRequest struct {
	SenderWallet   string                `json:"sender_wallet"`
	ReceiverWallet string                `json:"receiver_wallet"`
	Tokens         *[]openapi_types.UUID `json:"tokens,omitempty"`
}

// TransferResult is the response of POST /transfers. Status distinguishes an
// executed transfer from one deferred until trust is approved.
type TransferResult struct {
	Status            string               `json:"status"`
	SenderWallet      string               `json:"sender_wallet"`
	ReceiverWallet    string               `json:"receiver_wallet"`
	Tokens            []openapi_types.UUID `json:"tokens,omitempty"`
	TrustRelationship *TrustRelationship   `json:"trust_relationship,omitempty"`
}

// TransferRecord is one row of the response of GET /history.
type TransferRecord struct {
	Token          openapi_types.UUID `json:"token"`
	SenderWallet   string             `json:"sender_wallet"`
	ReceiverWallet string             `json:"receiver_wallet"`
	ExecutedAt     time.Time          `json:"executed_at"`
}

// History is the response of GET /history.
type History struct {
	History []TransferRecord `json:"history"`
}
