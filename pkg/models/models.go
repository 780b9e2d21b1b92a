package models

import (
	"time"
)

// TrustState defines the possible states of a trust relationship.
type TrustState string

const (
	TrustRequested TrustState = "requested"
	TrustApproved  TrustState = "approved"
	TrustCanceled  TrustState = "canceled"
	TrustDeclined  TrustState = "declined"
)

// TrustRelationshipType defines the direction of the permission a trust
// relationship grants. Only "send" and "receive" can be requested today;
// the remaining values are reserved for management-style grants.
type TrustRelationshipType string

const (
	TrustTypeSend    TrustRelationshipType = "send"
	TrustTypeReceive TrustRelationshipType = "receive"
	TrustTypeManage  TrustRelationshipType = "manage"
	TrustTypeDeduct  TrustRelationshipType = "deduct"
)

// Requestable reports whether clients may open a relationship of this type.
func (t TrustRelationshipType) Requestable() bool {
	return t == TrustTypeSend || t == TrustTypeReceive
}

// TrustRelationship is the durable consent record between two wallets.
// The requester initiated it; the requestee is the only party that can
// approve or decline it.
type TrustRelationship struct {
	Id                  int64                 `json:"id" dynamodbav:"id"`
	RequesterWalletId   string                `json:"requester_wallet_id" dynamodbav:"requester_wallet_id"`
	RequesterWalletName string                `json:"requester_wallet" dynamodbav:"requester_wallet_name"`
	RequesteeWalletId   string                `json:"requestee_wallet_id" dynamodbav:"requestee_wallet_id"`
	RequesteeWalletName string                `json:"requestee_wallet" dynamodbav:"requestee_wallet_name"`
	Type                TrustRelationshipType `json:"type" dynamodbav:"type"`
	State               TrustState            `json:"state" dynamodbav:"state"`
	CreatedAt           time.Time             `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at" dynamodbav:"updated_at"`
}

// Active reports whether the relationship still occupies the single active
// slot for its (requester, requestee, type) tuple.
func (r *TrustRelationship) Active() bool {
	return r.State == TrustRequested || r.State == TrustApproved
}

// Terminal reports whether the relationship reached a state with no further
// transitions.
func (r *TrustRelationship) Terminal() bool {
	return r.State == TrustCanceled || r.State == TrustDeclined
}

// Wallet represents a custodial account holding tokens, identified by a
// unique name.
type Wallet struct {
	Id           string    `json:"id" dynamodbav:"id"`
	Name         string    `json:"name" dynamodbav:"name"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Token is a custody record: an opaque token id plus the wallet that
// currently owns it.
type Token struct {
	Id            string    `json:"id" dynamodbav:"id"`
	OwnerWalletId string    `json:"owner_wallet_id" dynamodbav:"owner_wallet_id"`
	CreatedAt     time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// TransferRecord is one row of transfer history, written in the same
// database transaction as the custody change it describes.
type TransferRecord struct {
	Id             string    `json:"id" dynamodbav:"id"`
	TokenId        string    `json:"token" dynamodbav:"token_id"`
	SenderWallet   string    `json:"sender_wallet" dynamodbav:"sender_wallet"`
	ReceiverWallet string    `json:"receiver_wallet" dynamodbav:"receiver_wallet"`
	ExecutedAt     time.Time `json:"executed_at" dynamodbav:"executed_at"`
}
