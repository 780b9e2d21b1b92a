package events

import (
	"context"
	"time"

	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/google/uuid"
)

// Type identifies a domain event.
type Type string

const (
	TypeTrustRequested   Type = "trust.requested"
	TypeTrustApproved    Type = "trust.approved"
	TypeTransferExecuted Type = "transfer.executed"
)

// Event is the envelope published for every domain event.
type Event struct {
	Id         string      `json:"id"`
	Type       Type        `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// TrustPayload describes a trust relationship change.
type TrustPayload struct {
	RelationshipId  int64  `json:"relationship_id"`
	RequesterWallet string `json:"requester_wallet"`
	RequesteeWallet string `json:"requestee_wallet"`
	Type            string `json:"type"`
	State           string `json:"state"`
}

// TransferPayload describes an executed custody change.
type TransferPayload struct {
	Tokens         []string `json:"tokens"`
	SenderWallet   string   `json:"sender_wallet"`
	ReceiverWallet string   `json:"receiver_wallet"`
}

// Notifier defines the interface for publishing domain events.
// Publishing is best-effort: engines log failures and do not roll back the
// committed state change.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

// NewTrustEvent builds the event for a trust relationship reaching a state.
func NewTrustEvent(eventType Type, rel *models.TrustRelationship) Event {
	return Event{
		Id:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now(),
		Payload: TrustPayload{
			RelationshipId:  rel.Id,
			RequesterWallet: rel.RequesterWalletName,
			RequesteeWallet: rel.RequesteeWalletName,
			Type:            string(rel.Type),
			State:           string(rel.State),
		},
	}
}

// NewTransferEvent builds the event for an executed transfer.
func NewTransferEvent(tokenIDs []string, sender, receiver *models.Wallet) Event {
	return Event{
		Id:         uuid.New().String(),
		Type:       TypeTransferExecuted,
		OccurredAt: time.Now(),
		Payload: TransferPayload{
			Tokens:         tokenIDs,
			SenderWallet:   sender.Name,
			ReceiverWallet: receiver.Name,
		},
	}
}

// NoOpNotifier is a notifier that does nothing.
type NoOpNotifier struct{}

// Publish does nothing.
func (n *NoOpNotifier) Publish(ctx context.Context, event Event) error {
	return nil
}
