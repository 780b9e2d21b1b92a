package trust

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/chris/trusted-token-transfers/pkg/events"
	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/storage"
)

// ErrUnknownTrustType is returned when the requested trust type is not recognized.
var ErrUnknownTrustType = errors.New("unknown trust request type")

// ErrSelfTrust is returned when a wallet requests trust with itself.
var ErrSelfTrust = errors.New("cannot request trust with your own wallet")

// ErrNotRequestee is returned when a wallet other than the invited party tries to
// accept or decline a relationship.
var ErrNotRequestee = errors.New("only the requested wallet may respond to this relationship")

// ErrNotRequester is returned when a wallet other than the initiator tries to
// cancel a relationship.
var ErrNotRequester = errors.New("only the requesting wallet may cancel this relationship")

// ErrNotPending is returned for a transition attempted on a relationship that is
// no longer awaiting a response.
var ErrNotPending = errors.New("trust relationship is not awaiting a response")

// Engine creates, approves, and queries trust relationships, enforcing the trust
// state machine and its actor constraints.
type Engine struct {
	Wallets  storage.WalletStore
	Trust    storage.TrustStore
	Notifier events.Notifier
}

// NewEngine creates a new trust Engine.
func NewEngine(wallets storage.WalletStore, trustStore storage.TrustStore, notifier events.Notifier) *Engine {
	if notifier == nil {
		notifier = &events.NoOpNotifier{}
	}
	return &Engine{Wallets: wallets, Trust: trustStore, Notifier: notifier}
}

// Request opens a trust relationship from the requester to the named counterparty.
// Re-requesting an existing active relationship returns that relationship instead
// of creating a duplicate.
func (e *Engine) Request(ctx context.Context, requester *models.Wallet, requesteeName string, relType models.TrustRelationshipType) (*models.TrustRelationship, error) {
	if !relType.Requestable() {
		return nil, fmt.Errorf("%q: %w", relType, ErrUnknownTrustType)
	}

	requestee, err := e.Wallets.GetWalletByName(ctx, requesteeName)
	if err != nil {
		return nil, err
	}
	if requestee.Id == requester.Id {
		return nil, ErrSelfTrust
	}

	existing, err := e.Trust.FindActiveTrustRelationship(ctx, requester.Id, requestee.Id, relType)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	rel := &models.TrustRelationship{
		RequesterWalletId:   requester.Id,
		RequesterWalletName: requester.Name,
		RequesteeWalletId:   requestee.Id,
		RequesteeWalletName: requestee.Name,
		Type:                relType,
	}

	// The store dedupes concurrent first-time requests, so a race here still
	// yields a single active relationship.
	created, err := e.Trust.CreateTrustRelationship(ctx, rel)
	if err != nil {
		return nil, err
	}

	if err := e.Notifier.Publish(ctx, events.NewTrustEvent(events.TypeTrustRequested, created)); err != nil {
		slog.Error("failed to publish trust requested event", "relationship_id", created.Id, "error", err)
	}

	return created, nil
}

// List returns every relationship in which the wallet participates, any state,
// in creation order.
func (e *Engine) List(ctx context.Context, wallet *models.Wallet) ([]models.TrustRelationship, error) {
	return e.Trust.ListTrustRelationshipsByWallet(ctx, wallet.Id)
}

// Accept transitions a requested relationship to approved. Only the requestee may
// accept; accepting an already-approved relationship is an idempotent no-op, and
// accepting a declined or canceled one is a conflict.
func (e *Engine) Accept(ctx context.Context, id int64, actor *models.Wallet) (*models.TrustRelationship, error) {
	rel, err := e.Trust.GetTrustRelationship(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Id != rel.RequesteeWalletId {
		return nil, ErrNotRequestee
	}
	if rel.State == models.TrustApproved {
		// Retry of an accept that already landed.
		return rel, nil
	}
	if rel.Terminal() {
		return nil, fmt.Errorf("relationship %d is %s: %w", id, rel.State, ErrNotPending)
	}

	updated, err := e.Trust.UpdateTrustState(ctx, id, models.TrustRequested, models.TrustApproved)
	if err != nil {
		return nil, err
	}

	if err := e.Notifier.Publish(ctx, events.NewTrustEvent(events.TypeTrustApproved, updated)); err != nil {
		slog.Error("failed to publish trust approved event", "relationship_id", updated.Id, "error", err)
	}

	return updated, nil
}

// Decline transitions a requested relationship to declined. Only the requestee
// may decline, and only while the relationship is awaiting a response.
func (e *Engine) Decline(ctx context.Context, id int64, actor *models.Wallet) (*models.TrustRelationship, error) {
	rel, err := e.Trust.GetTrustRelationship(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Id != rel.RequesteeWalletId {
		return nil, ErrNotRequestee
	}
	if rel.State != models.TrustRequested {
		return nil, fmt.Errorf("relationship %d is %s: %w", id, rel.State, ErrNotPending)
	}

	return e.Trust.UpdateTrustState(ctx, id, models.TrustRequested, models.TrustDeclined)
}

// Cancel withdraws a requested relationship. Only the requester may cancel, and
// only while the relationship is awaiting a response.
func (e *Engine) Cancel(ctx context.Context, id int64, actor *models.Wallet) (*models.TrustRelationship, error) {
	rel, err := e.Trust.GetTrustRelationship(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Id != rel.RequesterWalletId {
		return nil, ErrNotRequester
	}
	if rel.State != models.TrustRequested {
		return nil, fmt.Errorf("relationship %d is %s: %w", id, rel.State, ErrNotPending)
	}

	return e.Trust.UpdateTrustState(ctx, id, models.TrustRequested, models.TrustCanceled)
}

// FindAuthorization returns the active relationship covering a sender-to-receiver
// token movement, in whichever direction it was stored: a send-type relationship
// the sender opened toward the receiver, or a receive-type relationship the
// receiver opened toward the sender. Returns storage.ErrNotFound when no active
// relationship covers the pair. Callers must still check the state: a requested
// relationship covers the pair without authorizing it.
func (e *Engine) FindAuthorization(ctx context.Context, senderID, receiverID string) (*models.TrustRelationship, error) {
	var pending *models.TrustRelationship

	for _, lookup := range []struct {
		requesterID string
		requesteeID string
		relType     models.TrustRelationshipType
	}{
		{senderID, receiverID, models.TrustTypeSend},
		{receiverID, senderID, models.TrustTypeReceive},
	} {
		rel, err := e.Trust.FindActiveTrustRelationship(ctx, lookup.requesterID, lookup.requesteeID, lookup.relType)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if rel.State == models.TrustApproved {
			return rel, nil
		}
		if pending == nil {
			pending = rel
		}
	}

	if pending != nil {
		return pending, nil
	}
	return nil, fmt.Errorf("no trust relationship covers %s to %s: %w", senderID, receiverID, storage.ErrNotFound)
}
