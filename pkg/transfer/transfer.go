package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/trusted-token-transfers/pkg/events"
	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/storage"
	"github.com/chris/trusted-token-transfers/pkg/trust"
)

// ErrEmptyTokenSet is returned when a transfer names no tokens.
var ErrEmptyTokenSet = errors.New("transfer requires at least one token")

// ErrTokenNotHeld is returned when the stated sender does not own a named token.
var ErrTokenNotHeld = errors.New("sender does not hold this token")

// ErrTooManyTokens is returned when a transfer names more tokens than a single
// custody commit can move.
var ErrTooManyTokens = errors.New("transfer exceeds the per-transfer token limit")

// ErrDuplicateToken is returned when a transfer names the same token twice.
var ErrDuplicateToken = errors.New("transfer names the same token more than once")

// MaxTransferTokens bounds a single transfer. The custody commit writes two
// transaction items per token and DynamoDB caps TransactWriteItems at 100 items.
const MaxTransferTokens = 50

// OutcomeStatus tags the result of a transfer request.
type OutcomeStatus string

const (
	// OutcomeExecuted means custody of every named token moved to the receiver.
	OutcomeExecuted OutcomeStatus = "executed"

	// OutcomePendingTrust means the request is valid but deferred: no approved
	// trust relationship covers the pair yet. Nothing happened; the caller
	// resubmits once trust is approved.
	OutcomePendingTrust OutcomeStatus = "pending-trust-required"
)

// Outcome is the tagged, non-error result of a transfer request.
type Outcome struct {
	Status OutcomeStatus
	Tokens []models.Token
	Trust  *models.TrustRelationship
}

// Engine authorizes and records transfers of tokens between wallets, gating each
// transfer on an approved trust relationship between the pair.
type Engine struct {
	Tokens   storage.TokenStore
	Trust    *trust.Engine
	Notifier events.Notifier
}

// NewEngine creates a new transfer Engine.
func NewEngine(tokens storage.TokenStore, trustEngine *trust.Engine, notifier events.Notifier) *Engine {
	if notifier == nil {
		notifier = &events.NoOpNotifier{}
	}
	return &Engine{Tokens: tokens, Trust: trustEngine, Notifier: notifier}
}

// Transfer decides the outcome of moving tokenIDs from sender to receiver.
//
// Every token must currently be owned by the sender, named at most once, and
// the set may not exceed MaxTransferTokens. With an approved trust
// relationship covering the pair, custody of all tokens moves atomically and the
// outcome is executed. Without one the outcome is pending-trust-required, whether
// or not a request is already open; repeating the call before approval is safe
// and creates no state. The custody commit is compare-and-set per token, so a
// concurrent transfer of the same token surfaces as storage.ErrConflict and no
// token moves.
func (e *Engine) Transfer(ctx context.Context, sender, receiver *models.Wallet, tokenIDs []string) (*Outcome, error) {
	if len(tokenIDs) == 0 {
		return nil, ErrEmptyTokenSet
	}
	if len(tokenIDs) > MaxTransferTokens {
		return nil, fmt.Errorf("%d tokens, limit %d: %w", len(tokenIDs), MaxTransferTokens, ErrTooManyTokens)
	}

	seen := make(map[string]struct{}, len(tokenIDs))
	for _, tokenID := range tokenIDs {
		if _, ok := seen[tokenID]; ok {
			return nil, fmt.Errorf("token %s: %w", tokenID, ErrDuplicateToken)
		}
		seen[tokenID] = struct{}{}
	}

	for _, tokenID := range tokenIDs {
		token, err := e.Tokens.GetToken(ctx, tokenID)
		if err != nil {
			return nil, err
		}
		if token.OwnerWalletId != sender.Id {
			return nil, fmt.Errorf("token %s: %w", tokenID, ErrTokenNotHeld)
		}
	}

	rel, err := e.Trust.FindAuthorization(ctx, sender.Id, receiver.Id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &Outcome{Status: OutcomePendingTrust}, nil
		}
		return nil, err
	}
	if rel.State != models.TrustApproved {
		return &Outcome{Status: OutcomePendingTrust, Trust: rel}, nil
	}

	if err := e.Tokens.TransferTokens(ctx, tokenIDs, sender, receiver); err != nil {
		return nil, err
	}

	if err := e.Notifier.Publish(ctx, events.NewTransferEvent(tokenIDs, sender, receiver)); err != nil {
		slog.Error("failed to publish transfer executed event", "sender", sender.Name, "receiver", receiver.Name, "error", err)
	}

	now := time.Now()
	moved := make([]models.Token, len(tokenIDs))
	for i, tokenID := range tokenIDs {
		moved[i] = models.Token{Id: tokenID, OwnerWalletId: receiver.Id, UpdatedAt: now}
	}

	return &Outcome{Status: OutcomeExecuted, Tokens: moved, Trust: rel}, nil
}
