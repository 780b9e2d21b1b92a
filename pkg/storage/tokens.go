package storage

import (
	"context"

	"github.com/chris/trusted-token-transfers/pkg/models"
)

// TokenReader defines the interface for reading token custody records.
type TokenReader interface {
	// GetToken retrieves a token by its id.
	GetToken(ctx context.Context, tokenID string) (*models.Token, error)

	// ListTokensByOwner retrieves all tokens currently owned by a wallet.
	ListTokensByOwner(ctx context.Context, walletID string) ([]models.Token, error)
}

// TokenCustodian defines the privileged interface for committing a custody change.
type TokenCustodian interface {
	// TransferTokens reassigns every token in tokenIDs from the sender wallet to the
	// receiver wallet, with compare-and-set semantics on each token's current owner.
	// The commit is all-or-nothing: if any token's owner changed since the caller's
	// ownership check, no token moves and ErrConflict is returned. A history record
	// is written for every moved token in the same transaction.
	TransferTokens(ctx context.Context, tokenIDs []string, sender, receiver *models.Wallet) error

	// CreateToken mints a new custody record. Used by seeding and provisioning.
	CreateToken(ctx context.Context, token *models.Token) (*models.Token, error)
}

// TokenStore combines the reader and custodian interfaces.
type TokenStore interface {
	TokenReader
	TokenCustodian
}
