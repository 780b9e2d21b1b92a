package storage

import (
	"context"

	"github.com/chris/trusted-token-transfers/pkg/models"
)

// WalletStore defines the interface for the wallet directory.
type WalletStore interface {
	// GetWalletByName resolves a wallet by its unique name.
	GetWalletByName(ctx context.Context, name string) (*models.Wallet, error)

	// GetWallet retrieves a wallet by its id.
	GetWallet(ctx context.Context, walletID string) (*models.Wallet, error)

	// CreateWallet creates a new wallet.
	CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)
}
