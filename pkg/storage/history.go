package storage

import (
	"context"

	"github.com/chris/trusted-token-transfers/pkg/models"
)

// HistoryReader defines the interface for reading transfer history.
type HistoryReader interface {
	// ListTransferRecordsByToken retrieves the transfer history for a single token,
	// most recent first.
	ListTransferRecordsByToken(ctx context.Context, tokenID string) ([]models.TransferRecord, error)
}
