package storage

import (
	"context"

	"github.com/chris/trusted-token-transfers/pkg/models"
)

// TrustStore defines the interface for the durable trust relationship records.
type TrustStore interface {
	// CreateTrustRelationship persists a new relationship in state "requested".
	// The store guarantees at most one active (requested or approved) relationship
	// per (requester, requestee, type) tuple: if a concurrent request won the race,
	// the already-existing active relationship is returned instead of a duplicate.
	CreateTrustRelationship(ctx context.Context, rel *models.TrustRelationship) (*models.TrustRelationship, error)

	// GetTrustRelationship retrieves a relationship by its id.
	GetTrustRelationship(ctx context.Context, id int64) (*models.TrustRelationship, error)

	// ListTrustRelationshipsByWallet returns every relationship in which the wallet
	// is requester or requestee, any state, in creation order.
	ListTrustRelationshipsByWallet(ctx context.Context, walletID string) ([]models.TrustRelationship, error)

	// FindActiveTrustRelationship returns the single active relationship for the
	// given tuple, or ErrNotFound.
	FindActiveTrustRelationship(ctx context.Context, requesterID, requesteeID string, relType models.TrustRelationshipType) (*models.TrustRelationship, error)

	// UpdateTrustState transitions a relationship from one state to another with
	// compare-and-set semantics: ErrConflict if the current state is not `from`.
	UpdateTrustState(ctx context.Context, id int64, from, to models.TrustState) (*models.TrustRelationship, error)
}
