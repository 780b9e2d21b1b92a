package trust

import (
	"context"
	"testing"

	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/storage"
	"github.com/chris/trusted-token-transfers/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	wallet1 = &models.Wallet{Id: "wallet-1", Name: "Wallet1"}
	wallet2 = &models.Wallet{Id: "wallet-2", Name: "Wallet2"}
	wallet3 = &models.Wallet{Id: "wallet-3", Name: "Wallet3"}
)

func requestedRelationship() *models.TrustRelationship {
	return &models.TrustRelationship{
		Id:                  7,
		RequesterWalletId:   wallet1.Id,
		RequesterWalletName: wallet1.Name,
		RequesteeWalletId:   wallet2.Id,
		RequesteeWalletName: wallet2.Name,
		Type:                models.TrustTypeSend,
		State:               models.TrustRequested,
	}
}

func TestRequestTrust(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(wallets, trustStore, nil)

		wallets.On("GetWalletByName", mock.Anything, "Wallet2").Return(wallet2, nil)
		trustStore.On("FindActiveTrustRelationship", mock.Anything, wallet1.Id, wallet2.Id, models.TrustTypeSend).
			Return(nil, storage.ErrNotFound)
		trustStore.On("CreateTrustRelationship", mock.Anything, mock.MatchedBy(func(rel *models.TrustRelationship) bool {
			return rel.RequesterWalletId == wallet1.Id && rel.RequesteeWalletId == wallet2.Id && rel.Type == models.TrustTypeSend
		})).Return(requestedRelationship(), nil)

		rel, err := engine.Request(context.Background(), wallet1, "Wallet2", models.TrustTypeSend)

		assert.NoError(t, err)
		assert.Equal(t, models.TrustRequested, rel.State)
		trustStore.AssertExpectations(t)
	})

	t.Run("Re-request returns existing relationship", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(wallets, trustStore, nil)

		existing := requestedRelationship()
		wallets.On("GetWalletByName", mock.Anything, "Wallet2").Return(wallet2, nil)
		trustStore.On("FindActiveTrustRelationship", mock.Anything, wallet1.Id, wallet2.Id, models.TrustTypeSend).
			Return(existing, nil)

		rel, err := engine.Request(context.Background(), wallet1, "Wallet2", models.TrustTypeSend)

		assert.NoError(t, err)
		assert.Equal(t, existing.Id, rel.Id)
		trustStore.AssertNotCalled(t, "CreateTrustRelationship", mock.Anything, mock.Anything)
	})

	t.Run("Unknown trust type", func(t *testing.T) {
		engine := NewEngine(new(mocks.WalletStore), new(mocks.TrustStore), nil)

		_, err := engine.Request(context.Background(), wallet1, "Wallet2", models.TrustRelationshipType("wrongtype"))

		assert.ErrorIs(t, err, ErrUnknownTrustType)
	})

	t.Run("Reserved trust type is not requestable", func(t *testing.T) {
		engine := NewEngine(new(mocks.WalletStore), new(mocks.TrustStore), nil)

		_, err := engine.Request(context.Background(), wallet1, "Wallet2", models.TrustTypeManage)

		assert.ErrorIs(t, err, ErrUnknownTrustType)
	})

	t.Run("Unknown counterparty wallet", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		engine := NewEngine(wallets, new(mocks.TrustStore), nil)

		wallets.On("GetWalletByName", mock.Anything, "Nobody").Return(nil, storage.ErrNotFound)

		_, err := engine.Request(context.Background(), wallet1, "Nobody", models.TrustTypeSend)

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Self trust rejected", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		engine := NewEngine(wallets, new(mocks.TrustStore), nil)

		wallets.On("GetWalletByName", mock.Anything, "Wallet1").Return(wallet1, nil)

		_, err := engine.Request(context.Background(), wallet1, "Wallet1", models.TrustTypeSend)

		assert.ErrorIs(t, err, ErrSelfTrust)
	})
}

func TestAcceptTrust(t *testing.T) {
	t.Run("Requestee accepts a requested relationship", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		rel := requestedRelationship()
		approved := requestedRelationship()
		approved.State = models.TrustApproved

		trustStore.On("GetTrustRelationship", mock.Anything, rel.Id).Return(rel, nil)
		trustStore.On("UpdateTrustState", mock.Anything, rel.Id, models.TrustRequested, models.TrustApproved).
			Return(approved, nil)

		updated, err := engine.Accept(context.Background(), rel.Id, wallet2)

		assert.NoError(t, err)
		assert.Equal(t, models.TrustApproved, updated.State)
		trustStore.AssertExpectations(t)
	})

	t.Run("Only the requestee may accept", func(t *testing.T) {
		for _, state := range []models.TrustState{models.TrustRequested, models.TrustApproved, models.TrustDeclined} {
			trustStore := new(mocks.TrustStore)
			engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

			rel := requestedRelationship()
			rel.State = state
			trustStore.On("GetTrustRelationship", mock.Anything, rel.Id).Return(rel, nil)

			_, err := engine.Accept(context.Background(), rel.Id, wallet3)

			assert.ErrorIs(t, err, ErrNotRequestee, "state %s", state)
			trustStore.AssertNotCalled(t, "UpdateTrustState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("Requester cannot accept their own request", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		rel := requestedRelationship()
		trustStore.On("GetTrustRelationship", mock.Anything, rel.Id).Return(rel, nil)

		_, err := engine.Accept(context.Background(), rel.Id, wallet1)

		assert.ErrorIs(t, err, ErrNotRequestee)
	})

	t.Run("Accept on approved relationship is an idempotent no-op", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		rel := requestedRelationship()
		rel.State = models.TrustApproved
		trustStore.On("GetTrustRelationship", mock.Anything, rel.Id).Return(rel, nil)

		updated, err := engine.Accept(context.Background(), rel.Id, wallet2)

		assert.NoError(t, err)
		assert.Equal(t, models.TrustApproved, updated.State)
		trustStore.AssertNotCalled(t, "UpdateTrustState", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Accept on terminal relationship conflicts", func(t *testing.T) {
		for _, state := range []models.TrustState{models.TrustDeclined, models.TrustCanceled} {
			trustStore := new(mocks.TrustStore)
			engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

			rel := requestedRelationship()
			rel.State = state
			trustStore.On("GetTrustRelationship", mock.Anything, rel.Id).Return(rel, nil)

			_, err := engine.Accept(context.Background(), rel.Id, wallet2)

			assert.ErrorIs(t, err, ErrNotPending, "state %s", state)
		}
	})

	t.Run("Unknown relationship", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		trustStore.On("GetTrustRelationship", mock.Anything, int64(99)).Return(nil, storage.ErrNotFound)

		_, err := engine.Accept(context.Background(), 99, wallet2)

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDeclineTrust(t *testing.T) {
	t.Run("Requestee declines", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		rel := requestedRelationship()
		declined := requestedRelationship()
		declined.State = models.TrustDeclined

		trustStore.On("GetTrustRelationship", mock.Anything, rel.Id).Return(rel, nil)
		trustStore.On("UpdateTrustState", mock.Anything, rel.Id, models.TrustRequested, models.TrustDeclined).
			Return(declined, nil)

		updated, err := engine.Decline(context.Background(), rel.Id, wallet2)

		assert.NoError(t, err)
		assert.Equal(t, models.TrustDeclined, updated.State)
	})

	t.Run("Requester cannot decline", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		rel := requestedRelationship()
		trustStore.On("GetTrustRelationship", mock.Anything, rel.Id).Return(rel, nil)

		_, err := engine.Decline(context.Background(), rel.Id, wallet1)

		assert.ErrorIs(t, err, ErrNotRequestee)
	})

	t.Run("Decline on approved relationship conflicts", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		rel := requestedRelationship()
		rel.State = models.TrustApproved
		trustStore.On("GetTrustRelationship", mock.Anything, rel.Id).Return(rel, nil)

		_, err := engine.Decline(context.Background(), rel.Id, wallet2)

		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestCancelTrust(t *testing.T) {
	t.Run("Requester cancels", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		rel := requestedRelationship()
		canceled := requestedRelationship()
		canceled.State = models.TrustCanceled

		trustStore.On("GetTrustRelationship", mock.Anything, rel.Id).Return(rel, nil)
		trustStore.On("UpdateTrustState", mock.Anything, rel.Id, models.TrustRequested, models.TrustCanceled).
			Return(canceled, nil)

		updated, err := engine.Cancel(context.Background(), rel.Id, wallet1)

		assert.NoError(t, err)
		assert.Equal(t, models.TrustCanceled, updated.State)
	})

	t.Run("Requestee cannot cancel", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		rel := requestedRelationship()
		trustStore.On("GetTrustRelationship", mock.Anything, rel.Id).Return(rel, nil)

		_, err := engine.Cancel(context.Background(), rel.Id, wallet2)

		assert.ErrorIs(t, err, ErrNotRequester)
	})
}

func TestFindAuthorization(t *testing.T) {
	t.Run("Send-type relationship opened by the sender", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		approved := requestedRelationship()
		approved.State = models.TrustApproved
		trustStore.On("FindActiveTrustRelationship", mock.Anything, wallet1.Id, wallet2.Id, models.TrustTypeSend).
			Return(approved, nil)

		rel, err := engine.FindAuthorization(context.Background(), wallet1.Id, wallet2.Id)

		assert.NoError(t, err)
		assert.Equal(t, models.TrustApproved, rel.State)
	})

	t.Run("Mirrored receive-type relationship opened by the receiver", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		mirrored := &models.TrustRelationship{
			Id:                8,
			RequesterWalletId: wallet2.Id,
			RequesteeWalletId: wallet1.Id,
			Type:              models.TrustTypeReceive,
			State:             models.TrustApproved,
		}
		trustStore.On("FindActiveTrustRelationship", mock.Anything, wallet1.Id, wallet2.Id, models.TrustTypeSend).
			Return(nil, storage.ErrNotFound)
		trustStore.On("FindActiveTrustRelationship", mock.Anything, wallet2.Id, wallet1.Id, models.TrustTypeReceive).
			Return(mirrored, nil)

		rel, err := engine.FindAuthorization(context.Background(), wallet1.Id, wallet2.Id)

		assert.NoError(t, err)
		assert.Equal(t, mirrored.Id, rel.Id)
	})

	t.Run("Approved mirror outranks a pending request", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		pending := requestedRelationship()
		mirrored := &models.TrustRelationship{
			Id:                8,
			RequesterWalletId: wallet2.Id,
			RequesteeWalletId: wallet1.Id,
			Type:              models.TrustTypeReceive,
			State:             models.TrustApproved,
		}
		trustStore.On("FindActiveTrustRelationship", mock.Anything, wallet1.Id, wallet2.Id, models.TrustTypeSend).
			Return(pending, nil)
		trustStore.On("FindActiveTrustRelationship", mock.Anything, wallet2.Id, wallet1.Id, models.TrustTypeReceive).
			Return(mirrored, nil)

		rel, err := engine.FindAuthorization(context.Background(), wallet1.Id, wallet2.Id)

		assert.NoError(t, err)
		assert.Equal(t, models.TrustApproved, rel.State)
	})

	t.Run("No covering relationship", func(t *testing.T) {
		trustStore := new(mocks.TrustStore)
		engine := NewEngine(new(mocks.WalletStore), trustStore, nil)

		trustStore.On("FindActiveTrustRelationship", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, storage.ErrNotFound)

		_, err := engine.FindAuthorization(context.Background(), wallet1.Id, wallet2.Id)

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
