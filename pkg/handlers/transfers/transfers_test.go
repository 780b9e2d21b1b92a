package transfers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/trusted-token-transfers/pkg/api"
	"github.com/chris/trusted-token-transfers/pkg/auth"
	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/storage"
	"github.com/chris/trusted-token-transfers/pkg/storage/mocks"
	"github.com/chris/trusted-token-transfers/pkg/transfer"
	"github.com/chris/trusted-token-transfers/pkg/trust"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var (
	sender   = &models.Wallet{Id: "wallet-sender", Name: "Sender"}
	receiver = &models.Wallet{Id: "wallet-receiver", Name: "Receiver"}
	tokenId  = uuid.MustParse("3e07a885-0c9f-45c5-be56-de18d0a77bf0")
)

func newHandler(wallets *mocks.WalletStore, tokens *mocks.TokenStore, trustStore *mocks.TrustStore) *TransfersHandler {
	trustEngine := trust.NewEngine(wallets, trustStore, nil)
	return NewTransfersHandler(wallets, tokens, transfer.NewEngine(tokens, trustEngine, nil))
}

func approvedTrust() *models.TrustRelationship {
	return &models.TrustRelationship{
		Id:                3,
		RequesterWalletId: sender.Id,
		RequesteeWalletId: receiver.Id,
		Type:              models.TrustTypeSend,
		State:             models.TrustApproved,
	}
}

func postTransfer(t *testing.T, h *TransfersHandler, body api.TransferRequest) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(raw))
	req = req.WithContext(auth.WithActingWallet(req.Context(), sender))
	rr := httptest.NewRecorder()
	h.Create(rr, req)
	return rr
}

func explicitRequest() api.TransferRequest {
	tokens := []openapi_types.UUID{tokenId}
	return api.TransferRequest{
		SenderWallet:   sender.Name,
		ReceiverWallet: receiver.Name,
		Tokens:         &tokens,
	}
}

func TestCreateTransfer(t *testing.T) {
	t.Run("Executed", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		tokens := new(mocks.TokenStore)
		trustStore := new(mocks.TrustStore)

		wallets.On("GetWalletByName", mock.Anything, receiver.Name).Return(receiver, nil)
		tokens.On("GetToken", mock.Anything, tokenId.String()).
			Return(&models.Token{Id: tokenId.String(), OwnerWalletId: sender.Id}, nil)
		trustStore.On("FindActiveTrustRelationship", mock.Anything, sender.Id, receiver.Id, models.TrustTypeSend).
			Return(approvedTrust(), nil)
		tokens.On("TransferTokens", mock.Anything, []string{tokenId.String()}, sender, receiver).Return(nil)

		rr := postTransfer(t, newHandler(wallets, tokens, trustStore), explicitRequest())

		assert.Equal(t, http.StatusOK, rr.Code)

		var result api.TransferResult
		json.Unmarshal(rr.Body.Bytes(), &result)
		assert.Equal(t, "executed", result.Status)
		assert.Equal(t, sender.Name, result.SenderWallet)
		assert.Len(t, result.Tokens, 1)
		tokens.AssertExpectations(t)
	})

	t.Run("Deferred on missing trust", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		tokens := new(mocks.TokenStore)
		trustStore := new(mocks.TrustStore)

		wallets.On("GetWalletByName", mock.Anything, receiver.Name).Return(receiver, nil)
		tokens.On("GetToken", mock.Anything, tokenId.String()).
			Return(&models.Token{Id: tokenId.String(), OwnerWalletId: sender.Id}, nil)
		trustStore.On("FindActiveTrustRelationship", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, storage.ErrNotFound)

		rr := postTransfer(t, newHandler(wallets, tokens, trustStore), explicitRequest())

		assert.Equal(t, http.StatusAccepted, rr.Code)

		var result api.TransferResult
		json.Unmarshal(rr.Body.Bytes(), &result)
		assert.Equal(t, "pending-trust-required", result.Status)
		tokens.AssertNotCalled(t, "TransferTokens", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Implicit form transfers full holdings", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		tokens := new(mocks.TokenStore)
		trustStore := new(mocks.TrustStore)

		held := []models.Token{{Id: tokenId.String(), OwnerWalletId: sender.Id}}
		wallets.On("GetWalletByName", mock.Anything, receiver.Name).Return(receiver, nil)
		tokens.On("ListTokensByOwner", mock.Anything, sender.Id).Return(held, nil)
		tokens.On("GetToken", mock.Anything, tokenId.String()).
			Return(&models.Token{Id: tokenId.String(), OwnerWalletId: sender.Id}, nil)
		trustStore.On("FindActiveTrustRelationship", mock.Anything, sender.Id, receiver.Id, models.TrustTypeSend).
			Return(approvedTrust(), nil)
		tokens.On("TransferTokens", mock.Anything, []string{tokenId.String()}, sender, receiver).Return(nil)

		rr := postTransfer(t, newHandler(wallets, tokens, trustStore), api.TransferRequest{
			SenderWallet:   sender.Name,
			ReceiverWallet: receiver.Name,
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		tokens.AssertExpectations(t)
	})

	t.Run("Forbidden - Sender Is Not Session Wallet", func(t *testing.T) {
		h := newHandler(new(mocks.WalletStore), new(mocks.TokenStore), new(mocks.TrustStore))

		rr := postTransfer(t, h, api.TransferRequest{
			SenderWallet:   "SomeoneElse",
			ReceiverWallet: receiver.Name,
		})

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Forbidden - Token Owned By Another Wallet", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		tokens := new(mocks.TokenStore)

		wallets.On("GetWalletByName", mock.Anything, receiver.Name).Return(receiver, nil)
		tokens.On("GetToken", mock.Anything, tokenId.String()).
			Return(&models.Token{Id: tokenId.String(), OwnerWalletId: "wallet-other"}, nil)

		rr := postTransfer(t, newHandler(wallets, tokens, new(mocks.TrustStore)), explicitRequest())

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Not Found - Unknown Receiver", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		wallets.On("GetWalletByName", mock.Anything, receiver.Name).Return(nil, storage.ErrNotFound)

		rr := postTransfer(t, newHandler(wallets, new(mocks.TokenStore), new(mocks.TrustStore)), explicitRequest())

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Not Found - Unknown Token", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		tokens := new(mocks.TokenStore)

		wallets.On("GetWalletByName", mock.Anything, receiver.Name).Return(receiver, nil)
		tokens.On("GetToken", mock.Anything, tokenId.String()).Return(nil, storage.ErrNotFound)

		rr := postTransfer(t, newHandler(wallets, tokens, new(mocks.TrustStore)), explicitRequest())

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Conflict - Custody Race", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		tokens := new(mocks.TokenStore)
		trustStore := new(mocks.TrustStore)

		wallets.On("GetWalletByName", mock.Anything, receiver.Name).Return(receiver, nil)
		tokens.On("GetToken", mock.Anything, tokenId.String()).
			Return(&models.Token{Id: tokenId.String(), OwnerWalletId: sender.Id}, nil)
		trustStore.On("FindActiveTrustRelationship", mock.Anything, sender.Id, receiver.Id, models.TrustTypeSend).
			Return(approvedTrust(), nil)
		tokens.On("TransferTokens", mock.Anything, []string{tokenId.String()}, sender, receiver).
			Return(storage.ErrConflict)

		rr := postTransfer(t, newHandler(wallets, tokens, trustStore), explicitRequest())

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Bad Request - Empty Token Set", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		tokens := new(mocks.TokenStore)

		wallets.On("GetWalletByName", mock.Anything, receiver.Name).Return(receiver, nil)
		tokens.On("ListTokensByOwner", mock.Anything, sender.Id).Return([]models.Token{}, nil)

		rr := postTransfer(t, newHandler(wallets, tokens, new(mocks.TrustStore)), api.TransferRequest{
			SenderWallet:   sender.Name,
			ReceiverWallet: receiver.Name,
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Bad Request - Duplicate Tokens", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		wallets.On("GetWalletByName", mock.Anything, receiver.Name).Return(receiver, nil)

		dupe := []openapi_types.UUID{tokenId, tokenId}
		rr := postTransfer(t, newHandler(wallets, new(mocks.TokenStore), new(mocks.TrustStore)), api.TransferRequest{
			SenderWallet:   sender.Name,
			ReceiverWallet: receiver.Name,
			Tokens:         &dupe,
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Bad Request - Oversized Token Set", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		wallets.On("GetWalletByName", mock.Anything, receiver.Name).Return(receiver, nil)

		oversized := make([]openapi_types.UUID, transfer.MaxTransferTokens+1)
		for i := range oversized {
			oversized[i] = uuid.New()
		}
		rr := postTransfer(t, newHandler(wallets, new(mocks.TokenStore), new(mocks.TrustStore)), api.TransferRequest{
			SenderWallet:   sender.Name,
			ReceiverWallet: receiver.Name,
			Tokens:         &oversized,
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Bad Request - Invalid JSON", func(t *testing.T) {
		h := newHandler(new(mocks.WalletStore), new(mocks.TokenStore), new(mocks.TrustStore))

		req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader("not-json"))
		req = req.WithContext(auth.WithActingWallet(req.Context(), sender))
		rr := httptest.NewRecorder()
		h.Create(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
