package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chris/trusted-token-transfers/pkg/api"
	"github.com/chris/trusted-token-transfers/pkg/auth"
	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/storage"
	"github.com/chris/trusted-token-transfers/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	hash, err := auth.HashPassword("hunter2")
	assert.NoError(t, err)

	wallet := &models.Wallet{Id: "wallet-1", Name: "walletA", PasswordHash: hash}

	post := func(h *AuthHandler, body api.AuthRequest) *httptest.ResponseRecorder {
		raw, _ := json.Marshal(body)
		req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewReader(raw))
		rr := httptest.NewRecorder()
		h.Authenticate(rr, req)
		return rr
	}

	t.Run("Success", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		wallets.On("GetWalletByName", mock.Anything, "walletA").Return(wallet, nil)

		rr := post(NewAuthHandler(wallets, tokens), api.AuthRequest{Wallet: "walletA", Password: "hunter2"})

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp api.AuthToken
		json.Unmarshal(rr.Body.Bytes(), &resp)
		claims, err := tokens.Verify(resp.Token)
		assert.NoError(t, err)
		assert.Equal(t, wallet.Id, claims.Subject)
		wallets.AssertExpectations(t)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		wallets.On("GetWalletByName", mock.Anything, "walletA").Return(wallet, nil)

		rr := post(NewAuthHandler(wallets, tokens), api.AuthRequest{Wallet: "walletA", Password: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Unknown Wallet", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		wallets.On("GetWalletByName", mock.Anything, "nobody").Return(nil, storage.ErrNotFound)

		rr := post(NewAuthHandler(wallets, tokens), api.AuthRequest{Wallet: "nobody", Password: "hunter2"})

		// Same answer as a wrong password so callers cannot probe for wallet names.
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Bad Request - Invalid JSON", func(t *testing.T) {
		h := NewAuthHandler(new(mocks.WalletStore), tokens)

		req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader("not-json"))
		rr := httptest.NewRecorder()
		h.Authenticate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
