package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/storage"
	"github.com/chris/trusted-token-transfers/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTokenService(t *testing.T) {
	service := NewTokenService("test-secret", time.Hour)

	t.Run("Mint and verify round trip", func(t *testing.T) {
		signed, err := service.Mint("wallet-1", "walletA")
		assert.NoError(t, err)

		claims, err := service.Verify(signed)
		assert.NoError(t, err)
		assert.Equal(t, "wallet-1", claims.Subject)
		assert.Equal(t, "walletA", claims.WalletName)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		signed, err := service.Mint("wallet-1", "walletA")
		assert.NoError(t, err)

		other := NewTokenService("different-secret", time.Hour)
		_, err = other.Verify(signed)
		assert.Error(t, err)
	})

	t.Run("Expired token", func(t *testing.T) {
		shortLived := NewTokenService("test-secret", -time.Minute)
		signed, err := shortLived.Mint("wallet-1", "walletA")
		assert.NoError(t, err)

		_, err = shortLived.Verify(signed)
		assert.Error(t, err)
	})

	t.Run("Missing wallet id", func(t *testing.T) {
		_, err := service.Mint("", "walletA")
		assert.Error(t, err)
	})

	t.Run("Garbage token", func(t *testing.T) {
		_, err := service.Verify("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword("hunter2", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("hunter2", "not-a-hash"))
}

func TestRequireAPIKey(t *testing.T) {
	handler := RequireAPIKey("expected-key")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Valid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(APIKeyHeader, "expected-key")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Missing key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Wrong key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(APIKeyHeader, "something-else")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireWallet(t *testing.T) {
	service := NewTokenService("test-secret", time.Hour)
	wallet := &models.Wallet{Id: "wallet-1", Name: "walletA"}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acting := ActingWallet(r.Context())
		assert.NotNil(t, acting)
		assert.Equal(t, "wallet-1", acting.Id)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Valid session", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		wallets.On("GetWallet", mock.Anything, "wallet-1").Return(wallet, nil)

		signed, err := service.Mint(wallet.Id, wallet.Name)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()

		RequireWallet(service, wallets)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Missing bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		RequireWallet(service, new(mocks.WalletStore))(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Tampered token", func(t *testing.T) {
		other := NewTokenService("different-secret", time.Hour)
		signed, err := other.Mint(wallet.Id, wallet.Name)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()

		RequireWallet(service, new(mocks.WalletStore))(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Session wallet deleted", func(t *testing.T) {
		wallets := new(mocks.WalletStore)
		wallets.On("GetWallet", mock.Anything, "wallet-1").Return(nil, storage.ErrNotFound)

		signed, err := service.Mint(wallet.Id, wallet.Name)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()

		RequireWallet(service, wallets)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
