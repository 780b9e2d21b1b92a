package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/storage"
)

// APIKeyHeader is the header carrying the application api key.
const APIKeyHeader = "wallet-api-key"

type contextKey string

const walletContextKey contextKey = "acting_wallet"

// RequireAPIKey rejects requests that do not carry the expected api key header.
func RequireAPIKey(apiKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(APIKeyHeader) != apiKey {
				http.Error(w, "Invalid or missing api key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireWallet verifies the bearer token, loads the acting wallet, and stores
// it on the request context. Engine operations take the acting wallet explicitly
// as a parameter; this middleware is the only place it is read from transport
// state.
func RequireWallet(tokens *TokenService, wallets storage.WalletStore) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				http.Error(w, "Invalid session token", http.StatusUnauthorized)
				return
			}

			wallet, err := wallets.GetWallet(r.Context(), claims.Subject)
			if err != nil {
				http.Error(w, "Session wallet no longer exists", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), walletContextKey, wallet)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActingWallet returns the authenticated wallet stored by RequireWallet, or nil.
func ActingWallet(ctx context.Context) *models.Wallet {
	wallet, _ := ctx.Value(walletContextKey).(*models.Wallet)
	return wallet
}

// WithActingWallet returns a context carrying the wallet. Exposed for handler tests.
func WithActingWallet(ctx context.Context, wallet *models.Wallet) context.Context {
	return context.WithValue(ctx, walletContextKey, wallet)
}
