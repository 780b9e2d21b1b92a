package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/chris/trusted-token-transfers/pkg/api"
	"github.com/chris/trusted-token-transfers/pkg/auth"
	"github.com/chris/trusted-token-transfers/pkg/storage"
)

// AuthHandler holds the dependencies for session issuance.
type AuthHandler struct {
	Wallets storage.WalletStore
	Tokens  *auth.TokenService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(wallets storage.WalletStore, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{Wallets: wallets, Tokens: tokens}
}

// Authenticate handles POST /auth: verifies the wallet password and mints a
// session token. Unknown wallets and bad passwords get the same answer.
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req api.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	wallet, err := h.Wallets.GetWalletByName(r.Context(), req.Wallet)
	if err != nil || !auth.CheckPassword(req.Password, wallet.PasswordHash) {
		http.Error(w, "Invalid wallet or password", http.StatusUnauthorized)
		return
	}

	token, err := h.Tokens.Mint(wallet.Id, wallet.Name)
	if err != nil {
		slog.Error("failed to mint session token", "wallet", wallet.Name, "error", err)
		http.Error(w, "Failed to issue session token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(api.AuthToken{Token: token}); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
