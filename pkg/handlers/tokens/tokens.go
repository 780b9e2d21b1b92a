package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/trusted-token-transfers/pkg/api"
	"github.com/chris/trusted-token-transfers/pkg/auth"
	"github.com/chris/trusted-token-transfers/pkg/mapping"
	"github.com/chris/trusted-token-transfers/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TokensHandler holds the dependencies for token handlers.
type TokensHandler struct {
	Tokens  storage.TokenReader
	Wallets storage.WalletStore
}

// NewTokensHandler creates a new TokensHandler.
func NewTokensHandler(tokens storage.TokenReader, wallets storage.WalletStore) *TokensHandler {
	return &TokensHandler{Tokens: tokens, Wallets: wallets}
}

// Get handles GET /tokens/{tokenId}. Only the current owner may read a token's
// custody record.
func (h *TokensHandler) Get(w http.ResponseWriter, r *http.Request) {
	tokenID, err := uuid.Parse(chi.URLParam(r, "tokenId"))
	if err != nil {
		http.Error(w, "Invalid token id", http.StatusBadRequest)
		return
	}

	token, err := h.Tokens.GetToken(r.Context(), tokenID.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to retrieve token: %v", err), http.StatusInternalServerError)
		return
	}

	actor := auth.ActingWallet(r.Context())
	if token.OwnerWalletId != actor.Id {
		http.Error(w, "Token is not held by the session wallet", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(mapping.ToApiToken(token, actor.Name)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// List handles GET /tokens: the session wallet's current holdings.
func (h *TokensHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActingWallet(r.Context())

	held, err := h.Tokens.ListTokensByOwner(r.Context(), actor.Id)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list tokens: %v", err), http.StatusInternalServerError)
		return
	}

	list := api.TokenList{Tokens: make([]api.Token, len(held))}
	for i := range held {
		list.Tokens[i] = *mapping.ToApiToken(&held[i], actor.Name)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(list); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
