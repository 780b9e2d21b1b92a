package transfers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/trusted-token-transfers/pkg/api"
	"github.com/chris/trusted-token-transfers/pkg/auth"
	"github.com/chris/trusted-token-transfers/pkg/mapping"
	"github.com/chris/trusted-token-transfers/pkg/storage"
	"github.com/chris/trusted-token-transfers/pkg/transfer"
)

// TransfersHandler holds the dependencies for transfer handlers.
type TransfersHandler struct {
	Wallets storage.WalletStore
	Tokens  storage.TokenReader
	Engine  *transfer.Engine
}

// NewTransfersHandler creates a new TransfersHandler.
func NewTransfersHandler(wallets storage.WalletStore, tokens storage.TokenReader, engine *transfer.Engine) *TransfersHandler {
	return &TransfersHandler{Wallets: wallets, Tokens: tokens, Engine: engine}
}

// Create handles POST /transfers. An executed transfer answers 200; a valid
// transfer deferred on trust answers 202 and the caller resubmits after the
// counterparty approves.
func (h *TransfersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	sender := auth.ActingWallet(r.Context())
	if req.SenderWallet != sender.Name {
		http.Error(w, "Only the session wallet may send its tokens", http.StatusForbidden)
		return
	}

	receiver, err := h.Wallets.GetWalletByName(r.Context(), req.ReceiverWallet)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to resolve receiver wallet: %v", err), http.StatusInternalServerError)
		return
	}

	var tokenIDs []string
	if req.Tokens != nil {
		for _, id := range *req.Tokens {
			tokenIDs = append(tokenIDs, id.String())
		}
	} else {
		// Implicit form: transfer the sender's full holdings.
		held, err := h.Tokens.ListTokensByOwner(r.Context(), sender.Id)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to list sender's tokens: %v", err), http.StatusInternalServerError)
			return
		}
		for _, token := range held {
			tokenIDs = append(tokenIDs, token.Id)
		}
	}

	outcome, err := h.Engine.Transfer(r.Context(), sender, receiver, tokenIDs)
	if err != nil {
		switch {
		case errors.Is(err, transfer.ErrEmptyTokenSet),
			errors.Is(err, transfer.ErrTooManyTokens),
			errors.Is(err, transfer.ErrDuplicateToken):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, transfer.ErrTokenNotHeld):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, storage.ErrConflict):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to execute transfer: %v", err), http.StatusInternalServerError)
		}
		return
	}

	status := http.StatusOK
	if outcome.Status == transfer.OutcomePendingTrust {
		status = http.StatusAccepted
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(mapping.ToApiTransferResult(outcome, sender.Name, receiver.Name)); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
