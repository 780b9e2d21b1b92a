package trust

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/chris/trusted-token-transfers/pkg/api"
	"github.com/chris/trusted-token-transfers/pkg/auth"
	"github.com/chris/trusted-token-transfers/pkg/mapping"
	"github.com/chris/trusted-token-transfers/pkg/models"
	"github.com/chris/trusted-token-transfers/pkg/storage"
	"github.com/chris/trusted-token-transfers/pkg/trust"
	"github.com/go-chi/chi/v5"
)

// TrustHandler holds the dependencies for trust relationship handlers.
type TrustHandler struct {
	Engine *trust.Engine
}

// NewTrustHandler creates a new TrustHandler.
func NewTrustHandler(engine *trust.Engine) *TrustHandler {
	return &TrustHandler{Engine: engine}
}

// Create handles POST /trust_relationships.
func (h *TrustHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req api.TrustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	actor := auth.ActingWallet(r.Context())
	rel, err := h.Engine.Request(r.Context(), actor, req.Wallet, models.TrustRelationshipType(req.TrustRequestType))
	if err != nil {
		switch {
		case errors.Is(err, trust.ErrUnknownTrustType), errors.Is(err, trust.ErrSelfTrust):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Failed to create trust relationship: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiTrustRelationship(rel))
}

// List handles GET /trust_relationships.
func (h *TrustHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := auth.ActingWallet(r.Context())
	rels, err := h.Engine.List(r.Context(), actor)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list trust relationships: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiTrustRelationshipList(rels))
}

// Accept handles POST /trust_relationships/{relationshipId}/accept.
func (h *TrustHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Engine.Accept)
}

// Decline handles POST /trust_relationships/{relationshipId}/decline.
func (h *TrustHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Engine.Decline)
}

// Cancel handles POST /trust_relationships/{relationshipId}/cancel.
func (h *TrustHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Engine.Cancel)
}

func (h *TrustHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id int64, actor *models.Wallet) (*models.TrustRelationship, error)) {
	id, err := strconv.ParseInt(chi.URLParam(r, "relationshipId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid relationship id", http.StatusBadRequest)
		return
	}

	actor := auth.ActingWallet(r.Context())
	rel, err := op(r.Context(), id, actor)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, trust.ErrNotRequestee), errors.Is(err, trust.ErrNotRequester):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, trust.ErrNotPending), errors.Is(err, storage.ErrConflict):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to update trust relationship: %v", err), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiTrustRelationship(rel))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
