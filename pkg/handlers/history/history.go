package history

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chris/trusted-token-transfers/pkg/api"
	"github.com/chris/trusted-token-transfers/pkg/mapping"
	"github.com/chris/trusted-token-transfers/pkg/storage"
	"github.com/google/uuid"
)

// HistoryHandler holds the dependencies for transfer history handlers.
type HistoryHandler struct {
	History storage.HistoryReader
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history storage.HistoryReader) *HistoryHandler {
	return &HistoryHandler{History: history}
}

// List handles GET /history?token=<uuid>.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	tokenID, err := uuid.Parse(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Missing or invalid token query parameter", http.StatusBadRequest)
		return
	}

	records, err := h.History.ListTransferRecordsByToken(r.Context(), tokenID.String())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transfer history: %v", err), http.StatusInternalServerError)
		return
	}

	body := api.History{History: make([]api.TransferRecord, len(records))}
	for i := range records {
		body.History[i] = *mapping.ToApiTransferRecord(&records[i])
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
