package doorkeep

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// AdminTokenHeader carries the shared token for the lookup endpoint.
const AdminTokenHeader = "x-admin-token"

// LookupHandler serves stored verification records to the bot. It is not
// part of the handshake itself, just the read side other collaborators use.
type LookupHandler struct {
	store      IdentityRecordStore
	adminToken string
}

func NewLookupHandler(store IdentityRecordStore, adminToken string) *LookupHandler {
	return &LookupHandler{store: store, adminToken: adminToken}
}

// ServeHTTP handles GET /api/get-user?discord_id=<id>.
func (h *LookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(AdminTokenHeader)
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.adminToken)) != 1 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	discordID := r.URL.Query().Get("discord_id")
	if discordID == "" {
		http.Error(w, "Missing discord_id parameter", http.StatusBadRequest)
		return
	}

	rec, err := h.store.GetRecord(r.Context(), discordID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found."})
			return
		}
		slog.Error("record lookup failed", "discord_id", discordID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("failed to encode response", "err", err)
	}
}
