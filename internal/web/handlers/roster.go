package handlers

import (
	"log"
	"net/http"

	"github.com/adisurya/face-attendance/internal/database"
)

// RosterHandler exposes the enrolled identities over HTTP.
type RosterHandler struct {
	roster database.RosterStore
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(roster database.RosterStore) *RosterHandler {
	return &RosterHandler{roster: roster}
}

// identityJSON deliberately omits the reference embedding; it is large and
// of no use to API consumers.
type identityJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Dim         int    `json:"dim"`
	LastUpdated string `json:"last_updated"`
}

// List handles GET /api/v1/roster.
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	identities, err := h.roster.LoadAll(r.Context())
	if err != nil {
		log.Printf("loading roster failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load roster")
		return
	}

	out := make([]identityJSON, 0, len(identities))
	for _, id := range identities {
		out = append(out, identityJSON{
			ID:          id.ID,
			Name:        id.Name,
			Dim:         len(id.Embedding),
			LastUpdated: id.LastUpdated,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":      len(out),
		"identities": out,
	})
}

// Clear handles DELETE /api/v1/roster. It removes every enrolled identity;
// subsequent attendance attempts will not be recognized until retraining.
func (h *RosterHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.roster.ClearAll(r.Context()); err != nil {
		log.Printf("clearing roster failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to clear roster")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
