package handlers

import (
	"log"
	"net/http"

	"github.com/adisurya/face-attendance/internal/database"
)

// LogsHandler exposes the attendance ledger over HTTP.
type LogsHandler struct {
	ledger database.AttendanceLog
}

// NewLogsHandler creates a new logs handler.
func NewLogsHandler(ledger database.AttendanceLog) *LogsHandler {
	return &LogsHandler{ledger: ledger}
}

type attendanceEventJSON struct {
	LogID      int64  `json:"log_id"`
	IdentityID string `json:"identity_id"`
	Name       string `json:"name"`
	Timestamp  string `json:"timestamp"`
	EventType  string `json:"event_type"`
}

// List handles GET /api/v1/attendance/logs. Events come back newest first.
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.ledger.ListAll(r.Context())
	if err != nil {
		log.Printf("listing attendance events failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list attendance events")
		return
	}

	out := make([]attendanceEventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, attendanceEventJSON{
			LogID:      e.LogID,
			IdentityID: e.IdentityID,
			Name:       e.Name,
			Timestamp:  e.Timestamp,
			EventType:  string(e.EventType),
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":  len(out),
		"events": out,
	})
}

// Reset handles DELETE /api/v1/attendance/logs. It removes every event and
// restarts event numbering from 1.
func (h *LogsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.ResetAll(r.Context()); err != nil {
		log.Printf("resetting attendance log failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to reset attendance log")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
