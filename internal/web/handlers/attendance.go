package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/adisurya/face-attendance/internal/attendance"
	"github.com/adisurya/face-attendance/internal/extractor"
	"github.com/adisurya/face-attendance/internal/notify"
)

// maxUploadSize limits attendance image uploads to 10 MB.
const maxUploadSize = 10 << 20

// FaceExtractor produces a face embedding from raw image bytes.
type FaceExtractor interface {
	Extract(ctx context.Context, imageData []byte) ([]float32, error)
}

// AttendanceHandler handles attendance check-in requests.
type AttendanceHandler struct {
	service   *attendance.Service
	extractor FaceExtractor
	notifier  *notify.Notifier
}

// NewAttendanceHandler creates a new attendance handler.
func NewAttendanceHandler(service *attendance.Service, ext FaceExtractor, notifier *notify.Notifier) *AttendanceHandler {
	return &AttendanceHandler{
		service:   service,
		extractor: ext,
		notifier:  notifier,
	}
}

// attendanceResponse is the JSON body for every attendance attempt.
type attendanceResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	IdentityID     string `json:"identity_id,omitempty"`
	Name           string `json:"name,omitempty"`
	Distance       string `json:"distance,omitempty"`
	Timestamp      string `json:"timestamp,omitempty"`
	AudioURL       string `json:"audio_url,omitempty"`
	ProcessingTime string `json:"processing_time"`
}

// Record handles POST /api/v1/attendance. It accepts a multipart image
// upload, extracts the face embedding, matches it against the enrolled
// roster and appends an entry event on success.
func (h *AttendanceHandler) Record(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read image")
		return
	}

	embedding, err := h.extractor.Extract(r.Context(), imageData)
	if err != nil {
		if errors.Is(err, extractor.ErrNoFace) {
			msg := h.notifier.MessageNoFace()
			respondJSON(w, http.StatusBadRequest, attendanceResponse{
				Status:         "NO_FACE",
				Message:        msg,
				AudioURL:       h.notifier.Speak(r.Context(), msg, "no_face"),
				ProcessingTime: elapsed(start),
			})
			return
		}
		log.Printf("embedding extraction failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, attendanceResponse{
			Status:         "ERROR",
			Message:        h.notifier.MessageServerError(),
			ProcessingTime: elapsed(start),
		})
		return
	}

	outcome, err := h.service.Record(r.Context(), embedding, time.Now())
	if err != nil {
		log.Printf("attendance attempt for %s failed: %v", sanitizeForLog(outcome.IdentityID), err)
		respondJSON(w, http.StatusInternalServerError, attendanceResponse{
			Status:         "ERROR",
			Message:        h.notifier.MessageServerError(),
			IdentityID:     outcome.IdentityID,
			Name:           outcome.Name,
			ProcessingTime: elapsed(start),
		})
		return
	}

	resp := attendanceResponse{
		Status:     string(outcome.Status),
		IdentityID: outcome.IdentityID,
		Name:       outcome.Name,
		Distance:   fmt.Sprintf("%.4f", outcome.Distance),
		Timestamp:  outcome.Timestamp,
	}

	var status int
	switch outcome.Status {
	case attendance.StatusRecognized:
		status = http.StatusOK
		resp.Message = h.notifier.MessageRecognized(outcome.Name)
		resp.AudioURL = h.notifier.Speak(r.Context(), resp.Message, outcome.IdentityID)
	case attendance.StatusAlreadyLogged:
		status = http.StatusConflict
		resp.Message = h.notifier.MessageAlreadyLogged(outcome.Name)
		resp.AudioURL = h.notifier.Speak(r.Context(), resp.Message, outcome.IdentityID)
	default:
		status = http.StatusForbidden
		resp.Message = h.notifier.MessageNotRecognized(outcome.Distance)
		resp.AudioURL = h.notifier.Speak(r.Context(), resp.Message, "unknown")
	}

	resp.ProcessingTime = elapsed(start)
	respondJSON(w, status, resp)
}

func elapsed(start time.Time) string {
	return fmt.Sprintf("%.3fs", time.Since(start).Seconds())
}
