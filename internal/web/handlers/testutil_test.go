package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adisurya/face-attendance/internal/attendance"
	"github.com/adisurya/face-attendance/internal/database"
	"github.com/adisurya/face-attendance/internal/database/mock"
	"github.com/adisurya/face-attendance/internal/notify"
	"github.com/adisurya/face-attendance/internal/recognition"
	"github.com/go-chi/chi/v5"
)

// stubExtractor returns a fixed embedding or error without touching the network.
type stubExtractor struct {
	embedding []float32
	err       error
}

func (s *stubExtractor) Extract(ctx context.Context, imageData []byte) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.embedding, nil
}

// testRoster returns two enrolled identities with orthogonal embeddings.
func testRoster() []database.IdentityRecord {
	return []database.IdentityRecord{
		{ID: "A001", Name: "Ana", Embedding: []float32{1, 0, 0}},
		{ID: "B002", Name: "Budi", Embedding: []float32{0, 1, 0}},
	}
}

// disabledNotifier returns a notifier with TTS turned off so handlers never
// reach for a speech service during tests.
func disabledNotifier(t *testing.T) *notify.Notifier {
	t.Helper()
	return notify.NewNotifier("", t.TempDir(), "id")
}

// newAttendanceHandler wires an attendance handler over mocks.
func newAttendanceHandler(t *testing.T, ext FaceExtractor, ledger *mock.MockAttendanceLog, dedup bool) *AttendanceHandler {
	t.Helper()
	engine := recognition.NewEngine(testRoster(), 0.95)
	service := attendance.NewService(engine, ledger, dedup)
	return NewAttendanceHandler(service, ext, disabledNotifier(t))
}

// multipartImageRequest builds a POST request with an image file part.
func multipartImageRequest(t *testing.T, path string, imageData []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "capture.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(imageData); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertJSONError checks if the response is a JSON error with the expected message
func assertJSONError(t *testing.T, recorder *httptest.ResponseRecorder, expectedMessage string) {
	t.Helper()
	var result map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result["error"] != expectedMessage {
		t.Errorf("expected error '%s', got '%s'", expectedMessage, result["error"])
	}
}
