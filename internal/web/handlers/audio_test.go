package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestAudioGet_ServesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "response_A001_x.mp3"), []byte("mp3 bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	handler := NewAudioHandler(dir)

	req := requestWithChiParams(
		httptest.NewRequest(http.MethodGet, "/audio/response_A001_x.mp3", nil),
		map[string]string{"filename": "response_A001_x.mp3"},
	)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	assertStatusCode(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("expected audio/mpeg, got %s", ct)
	}
	if rec.Body.String() != "mp3 bytes" {
		t.Errorf("unexpected body: %q", rec.Body.String())
	}
}

func TestAudioGet_NotFound(t *testing.T) {
	handler := NewAudioHandler(t.TempDir())

	req := requestWithChiParams(
		httptest.NewRequest(http.MethodGet, "/audio/missing.mp3", nil),
		map[string]string{"filename": "missing.mp3"},
	)
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	assertStatusCode(t, rec, http.StatusNotFound)
}

func TestAudioGet_RejectsUnsafeFilenames(t *testing.T) {
	handler := NewAudioHandler(t.TempDir())

	for _, filename := range []string{
		"",
		"../secret.mp3",
		"..%2Fsecret.mp3",
		"nested/file.mp3",
		"notes.txt",
	} {
		req := requestWithChiParams(
			httptest.NewRequest(http.MethodGet, "/audio/x", nil),
			map[string]string{"filename": filename},
		)
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("filename %q: expected 400, got %d", filename, rec.Code)
		}
	}
}
