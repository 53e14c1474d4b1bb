package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// AudioHandler serves synthesized speech artifacts written by the notifier.
type AudioHandler struct {
	dir string
}

// NewAudioHandler creates an audio handler serving files from dir.
func NewAudioHandler(dir string) *AudioHandler {
	return &AudioHandler{dir: dir}
}

// Get handles GET /audio/{filename}. Only plain mp3 filenames are served;
// anything that could escape the audio directory is rejected.
func (h *AudioHandler) Get(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || filename != filepath.Base(filename) ||
		strings.Contains(filename, "..") || !strings.HasSuffix(filename, ".mp3") {
		respondError(w, http.StatusBadRequest, "invalid filename")
		return
	}

	path := filepath.Join(h.dir, filename)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		respondError(w, http.StatusNotFound, "audio file not found")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}
