// Package notify turns attendance outcomes into spoken audio responses via
// an external text-to-speech service. Audio is a best-effort side effect:
// failures are logged, never propagated to the attendance flow.
package notify

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var messagesYAML []byte

// messages holds the spoken message templates.
type messages struct {
	Recognized    string `yaml:"recognized"`
	AlreadyLogged string `yaml:"already_logged"`
	NotRecognized string `yaml:"not_recognized"`
	NoFace        string `yaml:"no_face"`
	ServerError   string `yaml:"server_error"`
}

func loadMessages() messages {
	var m messages
	if err := yaml.Unmarshal(messagesYAML, &m); err != nil {
		// Embedded file, cannot fail in practice.
		panic("failed to unmarshal embedded messages.yaml: " + err.Error())
	}
	return m
}

// Notifier synthesizes spoken responses and stores them as mp3 artifacts.
// An empty TTS URL disables synthesis entirely.
type Notifier struct {
	ttsURL   string
	audioDir string
	lang     string
	client   *http.Client
	msgs     messages
}

// NewNotifier creates a notifier. ttsURL empty means disabled: Speak returns
// an empty URL and nothing is written.
func NewNotifier(ttsURL, audioDir, lang string) *Notifier {
	return &Notifier{
		ttsURL:   strings.TrimSuffix(ttsURL, "/"),
		audioDir: audioDir,
		lang:     lang,
		client:   &http.Client{},
		msgs:     loadMessages(),
	}
}

// Enabled reports whether a TTS service is configured.
func (n *Notifier) Enabled() bool {
	return n.ttsURL != ""
}

// AudioDir returns the directory holding generated audio artifacts.
func (n *Notifier) AudioDir() string {
	return n.audioDir
}

// MessageRecognized returns the spoken message for a successful attendance.
func (n *Notifier) MessageRecognized(name string) string {
	return fmt.Sprintf(n.msgs.Recognized, name)
}

// MessageAlreadyLogged returns the message for an identity already logged today.
func (n *Notifier) MessageAlreadyLogged(name string) string {
	return fmt.Sprintf(n.msgs.AlreadyLogged, name)
}

// MessageNotRecognized returns the message for an unrecognized face.
func (n *Notifier) MessageNotRecognized(distance float64) string {
	return fmt.Sprintf(n.msgs.NotRecognized, distance)
}

// MessageNoFace returns the message for an image without a detectable face.
func (n *Notifier) MessageNoFace() string {
	return n.msgs.NoFace
}

// MessageServerError returns the generic failure message.
func (n *Notifier) MessageServerError() string {
	return n.msgs.ServerError
}

// ttsRequest is the synthesis request body.
type ttsRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Speak synthesizes the message and stores it under the audio directory.
// It returns the relative URL of the artifact ("/audio/<file>"), or an empty
// string when TTS is disabled or synthesis fails. contextID tags the
// filename for troubleshooting.
func (n *Notifier) Speak(ctx context.Context, message, contextID string) string {
	if !n.Enabled() {
		return ""
	}

	audio, err := n.synthesize(ctx, message)
	if err != nil {
		log.Printf("tts synthesis failed: %v", err)
		return ""
	}

	if err := os.MkdirAll(n.audioDir, 0o755); err != nil {
		log.Printf("create audio directory: %v", err)
		return ""
	}

	filename := fmt.Sprintf("response_%s_%s.mp3", sanitizeContextID(contextID), uuid.NewString())
	if err := os.WriteFile(filepath.Join(n.audioDir, filename), audio, 0o644); err != nil {
		log.Printf("write audio file: %v", err)
		return ""
	}

	return "/audio/" + filename
}

// synthesize posts the message to the TTS service and returns the mp3 bytes.
func (n *Notifier) synthesize(ctx context.Context, message string) ([]byte, error) {
	reqBody, err := json.Marshal(ttsRequest{Text: message, Lang: n.lang})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.ttsURL+"/synthesize", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty audio returned")
	}

	return body, nil
}

// Cleanup removes the audio directory and everything in it. Called on
// server shutdown; the artifacts are throwaway.
func (n *Notifier) Cleanup() error {
	if n.audioDir == "" {
		return nil
	}
	if err := os.RemoveAll(n.audioDir); err != nil {
		return fmt.Errorf("remove audio directory: %w", err)
	}
	return nil
}

// sanitizeContextID keeps filenames safe regardless of what the caller
// passes as context.
func sanitizeContextID(s string) string {
	if s == "" {
		return "none"
	}
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
