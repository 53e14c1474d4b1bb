package config

import (
	"os"
	"strconv"
)

type Config struct {
	Database    DatabaseConfig
	Extractor   ExtractorConfig
	Recognition RecognitionConfig
	Attendance  AttendanceConfig
	Notify      NotifyConfig
}

type DatabaseConfig struct {
	Path string // path to the SQLite database file
}

type ExtractorConfig struct {
	URL string // face embedding service, defaults to http://localhost:8000
	Dim int    // embedding dimensionality, defaults to 512 (FaceNet/ResNet)
}

type RecognitionConfig struct {
	// Threshold is the maximum cosine DISTANCE accepted as a match.
	// Smaller distance = more similar, so the decision is
	// "accept when distance <= threshold". Keep that direction when tuning.
	Threshold float64
}

type AttendanceConfig struct {
	// Dedup enables the one-entry-per-person-per-day policy. Off by default:
	// every successful recognition is logged.
	Dedup bool
}

type NotifyConfig struct {
	TTSURL   string // text-to-speech service; empty disables audio responses
	AudioDir string // directory for generated mp3 files
	Lang     string // BCP 47 language tag for synthesized speech
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envBool reads an environment variable as a boolean ("1", "t", "true", ...).
// Returns the default value if the env var is unset, empty, or invalid.
func envBool(key string, defaultVal bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: envString("DATABASE_PATH", "database/attendance.db"),
		},
		Extractor: ExtractorConfig{
			URL: envString("EXTRACTOR_URL", "http://localhost:8000"),
			Dim: envInt("EMBEDDING_DIM", 512),
		},
		Recognition: RecognitionConfig{
			Threshold: envFloat("RECOGNITION_THRESHOLD", 0.95),
		},
		Attendance: AttendanceConfig{
			Dedup: envBool("ATTENDANCE_DEDUP", false),
		},
		Notify: NotifyConfig{
			TTSURL:   os.Getenv("TTS_URL"),
			AudioDir: envString("AUDIO_DIR", "audio_responses"),
			Lang:     envString("TTS_LANG", "id"),
		},
	}
}
