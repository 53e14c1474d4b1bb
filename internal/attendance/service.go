// Package attendance orchestrates the recognition decision and the ledger
// write for one attendance attempt.
package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/adisurya/face-attendance/internal/database"
	"github.com/adisurya/face-attendance/internal/recognition"
)

// Status classifies the outcome of an attendance attempt.
type Status string

const (
	// StatusRecognized means the face matched an enrolled identity and an
	// entry event was appended to the ledger.
	StatusRecognized Status = "RECOGNIZED"
	// StatusNotRecognized means the best match exceeded the distance
	// threshold; nothing was written.
	StatusNotRecognized Status = "NOT_RECOGNIZED"
	// StatusAlreadyLogged means dedup is enabled and the identity already
	// has an entry event today; nothing was written.
	StatusAlreadyLogged Status = "ALREADY_LOGGED"
)

// Outcome is the result of one attendance attempt.
type Outcome struct {
	Status     Status
	IdentityID string
	Name       string
	Distance   float64
	Timestamp  string // set when an event was appended
}

// Service wires the recognition engine to the attendance ledger.
type Service struct {
	engine *recognition.Engine
	ledger database.AttendanceLog
	dedup  bool
}

// NewService creates an attendance service. When dedup is true, at most one
// ENTRY event per identity per calendar day is appended; when false every
// successful recognition is logged.
func NewService(engine *recognition.Engine, ledger database.AttendanceLog, dedup bool) *Service {
	return &Service{engine: engine, ledger: ledger, dedup: dedup}
}

// Record identifies the live embedding and, on a successful match, appends
// an ENTRY event stamped with the given server time. A non-match is a valid
// negative outcome, not an error; errors signal storage failures only and
// come with an outcome the caller can still present.
func (s *Service) Record(ctx context.Context, live []float32, now time.Time) (Outcome, error) {
	match := s.engine.Identify(live)

	if !match.Recognized() {
		return Outcome{
			Status:     StatusNotRecognized,
			IdentityID: recognition.UnknownID,
			Name:       recognition.UnknownID,
			Distance:   match.Distance,
		}, nil
	}

	outcome := Outcome{
		IdentityID: match.IdentityID,
		Name:       match.Name,
		Distance:   match.Distance,
	}

	if s.dedup {
		logged, err := s.ledger.HasLoggedToday(ctx, match.IdentityID, database.EventEntry)
		if err != nil {
			return outcome, fmt.Errorf("check today's attendance: %w", err)
		}
		if logged {
			outcome.Status = StatusAlreadyLogged
			return outcome, nil
		}
	}

	timestamp := now.Format(database.TimeFormat)
	if err := s.ledger.Append(ctx, match.IdentityID, match.Name, timestamp, database.EventEntry); err != nil {
		// The event is dropped, not retried: a visible failure beats a
		// silently duplicated ledger.
		return outcome, fmt.Errorf("append attendance event: %w", err)
	}

	outcome.Status = StatusRecognized
	outcome.Timestamp = timestamp
	return outcome, nil
}
