package database

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AttendanceRepository provides SQLite-backed storage for the append-only
// attendance ledger.
type AttendanceRepository struct {
	store *Store
}

// NewAttendanceRepository creates a new attendance repository.
func NewAttendanceRepository(store *Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

// Append inserts a new attendance event. It deliberately does NOT consult
// HasLoggedToday: per-day deduplication is a policy decision that belongs to
// the caller, not a storage invariant.
func (r *AttendanceRepository) Append(ctx context.Context, identityID, name, timestamp string, eventType EventType) error {
	if identityID == "" {
		return errors.New("identity id is required")
	}
	if eventType == "" {
		eventType = EventEntry
	}

	query := `
		INSERT INTO attendance (identity_id, name, timestamp, event_type)
		VALUES (?, ?, ?, ?)
	`
	if _, err := r.store.db.ExecContext(ctx, query, identityID, name, timestamp, string(eventType)); err != nil {
		return fmt.Errorf("append attendance event for %q: %w", identityID, err)
	}
	return nil
}

// HasLoggedToday reports whether an event of the given type exists for the
// identity with a timestamp at or after the start of the current calendar
// day (local midnight, inclusive). Timestamps are textual and lexically
// sortable, so a string comparison against today's lower bound suffices.
func (r *AttendanceRepository) HasLoggedToday(ctx context.Context, identityID string, eventType EventType) (bool, error) {
	todayStart := time.Now().Format("2006-01-02") + " 00:00:00"

	query := `
		SELECT EXISTS(
			SELECT 1 FROM attendance
			WHERE identity_id = ? AND event_type = ? AND timestamp >= ?
		)
	`
	var exists bool
	if err := r.store.db.QueryRowContext(ctx, query, identityID, string(eventType), todayStart).Scan(&exists); err != nil {
		return false, fmt.Errorf("check attendance for %q: %w", identityID, err)
	}
	return exists, nil
}

// ListAll returns every attendance event ordered by timestamp descending,
// with log_id as the assignment-order tiebreak.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]AttendanceEvent, error) {
	query := `
		SELECT log_id, identity_id, name, timestamp, event_type
		FROM attendance
		ORDER BY timestamp DESC, log_id DESC
	`
	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query attendance events: %w", err)
	}
	defer rows.Close()

	var events []AttendanceEvent
	for rows.Next() {
		var ev AttendanceEvent
		var eventType string
		if err := rows.Scan(&ev.LogID, &ev.IdentityID, &ev.Name, &ev.Timestamp, &eventType); err != nil {
			return nil, fmt.Errorf("scan attendance event: %w", err)
		}
		ev.EventType = EventType(eventType)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance events: %w", err)
	}
	return events, nil
}

// ResetAll deletes every attendance event and resets the log_id counter.
func (r *AttendanceRepository) ResetAll(ctx context.Context) error {
	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM attendance"); err != nil {
		return fmt.Errorf("reset attendance log: %w", err)
	}
	r.store.resetSequence(ctx, "attendance")
	return nil
}
