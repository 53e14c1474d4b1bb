package database

import "context"

// RosterReader provides read-only access to enrolled identities.
type RosterReader interface {
	// LoadAll returns every enrolled identity with its reference embedding
	LoadAll(ctx context.Context) ([]IdentityRecord, error)
	// Count returns the number of enrolled identities
	Count(ctx context.Context) (int, error)
}

// RosterStore provides full access to enrolled identities.
type RosterStore interface {
	RosterReader

	// Upsert stores or replaces the reference embedding for an identity
	Upsert(ctx context.Context, id, name string, embedding []float32) error
	// ClearAll deletes every identity and resets auto-numbering
	ClearAll(ctx context.Context) error
}

// AttendanceLog provides access to the append-only attendance ledger.
type AttendanceLog interface {
	// Append inserts a new attendance event; dedup is the caller's policy
	Append(ctx context.Context, identityID, name, timestamp string, eventType EventType) error
	// HasLoggedToday checks for an event of the given type since local midnight
	HasLoggedToday(ctx context.Context, identityID string, eventType EventType) (bool, error)
	// ListAll returns all events ordered by timestamp descending
	ListAll(ctx context.Context) ([]AttendanceEvent, error)
	// ResetAll deletes every event and resets the sequence counter
	ResetAll(ctx context.Context) error
}

// Interface guards.
var (
	_ RosterStore   = (*IdentityRepository)(nil)
	_ AttendanceLog = (*AttendanceRepository)(nil)
)
