package database

// TimeFormat is the textual, lexically sortable timestamp layout used in the
// attendance table and for identity last_updated values.
const TimeFormat = "2006-01-02 15:04:05"

// EventType enumerates the attendance event kinds.
type EventType string

const (
	EventEntry EventType = "ENTRY"
	EventExit  EventType = "EXIT"
)

// IdentityRecord represents an enrolled person and their reference embedding.
type IdentityRecord struct {
	ID          string
	Name        string
	Embedding   []float32
	LastUpdated string
}

// AttendanceEvent represents one row of the append-only attendance ledger.
type AttendanceEvent struct {
	LogID      int64
	IdentityID string
	Name       string
	Timestamp  string
	EventType  EventType
}
