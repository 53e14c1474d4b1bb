// Package mock provides mock implementations of database interfaces for testing.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/adisurya/face-attendance/internal/database"
)

// MockRosterStore is a mock implementation of database.RosterStore
type MockRosterStore struct {
	mu      sync.RWMutex
	records map[string]database.IdentityRecord
	order   []string

	// Error injection
	UpsertError  error
	LoadAllError error
	CountError   error
	ClearError   error
}

// NewMockRosterStore creates a new mock roster store
func NewMockRosterStore() *MockRosterStore {
	return &MockRosterStore{
		records: make(map[string]database.IdentityRecord),
	}
}

// Upsert stores or replaces an identity record
func (m *MockRosterStore) Upsert(ctx context.Context, id, name string, embedding []float32) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		m.order = append(m.order, id)
	}
	m.records[id] = database.IdentityRecord{
		ID:          id,
		Name:        name,
		Embedding:   append([]float32(nil), embedding...),
		LastUpdated: time.Now().Format(database.TimeFormat),
	}
	return nil
}

// LoadAll returns every record in insertion order
func (m *MockRosterStore) LoadAll(ctx context.Context) ([]database.IdentityRecord, error) {
	if m.LoadAllError != nil {
		return nil, m.LoadAllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]database.IdentityRecord, 0, len(m.order))
	for _, id := range m.order {
		records = append(records, m.records[id])
	}
	return records, nil
}

// Count returns the number of stored records
func (m *MockRosterStore) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records), nil
}

// ClearAll removes every record
func (m *MockRosterStore) ClearAll(ctx context.Context) error {
	if m.ClearError != nil {
		return m.ClearError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]database.IdentityRecord)
	m.order = nil
	return nil
}

// MockAttendanceLog is a mock implementation of database.AttendanceLog
type MockAttendanceLog struct {
	mu     sync.RWMutex
	events []database.AttendanceEvent
	nextID int64

	// Error injection
	AppendError error
	HasError    error
	ListError   error
	ResetError  error
}

// NewMockAttendanceLog creates a new mock attendance log
func NewMockAttendanceLog() *MockAttendanceLog {
	return &MockAttendanceLog{nextID: 1}
}

// Append records a new event
func (m *MockAttendanceLog) Append(ctx context.Context, identityID, name, timestamp string, eventType database.EventType) error {
	if m.AppendError != nil {
		return m.AppendError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, database.AttendanceEvent{
		LogID:      m.nextID,
		IdentityID: identityID,
		Name:       name,
		Timestamp:  timestamp,
		EventType:  eventType,
	})
	m.nextID++
	return nil
}

// HasLoggedToday checks for an event since local midnight
func (m *MockAttendanceLog) HasLoggedToday(ctx context.Context, identityID string, eventType database.EventType) (bool, error) {
	if m.HasError != nil {
		return false, m.HasError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	todayStart := time.Now().Format("2006-01-02") + " 00:00:00"
	for _, ev := range m.events {
		if ev.IdentityID == identityID && ev.EventType == eventType && ev.Timestamp >= todayStart {
			return true, nil
		}
	}
	return false, nil
}

// ListAll returns events newest first
func (m *MockAttendanceLog) ListAll(ctx context.Context) ([]database.AttendanceEvent, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]database.AttendanceEvent, len(m.events))
	copy(out, m.events)
	// newest first, mirroring ORDER BY timestamp DESC, log_id DESC
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// ResetAll removes every event and resets the counter
func (m *MockAttendanceLog) ResetAll(ctx context.Context) error {
	if m.ResetError != nil {
		return m.ResetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
	m.nextID = 1
	return nil
}

// Events returns a copy of the raw event slice in insertion order
func (m *MockAttendanceLog) Events() []database.AttendanceEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]database.AttendanceEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Interface guards.
var (
	_ database.RosterStore   = (*MockRosterStore)(nil)
	_ database.AttendanceLog = (*MockAttendanceLog)(nil)
)
