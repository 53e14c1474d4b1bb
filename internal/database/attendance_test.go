package database

import (
	"context"
	"testing"
	"time"
)

func TestAttendanceRepository_AppendAndListAll(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 8, 0, 0, 0, time.Local)
	entries := []struct {
		id, name string
		at       time.Time
	}{
		{"A001", "Ana", base},
		{"B002", "Budi", base.Add(5 * time.Minute)},
		{"C003", "Citra", base.Add(10 * time.Minute)},
	}
	for _, e := range entries {
		if err := repo.Append(ctx, e.id, e.name, e.at.Format(TimeFormat), EventEntry); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	events, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	// Newest first.
	if events[0].IdentityID != "C003" || events[2].IdentityID != "A001" {
		t.Errorf("events not ordered by timestamp descending: %+v", events)
	}

	// Distinct, ascending log ids in assignment order.
	seen := make(map[int64]bool)
	for _, ev := range events {
		if seen[ev.LogID] {
			t.Errorf("duplicate log id %d", ev.LogID)
		}
		seen[ev.LogID] = true
	}
}

func TestAttendanceRepository_SameTimestampTiebreak(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))
	ctx := context.Background()

	ts := time.Now().Format(TimeFormat)
	if err := repo.Append(ctx, "A001", "Ana", ts, EventEntry); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := repo.Append(ctx, "B002", "Budi", ts, EventEntry); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	events, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Equal timestamps fall back to log_id descending: later append first.
	if events[0].IdentityID != "B002" {
		t.Errorf("expected later append first, got %q", events[0].IdentityID)
	}
}

func TestAttendanceRepository_DefaultEventType(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))
	ctx := context.Background()

	if err := repo.Append(ctx, "A001", "Ana", time.Now().Format(TimeFormat), ""); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	events, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if events[0].EventType != EventEntry {
		t.Errorf("expected default event type ENTRY, got %q", events[0].EventType)
	}
}

func TestAttendanceRepository_HasLoggedToday(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))
	ctx := context.Background()

	// Yesterday's event must not count.
	yesterday := time.Now().AddDate(0, 0, -1).Format(TimeFormat)
	if err := repo.Append(ctx, "A001", "Ana", yesterday, EventEntry); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	logged, err := repo.HasLoggedToday(ctx, "A001", EventEntry)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if logged {
		t.Error("yesterday's event should not count as today")
	}

	// Today's event counts, but only for the same event type and identity.
	if err := repo.Append(ctx, "A001", "Ana", time.Now().Format(TimeFormat), EventEntry); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	logged, err = repo.HasLoggedToday(ctx, "A001", EventEntry)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !logged {
		t.Error("expected today's entry to be found")
	}

	logged, err = repo.HasLoggedToday(ctx, "A001", EventExit)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if logged {
		t.Error("exit event type should not match entry events")
	}

	logged, err = repo.HasLoggedToday(ctx, "B002", EventEntry)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if logged {
		t.Error("other identities should not match")
	}
}

func TestAttendanceRepository_ResetAll(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))
	ctx := context.Background()

	for range 3 {
		if err := repo.Append(ctx, "A001", "Ana", time.Now().Format(TimeFormat), EventEntry); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	if err := repo.ResetAll(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	events, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected empty ledger after reset, got %d events", len(events))
	}

	// log_id numbering restarts after a full reset.
	if err := repo.Append(ctx, "B002", "Budi", time.Now().Format(TimeFormat), EventEntry); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	events, err = repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if events[0].LogID != 1 {
		t.Errorf("expected log_id to restart at 1 after reset, got %d", events[0].LogID)
	}
}

func TestAttendanceRepository_AppendRequiresIdentity(t *testing.T) {
	repo := NewAttendanceRepository(newTestStore(t))

	if err := repo.Append(context.Background(), "", "Ana", time.Now().Format(TimeFormat), EventEntry); err == nil {
		t.Error("expected error for empty identity id")
	}
}
