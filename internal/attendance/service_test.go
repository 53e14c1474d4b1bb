package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adisurya/face-attendance/internal/database"
	"github.com/adisurya/face-attendance/internal/database/mock"
	"github.com/adisurya/face-attendance/internal/recognition"
)

var testRoster = []database.IdentityRecord{
	{ID: "A001", Name: "Ana", Embedding: []float32{1, 0, 0}},
	{ID: "B002", Name: "Budi", Embedding: []float32{0, 1, 0}},
}

func newTestService(dedup bool) (*Service, *mock.MockAttendanceLog) {
	ledger := mock.NewMockAttendanceLog()
	engine := recognition.NewEngine(testRoster, 0.95)
	return NewService(engine, ledger, dedup), ledger
}

func TestService_RecordRecognized(t *testing.T) {
	svc, ledger := newTestService(false)
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.Local)

	outcome, err := svc.Record(context.Background(), []float32{1, 0, 0}, now)
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	if outcome.Status != StatusRecognized {
		t.Errorf("expected RECOGNIZED, got %s", outcome.Status)
	}
	if outcome.IdentityID != "A001" || outcome.Name != "Ana" {
		t.Errorf("unexpected identity: %+v", outcome)
	}
	if outcome.Timestamp != "2026-03-14 08:30:00" {
		t.Errorf("unexpected timestamp: %s", outcome.Timestamp)
	}

	events := ledger.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 ledger event, got %d", len(events))
	}
	if events[0].EventType != database.EventEntry {
		t.Errorf("expected ENTRY event, got %s", events[0].EventType)
	}
}

func TestService_RecordNotRecognized(t *testing.T) {
	svc, ledger := newTestService(false)

	// Orthogonal to both roster entries: distance 1.0 > threshold 0.95.
	outcome, err := svc.Record(context.Background(), []float32{0, 0, 1}, time.Now())
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	if outcome.Status != StatusNotRecognized {
		t.Errorf("expected NOT_RECOGNIZED, got %s", outcome.Status)
	}
	if outcome.IdentityID != recognition.UnknownID {
		t.Errorf("expected UNKNOWN identity, got %s", outcome.IdentityID)
	}
	if len(ledger.Events()) != 0 {
		t.Error("unrecognized face must not produce a ledger write")
	}
}

func TestService_DedupDisabledLogsEveryRecognition(t *testing.T) {
	svc, ledger := newTestService(false)
	ctx := context.Background()

	for range 3 {
		outcome, err := svc.Record(ctx, []float32{1, 0, 0}, time.Now())
		if err != nil {
			t.Fatalf("record failed: %v", err)
		}
		if outcome.Status != StatusRecognized {
			t.Fatalf("expected RECOGNIZED, got %s", outcome.Status)
		}
	}

	if got := len(ledger.Events()); got != 3 {
		t.Errorf("expected 3 events without dedup, got %d", got)
	}
}

func TestService_DedupEnabledLogsOncePerDay(t *testing.T) {
	svc, ledger := newTestService(true)
	ctx := context.Background()

	first, err := svc.Record(ctx, []float32{1, 0, 0}, time.Now())
	if err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	if first.Status != StatusRecognized {
		t.Fatalf("expected first attempt RECOGNIZED, got %s", first.Status)
	}

	second, err := svc.Record(ctx, []float32{1, 0, 0}, time.Now())
	if err != nil {
		t.Fatalf("second record failed: %v", err)
	}
	if second.Status != StatusAlreadyLogged {
		t.Errorf("expected ALREADY_LOGGED, got %s", second.Status)
	}
	if second.IdentityID != "A001" {
		t.Errorf("already-logged outcome should still carry the identity, got %+v", second)
	}

	if got := len(ledger.Events()); got != 1 {
		t.Errorf("expected 1 event with dedup, got %d", got)
	}

	// A different identity still gets through.
	third, err := svc.Record(ctx, []float32{0, 1, 0}, time.Now())
	if err != nil {
		t.Fatalf("third record failed: %v", err)
	}
	if third.Status != StatusRecognized {
		t.Errorf("expected other identity RECOGNIZED, got %s", third.Status)
	}
}

func TestService_StorageFailureOnAppend(t *testing.T) {
	svc, ledger := newTestService(false)
	ledger.AppendError = errors.New("database is locked")

	outcome, err := svc.Record(context.Background(), []float32{1, 0, 0}, time.Now())

	if err == nil {
		t.Fatal("expected storage error to surface")
	}
	if !errors.Is(err, ledger.AppendError) {
		t.Errorf("expected wrapped append error, got %v", err)
	}
	// The outcome still identifies the person so the caller can report
	// a failure without crashing.
	if outcome.IdentityID != "A001" {
		t.Errorf("expected identity in failure outcome, got %+v", outcome)
	}
}

func TestService_StorageFailureOnDedupCheck(t *testing.T) {
	svc, ledger := newTestService(true)
	ledger.HasError = errors.New("disk error")

	_, err := svc.Record(context.Background(), []float32{1, 0, 0}, time.Now())

	if err == nil {
		t.Fatal("expected dedup check error to surface")
	}
	if len(ledger.Events()) != 0 {
		t.Error("no event should be written when the dedup check fails")
	}
}

func TestService_EmptyRoster(t *testing.T) {
	ledger := mock.NewMockAttendanceLog()
	svc := NewService(recognition.NewEngine(nil, 0.95), ledger, false)

	outcome, err := svc.Record(context.Background(), []float32{1, 2, 3}, time.Now())
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if outcome.Status != StatusNotRecognized {
		t.Errorf("expected NOT_RECOGNIZED on empty roster, got %s", outcome.Status)
	}
	if outcome.Distance != recognition.UnknownDistance {
		t.Errorf("expected sentinel distance, got %f", outcome.Distance)
	}
}
