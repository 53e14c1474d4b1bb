package database

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// IdentityRepository provides SQLite-backed storage for enrolled identities.
type IdentityRepository struct {
	store *Store
}

// NewIdentityRepository creates a new identity repository.
func NewIdentityRepository(store *Store) *IdentityRepository {
	return &IdentityRepository{store: store}
}

// Upsert stores or replaces the reference embedding for an identity and bumps
// last_updated. The write is committed before the call returns.
func (r *IdentityRepository) Upsert(ctx context.Context, id, name string, embedding []float32) error {
	if id == "" {
		return errors.New("identity id is required")
	}
	if len(embedding) == 0 {
		return errors.New("reference embedding must not be empty")
	}

	query := `
		INSERT OR REPLACE INTO identity (id, name, reference_embedding, last_updated)
		VALUES (?, ?, ?, ?)
	`
	now := time.Now().Format(TimeFormat)
	if _, err := r.store.db.ExecContext(ctx, query, id, name, EncodeVector(embedding), now); err != nil {
		return fmt.Errorf("upsert identity %q: %w", id, err)
	}
	return nil
}

// LoadAll returns every enrolled identity with its decoded reference
// embedding. An empty roster yields an empty slice, not an error.
func (r *IdentityRepository) LoadAll(ctx context.Context) ([]IdentityRecord, error) {
	query := `
		SELECT id, name, reference_embedding, last_updated
		FROM identity
	`
	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query identities: %w", err)
	}
	defer rows.Close()

	var records []IdentityRecord
	for rows.Next() {
		var rec IdentityRecord
		var blob []byte
		if err := rows.Scan(&rec.ID, &rec.Name, &blob, &rec.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		emb, err := DecodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("decode embedding for %q: %w", rec.ID, err)
		}
		rec.Embedding = emb
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate identities: %w", err)
	}
	return records, nil
}

// Count returns the number of enrolled identities.
func (r *IdentityRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM identity").Scan(&count); err != nil {
		return 0, fmt.Errorf("count identities: %w", err)
	}
	return count, nil
}

// ClearAll deletes every identity and resets the table's auto-numbering.
// Idempotent: clearing an already empty roster is a no-op.
func (r *IdentityRepository) ClearAll(ctx context.Context) error {
	if _, err := r.store.db.ExecContext(ctx, "DELETE FROM identity"); err != nil {
		return fmt.Errorf("clear identities: %w", err)
	}
	r.store.resetSequence(ctx, "identity")
	return nil
}
