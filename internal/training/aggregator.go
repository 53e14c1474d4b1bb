// Package training builds reference embeddings for enrolled identities by
// aggregating per-image embeddings into a single centroid.
package training

import (
	"context"
	"fmt"

	"github.com/adisurya/face-attendance/internal/database"
)

// Centroid computes the element-wise mean of the given embeddings. It
// returns nil when the input is empty: an identity without a single usable
// embedding gets no reference vector at all, never a degenerate zero one.
func Centroid(embeddings [][]float32) []float32 {
	if len(embeddings) == 0 {
		return nil
	}

	dim := len(embeddings[0])
	sum := make([]float64, dim)
	for _, emb := range embeddings {
		for i := 0; i < dim && i < len(emb); i++ {
			sum[i] += float64(emb[i])
		}
	}

	centroid := make([]float32, dim)
	n := float64(len(embeddings))
	for i := range sum {
		centroid[i] = float32(sum[i] / n)
	}
	return centroid
}

// AggregateAndStore reduces the embeddings of one identity to their centroid
// and upserts it as the identity's reference embedding. It returns the
// number of embeddings aggregated; zero embeddings means the identity is
// skipped entirely with nothing written.
func AggregateAndStore(ctx context.Context, store database.RosterStore, id, name string, embeddings [][]float32) (int, error) {
	if len(embeddings) == 0 {
		return 0, nil
	}

	centroid := Centroid(embeddings)
	if err := store.Upsert(ctx, id, name, centroid); err != nil {
		return 0, fmt.Errorf("store reference embedding for %q: %w", id, err)
	}
	return len(embeddings), nil
}
