// Package recognition implements the nearest-match identity decision over a
// roster of reference embeddings.
package recognition

import (
	"github.com/adisurya/face-attendance/internal/database"
)

// UnknownID is the identity returned when no roster entry matches.
const UnknownID = "UNKNOWN"

// UnknownDistance is the sentinel distance returned for an empty roster,
// far beyond the maximum real cosine distance of 2.
const UnknownDistance = 999.0

// Match is the result of an identification attempt.
type Match struct {
	IdentityID string
	Name       string
	Distance   float64
}

// Recognized reports whether the match resolved to an enrolled identity.
func (m Match) Recognized() bool {
	return m.IdentityID != UnknownID
}

// Engine matches live embeddings against an immutable roster snapshot.
//
// The roster is fixed at construction; re-running enrollment does not affect
// a live engine. Picking up roster changes means building a new Engine from a
// fresh load, which keeps concurrent Identify calls lock-free.
type Engine struct {
	roster    []database.IdentityRecord
	threshold float64
}

// NewEngine creates an engine over the given roster snapshot. The threshold
// is a maximum cosine DISTANCE: a candidate is accepted when its distance is
// less than or equal to the threshold. Do not invert this when tuning.
func NewEngine(roster []database.IdentityRecord, threshold float64) *Engine {
	return &Engine{roster: roster, threshold: threshold}
}

// RosterSize returns the number of identities in the working roster.
func (e *Engine) RosterSize() int {
	return len(e.roster)
}

// Identify finds the enrolled identity with the smallest cosine distance to
// the live embedding. An empty roster short-circuits to UNKNOWN without
// scanning. Ties keep the first entry encountered in roster load order.
// This is an O(N*D) linear scan, which is fine at the expected roster scale
// of tens to low hundreds of identities.
func (e *Engine) Identify(live []float32) Match {
	if len(e.roster) == 0 {
		return Match{IdentityID: UnknownID, Name: UnknownID, Distance: UnknownDistance}
	}

	best := Match{IdentityID: UnknownID, Name: UnknownID, Distance: UnknownDistance}
	for _, rec := range e.roster {
		d := database.CosineDistance(live, rec.Embedding)
		if d < best.Distance {
			best = Match{IdentityID: rec.ID, Name: rec.Name, Distance: d}
		}
	}

	if best.Distance > e.threshold {
		return Match{IdentityID: UnknownID, Name: UnknownID, Distance: best.Distance}
	}
	return best
}
