// Package resolver implements effective tier resolution: merging an
// entity's baseline tier with its active promotional slot assignments.
package resolver

import (
	"time"

	"github.com/google/uuid"

	"modtok/internal/shared/kinds"
)

// Candidate is an active, in-range slot assignment competing to set an
// entity's effective tier.
type Candidate struct {
	OrderID       uuid.UUID
	SlotType      kinds.Tier
	RotationOrder int
	CreatedAt     time.Time
}

// Source says where an effective tier came from.
type Source string

const (
	SourceBaseline Source = "baseline"
	SourceSlot     Source = "slot"
)

// Resolution is the outcome for one entity.
type Resolution struct {
	Tier   kinds.Tier
	Source Source
	// OrderID is set when Source is SourceSlot.
	OrderID uuid.UUID
}

// Resolve merges a baseline tier with slot candidates. With no candidates
// the baseline stands. Otherwise the winning candidate's slot type becomes
// the effective tier, overriding the baseline in both directions.
func Resolve(baseline kinds.Tier, candidates []Candidate) Resolution {
	winner, ok := Winner(candidates)
	if !ok {
		return Resolution{Tier: baseline, Source: SourceBaseline}
	}
	return Resolution{Tier: winner.SlotType, Source: SourceSlot, OrderID: winner.OrderID}
}

// Winner picks the dominant candidate: highest slot type precedence
// (premium > destacado > standard), then smallest rotation order, then
// earliest creation, then smallest id. The result is deterministic for
// any input order.
func Winner(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if beats(c, best) {
			best = c
		}
	}
	return best, true
}

func beats(a, b Candidate) bool {
	if a.SlotType.Rank() != b.SlotType.Rank() {
		return a.SlotType.Rank() > b.SlotType.Rank()
	}
	if a.RotationOrder != b.RotationOrder {
		return a.RotationOrder < b.RotationOrder
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.OrderID.String() < b.OrderID.String()
}
