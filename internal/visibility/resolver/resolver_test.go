package resolver

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"modtok/internal/shared/kinds"
)

func TestResolve_NoCandidates_BaselineStands(t *testing.T) {
	res := Resolve(kinds.TierDestacado, nil)

	if res.Tier != kinds.TierDestacado {
		t.Fatalf("expected tier destacado, got %s", res.Tier)
	}
	if res.Source != SourceBaseline {
		t.Fatalf("expected source baseline, got %s", res.Source)
	}
	if res.OrderID != uuid.Nil {
		t.Fatalf("expected no order id, got %s", res.OrderID)
	}
}

func TestResolve_SlotOverridesBaselineUpward(t *testing.T) {
	orderID := uuid.New()
	res := Resolve(kinds.TierStandard, []Candidate{
		{OrderID: orderID, SlotType: kinds.TierPremium, RotationOrder: 1},
	})

	if res.Tier != kinds.TierPremium {
		t.Fatalf("expected tier premium, got %s", res.Tier)
	}
	if res.Source != SourceSlot {
		t.Fatalf("expected source slot, got %s", res.Source)
	}
	if res.OrderID != orderID {
		t.Fatalf("expected order %s, got %s", orderID, res.OrderID)
	}
}

func TestResolve_SlotOverridesBaselineDownward(t *testing.T) {
	// A premium baseline with only a destacado slot displays as destacado.
	res := Resolve(kinds.TierPremium, []Candidate{
		{OrderID: uuid.New(), SlotType: kinds.TierDestacado, RotationOrder: 1},
	})

	if res.Tier != kinds.TierDestacado {
		t.Fatalf("expected tier destacado, got %s", res.Tier)
	}
	if res.Source != SourceSlot {
		t.Fatalf("expected source slot, got %s", res.Source)
	}
}

func TestWinner_PremiumBeatsDestacadoRegardlessOfRotation(t *testing.T) {
	premium := Candidate{OrderID: uuid.New(), SlotType: kinds.TierPremium, RotationOrder: 99}
	destacado := Candidate{OrderID: uuid.New(), SlotType: kinds.TierDestacado, RotationOrder: 1}

	winner, ok := Winner([]Candidate{destacado, premium})
	if !ok {
		t.Fatal("expected a winner")
	}
	if winner.OrderID != premium.OrderID {
		t.Fatalf("expected premium order to win, got %s", winner.SlotType)
	}
}

func TestWinner_SameTypeSmallestRotationOrderWins(t *testing.T) {
	first := Candidate{OrderID: uuid.New(), SlotType: kinds.TierPremium, RotationOrder: 2}
	second := Candidate{OrderID: uuid.New(), SlotType: kinds.TierPremium, RotationOrder: 5}

	winner, ok := Winner([]Candidate{second, first})
	if !ok {
		t.Fatal("expected a winner")
	}
	if winner.OrderID != first.OrderID {
		t.Fatalf("expected rotation 2 to win, got rotation %d", winner.RotationOrder)
	}
}

func TestWinner_RotationTieBrokenByCreatedAtThenID(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := Candidate{OrderID: uuid.New(), SlotType: kinds.TierDestacado, RotationOrder: 1, CreatedAt: base}
	newer := Candidate{OrderID: uuid.New(), SlotType: kinds.TierDestacado, RotationOrder: 1, CreatedAt: base.Add(time.Hour)}

	winner, _ := Winner([]Candidate{newer, older})
	if winner.OrderID != older.OrderID {
		t.Fatalf("expected older candidate to win the tie")
	}

	// Identical timestamps fall back to the smaller id.
	a := Candidate{OrderID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), SlotType: kinds.TierDestacado, RotationOrder: 1, CreatedAt: base}
	b := Candidate{OrderID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), SlotType: kinds.TierDestacado, RotationOrder: 1, CreatedAt: base}

	winner, _ = Winner([]Candidate{b, a})
	if winner.OrderID != a.OrderID {
		t.Fatalf("expected smaller id to win, got %s", winner.OrderID)
	}
}

func TestWinner_DeterministicForAnyInputOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	candidates := []Candidate{
		{OrderID: uuid.New(), SlotType: kinds.TierDestacado, RotationOrder: 3, CreatedAt: base},
		{OrderID: uuid.New(), SlotType: kinds.TierPremium, RotationOrder: 7, CreatedAt: base},
		{OrderID: uuid.New(), SlotType: kinds.TierPremium, RotationOrder: 2, CreatedAt: base},
	}

	expected, _ := Winner(candidates)

	reversed := []Candidate{candidates[2], candidates[1], candidates[0]}
	got, _ := Winner(reversed)
	if got.OrderID != expected.OrderID {
		t.Fatalf("winner changed with input order: %s vs %s", got.OrderID, expected.OrderID)
	}
}

func TestDeriveEditorialState(t *testing.T) {
	cases := []struct {
		name                            string
		images, complete, approved      bool
		want                            EditorialState
	}{
		{"no flags", false, false, false, StateUnreviewed},
		{"images only", true, false, false, StatePartiallyReady},
		{"info only", false, true, false, StatePartiallyReady},
		{"both ready", true, true, false, StateReadyForApproval},
		{"approved dominates", false, false, true, StateApproved},
		{"approved with flags", true, true, true, StateApproved},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveEditorialState(tc.images, tc.complete, tc.approved)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}
