package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"modtok/internal/shared/dates"
	"modtok/internal/slots/repository"
)

func order(rotation int, createdAt time.Time) repository.SlotOrder {
	return repository.SlotOrder{
		ID:            uuid.New(),
		RotationOrder: rotation,
		CreatedAt:     createdAt,
	}
}

func TestDisplayableSubset_SortsByRotationAndTruncates(t *testing.T) {
	now := time.Now()
	third := order(3, now)
	first := order(1, now)
	second := order(2, now)

	limit := 2
	got := DisplayableSubset([]repository.SlotOrder{third, first, second}, &limit)

	if len(got) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("expected rotation order 1,2; got %d,%d", got[0].RotationOrder, got[1].RotationOrder)
	}
}

func TestDisplayableSubset_NilLimitShowsEverything(t *testing.T) {
	now := time.Now()
	orders := []repository.SlotOrder{order(2, now), order(1, now), order(3, now)}

	got := DisplayableSubset(orders, nil)

	if len(got) != 3 {
		t.Fatalf("expected all 3 orders without a capacity row, got %d", len(got))
	}
}

func TestDisplayableSubset_ZeroLimitHidesEverything(t *testing.T) {
	limit := 0
	got := DisplayableSubset([]repository.SlotOrder{order(1, time.Now())}, &limit)

	if len(got) != 0 {
		t.Fatalf("expected no orders with visible count 0, got %d", len(got))
	}
}

func TestDisplayableSubset_RotationTieBrokenByCreatedAt(t *testing.T) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	older := order(1, base)
	newer := order(1, base.Add(time.Minute))

	limit := 1
	got := DisplayableSubset([]repository.SlotOrder{newer, older}, &limit)

	if len(got) != 1 || got[0].ID != older.ID {
		t.Fatalf("expected older order to fill the single visible slot")
	}
}

func TestDisplayableSubset_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	orders := []repository.SlotOrder{order(2, now), order(1, now)}
	firstID := orders[0].ID

	limit := 1
	DisplayableSubset(orders, &limit)

	if orders[0].ID != firstID {
		t.Fatal("input slice was reordered")
	}
}

func TestCoversDate_InclusiveBothEnds(t *testing.T) {
	start, _ := dates.Parse("2026-03-01")
	end, _ := dates.Parse("2026-03-10")
	o := repository.SlotOrder{StartDate: start, EndDate: end}

	for _, raw := range []string{"2026-03-01", "2026-03-10"} {
		day, _ := dates.Parse(raw)
		if !CoversDate(o, day) {
			t.Fatalf("expected %s to be covered", raw)
		}
	}

	before, _ := dates.Parse("2026-02-28")
	after, _ := dates.Parse("2026-03-11")
	if CoversDate(o, before) || CoversDate(o, after) {
		t.Fatal("expected days outside the range to be excluded")
	}
}

func TestCoversDate_SingleDayOrder(t *testing.T) {
	day, _ := dates.Parse("2026-04-15")
	o := repository.SlotOrder{StartDate: day, EndDate: day}

	if !CoversDate(o, day) {
		t.Fatal("expected a single-day order to cover its own date")
	}
	if CoversDate(o, day.AddDate(0, 0, 1)) {
		t.Fatal("expected the next day to be excluded")
	}
}

func TestCoversDate_TruncatesTimeOfDay(t *testing.T) {
	day, _ := dates.Parse("2026-04-15")
	o := repository.SlotOrder{StartDate: day, EndDate: day}

	lateEvening := time.Date(2026, 4, 15, 23, 59, 0, 0, time.UTC)
	if !CoversDate(o, lateEvening) {
		t.Fatal("expected any instant on the end date to be covered")
	}
}
