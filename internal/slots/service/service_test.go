package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"modtok/internal/events"
	"modtok/internal/shared/dates"
	"modtok/internal/shared/kinds"
	"modtok/internal/slots/repository"
	"modtok/internal/slots/transport"
	"modtok/platform/apperr"
	"modtok/platform/logger"
)

type stubRepo struct {
	created    []repository.CreateSlotOrderParams
	active     []repository.SlotOrder
	capacities map[kinds.Tier]int
}

func (s *stubRepo) CreateSlotOrder(_ context.Context, params repository.CreateSlotOrderParams) (repository.SlotOrder, error) {
	s.created = append(s.created, params)
	return repository.SlotOrder{
		ID:            uuid.New(),
		SlotType:      params.SlotType,
		ContentType:   params.ContentType,
		ContentID:     params.ContentID,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
		RotationOrder: params.RotationOrder,
		IsActive:      params.IsActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}, nil
}

func (s *stubRepo) UpdateSlotOrder(_ context.Context, _ repository.UpdateSlotOrderParams) (repository.SlotOrder, error) {
	return repository.SlotOrder{}, apperr.NotFound("slot order not found")
}

func (s *stubRepo) GetSlotOrderByID(_ context.Context, _ uuid.UUID) (repository.SlotOrder, error) {
	return repository.SlotOrder{}, apperr.NotFound("slot order not found")
}

func (s *stubRepo) ListSlotOrders(_ context.Context, _ repository.ListSlotOrdersParams) ([]repository.SlotOrder, int, error) {
	return nil, 0, nil
}

func (s *stubRepo) ListActiveSlotOrders(_ context.Context, slotType *kinds.Tier, _ time.Time) ([]repository.SlotOrder, error) {
	if slotType == nil {
		return s.active, nil
	}
	matched := make([]repository.SlotOrder, 0, len(s.active))
	for _, order := range s.active {
		if order.SlotType == *slotType {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

func (s *stubRepo) ListActiveSlotOrdersForEntities(_ context.Context, _ kinds.EntityType, _ []uuid.UUID, _ time.Time) ([]repository.SlotOrder, error) {
	return nil, nil
}

func (s *stubRepo) ListSlotOrdersEnding(_ context.Context, _, _ time.Time) ([]repository.SlotOrder, error) {
	return nil, nil
}

func (s *stubRepo) GetCapacity(_ context.Context, slotType kinds.Tier) (*repository.SlotCapacity, error) {
	count, ok := s.capacities[slotType]
	if !ok {
		return nil, nil
	}
	return &repository.SlotCapacity{SlotType: slotType, VisibleCount: count}, nil
}

func (s *stubRepo) UpsertCapacity(_ context.Context, slotType kinds.Tier, visibleCount int) (repository.SlotCapacity, error) {
	return repository.SlotCapacity{SlotType: slotType, VisibleCount: visibleCount}, nil
}

func (s *stubRepo) ListCapacities(_ context.Context) ([]repository.SlotCapacity, error) {
	return nil, nil
}

type stubEntityReader struct {
	known map[uuid.UUID]transport.EntitySummary
}

func (s *stubEntityReader) GetSummaries(_ context.Context, _ kinds.EntityType, ids []uuid.UUID) (map[uuid.UUID]transport.EntitySummary, error) {
	found := make(map[uuid.UUID]transport.EntitySummary)
	for _, id := range ids {
		if summary, ok := s.known[id]; ok {
			found[id] = summary
		}
	}
	return found, nil
}

func newTestSlotService(repo *stubRepo, entities *stubEntityReader) *Service {
	log := logger.New("test")
	if entities == nil {
		entities = &stubEntityReader{}
	}
	return New(repo, entities, events.NewInMemoryBus(log), log)
}

func mustDate(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := dates.Parse(raw)
	if err != nil {
		t.Fatalf("parse date %q: %v", raw, err)
	}
	return parsed
}

func TestCreateSlotOrder_RejectsInvertedDateRange(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestSlotService(repo, nil)

	_, err := svc.CreateSlotOrder(context.Background(), transport.CreateSlotOrderRequest{
		SlotType:  "premium",
		StartDate: "2026-08-20",
		EndDate:   "2026-08-19",
	})
	if err == nil {
		t.Fatal("expected an error for endDate before startDate")
	}
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("rejected order must not reach the store, got %d writes", len(repo.created))
	}
}

func TestCreateSlotOrder_SingleDayRangeIsValid(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestSlotService(repo, nil)

	result, err := svc.CreateSlotOrder(context.Background(), transport.CreateSlotOrderRequest{
		SlotType:  "destacado",
		StartDate: "2026-08-20",
		EndDate:   "2026-08-20",
	})
	if err != nil {
		t.Fatalf("single-day order must be accepted: %v", err)
	}
	if result.StartDate != "2026-08-20" || result.EndDate != "2026-08-20" {
		t.Fatalf("unexpected range %s..%s", result.StartDate, result.EndDate)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one stored order, got %d", len(repo.created))
	}
}

func TestCreateSlotOrder_AcceptsEverySlotType(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestSlotService(repo, nil)

	for _, slotType := range kinds.Tiers {
		result, err := svc.CreateSlotOrder(context.Background(), transport.CreateSlotOrderRequest{
			SlotType:  string(slotType),
			StartDate: "2026-08-01",
			EndDate:   "2026-08-31",
		})
		if err != nil {
			t.Fatalf("slot type %s must be accepted: %v", slotType, err)
		}
		if result.SlotType != string(slotType) {
			t.Fatalf("expected slot type %s, got %s", slotType, result.SlotType)
		}
	}

	if len(repo.created) != len(kinds.Tiers) {
		t.Fatalf("expected %d stored orders, got %d", len(kinds.Tiers), len(repo.created))
	}
	if repo.created[0].SlotType != kinds.TierStandard {
		t.Fatalf("expected standard order forwarded to the store, got %s", repo.created[0].SlotType)
	}
}

func TestGetDisplayableSlots_DropsDanglingEntityReferences(t *testing.T) {
	providerType := kinds.EntityProvider
	knownID := uuid.New()
	danglingID := uuid.New()

	repo := &stubRepo{
		active: []repository.SlotOrder{
			{
				ID:          uuid.New(),
				SlotType:    kinds.TierPremium,
				ContentType: &providerType,
				ContentID:   &knownID,
				StartDate:   mustDate(t, "2026-08-01"),
				EndDate:     mustDate(t, "2026-08-31"),
				IsActive:    true,
			},
			{
				ID:            uuid.New(),
				SlotType:      kinds.TierPremium,
				ContentType:   &providerType,
				ContentID:     &danglingID,
				StartDate:     mustDate(t, "2026-08-01"),
				EndDate:       mustDate(t, "2026-08-31"),
				RotationOrder: 1,
				IsActive:      true,
			},
		},
	}
	entities := &stubEntityReader{known: map[uuid.UUID]transport.EntitySummary{
		knownID: {ID: knownID, Type: "provider", Slug: "casas-del-sur", Name: "Casas del Sur", Tier: "premium"},
	}}
	svc := newTestSlotService(repo, entities)

	result, err := svc.GetDisplayableSlots(context.Background(), transport.ActiveSlotsRequest{
		SlotType: "premium",
		ActiveOn: "2026-08-15",
	})
	if err != nil {
		t.Fatalf("display must not fail on a dangling reference: %v", err)
	}

	premium := result.Slots["premium"]
	if len(premium) != 1 {
		t.Fatalf("expected the dangling order dropped, got %d slots", len(premium))
	}
	if premium[0].Entity == nil || premium[0].Entity.ID != knownID {
		t.Fatal("expected the resolvable order to survive with its entity")
	}
}

func TestGetDisplayableSlots_ExcludesOrdersOutsideWindow(t *testing.T) {
	repo := &stubRepo{
		active: []repository.SlotOrder{
			{
				ID:        uuid.New(),
				SlotType:  kinds.TierDestacado,
				StartDate: mustDate(t, "2026-08-01"),
				EndDate:   mustDate(t, "2026-08-10"),
				IsActive:  true,
			},
			{
				ID:            uuid.New(),
				SlotType:      kinds.TierDestacado,
				StartDate:     mustDate(t, "2026-08-01"),
				EndDate:       mustDate(t, "2026-08-31"),
				RotationOrder: 1,
				IsActive:      true,
			},
		},
	}
	svc := newTestSlotService(repo, nil)

	result, err := svc.GetDisplayableSlots(context.Background(), transport.ActiveSlotsRequest{
		SlotType: "destacado",
		ActiveOn: "2026-08-15",
	})
	if err != nil {
		t.Fatalf("get displayable slots: %v", err)
	}

	destacado := result.Slots["destacado"]
	if len(destacado) != 1 {
		t.Fatalf("expected the expired order excluded, got %d slots", len(destacado))
	}
	if destacado[0].Order.EndDate != "2026-08-31" {
		t.Fatalf("wrong surviving order, ends %s", destacado[0].Order.EndDate)
	}
}
