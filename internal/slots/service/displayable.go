package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"modtok/internal/shared/dates"
	"modtok/internal/shared/kinds"
	"modtok/internal/slots/repository"
	"modtok/internal/slots/transport"
)

// GetDisplayableSlots computes the promotional slots shown to the public
// at the given instant, grouped by slot type. The subset respects the
// configured visible count per type; a missing capacity row leaves the
// type unbounded. Orders whose referenced entity no longer resolves are
// dropped silently so promotional display never fails a page render.
func (s *Service) GetDisplayableSlots(ctx context.Context, req transport.ActiveSlotsRequest) (transport.ActiveSlotsResponse, error) {
	asOf := dates.Today()
	if req.ActiveOn != "" {
		parsed, err := dates.Parse(req.ActiveOn)
		if err != nil {
			return transport.ActiveSlotsResponse{}, err
		}
		asOf = parsed
	}

	requested := kinds.Tiers
	if req.SlotType != "" {
		slotType, err := kinds.ParseTier(req.SlotType)
		if err != nil {
			return transport.ActiveSlotsResponse{}, err
		}
		requested = []kinds.Tier{slotType}
	}

	response := transport.ActiveSlotsResponse{
		Slots:  make(map[string][]transport.SlotWithContent, len(requested)),
		Config: make([]transport.CapacityResponse, 0, len(requested)),
		AsOf:   dates.Format(asOf),
	}

	for _, slotType := range requested {
		orders, err := s.repo.ListActiveSlotOrders(ctx, &slotType, asOf)
		if err != nil {
			return transport.ActiveSlotsResponse{}, err
		}

		capacity, err := s.repo.GetCapacity(ctx, slotType)
		if err != nil {
			return transport.ActiveSlotsResponse{}, err
		}

		var limit *int
		if capacity != nil {
			limit = &capacity.VisibleCount
			response.Config = append(response.Config, transport.CapacityResponse{
				SlotType:     string(slotType),
				VisibleCount: capacity.VisibleCount,
			})
		}

		// Truncation must count only orders covering asOf, whatever the
		// store returned.
		inRange := make([]repository.SlotOrder, 0, len(orders))
		for _, order := range orders {
			if CoversDate(order, asOf) {
				inRange = append(inRange, order)
			}
		}

		displayable := DisplayableSubset(inRange, limit)
		hydrated, err := s.hydrate(ctx, displayable)
		if err != nil {
			return transport.ActiveSlotsResponse{}, err
		}
		response.Slots[string(slotType)] = hydrated
	}

	return response, nil
}

// DisplayableSubset sorts orders by rotation order (insertion order breaks
// ties) and truncates to limit. A nil limit means no capacity row exists
// and every order is displayable.
func DisplayableSubset(orders []repository.SlotOrder, limit *int) []repository.SlotOrder {
	sorted := append([]repository.SlotOrder(nil), orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RotationOrder != sorted[j].RotationOrder {
			return sorted[i].RotationOrder < sorted[j].RotationOrder
		}
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	if limit != nil && len(sorted) > *limit {
		sorted = sorted[:*limit]
	}
	return sorted
}

// CoversDate reports whether the order's inclusive date range contains day.
func CoversDate(order repository.SlotOrder, day time.Time) bool {
	day = dates.Truncate(day)
	return !day.Before(order.StartDate) && !day.After(order.EndDate)
}

func (s *Service) hydrate(ctx context.Context, orders []repository.SlotOrder) ([]transport.SlotWithContent, error) {
	idsByType := make(map[kinds.EntityType][]uuid.UUID)
	for _, order := range orders {
		if order.ContentType != nil && order.ContentID != nil {
			idsByType[*order.ContentType] = append(idsByType[*order.ContentType], *order.ContentID)
		}
	}

	summaries := make(map[kinds.EntityType]map[uuid.UUID]transport.EntitySummary, len(idsByType))
	for entityType, ids := range idsByType {
		found, err := s.entities.GetSummaries(ctx, entityType, ids)
		if err != nil {
			return nil, err
		}
		summaries[entityType] = found
	}

	result := make([]transport.SlotWithContent, 0, len(orders))
	for _, order := range orders {
		item := transport.SlotWithContent{Order: toSlotOrderResponse(order)}
		if order.ContentType != nil && order.ContentID != nil {
			summary, ok := summaries[*order.ContentType][*order.ContentID]
			if !ok {
				// Dangling reference: the entity was deleted or unpublished.
				continue
			}
			item.Entity = &summary
		}
		result = append(result, item)
	}
	return result, nil
}
