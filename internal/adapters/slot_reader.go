package adapters

import (
	"context"
	"time"

	"github.com/google/uuid"

	"modtok/internal/shared/kinds"
	slotsrepo "modtok/internal/slots/repository"
	visibilityservice "modtok/internal/visibility/service"
)

// SlotReaderAdapter exposes active slot assignments to the visibility
// module.
type SlotReaderAdapter struct {
	repo slotsrepo.Repository
}

// NewSlotReaderAdapter creates an adapter over the slots repository.
func NewSlotReaderAdapter(repo slotsrepo.Repository) *SlotReaderAdapter {
	return &SlotReaderAdapter{repo: repo}
}

// ListActiveForEntities implements the visibility module's
// SlotAssignmentReader.
func (a *SlotReaderAdapter) ListActiveForEntities(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID, asOf time.Time) ([]visibilityservice.SlotAssignment, error) {
	orders, err := a.repo.ListActiveSlotOrdersForEntities(ctx, entityType, ids, asOf)
	if err != nil {
		return nil, err
	}

	out := make([]visibilityservice.SlotAssignment, 0, len(orders))
	for _, order := range orders {
		if order.ContentID == nil {
			continue
		}
		out = append(out, visibilityservice.SlotAssignment{
			OrderID:       order.ID,
			EntityID:      *order.ContentID,
			SlotType:      order.SlotType,
			RotationOrder: order.RotationOrder,
			CreatedAt:     order.CreatedAt,
		})
	}
	return out, nil
}
