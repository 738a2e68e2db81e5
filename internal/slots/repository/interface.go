package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"modtok/internal/shared/kinds"
)

// SlotOrder is a time-bounded reservation binding one catalog entity to a
// promotional slot type. Date bounds are inclusive on both ends. Expiry is
// date-based; rows are never implicitly deleted.
type SlotOrder struct {
	ID            uuid.UUID
	SlotType      kinds.Tier
	ContentType   *kinds.EntityType
	ContentID     *uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	RotationOrder int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SlotCapacity configures how many orders of a slot type are simultaneously
// displayable. The ledger may hold more active orders than VisibleCount.
type SlotCapacity struct {
	SlotType     kinds.Tier
	VisibleCount int
	UpdatedAt    time.Time
}

// CreateSlotOrderParams are the fields for a new slot order.
type CreateSlotOrderParams struct {
	SlotType      kinds.Tier
	ContentType   *kinds.EntityType
	ContentID     *uuid.UUID
	StartDate     time.Time
	EndDate       time.Time
	RotationOrder int
	IsActive      bool
}

// UpdateSlotOrderParams are the nullable fields for a slot order update.
// Nil fields keep their current value.
type UpdateSlotOrderParams struct {
	ID            uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	RotationOrder *int
	IsActive      *bool
}

// ListSlotOrdersParams filter the admin ledger listing.
type ListSlotOrdersParams struct {
	SlotType        *kinds.Tier
	IncludeInactive bool
	ActiveOn        *time.Time
	Offset          int
	Limit           int
}

// Repository is the slot ledger persistence interface.
type Repository interface {
	CreateSlotOrder(ctx context.Context, params CreateSlotOrderParams) (SlotOrder, error)
	UpdateSlotOrder(ctx context.Context, params UpdateSlotOrderParams) (SlotOrder, error)
	GetSlotOrderByID(ctx context.Context, id uuid.UUID) (SlotOrder, error)
	ListSlotOrders(ctx context.Context, params ListSlotOrdersParams) ([]SlotOrder, int, error)

	// ListActiveSlotOrders returns active orders whose date range covers asOf,
	// optionally restricted to one slot type, ordered by rotation_order then
	// insertion order.
	ListActiveSlotOrders(ctx context.Context, slotType *kinds.Tier, asOf time.Time) ([]SlotOrder, error)

	// ListActiveSlotOrdersForEntities returns active in-range orders bound to
	// any of the given entities.
	ListActiveSlotOrdersForEntities(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID, asOf time.Time) ([]SlotOrder, error)

	// ListSlotOrdersEnding returns active orders whose end date falls inside
	// [from, to], used by the expiry digest.
	ListSlotOrdersEnding(ctx context.Context, from, to time.Time) ([]SlotOrder, error)

	// GetCapacity returns the capacity row for a slot type, or nil when no
	// row exists (the display path treats absence as unbounded).
	GetCapacity(ctx context.Context, slotType kinds.Tier) (*SlotCapacity, error)
	UpsertCapacity(ctx context.Context, slotType kinds.Tier, visibleCount int) (SlotCapacity, error)
	ListCapacities(ctx context.Context) ([]SlotCapacity, error)
}
