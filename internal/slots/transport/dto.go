package transport

import "github.com/google/uuid"

// Slot orders

type CreateSlotOrderRequest struct {
	SlotType      string     `json:"slotType" validate:"required,oneof=standard destacado premium"`
	ContentType   *string    `json:"contentType,omitempty" validate:"omitempty,oneof=provider house service_product"`
	ContentID     *uuid.UUID `json:"contentId,omitempty"`
	StartDate     string     `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string     `json:"endDate" validate:"required,datetime=2006-01-02"`
	RotationOrder int        `json:"rotationOrder" validate:"min=0"`
	IsActive      *bool      `json:"isActive,omitempty"`
}

type UpdateSlotOrderRequest struct {
	StartDate     *string `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RotationOrder *int    `json:"rotationOrder,omitempty" validate:"omitempty,min=0"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

type ListSlotOrdersRequest struct {
	SlotType        string `form:"slotType" validate:"omitempty,oneof=standard destacado premium"`
	ActiveOn        string `form:"activeOn" validate:"omitempty,datetime=2006-01-02"`
	IncludeInactive bool   `form:"includeInactive"`
	Page            int    `form:"page" validate:"omitempty,min=1"`
	PageSize        int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

type SlotOrderResponse struct {
	ID            uuid.UUID  `json:"id"`
	SlotType      string     `json:"slotType"`
	ContentType   *string    `json:"contentType,omitempty"`
	ContentID     *uuid.UUID `json:"contentId,omitempty"`
	StartDate     string     `json:"startDate"`
	EndDate       string     `json:"endDate"`
	RotationOrder int        `json:"rotationOrder"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     string     `json:"createdAt"`
	UpdatedAt     string     `json:"updatedAt"`
}

type SlotOrderListResponse struct {
	Items      []SlotOrderResponse `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
}

// Active display

type ActiveSlotsRequest struct {
	SlotType string `form:"slotType" validate:"omitempty,oneof=standard destacado premium"`
	ActiveOn string `form:"activeOn" validate:"omitempty,datetime=2006-01-02"`
}

// EntitySummary is the minimal entity payload hydrated into a displayable slot.
type EntitySummary struct {
	ID   uuid.UUID `json:"id"`
	Type string    `json:"type"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
	Tier string    `json:"tier"`
}

type SlotWithContent struct {
	Order  SlotOrderResponse `json:"order"`
	Entity *EntitySummary    `json:"entity,omitempty"`
}

type CapacityResponse struct {
	SlotType     string `json:"slotType"`
	VisibleCount int    `json:"visibleCount"`
}

type ActiveSlotsResponse struct {
	Slots  map[string][]SlotWithContent `json:"slots"`
	Config []CapacityResponse           `json:"config"`
	AsOf   string                       `json:"asOf"`
}

// Capacity admin

type SetCapacityRequest struct {
	VisibleCount *int `json:"visibleCount" validate:"required,min=0"`
}
