// Package service implements the slot ledger business logic: order
// creation and updates, capacity configuration, and the displayable
// subset served to listing pages.
package service

import (
	"context"
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

// EntitySummaryReader resolves catalog entities referenced by slot orders.
// Implemented by an adapter over the catalog repository.
type EntitySummaryReader interface {
	// GetSummaries returns summaries for the ids that exist and are
	// published; missing ids are simply absent from the result map.
	GetSummaries(ctx context.Context, entityType kinds.EntityType, ids []uuid.UUID) (map[uuid.UUID]transport.EntitySummary, error)
}

// Service provides business logic for the slot ledger.
type Service struct {
	repo     repository.Repository
	entities EntitySummaryReader
	bus      events.Bus
	log      *logger.Logger
}

// New creates a new slots service.
func New(repo repository.Repository, entities EntitySummaryReader, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, entities: entities, bus: bus, log: log}
}

// CreateSlotOrder validates and records a promotional reservation.
// Capacity is deliberately not checked here: over-booking is allowed and
// the visible subset is enforced at display time.
func (s *Service) CreateSlotOrder(ctx context.Context, req transport.CreateSlotOrderRequest) (transport.SlotOrderResponse, error) {
	slotType, err := kinds.ParseTier(req.SlotType)
	if err != nil {
		return transport.SlotOrderResponse{}, err
	}

	var contentType *kinds.EntityType
	if req.ContentType != nil {
		parsed, err := kinds.ParseEntityType(*req.ContentType)
		if err != nil {
			return transport.SlotOrderResponse{}, err
		}
		contentType = &parsed
	}
	if (contentType == nil) != (req.ContentID == nil) {
		return transport.SlotOrderResponse{}, apperr.Validation("contentType and contentId must be provided together")
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return transport.SlotOrderResponse{}, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	order, err := s.repo.CreateSlotOrder(ctx, repository.CreateSlotOrderParams{
		SlotType:      slotType,
		ContentType:   contentType,
		ContentID:     req.ContentID,
		StartDate:     startDate,
		EndDate:       endDate,
		RotationOrder: req.RotationOrder,
		IsActive:      isActive,
	})
	if err != nil {
		return transport.SlotOrderResponse{}, err
	}

	s.bus.Publish(ctx, events.SlotOrderCreated{
		BaseEvent: events.NewBaseEvent(),
		OrderID:   order.ID,
		SlotType:  order.SlotType,
	})

	s.log.Info("slot order created", "id", order.ID, "slotType", order.SlotType)
	return toSlotOrderResponse(order), nil
}

// UpdateSlotOrder edits dates, rotation order, or the active switch.
func (s *Service) UpdateSlotOrder(ctx context.Context, id uuid.UUID, req transport.UpdateSlotOrderRequest) (transport.SlotOrderResponse, error) {
	current, err := s.repo.GetSlotOrderByID(ctx, id)
	if err != nil {
		return transport.SlotOrderResponse{}, err
	}

	params := repository.UpdateSlotOrderParams{
		ID:            id,
		RotationOrder: req.RotationOrder,
		IsActive:      req.IsActive,
	}

	// The updated range must still satisfy end >= start, including when
	// only one bound changes.
	startDate := current.StartDate
	endDate := current.EndDate
	if req.StartDate != nil {
		parsed, err := dates.Parse(*req.StartDate)
		if err != nil {
			return transport.SlotOrderResponse{}, err
		}
		startDate = parsed
		params.StartDate = &parsed
	}
	if req.EndDate != nil {
		parsed, err := dates.Parse(*req.EndDate)
		if err != nil {
			return transport.SlotOrderResponse{}, err
		}
		endDate = parsed
		params.EndDate = &parsed
	}
	if endDate.Before(startDate) {
		return transport.SlotOrderResponse{}, apperr.Validation("endDate must not be before startDate")
	}

	order, err := s.repo.UpdateSlotOrder(ctx, params)
	if err != nil {
		return transport.SlotOrderResponse{}, err
	}

	s.log.Info("slot order updated", "id", order.ID)
	return toSlotOrderResponse(order), nil
}

// GetSlotOrderByID retrieves one ledger entry.
func (s *Service) GetSlotOrderByID(ctx context.Context, id uuid.UUID) (transport.SlotOrderResponse, error) {
	order, err := s.repo.GetSlotOrderByID(ctx, id)
	if err != nil {
		return transport.SlotOrderResponse{}, err
	}
	return toSlotOrderResponse(order), nil
}

// ListSlotOrders lists the ledger for the admin surface.
func (s *Service) ListSlotOrders(ctx context.Context, req transport.ListSlotOrdersRequest) (transport.SlotOrderListResponse, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	params := repository.ListSlotOrdersParams{
		IncludeInactive: req.IncludeInactive,
		Offset:          (page - 1) * pageSize,
		Limit:           pageSize,
	}
	if req.SlotType != "" {
		slotType, err := kinds.ParseTier(req.SlotType)
		if err != nil {
			return transport.SlotOrderListResponse{}, err
		}
		params.SlotType = &slotType
	}
	if req.ActiveOn != "" {
		activeOn, err := dates.Parse(req.ActiveOn)
		if err != nil {
			return transport.SlotOrderListResponse{}, err
		}
		params.ActiveOn = &activeOn
	}

	items, total, err := s.repo.ListSlotOrders(ctx, params)
	if err != nil {
		return transport.SlotOrderListResponse{}, err
	}

	responses := make([]transport.SlotOrderResponse, len(items))
	for i, item := range items {
		responses[i] = toSlotOrderResponse(item)
	}
	totalPages := (total + pageSize - 1) / pageSize
	return transport.SlotOrderListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// SetCapacity configures the visible count for a slot type.
func (s *Service) SetCapacity(ctx context.Context, rawSlotType string, visibleCount int) (transport.CapacityResponse, error) {
	slotType, err := kinds.ParseTier(rawSlotType)
	if err != nil {
		return transport.CapacityResponse{}, err
	}

	capacity, err := s.repo.UpsertCapacity(ctx, slotType, visibleCount)
	if err != nil {
		return transport.CapacityResponse{}, err
	}

	s.log.Info("slot capacity set", "slotType", slotType, "visibleCount", visibleCount)
	return transport.CapacityResponse{
		SlotType:     string(capacity.SlotType),
		VisibleCount: capacity.VisibleCount,
	}, nil
}

// OrdersEndingWithin returns active orders whose end date falls within the
// next N days, for the expiry digest.
func (s *Service) OrdersEndingWithin(ctx context.Context, days int) ([]transport.SlotOrderResponse, error) {
	from := dates.Today()
	to := from.AddDate(0, 0, days)

	items, err := s.repo.ListSlotOrdersEnding(ctx, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]transport.SlotOrderResponse, len(items))
	for i, item := range items {
		responses[i] = toSlotOrderResponse(item)
	}
	return responses, nil
}

func parseDateRange(rawStart, rawEnd string) (time.Time, time.Time, error) {
	startDate, err := dates.Parse(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := dates.Parse(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, apperr.Validation("endDate must not be before startDate")
	}
	return startDate, endDate, nil
}

func toSlotOrderResponse(order repository.SlotOrder) transport.SlotOrderResponse {
	response := transport.SlotOrderResponse{
		ID:            order.ID,
		SlotType:      string(order.SlotType),
		ContentID:     order.ContentID,
		StartDate:     dates.Format(order.StartDate),
		EndDate:       dates.Format(order.EndDate),
		RotationOrder: order.RotationOrder,
		IsActive:      order.IsActive,
		CreatedAt:     order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     order.UpdatedAt.Format(time.RFC3339),
	}
	if order.ContentType != nil {
		contentType := string(*order.ContentType)
		response.ContentType = &contentType
	}
	return response
}
