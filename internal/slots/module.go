// Package slots provides the promotional slot ledger bounded context.
package slots

import (
	"modtok/internal/events"
	apphttp "modtok/internal/http"
	"modtok/internal/slots/handler"
	"modtok/internal/slots/repository"
	"modtok/internal/slots/service"
	"modtok/platform/logger"
	"modtok/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the slots bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the slots module. The entity reader is
// an adapter over the catalog module, wired by the composition root.
func NewModule(pool *pgxpool.Pool, entities service.EntitySummaryReader, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, entities, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "slots"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapter wiring.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts slots routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/slots/active", m.handler.GetActiveSlots)

	adminGroup := ctx.Admin.Group("/slots")
	adminGroup.POST("", m.handler.CreateSlotOrder)
	adminGroup.GET("", m.handler.ListSlotOrders)
	adminGroup.GET("/:id", m.handler.GetSlotOrderByID)
	adminGroup.PUT("/:id", m.handler.UpdateSlotOrder)

	// Separate prefix: a static "capacity" segment would clash with :id above.
	ctx.Admin.PUT("/slot-capacities/:slotType", m.handler.SetCapacity)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
