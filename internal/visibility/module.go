// Package visibility provides effective tier resolution and the
// editorial review gate bounded context.
package visibility

import (
	"time"

	"modtok/internal/events"
	apphttp "modtok/internal/http"
	"modtok/internal/visibility/handler"
	"modtok/internal/visibility/service"
	"modtok/platform/cache"
	"modtok/platform/logger"
	"modtok/platform/validator"
)

// Module is the visibility bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the visibility module. The readers
// are adapters over the catalog and slots modules, wired by the
// composition root. The cache may be nil.
func NewModule(
	baselines service.BaselineReader,
	slots service.SlotAssignmentReader,
	editorial service.EditorialStore,
	c *cache.Cache,
	cacheTTL time.Duration,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	svc := service.New(baselines, slots, editorial, c, cacheTTL, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "visibility"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts visibility routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/visibility/effective", m.handler.GetEffectiveVisibility)

	editorialGroup := ctx.Admin.Group("/editorial")
	editorialGroup.GET("/:entityType/:id", m.handler.GetEditorialState)
	editorialGroup.PUT("/:entityType/:id", m.handler.UpdateEditorialFlags)

	// Separate prefix: a static "bulk-approve" segment would clash with :entityType above.
	ctx.Admin.POST("/editorial-bulk-approve", m.handler.BulkApprove)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
