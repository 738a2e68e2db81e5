// Package content provides the blog, news, static page, FAQ, and contact
// form bounded context.
package content

import (
	"modtok/internal/content/handler"
	"modtok/internal/content/repository"
	"modtok/internal/content/service"
	"modtok/internal/events"
	apphttp "modtok/internal/http"
	"modtok/platform/logger"
	"modtok/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the content bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the content module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "content"
}

// Repository returns the repository for feed generation wiring.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts content routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	publicGroup := ctx.V1.Group("/content/:kind")
	publicGroup.GET("", m.handler.ListPublished)
	publicGroup.GET("/:slug", m.handler.GetPublishedBySlug)

	ctx.V1.POST("/contact", m.handler.SubmitContact)

	adminGroup := ctx.Admin.Group("/content/:kind")
	adminGroup.POST("", m.handler.CreateEntry)
	adminGroup.GET("", m.handler.ListEntries)
	adminGroup.GET("/:id", m.handler.GetEntryByID)
	adminGroup.PUT("/:id", m.handler.UpdateEntry)
	adminGroup.DELETE("/:id", m.handler.DeleteEntry)

	ctx.Admin.GET("/contact-submissions", m.handler.ListContactSubmissions)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
