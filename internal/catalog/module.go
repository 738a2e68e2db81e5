// Package catalog provides the provider, house, and service product
// listings bounded context.
package catalog

import (
	"modtok/internal/catalog/handler"
	"modtok/internal/catalog/repository"
	"modtok/internal/catalog/service"
	apphttp "modtok/internal/http"
	"modtok/platform/config"
	"modtok/platform/logger"
	"modtok/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module. The asset store may
// be nil when object storage is not configured.
func NewModule(pool *pgxpool.Pool, store service.AssetStore, buckets service.AssetBuckets, site config.SiteConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, store, buckets, site, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for adapter wiring.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	publicGroup := ctx.V1.Group("/catalog/:entityType")
	publicGroup.GET("", m.handler.ListPublished)
	publicGroup.GET("/:slug", m.handler.GetPublishedBySlug)
	publicGroup.GET("/:slug/qr", m.handler.GetPublicPageQR)

	adminGroup := ctx.Admin.Group("/catalog/:entityType")
	adminGroup.POST("", m.handler.CreateEntity)
	adminGroup.GET("", m.handler.ListEntities)
	adminGroup.GET("/:id", m.handler.GetEntityByID)
	adminGroup.PUT("/:id", m.handler.UpdateEntity)
	adminGroup.DELETE("/:id", m.handler.DeleteEntity)
	adminGroup.POST("/:id/assets", m.handler.UploadAsset)
	adminGroup.GET("/:id/assets", m.handler.ListAssets)

	// Separate prefix: a static "assets" segment would clash with :entityType above.
	ctx.Admin.DELETE("/catalog-assets/:assetID", m.handler.DeleteAsset)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
