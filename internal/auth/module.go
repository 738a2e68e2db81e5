// Package auth provides admin authentication.
package auth

import (
	"modtok/internal/auth/handler"
	"modtok/internal/auth/repository"
	"modtok/internal/auth/service"
	apphttp "modtok/internal/http"
	"modtok/platform/config"
	"modtok/platform/logger"
	"modtok/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the auth module.
func NewModule(pool *pgxpool.Pool, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/auth/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)

	ctx.Admin.GET("/me", m.handler.Me)
	ctx.Admin.PUT("/me/password", m.handler.ChangePassword)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
