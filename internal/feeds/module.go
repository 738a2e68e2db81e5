package feeds

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apphttp "modtok/internal/http"
	"modtok/platform/logger"
)

// Module serves the sitemap and RSS feed at the engine root, outside the
// /api/v1 prefix, because crawlers expect them there.
type Module struct {
	gen *Generator
	log *logger.Logger
}

// NewModule creates and initializes the feeds module.
func NewModule(gen *Generator, log *logger.Logger) *Module {
	return &Module{gen: gen, log: log}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "feeds"
}

// RegisterRoutes mounts feed routes on the engine root.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Engine.GET("/sitemap.xml", m.serveSitemap)
	ctx.Engine.GET("/feed.xml", m.serveRSS)
}

func (m *Module) serveSitemap(c *gin.Context) {
	body, err := m.gen.Sitemap(c.Request.Context())
	if err != nil {
		m.log.Error("sitemap generation failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (m *Module) serveRSS(c *gin.Context) {
	body, err := m.gen.RSS(c.Request.Context())
	if err != nil {
		m.log.Error("rss generation failed", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
