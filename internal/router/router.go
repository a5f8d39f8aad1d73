package router

import (
	"net/http"

	"folio/internal/common"
	"folio/internal/config"
	"folio/internal/middleware"

	"github.com/gin-gonic/gin"
)

// New creates the preview server: middleware, the health and hook check
// endpoints, and the static portfolio for every other GET.
func New(cfg *config.Config, limiter *middleware.RateLimiter) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	// Order matters: ids and CORS before the limiter can reject.
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(limiter.Middleware())
	r.Use(middleware.AccessLog())

	site := newSite(cfg.Site)

	r.GET("/health", healthCheck)

	api := r.Group("/api/v1")
	{
		api.GET("/hooks", site.hooks)
	}

	r.NoRoute(site.serve)
	return r
}

// healthCheck handles GET /health
func healthCheck(c *gin.Context) {
	common.Success(c, http.StatusOK, gin.H{
		"status":  "ok",
		"service": "folio",
	})
}
