package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/voyagebooks/voyage_backoffice/cmd/docs"
	"github.com/voyagebooks/voyage_backoffice/internal/core/services"
	"github.com/voyagebooks/voyage_backoffice/internal/middleware"
	"github.com/voyagebooks/voyage_backoffice/pkg/config"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svcs *services.ServiceContainer) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, cfg, svcs.User)
	setupAPIV1Routes(r, cfg, svcs)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates
// to the per-entity route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, svcs *services.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, svcs.User)
	registerAccountRoutes(v1, svcs.Account)
	registerJournalRoutes(v1, svcs.Journal)
	registerSalesRoutes(v1, svcs.Sales)
	registerSyncRoutes(v1, svcs.Sync, svcs.SyncConfig)
	registerReportingRoutes(v1, svcs.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
