package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/api/generation"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/config"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/controllers"
	gen "github.com/yeeun-luckymealky/seller-proto-sub000/internal/generation"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/loaders"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/middleware"
)

// SetupRoutes configures all application routes. db is nil when no database is configured.
func SetupRoutes(router *gin.Engine, registry *gen.Registry, db *loaders.PostgresClient, cfg *config.Config) {
	// Apply global middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID())

	var (
		pinger controllers.Pinger
		places generation.PlaceSource
	)
	if db != nil {
		pinger = db
		places = db
	}

	// Setup route groups
	SetupHealthRoutes(router, pinger)
	SetupSystemRoutes(router, registry, cfg)
	generation.RegisterRoutes(router, registry, places, cfg)
	Setup404Handler(router)
}

// SetupSystemRoutes configures service metadata endpoints
func SetupSystemRoutes(router *gin.Engine, registry *gen.Registry, cfg *config.Config) {
	systemController := controllers.NewSystemController(cfg, registry.Len)

	v1 := router.Group("/api/v1")
	v1.GET("/status", systemController.Status)
	v1.GET("/info", systemController.Info)
}
