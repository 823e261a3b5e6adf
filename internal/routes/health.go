package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/controllers"
)

// SetupHealthRoutes configures health check endpoints
func SetupHealthRoutes(router *gin.Engine, db controllers.Pinger) {
	healthController := controllers.NewHealthController(db)

	// Root endpoint
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Health check endpoints
	router.GET("/health", healthController.HealthCheck)
	router.GET("/health/live", healthController.Liveness)
	router.GET("/health/ready", healthController.Readiness)
}
