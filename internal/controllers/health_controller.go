package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/utils"
)

// Pinger is satisfied by the Postgres client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db Pinger
}

// NewHealthController accepts a nil db when no database is configured.
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// HealthCheck godoc
// @Summary Check application health
// @Description Check if the application and, when configured, the database are healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthController) HealthCheck(c *gin.Context) {
	database, ok := h.checkDatabase("Database health check failed")
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"database":  database,
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"database":  database,
		"timestamp": time.Now().UTC(),
	})
}

// Liveness godoc
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/live [get]
func (h *HealthController) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC(),
	})
}

// Readiness godoc
// @Summary Readiness probe
// @Description Check if the application is ready to serve traffic
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/ready [get]
func (h *HealthController) Readiness(c *gin.Context) {
	database, ok := h.checkDatabase("Readiness check failed")
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"database":  database,
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"database":  database,
		"timestamp": time.Now().UTC(),
	})
}

func (h *HealthController) checkDatabase(failureMsg string) (string, bool) {
	if h.db == nil {
		return "disabled", true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.Zlog.Error(failureMsg, zap.Error(err))
		return "down", false
	}
	return "up", true
}
