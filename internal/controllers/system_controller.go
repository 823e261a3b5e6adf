package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/config"
)

type SystemController struct {
	cfg      *config.Config
	sessions func() int
}

// NewSystemController reports live generation sessions through sessions.
func NewSystemController(cfg *config.Config, sessions func() int) *SystemController {
	return &SystemController{cfg: cfg, sessions: sessions}
}

// Status godoc
// @Summary Get system status
// @Description Get current system status information
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/status [get]
func (s *SystemController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     s.cfg.ServiceName,
		"version":     "1.0.0",
		"environment": s.cfg.Environment,
		"hostname":    s.cfg.Hostname,
		"timestamp":   time.Now().UTC(),
	})
}

// Info godoc
// @Summary Get system information
// @Description Get detailed system information
// @Tags system
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/info [get]
func (s *SystemController) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":             s.cfg.ServiceName,
		"version":             "1.0.0",
		"environment":         s.cfg.Environment,
		"hostname":            s.cfg.Hostname,
		"debug":               s.cfg.Debug,
		"log_level":           s.cfg.LogLevel,
		"generation_provider": s.cfg.GenerationProvider,
		"generation_model":    s.generationModel(),
		"database_enabled":    s.cfg.DatabaseURL != "",
		"active_sessions":     s.sessions(),
		"timestamp":           time.Now().UTC(),
	})
}

func (s *SystemController) generationModel() string {
	if s.cfg.GenerationProvider == config.ProviderGemini {
		return s.cfg.GeminiModel
	}
	return s.cfg.GenerationModel
}
