package generation

import (
	"github.com/gin-gonic/gin"

	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/config"
	gen "github.com/yeeun-luckymealky/seller-proto-sub000/internal/generation"
)

// RegisterRoutes registers the /ai endpoints. places may be nil.
func RegisterRoutes(router *gin.Engine, registry *gen.Registry, places PlaceSource, cfg *config.Config) {
	svc := NewService(registry, places, cfg.StatsHistoryDays)
	ctrl := NewController(svc)

	ai := router.Group("/ai")
	ai.POST("/review-reply", ctrl.ReviewReply)
	ai.POST("/confirm-message", ctrl.ConfirmMessage)
	ai.POST("/cancel-message", ctrl.CancelMessage)
	ai.POST("/lucky-bag-description", ctrl.LuckyBagDescription)
	ai.POST("/sales-recommendation", ctrl.SalesRecommendation)
	ai.POST("/lucky-bag-setup", ctrl.LuckyBagSetup)
	ai.GET("/status", ctrl.Status)
	ai.DELETE("/session", ctrl.ReleaseSession)
}
