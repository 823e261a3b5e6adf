package generation

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	gen "github.com/yeeun-luckymealky/seller-proto-sub000/internal/generation"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/llm"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/loaders"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/types"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/utils"
)

type Controller struct {
	svc *Service
}

func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

func (c *Controller) ReviewReply(ctx *gin.Context) {
	var req types.ReviewInput
	if !bind(ctx, &req) {
		return
	}
	text, err := c.svc.ReviewReply(ctx.Request.Context(), sellerID(ctx), &req)
	c.respond(ctx, gen.OpReviewReply, text, err)
}

func (c *Controller) ConfirmMessage(ctx *gin.Context) {
	var req PlaceRequest
	if !bind(ctx, &req) {
		return
	}
	text, err := c.svc.ConfirmMessage(ctx.Request.Context(), sellerID(ctx), &req)
	c.respond(ctx, gen.OpConfirmMessage, text, err)
}

func (c *Controller) CancelMessage(ctx *gin.Context) {
	var req CancelMessageRequest
	if !bind(ctx, &req) {
		return
	}
	text, err := c.svc.CancelMessage(ctx.Request.Context(), sellerID(ctx), &req)
	c.respond(ctx, gen.OpCancelMessage, text, err)
}

func (c *Controller) LuckyBagDescription(ctx *gin.Context) {
	var req LuckyBagDescriptionRequest
	if !bind(ctx, &req) {
		return
	}
	text, err := c.svc.LuckyBagDescription(ctx.Request.Context(), sellerID(ctx), &req)
	c.respond(ctx, gen.OpLuckyBagDescription, text, err)
}

func (c *Controller) SalesRecommendation(ctx *gin.Context) {
	var req SalesRecommendationRequest
	if !bind(ctx, &req) {
		return
	}
	text, err := c.svc.SalesRecommendation(ctx.Request.Context(), sellerID(ctx), &req)
	c.respond(ctx, gen.OpSalesRecommendation, text, err)
}

func (c *Controller) LuckyBagSetup(ctx *gin.Context) {
	var req LuckyBagSetupRequest
	if !bind(ctx, &req) {
		return
	}
	result, err := c.svc.LuckyBagSetup(ctx.Request.Context(), sellerID(ctx), &req)
	if err != nil {
		writeError(ctx, "lucky_bag_setup", err)
		return
	}
	result.RequestID = requestID(ctx)
	ctx.JSON(http.StatusOK, result)
}

func (c *Controller) Status(ctx *gin.Context) {
	id := sellerID(ctx)
	ctx.JSON(http.StatusOK, StatusResponse{
		BaseResponse: types.BaseResponse{RequestID: requestID(ctx), Success: true},
		SellerID:     id,
		Snapshot:     c.svc.Status(id),
	})
}

func (c *Controller) ReleaseSession(ctx *gin.Context) {
	id := sellerID(ctx)
	released := c.svc.Release(id)
	ctx.JSON(http.StatusOK, gin.H{
		"request_id": requestID(ctx),
		"success":    true,
		"sellerId":   id,
		"released":   released,
	})
}

func (c *Controller) respond(ctx *gin.Context, op gen.Operation, text string, err error) {
	if err != nil {
		writeError(ctx, string(op), err)
		return
	}
	ctx.JSON(http.StatusOK, GenerationResponse{
		BaseResponse: types.BaseResponse{RequestID: requestID(ctx), Success: true},
		Operation:    op,
		Text:         text,
	})
}

func bind(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		utils.Zlog.Warn("invalid generation payload",
			zap.String("path", ctx.FullPath()),
			zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return false
	}
	return true
}

func writeError(ctx *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, ErrPlaceRequired), errors.Is(err, ErrStatsRequired):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	case errors.Is(err, loaders.ErrPlaceNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":     "not_found",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	var genErr *llm.GenerationError
	if errors.As(err, &genErr) {
		status := http.StatusBadGateway
		if genErr.Kind == llm.KindTransport && genErr.Timeout() {
			status = http.StatusGatewayTimeout
		}
		utils.Zlog.Error("generation failed",
			zap.String("operation", operation),
			zap.String("kind", string(genErr.Kind)),
			zap.Int("status_code", genErr.StatusCode),
			zap.Error(err))
		ctx.JSON(status, gin.H{
			"error":       "generation_failed",
			"operation":   operation,
			"kind":        genErr.Kind,
			"status_code": genErr.StatusCode,
			"message":     err.Error(),
			"timestamp":   time.Now().UTC(),
		})
		return
	}

	utils.Zlog.Error("generation request failed", zap.String("operation", operation), zap.Error(err))
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error":     "internal_error",
		"message":   err.Error(),
		"timestamp": time.Now().UTC(),
	})
}

func sellerID(ctx *gin.Context) string {
	if id := ctx.GetHeader(SellerHeader); id != "" {
		return id
	}
	return gen.DefaultSellerID
}

func requestID(ctx *gin.Context) string {
	if idVal, exists := ctx.Get("request_id"); exists {
		if rid, ok := idVal.(string); ok {
			return rid
		}
	}
	return ""
}
