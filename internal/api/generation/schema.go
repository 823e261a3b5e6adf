package generation

import (
	gen "github.com/yeeun-luckymealky/seller-proto-sub000/internal/generation"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/types"
)

// SellerHeader selects the seller dashboard session.
const SellerHeader = "X-Seller-ID"

// PlaceRequest carries either an inline place snapshot or a place id to load.
type PlaceRequest struct {
	PlaceID string           `json:"placeId,omitempty"`
	Place   *types.PlaceInfo `json:"place,omitempty"`
}

type CancelMessageRequest struct {
	PlaceRequest
	Reason string `json:"reason" binding:"required"`
}

type LuckyBagDescriptionRequest struct {
	PlaceRequest
	MenuItems []string `json:"menuItems" binding:"required,min=1,dive,required"`
}

type SalesRecommendationRequest struct {
	PlaceID string           `json:"placeId,omitempty"`
	Stats   *types.StatsData `json:"stats,omitempty"`
}

// LuckyBagSetupRequest drafts a description and a quantity recommendation together.
type LuckyBagSetupRequest struct {
	PlaceRequest
	MenuItems []string         `json:"menuItems" binding:"required,min=1,dive,required"`
	Stats     *types.StatsData `json:"stats,omitempty"`
}

type GenerationResponse struct {
	types.BaseResponse
	Operation gen.Operation `json:"operation"`
	Text      string        `json:"text"`
}

type LuckyBagSetupResponse struct {
	types.BaseResponse
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

type StatusResponse struct {
	types.BaseResponse
	SellerID string `json:"sellerId"`
	gen.Snapshot
}
