package generation

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	gen "github.com/yeeun-luckymealky/seller-proto-sub000/internal/generation"
	"github.com/yeeun-luckymealky/seller-proto-sub000/internal/types"
)

var (
	ErrPlaceRequired = errors.New("either place or placeId is required")
	ErrStatsRequired = errors.New("either stats or placeId is required")
)

// PlaceSource supplies read-only place and order snapshots.
type PlaceSource interface {
	GetPlaceInfo(ctx context.Context, placeID string) (*types.PlaceInfo, error)
	GetOrderStats(ctx context.Context, placeID string, historyDays int) (*types.StatsData, error)
}

// Service resolves domain snapshots and runs them through the seller's orchestrator.
type Service struct {
	registry    *gen.Registry
	places      PlaceSource
	historyDays int
}

// NewService accepts a nil PlaceSource; requests must then carry inline snapshots.
func NewService(registry *gen.Registry, places PlaceSource, historyDays int) *Service {
	return &Service{registry: registry, places: places, historyDays: historyDays}
}

func (s *Service) ReviewReply(ctx context.Context, sellerID string, req *types.ReviewInput) (string, error) {
	return s.registry.For(sellerID).ReviewReply(ctx, req.PlaceName, req.Content, req.Rating)
}

func (s *Service) ConfirmMessage(ctx context.Context, sellerID string, req *PlaceRequest) (string, error) {
	place, err := s.resolvePlace(ctx, req)
	if err != nil {
		return "", err
	}
	return s.registry.For(sellerID).ConfirmMessage(ctx, place)
}

func (s *Service) CancelMessage(ctx context.Context, sellerID string, req *CancelMessageRequest) (string, error) {
	place, err := s.resolvePlace(ctx, &req.PlaceRequest)
	if err != nil {
		return "", err
	}
	return s.registry.For(sellerID).CancelMessage(ctx, place, req.Reason)
}

func (s *Service) LuckyBagDescription(ctx context.Context, sellerID string, req *LuckyBagDescriptionRequest) (string, error) {
	place, err := s.resolvePlace(ctx, &req.PlaceRequest)
	if err != nil {
		return "", err
	}
	return s.registry.For(sellerID).LuckyBagDescription(ctx, place, req.MenuItems)
}

func (s *Service) SalesRecommendation(ctx context.Context, sellerID string, req *SalesRecommendationRequest) (string, error) {
	stats, err := s.resolveStats(ctx, req.PlaceID, req.Stats)
	if err != nil {
		return "", err
	}
	return s.registry.For(sellerID).SalesRecommendation(ctx, stats)
}

// LuckyBagSetup runs the description and recommendation operations
// concurrently. A failure of one does not cancel the other.
func (s *Service) LuckyBagSetup(ctx context.Context, sellerID string, req *LuckyBagSetupRequest) (*LuckyBagSetupResponse, error) {
	place, err := s.resolvePlace(ctx, &req.PlaceRequest)
	if err != nil {
		return nil, err
	}
	placeID := req.PlaceID
	if placeID == "" {
		placeID = place.ID
	}
	stats, err := s.resolveStats(ctx, placeID, req.Stats)
	if err != nil {
		return nil, err
	}

	orch := s.registry.For(sellerID)
	res := &LuckyBagSetupResponse{}

	var g errgroup.Group
	g.Go(func() error {
		text, err := orch.LuckyBagDescription(ctx, place, req.MenuItems)
		if err != nil {
			return fmt.Errorf("lucky bag description: %w", err)
		}
		res.Description = text
		return nil
	})
	g.Go(func() error {
		text, err := orch.SalesRecommendation(ctx, stats)
		if err != nil {
			return fmt.Errorf("sales recommendation: %w", err)
		}
		res.Recommendation = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Success = true
	return res, nil
}

// Status reports the seller's state. A seller without a session is idle.
func (s *Service) Status(sellerID string) gen.Snapshot {
	orch, ok := s.registry.Get(sellerID)
	if !ok {
		return gen.IdleSnapshot()
	}
	return orch.Snapshot()
}

func (s *Service) Release(sellerID string) bool {
	return s.registry.Release(sellerID)
}

func (s *Service) resolvePlace(ctx context.Context, req *PlaceRequest) (types.PlaceInfo, error) {
	if req.Place != nil {
		return *req.Place, nil
	}
	if req.PlaceID == "" || s.places == nil {
		return types.PlaceInfo{}, ErrPlaceRequired
	}
	place, err := s.places.GetPlaceInfo(ctx, req.PlaceID)
	if err != nil {
		return types.PlaceInfo{}, err
	}
	return *place, nil
}

func (s *Service) resolveStats(ctx context.Context, placeID string, stats *types.StatsData) (types.StatsData, error) {
	if stats != nil {
		return *stats, nil
	}
	if placeID == "" || s.places == nil {
		return types.StatsData{}, ErrStatsRequired
	}
	loaded, err := s.places.GetOrderStats(ctx, placeID, s.historyDays)
	if err != nil {
		return types.StatsData{}, err
	}
	return *loaded, nil
}
