package service

import (
	"context"
	"fmt"

	model "overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/store"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const menuFetchConcurrency = 4

type CatalogService struct {
	backend    Backend
	cache      CatalogCache
	dispatcher Dispatcher
	logger     *zap.Logger
}

// NewCatalogService accepts a nil cache.
func NewCatalogService(backend Backend, cache CatalogCache, dispatcher Dispatcher, logger *zap.Logger) *CatalogService {
	return &CatalogService{backend: backend, cache: cache, dispatcher: dispatcher, logger: logger}
}

// Refresh loads restaurants and their menus into the store. Unless force is
// set a cached catalog is used when present. A catalog the store rejects is
// neither cached nor kept in the cache.
func (s *CatalogService) Refresh(ctx context.Context, force bool) (*store.State, error) {
	if !force && s.cache != nil {
		restaurants, ok, err := s.cache.GetCatalog(ctx)
		if err != nil {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		if ok {
			state, err := outcome(s.dispatcher.Dispatch(store.SetRestaurantCatalog{Restaurants: restaurants}))
			if err == nil {
				return state, nil
			}
			s.logger.Warn("cached catalog rejected, reloading from backend", zap.Error(err))
			s.invalidate(ctx)
		}
	}

	var (
		catalog []model.Restaurant
		loaded  *store.State
	)
	err := withLoading(ctx, s.dispatcher, s.logger, "refresh catalog", func() error {
		var err error
		if catalog, err = s.fetch(ctx); err != nil {
			return err
		}
		loaded = s.dispatcher.Dispatch(store.SetRestaurantCatalog{Restaurants: catalog})
		return nil
	})
	if err != nil {
		return s.dispatcher.State(), err
	}
	if _, err := outcome(loaded); err != nil {
		s.logger.Warn("backend catalog rejected", zap.Error(err))
		return s.dispatcher.State(), err
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, catalog); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	s.logger.Info("catalog refreshed", zap.Int("restaurants", len(catalog)))
	return s.dispatcher.State(), nil
}

func (s *CatalogService) fetch(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := s.backend.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	catalog := make([]model.Restaurant, len(restaurants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(menuFetchConcurrency)
	for i, r := range restaurants {
		i, r := i, r
		g.Go(func() error {
			dishes, err := s.backend.ListDishes(gctx, string(r.ID))
			if err != nil {
				return fmt.Errorf("list dishes of restaurant %s: %w", r.ID, err)
			}
			catalog[i] = r.WithMenu(dishes)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *CatalogService) SelectRestaurant(restaurantID string) *store.State {
	return s.dispatcher.Dispatch(store.SetCurrentRestaurant{RestaurantID: restaurantID})
}

// invalidate drops the cached catalog after a menu edit.
func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
