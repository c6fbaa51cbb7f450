package service

import (
	"context"
	"fmt"

	model "overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/store"
	"overcooked-storefront/storefront/internal/domain"

	"go.uber.org/zap"
)

// MenuService lets a restaurant edit its own menu. Every change is sent to
// the backend first and mirrored into the catalog cache afterwards.
type MenuService struct {
	backend    Backend
	catalog    *CatalogService
	tokens     TokenSource
	dispatcher Dispatcher
	logger     *zap.Logger
}

func NewMenuService(backend Backend, catalog *CatalogService, tokens TokenSource, dispatcher Dispatcher, logger *zap.Logger) *MenuService {
	return &MenuService{backend: backend, catalog: catalog, tokens: tokens, dispatcher: dispatcher, logger: logger}
}

// restaurantID is the selected restaurant, or the restaurant account itself.
func (s *MenuService) restaurantID() (string, error) {
	snap := s.dispatcher.State()
	if id := snap.CurrentRestaurantID(); id != "" {
		return id, nil
	}
	session, ok := snap.Session()
	if !ok {
		return "", ErrNotLoggedIn
	}
	if _, ok := snap.Restaurant(session.UserID); !ok {
		return "", fmt.Errorf("%w: %q", ErrRestaurantNotFound, session.UserID)
	}
	return session.UserID, nil
}

func (s *MenuService) AddItem(ctx context.Context, item model.MenuItem) (*store.State, error) {
	restaurantID, err := s.restaurantID()
	if err != nil {
		return s.dispatcher.State(), err
	}

	var result *store.State
	err = withLoading(ctx, s.dispatcher, s.logger, "add menu item", func() error {
		created, err := s.backend.CreateDish(ctx, s.tokens.Token(), domain.DishFromMenuItem(restaurantID, item))
		if err != nil {
			return fmt.Errorf("create dish: %w", err)
		}
		added := created.MenuItem()
		if added.ID == "" {
			added = item
		}
		result = s.dispatcher.Dispatch(store.AddMenuItem{RestaurantID: restaurantID, Item: added})
		return nil
	})
	return s.finish(ctx, result, err)
}

func (s *MenuService) UpdateItem(ctx context.Context, item model.MenuItem) (*store.State, error) {
	restaurantID, err := s.restaurantID()
	if err != nil {
		return s.dispatcher.State(), err
	}

	var result *store.State
	err = withLoading(ctx, s.dispatcher, s.logger, "update menu item", func() error {
		if _, err := s.backend.UpdateDish(ctx, s.tokens.Token(), domain.DishFromMenuItem(restaurantID, item)); err != nil {
			return fmt.Errorf("update dish: %w", err)
		}
		result = s.dispatcher.Dispatch(store.UpdateMenuItem{RestaurantID: restaurantID, Item: item})
		return nil
	})
	return s.finish(ctx, result, err)
}

func (s *MenuService) DeleteItem(ctx context.Context, itemID string) (*store.State, error) {
	restaurantID, err := s.restaurantID()
	if err != nil {
		return s.dispatcher.State(), err
	}

	var result *store.State
	err = withLoading(ctx, s.dispatcher, s.logger, "delete menu item", func() error {
		if err := s.backend.DeleteDish(ctx, s.tokens.Token(), itemID); err != nil {
			return fmt.Errorf("delete dish: %w", err)
		}
		result = s.dispatcher.Dispatch(store.DeleteMenuItem{RestaurantID: restaurantID, ItemID: itemID})
		return nil
	})
	return s.finish(ctx, result, err)
}

func (s *MenuService) finish(ctx context.Context, result *store.State, err error) (*store.State, error) {
	if err != nil {
		return s.dispatcher.State(), err
	}
	if _, err := outcome(result); err != nil {
		return s.dispatcher.State(), err
	}
	s.catalog.invalidate(ctx)
	return s.dispatcher.State(), nil
}
