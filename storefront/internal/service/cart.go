package service

import (
	"fmt"

	"overcooked-storefront/ordering/store"
)

// CartService resolves items against the cached catalog before adding them,
// so the cart only ever holds prices the catalog published.
type CartService struct {
	dispatcher Dispatcher
}

func NewCartService(dispatcher Dispatcher) *CartService {
	return &CartService{dispatcher: dispatcher}
}

func (s *CartService) Add(restaurantID, itemID string) (*store.State, error) {
	restaurant, ok := s.dispatcher.State().Restaurant(restaurantID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRestaurantNotFound, restaurantID)
	}
	item, ok := restaurant.FindItem(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: %q in restaurant %q", ErrItemNotFound, itemID, restaurantID)
	}
	return outcome(s.dispatcher.Dispatch(store.AddItem{Item: item, RestaurantID: restaurantID}))
}

func (s *CartService) RemoveOne(itemID string) *store.State {
	return s.dispatcher.Dispatch(store.RemoveOneUnit{ItemID: itemID})
}

func (s *CartService) Clear() *store.State {
	return s.dispatcher.Dispatch(store.ClearCart{})
}
