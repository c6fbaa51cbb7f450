package store

import (
	"errors"
	"fmt"
)

var ErrInvariant = errors.New("state invariant violated")

// Validate checks the structural invariants every published snapshot holds.
func Validate(s *State) error {
	if err := s.cart.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}

	if s.session != nil {
		if s.session.UserID == "" || !s.session.Role.Valid() {
			return fmt.Errorf("%w: malformed session", ErrInvariant)
		}
	}

	restaurants := make(map[string]struct{}, len(s.restaurants))
	for _, r := range s.restaurants {
		if r.ID == "" {
			return fmt.Errorf("%w: restaurant without id", ErrInvariant)
		}
		if _, dup := restaurants[r.ID]; dup {
			return fmt.Errorf("%w: duplicate restaurant %q", ErrInvariant, r.ID)
		}
		restaurants[r.ID] = struct{}{}

		items := make(map[string]struct{}, len(r.Menu))
		for _, item := range r.Menu {
			if _, dup := items[item.ID]; dup {
				return fmt.Errorf("%w: duplicate menu item %q in restaurant %q", ErrInvariant, item.ID, r.ID)
			}
			items[item.ID] = struct{}{}
		}
	}
	if s.currentRestaurantID != "" {
		if _, ok := restaurants[s.currentRestaurantID]; !ok {
			return fmt.Errorf("%w: current restaurant %q is not cached", ErrInvariant, s.currentRestaurantID)
		}
	}

	orders := make(map[string]struct{}, len(s.orders))
	for _, o := range s.orders {
		if o.ID == "" {
			return fmt.Errorf("%w: order without id", ErrInvariant)
		}
		if _, dup := orders[o.ID]; dup {
			return fmt.Errorf("%w: duplicate order %q", ErrInvariant, o.ID)
		}
		if !o.Status.Valid() {
			return fmt.Errorf("%w: order %q has status %q", ErrInvariant, o.ID, o.Status)
		}
		orders[o.ID] = struct{}{}
	}
	return nil
}
