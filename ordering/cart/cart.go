// Package cart holds the in-progress order. A Cart is a value: every
// transition returns a new Cart and leaves its input untouched.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"overcooked-storefront/ordering/domain"
)

var (
	ErrRestaurantLocked = errors.New("cart is locked to another restaurant")
	ErrItemNotInCart    = errors.New("item is not in the cart")
	ErrInvalidItem      = errors.New("invalid menu item")
	ErrBrokenLock       = errors.New("cart lock does not match its lines")
)

// Cart lines keep first-insertion order. The restaurant lock is set exactly
// when the cart has lines.
type Cart struct {
	lines        []domain.CartLine
	restaurantID string
}

func Empty() Cart {
	return Cart{}
}

// Restore rebuilds a cart from stored lines, for example an initial snapshot.
func Restore(restaurantID string, lines []domain.CartLine) (Cart, error) {
	c := Cart{lines: slices.Clone(lines), restaurantID: restaurantID}
	if len(c.lines) == 0 {
		c.lines = nil
	}
	if err := c.Validate(); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (c Cart) Lines() []domain.CartLine {
	return slices.Clone(c.lines)
}

func (c Cart) RestaurantID() (string, bool) {
	return c.restaurantID, c.restaurantID != ""
}

func (c Cart) Len() int {
	return len(c.lines)
}

func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Quantity of itemID in the cart, 0 when absent.
func (c Cart) Quantity(itemID string) int {
	if i := c.index(itemID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// CanAddFrom reports whether items of restaurantID may be added right now.
func (c Cart) CanAddFrom(restaurantID string) bool {
	return c.restaurantID == "" || c.restaurantID == restaurantID
}

func (c Cart) Validate() error {
	if len(c.lines) == 0 && c.restaurantID != "" {
		return fmt.Errorf("%w: empty cart locked to %q", ErrBrokenLock, c.restaurantID)
	}
	if len(c.lines) > 0 && c.restaurantID == "" {
		return fmt.Errorf("%w: %d lines without a restaurant", ErrBrokenLock, len(c.lines))
	}
	seen := make(map[string]struct{}, len(c.lines))
	for _, line := range c.lines {
		if line.Quantity < 1 {
			return fmt.Errorf("%w: line %q has quantity %d", ErrInvalidItem, line.ItemID, line.Quantity)
		}
		if _, dup := seen[line.ItemID]; dup {
			return fmt.Errorf("%w: duplicate line %q", ErrInvalidItem, line.ItemID)
		}
		seen[line.ItemID] = struct{}{}
	}
	return nil
}

type cartJSON struct {
	RestaurantID string            `json:"restaurant_id,omitempty"`
	Lines        []domain.CartLine `json:"lines"`
}

func (c Cart) MarshalJSON() ([]byte, error) {
	lines := c.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return json.Marshal(cartJSON{RestaurantID: c.restaurantID, Lines: lines})
}

// Add puts one unit of item into the cart. An existing line is incremented in
// place; a new line is appended and, on an empty cart, locks it to restaurantID.
func Add(c Cart, item domain.MenuItem, restaurantID string) (Cart, error) {
	if item.ID == "" || restaurantID == "" || item.Price < 0 {
		return c, ErrInvalidItem
	}
	if !c.CanAddFrom(restaurantID) {
		return c, fmt.Errorf("%w: locked to %q, got %q", ErrRestaurantLocked, c.restaurantID, restaurantID)
	}

	lines := slices.Clone(c.lines)
	if i := c.index(item.ID); i >= 0 {
		lines[i].Quantity++
	} else {
		lines = append(lines, domain.NewCartLine(item))
	}
	return Cart{lines: lines, restaurantID: restaurantID}, nil
}

// RemoveOne takes one unit of itemID out of the cart, dropping the line at zero
// and releasing the lock when no lines remain.
func RemoveOne(c Cart, itemID string) (Cart, error) {
	i := c.index(itemID)
	if i < 0 {
		return c, fmt.Errorf("%w: %q", ErrItemNotInCart, itemID)
	}

	lines := slices.Clone(c.lines)
	if lines[i].Quantity > 1 {
		lines[i].Quantity--
	} else {
		lines = slices.Delete(lines, i, i+1)
	}
	if len(lines) == 0 {
		return Empty(), nil
	}
	return Cart{lines: lines, restaurantID: c.restaurantID}, nil
}

func (c Cart) index(itemID string) int {
	return slices.IndexFunc(c.lines, func(line domain.CartLine) bool {
		return line.ItemID == itemID
	})
}
