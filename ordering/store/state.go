package store

import (
	"encoding/json"
	"slices"

	"overcooked-storefront/ordering/cart"
	"overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/lifecycle"
	"overcooked-storefront/ordering/pricing"
)

type RejectionCode string

const (
	CodeRestaurantLocked   RejectionCode = "restaurant_locked"
	CodeItemNotInCart      RejectionCode = "item_not_in_cart"
	CodeInvalidItem        RejectionCode = "invalid_item"
	CodeEmptyCart          RejectionCode = "empty_cart"
	CodeInvalidOrder       RejectionCode = "invalid_order"
	CodeDuplicateOrder     RejectionCode = "duplicate_order"
	CodeCartChanged        RejectionCode = "cart_changed"
	CodeOrderNotFound      RejectionCode = "order_not_found"
	CodeInvalidTransition  RejectionCode = "invalid_transition"
	CodeTerminalStatus     RejectionCode = "terminal_status"
	CodeUnknownStatus      RejectionCode = "unknown_status"
	CodeNoSession          RejectionCode = "no_session"
	CodeInvalidSession     RejectionCode = "invalid_session"
	CodeRestaurantNotFound RejectionCode = "restaurant_not_found"
	CodeMenuItemNotFound   RejectionCode = "menu_item_not_found"
	CodeInvalidCatalog     RejectionCode = "invalid_catalog"
	CodeInvariantViolation RejectionCode = "invariant_violation"
	CodeUnknownIntent      RejectionCode = "unknown_intent"
)

// Rejection describes why the intent of the latest dispatch left the domain
// state unchanged.
type Rejection struct {
	Intent string        `json:"intent"`
	Code   RejectionCode `json:"code"`
	Reason string        `json:"reason"`
}

// State is an immutable snapshot. Accessors return copies, so callers may
// keep or modify what they get without affecting the Store.
type State struct {
	session             *domain.Session
	cart                cart.Cart
	restaurants         []domain.Restaurant
	currentRestaurantID string
	orders              []domain.Order
	loading             bool
	err                 string
	rejection           *Rejection
	version             uint64
}

func (s *State) Session() (domain.Session, bool) {
	if s.session == nil {
		return domain.Session{}, false
	}
	return s.session.Clone(), true
}

func (s *State) IsAuthenticated() bool {
	return s.session != nil
}

// Role of the logged-in user, empty without a session.
func (s *State) Role() domain.Role {
	if s.session == nil {
		return ""
	}
	return s.session.Role
}

func (s *State) Cart() cart.Cart {
	return s.cart
}

func (s *State) Pricing() pricing.Breakdown {
	return pricing.Calculate(s.cart.Lines())
}

func (s *State) CanAddFrom(restaurantID string) bool {
	return s.cart.CanAddFrom(restaurantID)
}

func (s *State) QuantityOf(itemID string) int {
	return s.cart.Quantity(itemID)
}

func (s *State) Restaurants() []domain.Restaurant {
	out := make([]domain.Restaurant, len(s.restaurants))
	for i, r := range s.restaurants {
		out[i] = r.Clone()
	}
	return out
}

func (s *State) Restaurant(id string) (domain.Restaurant, bool) {
	if i := s.restaurantIndex(id); i >= 0 {
		return s.restaurants[i].Clone(), true
	}
	return domain.Restaurant{}, false
}

func (s *State) CurrentRestaurantID() string {
	return s.currentRestaurantID
}

func (s *State) CurrentRestaurant() (domain.Restaurant, bool) {
	if s.currentRestaurantID == "" {
		return domain.Restaurant{}, false
	}
	return s.Restaurant(s.currentRestaurantID)
}

// Menu returns the menu of a cached restaurant filtered by diet.
func (s *State) Menu(restaurantID string, diet domain.Diet) ([]domain.MenuItem, bool) {
	i := s.restaurantIndex(restaurantID)
	if i < 0 {
		return nil, false
	}
	return domain.FilterMenu(s.restaurants[i].Menu, diet), true
}

func (s *State) Orders() []domain.Order {
	out := make([]domain.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

func (s *State) Order(id string) (domain.Order, bool) {
	return lifecycle.Find(s.orders, id)
}

func (s *State) Loading() bool {
	return s.loading
}

func (s *State) Error() string {
	return s.err
}

func (s *State) Rejection() (Rejection, bool) {
	if s.rejection == nil {
		return Rejection{}, false
	}
	return *s.rejection, true
}

// Version increases by one with every dispatch.
func (s *State) Version() uint64 {
	return s.version
}

func (s *State) restaurantIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.restaurants, func(r domain.Restaurant) bool { return r.ID == id })
}

// clone is a shallow copy; transitions replace what they change.
func (s *State) clone() *State {
	next := *s
	return &next
}

type stateJSON struct {
	Session             *domain.Session     `json:"session"`
	Cart                cart.Cart           `json:"cart"`
	Pricing             pricing.Breakdown   `json:"pricing"`
	Restaurants         []domain.Restaurant `json:"restaurants"`
	CurrentRestaurantID string              `json:"current_restaurant_id,omitempty"`
	Orders              []domain.Order      `json:"orders"`
	Loading             bool                `json:"loading"`
	Error               string              `json:"error,omitempty"`
	Rejection           *Rejection          `json:"rejection,omitempty"`
	Version             uint64              `json:"version"`
}

func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{
		Session:             s.session,
		Cart:                s.cart,
		Pricing:             s.Pricing(),
		Restaurants:         s.Restaurants(),
		CurrentRestaurantID: s.currentRestaurantID,
		Orders:              s.Orders(),
		Loading:             s.loading,
		Error:               s.err,
		Rejection:           s.rejection,
		Version:             s.version,
	})
}
