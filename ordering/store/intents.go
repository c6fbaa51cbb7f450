package store

import (
	"fmt"
	"time"

	"overcooked-storefront/ordering/domain"
)

// Intent is a request to change state. The set is closed; collaborators build
// one of the types below and hand it to Store.Dispatch.
type Intent interface {
	intent()
}

type Login struct {
	Session domain.Session
}

type Logout struct{}

type SetSessionProfile struct {
	Session domain.Session
}

type AddItem struct {
	Item         domain.MenuItem
	RestaurantID string
}

type RemoveOneUnit struct {
	ItemID string
}

type ClearCart struct{}

// PlaceOrder turns the cart into a Pending order. An empty OrderID or zero
// PlacedAt is filled in by the Store. When Lines is set the cart must still
// hold exactly those lines, for RestaurantID when that is set too.
type PlaceOrder struct {
	OrderID        string
	IdempotencyKey string
	PlacedAt       time.Time
	RestaurantID   string
	Lines          []domain.CartLine
}

type SetOrderStatus struct {
	OrderID string
	Status  domain.OrderStatus
}

type SetRestaurantCatalog struct {
	Restaurants []domain.Restaurant
}

type SetOrderHistory struct {
	Orders []domain.Order
}

type SetLoading struct {
	Loading bool
}

// SetError sets the transient error message; an empty Message clears it.
type SetError struct {
	Message string
}

type SetCurrentRestaurant struct {
	RestaurantID string
}

// Menu intents edit a restaurant in the catalog cache. An empty RestaurantID
// targets the current restaurant.

// AddMenuItem appends to a menu. An empty Item.ID is filled in by the Store.
type AddMenuItem struct {
	RestaurantID string
	Item         domain.MenuItem
}

type UpdateMenuItem struct {
	RestaurantID string
	Item         domain.MenuItem
}

type DeleteMenuItem struct {
	RestaurantID string
	ItemID       string
}

func (Login) intent()                {}
func (Logout) intent()               {}
func (SetSessionProfile) intent()    {}
func (AddItem) intent()              {}
func (RemoveOneUnit) intent()        {}
func (ClearCart) intent()            {}
func (PlaceOrder) intent()           {}
func (SetOrderStatus) intent()       {}
func (SetRestaurantCatalog) intent() {}
func (SetOrderHistory) intent()      {}
func (SetLoading) intent()           {}
func (SetError) intent()             {}
func (SetCurrentRestaurant) intent() {}
func (AddMenuItem) intent()          {}
func (UpdateMenuItem) intent()       {}
func (DeleteMenuItem) intent()       {}

// Name is the log name of an intent.
func Name(in Intent) string {
	switch in.(type) {
	case nil:
		return "nil"
	case Login:
		return "login"
	case Logout:
		return "logout"
	case SetSessionProfile:
		return "set_session_profile"
	case AddItem:
		return "add_item"
	case RemoveOneUnit:
		return "remove_one_unit"
	case ClearCart:
		return "clear_cart"
	case PlaceOrder:
		return "place_order"
	case SetOrderStatus:
		return "set_order_status"
	case SetRestaurantCatalog:
		return "set_restaurant_catalog"
	case SetOrderHistory:
		return "set_order_history"
	case SetLoading:
		return "set_loading"
	case SetError:
		return "set_error"
	case SetCurrentRestaurant:
		return "set_current_restaurant"
	case AddMenuItem:
		return "add_menu_item"
	case UpdateMenuItem:
		return "update_menu_item"
	case DeleteMenuItem:
		return "delete_menu_item"
	default:
		return fmt.Sprintf("%T", in)
	}
}
