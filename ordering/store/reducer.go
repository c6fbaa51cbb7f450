package store

import (
	"errors"
	"fmt"
	"slices"

	"overcooked-storefront/ordering/cart"
	"overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/lifecycle"
	"overcooked-storefront/ordering/session"
)

var (
	ErrUnknownIntent      = errors.New("unknown intent")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrInvalidCatalog     = errors.New("invalid restaurant catalog")
	ErrCartChanged        = errors.New("cart changed since the order was submitted")
)

// reduce computes the state that follows prev once in is applied. It never
// mutates prev; a non-nil error means the intent was rejected.
func reduce(prev *State, in Intent) (*State, error) {
	next := prev.clone()

	switch in := in.(type) {
	case Login:
		s, err := session.Login(in.Session)
		if err != nil {
			return nil, err
		}
		next.session = s

	case Logout:
		next.session, next.cart = session.Logout()

	case SetSessionProfile:
		s, err := session.UpdateProfile(prev.session, in.Session)
		if err != nil {
			return nil, err
		}
		next.session = s

	case AddItem:
		c, err := cart.Add(prev.cart, in.Item, in.RestaurantID)
		if err != nil {
			return nil, err
		}
		next.cart = c

	case RemoveOneUnit:
		c, err := cart.RemoveOne(prev.cart, in.ItemID)
		if err != nil {
			return nil, err
		}
		next.cart = c

	case ClearCart:
		next.cart = cart.Empty()

	case PlaceOrder:
		if err := checkSubmitted(prev.cart, in); err != nil {
			return nil, err
		}
		order, err := lifecycle.NewOrder(prev.cart, in.OrderID, in.IdempotencyKey, in.PlacedAt)
		if err != nil {
			return nil, err
		}
		if next.orders, err = lifecycle.Place(prev.orders, order); err != nil {
			return nil, err
		}
		next.cart = cart.Empty()

	case SetOrderStatus:
		orders, err := lifecycle.SetStatus(prev.orders, in.OrderID, in.Status)
		if err != nil {
			return nil, err
		}
		next.orders = orders

	case SetRestaurantCatalog:
		if err := checkCatalog(in.Restaurants); err != nil {
			return nil, err
		}
		next.restaurants = make([]domain.Restaurant, len(in.Restaurants))
		for i, r := range in.Restaurants {
			next.restaurants[i] = r.Clone()
		}
		if next.restaurantIndex(prev.currentRestaurantID) < 0 {
			next.currentRestaurantID = ""
		}

	case SetOrderHistory:
		if err := lifecycle.CheckHistory(in.Orders); err != nil {
			return nil, err
		}
		next.orders = make([]domain.Order, len(in.Orders))
		for i, o := range in.Orders {
			next.orders[i] = o.Clone()
		}

	case SetLoading:
		next.loading = in.Loading

	case SetError:
		next.err = in.Message

	case SetCurrentRestaurant:
		if in.RestaurantID != "" && prev.restaurantIndex(in.RestaurantID) < 0 {
			return nil, fmt.Errorf("%w: %q", ErrRestaurantNotFound, in.RestaurantID)
		}
		next.currentRestaurantID = in.RestaurantID

	case AddMenuItem:
		return editMenu(prev, next, in.RestaurantID, func(menu []domain.MenuItem) ([]domain.MenuItem, error) {
			if in.Item.ID == "" || in.Item.Price < 0 {
				return nil, cart.ErrInvalidItem
			}
			if slices.ContainsFunc(menu, func(item domain.MenuItem) bool { return item.ID == in.Item.ID }) {
				return nil, fmt.Errorf("%w: duplicate menu item %q", cart.ErrInvalidItem, in.Item.ID)
			}
			return append(slices.Clone(menu), in.Item), nil
		})

	case UpdateMenuItem:
		return editMenu(prev, next, in.RestaurantID, func(menu []domain.MenuItem) ([]domain.MenuItem, error) {
			i := menuIndex(menu, in.Item.ID)
			if i < 0 {
				return nil, fmt.Errorf("%w: %q", ErrMenuItemNotFound, in.Item.ID)
			}
			if in.Item.Price < 0 {
				return nil, cart.ErrInvalidItem
			}
			out := slices.Clone(menu)
			out[i] = in.Item
			return out, nil
		})

	case DeleteMenuItem:
		return editMenu(prev, next, in.RestaurantID, func(menu []domain.MenuItem) ([]domain.MenuItem, error) {
			i := menuIndex(menu, in.ItemID)
			if i < 0 {
				return nil, fmt.Errorf("%w: %q", ErrMenuItemNotFound, in.ItemID)
			}
			return slices.Delete(slices.Clone(menu), i, i+1), nil
		})

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntent, Name(in))
	}

	return next, nil
}

// checkSubmitted refuses to record an order for a cart that no longer matches
// what was sent to the backend.
func checkSubmitted(c cart.Cart, in PlaceOrder) error {
	if in.Lines == nil || c.IsEmpty() {
		return nil
	}
	restaurantID, _ := c.RestaurantID()
	if in.RestaurantID != "" && in.RestaurantID != restaurantID {
		return fmt.Errorf("%w: cart is locked to %q, order was for %q", ErrCartChanged, restaurantID, in.RestaurantID)
	}
	if !slices.Equal(c.Lines(), in.Lines) {
		return ErrCartChanged
	}
	return nil
}

func checkCatalog(restaurants []domain.Restaurant) error {
	seen := make(map[string]struct{}, len(restaurants))
	for _, r := range restaurants {
		if r.ID == "" {
			return fmt.Errorf("%w: restaurant without id", ErrInvalidCatalog)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: duplicate restaurant %q", ErrInvalidCatalog, r.ID)
		}
		seen[r.ID] = struct{}{}

		items := make(map[string]struct{}, len(r.Menu))
		for _, item := range r.Menu {
			if item.ID == "" || item.Price < 0 {
				return fmt.Errorf("%w: malformed menu item %q in restaurant %q", ErrInvalidCatalog, item.ID, r.ID)
			}
			if _, dup := items[item.ID]; dup {
				return fmt.Errorf("%w: duplicate menu item %q in restaurant %q", ErrInvalidCatalog, item.ID, r.ID)
			}
			items[item.ID] = struct{}{}
		}
	}
	return nil
}

// editMenu replaces one restaurant's menu in the catalog cache. Other
// restaurants are shared with prev.
func editMenu(prev, next *State, restaurantID string, edit func([]domain.MenuItem) ([]domain.MenuItem, error)) (*State, error) {
	if restaurantID == "" {
		restaurantID = prev.currentRestaurantID
	}
	i := prev.restaurantIndex(restaurantID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrRestaurantNotFound, restaurantID)
	}

	menu, err := edit(prev.restaurants[i].Menu)
	if err != nil {
		return nil, err
	}
	next.restaurants = slices.Clone(prev.restaurants)
	next.restaurants[i].Menu = menu
	return next, nil
}

func menuIndex(menu []domain.MenuItem, itemID string) int {
	return slices.IndexFunc(menu, func(item domain.MenuItem) bool { return item.ID == itemID })
}

func rejectionFor(in Intent, err error) Rejection {
	return Rejection{Intent: Name(in), Code: codeFor(err), Reason: err.Error()}
}

func codeFor(err error) RejectionCode {
	switch {
	case errors.Is(err, ErrInvariant):
		return CodeInvariantViolation
	case errors.Is(err, cart.ErrRestaurantLocked):
		return CodeRestaurantLocked
	case errors.Is(err, cart.ErrItemNotInCart):
		return CodeItemNotInCart
	case errors.Is(err, cart.ErrInvalidItem):
		return CodeInvalidItem
	case errors.Is(err, lifecycle.ErrEmptyCart):
		return CodeEmptyCart
	case errors.Is(err, lifecycle.ErrMissingOrderID):
		return CodeInvalidOrder
	case errors.Is(err, lifecycle.ErrDuplicateOrder):
		return CodeDuplicateOrder
	case errors.Is(err, ErrCartChanged):
		return CodeCartChanged
	case errors.Is(err, ErrInvalidCatalog):
		return CodeInvalidCatalog
	case errors.Is(err, lifecycle.ErrOrderNotFound):
		return CodeOrderNotFound
	case errors.Is(err, lifecycle.ErrTerminalStatus):
		return CodeTerminalStatus
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, domain.ErrUnknownStatus):
		return CodeUnknownStatus
	case errors.Is(err, session.ErrNoSession):
		return CodeNoSession
	case errors.Is(err, session.ErrInvalidSession):
		return CodeInvalidSession
	case errors.Is(err, ErrRestaurantNotFound):
		return CodeRestaurantNotFound
	case errors.Is(err, ErrMenuItemNotFound):
		return CodeMenuItemNotFound
	default:
		return CodeUnknownIntent
	}
}
