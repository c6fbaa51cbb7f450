// Package lifecycle tracks placed orders and the status transitions they may take.
package lifecycle

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"overcooked-storefront/ordering/cart"
	"overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/pricing"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTerminalStatus    = errors.New("order is in a terminal status")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrMissingOrderID    = errors.New("order id is required")
	ErrDuplicateOrder    = errors.New("order already recorded")
)

var successor = map[domain.OrderStatus]domain.OrderStatus{
	domain.StatusPending:        domain.StatusAccepted,
	domain.StatusAccepted:       domain.StatusCooking,
	domain.StatusCooking:        domain.StatusReady,
	domain.StatusReady:          domain.StatusOutForDelivery,
	domain.StatusOutForDelivery: domain.StatusCompleted,
}

// CanTransition reports whether an order in from may move to to. Only the next
// step of the flow or a cancellation is allowed; terminal statuses go nowhere.
func CanTransition(from, to domain.OrderStatus) bool {
	if from.IsTerminal() || !to.Valid() {
		return false
	}
	if to == domain.StatusCancelled {
		return true
	}
	next, ok := successor[from]
	return ok && next == to
}

func ValidTransitions(from domain.OrderStatus) []domain.OrderStatus {
	if from.IsTerminal() || !from.Valid() {
		return nil
	}
	out := make([]domain.OrderStatus, 0, 2)
	if next, ok := successor[from]; ok {
		out = append(out, next)
	}
	return append(out, domain.StatusCancelled)
}

func IsCancellable(s domain.OrderStatus) bool {
	return CanTransition(s, domain.StatusCancelled)
}

// NewOrder snapshots the cart into a Pending order. The cart itself is not
// changed; callers clear it in the same transition.
func NewOrder(c cart.Cart, id, idempotencyKey string, placedAt time.Time) (domain.Order, error) {
	if c.IsEmpty() {
		return domain.Order{}, ErrEmptyCart
	}
	if id == "" {
		return domain.Order{}, ErrMissingOrderID
	}
	rid, _ := c.RestaurantID()
	lines := c.Lines()
	return domain.Order{
		ID:             id,
		RestaurantID:   rid,
		Lines:          lines,
		Status:         domain.StatusPending,
		Total:          pricing.Calculate(lines).Total,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      placedAt,
	}, nil
}

// Place prepends order to the history, newest first. An order whose id is
// already in the history is refused.
func Place(orders []domain.Order, order domain.Order) ([]domain.Order, error) {
	if slices.ContainsFunc(orders, func(o domain.Order) bool { return o.ID == order.ID }) {
		return orders, fmt.Errorf("%w: %q", ErrDuplicateOrder, order.ID)
	}
	out := make([]domain.Order, 0, len(orders)+1)
	out = append(out, order)
	return append(out, orders...), nil
}

// CheckHistory reports the first order a loaded history cannot hold: one
// without an id, a repeated id or an unknown status.
func CheckHistory(orders []domain.Order) error {
	seen := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		if o.ID == "" {
			return ErrMissingOrderID
		}
		if _, dup := seen[o.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateOrder, o.ID)
		}
		if !o.Status.Valid() {
			return fmt.Errorf("%w: order %q has status %q", domain.ErrUnknownStatus, o.ID, o.Status)
		}
		seen[o.ID] = struct{}{}
	}
	return nil
}

// SetStatus returns a new history with the order moved to status. A request
// for the status the order already holds is accepted and returns orders as is,
// terminal statuses included.
func SetStatus(orders []domain.Order, orderID string, status domain.OrderStatus) ([]domain.Order, error) {
	if !status.Valid() {
		return orders, fmt.Errorf("%w: %q", domain.ErrUnknownStatus, status)
	}
	i := slices.IndexFunc(orders, func(o domain.Order) bool { return o.ID == orderID })
	if i < 0 {
		return orders, fmt.Errorf("%w: %q", ErrOrderNotFound, orderID)
	}

	current := orders[i].Status
	if current == status {
		return orders, nil
	}
	if current.IsTerminal() {
		return orders, fmt.Errorf("%w: order %q is %s", ErrTerminalStatus, orderID, current)
	}
	if !CanTransition(current, status) {
		return orders, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, status)
	}

	out := slices.Clone(orders)
	out[i].Status = status
	return out, nil
}

func Find(orders []domain.Order, orderID string) (domain.Order, bool) {
	for _, o := range orders {
		if o.ID == orderID {
			return o.Clone(), true
		}
	}
	return domain.Order{}, false
}
