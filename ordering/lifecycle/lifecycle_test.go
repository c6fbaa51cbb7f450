package lifecycle_test

import (
	"testing"
	"time"

	"overcooked-storefront/ordering/cart"
	"overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to domain.OrderStatus
		expected bool
	}{
		{domain.StatusPending, domain.StatusAccepted, true},
		{domain.StatusAccepted, domain.StatusCooking, true},
		{domain.StatusCooking, domain.StatusReady, true},
		{domain.StatusReady, domain.StatusOutForDelivery, true},
		{domain.StatusOutForDelivery, domain.StatusCompleted, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusOutForDelivery, domain.StatusCancelled, true},
		{domain.StatusPending, domain.StatusCooking, false},
		{domain.StatusReady, domain.StatusAccepted, false},
		{domain.StatusCompleted, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusPending, false},
		{domain.StatusPending, domain.OrderStatus("lost"), false},
	}

	for _, testCase := range tests {
		t.Run(string(testCase.from)+"->"+string(testCase.to), func(t *testing.T) {
			assert.Equal(t, testCase.expected, lifecycle.CanTransition(testCase.from, testCase.to))
		})
	}
}

func TestValidTransitions(t *testing.T) {
	assert.Equal(t,
		[]domain.OrderStatus{domain.StatusAccepted, domain.StatusCancelled},
		lifecycle.ValidTransitions(domain.StatusPending))
	assert.Equal(t,
		[]domain.OrderStatus{domain.StatusCompleted, domain.StatusCancelled},
		lifecycle.ValidTransitions(domain.StatusOutForDelivery))
	assert.Empty(t, lifecycle.ValidTransitions(domain.StatusCompleted))
	assert.Empty(t, lifecycle.ValidTransitions(domain.StatusCancelled))

	assert.True(t, lifecycle.IsCancellable(domain.StatusCooking))
	assert.False(t, lifecycle.IsCancellable(domain.StatusCancelled))
}

func sampleCart(t *testing.T) cart.Cart {
	t.Helper()
	c, err := cart.Add(cart.Empty(), domain.MenuItem{ID: "thali", Name: "Thali", Price: 125}, "r1")
	require.NoError(t, err)
	c, err = cart.Add(c, domain.MenuItem{ID: "thali", Name: "Thali", Price: 125}, "r1")
	require.NoError(t, err)
	return c
}

func TestNewOrder(t *testing.T) {
	placedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	order, err := lifecycle.NewOrder(sampleCart(t), "o1", "key-1", placedAt)

	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, "r1", order.RestaurantID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, int64(263), order.Total)
	assert.Equal(t, "key-1", order.IdempotencyKey)
	assert.Equal(t, placedAt, order.CreatedAt)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, 2, order.Lines[0].Quantity)

	_, err = lifecycle.NewOrder(cart.Empty(), "o2", "", placedAt)
	assert.ErrorIs(t, err, lifecycle.ErrEmptyCart)

	_, err = lifecycle.NewOrder(sampleCart(t), "", "", placedAt)
	assert.ErrorIs(t, err, lifecycle.ErrMissingOrderID)
}

func TestPlace(t *testing.T) {
	older := []domain.Order{{ID: "o1"}}

	orders, err := lifecycle.Place(older, domain.Order{ID: "o2"})

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID)
	assert.Equal(t, "o1", orders[1].ID)
	assert.Len(t, older, 1)

	again, err := lifecycle.Place(orders, domain.Order{ID: "o1"})
	assert.ErrorIs(t, err, lifecycle.ErrDuplicateOrder)
	assert.Len(t, again, 2)
}

func TestCheckHistory(t *testing.T) {
	tests := []struct {
		name   string
		orders []domain.Order
		err    error
	}{
		{name: "empty history", orders: nil},
		{name: "distinct orders", orders: []domain.Order{{ID: "o1", Status: domain.StatusPending}, {ID: "o2", Status: domain.StatusCompleted}}},
		{name: "missing id", orders: []domain.Order{{Status: domain.StatusPending}}, err: lifecycle.ErrMissingOrderID},
		{name: "repeated id", orders: []domain.Order{{ID: "o1", Status: domain.StatusPending}, {ID: "o1", Status: domain.StatusReady}}, err: lifecycle.ErrDuplicateOrder},
		{name: "unknown status", orders: []domain.Order{{ID: "o1", Status: "shipped"}}, err: domain.ErrUnknownStatus},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := lifecycle.CheckHistory(testCase.orders)

			if testCase.err != nil {
				assert.ErrorIs(t, err, testCase.err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetStatus(t *testing.T) {
	history := func(status domain.OrderStatus) []domain.Order {
		return []domain.Order{{ID: "o2", Status: domain.StatusPending}, {ID: "o1", Status: status}}
	}

	tests := []struct {
		name     string
		current  domain.OrderStatus
		orderID  string
		target   domain.OrderStatus
		err      error
		expected domain.OrderStatus
	}{
		{name: "successor accepted", current: domain.StatusAccepted, orderID: "o1", target: domain.StatusCooking, expected: domain.StatusCooking},
		{name: "cancel from non-terminal", current: domain.StatusReady, orderID: "o1", target: domain.StatusCancelled, expected: domain.StatusCancelled},
		{name: "same status is a no-op", current: domain.StatusCooking, orderID: "o1", target: domain.StatusCooking, expected: domain.StatusCooking},
		{name: "skipping a step", current: domain.StatusPending, orderID: "o1", target: domain.StatusReady, err: lifecycle.ErrInvalidTransition, expected: domain.StatusPending},
		{name: "going backwards", current: domain.StatusReady, orderID: "o1", target: domain.StatusCooking, err: lifecycle.ErrInvalidTransition, expected: domain.StatusReady},
		{name: "completed is terminal", current: domain.StatusCompleted, orderID: "o1", target: domain.StatusCancelled, err: lifecycle.ErrTerminalStatus, expected: domain.StatusCompleted},
		{name: "completed repeated is a no-op", current: domain.StatusCompleted, orderID: "o1", target: domain.StatusCompleted, expected: domain.StatusCompleted},
		{name: "cancelled repeated is a no-op", current: domain.StatusCancelled, orderID: "o1", target: domain.StatusCancelled, expected: domain.StatusCancelled},
		{name: "cancelled is terminal", current: domain.StatusCancelled, orderID: "o1", target: domain.StatusAccepted, err: lifecycle.ErrTerminalStatus, expected: domain.StatusCancelled},
		{name: "unknown order", current: domain.StatusPending, orderID: "missing", target: domain.StatusAccepted, err: lifecycle.ErrOrderNotFound, expected: domain.StatusPending},
		{name: "unknown status", current: domain.StatusPending, orderID: "o1", target: "lost", err: domain.ErrUnknownStatus, expected: domain.StatusPending},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			before := history(testCase.current)

			after, err := lifecycle.SetStatus(before, testCase.orderID, testCase.target)

			if testCase.err != nil {
				assert.ErrorIs(t, err, testCase.err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.expected, after[1].Status)
			assert.Equal(t, testCase.current, before[1].Status)
			assert.Equal(t, domain.StatusPending, after[0].Status)
		})
	}
}

func TestFind(t *testing.T) {
	orders := []domain.Order{{ID: "o1", Lines: []domain.CartLine{{ItemID: "a", Quantity: 1}}}}

	found, ok := lifecycle.Find(orders, "o1")
	require.True(t, ok)
	found.Lines[0].Quantity = 5
	assert.Equal(t, 1, orders[0].Lines[0].Quantity)

	_, ok = lifecycle.Find(orders, "o9")
	assert.False(t, ok)
}
