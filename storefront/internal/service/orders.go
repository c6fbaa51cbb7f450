package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	model "overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/lifecycle"
	"overcooked-storefront/ordering/store"
	"overcooked-storefront/storefront/internal/backend"
	"overcooked-storefront/storefront/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderConfig struct {
	// Retries is how many times a failed submission is repeated with the same
	// idempotency key.
	Retries int
	Backoff time.Duration
	NewKey  func() string
	Now     func() time.Time
}

type OrderService struct {
	backend    Backend
	history    OrderHistoryRepository
	publisher  StatusPublisher
	tokens     TokenSource
	dispatcher Dispatcher
	cfg        OrderConfig
	logger     *zap.Logger
}

// NewOrderService accepts a nil history repository, in which case history is
// read from the backend, and a nil publisher.
func NewOrderService(backend Backend, history OrderHistoryRepository, publisher StatusPublisher, tokens TokenSource, dispatcher Dispatcher, cfg OrderConfig, logger *zap.Logger) *OrderService {
	if cfg.NewKey == nil {
		cfg.NewKey = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &OrderService{
		backend:    backend,
		history:    history,
		publisher:  publisher,
		tokens:     tokens,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger,
	}
}

// Place submits the cart to the backend and, once accepted there, records the
// order in the store. The cart is cleared by the same transition.
func (s *OrderService) Place(ctx context.Context, deliveryAddress string) (*store.State, error) {
	snap := s.dispatcher.State()
	session, ok := snap.Session()
	if !ok {
		return snap, ErrNotLoggedIn
	}
	c := snap.Cart()
	if c.IsEmpty() {
		return outcome(s.dispatcher.Dispatch(store.PlaceOrder{}))
	}
	if deliveryAddress == "" {
		deliveryAddress = session.Attribute("address")
	}

	restaurantID, _ := c.RestaurantID()
	lines := c.Lines()
	body := domain.CreateOrderRequest{
		RestaurantID:    restaurantID,
		DeliveryAddress: deliveryAddress,
		Items:           domain.OrderItemsFromLines(lines),
		Total:           snap.Pricing().Total,
	}
	key := s.cfg.NewKey()

	var (
		created domain.Order
		placed  *store.State
	)
	err := withLoading(ctx, s.dispatcher, s.logger, "place order", func() error {
		var err error
		if created, err = s.submit(ctx, key, body); err != nil {
			return err
		}
		placed = s.dispatcher.Dispatch(store.PlaceOrder{
			OrderID:        string(created.ID),
			IdempotencyKey: key,
			PlacedAt:       created.CreatedAt,
			RestaurantID:   restaurantID,
			Lines:          lines,
		})
		return nil
	})
	if err != nil {
		return s.dispatcher.State(), err
	}
	if _, err := outcome(placed); err != nil {
		return s.placeRejected(string(created.ID), key, err)
	}

	s.logger.Info("order placed",
		zap.String("restaurant_id", restaurantID),
		zap.String("idempotency_key", key),
		zap.Int64("total", body.Total))
	return s.dispatcher.State(), nil
}

// placeRejected handles a backend order the store would not record. When a
// history refresh already brought the order in, only the cart is left to clear.
func (s *OrderService) placeRejected(orderID, key string, err error) (*store.State, error) {
	var rejected *RejectedError
	if errors.As(err, &rejected) && rejected.Rejection.Code == store.CodeDuplicateOrder {
		s.logger.Info("order already in history, clearing cart",
			zap.String("order_id", orderID),
			zap.String("idempotency_key", key))
		return s.dispatcher.Dispatch(store.ClearCart{}), nil
	}

	s.logger.Warn("order placed but not recorded locally",
		zap.String("order_id", orderID),
		zap.String("idempotency_key", key),
		zap.Error(err))
	return s.dispatcher.State(), err
}

func (s *OrderService) submit(ctx context.Context, key string, body domain.CreateOrderRequest) (domain.Order, error) {
	for attempt := 0; ; attempt++ {
		created, err := s.backend.CreateOrder(ctx, s.tokens.Token(), key, body)
		if err == nil {
			return created, nil
		}
		if attempt >= s.cfg.Retries || !retryable(ctx, err) {
			return domain.Order{}, fmt.Errorf("place order: %w", err)
		}

		s.logger.Warn("order submission failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.String("idempotency_key", key),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return domain.Order{}, ctx.Err()
		case <-time.After(s.cfg.Backoff * time.Duration(attempt+1)):
		}
	}
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

// LoadHistory replaces the store's order list with the user's orders, or the
// restaurant's incoming orders for a restaurant session.
func (s *OrderService) LoadHistory(ctx context.Context) (*store.State, error) {
	session, ok := s.dispatcher.State().Session()
	if !ok {
		return s.dispatcher.State(), ErrNotLoggedIn
	}

	err := withLoading(ctx, s.dispatcher, s.logger, "load order history", func() error {
		orders, err := s.fetchHistory(ctx, session)
		if err != nil {
			return fmt.Errorf("load order history: %w", err)
		}
		converted := make([]model.Order, 0, len(orders))
		for _, o := range orders {
			converted = append(converted, o.DomainOrder())
		}
		s.dispatcher.Dispatch(store.SetOrderHistory{Orders: converted})
		return nil
	})
	return s.dispatcher.State(), err
}

func (s *OrderService) fetchHistory(ctx context.Context, session model.Session) ([]domain.Order, error) {
	restaurant := session.Role == model.RoleRestaurant
	switch {
	case s.history != nil && restaurant:
		return s.history.ListRestaurantOrders(ctx, session.UserID)
	case s.history != nil:
		return s.history.ListUserOrders(ctx, session.UserID)
	case restaurant:
		return s.backend.ListRestaurantOrders(ctx, s.tokens.Token())
	default:
		return s.backend.ListUserOrders(ctx, s.tokens.Token())
	}
}

// UpdateStatus moves an order forward on the restaurant side. Transitions the
// store would refuse are rejected locally without calling the backend.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*store.State, error) {
	intent := store.SetOrderStatus{OrderID: orderID, Status: status}

	order, ok := s.dispatcher.State().Order(orderID)
	if !ok || order.Status == status || !lifecycle.CanTransition(order.Status, status) {
		return outcome(s.dispatcher.Dispatch(intent))
	}

	var updated *store.State
	err := withLoading(ctx, s.dispatcher, s.logger, "update order status", func() error {
		if err := s.backend.UpdateOrderStatus(ctx, s.tokens.Token(), orderID, string(status)); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		updated = s.dispatcher.Dispatch(intent)
		return nil
	})
	if err != nil {
		return s.dispatcher.State(), err
	}
	if _, err := outcome(updated); err != nil {
		return s.dispatcher.State(), err
	}

	s.publish(ctx, orderID, status)
	return s.dispatcher.State(), nil
}

func (s *OrderService) publish(ctx context.Context, orderID string, status model.OrderStatus) {
	if s.publisher == nil {
		return
	}
	msg := domain.StatusMessage{
		Type:      domain.OrderStatusChanged,
		OrderID:   orderID,
		Status:    string(status),
		Timestamp: s.cfg.Now().UTC(),
	}
	if err := s.publisher.PublishStatus(ctx, msg); err != nil {
		s.logger.Warn("failed to publish order status", zap.String("order_id", orderID), zap.Error(err))
	}
}

// ApplyStatusMessage applies a status change received from the status feed
// and reports whether it was dispatched. Messages of other types, for orders
// this store does not hold, or repeating the status an order already has are
// skipped so they never leave a rejection on the shared snapshot.
func (s *OrderService) ApplyStatusMessage(msg domain.StatusMessage) (*store.State, bool) {
	state := s.dispatcher.State()
	if msg.Type != domain.OrderStatusChanged {
		return state, false
	}
	order, ok := state.Order(msg.OrderID)
	if !ok || string(order.Status) == msg.Status {
		return state, false
	}
	return s.dispatcher.Dispatch(store.SetOrderStatus{OrderID: msg.OrderID, Status: model.OrderStatus(msg.Status)}), true
}
