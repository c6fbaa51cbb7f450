package service

import (
	"context"

	model "overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/store"
	"overcooked-storefront/storefront/internal/backend"
	"overcooked-storefront/storefront/internal/domain"
	"overcooked-storefront/storefront/internal/storage"

	"github.com/segmentio/kafka-go"
)

// Dispatcher is the part of the state store collaborators use.
type Dispatcher interface {
	Dispatch(in store.Intent) *store.State
	State() *store.State
}

type Backend interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	ListDishes(ctx context.Context, restaurantID string) ([]domain.Dish, error)
	CreateOrder(ctx context.Context, token, idempotencyKey string, body domain.CreateOrderRequest) (domain.Order, error)
	ListUserOrders(ctx context.Context, token string) ([]domain.Order, error)
	ListRestaurantOrders(ctx context.Context, token string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, token, orderID, status string) error
	Login(ctx context.Context, role string, creds domain.Credentials) (domain.LoginResponse, error)
	UpdateProfile(ctx context.Context, token string, profile domain.Profile) (domain.Profile, error)
	CreateDish(ctx context.Context, token string, dish domain.Dish) (domain.Dish, error)
	UpdateDish(ctx context.Context, token string, dish domain.Dish) (domain.Dish, error)
	DeleteDish(ctx context.Context, token, dishID string) error
}

type CatalogCache interface {
	GetCatalog(ctx context.Context) ([]model.Restaurant, bool, error)
	SetCatalog(ctx context.Context, restaurants []model.Restaurant) error
	InvalidateCatalog(ctx context.Context) error
}

type OrderHistoryRepository interface {
	ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error)
	ListRestaurantOrders(ctx context.Context, restaurantID string) ([]domain.Order, error)
}

type StatusPublisher interface {
	PublishStatus(ctx context.Context, msg domain.StatusMessage) error
}

// TokenSource hands out the bearer token of the logged-in user.
type TokenSource interface {
	Token() string
}

type QRGenerator interface {
	Generate(orderID string) ([]byte, error)
}

type SessionServiceInterface interface {
	Login(ctx context.Context, role model.Role, creds domain.Credentials) (*store.State, error)
	Logout() *store.State
	UpdateProfile(ctx context.Context, profile domain.Profile) (*store.State, error)
	Token() string
}

type CatalogServiceInterface interface {
	Refresh(ctx context.Context, force bool) (*store.State, error)
	SelectRestaurant(restaurantID string) *store.State
}

type CartServiceInterface interface {
	Add(restaurantID, itemID string) (*store.State, error)
	RemoveOne(itemID string) *store.State
	Clear() *store.State
}

type OrderServiceInterface interface {
	Place(ctx context.Context, deliveryAddress string) (*store.State, error)
	LoadHistory(ctx context.Context) (*store.State, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) (*store.State, error)
	ApplyStatusMessage(msg domain.StatusMessage) (*store.State, bool)
}

type MenuServiceInterface interface {
	AddItem(ctx context.Context, item model.MenuItem) (*store.State, error)
	UpdateItem(ctx context.Context, item model.MenuItem) (*store.State, error)
	DeleteItem(ctx context.Context, itemID string) (*store.State, error)
}

var (
	_ Dispatcher             = (*store.Store)(nil)
	_ Backend                = (*backend.Client)(nil)
	_ CatalogCache           = (*storage.RedisCache)(nil)
	_ OrderHistoryRepository = (*storage.PostgresRepository)(nil)
	_ StatusPublisher        = (*storage.KafkaPublisher)(nil)
	_ QRGenerator            = DefaultQRGenerator{}
	_ MessageReader          = (*kafka.Reader)(nil)
	_ StatusApplier          = (*OrderService)(nil)

	_ SessionServiceInterface = (*SessionService)(nil)
	_ CatalogServiceInterface = (*CatalogService)(nil)
	_ CartServiceInterface    = (*CartService)(nil)
	_ OrderServiceInterface   = (*OrderService)(nil)
	_ MenuServiceInterface    = (*MenuService)(nil)
)
