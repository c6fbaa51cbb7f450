package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"overcooked-storefront/storefront/internal/domain"
)

// PostgresRepository reads the order history read model shared with the
// backend (orders, order_items, dishes).
type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

const orderHistoryQuery = `
	SELECT o.id, o.restaurant_id, o.total_amount, o.status, o.created_at,
	       oi.dish_id, COALESCE(d.name, ''), oi.quantity, oi.price, COALESCE(d.is_vegetarian, FALSE)
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
	LEFT JOIN dishes d ON d.id = oi.dish_id
	WHERE %s = $1
	ORDER BY o.created_at DESC, o.id DESC, oi.id`

func (r *PostgresRepository) ListUserOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.listOrders(ctx, "o.user_id", userID)
}

func (r *PostgresRepository) ListRestaurantOrders(ctx context.Context, restaurantID string) ([]domain.Order, error) {
	return r.listOrders(ctx, "o.restaurant_id", restaurantID)
}

func (r *PostgresRepository) listOrders(ctx context.Context, column, value string) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, fmt.Sprintf(orderHistoryQuery, column), value)
	if err != nil {
		return nil, fmt.Errorf("query orders by %s: %w", column, err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	index := map[string]int{}
	for rows.Next() {
		var (
			orderID, restaurantID string
			total                 float64
			status                string
			createdAt             time.Time
			dishID                sql.NullString
			dishName              string
			quantity              sql.NullInt64
			price                 sql.NullFloat64
			isVeg                 bool
		)
		if err := rows.Scan(&orderID, &restaurantID, &total, &status, &createdAt,
			&dishID, &dishName, &quantity, &price, &isVeg); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}

		i, ok := index[orderID]
		if !ok {
			orders = append(orders, domain.Order{
				ID:           domain.ID(orderID),
				RestaurantID: domain.ID(restaurantID),
				TotalAmount:  total,
				Status:       status,
				CreatedAt:    createdAt,
				Items:        []domain.OrderItem{},
			})
			i = len(orders) - 1
			index[orderID] = i
		}
		if dishID.Valid {
			orders[i].Items = append(orders[i].Items, domain.OrderItem{
				DishID:   domain.ID(dishID.String),
				DishName: dishName,
				Quantity: int(quantity.Int64),
				Price:    price.Float64,
				IsVeg:    isVeg,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		"ALTER TABLE IF EXISTS orders ADD COLUMN IF NOT EXISTS user_id TEXT",
		"ALTER TABLE IF EXISTS dishes ADD COLUMN IF NOT EXISTS is_vegetarian BOOLEAN DEFAULT FALSE",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
