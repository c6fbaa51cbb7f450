package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	model "overcooked-storefront/ordering/domain"
)

// ID accepts both numeric and string identifiers from the backend and keeps
// them as strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

type Restaurant struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Dish struct {
	ID           ID      `json:"dish_id"`
	RestaurantID ID      `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	IsVegetarian bool    `json:"is_vegetarian"`
	ImageURL     string  `json:"image_url,omitempty"`
}

type OrderItem struct {
	DishID   ID      `json:"dish_id"`
	DishName string  `json:"dish_name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	IsVeg    bool    `json:"is_vegetarian"`
}

type Order struct {
	ID           ID          `json:"id"`
	RestaurantID ID          `json:"restaurant_id"`
	TotalAmount  float64     `json:"total_amount"`
	Status       string      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	Items        []OrderItem `json:"items"`
}

type CreateOrderRequest struct {
	RestaurantID    string      `json:"restaurant_id"`
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	Items           []OrderItem `json:"items"`
	Total           int64       `json:"total"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  *Profile `json:"user,omitempty"`
}

type Profile struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type StatusUpdateRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

const OrderStatusChanged = "order_status_changed"

// StatusMessage is the order-status topic payload.
type StatusMessage struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func toAmount(price float64) int64 {
	return int64(math.Round(price))
}

func (d Dish) MenuItem() model.MenuItem {
	return model.MenuItem{
		ID:           string(d.ID),
		Name:         d.Name,
		Description:  d.Description,
		Price:        toAmount(d.Price),
		IsVegetarian: d.IsVegetarian,
	}
}

func DishFromMenuItem(restaurantID string, item model.MenuItem) Dish {
	return Dish{
		ID:           ID(item.ID),
		RestaurantID: ID(restaurantID),
		Name:         item.Name,
		Description:  item.Description,
		Price:        float64(item.Price),
		IsVegetarian: item.IsVegetarian,
	}
}

func (r Restaurant) WithMenu(dishes []Dish) model.Restaurant {
	menu := make([]model.MenuItem, 0, len(dishes))
	for _, d := range dishes {
		menu = append(menu, d.MenuItem())
	}
	return model.Restaurant{
		ID:          string(r.ID),
		Name:        r.Name,
		Address:     r.Address,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Menu:        menu,
	}
}

// DomainOrder converts a backend order. Unknown statuses fall back to pending.
func (o Order) DomainOrder() model.Order {
	status, err := model.ParseOrderStatus(o.Status)
	if err != nil {
		status = model.StatusPending
	}
	lines := make([]model.CartLine, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, model.CartLine{
			ItemID:       string(item.DishID),
			Name:         item.DishName,
			Price:        toAmount(item.Price),
			IsVegetarian: item.IsVeg,
			Quantity:     item.Quantity,
		})
	}
	return model.Order{
		ID:           string(o.ID),
		RestaurantID: string(o.RestaurantID),
		Lines:        lines,
		Status:       status,
		Total:        toAmount(o.TotalAmount),
		CreatedAt:    o.CreatedAt,
	}
}

func OrderItemsFromLines(lines []model.CartLine) []OrderItem {
	items := make([]OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, OrderItem{
			DishID:   ID(l.ItemID),
			DishName: l.Name,
			Quantity: l.Quantity,
			Price:    float64(l.Price),
			IsVeg:    l.IsVegetarian,
		})
	}
	return items
}
