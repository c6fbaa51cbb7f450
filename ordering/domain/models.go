package domain

import (
	"maps"
	"slices"
	"time"
)

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleRestaurant
}

// Session is the logged-in user. Attributes carries free-form profile fields
// such as address, phone and email.
type Session struct {
	UserID      string            `json:"user_id"`
	DisplayName string            `json:"display_name"`
	Role        Role              `json:"role"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

func (s Session) Attribute(key string) string {
	return s.Attributes[key]
}

func (s Session) Clone() Session {
	s.Attributes = maps.Clone(s.Attributes)
	return s
}

type MenuItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	IsVegetarian bool   `json:"is_vegetarian"`
}

type Restaurant struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	Menu        []MenuItem `json:"menu"`
}

func (r Restaurant) Clone() Restaurant {
	r.Menu = slices.Clone(r.Menu)
	return r
}

func (r Restaurant) FindItem(itemID string) (MenuItem, bool) {
	for _, item := range r.Menu {
		if item.ID == itemID {
			return item, true
		}
	}
	return MenuItem{}, false
}

// CartLine is a menu item with a quantity of at least one.
type CartLine struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	IsVegetarian bool   `json:"is_vegetarian"`
	Quantity     int    `json:"quantity"`
}

func NewCartLine(item MenuItem) CartLine {
	return CartLine{
		ItemID:       item.ID,
		Name:         item.Name,
		Price:        item.Price,
		IsVegetarian: item.IsVegetarian,
		Quantity:     1,
	}
}

func (l CartLine) LineTotal() int64 {
	return l.Price * int64(l.Quantity)
}

type Order struct {
	ID             string      `json:"id"`
	RestaurantID   string      `json:"restaurant_id"`
	Lines          []CartLine  `json:"lines"`
	Status         OrderStatus `json:"status"`
	Total          int64       `json:"total"`
	IdempotencyKey string      `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

func (o Order) Clone() Order {
	o.Lines = slices.Clone(o.Lines)
	return o
}
