// Package backend talks to the ordering backend through its api-gateway.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"overcooked-storefront/storefront/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrUnauthorized = errors.New("backend rejected credentials")
	ErrNotFound     = errors.New("backend resource not found")
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: backend returned %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Temporary reports whether retrying the same request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code >= 500 || e.Code == http.StatusTooManyRequests
}

type Client struct {
	baseURL string
	client  HTTPClient
	logger  *zap.Logger
}

func NewClient(baseURL string, client HTTPClient, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

type request struct {
	method  string
	path    string
	token   string
	headers map[string]string
	body    any
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", r.path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("backend request", zap.String("method", r.method), zap.String("path", r.path))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Method: r.method, Path: r.path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.path, err)
	}
	return nil
}

func (c *Client) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/restaurants"}, &out)
	return out, err
}

func (c *Client) ListDishes(ctx context.Context, restaurantID string) ([]domain.Dish, error) {
	var out []domain.Dish
	path := "/api/restaurants/" + url.PathEscape(restaurantID) + "/dishes"
	err := c.do(ctx, request{method: http.MethodGet, path: path}, &out)
	return out, err
}

// CreateOrder posts the order with an Idempotency-Key so that a retried
// request is recognised by the backend.
func (c *Client) CreateOrder(ctx context.Context, token, idempotencyKey string, body domain.CreateOrderRequest) (domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/api/orders",
		token:   token,
		headers: map[string]string{"Idempotency-Key": idempotencyKey},
		body:    body,
	}, &out)
	return out, err
}

func (c *Client) ListUserOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []domain.Order
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/orders/user", token: token}, &out)
	return out, err
}

func (c *Client) ListRestaurantOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var out []domain.Order
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/orders/restaurant", token: token}, &out)
	return out, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) error {
	return c.do(ctx, request{
		method: http.MethodPut,
		path:   "/api/orders/status",
		token:  token,
		body:   domain.StatusUpdateRequest{OrderID: orderID, Status: status},
	}, nil)
}

func (c *Client) Login(ctx context.Context, role string, creds domain.Credentials) (domain.LoginResponse, error) {
	var out domain.LoginResponse
	path := "/api/auth/" + url.PathEscape(role) + "/login"
	err := c.do(ctx, request{method: http.MethodPost, path: path, body: creds}, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, token string, profile domain.Profile) (domain.Profile, error) {
	var out domain.Profile
	err := c.do(ctx, request{method: http.MethodPut, path: "/api/customers/user", token: token, body: profile}, &out)
	return out, err
}

func (c *Client) CreateDish(ctx context.Context, token string, dish domain.Dish) (domain.Dish, error) {
	var out domain.Dish
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/menu/restaurant", token: token, body: dish}, &out)
	return out, err
}

func (c *Client) UpdateDish(ctx context.Context, token string, dish domain.Dish) (domain.Dish, error) {
	var out domain.Dish
	path := "/api/menu/" + url.PathEscape(string(dish.ID))
	err := c.do(ctx, request{method: http.MethodPut, path: path, token: token, body: dish}, &out)
	return out, err
}

func (c *Client) DeleteDish(ctx context.Context, token, dishID string) error {
	path := "/api/menu/" + url.PathEscape(dishID)
	return c.do(ctx, request{method: http.MethodDelete, path: path, token: token}, nil)
}
