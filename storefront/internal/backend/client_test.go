package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"overcooked-storefront/storefront/internal/backend"
	"overcooked-storefront/storefront/internal/domain"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, register func(r *mux.Router)) *backend.Client {
	t.Helper()
	r := mux.NewRouter()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return backend.NewClient(srv.URL+"/", srv.Client(), nil)
}

func TestClient_ListDishes(t *testing.T) {
	client := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/restaurants/{id}/dishes", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "7", mux.Vars(r)["id"])
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `[{"dish_id":3,"restaurant_id":7,"name":"Dal","price":89.6,"is_vegetarian":true}]`)
		}).Methods(http.MethodGet)
	})

	dishes, err := client.ListDishes(context.Background(), "7")

	require.NoError(t, err)
	require.Len(t, dishes, 1)
	item := dishes[0].MenuItem()
	assert.Equal(t, "3", item.ID)
	assert.Equal(t, int64(90), item.Price)
	assert.True(t, item.IsVegetarian)
}

func TestClient_CreateOrder(t *testing.T) {
	client := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

			var body domain.CreateOrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "r1", body.RestaurantID)
			assert.Equal(t, int64(263), body.Total)

			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"id":"o-42","restaurant_id":"r1","status":"pending","total_amount":263}`)
		}).Methods(http.MethodPost)
	})

	order, err := client.CreateOrder(context.Background(), "tok", "key-1", domain.CreateOrderRequest{RestaurantID: "r1", Total: 263})

	require.NoError(t, err)
	assert.Equal(t, domain.ID("o-42"), order.ID)
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		sentinel  error
		temporary bool
	}{
		{name: "unauthorized", code: http.StatusUnauthorized, sentinel: backend.ErrUnauthorized},
		{name: "not found", code: http.StatusNotFound, sentinel: backend.ErrNotFound},
		{name: "server error", code: http.StatusBadGateway, temporary: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			client := newBackend(t, func(r *mux.Router) {
				r.HandleFunc("/api/orders/user", func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "nope", testCase.code)
				})
			})

			_, err := client.ListUserOrders(context.Background(), "tok")

			var statusErr *backend.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, testCase.code, statusErr.Code)
			assert.Equal(t, testCase.temporary, statusErr.Temporary())
			if testCase.sentinel != nil {
				assert.ErrorIs(t, err, testCase.sentinel)
			}
		})
	}
}

func TestClient_DeleteDish(t *testing.T) {
	called := false
	client := newBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/menu/{id}", func(w http.ResponseWriter, r *http.Request) {
			called = true
			assert.Equal(t, "d9", mux.Vars(r)["id"])
			w.WriteHeader(http.StatusNoContent)
		}).Methods(http.MethodDelete)
	})

	require.NoError(t, client.DeleteDish(context.Background(), "tok", "d9"))
	assert.True(t, called)
}
