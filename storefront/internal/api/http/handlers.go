package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	model "overcooked-storefront/ordering/domain"
	"overcooked-storefront/ordering/store"
	"overcooked-storefront/storefront/internal/backend"
	"overcooked-storefront/storefront/internal/domain"
	"overcooked-storefront/storefront/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type StateReader interface {
	State() *store.State
}

type Handler struct {
	Store   StateReader
	Session service.SessionServiceInterface
	Catalog service.CatalogServiceInterface
	Cart    service.CartServiceInterface
	Orders  service.OrderServiceInterface
	Menu    service.MenuServiceInterface
	QR      service.QRGenerator
	Logger  *zap.Logger
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/state", h.getState).Methods("GET")

	r.HandleFunc("/api/session/login", h.login).Methods("POST")
	r.HandleFunc("/api/session/logout", h.logout).Methods("POST")
	r.HandleFunc("/api/session/profile", h.updateProfile).Methods("PUT")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/current/{id}", h.selectRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}/menu", h.getMenu).Methods("GET")

	r.HandleFunc("/api/cart/items", h.addToCart).Methods("POST")
	r.HandleFunc("/api/cart/items/{itemId}", h.removeFromCart).Methods("DELETE")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")

	r.HandleFunc("/api/orders", h.placeOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/menu/{itemId}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/menu/{itemId}", h.deleteMenuItem).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront",
		"version":   h.Store.State().Version(),
		"timestamp": time.Now().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.State())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		http.Error(w, "Unknown role", http.StatusBadRequest)
		return
	}

	state, err := h.Session.Login(r.Context(), role, domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Logout())
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, err := h.Session.UpdateProfile(r.Context(), profile)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("refresh") == "true"
	state, err := h.Catalog.Refresh(r.Context(), force)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state.Restaurants())
}

func (h *Handler) selectRestaurant(w http.ResponseWriter, r *http.Request) {
	state := h.Catalog.SelectRestaurant(mux.Vars(r)["id"])
	h.writeState(w, state)
}

type menuResponse struct {
	RestaurantID string           `json:"restaurant_id"`
	Diet         model.Diet       `json:"diet"`
	Items        []model.MenuItem `json:"items"`
	Counts       dietCounts       `json:"counts"`
}

type dietCounts struct {
	Veg    int `json:"veg"`
	NonVeg int `json:"non_veg"`
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID := mux.Vars(r)["id"]
	diet := model.Diet(r.URL.Query().Get("diet"))
	if diet == "" {
		diet = model.DietAll
	}

	state := h.Store.State()
	items, ok := state.Menu(restaurantID, diet)
	if !ok {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	restaurant, _ := state.Restaurant(restaurantID)
	veg, nonVeg := model.CountByDiet(restaurant.Menu)

	writeJSON(w, http.StatusOK, menuResponse{
		RestaurantID: restaurantID,
		Diet:         diet,
		Items:        items,
		Counts:       dietCounts{Veg: veg, NonVeg: nonVeg},
	})
}

type cartItemRequest struct {
	RestaurantID string `json:"restaurant_id"`
	ItemID       string `json:"item_id"`
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, err := h.Cart.Add(req.RestaurantID, req.ItemID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, h.Cart.RemoveOne(mux.Vars(r)["itemId"]))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Cart.Clear())
}

type placeOrderRequest struct {
	DeliveryAddress string `json:"delivery_address"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, err := h.Orders.Place(r.Context(), req.DeliveryAddress)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	state, err := h.Orders.LoadHistory(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state.Orders())
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], model.OrderStatus(req.Status))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]
	if _, ok := h.Store.State().Order(orderID); !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	qrCode, err := h.QR.Generate(orderID)
	if err != nil {
		h.Logger.Error("failed to generate QR code", zap.String("order_id", orderID), zap.Error(err))
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var item model.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	state, err := h.Menu.AddItem(r.Context(), item)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var item model.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.ID = mux.Vars(r)["itemId"]
	state, err := h.Menu.UpdateItem(r.Context(), item)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	state, err := h.Menu.DeleteItem(r.Context(), mux.Vars(r)["itemId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// writeState answers with the snapshot, or 409 when the dispatch it came
// from was rejected.
func (h *Handler) writeState(w http.ResponseWriter, state *store.State) {
	if rejection, rejected := state.Rejection(); rejected {
		writeJSON(w, http.StatusConflict, map[string]interface{}{"rejection": rejection})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var rejected *service.RejectedError
	switch {
	case errors.As(err, &rejected):
		writeJSON(w, http.StatusConflict, map[string]interface{}{"rejection": rejected.Rejection})
	case errors.Is(err, service.ErrNotLoggedIn), errors.Is(err, backend.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrRestaurantNotFound), errors.Is(err, service.ErrItemNotFound), errors.Is(err, backend.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, err.Error(), http.StatusGatewayTimeout)
	case errors.Is(err, context.Canceled):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		h.Logger.Warn("request failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
