package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cumall/cart-service/internal/cart"
	"github.com/cumall/cart-service/internal/models"
)

// --- Request / Response DTOs ---

type AddItemRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image,omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items      []models.LineItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
}

// --- Handler struct & constructor ---

type CartHandler struct {
	svc *cart.Service
}

func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *CartHandler) cartResponse() CartResponse {
	return CartResponse{
		Items:      h.svc.Items(),
		TotalItems: h.svc.TotalItems(),
		TotalPrice: h.svc.TotalPrice(),
	}
}

// --- Handlers ---

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	if req.ID == "" || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id and positive quantity required"})
		return
	}

	h.svc.AddItem(r.Context(), models.LineItem{
		ID:       req.ID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		Category: req.Category,
		Image:    req.Image,
	})
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// UpdateQuantity handles PATCH /cart/items/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	h.svc.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity)
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// RemoveItem handles DELETE /cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.svc.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// ClearCart handles POST /cart/clear
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.svc.Clear(r.Context())
	writeJSON(w, http.StatusOK, h.cartResponse())
}

// Checkout handles POST /cart/checkout.
//
// The cart service reports a structured result; this layer owns the
// navigation concern. Browser clients get a 303 to the confirmation
// view carrying the order id and the total formatted to two decimals,
// API clients get the result as JSON.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	result := h.svc.Checkout(r.Context())

	if result.Success {
		if wantsHTML(r) {
			target := fmt.Sprintf("/checkout/success?orderId=%s&total=%.2f", result.OrderID, result.Total)
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, result)
		return
	}

	switch result.Message {
	case "authentication required":
		writeJSON(w, http.StatusUnauthorized, result)
	case "cart is empty", "checkout already in progress":
		writeJSON(w, http.StatusConflict, result)
	default:
		// business rejection or transport failure; the cart is intact
		writeJSON(w, http.StatusBadGateway, result)
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
