package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cumall/cart-service/internal/catalog"
	"github.com/cumall/cart-service/internal/models"
	"github.com/cumall/cart-service/internal/session"
)

// CatalogHandler proxies the catalog backend for the storefront pages,
// attaching the session's bearer token on admin routes.
type CatalogHandler struct {
	client   *catalog.Client
	identity func() session.Identity
}

func NewCatalogHandler(client *catalog.Client, identity func() session.Identity) *CatalogHandler {
	return &CatalogHandler{client: client, identity: identity}
}

func pageParam(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	return page
}

// ListProducts handles GET /catalog/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	out, err := h.client.Products(r.Context(), pageParam(r))
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetProduct handles GET /catalog/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.client.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListByCategory handles GET /catalog/categories/{type}/products
func (h *CatalogHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	out, err := h.client.ProductsByCategory(r.Context(), chi.URLParam(r, "type"), pageParam(r))
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListCategories handles GET /catalog/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.client.Categories(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": cats})
}

// CreateProduct handles POST /admin/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	id := h.identity()
	if !id.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	created, err := h.client.CreateProduct(r.Context(), id.Token, p)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateProduct handles PATCH /admin/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := h.identity()
	if !id.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}
	updated, err := h.client.UpdateProduct(r.Context(), id.Token, chi.URLParam(r, "id"), fields)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /admin/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := h.identity()
	if !id.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	if err := h.client.DeleteProduct(r.Context(), id.Token, chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetOrder handles GET /orders/{id}
func (h *CatalogHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := h.identity()
	if !id.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	order, err := h.client.Order(r.Context(), id.Token, chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// DeliverOrder handles PATCH /admin/orders/{id}/deliver
func (h *CatalogHandler) DeliverOrder(w http.ResponseWriter, r *http.Request) {
	id := h.identity()
	if !id.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	if err := h.client.MarkDelivered(r.Context(), id.Token, chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DeleteOrder handles DELETE /admin/orders/{id}
func (h *CatalogHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := h.identity()
	if !id.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	if err := h.client.DeleteOrder(r.Context(), id.Token, chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AddCategory handles POST /admin/categories
func (h *CatalogHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	id := h.identity()
	if !id.Authenticated() {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var req struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type required"})
		return
	}
	cat, err := h.client.AddCategory(r.Context(), id.Token, req.Type)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}
