package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumall/cart-service/internal/cache"
	"github.com/cumall/cart-service/internal/catalog"
	"github.com/cumall/cart-service/internal/models"
	"github.com/cumall/cart-service/internal/session"
)

func newCatalogRouter(t *testing.T, identity func() session.Identity, backend http.Handler) http.Handler {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	h := NewCatalogHandler(catalog.NewClient(srv.URL, 5*time.Second, cache.NewProductCache()), identity)

	r := chi.NewRouter()
	r.Get("/catalog/products", h.ListProducts)
	r.Get("/catalog/products/{id}", h.GetProduct)
	r.Get("/catalog/categories", h.ListCategories)
	r.Post("/admin/products", h.CreateProduct)
	r.Delete("/admin/products/{id}", h.DeleteProduct)
	return r
}

func TestListProducts_Proxies(t *testing.T) {
	t.Parallel()

	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/product", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.PaginatedProducts{
			Products:    []models.Product{{UUID: "u1", Title: "Pen"}},
			TotalItems:  1,
			CurrentPage: 1,
			TotalPages:  1,
			Success:     true,
		})
	})
	router := newCatalogRouter(t, testIdentity, backend)

	rec := doJSON(t, router, http.MethodGet, "/catalog/products?page=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out models.PaginatedProducts
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Pen", out.Products[0].Title)
}

func TestAdminRoutes_RequireIdentity(t *testing.T) {
	t.Parallel()

	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called without identity")
	})
	router := newCatalogRouter(t, noIdentity, backend)

	rec := doJSON(t, router, http.MethodPost, "/admin/products", `{"title":"New"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/admin/products/u1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProduct_ForwardsToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    models.Product{UUID: "u9", Title: "New"},
		})
	})
	router := newCatalogRouter(t, testIdentity, backend)

	rec := doJSON(t, router, http.MethodPost, "/admin/products", `{"title":"New","price":10,"quantity":5}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "u9", created.UUID)
}
