package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumall/cart-service/internal/cache"
	"github.com/cumall/cart-service/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *cache.ProductCache) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := cache.NewProductCache()
	return NewClient(srv.URL, 5*time.Second, c), c
}

func listingPage(page, totalPages int, products ...models.Product) models.PaginatedProducts {
	return models.PaginatedProducts{
		Products:    products,
		TotalItems:  len(products) * totalPages,
		CurrentPage: page,
		TotalPages:  totalPages,
		Success:     true,
	}
}

func TestProducts_DecodesEnvelopeAndFillsCache(t *testing.T) {
	t.Parallel()

	client, pc := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_ = json.NewEncoder(w).Encode(listingPage(2, 3,
			models.Product{UUID: "u1", Title: "Pen", Price: 50, Category: "Stationery"},
			models.Product{UUID: "u2", Title: "Mug", Price: 200, Category: "Kitchen"},
		))
	}))

	out, err := client.Products(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, out.CurrentPage)
	assert.Equal(t, 3, out.TotalPages)
	require.Len(t, out.Products, 2)

	cached, ok := pc.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "Pen", cached.Title)
}

func TestProduct_ServedFromCache(t *testing.T) {
	t.Parallel()

	var hits int32
	client, pc := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_ = json.NewEncoder(w).Encode(productEnvelope{
			Success: true,
			Data:    models.Product{UUID: "u1", Title: "Pen"},
		})
	}))

	p, err := client.Product(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Pen", p.Title)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	// second read never leaves the cache
	p, err = client.Product(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Pen", p.Title)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, 1, pc.Len())
}

func TestPrefetchAll_WalksEveryPage(t *testing.T) {
	t.Parallel()

	const totalPages = 4
	client, pc := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		_ = json.NewEncoder(w).Encode(listingPage(page, totalPages,
			models.Product{UUID: fmt.Sprintf("u%d", page), Title: fmt.Sprintf("Item %d", page)},
		))
	}))

	require.NoError(t, client.PrefetchAll(context.Background()))
	assert.Equal(t, totalPages, pc.Len())
}

func TestProductsByCategory(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/category/Stationery", r.URL.Path)
		_ = json.NewEncoder(w).Encode(listingPage(1, 1,
			models.Product{UUID: "u1", Title: "Pen", Category: "Stationery"},
		))
	}))

	out, err := client.ProductsByCategory(context.Background(), "Stationery", 1)
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Stationery", out.Products[0].Category)
}

func TestCategories(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/category/all", r.URL.Path)
		_ = json.NewEncoder(w).Encode(categoriesEnvelope{
			Success:    true,
			Categories: []models.Category{{Type: "Stationery", ID: "c1"}},
		})
	}))

	cats, err := client.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Stationery", cats[0].Type)
}

func TestAdminRequests_CarryBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(productEnvelope{
			Success: true,
			Data:    models.Product{UUID: "u9", Title: "New"},
		})
	}))

	created, err := client.CreateProduct(context.Background(), "admin-tok", models.Product{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, "u9", created.UUID)
	assert.Equal(t, "Bearer admin-tok", gotAuth)
}

func TestDo_SurfacesBackendMessage(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(statusEnvelope{Success: false, Message: "admin only"})
	}))

	err := client.DeleteProduct(context.Background(), "tok", "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin only")
}
