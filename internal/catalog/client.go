package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cumall/cart-service/internal/cache"
	"github.com/cumall/cart-service/internal/concurrency"
	"github.com/cumall/cart-service/internal/models"
)

// prefetchWorkers bounds the fan-out when warming the product cache.
const prefetchWorkers = 4

// Client wraps the catalog side of the mall backend: paginated product
// listings, categories, and the admin product endpoints. Reads go
// through the product cache where possible.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *cache.ProductCache
}

func NewClient(baseURL string, timeout time.Duration, c *cache.ProductCache) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cache:   c,
	}
}

// --- Response envelopes ---

type productEnvelope struct {
	Success bool           `json:"success"`
	Data    models.Product `json:"data"`
	Message string         `json:"message,omitempty"`
}

type categoriesEnvelope struct {
	Success    bool              `json:"success"`
	Categories []models.Category `json:"categories"`
}

type categoryEnvelope struct {
	Success bool            `json:"success"`
	Data    models.Category `json:"data"`
}

type orderEnvelope struct {
	Success bool         `json:"success"`
	Data    models.Order `json:"data"`
}

type statusEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Products ---

func (c *Client) Products(ctx context.Context, page int) (models.PaginatedProducts, error) {
	if page < 1 {
		page = 1
	}
	var out models.PaginatedProducts
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/product?page=%d", page), "", nil, &out)
	if err != nil {
		return models.PaginatedProducts{}, err
	}
	for _, p := range out.Products {
		c.cache.Set(p)
	}
	return out, nil
}

// Product returns one catalog entry, served from cache when possible.
func (c *Client) Product(ctx context.Context, id string) (models.Product, error) {
	if p, ok := c.cache.Get(id); ok {
		return p, nil
	}
	var out productEnvelope
	if err := c.do(ctx, http.MethodGet, "/product/"+id, "", nil, &out); err != nil {
		return models.Product{}, err
	}
	c.cache.Set(out.Data)
	return out.Data, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, category string, page int) (models.PaginatedProducts, error) {
	if page < 1 {
		page = 1
	}
	var out models.PaginatedProducts
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/product/category/%s?page=%d", category, page), "", nil, &out)
	if err != nil {
		return models.PaginatedProducts{}, err
	}
	for _, p := range out.Products {
		c.cache.Set(p)
	}
	return out, nil
}

// PrefetchAll warms the product cache by walking every listing page,
// fanning the remaining pages out over a small worker pool after the
// first page reveals the page count. Individual page failures are
// skipped; prefetching is best effort.
func (c *Client) PrefetchAll(ctx context.Context) error {
	first, err := c.Products(ctx, 1)
	if err != nil {
		return fmt.Errorf("prefetch first page: %w", err)
	}
	remaining := first.TotalPages - 1
	if remaining <= 0 {
		return nil
	}

	concurrency.SimpleWorkerPool(ctx, prefetchWorkers, remaining, func(ctx context.Context, index int) {
		_, _ = c.Products(ctx, index+2)
	})
	return nil
}

// --- Categories ---

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var out categoriesEnvelope
	if err := c.do(ctx, http.MethodGet, "/product/category/all", "", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

func (c *Client) AddCategory(ctx context.Context, token, categoryType string) (models.Category, error) {
	var out categoryEnvelope
	body := map[string]string{"type": categoryType}
	if err := c.do(ctx, http.MethodPost, "/product/category/add", token, body, &out); err != nil {
		return models.Category{}, err
	}
	return out.Data, nil
}

// --- Admin products ---

func (c *Client) CreateProduct(ctx context.Context, token string, p models.Product) (models.Product, error) {
	var out productEnvelope
	if err := c.do(ctx, http.MethodPost, "/product/add", token, p, &out); err != nil {
		return models.Product{}, err
	}
	c.cache.Set(out.Data)
	return out.Data, nil
}

// UpdateProduct patches selected fields; the backend merges them into
// the stored product.
func (c *Client) UpdateProduct(ctx context.Context, token, id string, fields map[string]interface{}) (models.Product, error) {
	var out productEnvelope
	if err := c.do(ctx, http.MethodPatch, "/product/update/"+id, token, fields, &out); err != nil {
		return models.Product{}, err
	}
	c.cache.Set(out.Data)
	return out.Data, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	var out statusEnvelope
	return c.do(ctx, http.MethodDelete, "/product/delete/"+id, token, nil, &out)
}

// --- Orders ---

func (c *Client) Order(ctx context.Context, token, id string) (models.Order, error) {
	var out orderEnvelope
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, token, nil, &out); err != nil {
		return models.Order{}, err
	}
	return out.Data, nil
}

func (c *Client) MarkDelivered(ctx context.Context, token, id string) error {
	var out statusEnvelope
	body := map[string]int{"state": 1}
	return c.do(ctx, http.MethodPatch, "/orders/deliver/"+id, token, body, &out)
}

func (c *Client) DeleteOrder(ctx context.Context, token, id string) error {
	var out statusEnvelope
	return c.do(ctx, http.MethodDelete, "/orders/delete/"+id, token, nil, &out)
}

// do performs one backend request. A non-2xx status is returned as an
// error carrying the backend's message when the body has one.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var fail statusEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&fail); err == nil && fail.Message != "" {
			return fmt.Errorf("%s %s: %s", method, path, fail.Message)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
