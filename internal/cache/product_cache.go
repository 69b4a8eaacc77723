package cache

import (
	"sync"

	"github.com/cumall/cart-service/internal/models"
)

// ProductCache keeps catalog entries by uuid so product pages do not
// refetch on every view.
type ProductCache struct {
	mu    sync.RWMutex
	store map[string]models.Product
}

func NewProductCache() *ProductCache {
	return &ProductCache{
		store: make(map[string]models.Product),
	}
}

func (c *ProductCache) Get(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.store[id]
	return p, ok
}

func (c *ProductCache) Set(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[p.UUID] = p
}

func (c *ProductCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
