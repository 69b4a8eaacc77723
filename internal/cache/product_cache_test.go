package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cumall/cart-service/internal/models"
)

func TestProductCache(t *testing.T) {
	t.Parallel()

	c := NewProductCache()

	_, ok := c.Get("u1")
	assert.False(t, ok)

	c.Set(models.Product{UUID: "u1", Title: "Pen"})
	c.Set(models.Product{UUID: "u1", Title: "Pen v2"})
	c.Set(models.Product{UUID: "u2", Title: "Mug"})

	p, ok := c.Get("u1")
	require.True(t, ok)
	assert.Equal(t, "Pen v2", p.Title)
	assert.Equal(t, 2, c.Len())
}
