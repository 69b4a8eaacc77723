package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cumall/cart-service/internal/api/handlers"
)

// NewRouter builds the HTTP router for cartd
func NewRouter(cartHandler *handlers.CartHandler, catalogHandler *handlers.CatalogHandler) http.Handler {
	r := chi.NewRouter()

	// Cart endpoints
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.GetCart)
		r.Post("/items", cartHandler.AddItem)
		r.Patch("/items/{id}", cartHandler.UpdateQuantity)
		r.Delete("/items/{id}", cartHandler.RemoveItem)
		r.Post("/clear", cartHandler.ClearCart)
		r.Post("/checkout", cartHandler.Checkout)
	})

	// Catalog proxy endpoints
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/categories/{type}/products", catalogHandler.ListByCategory)
	})

	// Order lookup for the confirmation view
	r.Get("/orders/{id}", catalogHandler.GetOrder)

	// Admin endpoints
	r.Route("/admin", func(r chi.Router) {
		r.Post("/products", catalogHandler.CreateProduct)
		r.Patch("/products/{id}", catalogHandler.UpdateProduct)
		r.Delete("/products/{id}", catalogHandler.DeleteProduct)
		r.Post("/categories", catalogHandler.AddCategory)
		r.Patch("/orders/{id}/deliver", catalogHandler.DeliverOrder)
		r.Delete("/orders/{id}", catalogHandler.DeleteOrder)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
