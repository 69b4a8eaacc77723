package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cumall/cart-service/internal/api"
	"github.com/cumall/cart-service/internal/api/handlers"
	"github.com/cumall/cart-service/internal/api/middleware"
	"github.com/cumall/cart-service/internal/cache"
	"github.com/cumall/cart-service/internal/cart"
	"github.com/cumall/cart-service/internal/catalog"
	"github.com/cumall/cart-service/internal/orders"
	"github.com/cumall/cart-service/internal/repository"
	"github.com/cumall/cart-service/internal/session"
	"github.com/cumall/cart-service/internal/storage"
	"github.com/cumall/cart-service/pkg/db"
)

const (
	defaultAddr     = ":8080"
	defaultAPIBase  = "https://cumall-backend.onrender.com/api"
	defaultCartFile = "cart.json"
	clientTimeout   = 15 * time.Second
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	apiBase := envOr("CUMALL_API", defaultAPIBase)
	addr := envOr("CARTD_ADDR", defaultAddr)

	// cart snapshots go to Postgres when a database is configured,
	// otherwise to a local file next to the process
	var store storage.KV
	if cfg, _ := db.LoadPostgresConfig(); cfg.Configured() {
		conn, err := db.NewPostgresConnection(cfg)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer conn.Close()
		store = repository.NewCartRepo(conn)
	} else {
		store = storage.NewFileStore(envOr("CARTD_FILE", defaultCartFile))
	}

	notifier := cart.NotifierFunc(func(n cart.Notification) {
		log.Printf("[%s] %s: %s", n.Severity, n.Title, n.Description)
	})

	ordersClient := orders.NewClient(apiBase, clientTimeout)
	cartSvc := cart.NewService(store, notifier, ordersClient, session.LoadFromEnv)

	catalogClient := catalog.NewClient(apiBase, clientTimeout, cache.NewProductCache())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := catalogClient.PrefetchAll(ctx); err != nil {
			log.Printf("catalog prefetch: %v", err)
		}
	}()

	handler := api.NewRouter(
		handlers.NewCartHandler(cartSvc),
		handlers.NewCatalogHandler(catalogClient, session.LoadFromEnv),
	)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Mount("/", handler)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("starting cartd on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %s\n", err)
	}

	<-idleConnsClosed
	log.Println("server stopped")
}
