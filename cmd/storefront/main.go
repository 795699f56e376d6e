package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/carlosh1016/cloth-inc-storefront/internal/backend"
	"github.com/carlosh1016/cloth-inc-storefront/internal/cart"
	"github.com/carlosh1016/cloth-inc-storefront/internal/catalog"
	"github.com/carlosh1016/cloth-inc-storefront/internal/checkout"
	h "github.com/carlosh1016/cloth-inc-storefront/internal/http"
	"github.com/carlosh1016/cloth-inc-storefront/internal/repository"

	c "github.com/carlosh1016/cloth-inc-storefront/internal/cache"
)

type Config struct {
	HTTPPort        string
	BackendURL      string
	BackendTimeout  time.Duration
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendURL:      getEnv("BACKEND_URL", "http://localhost:9000"),
		BackendTimeout:  15 * time.Second,
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	_ = godotenv.Load()

	cfg := loadConfig()
	ctx := context.Background()

	// Cart storage. An explicitly empty MONGO_URI selects the in-memory
	// store so the service can run without infrastructure in dev; that
	// mode also skips redis and runs without a cache.
	var repo repository.CartRepository
	var cartCache c.CartCache = c.NopCache{}
	var mongoDisconnect func()
	if cfg.MongoURI == "" {
		repo = repository.NewMemoryRepository()
		log.Println("MONGO_URI empty, using in-memory cart store without cache")
	} else {
		mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		if err := repository.CreateIndexes(ctx, mongoDB); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		repo = repository.NewMongoRepository(mongoDB)
		mongoDisconnect = func() { mongoDB.Client().Disconnect(ctx) }
		log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Redis ping succeeded")
		cartCache = c.NewRedisCache(redisClient)
	}

	backendClient := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)

	catalogService := catalog.NewService(backendClient)
	defer catalogService.Close()

	cartService := cart.NewService(repo, cartCache, catalogService)
	aggregator := checkout.NewAggregator(cartService, backendClient, catalogService)

	cartHandler := h.NewCartHandler(cartService, cfg.RequestTimeout)
	catalogHandler := h.NewCatalogHandler(catalogService, backendClient, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(aggregator, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.AuthMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.Search)
			r.Get("/{product_id}", catalogHandler.GetProduct)
		})
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/shops", catalogHandler.ListShops)
		r.Get("/shops/{shop_id}", catalogHandler.GetShop)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if mongoDisconnect != nil {
		mongoDisconnect()
	}
	log.Println("server exited")
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}
