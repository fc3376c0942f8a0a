package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Moulipolnati/Anika/internal/cache"
	"github.com/Moulipolnati/Anika/internal/config"
	"github.com/Moulipolnati/Anika/internal/events"
	h "github.com/Moulipolnati/Anika/internal/http"
	"github.com/Moulipolnati/Anika/internal/repository"
	"github.com/Moulipolnati/Anika/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Info().Msg("storefront starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	h.SignInPath = cfg.SignInPath

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// MongoDB holds the per-shopper documents: cart and wishlist.
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := repository.EnsureCartIndexes(ctx, mongoDB); err != nil {
		log.Fatal().Err(err).Msg("failed to create cart indexes")
	}
	if err := repository.EnsureWishlistIndexes(ctx, mongoDB); err != nil {
		log.Fatal().Err(err).Msg("failed to create wishlist indexes")
	}

	// Postgres holds products and orders.
	creds := &repository.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPass,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: cfg.MigrationsPath,
	}
	db, err := repository.ConnectPostgres(creds)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Postgres")
	}
	defer db.Close()

	if err := repository.RunMigrations(db, creds); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("database migrations completed")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	var publisher events.OrderPublisher = events.NopPublisher{}
	if brokers := cfg.BrokerList(); len(brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaTopic, brokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info().Strs("brokers", brokers).Str("topic", cfg.KafkaTopic).Msg("order events enabled")
	}

	cartRepo := repository.NewMongoCartRepository(mongoDB)
	wishlistRepo := repository.NewMongoWishlistRepository(mongoDB)
	orderRepo := repository.NewPostgresOrderRepository(db)
	productRepo := repository.NewPostgresProductRepository(db)
	cartCache := cache.NewRedisCache(redisClient)

	cartService := service.NewCartService(cartRepo, productRepo, cartCache)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	checkoutService := service.NewCheckoutService(orderRepo, cartService, publisher)

	cartHandler := h.NewCartHandler(cartService, cfg.RequestTimeout)
	wishlistHandler := h.NewWishlistHandler(wishlistService, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(checkoutService, cfg.RequestTimeout)
	productHandler := h.NewProductHandler(productRepo, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.ShopperAuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.GetWishlist)
			r.Post("/items", wishlistHandler.AddItem)
			r.Post("/items/{product_id}/toggle", wishlistHandler.Toggle)
			r.Delete("/items/{product_id}", wishlistHandler.RemoveItem)
			r.Delete("/", wishlistHandler.ClearWishlist)
		})

		r.Post("/checkout", ordersHandler.SubmitOrder)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{order_id}", ordersHandler.GetOrder)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{product_id}", productHandler.GetProduct)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.AdminAuthMiddleware(cfg.AdminToken))
			r.Get("/orders", ordersHandler.ListAllOrders)
			r.Patch("/orders/{order_id}/status", ordersHandler.UpdateStatus)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "anika-storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-sigChan
	log.Info().Msg("received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("storefront stopped")
}
