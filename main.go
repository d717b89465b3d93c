package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"sparemart/internal/config"
	"sparemart/internal/handlers"
	"sparemart/internal/middleware"
	"sparemart/internal/repositories"
	"sparemart/internal/services"
	"sparemart/internal/util"
	"sparemart/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.Env); err != nil {
		panic(err)
	}
	defer util.SyncLogger()
	log := util.GetLogger()

	// --- MongoDB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := repositories.NewStore(ctx, cfg.MongoURL, cfg.DBName)
	if err != nil {
		log.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to create indexes", zap.Error(err))
	}

	// --- RabbitMQ ---
	// The broker is optional: without it the API still serves requests and
	// event publication is skipped.
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, continuing without events", zap.Error(err))
		mqClient = nil
	} else {
		defer mqClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewMongoUserRepository(store)
	productRepo := repositories.NewMongoProductRepository(store)
	catalogRepo := repositories.NewMongoCatalogRepository(store)
	cartRepo := repositories.NewMongoCartRepository(store)
	wishlistRepo := repositories.NewMongoWishlistRepository(store)
	orderRepo := repositories.NewMongoOrderRepository(store)
	reviewRepo := repositories.NewMongoReviewRepository(store)
	blogRepo := repositories.NewMongoBlogRepository(store)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	productService := services.NewProductService(productRepo, catalogRepo)
	cartService := services.NewCartService(cartRepo, wishlistRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, userRepo, productRepo, mqClient)
	paymentService := services.NewPaymentService(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, orderRepo, mqClient)
	reviewService := services.NewReviewService(reviewRepo, productRepo)
	blogService := services.NewBlogService(blogRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	blogHandler := handlers.NewBlogHandler(blogService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(fiberlogger.New())

	// Group middleware mounts as Use() on the shared /api prefix, so the
	// tiers must be built in order: public routes first, then the auth gate
	// and its routes, then the admin gate. A route registered before a gate
	// is never blocked by it.
	api := app.Group("/api", middleware.OptionalAuth(authService))
	authHandler.RegisterPublicRoutes(api)
	productHandler.RegisterPublicRoutes(api)
	reviewHandler.RegisterPublicRoutes(api)
	blogHandler.RegisterPublicRoutes(api)

	protected := api.Group("", middleware.AuthRequired(authService))
	authHandler.RegisterProtectedRoutes(protected)
	cartHandler.RegisterProtectedRoutes(protected)
	orderHandler.RegisterProtectedRoutes(protected)
	paymentHandler.RegisterProtectedRoutes(protected)
	reviewHandler.RegisterProtectedRoutes(protected)

	admin := protected.Group("", middleware.AdminRequired())
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	blogHandler.RegisterAdminRoutes(admin)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Metrics Server ---
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		addr := ":" + cfg.MetricsPort
		log.Info("metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()

	// --- Event Consumer ---
	if mqClient != nil {
		handler := func(msg amqp.Delivery) error {
			log.Info("order event received",
				zap.String("type", msg.Type),
				zap.ByteString("body", msg.Body))
			return nil
		}
		if err := mqClient.Consume(handler); err != nil {
			log.Warn("failed to start event consumer", zap.Error(err))
		}
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("server listening", zap.String("addr", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	log.Info("shutting down")

	if err := app.Shutdown(); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := store.Close(shutdownCtx); err != nil {
		log.Error("error closing mongodb", zap.Error(err))
	}

	log.Info("server stopped")
}
