package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafaelleal24/product-service/internal/adapters/config"
	"github.com/rafaelleal24/product-service/internal/adapters/http"
	"github.com/rafaelleal24/product-service/internal/adapters/http/controllers"
	"github.com/rafaelleal24/product-service/internal/adapters/importer"
	"github.com/rafaelleal24/product-service/internal/adapters/mongo"
	"github.com/rafaelleal24/product-service/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/product-service/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/product-service/internal/adapters/redis"
	"github.com/rafaelleal24/product-service/internal/adapters/s3"
	"github.com/rafaelleal24/product-service/internal/adapters/seed"
	"github.com/rafaelleal24/product-service/internal/core/domain"
	"github.com/rafaelleal24/product-service/internal/core/logger"
	"github.com/rafaelleal24/product-service/internal/core/service"
)

// @title       Product Service API
// @version     1.0
// @description Product catalog with stock counts and CSV imports

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(logger.Options{
		CollectorEndpoint: cfg.Logger.Endpoint,
		ServiceName:       cfg.Logger.ServiceName,
		IsProduction:      cfg.Logger.IsProduction,
		Format:            cfg.Logger.Format,
	}); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database connection
	mongoClient, err := mongo.NewConnection(cfg.Mongo)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to MongoDB", err, nil)
	}
	defer mongo.Disconnect(mongoClient)
	logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	// initialize redis connection
	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	// initialize rabbitmq connection
	broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", nil)

	// initialize object storage
	storage, err := s3.NewStorage(ctx, cfg.S3)
	if err != nil {
		logger.Fatal(ctx, "Failed to configure S3", err, nil)
	}
	if cfg.S3.Endpoint != "" {
		// local S3 compatible stores start without the bucket
		if err := storage.EnsureBucket(ctx); err != nil {
			logger.Fatal(ctx, "Failed to prepare import bucket", err, map[string]any{"bucket": cfg.S3.Bucket})
		}
	}
	logger.Info(ctx, "S3 storage ready", map[string]any{"bucket": cfg.S3.Bucket, "endpoint": cfg.S3.Endpoint})

	// initialize database and repos
	database := mongoClient.Database(cfg.Mongo.Database)
	productRepository := repository.NewProductRepository(database, cfg.Mongo.ProductsCollection)
	stockRepository := repository.NewStockRepository(database, cfg.Mongo.StocksCollection)

	if cfg.Seed.Enabled {
		catalog, err := seed.Load()
		if err != nil {
			logger.Fatal(ctx, "Failed to load seed catalog", err, nil)
		}
		if err := seed.NewSeeder(productRepository, stockRepository).Apply(ctx, catalog); err != nil {
			logger.Fatal(ctx, "Failed to seed catalog", err, nil)
		}
	}

	// caches and rate limiter
	idempotencyCache := redis.NewCache[service.IdempotencyEntry[domain.CreatedProduct]](redisClient, "idempotency")
	rateLimiter := redis.NewRateLimiter(redisClient)

	// services
	idempotencyService := service.NewIdempotencyService(idempotencyCache, cfg.Idempotency.TTL, cfg.Idempotency.PollInterval, cfg.Idempotency.PollTimeout)
	productService := service.NewProductService(productRepository, stockRepository, broker, idempotencyService)
	importService := service.NewImportService(storage, productService, cfg.S3.UploadPrefix, cfg.S3.URLExpiry)

	// import notifications
	importConsumer := importer.NewConsumer(broker, importService, cfg.RabbitMQ.ImportQueue)
	go func() {
		if err := importConsumer.Run(ctx); err != nil {
			logger.Error(ctx, "Import consumer stopped", err, map[string]any{"queue": cfg.RabbitMQ.ImportQueue.Name})
		}
	}()

	// controllers
	productController := controllers.NewProductController(productService)
	importController := controllers.NewImportController(importService)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "mongodb", Check: mongo.HealthCheck(mongoClient)},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return broker.HealthCheck() }},
		{Name: "s3", Check: storage.HealthCheck},
	})

	// router
	router := http.NewRouter(healthController, productController, importController, rateLimiter, cfg.RateLimit)

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
		}
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	err = router.ListenAndServe(ctx, cfg.HTTP)
	if err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
}
