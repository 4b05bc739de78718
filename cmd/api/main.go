package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront-admin/internal/config"
	"storefront-admin/internal/events"
	"storefront-admin/internal/handler"
	"storefront-admin/internal/metrics"
	"storefront-admin/internal/middleware"
	"storefront-admin/internal/pkg/i18n"
	"storefront-admin/internal/repository"
	"storefront-admin/internal/service"
	"storefront-admin/internal/service/notification"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zapLogger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	if err := i18n.LoadTranslations(cfg.LocalesPath); err != nil {
		zapLogger.Warn("Failed to load translations, using built-in texts", zap.Error(err))
	}

	var repos *repository.Repositories
	if cfg.DatabaseURL == "" {
		zapLogger.Warn("DATABASE_URL not set, using in-memory store")
		repos = repository.NewMemoryRepositories()
	} else {
		db, err := config.NewDB(cfg)
		if err != nil {
			zapLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		repos, err = repository.NewRepositories(db)
		if err != nil {
			zapLogger.Fatal("Failed to prepare record store", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = config.NewRedisClient(cfg)
		if err != nil {
			zapLogger.Warn("Failed to connect to Redis, settings cache stays in process", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var minioClient *minio.Client
	if cfg.MinIOEndpoint != "" {
		minioClient, err = config.NewMinIOClient(cfg, zapLogger)
		if err != nil {
			zapLogger.Warn("Failed to connect to MinIO, swept notifications will not be archived", zap.Error(err))
			minioClient = nil
		}
	}

	services, err := service.NewServices(repos, redisClient, minioClient, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to build services", zap.Error(err))
	}
	handlers := handler.NewHandlers(services)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go notification.NewScheduler(services.Notification, cfg.SweepInterval, zapLogger).Run(ctx)

	if len(cfg.KafkaBrokers) > 0 {
		consumer := events.NewOrderStatusConsumer(config.NewOrderEventReader(cfg), services.Notification, zapLogger)
		go func() {
			if err := consumer.Run(ctx); err != nil {
				zapLogger.Error("Order event consumer stopped", zap.Error(err))
			}
		}()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.Register(registry)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.WithLogger(zapLogger))
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.APIKeyHeader,
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))
	app.Use(middleware.Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handler.SetupRoutes(app, handlers, services)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zapLogger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("Server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
