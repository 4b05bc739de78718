package service

import (
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront-admin/internal/config"
	"storefront-admin/internal/repository"
	"storefront-admin/internal/service/archive"
	"storefront-admin/internal/service/auth"
	"storefront-admin/internal/service/email"
	"storefront-admin/internal/service/notification"
	"storefront-admin/internal/service/orders"
	"storefront-admin/internal/service/settings"
)

type Services struct {
	Auth         auth.Service
	Email        email.Service
	Notification notification.Service
	Orders       orders.Service
	Settings     settings.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	var emailService email.Service
	if cfg.ResendAPIKey != "" {
		svc, err := email.NewService(cfg, logger)
		if err != nil {
			return nil, err
		}
		emailService = svc
	}

	var archiver notification.Archiver
	if minioClient != nil {
		archiver = archive.NewService(minioClient, cfg.MinIOBucket)
	}

	var cache settings.Cache
	if redis != nil {
		cache = settings.NewRedisCache(redis, cfg.SettingsCacheTTL, logger)
	} else {
		cache = settings.NewMemoryCache(cfg.SettingsCacheTTL, time.Now)
	}

	notificationService := notification.NewService(repos.Store, emailService, archiver, logger, notification.Options{
		ReadRetention:  cfg.ReadRetention,
		SweepBatchSize: cfg.SweepBatchSize,
		AdminURL:       cfg.AdminURL,
		Locale:         cfg.Locale,
	})

	return &Services{
		Auth:         auth.NewService(cfg),
		Email:        emailService,
		Notification: notificationService,
		Orders:       orders.NewService(repos.Store, notificationService, logger, time.Now),
		Settings:     settings.NewService(repos.Store, cache, logger),
	}, nil
}
