package settings

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/metrics"
	"storefront-admin/internal/repository"
)

type Service interface {
	GetSettings(ctx context.Context, collection string) (repository.Record, error)
	UpdateSettings(ctx context.Context, collection string, patch repository.Record) (repository.Record, error)
	ClearCache(ctx context.Context, keys ...string)
}

type service struct {
	store  repository.CollectionStore
	cache  Cache
	logger *zap.Logger
}

func NewService(store repository.CollectionStore, cache Cache, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{store: store, cache: cache, logger: logger.Named("settings")}
}

func validCollection(collection string) error {
	if !domain.IsSettingsCollection(collection) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidSettingsKey, collection)
	}
	return nil
}

// GetSettings answers from the cache and falls back to the first record of
// the collection, caching it for the TTL. Two concurrent misses may both
// read the store.
func (s *service) GetSettings(ctx context.Context, collection string) (repository.Record, error) {
	if err := validCollection(collection); err != nil {
		return nil, err
	}

	if rec, ok := s.cache.Get(ctx, collection); ok {
		metrics.SettingsCacheRequestsTotal.WithLabelValues("hit").Inc()
		return rec, nil
	}
	metrics.SettingsCacheRequestsTotal.WithLabelValues("miss").Inc()

	rec, err := s.first(ctx, collection)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSettingsNotFound, collection)
	}

	s.cache.Set(ctx, collection, rec)
	return rec, nil
}

func (s *service) first(ctx context.Context, collection string) (repository.Record, error) {
	records, err := s.store.ReadAll(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", collection, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (s *service) UpdateSettings(ctx context.Context, collection string, patch repository.Record) (repository.Record, error) {
	if err := validCollection(collection); err != nil {
		return nil, err
	}

	current, err := s.first(ctx, collection)
	if err != nil {
		return nil, err
	}

	var saved repository.Record
	if current == nil {
		rec := patch.Merge(repository.Record{"id": collection})
		saved, err = s.store.Create(ctx, collection, rec)
	} else {
		changes := patch.Merge(nil)
		delete(changes, "id")
		saved, err = s.store.Update(ctx, collection, current.ID(), changes)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", collection, err)
	}

	s.cache.Delete(ctx, collection)
	s.logger.Info("settings updated", zap.String("collection", collection))
	return saved, nil
}

func (s *service) ClearCache(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		s.cache.Clear(ctx)
		return
	}
	s.cache.Delete(ctx, keys...)
}
