package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"storefront-admin/internal/repository"
)

type CollectionStore struct {
	mock.Mock
}

func (m *CollectionStore) Create(ctx context.Context, collection string, record repository.Record) (repository.Record, error) {
	args := m.Called(ctx, collection, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Record), args.Error(1)
}

func (m *CollectionStore) Read(ctx context.Context, collection, id string) (repository.Record, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Record), args.Error(1)
}

func (m *CollectionStore) Update(ctx context.Context, collection, id string, patch repository.Record) (repository.Record, error) {
	args := m.Called(ctx, collection, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Record), args.Error(1)
}

func (m *CollectionStore) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func (m *CollectionStore) ReadAll(ctx context.Context, collection string) ([]repository.Record, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Record), args.Error(1)
}

func (m *CollectionStore) GetItemKey(ctx context.Context, collection, field string, value any) (string, error) {
	args := m.Called(ctx, collection, field, value)
	return args.String(0), args.Error(1)
}
