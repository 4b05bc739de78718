package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrRecordNotFound = errors.New("record not found")

type CollectionStore interface {
	Create(ctx context.Context, collection string, record Record) (Record, error)
	Read(ctx context.Context, collection, id string) (Record, error)
	Update(ctx context.Context, collection, id string, patch Record) (Record, error)
	Delete(ctx context.Context, collection, id string) error
	ReadAll(ctx context.Context, collection string) ([]Record, error)
	GetItemKey(ctx context.Context, collection, field string, value any) (string, error)
}

type Repositories struct {
	Store CollectionStore
}

func NewRepositories(db *sqlx.DB) (*Repositories, error) {
	store, err := NewSQLCollectionStore(db)
	if err != nil {
		return nil, err
	}
	return &Repositories{Store: store}, nil
}

func NewMemoryRepositories() *Repositories {
	return &Repositories{Store: NewMemoryCollectionStore()}
}
