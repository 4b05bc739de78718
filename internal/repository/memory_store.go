package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryCollectionStore is an in-process CollectionStore. Records go through
// the same JSON encoding as the SQL store so callers observe identical
// values (timestamps come back as strings, numbers as float64).
type MemoryCollectionStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
	order       map[string][]string
}

func NewMemoryCollectionStore() *MemoryCollectionStore {
	return &MemoryCollectionStore{
		collections: make(map[string]map[string][]byte),
		order:       make(map[string][]string),
	}
}

func (s *MemoryCollectionStore) Create(_ context.Context, collection string, record Record) (Record, error) {
	rec := record.Merge(nil)
	if rec.ID() == "" {
		rec["id"] = uuid.NewString()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.collections[collection]
	if !ok {
		items = make(map[string][]byte)
		s.collections[collection] = items
	}
	if _, exists := items[rec.ID()]; exists {
		return nil, fmt.Errorf("failed to create record in %s: duplicate id %s", collection, rec.ID())
	}
	items[rec.ID()] = data
	s.order[collection] = append(s.order[collection], rec.ID())

	return decodeRecord(data)
}

func (s *MemoryCollectionStore) Read(_ context.Context, collection, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return decodeRecord(data)
}

func (s *MemoryCollectionStore) Update(_ context.Context, collection, id string, patch Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	current, err := decodeRecord(data)
	if err != nil {
		return nil, err
	}
	merged := current.Merge(patch)
	merged["id"] = id

	updated, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	s.collections[collection][id] = updated

	return decodeRecord(updated)
}

func (s *MemoryCollectionStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return ErrRecordNotFound
	}
	delete(s.collections[collection], id)

	ids := s.order[collection]
	for i, existing := range ids {
		if existing == id {
			s.order[collection] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryCollectionStore) ReadAll(_ context.Context, collection string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order[collection]
	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		rec, err := decodeRecord(s.collections[collection][id])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *MemoryCollectionStore) GetItemKey(ctx context.Context, collection, field string, value any) (string, error) {
	records, err := s.ReadAll(ctx, collection)
	if err != nil {
		return "", err
	}
	for _, rec := range records {
		if v, ok := rec[field]; ok && sameValue(v, value) {
			return rec.ID(), nil
		}
	}
	return "", nil
}
