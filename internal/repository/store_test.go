package repository

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestSQLStore(t *testing.T) *SQLCollectionStore {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	s, err := NewSQLCollectionStore(db)
	require.NoError(t, err)
	return s
}

func storesUnderTest(t *testing.T) map[string]CollectionStore {
	return map[string]CollectionStore{
		"sql":    newTestSQLStore(t),
		"memory": NewMemoryCollectionStore(),
	}
}

func TestCollectionStore_CRUD(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			created, err := store.Create(ctx, "orders", Record{"id": "o-1", "status": "pending", "total": 10})
			require.NoError(t, err)
			assert.Equal(t, "o-1", created.ID())
			assert.Equal(t, float64(10), created["total"])

			got, err := store.Read(ctx, "orders", "o-1")
			require.NoError(t, err)
			assert.Equal(t, "pending", got["status"])

			updated, err := store.Update(ctx, "orders", "o-1", Record{"status": "shipped"})
			require.NoError(t, err)
			assert.Equal(t, "shipped", updated["status"])
			assert.Equal(t, float64(10), updated["total"], "update merges, it does not replace")

			require.NoError(t, store.Delete(ctx, "orders", "o-1"))

			_, err = store.Read(ctx, "orders", "o-1")
			assert.ErrorIs(t, err, ErrRecordNotFound)
			assert.ErrorIs(t, store.Delete(ctx, "orders", "o-1"), ErrRecordNotFound)
		})
	}
}

func TestCollectionStore_CreateAssignsID(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			created, err := store.Create(context.Background(), "site_settings", Record{"name": "Shop"})
			require.NoError(t, err)
			assert.NotEmpty(t, created.ID())
		})
	}
}

func TestCollectionStore_UpdateMissing(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Update(context.Background(), "orders", "missing", Record{"status": "x"})
			assert.ErrorIs(t, err, ErrRecordNotFound)
		})
	}
}

func TestCollectionStore_ReadAllIsScopedAndOrdered(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, id := range []string{"a", "b", "c"} {
				_, err := store.Create(ctx, "notifications", Record{"id": id})
				require.NoError(t, err)
			}
			_, err := store.Create(ctx, "orders", Record{"id": "other"})
			require.NoError(t, err)

			records, err := store.ReadAll(ctx, "notifications")
			require.NoError(t, err)
			require.Len(t, records, 3)
			for _, rec := range records {
				assert.NotEqual(t, "other", rec.ID())
			}

			empty, err := store.ReadAll(ctx, "campaigns")
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestCollectionStore_GetItemKey(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := store.Create(ctx, "orders", Record{"id": "o-1", "orderNumber": "1001", "items": 3})
			require.NoError(t, err)

			key, err := store.GetItemKey(ctx, "orders", "orderNumber", "1001")
			require.NoError(t, err)
			assert.Equal(t, "o-1", key)

			key, err = store.GetItemKey(ctx, "orders", "items", 3)
			require.NoError(t, err)
			assert.Equal(t, "o-1", key)

			key, err = store.GetItemKey(ctx, "orders", "orderNumber", "9999")
			require.NoError(t, err)
			assert.Empty(t, key)
		})
	}
}

func TestSQLCollectionStore_MigrationsAreIdempotent(t *testing.T) {
	s := newTestSQLStore(t)
	require.NoError(t, s.runMigrations())

	var version int
	require.NoError(t, s.db.Get(&version, `SELECT MAX(version) FROM schema_version`))
	assert.Equal(t, len(migrations), version)
}

func TestRecord_Merge(t *testing.T) {
	base := Record{"id": "1", "a": 1, "nested": map[string]any{"x": 1}}
	merged := base.Merge(Record{"a": 2, "nested": map[string]any{"y": 2}})

	assert.Equal(t, 2, merged["a"])
	assert.Equal(t, map[string]any{"y": 2}, merged["nested"])
	assert.Equal(t, 1, base["a"], "merge must not mutate the receiver")
}
