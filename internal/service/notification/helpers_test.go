package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/repository"
)

var baseTime = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService(t *testing.T) (*service, *repository.MemoryCollectionStore, *testClock) {
	t.Helper()

	store := repository.NewMemoryCollectionStore()
	clock := &testClock{now: baseTime}
	svc := newService(store, nil, nil, nil, Options{Now: clock.Now, AdminURL: "https://admin.example.com"})
	svc.async = func(f func()) { f() }
	return svc, store, clock
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

// seed writes n straight into the store, bypassing the factory, so tests can
// set read state and timestamps freely.
func seed(t *testing.T, store repository.CollectionStore, n domain.Notification) {
	t.Helper()

	if n.Type == "" {
		n.Type = domain.NotifInfo
	}
	if n.Priority == "" {
		n.Priority = domain.PriorityMedium
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = baseTime.Add(-time.Hour)
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = n.CreatedAt
	}
	if n.Metadata == nil {
		n.Metadata = map[string]any{}
	}

	rec, err := repository.ToRecord(n)
	require.NoError(t, err)
	_, err = store.Create(context.Background(), domain.NotificationCollection, rec)
	require.NoError(t, err)
}

func ids(notifications []domain.Notification) []string {
	out := make([]string, len(notifications))
	for i, n := range notifications {
		out[i] = n.ID
	}
	return out
}
