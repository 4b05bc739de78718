package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/mocks"
	"storefront-admin/internal/repository"
)

func TestMarkNotificationAsRead(t *testing.T) {
	svc, store, clock := newTestService(t)
	ctx := context.Background()
	seed(t, store, domain.Notification{
		ID:       "n-1",
		Title:    "Low stock",
		Metadata: map[string]any{"sku": "ABC"},
	})
	clock.Advance(5 * time.Minute)

	res := svc.MarkNotificationAsRead(ctx, "n-1", "admin-7")

	require.True(t, res.Success, res.Error)
	n := res.Data
	assert.True(t, n.IsRead)
	assert.Equal(t, "admin-7", n.ReadBy)
	require.NotNil(t, n.ReadAt)
	assert.True(t, n.ReadAt.Equal(clock.Now()))
	assert.True(t, n.UpdatedAt.Equal(clock.Now()))
	assert.Equal(t, "Low stock", n.Title, "other fields survive the merge")
	assert.Equal(t, "ABC", n.Metadata["sku"])
}

func TestMarkNotificationAsRead_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	res := svc.MarkNotificationAsRead(context.Background(), "missing", "admin")

	assert.False(t, res.Success)
	assert.Equal(t, domain.CodeNotFound, res.Code)
	assert.Contains(t, res.Error, "missing")
}

func TestMarkNotificationAsRead_Idempotent(t *testing.T) {
	svc, store, clock := newTestService(t)
	ctx := context.Background()
	seed(t, store, domain.Notification{ID: "n-1"})

	first := svc.MarkNotificationAsRead(ctx, "n-1", "a")
	require.True(t, first.Success)
	clock.Advance(time.Minute)

	second := svc.MarkNotificationAsRead(ctx, "n-1", "b")
	require.True(t, second.Success)
	assert.True(t, second.Data.IsRead)
	assert.Equal(t, "b", second.Data.ReadBy)
	assert.True(t, second.Data.ReadAt.After(*first.Data.ReadAt))
}

func TestMarkNotificationAsRead_StoreFailure(t *testing.T) {
	store := new(mocks.CollectionStore)
	svc := newService(store, nil, nil, nil, Options{})
	store.On("Read", mock.Anything, domain.NotificationCollection, "n-1").
		Return(repository.Record{"id": "n-1"}, nil).Once()
	store.On("Update", mock.Anything, domain.NotificationCollection, "n-1", mock.Anything).
		Return(nil, errors.New("disk full")).Once()

	res := svc.MarkNotificationAsRead(context.Background(), "n-1", "a")

	assert.False(t, res.Success)
	assert.Equal(t, domain.CodeStoreFailure, res.Code)
	store.AssertExpectations(t)
}

func TestMarkMultipleNotificationsAsRead_PartialFailure(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	seed(t, store, domain.Notification{ID: "a"})
	seed(t, store, domain.Notification{ID: "c"})

	res := svc.MarkMultipleNotificationsAsRead(ctx, []string{"a", "b", "c"}, "admin")

	assert.False(t, res.Success)
	assert.Equal(t, domain.CodePartialFailure, res.Code)
	assert.Equal(t, 2, res.Data.SuccessCount)
	assert.Equal(t, 1, res.Data.FailureCount)
	require.Len(t, res.Data.Results, 3)
	assert.Equal(t, "a", res.Data.Results[0].ID)
	assert.True(t, res.Data.Results[0].Success)
	assert.Equal(t, "b", res.Data.Results[1].ID)
	assert.False(t, res.Data.Results[1].Success)
	assert.NotEmpty(t, res.Data.Results[1].Error)
	assert.True(t, res.Data.Results[2].Success)

	c := svc.GetNotification(ctx, "c")
	require.True(t, c.Success)
	assert.True(t, c.Data.IsRead)
}

func TestMarkMultipleNotificationsAsRead_AllSucceed(t *testing.T) {
	svc, store, _ := newTestService(t)
	seed(t, store, domain.Notification{ID: "a"})
	seed(t, store, domain.Notification{ID: "b"})

	res := svc.MarkMultipleNotificationsAsRead(context.Background(), []string{"a", "b"}, "admin")

	require.True(t, res.Success)
	assert.Equal(t, 2, res.Data.SuccessCount)
	assert.Zero(t, res.Data.FailureCount)
}

func TestMarkMultipleNotificationsAsRead_Empty(t *testing.T) {
	svc, _, _ := newTestService(t)

	res := svc.MarkMultipleNotificationsAsRead(context.Background(), nil, "admin")

	require.True(t, res.Success)
	assert.Zero(t, res.Data.SuccessCount)
	assert.Empty(t, res.Data.Results)
}

func TestUpdateNotification(t *testing.T) {
	svc, store, clock := newTestService(t)
	ctx := context.Background()
	seed(t, store, domain.Notification{
		ID:       "n-1",
		Title:    "Old",
		Message:  "keep me",
		Metadata: map[string]any{"a": "1", "b": "2"},
	})
	clock.Advance(time.Hour)

	expires := baseTime.Add(48 * time.Hour)
	res := svc.UpdateNotification(ctx, "n-1", domain.UpdateNotificationInput{
		Title:     strPtr("New"),
		Priority:  strPtr("critical"),
		ExpiresAt: domain.NullableTime{Set: true, Value: &expires},
		Metadata:  map[string]any{"b": "override", "c": "3"},
	})

	require.True(t, res.Success, res.Error)
	n := res.Data
	assert.Equal(t, "New", n.Title)
	assert.Equal(t, "keep me", n.Message)
	assert.Equal(t, domain.PriorityCritical, n.Priority)
	require.NotNil(t, n.ExpiresAt)
	assert.True(t, n.ExpiresAt.Equal(expires))
	assert.Equal(t, map[string]any{"a": "1", "b": "override", "c": "3"}, n.Metadata)
	assert.True(t, n.UpdatedAt.Equal(clock.Now()))
}

func TestUpdateNotification_ClearsExpiry(t *testing.T) {
	svc, store, _ := newTestService(t)
	seed(t, store, domain.Notification{ID: "n-1", ExpiresAt: timePtr(baseTime.Add(time.Hour))})

	res := svc.UpdateNotification(context.Background(), "n-1", domain.UpdateNotificationInput{
		ExpiresAt: domain.NullableTime{Set: true},
	})

	require.True(t, res.Success, res.Error)
	assert.Nil(t, res.Data.ExpiresAt)
}

func TestUpdateNotification_Errors(t *testing.T) {
	svc, store, _ := newTestService(t)
	seed(t, store, domain.Notification{ID: "n-1"})

	missing := svc.UpdateNotification(context.Background(), "nope", domain.UpdateNotificationInput{Title: strPtr("x")})
	assert.Equal(t, domain.CodeNotFound, missing.Code)

	invalid := svc.UpdateNotification(context.Background(), "n-1", domain.UpdateNotificationInput{Priority: strPtr("urgent")})
	assert.Equal(t, domain.CodeValidation, invalid.Code)
}

func TestDeleteNotification(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()
	seed(t, store, domain.Notification{ID: "n-1"})

	res := svc.DeleteNotification(ctx, "n-1")
	require.True(t, res.Success)
	assert.Equal(t, "n-1", res.Data)

	again := svc.DeleteNotification(ctx, "n-1")
	assert.False(t, again.Success)
	assert.Equal(t, domain.CodeNotFound, again.Code)
}
