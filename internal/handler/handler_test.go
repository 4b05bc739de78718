package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront-admin/internal/config"
	"storefront-admin/internal/middleware"
	"storefront-admin/internal/repository"
	"storefront-admin/internal/service"
)

const testAPIKey = "sweep-key"

type testEnv struct {
	app   *fiber.App
	token string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAPIKey), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		SweepAPIKeyHash:  string(hash),
		SettingsCacheTTL: time.Minute,
		AdminURL:         "https://admin.example.com",
	}

	services, err := service.NewServices(repository.NewMemoryRepositories(), nil, nil, cfg, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	SetupRoutes(app, NewHandlers(services), services)

	token, err := services.Auth.IssueAccessToken("admin-1", "admin@example.com", time.Hour)
	require.NoError(t, err)

	return &testEnv{app: app, token: token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	return e.doWith(t, method, path, body, map[string]string{"Authorization": "Bearer " + e.token})
}

func (e *testEnv) doWith(t *testing.T, method, path string, body any, headers map[string]string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.doWith(t, http.MethodGet, "/api/v1/notifications", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	status, _ = env.doWith(t, http.MethodGet, "/api/v1/notifications", nil, map[string]string{"Authorization": "Bearer nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestNotificationLifecycle(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/notifications", map[string]any{
		"title":    "Backup failed",
		"type":     "error",
		"priority": "critical",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, true, body["success"])
	created := body["data"].(map[string]any)
	id := created["id"].(string)
	assert.Equal(t, "error", created["type"])
	assert.Equal(t, true, created["autoMarkRead"])

	status, body = env.do(t, http.MethodGet, "/api/v1/notifications/"+id, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodGet, "/api/v1/notifications/counts/system", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["data"].(map[string]any)["count"])

	status, body = env.do(t, http.MethodPatch, "/api/v1/notifications/"+id+"/read", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin-1", body["data"].(map[string]any)["readBy"])

	status, body = env.do(t, http.MethodGet, "/api/v1/notifications/unread-count", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["data"])

	status, _ = env.do(t, http.MethodPatch, "/api/v1/notifications/"+id, map[string]any{"title": "Backup recovered"})
	assert.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/notifications/"+id, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodGet, "/api/v1/notifications/"+id, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestCreateNotification_ValidationStatus(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/notifications", map[string]any{"type": "promo"})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "promo")
}

func TestListNotifications(t *testing.T) {
	env := newTestEnv(t)

	for _, user := range []any{nil, "alice", "bob"} {
		status, _ := env.do(t, http.MethodPost, "/api/v1/notifications", map[string]any{"title": "x", "userId": user})
		require.Equal(t, http.StatusCreated, status)
	}

	_, all := env.do(t, http.MethodGet, "/api/v1/notifications", nil)
	assert.Len(t, all["data"], 3)

	_, alice := env.do(t, http.MethodGet, "/api/v1/notifications?user_id=alice", nil)
	assert.Len(t, alice["data"], 2)

	_, global := env.do(t, http.MethodGet, "/api/v1/notifications?user_id=null", nil)
	assert.Len(t, global["data"], 1)

	_, paged := env.do(t, http.MethodGet, "/api/v1/notifications?page=1&page_size=2", nil)
	page := paged["data"].(map[string]any)
	assert.Len(t, page["data"], 2)
	assert.Equal(t, float64(3), page["total_items"])

	status, _ := env.do(t, http.MethodGet, "/api/v1/notifications?type=promo", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestMarkManyAsRead(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.do(t, http.MethodPost, "/api/v1/notifications", map[string]any{"title": "x"})
	id := body["data"].(map[string]any)["id"].(string)

	status, body := env.do(t, http.MethodPost, "/api/v1/notifications/mark-read", map[string]any{"ids": []string{id, "missing"}})
	assert.Equal(t, http.StatusMultiStatus, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["successCount"])
	assert.Equal(t, float64(1), data["failureCount"])

	status, body = env.do(t, http.MethodPost, "/api/v1/notifications/mark-read", map[string]any{"ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", body["code"])
}

func TestOrderFlow(t *testing.T) {
	env := newTestEnv(t)

	status, order := env.do(t, http.MethodPost, "/api/v1/orders", map[string]any{
		"orderNumber":  "1042",
		"customerName": "Sari",
		"total":        99.9,
	})
	require.Equal(t, http.StatusCreated, status, order)
	orderID := order["id"].(string)

	_, counts := env.do(t, http.MethodGet, "/api/v1/notifications/counts", nil)
	assert.Equal(t, float64(1), counts["data"].(map[string]any)["storeOrders"])

	status, body := env.do(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(1), body["autoClear"].(map[string]any)["marked"])

	_, counts = env.do(t, http.MethodGet, "/api/v1/notifications/counts/store-orders", nil)
	assert.Equal(t, float64(0), counts["data"])

	status, body = env.do(t, http.MethodPost, "/api/v1/orders/"+orderID+"/notifications/clear", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["data"].(map[string]any)["marked"])

	status, _ = env.do(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", map[string]any{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPatch, "/api/v1/orders/order_missing/status", map[string]any{"status": "shipped"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateOrderNotification_ManualIsSuppressed(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/notifications/orders", map[string]any{
		"orderId":   "o-1",
		"orderType": "manual",
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Nil(t, body["data"])
}

func TestSettingsEndpoints(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodGet, "/api/v1/settings/store_settings", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body := env.do(t, http.MethodPut, "/api/v1/settings/store_settings", map[string]any{"currency": "IDR"})
	require.Equal(t, http.StatusOK, status, body)

	status, body = env.do(t, http.MethodGet, "/api/v1/settings/store_settings", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "IDR", body["currency"])

	status, _ = env.do(t, http.MethodDelete, "/api/v1/settings/cache?keys=store_settings", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/settings/users", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCleanupJob_RequiresAPIKey(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.doWith(t, http.MethodPost, "/api/v1/jobs/cleanup-notifications", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.doWith(t, http.MethodPost, "/api/v1/jobs/cleanup-notifications", nil, map[string]string{middleware.APIKeyHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := env.doWith(t, http.MethodPost, "/api/v1/jobs/cleanup-notifications", nil, map[string]string{middleware.APIKeyHeader: testAPIKey})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(0), body["data"].(map[string]any)["scanned"])
}
