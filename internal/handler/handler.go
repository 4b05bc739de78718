package handler

import (
	"github.com/gofiber/fiber/v2"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/middleware"
	"storefront-admin/internal/service"
)

type Handlers struct {
	Notification *NotificationHandler
	Order        *OrderHandler
	Settings     *SettingsHandler
	Job          *JobHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Notification: NewNotificationHandler(services.Notification),
		Order:        NewOrderHandler(services.Orders, services.Notification),
		Settings:     NewSettingsHandler(services.Settings),
		Job:          NewJobHandler(services.Notification),
	}
}

func SetupRoutes(app *fiber.App, h *Handlers, services *service.Services) {
	v1 := app.Group("/api/v1")

	jobs := v1.Group("/jobs", middleware.RequireAPIKey(services.Auth))
	jobs.Post("/cleanup-notifications", h.Job.CleanupNotifications)

	protected := v1.Group("", middleware.AuthRequired(services.Auth))

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Post("/", h.Notification.Create)
	notifications.Post("/orders", h.Notification.CreateForOrder)
	notifications.Post("/mark-read", h.Notification.MarkManyAsRead)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Get("/counts", h.Notification.GetCounts)
	notifications.Get("/counts/store-orders", h.Notification.GetStoreOrdersCount)
	notifications.Get("/counts/system", h.Notification.GetSystemCount)
	notifications.Get("/counts/marketing", h.Notification.GetMarketingCount)
	notifications.Get("/:id", h.Notification.Get)
	notifications.Patch("/:id", h.Notification.Update)
	notifications.Delete("/:id", h.Notification.Delete)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)

	orders := protected.Group("/orders")
	orders.Post("/", h.Order.Create)
	orders.Get("/:orderId", h.Order.Get)
	orders.Patch("/:orderId/status", h.Order.UpdateStatus)
	orders.Post("/:orderId/notifications/clear", h.Order.ClearNotifications)

	settings := protected.Group("/settings")
	settings.Delete("/cache", h.Settings.ClearCache)
	settings.Get("/:collection", h.Settings.Get)
	settings.Put("/:collection", h.Settings.Update)
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
