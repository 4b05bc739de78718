package handler

import (
	"github.com/gofiber/fiber/v2"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/middleware"
	"storefront-admin/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func respond[T any](c *fiber.Ctx, res domain.Result[T], okStatus int) error {
	status := okStatus
	if !res.Success {
		switch res.Code {
		case domain.CodeNotFound:
			status = fiber.StatusNotFound
		case domain.CodeValidation:
			status = fiber.StatusBadRequest
		case domain.CodePartialFailure:
			status = fiber.StatusMultiStatus
		default:
			status = fiber.StatusInternalServerError
		}
	}
	return c.Status(status).JSON(res)
}

// userScope reads the user_id query parameter: absent means every
// notification, "null" means global ones only, "me" the caller.
func userScope(c *fiber.Ctx) domain.NullableString {
	raw, ok := c.Queries()["user_id"]
	if !ok {
		return domain.NullableString{}
	}
	switch raw {
	case "null", "":
		return domain.NullableString{Set: true}
	case "me":
		return domain.ForUser(middleware.GetCurrentUserID(c))
	default:
		return domain.ForUser(raw)
	}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	query := domain.NotificationQuery{
		UserID:     userScope(c),
		UnreadOnly: c.QueryBool("unread_only", false),
		Limit:      c.QueryInt("limit", 0),
	}
	if t := c.Query("type"); t != "" {
		parsed, err := domain.ParseNotificationType(t)
		if err != nil {
			return middleware.BadRequest(err.Error())
		}
		query.Type = parsed
	}

	if c.Query("page") != "" || c.Query("page_size") != "" {
		return respond(c, h.notifService.ListNotifications(c.Context(), query, getPaginationParams(c)), fiber.StatusOK)
	}
	return respond(c, h.notifService.GetAllNotifications(c.Context(), query), fiber.StatusOK)
}

func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var input domain.SystemNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	return respond(c, h.notifService.CreateSystemNotification(c.Context(), input), fiber.StatusCreated)
}

func (h *NotificationHandler) CreateForOrder(c *fiber.Ctx) error {
	var input domain.OrderNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.OrderID == "" {
		return middleware.BadRequest("orderId is required")
	}

	res := h.notifService.CreateOrderNotification(c.Context(), input)
	if res.Success && res.Data == nil {
		return respond(c, res, fiber.StatusOK)
	}
	return respond(c, res, fiber.StatusCreated)
}

func (h *NotificationHandler) Get(c *fiber.Ctx) error {
	return respond(c, h.notifService.GetNotification(c.Context(), c.Params("id")), fiber.StatusOK)
}

func (h *NotificationHandler) Update(c *fiber.Ctx) error {
	var input domain.UpdateNotificationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	return respond(c, h.notifService.UpdateNotification(c.Context(), c.Params("id"), input), fiber.StatusOK)
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	return respond(c, h.notifService.DeleteNotification(c.Context(), c.Params("id")), fiber.StatusOK)
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	readBy := middleware.GetCurrentUserID(c)
	return respond(c, h.notifService.MarkNotificationAsRead(c.Context(), c.Params("id"), readBy), fiber.StatusOK)
}

type markReadRequest struct {
	IDs []string `json:"ids"`
}

func (h *NotificationHandler) MarkManyAsRead(c *fiber.Ctx) error {
	var req markReadRequest
	if err := c.BodyParser(&req); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if len(req.IDs) == 0 {
		return middleware.BadRequest("ids must not be empty")
	}

	readBy := middleware.GetCurrentUserID(c)
	return respond(c, h.notifService.MarkMultipleNotificationsAsRead(c.Context(), req.IDs, readBy), fiber.StatusOK)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	return respond(c, h.notifService.GetUnreadNotificationsCount(c.Context(), userScope(c)), fiber.StatusOK)
}

func (h *NotificationHandler) GetCounts(c *fiber.Ctx) error {
	return respond(c, h.notifService.GetAllNavigationNotificationCounts(c.Context(), userScope(c)), fiber.StatusOK)
}

func (h *NotificationHandler) GetStoreOrdersCount(c *fiber.Ctx) error {
	return respond(c, h.notifService.GetStoreOrdersNotificationCount(c.Context(), userScope(c)), fiber.StatusOK)
}

func (h *NotificationHandler) GetSystemCount(c *fiber.Ctx) error {
	return respond(c, h.notifService.GetSystemNotificationCount(c.Context(), userScope(c)), fiber.StatusOK)
}

func (h *NotificationHandler) GetMarketingCount(c *fiber.Ctx) error {
	return respond(c, h.notifService.GetMarketingNotificationCount(c.Context(), userScope(c)), fiber.StatusOK)
}
