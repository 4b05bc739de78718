package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/middleware"
	"storefront-admin/internal/service/notification"
	"storefront-admin/internal/service/orders"
)

type OrderHandler struct {
	orderService orders.Service
	notifService notification.Service
}

func NewOrderHandler(orderService orders.Service, notifService notification.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService, notifService: notifService}
}

func orderError(err error) error {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return middleware.NotFound("Order not found")
	case errors.Is(err, domain.ErrInvalidOrderStatus), errors.Is(err, domain.ErrInvalidOrderType):
		return middleware.BadRequest(err.Error())
	default:
		return err
	}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	order, err := h.orderService.Create(c.Context(), input)
	if err != nil {
		return orderError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	order, err := h.orderService.Get(c.Context(), c.Params("orderId"))
	if err != nil {
		return orderError(err)
	}

	return c.Status(fiber.StatusOK).JSON(order)
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var input domain.UpdateOrderStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Status == "" {
		return middleware.BadRequest("status is required")
	}

	actorID := middleware.GetCurrentUserID(c)
	order, cleared, err := h.orderService.UpdateStatus(c.Context(), c.Params("orderId"), input.Status, actorID)
	if err != nil {
		return orderError(err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"order":     order,
		"autoClear": cleared,
	})
}

func (h *OrderHandler) ClearNotifications(c *fiber.Ctx) error {
	actorID := middleware.GetCurrentUserID(c)
	return respond(c, h.notifService.ClearOrderNotifications(c.Context(), c.Params("orderId"), actorID), fiber.StatusOK)
}
