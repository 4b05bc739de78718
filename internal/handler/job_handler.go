package handler

import (
	"github.com/gofiber/fiber/v2"

	"storefront-admin/internal/service/notification"
)

type JobHandler struct {
	notifService notification.Service
}

func NewJobHandler(notifService notification.Service) *JobHandler {
	return &JobHandler{notifService: notifService}
}

func (h *JobHandler) CleanupNotifications(c *fiber.Ctx) error {
	return respond(c, h.notifService.CleanupExpiredNotifications(c.Context()), fiber.StatusOK)
}
