package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"storefront-admin/internal/domain"
	"storefront-admin/internal/middleware"
	"storefront-admin/internal/repository"
	"storefront-admin/internal/service/settings"
)

type SettingsHandler struct {
	settingsService settings.Service
}

func NewSettingsHandler(settingsService settings.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func settingsError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidSettingsKey):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, domain.ErrSettingsNotFound):
		return middleware.NotFound("Settings not found")
	default:
		return err
	}
}

func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	rec, err := h.settingsService.GetSettings(c.Context(), c.Params("collection"))
	if err != nil {
		return settingsError(err)
	}

	return c.Status(fiber.StatusOK).JSON(rec)
}

func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var patch repository.Record
	if err := c.BodyParser(&patch); err != nil || len(patch) == 0 {
		return middleware.BadRequest("Invalid request body")
	}

	rec, err := h.settingsService.UpdateSettings(c.Context(), c.Params("collection"), patch)
	if err != nil {
		return settingsError(err)
	}

	return c.Status(fiber.StatusOK).JSON(rec)
}

func (h *SettingsHandler) ClearCache(c *fiber.Ctx) error {
	var keys []string
	for _, key := range strings.Split(c.Query("keys"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}

	h.settingsService.ClearCache(c.Context(), keys...)
	return c.Status(fiber.StatusNoContent).SendString("")
}
