package handlers

import (
	"errors"

	"nfc-coop/internal/core/domain"
	"nfc-coop/internal/core/services"
	"nfc-coop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingHandler handles system setting endpoints (admin only)
type SettingHandler struct {
	settingService *services.SettingService
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(settingService *services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// All returns every system setting
func (h *SettingHandler) All(c *fiber.Ctx) error {
	settings, err := h.settingService.All(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list settings")
	}
	return response.Success(c, "", fiber.Map{"settings": settings})
}

// Get returns one setting by key
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	value, err := h.settingService.Get(c.Context(), c.Params("key"))
	if err != nil {
		if errors.Is(err, domain.ErrSettingNotFound) {
			return response.NotFound(c, "Setting not found")
		}
		return response.InternalServerError(c, "Failed to load setting")
	}
	return response.Success(c, "", fiber.Map{
		"key":   c.Params("key"),
		"value": value,
	})
}

// UpdateSettingRequest represents a setting update
type UpdateSettingRequest struct {
	Value string `json:"value"`
}

// Set updates one setting by key
func (h *SettingHandler) Set(c *fiber.Ctx) error {
	var req UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.settingService.Set(c.Context(), c.Params("key"), req.Value, actor(c)); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to update setting")
	}
	return response.Success(c, "Setting updated", nil)
}

// ResyncCounters realigns ID counters with the highest allocated identifiers
func (h *SettingHandler) ResyncCounters(c *fiber.Ctx) error {
	if err := h.settingService.ResyncCounters(c.Context(), actor(c)); err != nil {
		return response.InternalServerError(c, "Failed to resync counters")
	}
	return response.Success(c, "Counters resynced", nil)
}
