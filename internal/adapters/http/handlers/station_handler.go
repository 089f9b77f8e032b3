package handlers

import (
	"errors"

	"nfc-coop/internal/core/domain"
	"nfc-coop/internal/core/services"
	"nfc-coop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StationHandler handles station directory endpoints
type StationHandler struct {
	stationService *services.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(stationService *services.StationService) *StationHandler {
	return &StationHandler{stationService: stationService}
}

// CreateStationRequest represents station creation request
type CreateStationRequest struct {
	City string `json:"city"`
}

// Create adds a station
func (h *StationHandler) Create(c *fiber.Ctx) error {
	var req CreateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	station, err := h.stationService.Create(c.Context(), req.City)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrConfiguration):
			return response.InternalServerError(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create station")
		}
	}

	return response.Created(c, "Station created", station)
}

// List returns the station directory
func (h *StationHandler) List(c *fiber.Ctx) error {
	enabledOnly := c.QueryBool("enabled_only", true)

	stations, err := h.stationService.List(c.Context(), enabledOnly)
	if err != nil {
		return response.InternalServerError(c, "Failed to list stations")
	}
	return response.Success(c, "", fiber.Map{"stations": stations})
}

// Get returns one station
func (h *StationHandler) Get(c *fiber.Ctx) error {
	station, err := h.stationService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrStationNotFound) {
			return response.NotFound(c, "Station not found")
		}
		return response.InternalServerError(c, "Failed to load station")
	}
	return response.Success(c, "", station)
}

// UpdateStationRequest represents station update request
type UpdateStationRequest struct {
	StationName string `json:"station_name,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Enabled     bool   `json:"enabled"`
}

// Update edits a station
func (h *StationHandler) Update(c *fiber.Ctx) error {
	var req UpdateStationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	station, err := h.stationService.Update(c.Context(), c.Params("id"),
		req.StationName, req.Address, req.City, req.Enabled)
	if err != nil {
		if errors.Is(err, domain.ErrStationNotFound) {
			return response.NotFound(c, "Station not found")
		}
		return response.InternalServerError(c, "Failed to update station")
	}

	return response.Success(c, "Station updated", station)
}

// Delete removes a station with no members
func (h *StationHandler) Delete(c *fiber.Ctx) error {
	err := h.stationService.Delete(c.Context(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrStationNotFound):
			return response.NotFound(c, "Station not found")
		case errors.Is(err, domain.ErrStationHasMembers):
			return response.Conflict(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to delete station")
		}
	}
	return response.Success(c, "Station deleted", nil)
}
