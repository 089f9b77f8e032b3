package handlers

import (
	"errors"

	"nfc-coop/internal/core/domain"
	"nfc-coop/internal/core/services"
	"nfc-coop/internal/pkg/pagination"
	"nfc-coop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MemberHandler handles member registry endpoints
type MemberHandler struct {
	memberService *services.MemberService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

func actor(c *fiber.Ctx) string {
	username, _ := c.Locals("username").(string)
	return username
}

// Create registers a new member
func (h *MemberHandler) Create(c *fiber.Ctx) error {
	var input services.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Create(c.Context(), &input, actor(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrStationNotFound):
			return response.NotFound(c, "Station not found")
		case errors.Is(err, domain.ErrConfiguration):
			return response.InternalServerError(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to create member")
		}
	}

	return response.Created(c, "Member created", member)
}

// Get returns one member
func (h *MemberHandler) Get(c *fiber.Ctx) error {
	member, err := h.memberService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to load member")
	}
	return response.Success(c, "", member)
}

// List returns a page of members
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	activeOnly := c.QueryBool("active_only", false)

	members, total, err := h.memberService.List(c.Context(), activeOnly, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "", fiber.Map{
		"members": members,
		"meta":    pagination.GetMeta(params, total),
	})
}

// Search matches members by ID or name
func (h *MemberHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	members, err := h.memberService.Search(c.Context(), term, pagination.MaxLimit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "Search term is required")
		}
		return response.InternalServerError(c, "Search failed")
	}
	return response.Success(c, "", fiber.Map{"members": members})
}

// Update edits a member
func (h *MemberHandler) Update(c *fiber.Ctx) error {
	var input services.MemberInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.Update(c.Context(), c.Params("id"), &input, actor(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrStationNotFound):
			return response.NotFound(c, "Station not found")
		default:
			return response.InternalServerError(c, "Failed to update member")
		}
	}

	return response.Success(c, "Member updated", member)
}

// ChangeStatusRequest represents status change request
type ChangeStatusRequest struct {
	Status       string `json:"status"`
	DeceasedDate string `json:"deceased_date,omitempty"`
}

// ChangeStatus moves a member between Active, Inactive and Deceased
func (h *MemberHandler) ChangeStatus(c *fiber.Ctx) error {
	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.ChangeStatus(c.Context(), c.Params("id"),
		domain.MemberStatus(req.Status), req.DeceasedDate, actor(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		default:
			return response.InternalServerError(c, "Failed to change status")
		}
	}

	return response.Success(c, "Status changed", member)
}

// Summary returns the per-member aggregate view
func (h *MemberHandler) Summary(c *fiber.Ctx) error {
	rows, err := h.memberService.Summaries(c.Context(), c.Params("id"))
	if err != nil {
		return response.InternalServerError(c, "Failed to load summary")
	}
	if len(rows) == 0 {
		return response.NotFound(c, "Member not found")
	}
	return response.Success(c, "", rows[0])
}
