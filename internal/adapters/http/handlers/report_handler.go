package handlers

import (
	"errors"

	"nfc-coop/internal/core/domain"
	"nfc-coop/internal/core/services"
	"nfc-coop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler serves accounting reports
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// MemberStatement returns a member's transaction statement for a date range
func (h *ReportHandler) MemberStatement(c *fiber.Ctx) error {
	statement, err := h.reportService.MemberStatement(
		c.Context(),
		c.Params("memberId"),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to build statement")
	}
	return response.Success(c, "", statement)
}

// Cashbook returns the organization-wide cashbook for a date range
func (h *ReportHandler) Cashbook(c *fiber.Ctx) error {
	cashbook, err := h.reportService.Cashbook(c.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return response.InternalServerError(c, "Failed to build cashbook")
	}
	return response.Success(c, "", cashbook)
}

// LoanPortfolio returns the loan book snapshot, optionally by status
func (h *ReportHandler) LoanPortfolio(c *fiber.Ctx) error {
	portfolio, err := h.reportService.LoanPortfolio(c.Context(), c.Query("status"))
	if err != nil {
		return response.InternalServerError(c, "Failed to build loan portfolio")
	}
	return response.Success(c, "", portfolio)
}

// MemberSummaries returns the per-member position view
func (h *ReportHandler) MemberSummaries(c *fiber.Ctx) error {
	summaries, err := h.reportService.MemberSummaries(c.Context(), c.Query("member_id"))
	if err != nil {
		return response.InternalServerError(c, "Failed to load member summaries")
	}
	return response.Success(c, "", fiber.Map{"summaries": summaries})
}
