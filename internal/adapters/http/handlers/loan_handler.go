package handlers

import (
	"errors"
	"strconv"

	"nfc-coop/internal/core/domain"
	"nfc-coop/internal/core/services"
	"nfc-coop/internal/pkg/pagination"
	"nfc-coop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan lifecycle endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

func loanID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// Disburse originates a new loan
func (h *LoanHandler) Disburse(c *fiber.Ctx) error {
	var input services.DisburseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.MemberID == "" {
		return response.BadRequest(c, "Member ID is required")
	}
	if input.LoanTypeID == 0 {
		return response.BadRequest(c, "Loan type is required")
	}

	loan, err := h.loanService.Disburse(c.Context(), &input, actor(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrLoanTypeNotFound):
			return response.NotFound(c, "Loan type not found")
		case errors.Is(err, domain.ErrDurationExceedsMax):
			return response.UnprocessableEntity(c, "Duration exceeds loan type maximum")
		case errors.Is(err, domain.ErrConfiguration):
			return response.InternalServerError(c, "Loan number counter is not configured")
		default:
			return response.InternalServerError(c, "Failed to disburse loan")
		}
	}

	return response.Created(c, "Loan disbursed", loan)
}

// Repay records a repayment against a loan
func (h *LoanHandler) Repay(c *fiber.Ctx) error {
	id, err := loanID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.Repay(c.Context(), id, req.Amount, req.meta(), actor(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrLoanNotActive):
			return response.UnprocessableEntity(c, "Loan is not active")
		case errors.Is(err, domain.ErrOverpaymentRejected):
			return response.UnprocessableEntity(c, "Amount exceeds outstanding balance")
		default:
			return response.InternalServerError(c, "Failed to record repayment")
		}
	}

	return response.Success(c, "Repayment recorded", loan)
}

// Get returns one loan
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	id, err := loanID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to load loan")
	}
	return response.Success(c, "", loan)
}

// List returns loans, optionally filtered by status, paginated
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	loans, total, err := h.loanService.List(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "", fiber.Map{
		"loans":      loans,
		"pagination": pagination.GetMeta(params, total),
	})
}

// ListByMember returns a member's loans
func (h *LoanHandler) ListByMember(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true"
	loans, err := h.loanService.ListByMember(c.Context(), c.Params("memberId"), activeOnly)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}
	return response.Success(c, "", fiber.Map{"loans": loans})
}

// ListRepayments returns the repayment history of a loan
func (h *LoanHandler) ListRepayments(c *fiber.Ctx) error {
	id, err := loanID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	repayments, err := h.loanService.ListRepayments(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to list repayments")
	}
	return response.Success(c, "", fiber.Map{"repayments": repayments})
}

// ListTypes returns the loan type catalog
func (h *LoanHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.loanService.ListTypes(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list loan types")
	}
	return response.Success(c, "", fiber.Map{"loan_types": types})
}
