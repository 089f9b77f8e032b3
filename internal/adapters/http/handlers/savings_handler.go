package handlers

import (
	"errors"
	"strconv"

	"nfc-coop/internal/core/domain"
	"nfc-coop/internal/core/services"
	"nfc-coop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SavingsHandler handles savings ledger endpoints
type SavingsHandler struct {
	savingsService *services.SavingsService
}

// NewSavingsHandler creates a new savings handler
func NewSavingsHandler(savingsService *services.SavingsService) *SavingsHandler {
	return &SavingsHandler{savingsService: savingsService}
}

func accountID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	return uint(id), err
}

// PaymentRequest carries amount plus optional payment metadata
type PaymentRequest struct {
	Amount          float64 `json:"amount"`
	TransactionDate string  `json:"transaction_date,omitempty"`
	Description     string  `json:"description,omitempty"`
	PaymentMethod   string  `json:"payment_method,omitempty"`
	ChequeNumber    string  `json:"cheque_number,omitempty"`
	ReceiptNumber   string  `json:"receipt_number,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

func (r *PaymentRequest) meta() domain.PaymentMeta {
	return domain.PaymentMeta{
		TransactionDate: r.TransactionDate,
		Description:     r.Description,
		PaymentMethod:   r.PaymentMethod,
		ChequeNumber:    r.ChequeNumber,
		ReceiptNumber:   r.ReceiptNumber,
		Notes:           r.Notes,
	}
}

// CreateAccountRequest represents account creation request
type CreateAccountRequest struct {
	MemberID      string `json:"member_id"`
	SavingsTypeID uint   `json:"savings_type_id"`
}

// CreateAccount opens a savings account for a member
func (h *SavingsHandler) CreateAccount(c *fiber.Ctx) error {
	var req CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.MemberID == "" {
		return response.BadRequest(c, "Member ID is required")
	}
	if req.SavingsTypeID == 0 {
		return response.BadRequest(c, "Savings type is required")
	}

	account, err := h.savingsService.CreateAccount(c.Context(), req.MemberID, req.SavingsTypeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			return response.NotFound(c, "Member not found")
		case errors.Is(err, domain.ErrSavingsTypeNotFound):
			return response.NotFound(c, "Savings type not found")
		case errors.Is(err, domain.ErrAccountAlreadyExists):
			return response.Conflict(c, "Member already has an account of this type")
		default:
			return response.InternalServerError(c, "Failed to create account")
		}
	}

	return response.Created(c, "Account created", account)
}

// Deposit credits an account
func (h *SavingsHandler) Deposit(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.savingsService.Deposit(c.Context(), id, req.Amount, req.meta(), actor(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrAccountNotFound):
			return response.NotFound(c, "Account not found")
		default:
			return response.InternalServerError(c, "Deposit failed")
		}
	}

	return response.Success(c, "Deposit recorded", account)
}

// Withdraw debits an account
func (h *SavingsHandler) Withdraw(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	account, err := h.savingsService.Withdraw(c.Context(), id, req.Amount, req.meta(), actor(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, domain.ErrAccountNotFound):
			return response.NotFound(c, "Account not found")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return response.UnprocessableEntity(c, "Insufficient balance")
		default:
			return response.InternalServerError(c, "Withdrawal failed")
		}
	}

	return response.Success(c, "Withdrawal recorded", account)
}

// GetAccount returns one account
func (h *SavingsHandler) GetAccount(c *fiber.Ctx) error {
	id, err := accountID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid account ID")
	}

	account, err := h.savingsService.GetAccount(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return response.NotFound(c, "Account not found")
		}
		return response.InternalServerError(c, "Failed to load account")
	}
	return response.Success(c, "", account)
}

// ListMemberAccounts returns a member's accounts
func (h *SavingsHandler) ListMemberAccounts(c *fiber.Ctx) error {
	accounts, err := h.savingsService.ListAccounts(c.Context(), c.Params("memberId"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list accounts")
	}
	return response.Success(c, "", fiber.Map{"accounts": accounts})
}

// ListTypes returns the savings type catalog
func (h *SavingsHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.savingsService.ListTypes(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list savings types")
	}
	return response.Success(c, "", fiber.Map{"savings_types": types})
}
