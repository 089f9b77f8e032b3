package handlers

import (
	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/core/services"
	"nfc-coop/internal/pkg/pagination"
	"nfc-coop/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler exposes the read-only transaction ledger
type TransactionHandler struct {
	transactionService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List returns ledger entries, newest first, with optional filters
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	filter := repositories.TransactionFilter{
		MemberID:  c.Query("member_id"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	transactions, total, err := h.transactionService.ListPaged(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list transactions")
	}

	return response.Success(c, "", fiber.Map{
		"transactions": transactions,
		"pagination":   pagination.GetMeta(params, total),
	})
}
