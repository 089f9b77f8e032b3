package services

import (
	"context"
	"time"

	"nfc-coop/internal/adapters/persistence/models"
	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/core/domain"

	"github.com/teris-io/shortid"
)

var receiptIDs = shortid.MustNew(1, shortid.DefaultABC, uint64(time.Now().UnixNano()))

// newLedgerEntry builds one transaction row for a ledger movement. The
// station is taken from the member, the date defaults to today and a
// receipt number is generated when the caller supplied none.
func newLedgerEntry(member *models.Member, txType, accountType, accountID string, amount float64, isCredit bool, meta domain.PaymentMeta, actor string) *models.Transaction {
	date := meta.TransactionDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	receipt := meta.ReceiptNumber
	if receipt == "" {
		if id, err := receiptIDs.Generate(); err == nil {
			receipt = "RCPT-" + id
		}
	}

	description := meta.Description
	if description == "" {
		description = txType
	}

	return &models.Transaction{
		TransactionDate: date,
		MemberID:        member.MemberID,
		StationID:       member.StationID,
		TransactionType: txType,
		AccountType:     accountType,
		AccountID:       accountID,
		Description:     description,
		Amount:          amount,
		IsCredit:        isCredit,
		PaymentMethod:   meta.PaymentMethod,
		ChequeNumber:    meta.ChequeNumber,
		ReceiptNumber:   receipt,
		CreatedBy:       actor,
	}
}

// TransactionService exposes read access to the transaction ledger
type TransactionService struct {
	transactionRepo *repositories.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo *repositories.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// List returns ledger entries matching the filter, most recent first
func (s *TransactionService) List(ctx context.Context, filter repositories.TransactionFilter) ([]*models.Transaction, error) {
	return s.transactionRepo.List(ctx, filter)
}

// ListPaged returns one page of ledger entries plus the total count
func (s *TransactionService) ListPaged(ctx context.Context, filter repositories.TransactionFilter, offset, limit int) ([]*models.Transaction, int64, error) {
	return s.transactionRepo.ListPaged(ctx, filter, offset, limit)
}
