package repositories

import (
	"context"

	"nfc-coop/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// TransactionFilter narrows transaction queries. All fields are optional
// and combine with AND. Dates are inclusive ISO strings (YYYY-MM-DD).
type TransactionFilter struct {
	MemberID  string
	StartDate string
	EndDate   string
}

// TransactionRepository handles the append-only transaction ledger. There
// is deliberately no update or delete method.
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a copy bound to the given transaction
func (r *TransactionRepository) WithTx(tx *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: tx}
}

// Create appends a ledger entry
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *TransactionRepository) filtered(ctx context.Context, filter TransactionFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Transaction{})
	if filter.MemberID != "" {
		q = q.Where("member_id = ?", filter.MemberID)
	}
	if filter.StartDate != "" {
		q = q.Where("transaction_date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		q = q.Where("transaction_date <= ?", filter.EndDate)
	}
	return q
}

// List returns matching entries, most recent first, ties broken by
// insertion order descending.
func (r *TransactionRepository) List(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.filtered(ctx, filter).
		Order("transaction_date DESC, transaction_id DESC").
		Find(&txs).Error
	return txs, err
}

// ListPaged returns one page of matching entries plus the total count
func (r *TransactionRepository) ListPaged(ctx context.Context, filter TransactionFilter, offset, limit int) ([]*models.Transaction, int64, error) {
	var txs []*models.Transaction
	var total int64

	r.filtered(ctx, filter).Count(&total)
	err := r.filtered(ctx, filter).
		Order("transaction_date DESC, transaction_id DESC").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error
	return txs, total, err
}

// Totals sums credits and debits over the filtered range
func (r *TransactionRepository) Totals(ctx context.Context, filter TransactionFilter) (credits, debits float64, err error) {
	type row struct {
		Credits float64
		Debits  float64
	}
	var res row
	err = r.filtered(ctx, filter).
		Select("COALESCE(SUM(CASE WHEN is_credit THEN amount END), 0) AS credits, COALESCE(SUM(CASE WHEN NOT is_credit THEN amount END), 0) AS debits").
		Scan(&res).Error
	return res.Credits, res.Debits, err
}

// Count counts entries over the filtered range
func (r *TransactionRepository) Count(ctx context.Context, filter TransactionFilter) (int64, error) {
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error
	return total, err
}
