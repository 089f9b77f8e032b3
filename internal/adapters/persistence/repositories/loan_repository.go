package repositories

import (
	"context"

	"nfc-coop/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoanTypeRepository handles loan type reference data
type LoanTypeRepository struct {
	db *gorm.DB
}

// NewLoanTypeRepository creates a new loan type repository
func NewLoanTypeRepository(db *gorm.DB) *LoanTypeRepository {
	return &LoanTypeRepository{db: db}
}

// GetByID gets a loan type by ID
func (r *LoanTypeRepository) GetByID(ctx context.Context, id uint) (*models.LoanType, error) {
	var lt models.LoanType
	err := r.db.WithContext(ctx).First(&lt, id).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

// List lists all active loan types
func (r *LoanTypeRepository) List(ctx context.Context) ([]*models.LoanType, error) {
	var types []*models.LoanType
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("loan_type_id").Find(&types).Error
	return types, err
}

// LoanRepository handles loan data access
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// WithTx returns a copy bound to the given transaction
func (r *LoanRepository) WithTx(tx *gorm.DB) *LoanRepository {
	return &LoanRepository{db: tx}
}

// Create creates a new loan
func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID
func (r *LoanRepository) GetByID(ctx context.Context, loanID uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("LoanType").
		First(&loan, loanID).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// GetByIDForUpdate gets a loan with a row lock for repayment application.
// The lock only applies on MySQL; SQLite serializes writers anyway.
func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, loanID uint) (*models.Loan, error) {
	tx := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var loan models.Loan
	err := tx.First(&loan, loanID).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// ListByMember lists a member's loans, newest first
func (r *LoanRepository) ListByMember(ctx context.Context, memberID string, activeOnly bool) ([]*models.Loan, error) {
	var loans []*models.Loan
	q := r.db.WithContext(ctx).
		Preload("LoanType").
		Where("member_id = ?", memberID)
	if activeOnly {
		q = q.Where("status = ?", "Active")
	}
	err := q.Order("created_at DESC").Find(&loans).Error
	return loans, err
}

// List lists loans with an optional status filter and pagination
func (r *LoanRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Loan{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	q.Count(&total)

	err := q.Preload("LoanType").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error
	return loans, total, err
}

// ListOverdue lists Active loans whose end date is on or before the cutoff
func (r *LoanRepository) ListOverdue(ctx context.Context, cutoffDate string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status = ? AND balance_outstanding > 0 AND end_date <> '' AND end_date <= ?", "Active", cutoffDate).
		Find(&loans).Error
	return loans, err
}

// Update updates a loan
func (r *LoanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// PortfolioTotals sums disbursed principal, amounts paid and outstanding
// balances across all loans.
func (r *LoanRepository) PortfolioTotals(ctx context.Context) (disbursed, paid, outstanding float64, err error) {
	type row struct {
		Disbursed   float64
		Paid        float64
		Outstanding float64
	}
	var res row
	err = r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select("COALESCE(SUM(principal_amount), 0) AS disbursed, COALESCE(SUM(amount_paid), 0) AS paid, COALESCE(SUM(balance_outstanding), 0) AS outstanding").
		Scan(&res).Error
	return res.Disbursed, res.Paid, res.Outstanding, err
}

// CountByStatus counts loans in one status
func (r *LoanRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// MaxLoanNumber returns the highest sequence suffix among existing loan
// numbers (L-<member>-NNNNNN). Used by the post-migration counter resync.
func (r *LoanRepository) MaxLoanNumber(ctx context.Context) (int, error) {
	expr := "MAX(CAST(SUBSTR(loan_number, -6) AS INTEGER))"
	if r.db.Dialector.Name() == "mysql" {
		expr = "MAX(CAST(SUBSTR(loan_number, -6) AS SIGNED))"
	}

	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select(expr).
		Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

// LoanRepaymentRepository handles the append-only repayment audit trail
type LoanRepaymentRepository struct {
	db *gorm.DB
}

// NewLoanRepaymentRepository creates a new loan repayment repository
func NewLoanRepaymentRepository(db *gorm.DB) *LoanRepaymentRepository {
	return &LoanRepaymentRepository{db: db}
}

// WithTx returns a copy bound to the given transaction
func (r *LoanRepaymentRepository) WithTx(tx *gorm.DB) *LoanRepaymentRepository {
	return &LoanRepaymentRepository{db: tx}
}

// Create appends a repayment record
func (r *LoanRepaymentRepository) Create(ctx context.Context, repayment *models.LoanRepayment) error {
	return r.db.WithContext(ctx).Create(repayment).Error
}

// ListByLoan lists repayments for a loan, newest first
func (r *LoanRepaymentRepository) ListByLoan(ctx context.Context, loanID uint) ([]*models.LoanRepayment, error) {
	var repayments []*models.LoanRepayment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("created_at DESC, repayment_id DESC").
		Find(&repayments).Error
	return repayments, err
}
