package repositories

import (
	"context"

	"nfc-coop/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavingsTypeRepository handles savings type reference data
type SavingsTypeRepository struct {
	db *gorm.DB
}

// NewSavingsTypeRepository creates a new savings type repository
func NewSavingsTypeRepository(db *gorm.DB) *SavingsTypeRepository {
	return &SavingsTypeRepository{db: db}
}

// GetByID gets a savings type by ID
func (r *SavingsTypeRepository) GetByID(ctx context.Context, id uint) (*models.SavingsType, error) {
	var st models.SavingsType
	err := r.db.WithContext(ctx).First(&st, id).Error
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// List lists all active savings types
func (r *SavingsTypeRepository) List(ctx context.Context) ([]*models.SavingsType, error) {
	var types []*models.SavingsType
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("savings_type_id").Find(&types).Error
	return types, err
}

// SavingsAccountRepository handles savings account data access
type SavingsAccountRepository struct {
	db *gorm.DB
}

// NewSavingsAccountRepository creates a new savings account repository
func NewSavingsAccountRepository(db *gorm.DB) *SavingsAccountRepository {
	return &SavingsAccountRepository{db: db}
}

// WithTx returns a copy bound to the given transaction
func (r *SavingsAccountRepository) WithTx(tx *gorm.DB) *SavingsAccountRepository {
	return &SavingsAccountRepository{db: tx}
}

// Create creates a new savings account
func (r *SavingsAccountRepository) Create(ctx context.Context, account *models.SavingsAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// GetByID gets a savings account by ID
func (r *SavingsAccountRepository) GetByID(ctx context.Context, accountID uint) (*models.SavingsAccount, error) {
	var account models.SavingsAccount
	err := r.db.WithContext(ctx).
		Preload("SavingsType").
		First(&account, accountID).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByIDForUpdate gets a savings account with a row lock. Must run inside
// a transaction; guards the balance read-modify-write against lost updates.
// SQLite locks the whole database per write transaction, so the row lock
// only applies on MySQL.
func (r *SavingsAccountRepository) GetByIDForUpdate(ctx context.Context, accountID uint) (*models.SavingsAccount, error) {
	tx := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "mysql" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var account models.SavingsAccount
	err := tx.First(&account, accountID).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByMemberAndType returns the member's account of one savings type
func (r *SavingsAccountRepository) GetByMemberAndType(ctx context.Context, memberID string, savingsTypeID uint) (*models.SavingsAccount, error) {
	var account models.SavingsAccount
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND savings_type_id = ?", memberID, savingsTypeID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListByMember lists the member's active savings accounts
func (r *SavingsAccountRepository) ListByMember(ctx context.Context, memberID string) ([]*models.SavingsAccount, error) {
	var accounts []*models.SavingsAccount
	err := r.db.WithContext(ctx).
		Preload("SavingsType").
		Where("member_id = ? AND is_active = ?", memberID, true).
		Order("account_id").
		Find(&accounts).Error
	return accounts, err
}

// Update updates a savings account
func (r *SavingsAccountRepository) Update(ctx context.Context, account *models.SavingsAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// TotalBalanceByType sums current balances grouped by savings type name
func (r *SavingsAccountRepository) TotalBalanceByType(ctx context.Context) (map[string]float64, error) {
	type row struct {
		TypeName string
		Total    float64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.SavingsAccount{}).
		Select("savings_types.type_name AS type_name, COALESCE(SUM(savings_accounts.current_balance), 0) AS total").
		Joins("JOIN savings_types ON savings_types.savings_type_id = savings_accounts.savings_type_id").
		Where("savings_accounts.is_active = ?", true).
		Group("savings_types.type_name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, r := range rows {
		totals[r.TypeName] = r.Total
	}
	return totals, nil
}
