package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"nfc-coop/internal/adapters/persistence/models"
	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/core/domain"
	"nfc-coop/internal/pkg/money"

	"gorm.io/gorm"
)

// SavingsService maintains per-account running balances and appends a
// ledger entry for every movement. Each mutating operation runs inside one
// database transaction: the balance update and the ledger append commit
// together or not at all.
type SavingsService struct {
	db          *gorm.DB
	accountRepo *repositories.SavingsAccountRepository
	typeRepo    *repositories.SavingsTypeRepository
	memberRepo  *repositories.MemberRepository
}

// NewSavingsService creates a new savings service
func NewSavingsService(
	db *gorm.DB,
	accountRepo *repositories.SavingsAccountRepository,
	typeRepo *repositories.SavingsTypeRepository,
	memberRepo *repositories.MemberRepository,
) *SavingsService {
	return &SavingsService{
		db:          db,
		accountRepo: accountRepo,
		typeRepo:    typeRepo,
		memberRepo:  memberRepo,
	}
}

// CreateAccount opens a zero-balance account of one savings type for a
// member. The account number is derived from the member ID and the first
// four letters of the type code.
func (s *SavingsService) CreateAccount(ctx context.Context, memberID string, savingsTypeID uint) (*models.SavingsAccount, error) {
	if _, err := s.memberRepo.GetByID(ctx, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	savingsType, err := s.typeRepo.GetByID(ctx, savingsTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSavingsTypeNotFound
		}
		return nil, err
	}

	if _, err := s.accountRepo.GetByMemberAndType(ctx, memberID, savingsTypeID); err == nil {
		return nil, domain.ErrAccountAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	prefix := savingsType.TypeCode
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}

	account := &models.SavingsAccount{
		MemberID:      memberID,
		SavingsTypeID: savingsTypeID,
		AccountNumber: fmt.Sprintf("%s-%s", memberID, strings.ToUpper(prefix)),
		IsActive:      true,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Deposit credits an account and appends one ledger entry
func (s *SavingsService) Deposit(ctx context.Context, accountID uint, amount float64, meta domain.PaymentMeta, actor string) (*models.SavingsAccount, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrInvalidInput)
	}

	var account *models.SavingsAccount
	err := s.db.Transaction(func(tx *gorm.DB) error {
		accounts := s.accountRepo.WithTx(tx)

		var err error
		account, err = accounts.GetByIDForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return err
		}

		member, err := s.memberRepo.WithTx(tx).GetByID(ctx, account.MemberID)
		if err != nil {
			return err
		}

		account.CurrentBalance = money.Add(account.CurrentBalance, amount)
		account.TotalDeposits = money.Add(account.TotalDeposits, amount)
		if err := accounts.Update(ctx, account); err != nil {
			return err
		}

		entry := newLedgerEntry(member, domain.TxTypeSavingsDeposit, domain.AccountTypeSavings,
			strconv.Itoa(int(account.AccountID)), amount, true, meta, actor)
		return repositories.NewTransactionRepository(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Withdraw debits an account and appends one ledger entry. A withdrawal
// exceeding the current balance is rejected before any mutation.
func (s *SavingsService) Withdraw(ctx context.Context, accountID uint, amount float64, meta domain.PaymentMeta, actor string) (*models.SavingsAccount, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", domain.ErrInvalidInput)
	}

	var account *models.SavingsAccount
	err := s.db.Transaction(func(tx *gorm.DB) error {
		accounts := s.accountRepo.WithTx(tx)

		var err error
		account, err = accounts.GetByIDForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAccountNotFound
			}
			return err
		}

		if account.CurrentBalance < amount {
			return domain.ErrInsufficientFunds
		}

		member, err := s.memberRepo.WithTx(tx).GetByID(ctx, account.MemberID)
		if err != nil {
			return err
		}

		account.CurrentBalance = money.Sub(account.CurrentBalance, amount)
		account.TotalWithdrawals = money.Add(account.TotalWithdrawals, amount)
		if err := accounts.Update(ctx, account); err != nil {
			return err
		}

		entry := newLedgerEntry(member, domain.TxTypeSavingsWithdrawal, domain.AccountTypeSavings,
			strconv.Itoa(int(account.AccountID)), amount, false, meta, actor)
		return repositories.NewTransactionRepository(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount returns one account by ID
func (s *SavingsService) GetAccount(ctx context.Context, accountID uint) (*models.SavingsAccount, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts returns a member's active accounts
func (s *SavingsService) ListAccounts(ctx context.Context, memberID string) ([]*models.SavingsAccount, error) {
	return s.accountRepo.ListByMember(ctx, memberID)
}

// ListTypes returns the savings type catalog
func (s *SavingsService) ListTypes(ctx context.Context) ([]*models.SavingsType, error) {
	return s.typeRepo.List(ctx)
}
