package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"nfc-coop/internal/adapters/persistence/models"
	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/core/domain"
	"nfc-coop/internal/pkg/money"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// LoanService computes flat-rate loan terms at disbursement and applies
// repayments against the outstanding balance. Every mutating operation
// commits the loan update, the repayment audit row and the ledger entry in
// one transaction.
type LoanService struct {
	db            *gorm.DB
	loanRepo      *repositories.LoanRepository
	loanTypeRepo  *repositories.LoanTypeRepository
	repaymentRepo *repositories.LoanRepaymentRepository
	memberRepo    *repositories.MemberRepository
	settingRepo   *repositories.SettingRepository
}

// NewLoanService creates a new loan service
func NewLoanService(
	db *gorm.DB,
	loanRepo *repositories.LoanRepository,
	loanTypeRepo *repositories.LoanTypeRepository,
	repaymentRepo *repositories.LoanRepaymentRepository,
	memberRepo *repositories.MemberRepository,
	settingRepo *repositories.SettingRepository,
) *LoanService {
	return &LoanService{
		db:            db,
		loanRepo:      loanRepo,
		loanTypeRepo:  loanTypeRepo,
		repaymentRepo: repaymentRepo,
		memberRepo:    memberRepo,
		settingRepo:   settingRepo,
	}
}

// DisburseInput represents loan disbursement input
type DisburseInput struct {
	MemberID         string  `json:"member_id"`
	LoanTypeID       uint    `json:"loan_type_id"`
	PrincipalAmount  float64 `json:"principal_amount"`
	DurationMonths   int     `json:"duration_months"`
	DisbursementDate string  `json:"disbursement_date,omitempty"`
	StartDate        string  `json:"start_date"`
	ChequeNumber     string  `json:"cheque_number,omitempty"`
	BankName         string  `json:"bank_name,omitempty"`
	PaymentMethod    string  `json:"payment_method,omitempty"`
}

// Disburse creates a loan with terms fixed at disbursement time and
// appends the disbursement ledger entry. Durations beyond the loan type
// maximum are rejected, never clamped.
func (s *LoanService) Disburse(ctx context.Context, input *DisburseInput, actor string) (*models.Loan, error) {
	if input.PrincipalAmount <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive", domain.ErrInvalidInput)
	}
	if input.DurationMonths <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}

	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}

	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	loanType, err := s.loanTypeRepo.GetByID(ctx, input.LoanTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanTypeNotFound
		}
		return nil, err
	}
	if input.DurationMonths > loanType.MaxDurationMonths {
		return nil, fmt.Errorf("%w: %d months (max %d)", domain.ErrDurationExceedsMax,
			input.DurationMonths, loanType.MaxDurationMonths)
	}

	interestAmount := money.FlatInterest(input.PrincipalAmount, loanType.InterestRate)
	totalAmount := money.Add(input.PrincipalAmount, interestAmount)
	installment := money.Installment(totalAmount, input.DurationMonths)

	disbursementDate := input.DisbursementDate
	if disbursementDate == "" {
		disbursementDate = time.Now().Format(dateLayout)
	}

	var loan *models.Loan
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Counter-backed sequence keeps loan numbers collision-free even
		// for several disbursements to the same member on the same day.
		seq, err := s.settingRepo.WithTx(tx).NextNumber(ctx, domain.SettingNextLoanNumber)
		if err != nil {
			return err
		}

		loan = &models.Loan{
			LoanNumber:         fmt.Sprintf("L-%s-%06d", member.MemberID, seq),
			MemberID:           member.MemberID,
			StationID:          member.StationID,
			LoanTypeID:         loanType.LoanTypeID,
			PrincipalAmount:    input.PrincipalAmount,
			InterestRate:       loanType.InterestRate,
			InterestAmount:     interestAmount,
			TotalAmount:        totalAmount,
			MonthlyInstallment: installment,
			DurationMonths:     input.DurationMonths,
			AmountPaid:         0,
			BalanceOutstanding: totalAmount,
			DisbursementDate:   disbursementDate,
			StartDate:          input.StartDate,
			EndDate:            startDate.AddDate(0, input.DurationMonths, 0).Format(dateLayout),
			ChequeNumber:       input.ChequeNumber,
			BankName:           input.BankName,
			Status:             domain.LoanStatusActive,
			CreatedBy:          actor,
		}
		if err := s.loanRepo.WithTx(tx).Create(ctx, loan); err != nil {
			return err
		}

		meta := domain.PaymentMeta{
			TransactionDate: disbursementDate,
			Description:     "Loan Disbursement - " + loan.LoanNumber,
			PaymentMethod:   input.PaymentMethod,
			ChequeNumber:    input.ChequeNumber,
		}
		entry := newLedgerEntry(member, domain.TxTypeLoanDisbursement, domain.AccountTypeLoan,
			strconv.Itoa(int(loan.LoanID)), input.PrincipalAmount, true, meta, actor)
		return repositories.NewTransactionRepository(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// Repay applies one payment against a loan: the loan row, the repayment
// audit row and the ledger entry commit together. What happens to amounts
// beyond the outstanding balance is governed by the configured overpayment
// policy: write_off clamps the balance at zero and discards the excess,
// reject refuses the payment.
func (s *LoanService) Repay(ctx context.Context, loanID uint, amount float64, meta domain.PaymentMeta, actor string) (*models.Loan, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidInput)
	}

	policy := s.overpaymentPolicy(ctx)

	var loan *models.Loan
	err := s.db.Transaction(func(tx *gorm.DB) error {
		loans := s.loanRepo.WithTx(tx)

		var err error
		loan, err = loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}

		// Defaulted loans still take money; only settled loans refuse it.
		if loan.Status == domain.LoanStatusCompleted {
			return fmt.Errorf("%w: loan is %s", domain.ErrLoanNotActive, loan.Status)
		}

		balanceBefore := loan.BalanceOutstanding
		if policy == domain.OverpaymentReject && amount > balanceBefore {
			return fmt.Errorf("%w: outstanding balance is %.2f", domain.ErrOverpaymentRejected, balanceBefore)
		}

		balanceAfter := money.Sub(balanceBefore, amount)
		if balanceAfter < 0 {
			balanceAfter = 0
		}

		member, err := s.memberRepo.WithTx(tx).GetByID(ctx, loan.MemberID)
		if err != nil {
			return err
		}

		paymentDate := meta.TransactionDate
		if paymentDate == "" {
			paymentDate = time.Now().Format(dateLayout)
		}

		repayment := &models.LoanRepayment{
			LoanID:         loan.LoanID,
			MemberID:       loan.MemberID,
			PaymentDate:    paymentDate,
			ExpectedAmount: loan.MonthlyInstallment,
			ActualAmount:   amount,
			BalanceBefore:  balanceBefore,
			BalanceAfter:   balanceAfter,
			PaymentMethod:  meta.PaymentMethod,
			ChequeNumber:   meta.ChequeNumber,
			ReceiptNumber:  meta.ReceiptNumber,
			Notes:          meta.Notes,
			CreatedBy:      actor,
		}
		if err := s.repaymentRepo.WithTx(tx).Create(ctx, repayment); err != nil {
			return err
		}

		loan.AmountPaid = money.Add(loan.AmountPaid, amount)
		loan.BalanceOutstanding = balanceAfter
		if balanceAfter <= 0 {
			loan.Status = domain.LoanStatusCompleted
		}
		if err := loans.Update(ctx, loan); err != nil {
			return err
		}

		entry := newLedgerEntry(member, domain.TxTypeLoanRepayment, domain.AccountTypeLoan,
			strconv.Itoa(int(loan.LoanID)), amount, false, meta, actor)
		return repositories.NewTransactionRepository(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// GetByID returns one loan
func (s *LoanService) GetByID(ctx context.Context, loanID uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// ListByMember returns a member's loans, newest first
func (s *LoanService) ListByMember(ctx context.Context, memberID string, activeOnly bool) ([]*models.Loan, error) {
	return s.loanRepo.ListByMember(ctx, memberID, activeOnly)
}

// List returns a page of the loan portfolio, optionally by status
func (s *LoanService) List(ctx context.Context, status string, offset, limit int) ([]*models.Loan, int64, error) {
	return s.loanRepo.List(ctx, status, offset, limit)
}

// ListRepayments returns the repayment history of a loan
func (s *LoanService) ListRepayments(ctx context.Context, loanID uint) ([]*models.LoanRepayment, error) {
	if _, err := s.GetByID(ctx, loanID); err != nil {
		return nil, err
	}
	return s.repaymentRepo.ListByLoan(ctx, loanID)
}

// ListTypes returns the loan type catalog
func (s *LoanService) ListTypes(ctx context.Context) ([]*models.LoanType, error) {
	return s.loanTypeRepo.List(ctx)
}

// MarkOverdue moves Active loans to Defaulted once they are past their end
// date by more than the configured grace period. Run by the daily sweep;
// repayments never trigger this transition.
func (s *LoanService) MarkOverdue(ctx context.Context) (int, error) {
	graceDays := s.defaultGraceDays(ctx)
	cutoff := time.Now().AddDate(0, 0, -graceDays).Format(dateLayout)

	loans, err := s.loanRepo.ListOverdue(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, loan := range loans {
		loan.Status = domain.LoanStatusDefaulted
		if err := s.loanRepo.Update(ctx, loan); err != nil {
			return marked, err
		}
		marked++
		log.Printf("⚠️ Loan %s marked Defaulted (end date %s, outstanding %.2f)",
			loan.LoanNumber, loan.EndDate, loan.BalanceOutstanding)
	}
	return marked, nil
}

func (s *LoanService) overpaymentPolicy(ctx context.Context) domain.OverpaymentPolicy {
	value, err := s.settingRepo.Get(ctx, domain.SettingOverpaymentPolicy)
	if err != nil || value == "" {
		return domain.OverpaymentWriteOff
	}
	if domain.OverpaymentPolicy(value) == domain.OverpaymentReject {
		return domain.OverpaymentReject
	}
	return domain.OverpaymentWriteOff
}

func (s *LoanService) defaultGraceDays(ctx context.Context) int {
	value, err := s.settingRepo.Get(ctx, domain.SettingLoanDefaultGraceDays)
	if err != nil {
		return 90
	}
	days, err := strconv.Atoi(value)
	if err != nil || days < 0 {
		return 90
	}
	return days
}
