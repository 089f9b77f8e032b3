package services

import (
	"context"
	"time"

	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/core/domain"
)

// DashboardService aggregates the statistics the front end polls
// periodically. Reads only; never mutates.
type DashboardService struct {
	memberRepo      *repositories.MemberRepository
	accountRepo     *repositories.SavingsAccountRepository
	loanRepo        *repositories.LoanRepository
	transactionRepo *repositories.TransactionRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	memberRepo *repositories.MemberRepository,
	accountRepo *repositories.SavingsAccountRepository,
	loanRepo *repositories.LoanRepository,
	transactionRepo *repositories.TransactionRepository,
) *DashboardService {
	return &DashboardService{
		memberRepo:      memberRepo,
		accountRepo:     accountRepo,
		loanRepo:        loanRepo,
		transactionRepo: transactionRepo,
	}
}

// DashboardData represents the aggregate statistics
type DashboardData struct {
	// Member statistics
	TotalMembers    int64 `json:"total_members"`
	ActiveMembers   int64 `json:"active_members"`
	InactiveMembers int64 `json:"inactive_members"`
	DeceasedMembers int64 `json:"deceased_members"`

	// Savings statistics
	TotalSavings  float64            `json:"total_savings"`
	SavingsByType map[string]float64 `json:"savings_by_type"`

	// Loan statistics
	ActiveLoans      int64   `json:"active_loans"`
	CompletedLoans   int64   `json:"completed_loans"`
	DefaultedLoans   int64   `json:"defaulted_loans"`
	LoansDisbursed   float64 `json:"loans_disbursed"`
	LoansCollected   float64 `json:"loans_collected"`
	LoansOutstanding float64 `json:"loans_outstanding"`

	// Activity over the trailing 30 days
	Transactions30Days int64   `json:"transactions_30days"`
	Deposits30Days     float64 `json:"deposits_30days"`
	Withdrawals30Days  float64 `json:"withdrawals_30days"`
}

// GetStatistics collects the dashboard aggregates
func (s *DashboardService) GetStatistics(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}

	members, _, err := s.memberRepo.List(ctx, false, 0, -1)
	if err != nil {
		return nil, err
	}
	data.TotalMembers = int64(len(members))
	for _, m := range members {
		switch {
		case m.IsDeceased:
			data.DeceasedMembers++
		case m.IsActive:
			data.ActiveMembers++
		default:
			data.InactiveMembers++
		}
	}

	byType, err := s.accountRepo.TotalBalanceByType(ctx)
	if err != nil {
		return nil, err
	}
	data.SavingsByType = byType
	for _, total := range byType {
		data.TotalSavings += total
	}

	data.LoansDisbursed, data.LoansCollected, data.LoansOutstanding, err = s.loanRepo.PortfolioTotals(ctx)
	if err != nil {
		return nil, err
	}
	if data.ActiveLoans, err = s.loanRepo.CountByStatus(ctx, domain.LoanStatusActive); err != nil {
		return nil, err
	}
	if data.CompletedLoans, err = s.loanRepo.CountByStatus(ctx, domain.LoanStatusCompleted); err != nil {
		return nil, err
	}
	if data.DefaultedLoans, err = s.loanRepo.CountByStatus(ctx, domain.LoanStatusDefaulted); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -30).Format(dateLayout)
	filter := repositories.TransactionFilter{StartDate: since}
	if data.Transactions30Days, err = s.transactionRepo.Count(ctx, filter); err != nil {
		return nil, err
	}
	if data.Deposits30Days, data.Withdrawals30Days, err = s.transactionRepo.Totals(ctx, filter); err != nil {
		return nil, err
	}

	return data, nil
}
