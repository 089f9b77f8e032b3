package services

import (
	"context"

	"nfc-coop/internal/adapters/persistence/models"
	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/core/domain"
	"nfc-coop/internal/pkg/money"
)

// ReportService produces the read-only query results consumed by the
// rendering layer. Formatting (PDF/Excel) happens outside this service;
// the contract here is stable, complete, correctly-signed amounts for a
// given date range.
type ReportService struct {
	memberService   *MemberService
	loanRepo        *repositories.LoanRepository
	transactionRepo *repositories.TransactionRepository
}

// NewReportService creates a new report service
func NewReportService(
	memberService *MemberService,
	loanRepo *repositories.LoanRepository,
	transactionRepo *repositories.TransactionRepository,
) *ReportService {
	return &ReportService{
		memberService:   memberService,
		loanRepo:        loanRepo,
		transactionRepo: transactionRepo,
	}
}

// MemberStatement is one member's ledger activity over a date range
type MemberStatement struct {
	Member       *models.Member        `json:"member"`
	StartDate    string                `json:"start_date,omitempty"`
	EndDate      string                `json:"end_date,omitempty"`
	Transactions []*models.Transaction `json:"transactions"`
	TotalCredits float64               `json:"total_credits"`
	TotalDebits  float64               `json:"total_debits"`
	NetMovement  float64               `json:"net_movement"`
}

// MemberStatement builds a statement for one member
func (s *ReportService) MemberStatement(ctx context.Context, memberID, startDate, endDate string) (*MemberStatement, error) {
	member, err := s.memberService.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	filter := repositories.TransactionFilter{
		MemberID:  memberID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	txs, err := s.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	credits, debits, err := s.transactionRepo.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &MemberStatement{
		Member:       member,
		StartDate:    startDate,
		EndDate:      endDate,
		Transactions: txs,
		TotalCredits: credits,
		TotalDebits:  debits,
		NetMovement:  money.Sub(credits, debits),
	}, nil
}

// Cashbook is the organisation-wide ledger over a date range
type Cashbook struct {
	StartDate    string                `json:"start_date,omitempty"`
	EndDate      string                `json:"end_date,omitempty"`
	Entries      []*models.Transaction `json:"entries"`
	TotalCredits float64               `json:"total_credits"`
	TotalDebits  float64               `json:"total_debits"`
	NetMovement  float64               `json:"net_movement"`
}

// Cashbook builds the cross-member cashbook for a date range
func (s *ReportService) Cashbook(ctx context.Context, startDate, endDate string) (*Cashbook, error) {
	filter := repositories.TransactionFilter{StartDate: startDate, EndDate: endDate}

	entries, err := s.transactionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	credits, debits, err := s.transactionRepo.Totals(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &Cashbook{
		StartDate:    startDate,
		EndDate:      endDate,
		Entries:      entries,
		TotalCredits: credits,
		TotalDebits:  debits,
		NetMovement:  money.Sub(credits, debits),
	}, nil
}

// LoanPortfolio summarises the loan book
type LoanPortfolio struct {
	ActiveLoans      int64          `json:"active_loans"`
	CompletedLoans   int64          `json:"completed_loans"`
	DefaultedLoans   int64          `json:"defaulted_loans"`
	TotalDisbursed   float64        `json:"total_disbursed"`
	TotalCollected   float64        `json:"total_collected"`
	TotalOutstanding float64        `json:"total_outstanding"`
	Loans            []*models.Loan `json:"loans"`
}

// LoanPortfolio builds the loan portfolio report, optionally filtered by
// status.
func (s *ReportService) LoanPortfolio(ctx context.Context, status string) (*LoanPortfolio, error) {
	report := &LoanPortfolio{}

	var err error
	report.TotalDisbursed, report.TotalCollected, report.TotalOutstanding, err = s.loanRepo.PortfolioTotals(ctx)
	if err != nil {
		return nil, err
	}
	if report.ActiveLoans, err = s.loanRepo.CountByStatus(ctx, domain.LoanStatusActive); err != nil {
		return nil, err
	}
	if report.CompletedLoans, err = s.loanRepo.CountByStatus(ctx, domain.LoanStatusCompleted); err != nil {
		return nil, err
	}
	if report.DefaultedLoans, err = s.loanRepo.CountByStatus(ctx, domain.LoanStatusDefaulted); err != nil {
		return nil, err
	}

	report.Loans, _, err = s.loanRepo.List(ctx, status, 0, -1)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// MemberSummaries exposes the vw_member_summary view rows
func (s *ReportService) MemberSummaries(ctx context.Context, memberID string) ([]*models.MemberSummary, error) {
	return s.memberService.Summaries(ctx, memberID)
}
