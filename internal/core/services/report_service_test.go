package services

import (
	"context"
	"errors"
	"testing"

	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/core/domain"

	"gorm.io/gorm"
)

func newTestReportService(db *gorm.DB) *ReportService {
	return NewReportService(
		newTestMemberService(db),
		repositories.NewLoanRepository(db),
		repositories.NewTransactionRepository(db),
	)
}

func newTestDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(
		repositories.NewMemberRepository(db),
		repositories.NewSavingsAccountRepository(db),
		repositories.NewLoanRepository(db),
		repositories.NewTransactionRepository(db),
	)
}

func TestMemberStatementTotals(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db)
	other := createTestMember(t, db)
	savings := newTestSavingsService(db)
	ctx := context.Background()

	account, _ := savings.CreateAccount(ctx, member.MemberID, 1)
	otherAccount, _ := savings.CreateAccount(ctx, other.MemberID, 1)

	savings.Deposit(ctx, account.AccountID, 1000, domain.PaymentMeta{TransactionDate: "2024-05-01"}, "tester")
	savings.Deposit(ctx, account.AccountID, 500, domain.PaymentMeta{TransactionDate: "2024-05-15"}, "tester")
	savings.Withdraw(ctx, account.AccountID, 300, domain.PaymentMeta{TransactionDate: "2024-05-20"}, "tester")
	// someone else's movement must not leak in
	savings.Deposit(ctx, otherAccount.AccountID, 9999, domain.PaymentMeta{TransactionDate: "2024-05-10"}, "tester")

	statement, err := newTestReportService(db).MemberStatement(ctx, member.MemberID, "2024-05-01", "2024-05-31")
	if err != nil {
		t.Fatalf("statement: %v", err)
	}

	if len(statement.Transactions) != 3 {
		t.Errorf("statement entries = %d, want 3", len(statement.Transactions))
	}
	if statement.TotalCredits != 1500 {
		t.Errorf("credits = %v, want 1500", statement.TotalCredits)
	}
	if statement.TotalDebits != 300 {
		t.Errorf("debits = %v, want 300", statement.TotalDebits)
	}
	if statement.NetMovement != 1200 {
		t.Errorf("net = %v, want 1200", statement.NetMovement)
	}
}

func TestMemberStatementUnknownMember(t *testing.T) {
	db := testDB(t)

	_, err := newTestReportService(db).MemberStatement(context.Background(), "NFC9999", "", "")
	if !errors.Is(err, domain.ErrMemberNotFound) {
		t.Errorf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestCashbookDateWindow(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db)
	savings := newTestSavingsService(db)
	ctx := context.Background()

	account, _ := savings.CreateAccount(ctx, member.MemberID, 1)
	savings.Deposit(ctx, account.AccountID, 100, domain.PaymentMeta{TransactionDate: "2024-04-30"}, "tester")
	savings.Deposit(ctx, account.AccountID, 200, domain.PaymentMeta{TransactionDate: "2024-05-10"}, "tester")
	savings.Deposit(ctx, account.AccountID, 400, domain.PaymentMeta{TransactionDate: "2024-06-01"}, "tester")

	cashbook, err := newTestReportService(db).Cashbook(ctx, "2024-05-01", "2024-05-31")
	if err != nil {
		t.Fatalf("cashbook: %v", err)
	}
	if len(cashbook.Entries) != 1 {
		t.Errorf("entries = %d, want 1", len(cashbook.Entries))
	}
	if cashbook.TotalCredits != 200 {
		t.Errorf("credits = %v, want 200", cashbook.TotalCredits)
	}
}

func TestLoanPortfolioReport(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db)
	loans := newTestLoanService(db)
	ctx := context.Background()

	active, _ := loans.Disburse(ctx, &DisburseInput{
		MemberID: member.MemberID, LoanTypeID: 1,
		PrincipalAmount: 2000, DurationMonths: 4, StartDate: "2024-03-01",
	}, "tester")
	settled, _ := loans.Disburse(ctx, &DisburseInput{
		MemberID: member.MemberID, LoanTypeID: 1,
		PrincipalAmount: 1000, DurationMonths: 2, StartDate: "2024-03-01",
	}, "tester")
	if _, err := loans.Repay(ctx, settled.LoanID, 1100, domain.PaymentMeta{}, "tester"); err != nil {
		t.Fatalf("payoff: %v", err)
	}

	report, err := newTestReportService(db).LoanPortfolio(ctx, "")
	if err != nil {
		t.Fatalf("portfolio: %v", err)
	}

	if report.ActiveLoans != 1 || report.CompletedLoans != 1 {
		t.Errorf("active = %d completed = %d, want 1 and 1", report.ActiveLoans, report.CompletedLoans)
	}
	if report.TotalDisbursed != 3000 {
		t.Errorf("disbursed = %v, want 3000", report.TotalDisbursed)
	}
	if report.TotalCollected != 1100 {
		t.Errorf("collected = %v, want 1100", report.TotalCollected)
	}
	if report.TotalOutstanding != active.BalanceOutstanding {
		t.Errorf("outstanding = %v, want %v", report.TotalOutstanding, active.BalanceOutstanding)
	}
	if len(report.Loans) != 2 {
		t.Errorf("loans = %d, want 2", len(report.Loans))
	}

	onlyActive, err := newTestReportService(db).LoanPortfolio(ctx, domain.LoanStatusActive)
	if err != nil {
		t.Fatalf("filtered portfolio: %v", err)
	}
	if len(onlyActive.Loans) != 1 {
		t.Errorf("filtered loans = %d, want 1", len(onlyActive.Loans))
	}
}

func TestDashboardStatistics(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db)
	second := createTestMember(t, db)
	savings := newTestSavingsService(db)
	members := newTestMemberService(db)
	ctx := context.Background()

	if _, err := members.ChangeStatus(ctx, second.MemberID, domain.MemberInactive, "", "tester"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	account, _ := savings.CreateAccount(ctx, member.MemberID, 1)
	if _, err := savings.Deposit(ctx, account.AccountID, 2500, domain.PaymentMeta{}, "tester"); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	data, err := newTestDashboardService(db).GetStatistics(ctx)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}

	if data.TotalMembers != 2 || data.ActiveMembers != 1 || data.InactiveMembers != 1 {
		t.Errorf("member counts = %d/%d/%d, want 2/1/1",
			data.TotalMembers, data.ActiveMembers, data.InactiveMembers)
	}
	if data.TotalSavings != 2500 {
		t.Errorf("total savings = %v, want 2500", data.TotalSavings)
	}
	if data.SavingsByType["Premium Savings"] != 2500 {
		t.Errorf("savings by type = %v", data.SavingsByType)
	}
	// today's deposit falls inside the trailing 30 days
	if data.Transactions30Days != 1 || data.Deposits30Days != 2500 {
		t.Errorf("30-day activity = %d/%v, want 1/2500",
			data.Transactions30Days, data.Deposits30Days)
	}
}

func TestMemberSummariesView(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db)
	savings := newTestSavingsService(db)
	loans := newTestLoanService(db)
	ctx := context.Background()

	account, _ := savings.CreateAccount(ctx, member.MemberID, 1)
	savings.Deposit(ctx, account.AccountID, 800, domain.PaymentMeta{}, "tester")
	loans.Disburse(ctx, &DisburseInput{
		MemberID: member.MemberID, LoanTypeID: 1,
		PrincipalAmount: 5000, DurationMonths: 10, StartDate: "2024-03-01",
	}, "tester")

	summaries, err := newTestReportService(db).MemberSummaries(ctx, member.MemberID)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}

	s := summaries[0]
	if s.TotalSavings != 800 {
		t.Errorf("total savings = %v, want 800", s.TotalSavings)
	}
	if s.PremiumSavings != 800 {
		t.Errorf("premium savings = %v, want 800", s.PremiumSavings)
	}
	if s.TotalLoansOutstanding != 5500 {
		t.Errorf("loans outstanding = %v, want 5500", s.TotalLoansOutstanding)
	}
	if s.NetBalance != -4700 {
		t.Errorf("net balance = %v, want -4700", s.NetBalance)
	}
	if s.FullName != member.FullName() {
		t.Errorf("full name = %q, want %q", s.FullName, member.FullName())
	}
}

func TestMemberSummariesIncludeDefaultedLoans(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db)
	loans := newTestLoanService(db)
	ctx := context.Background()

	loan, err := loans.Disburse(ctx, &DisburseInput{
		MemberID: member.MemberID, LoanTypeID: 1,
		PrincipalAmount: 1000, DurationMonths: 6, StartDate: "2020-01-01",
	}, "tester")
	if err != nil {
		t.Fatalf("disburse: %v", err)
	}
	if _, err := loans.MarkOverdue(ctx); err != nil {
		t.Fatalf("mark overdue: %v", err)
	}
	swept, err := loans.GetByID(ctx, loan.LoanID)
	if err != nil {
		t.Fatalf("reload loan: %v", err)
	}
	if swept.Status != domain.LoanStatusDefaulted {
		t.Fatalf("loan status = %q, want %q", swept.Status, domain.LoanStatusDefaulted)
	}

	// the debt is still owed and must stay visible in the summary view
	summaries, err := newTestReportService(db).MemberSummaries(ctx, member.MemberID)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}
	if summaries[0].TotalLoansOutstanding != loan.TotalAmount {
		t.Errorf("loans outstanding = %v, want %v", summaries[0].TotalLoansOutstanding, loan.TotalAmount)
	}
	if summaries[0].NetBalance != -loan.TotalAmount {
		t.Errorf("net balance = %v, want %v", summaries[0].NetBalance, -loan.TotalAmount)
	}
}

func TestMemberSummaryFullNameSpacing(t *testing.T) {
	db := testDB(t)
	members := newTestMemberService(db)
	reports := newTestReportService(db)
	ctx := context.Background()

	plain, err := members.Create(ctx, &MemberInput{
		StationID: "01", FirstName: "Amina", LastName: "Bello", DateJoined: "2024-01-15",
	}, "tester")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	withMiddle, err := members.Create(ctx, &MemberInput{
		StationID: "01", FirstName: "Chidi", MiddleName: "Obi", LastName: "Eze", DateJoined: "2024-01-15",
	}, "tester")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	for _, tc := range []struct {
		memberID string
		want     string
	}{
		{plain.MemberID, "Amina Bello"},
		{withMiddle.MemberID, "Chidi Obi Eze"},
	} {
		rows, err := reports.MemberSummaries(ctx, tc.memberID)
		if err != nil {
			t.Fatalf("summaries %s: %v", tc.memberID, err)
		}
		if len(rows) != 1 {
			t.Fatalf("summaries %s = %d rows, want 1", tc.memberID, len(rows))
		}
		if rows[0].FullName != tc.want {
			t.Errorf("full name = %q, want %q", rows[0].FullName, tc.want)
		}
	}
}
