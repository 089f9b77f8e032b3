package services

import (
	"context"
	"testing"

	"nfc-coop/internal/adapters/persistence/models"
	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/core/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an in-memory database with the full schema and the baseline
// reference data: one station, the ID counters and the product catalogs.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap database: %v", err)
	}
	// one connection so every session sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := models.CreateViews(db); err != nil {
		t.Fatalf("create views: %v", err)
	}

	seedTestData(t, db)
	return db
}

func seedTestData(t *testing.T, db *gorm.DB) {
	t.Helper()

	settings := []models.SystemSetting{
		{SettingKey: domain.SettingNextMemberNumber, SettingValue: "1"},
		{SettingKey: domain.SettingNextStationNumber, SettingValue: "2"},
		{SettingKey: domain.SettingNextLoanNumber, SettingValue: "1"},
		{SettingKey: domain.SettingOverpaymentPolicy, SettingValue: string(domain.OverpaymentWriteOff)},
		{SettingKey: domain.SettingLoanDefaultGraceDays, SettingValue: "90"},
	}
	for i := range settings {
		if err := db.Create(&settings[i]).Error; err != nil {
			t.Fatalf("seed setting %s: %v", settings[i].SettingKey, err)
		}
	}

	station := models.Station{StationID: "01", StationName: "NFC - Abuja", City: "Abuja", Enabled: true}
	if err := db.Create(&station).Error; err != nil {
		t.Fatalf("seed station: %v", err)
	}

	savingsTypes := []models.SavingsType{
		{TypeCode: "PREMIUM", TypeName: "Premium Savings", InterestRate: 2.5, IsActive: true},
		{TypeCode: "TARGET", TypeName: "Target Savings", InterestRate: 3.0, IsActive: true},
	}
	for i := range savingsTypes {
		if err := db.Create(&savingsTypes[i]).Error; err != nil {
			t.Fatalf("seed savings type: %v", err)
		}
	}

	loanTypes := []models.LoanType{
		{TypeCode: "NORMAL", TypeName: "Normal Loan", InterestRate: 10, MaxDurationMonths: 24, IsActive: true},
		{TypeCode: "EMERGENCY", TypeName: "Emergency Loan", InterestRate: 5, MaxDurationMonths: 12, IsActive: true},
	}
	for i := range loanTypes {
		if err := db.Create(&loanTypes[i]).Error; err != nil {
			t.Fatalf("seed loan type: %v", err)
		}
	}
}

func newTestMemberService(db *gorm.DB) *MemberService {
	return NewMemberService(
		db,
		repositories.NewMemberRepository(db),
		repositories.NewStationRepository(db),
		repositories.NewSettingRepository(db),
	)
}

func newTestStationService(db *gorm.DB) *StationService {
	return NewStationService(
		db,
		repositories.NewStationRepository(db),
		repositories.NewMemberRepository(db),
		repositories.NewSettingRepository(db),
	)
}

func newTestSavingsService(db *gorm.DB) *SavingsService {
	return NewSavingsService(
		db,
		repositories.NewSavingsAccountRepository(db),
		repositories.NewSavingsTypeRepository(db),
		repositories.NewMemberRepository(db),
	)
}

func newTestLoanService(db *gorm.DB) *LoanService {
	return NewLoanService(
		db,
		repositories.NewLoanRepository(db),
		repositories.NewLoanTypeRepository(db),
		repositories.NewLoanRepaymentRepository(db),
		repositories.NewMemberRepository(db),
		repositories.NewSettingRepository(db),
	)
}

func newTestTransactionService(db *gorm.DB) *TransactionService {
	return NewTransactionService(repositories.NewTransactionRepository(db))
}

func transactionFilterForMember(memberID string) repositories.TransactionFilter {
	return repositories.TransactionFilter{MemberID: memberID}
}

func newTestSettingService(db *gorm.DB) *SettingService {
	return NewSettingService(
		repositories.NewSettingRepository(db),
		repositories.NewMemberRepository(db),
		repositories.NewStationRepository(db),
		repositories.NewLoanRepository(db),
	)
}

// createTestMember registers a member through the service so the ID comes
// from the counter like production inserts do.
func createTestMember(t *testing.T, db *gorm.DB) *models.Member {
	t.Helper()

	member, err := newTestMemberService(db).Create(context.Background(), &MemberInput{
		StationID:  "01",
		FirstName:  "Amina",
		LastName:   "Bello",
		Gender:     "Female",
		DateJoined: "2024-01-15",
	}, "tester")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	return member
}

func countTransactions(t *testing.T, db *gorm.DB, txType string) int64 {
	t.Helper()

	var n int64
	if err := db.Model(&models.Transaction{}).Where("transaction_type = ?", txType).Count(&n).Error; err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	return n
}
