package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func migratedDB(t *testing.T) *gorm.DB {
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
	sqlDB.SetMaxOpenConns(1)

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// The member and station IDs are strings, and the account/loan associations
// are belongs-to. A mis-read association tag makes AutoMigrate type
// members.member_id as an integer keyed against the child tables, at which
// point no member row can be inserted at all.
func TestMigratedSchemaAcceptsStringIDs(t *testing.T) {
	db := migratedDB(t)

	station := &Station{StationID: "01", StationName: "NFC - Abuja", City: "Abuja"}
	if err := db.Create(station).Error; err != nil {
		t.Fatalf("create station: %v", err)
	}
	member := &Member{
		MemberID:   "NFC0001",
		StationID:  "01",
		FirstName:  "Amina",
		LastName:   "Bello",
		DateJoined: "2024-01-15",
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("create member: %v", err)
	}

	savingsType := &SavingsType{TypeCode: "PREMIUM", TypeName: "Premium Savings"}
	if err := db.Create(savingsType).Error; err != nil {
		t.Fatalf("create savings type: %v", err)
	}
	account := &SavingsAccount{
		MemberID:      "NFC0001",
		SavingsTypeID: savingsType.SavingsTypeID,
		AccountNumber: "NFC0001-PREM",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}

	loanType := &LoanType{TypeCode: "NORMAL", TypeName: "Normal Loan", InterestRate: 10, MaxDurationMonths: 24}
	if err := db.Create(loanType).Error; err != nil {
		t.Fatalf("create loan type: %v", err)
	}
	loan := &Loan{
		LoanNumber:         "L-NFC0001-000001",
		MemberID:           "NFC0001",
		StationID:          "01",
		LoanTypeID:         loanType.LoanTypeID,
		PrincipalAmount:    1000,
		InterestRate:       10,
		InterestAmount:     100,
		TotalAmount:        1100,
		MonthlyInstallment: 183.33,
		DurationMonths:     6,
		BalanceOutstanding: 1100,
	}
	if err := db.Create(loan).Error; err != nil {
		t.Fatalf("create loan: %v", err)
	}
}

func TestAssociationsPreloadFromChild(t *testing.T) {
	db := migratedDB(t)

	db.Create(&Station{StationID: "01", StationName: "NFC - Abuja", City: "Abuja"})
	db.Create(&Member{MemberID: "NFC0001", StationID: "01", FirstName: "Amina", LastName: "Bello"})
	savingsType := &SavingsType{TypeCode: "PREMIUM", TypeName: "Premium Savings"}
	db.Create(savingsType)
	db.Create(&SavingsAccount{
		MemberID:      "NFC0001",
		SavingsTypeID: savingsType.SavingsTypeID,
		AccountNumber: "NFC0001-PREM",
	})

	var account SavingsAccount
	err := db.Preload("Member.Station").Preload("SavingsType").
		Where("account_number = ?", "NFC0001-PREM").
		First(&account).Error
	if err != nil {
		t.Fatalf("load account: %v", err)
	}
	if account.Member == nil || account.Member.MemberID != "NFC0001" {
		t.Fatalf("member not preloaded: %+v", account.Member)
	}
	if account.Member.Station == nil || account.Member.Station.StationName != "NFC - Abuja" {
		t.Errorf("station not preloaded: %+v", account.Member.Station)
	}
	if account.SavingsType == nil || account.SavingsType.TypeCode != "PREMIUM" {
		t.Errorf("savings type not preloaded: %+v", account.SavingsType)
	}
}
