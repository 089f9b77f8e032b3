package config

import (
	"log"

	"nfc-coop/internal/adapters/persistence/models"
	"nfc-coop/internal/core/domain"
	"nfc-coop/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder populates reference data and the settings the allocators depend
// on. Safe to run on every start; existing rows are left alone.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSettings(); err != nil {
		return err
	}
	if err := s.seedSavingsTypes(); err != nil {
		return err
	}
	if err := s.seedLoanTypes(); err != nil {
		return err
	}
	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func (s *Seeder) seedSettings() error {
	settings := []models.SystemSetting{
		{SettingKey: domain.SettingNextMemberNumber, SettingValue: "1", Description: "Counter for NFC#### member IDs"},
		{SettingKey: domain.SettingNextStationNumber, SettingValue: "1", Description: "Counter for two-digit station IDs"},
		{SettingKey: domain.SettingNextLoanNumber, SettingValue: "1", Description: "Counter for loan number sequence"},
		{SettingKey: domain.SettingOverpaymentPolicy, SettingValue: string(domain.OverpaymentWriteOff), Description: "Loan overpayment handling: write_off or reject"},
		{SettingKey: domain.SettingLoanDefaultGraceDays, SettingValue: "90", Description: "Days past end date before a loan is marked Defaulted"},
		{SettingKey: domain.SettingOrganizationName, SettingValue: "NFC Cooperative Society", Description: "Organization display name"},
	}

	for _, setting := range settings {
		var count int64
		s.db.Model(&models.SystemSetting{}).Where("setting_key = ?", setting.SettingKey).Count(&count)
		if count > 0 {
			continue
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedSavingsTypes() error {
	var count int64
	s.db.Model(&models.SavingsType{}).Count(&count)
	if count > 0 {
		return nil
	}

	types := []models.SavingsType{
		{TypeCode: "PREMIUM", TypeName: "Premium Savings", InterestRate: 2.5, IsActive: true},
		{TypeCode: "TARGET", TypeName: "Fixed/Target Deposits", InterestRate: 3.0, IsActive: true},
		{TypeCode: "SHARES", TypeName: "Shares Investment", InterestRate: 0, IsActive: true},
	}
	for _, st := range types {
		if err := s.db.Create(&st).Error; err != nil {
			return err
		}
	}
	log.Println("✅ Savings types seeded")
	return nil
}

func (s *Seeder) seedLoanTypes() error {
	var count int64
	s.db.Model(&models.LoanType{}).Count(&count)
	if count > 0 {
		return nil
	}

	types := []models.LoanType{
		{TypeCode: "NORMAL", TypeName: "Normal Loan", InterestRate: 10, MaxDurationMonths: 24, IsActive: true},
		{TypeCode: "EMERGENCY", TypeName: "Emergency Loan", InterestRate: 5, MaxDurationMonths: 12, IsActive: true},
		{TypeCode: "COMMODITY", TypeName: "Commodity Purchase", InterestRate: 12, MaxDurationMonths: 18, IsActive: true},
	}
	for _, lt := range types {
		if err := s.db.Create(&lt).Error; err != nil {
			return err
		}
	}
	log.Println("✅ Loan types seeded")
	return nil
}

// seedAdminUser seeds a default admin for development. In production the
// first admin should be created through a controlled process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     "admin",
		PasswordHash: hashed,
		FullName:     "System Administrator",
		Role:         string(domain.RoleAdmin),
		IsActive:     true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Username)
	return nil
}
