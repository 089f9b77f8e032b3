package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth Tables
// ============================================================

// User represents users table (system operators, not members)
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	FullName     string         `gorm:"size:100" json:"full_name"`
	Role         string         `gorm:"size:20;default:'STAFF'" json:"role"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	LastLogin    *time.Time     `json:"last_login"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Registry Tables
// ============================================================

// Station represents stations table. IDs are sequential two-digit strings.
type Station struct {
	StationID   string    `gorm:"primaryKey;size:2" json:"station_id"`
	StationName string    `gorm:"size:100;not null" json:"station_name"`
	Address     string    `gorm:"size:200" json:"address"`
	City        string    `gorm:"size:100;not null" json:"city"`
	Enabled     bool      `gorm:"default:true" json:"enabled"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Station) TableName() string {
	return "stations"
}

// Member represents members table. Member IDs follow the NFC#### format and
// rows are never physically deleted; status flags carry the lifecycle.
type Member struct {
	MemberID           string     `gorm:"primaryKey;size:10" json:"member_id"`
	StationID          string     `gorm:"size:2;not null;index" json:"station_id"`
	RegistrationNumber string     `gorm:"size:20" json:"registration_number"`
	FirstName          string     `gorm:"size:50;not null" json:"first_name"`
	MiddleName         string     `gorm:"size:50" json:"middle_name"`
	LastName           string     `gorm:"size:50;not null" json:"last_name"`
	Gender             string     `gorm:"size:10" json:"gender"`
	DateOfBirth        string     `gorm:"size:10" json:"date_of_birth"`
	DateJoined         string     `gorm:"size:10" json:"date_joined"`
	Address            string     `gorm:"size:200" json:"address"`
	PhoneNumber        string     `gorm:"size:20" json:"phone_number"`
	Email              string     `gorm:"size:100" json:"email"`
	EmployeeID         string     `gorm:"size:20" json:"employee_id"`
	GradeLevel         string     `gorm:"size:20" json:"grade_level"`
	Nok1Name           string     `gorm:"size:100" json:"nok1_name"`
	Nok1Relationship   string     `gorm:"size:50" json:"nok1_relationship"`
	Nok1Address        string     `gorm:"size:200" json:"nok1_address"`
	Nok1Phone          string     `gorm:"size:20" json:"nok1_phone"`
	Nok2Name           string     `gorm:"size:100" json:"nok2_name"`
	Nok2Relationship   string     `gorm:"size:50" json:"nok2_relationship"`
	Nok2Address        string     `gorm:"size:200" json:"nok2_address"`
	Nok2Phone          string     `gorm:"size:20" json:"nok2_phone"`
	IsActive           bool       `gorm:"default:true" json:"is_active"`
	IsDeceased         bool       `gorm:"default:false" json:"is_deceased"`
	DeceasedDate       *string    `gorm:"size:10" json:"deceased_date"`
	CreatedBy          string     `gorm:"size:50" json:"created_by"`
	ModifiedBy         string     `gorm:"size:50" json:"modified_by"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Station *Station `gorm:"foreignKey:StationID;references:StationID" json:"station,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

// FullName joins the name parts, skipping an absent middle name.
func (m *Member) FullName() string {
	if m.MiddleName == "" {
		return m.FirstName + " " + m.LastName
	}
	return m.FirstName + " " + m.MiddleName + " " + m.LastName
}

// ============================================================
// Savings Tables
// ============================================================

// SavingsType represents savings_types table (reference data)
type SavingsType struct {
	SavingsTypeID uint      `gorm:"primaryKey" json:"savings_type_id"`
	TypeCode      string    `gorm:"size:20;uniqueIndex;not null" json:"type_code"`
	TypeName      string    `gorm:"size:100;not null" json:"type_name"`
	Description   string    `gorm:"type:text" json:"description"`
	InterestRate  float64   `gorm:"type:decimal(5,2);default:0" json:"interest_rate"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SavingsType) TableName() string {
	return "savings_types"
}

// SavingsAccount represents savings_accounts table.
// Invariant: CurrentBalance = TotalDeposits - TotalWithdrawals + TotalInterestEarned.
type SavingsAccount struct {
	AccountID           uint      `gorm:"primaryKey" json:"account_id"`
	MemberID            string    `gorm:"size:10;not null;index" json:"member_id"`
	SavingsTypeID       uint      `gorm:"not null;index" json:"savings_type_id"`
	AccountNumber       string    `gorm:"size:30;uniqueIndex;not null" json:"account_number"`
	CurrentBalance      float64   `gorm:"type:decimal(15,2);default:0" json:"current_balance"`
	TotalDeposits       float64   `gorm:"type:decimal(15,2);default:0" json:"total_deposits"`
	TotalWithdrawals    float64   `gorm:"type:decimal(15,2);default:0" json:"total_withdrawals"`
	TotalInterestEarned float64   `gorm:"type:decimal(15,2);default:0" json:"total_interest_earned"`
	IsActive            bool      `gorm:"default:true" json:"is_active"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Member      *Member      `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
	SavingsType *SavingsType `gorm:"foreignKey:SavingsTypeID;references:SavingsTypeID" json:"savings_type,omitempty"`
}

func (SavingsAccount) TableName() string {
	return "savings_accounts"
}

// ============================================================
// Loan Tables
// ============================================================

// LoanType represents loan_types table (reference data)
type LoanType struct {
	LoanTypeID        uint      `gorm:"primaryKey" json:"loan_type_id"`
	TypeCode          string    `gorm:"size:20;uniqueIndex;not null" json:"type_code"`
	TypeName          string    `gorm:"size:100;not null" json:"type_name"`
	Description       string    `gorm:"type:text" json:"description"`
	InterestRate      float64   `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	MaxDurationMonths int       `gorm:"not null" json:"max_duration_months"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (LoanType) TableName() string {
	return "loan_types"
}

// Loan represents loans table. The numeric terms are fixed at disbursement;
// AmountPaid, BalanceOutstanding and Status are the only mutable fields.
// Invariant: AmountPaid + BalanceOutstanding = TotalAmount.
type Loan struct {
	LoanID             uint      `gorm:"primaryKey" json:"loan_id"`
	LoanNumber         string    `gorm:"size:40;uniqueIndex;not null" json:"loan_number"`
	MemberID           string    `gorm:"size:10;not null;index" json:"member_id"`
	StationID          string    `gorm:"size:2;not null" json:"station_id"`
	LoanTypeID         uint      `gorm:"not null" json:"loan_type_id"`
	PrincipalAmount    float64   `gorm:"type:decimal(15,2);not null" json:"principal_amount"`
	InterestRate       float64   `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	InterestAmount     float64   `gorm:"type:decimal(15,2);not null" json:"interest_amount"`
	TotalAmount        float64   `gorm:"type:decimal(15,2);not null" json:"total_amount"`
	MonthlyInstallment float64   `gorm:"type:decimal(15,2);not null" json:"monthly_installment"`
	DurationMonths     int       `gorm:"not null" json:"duration_months"`
	AmountPaid         float64   `gorm:"type:decimal(15,2);default:0" json:"amount_paid"`
	BalanceOutstanding float64   `gorm:"type:decimal(15,2);not null" json:"balance_outstanding"`
	DisbursementDate   string    `gorm:"size:10" json:"disbursement_date"`
	StartDate          string    `gorm:"size:10" json:"start_date"`
	EndDate            string    `gorm:"size:10" json:"end_date"`
	ChequeNumber       string    `gorm:"size:30" json:"cheque_number"`
	BankName           string    `gorm:"size:100" json:"bank_name"`
	Status             string    `gorm:"size:20;default:'Active';index" json:"status"`
	CreatedBy          string    `gorm:"size:50" json:"created_by"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Member   *Member   `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
	LoanType *LoanType `gorm:"foreignKey:LoanTypeID;references:LoanTypeID" json:"loan_type,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// LoanRepayment represents loan_repayments table (append-only audit trail)
type LoanRepayment struct {
	RepaymentID    uint      `gorm:"primaryKey" json:"repayment_id"`
	LoanID         uint      `gorm:"not null;index" json:"loan_id"`
	MemberID       string    `gorm:"size:10;not null;index" json:"member_id"`
	PaymentDate    string    `gorm:"size:10;not null" json:"payment_date"`
	ExpectedAmount float64   `gorm:"type:decimal(15,2)" json:"expected_amount"`
	ActualAmount   float64   `gorm:"type:decimal(15,2);not null" json:"actual_amount"`
	BalanceBefore  float64   `gorm:"type:decimal(15,2);not null" json:"balance_before"`
	BalanceAfter   float64   `gorm:"type:decimal(15,2);not null" json:"balance_after"`
	PaymentMethod  string    `gorm:"size:30" json:"payment_method"`
	ChequeNumber   string    `gorm:"size:30" json:"cheque_number"`
	ReceiptNumber  string    `gorm:"size:30" json:"receipt_number"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedBy      string    `gorm:"size:50" json:"created_by"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Loan *Loan `gorm:"foreignKey:LoanID;references:LoanID" json:"-"`
}

func (LoanRepayment) TableName() string {
	return "loan_repayments"
}

// ============================================================
// Ledger Table
// ============================================================

// Transaction represents transactions table. Rows are append-only; nothing
// in the codebase updates or deletes them.
type Transaction struct {
	TransactionID   uint      `gorm:"primaryKey" json:"transaction_id"`
	TransactionDate string    `gorm:"size:10;not null;index" json:"transaction_date"`
	MemberID        string    `gorm:"size:10;not null;index" json:"member_id"`
	StationID       string    `gorm:"size:2;not null" json:"station_id"`
	TransactionType string    `gorm:"size:40;not null" json:"transaction_type"`
	AccountType     string    `gorm:"size:10;not null" json:"account_type"`
	AccountID       string    `gorm:"size:20;not null" json:"account_id"`
	Description     string    `gorm:"size:200" json:"description"`
	Amount          float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	IsCredit        bool      `gorm:"not null" json:"is_credit"`
	PaymentMethod   string    `gorm:"size:30" json:"payment_method"`
	ChequeNumber    string    `gorm:"size:30" json:"cheque_number"`
	ReceiptNumber   string    `gorm:"size:30" json:"receipt_number"`
	CreatedBy       string    `gorm:"size:50" json:"created_by"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// ============================================================
// Settings Table
// ============================================================

// SystemSetting represents system_settings table (string key/value pairs).
// There is no in-memory cache; every read and write goes to the store.
type SystemSetting struct {
	SettingKey   string    `gorm:"primaryKey;size:50" json:"setting_key"`
	SettingValue string    `gorm:"size:200;not null" json:"setting_value"`
	Description  string    `gorm:"size:200" json:"description"`
	ModifiedBy   string    `gorm:"size:50" json:"modified_by"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}

// AutoMigrate runs GORM auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Station{},
		&Member{},
		&SavingsType{},
		&SavingsAccount{},
		&LoanType{},
		&Loan{},
		&LoanRepayment{},
		&Transaction{},
		&SystemSetting{},
	)
}
