package domain

// Role represents user role in the system
type Role string

const (
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

// MemberStatus values used by ChangeStatus
type MemberStatus string

const (
	MemberActive   MemberStatus = "Active"
	MemberInactive MemberStatus = "Inactive"
	MemberDeceased MemberStatus = "Deceased"
)

// Loan lifecycle states. Active -> Completed happens when the outstanding
// balance reaches zero; Active -> Defaulted is applied by the overdue sweep,
// never by a repayment.
const (
	LoanStatusActive    = "Active"
	LoanStatusCompleted = "Completed"
	LoanStatusDefaulted = "Defaulted"
)

// Transaction direction and classification
const (
	AccountTypeSavings = "Savings"
	AccountTypeLoan    = "Loan"

	TxTypeSavingsDeposit    = "Savings Deposit"
	TxTypeSavingsWithdrawal = "Savings Withdrawal"
	TxTypeLoanDisbursement  = "Loan Disbursement"
	TxTypeLoanRepayment     = "Loan Repayment"
)

// Overpayment policies for loan repayment. WriteOff matches the legacy
// behaviour: any excess over the outstanding balance is discarded and the
// balance clamps at zero. Reject refuses the payment outright.
type OverpaymentPolicy string

const (
	OverpaymentWriteOff OverpaymentPolicy = "write_off"
	OverpaymentReject   OverpaymentPolicy = "reject"
)

// Well-known system setting keys
const (
	SettingNextMemberNumber     = "next_member_number"
	SettingNextStationNumber    = "next_station_number"
	SettingNextLoanNumber       = "next_loan_number"
	SettingOverpaymentPolicy    = "loan_overpayment_policy"
	SettingLoanDefaultGraceDays = "loan_default_grace_days"
	SettingOrganizationName     = "organization_name"
)

// PaymentMeta carries the optional payment details recorded on every
// ledger movement.
type PaymentMeta struct {
	TransactionDate string
	Description     string
	PaymentMethod   string
	ChequeNumber    string
	ReceiptNumber   string
	Notes           string
}
