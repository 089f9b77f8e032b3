package models

import (
	"fmt"

	"gorm.io/gorm"
)

// CreateViews (re)creates the reporting views. GORM auto migration only
// covers tables, so the member summary view is issued as raw SQL. The
// full-name expression is the one piece that differs between dialects; an
// absent middle name is stored as '' and must not contribute a space.
func CreateViews(db *gorm.DB) error {
	fullName := "TRIM(m.first_name || CASE WHEN m.middle_name IS NULL OR m.middle_name = '' THEN '' ELSE ' ' || m.middle_name END || ' ' || m.last_name)"
	if db.Dialector.Name() == "mysql" {
		fullName = "TRIM(CONCAT(m.first_name, CASE WHEN m.middle_name IS NULL OR m.middle_name = '' THEN '' ELSE CONCAT(' ', m.middle_name) END, ' ', m.last_name))"
	}

	// Defaulted loans are still owed; only settled ones drop out.
	outstanding := "COALESCE((SELECT SUM(l.balance_outstanding) FROM loans l WHERE l.member_id = m.member_id AND l.balance_outstanding > 0), 0)"

	stmt := fmt.Sprintf(`
CREATE VIEW vw_member_summary AS
SELECT
    m.member_id,
    %s AS full_name,
    s.station_name,
    COALESCE(SUM(CASE WHEN st.type_code = 'PREMIUM' THEN sa.current_balance END), 0) AS premium_savings,
    COALESCE(SUM(CASE WHEN st.type_code = 'TARGET' THEN sa.current_balance END), 0) AS fixed_target_deposits,
    COALESCE(SUM(CASE WHEN st.type_code = 'SHARES' THEN sa.current_balance END), 0) AS shares_investment,
    COALESCE(SUM(sa.current_balance), 0) AS total_savings,
    %s AS total_loans_outstanding,
    COALESCE(SUM(sa.current_balance), 0) - %s AS net_balance
FROM members m
LEFT JOIN stations s ON s.station_id = m.station_id
LEFT JOIN savings_accounts sa ON sa.member_id = m.member_id AND sa.is_active = %s
LEFT JOIN savings_types st ON st.savings_type_id = sa.savings_type_id
GROUP BY m.member_id, m.first_name, m.middle_name, m.last_name, s.station_name`,
		fullName, outstanding, outstanding, boolLiteral(db))

	if err := db.Exec("DROP VIEW IF EXISTS vw_member_summary").Error; err != nil {
		return err
	}
	return db.Exec(stmt).Error
}

func boolLiteral(db *gorm.DB) string {
	if db.Dialector.Name() == "mysql" {
		return "TRUE"
	}
	return "1"
}

// MemberSummary maps rows of vw_member_summary
type MemberSummary struct {
	MemberID              string  `json:"member_id"`
	FullName              string  `json:"full_name"`
	StationName           string  `json:"station_name"`
	PremiumSavings        float64 `json:"premium_savings"`
	FixedTargetDeposits   float64 `json:"fixed_target_deposits"`
	SharesInvestment      float64 `json:"shares_investment"`
	TotalSavings          float64 `json:"total_savings"`
	TotalLoansOutstanding float64 `json:"total_loans_outstanding"`
	NetBalance            float64 `json:"net_balance"`
}

// TableName points GORM reads at the view
func (MemberSummary) TableName() string {
	return "vw_member_summary"
}
