package repositories

import (
	"context"

	"nfc-coop/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MemberRepository handles member data access
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// WithTx returns a copy bound to the given transaction
func (r *MemberRepository) WithTx(tx *gorm.DB) *MemberRepository {
	return &MemberRepository{db: tx}
}

// Create creates a new member
func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member by member ID
func (r *MemberRepository) GetByID(ctx context.Context, memberID string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).
		Preload("Station").
		Where("member_id = ?", memberID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Update updates a member
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// List lists members ordered by member ID
func (r *MemberRepository) List(ctx context.Context, activeOnly bool, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Member{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	q.Count(&total)

	err := q.Preload("Station").
		Order("member_id").
		Offset(offset).
		Limit(limit).
		Find(&members).Error
	return members, total, err
}

// Search searches members by ID or any name part, including the combined
// full name, mirroring what the member screens expect.
func (r *MemberRepository) Search(ctx context.Context, term string, limit int) ([]*models.Member, error) {
	var members []*models.Member
	like := "%" + term + "%"

	fullName := "first_name || ' ' || COALESCE(middle_name, '') || ' ' || last_name"
	if r.db.Dialector.Name() == "mysql" {
		fullName = "CONCAT(first_name, ' ', COALESCE(middle_name, ''), ' ', last_name)"
	}

	err := r.db.WithContext(ctx).
		Preload("Station").
		Where("member_id LIKE ? OR first_name LIKE ? OR middle_name LIKE ? OR last_name LIKE ? OR "+fullName+" LIKE ?",
			like, like, like, like, like).
		Order("member_id").
		Limit(limit).
		Find(&members).Error
	return members, err
}

// CountByStation counts members attached to a station
func (r *MemberRepository) CountByStation(ctx context.Context, stationID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("station_id = ?", stationID).
		Count(&count).Error
	return count, err
}

// MaxMemberNumber returns the highest numeric suffix among existing member
// IDs. Used by the post-migration counter resync.
func (r *MemberRepository) MaxMemberNumber(ctx context.Context) (int, error) {
	expr := "MAX(CAST(SUBSTR(member_id, 4) AS INTEGER))"
	if r.db.Dialector.Name() == "mysql" {
		expr = "MAX(CAST(SUBSTR(member_id, 4) AS SIGNED))"
	}

	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Select(expr).
		Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

// Summaries reads the vw_member_summary reporting view, optionally for a
// single member.
func (r *MemberRepository) Summaries(ctx context.Context, memberID string) ([]*models.MemberSummary, error) {
	var rows []*models.MemberSummary
	q := r.db.WithContext(ctx).Model(&models.MemberSummary{})
	if memberID != "" {
		q = q.Where("member_id = ?", memberID)
	}
	err := q.Order("member_id").Find(&rows).Error
	return rows, err
}
