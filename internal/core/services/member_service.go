package services

import (
	"context"
	"errors"
	"fmt"

	"nfc-coop/internal/adapters/persistence/models"
	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/core/domain"

	"gorm.io/gorm"
)

// MemberService handles the member registry. IDs come from the counter in
// system settings, allocated inside the same transaction that inserts the
// member row. Members are never physically deleted; status changes carry
// the lifecycle.
type MemberService struct {
	db          *gorm.DB
	memberRepo  *repositories.MemberRepository
	stationRepo *repositories.StationRepository
	settingRepo *repositories.SettingRepository
}

// NewMemberService creates a new member service
func NewMemberService(
	db *gorm.DB,
	memberRepo *repositories.MemberRepository,
	stationRepo *repositories.StationRepository,
	settingRepo *repositories.SettingRepository,
) *MemberService {
	return &MemberService{
		db:          db,
		memberRepo:  memberRepo,
		stationRepo: stationRepo,
		settingRepo: settingRepo,
	}
}

// MemberInput carries the editable member fields
type MemberInput struct {
	StationID        string `json:"station_id"`
	FirstName        string `json:"first_name"`
	MiddleName       string `json:"middle_name,omitempty"`
	LastName         string `json:"last_name"`
	Gender           string `json:"gender"`
	DateOfBirth      string `json:"date_of_birth,omitempty"`
	DateJoined       string `json:"date_joined"`
	Address          string `json:"address,omitempty"`
	PhoneNumber      string `json:"phone_number,omitempty"`
	Email            string `json:"email,omitempty"`
	EmployeeID       string `json:"employee_id,omitempty"`
	GradeLevel       string `json:"grade_level,omitempty"`
	Nok1Name         string `json:"nok1_name,omitempty"`
	Nok1Relationship string `json:"nok1_relationship,omitempty"`
	Nok1Address      string `json:"nok1_address,omitempty"`
	Nok1Phone        string `json:"nok1_phone,omitempty"`
	Nok2Name         string `json:"nok2_name,omitempty"`
	Nok2Relationship string `json:"nok2_relationship,omitempty"`
	Nok2Address      string `json:"nok2_address,omitempty"`
	Nok2Phone        string `json:"nok2_phone,omitempty"`
}

func (in *MemberInput) validate() error {
	if in.StationID == "" {
		return fmt.Errorf("%w: station is required", domain.ErrInvalidInput)
	}
	if in.FirstName == "" || in.LastName == "" {
		return fmt.Errorf("%w: first and last name are required", domain.ErrInvalidInput)
	}
	if in.DateJoined == "" {
		return fmt.Errorf("%w: date joined is required", domain.ErrInvalidInput)
	}
	return nil
}

func (in *MemberInput) apply(m *models.Member) {
	m.StationID = in.StationID
	m.FirstName = in.FirstName
	m.MiddleName = in.MiddleName
	m.LastName = in.LastName
	m.Gender = in.Gender
	m.DateOfBirth = in.DateOfBirth
	m.DateJoined = in.DateJoined
	m.Address = in.Address
	m.PhoneNumber = in.PhoneNumber
	m.Email = in.Email
	m.EmployeeID = in.EmployeeID
	m.GradeLevel = in.GradeLevel
	m.Nok1Name = in.Nok1Name
	m.Nok1Relationship = in.Nok1Relationship
	m.Nok1Address = in.Nok1Address
	m.Nok1Phone = in.Nok1Phone
	m.Nok2Name = in.Nok2Name
	m.Nok2Relationship = in.Nok2Relationship
	m.Nok2Address = in.Nok2Address
	m.Nok2Phone = in.Nok2Phone
}

// Create registers a new member. The NFC#### ID and the counter increment
// commit atomically with the member row.
func (s *MemberService) Create(ctx context.Context, input *MemberInput, actor string) (*models.Member, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if _, err := s.stationRepo.GetByID(ctx, input.StationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStationNotFound
		}
		return nil, err
	}

	var member *models.Member
	err := s.db.Transaction(func(tx *gorm.DB) error {
		num, err := s.settingRepo.WithTx(tx).NextNumber(ctx, domain.SettingNextMemberNumber)
		if err != nil {
			return err
		}

		memberID := fmt.Sprintf("NFC%04d", num)
		member = &models.Member{
			MemberID:           memberID,
			RegistrationNumber: memberID,
			IsActive:           true,
			CreatedBy:          actor,
		}
		input.apply(member)
		return s.memberRepo.WithTx(tx).Create(ctx, member)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Update edits a member's details
func (s *MemberService) Update(ctx context.Context, memberID string, input *MemberInput, actor string) (*models.Member, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	member, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if _, err := s.stationRepo.GetByID(ctx, input.StationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStationNotFound
		}
		return nil, err
	}

	input.apply(member)
	member.ModifiedBy = actor
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// ChangeStatus moves a member between Active, Inactive and Deceased. A
// deceased date only accompanies the Deceased status.
func (s *MemberService) ChangeStatus(ctx context.Context, memberID string, status domain.MemberStatus, deceasedDate string, actor string) (*models.Member, error) {
	member, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.MemberActive:
		member.IsActive = true
		member.IsDeceased = false
		member.DeceasedDate = nil
	case domain.MemberInactive:
		member.IsActive = false
		member.IsDeceased = false
		member.DeceasedDate = nil
	case domain.MemberDeceased:
		if deceasedDate == "" {
			return nil, fmt.Errorf("%w: deceased date is required", domain.ErrInvalidInput)
		}
		member.IsActive = false
		member.IsDeceased = true
		member.DeceasedDate = &deceasedDate
	default:
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	member.ModifiedBy = actor
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetByID returns one member
func (s *MemberService) GetByID(ctx context.Context, memberID string) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// List returns a page of members
func (s *MemberService) List(ctx context.Context, activeOnly bool, offset, limit int) ([]*models.Member, int64, error) {
	return s.memberRepo.List(ctx, activeOnly, offset, limit)
}

// Search matches members by ID or name
func (s *MemberService) Search(ctx context.Context, term string, limit int) ([]*models.Member, error) {
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", domain.ErrInvalidInput)
	}
	return s.memberRepo.Search(ctx, term, limit)
}

// Summaries reads the per-member savings/loan aggregate view
func (s *MemberService) Summaries(ctx context.Context, memberID string) ([]*models.MemberSummary, error) {
	return s.memberRepo.Summaries(ctx, memberID)
}
