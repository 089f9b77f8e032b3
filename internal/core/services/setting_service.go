package services

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"nfc-coop/internal/adapters/persistence/models"
	"nfc-coop/internal/adapters/persistence/repositories"
	"nfc-coop/internal/core/domain"
)

// SettingService exposes system settings and the one-time counter resync
// used after a legacy data import.
type SettingService struct {
	settingRepo *repositories.SettingRepository
	memberRepo  *repositories.MemberRepository
	stationRepo *repositories.StationRepository
	loanRepo    *repositories.LoanRepository
}

// NewSettingService creates a new setting service
func NewSettingService(
	settingRepo *repositories.SettingRepository,
	memberRepo *repositories.MemberRepository,
	stationRepo *repositories.StationRepository,
	loanRepo *repositories.LoanRepository,
) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		memberRepo:  memberRepo,
		stationRepo: stationRepo,
		loanRepo:    loanRepo,
	}
}

// Get returns one setting value
func (s *SettingService) Get(ctx context.Context, key string) (string, error) {
	return s.settingRepo.Get(ctx, key)
}

// Set writes one setting value
func (s *SettingService) Set(ctx context.Context, key, value, actor string) error {
	if key == "" {
		return fmt.Errorf("%w: setting key is required", domain.ErrInvalidInput)
	}
	if key == domain.SettingOverpaymentPolicy {
		switch domain.OverpaymentPolicy(value) {
		case domain.OverpaymentWriteOff, domain.OverpaymentReject:
		default:
			return fmt.Errorf("%w: policy must be %q or %q", domain.ErrInvalidInput,
				domain.OverpaymentWriteOff, domain.OverpaymentReject)
		}
	}
	return s.settingRepo.Set(ctx, key, value, actor)
}

// All lists every setting
func (s *SettingService) All(ctx context.Context) ([]*models.SystemSetting, error) {
	return s.settingRepo.All(ctx)
}

// ResyncCounters sets the ID counters to max(existing)+1. Rows inserted
// out of band (legacy migration) bypass the allocator, so this fix-up runs
// once after an import.
func (s *SettingService) ResyncCounters(ctx context.Context, actor string) error {
	maxMember, err := s.memberRepo.MaxMemberNumber(ctx)
	if err != nil {
		return err
	}
	if err := s.settingRepo.Set(ctx, domain.SettingNextMemberNumber, strconv.Itoa(maxMember+1), actor); err != nil {
		return err
	}

	maxStation, err := s.stationRepo.MaxStationNumber(ctx)
	if err != nil {
		return err
	}
	if err := s.settingRepo.Set(ctx, domain.SettingNextStationNumber, strconv.Itoa(maxStation+1), actor); err != nil {
		return err
	}

	maxLoan, err := s.loanRepo.MaxLoanNumber(ctx)
	if err != nil {
		return err
	}
	if err := s.settingRepo.Set(ctx, domain.SettingNextLoanNumber, strconv.Itoa(maxLoan+1), actor); err != nil {
		return err
	}

	log.Printf("✅ Counters resynced: next member %d, next station %d, next loan %d", maxMember+1, maxStation+1, maxLoan+1)
	return nil
}
