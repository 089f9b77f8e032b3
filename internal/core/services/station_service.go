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

// StationService handles the station (branch) directory
type StationService struct {
	db          *gorm.DB
	stationRepo *repositories.StationRepository
	memberRepo  *repositories.MemberRepository
	settingRepo *repositories.SettingRepository
}

// NewStationService creates a new station service
func NewStationService(
	db *gorm.DB,
	stationRepo *repositories.StationRepository,
	memberRepo *repositories.MemberRepository,
	settingRepo *repositories.SettingRepository,
) *StationService {
	return &StationService{
		db:          db,
		stationRepo: stationRepo,
		memberRepo:  memberRepo,
		settingRepo: settingRepo,
	}
}

// Create adds a station for a city. The two-digit ID comes from the
// counter in system settings, allocated with the insert in one
// transaction; the name follows the NFC - <City> convention.
func (s *StationService) Create(ctx context.Context, city string) (*models.Station, error) {
	if city == "" {
		return nil, fmt.Errorf("%w: city is required", domain.ErrInvalidInput)
	}

	var station *models.Station
	err := s.db.Transaction(func(tx *gorm.DB) error {
		num, err := s.settingRepo.WithTx(tx).NextNumber(ctx, domain.SettingNextStationNumber)
		if err != nil {
			return err
		}

		station = &models.Station{
			StationID:   fmt.Sprintf("%02d", num),
			StationName: "NFC - " + city,
			Address:     city,
			City:        city,
			Enabled:     true,
		}
		return s.stationRepo.WithTx(tx).Create(ctx, station)
	})
	if err != nil {
		return nil, err
	}
	return station, nil
}

// GetByID returns one station
func (s *StationService) GetByID(ctx context.Context, stationID string) (*models.Station, error) {
	station, err := s.stationRepo.GetByID(ctx, stationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStationNotFound
		}
		return nil, err
	}
	return station, nil
}

// List returns the station directory
func (s *StationService) List(ctx context.Context, enabledOnly bool) ([]*models.Station, error) {
	return s.stationRepo.List(ctx, enabledOnly)
}

// Update edits a station's name, address, city and enabled flag
func (s *StationService) Update(ctx context.Context, stationID, stationName, address, city string, enabled bool) (*models.Station, error) {
	station, err := s.GetByID(ctx, stationID)
	if err != nil {
		return nil, err
	}

	if stationName != "" {
		station.StationName = stationName
	}
	if address != "" {
		station.Address = address
	}
	if city != "" {
		station.City = city
	}
	station.Enabled = enabled

	if err := s.stationRepo.Update(ctx, station); err != nil {
		return nil, err
	}
	return station, nil
}

// Delete removes a station. Refused while any member is still assigned to
// it; this guard is enforced here, not only by foreign keys.
func (s *StationService) Delete(ctx context.Context, stationID string) error {
	if _, err := s.GetByID(ctx, stationID); err != nil {
		return err
	}

	count, err := s.memberRepo.CountByStation(ctx, stationID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d members", domain.ErrStationHasMembers, count)
	}

	return s.stationRepo.Delete(ctx, stationID)
}
