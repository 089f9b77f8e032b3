package repositories

import (
	"context"

	"nfc-coop/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// StationRepository handles station data access
type StationRepository struct {
	db *gorm.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *gorm.DB) *StationRepository {
	return &StationRepository{db: db}
}

// WithTx returns a copy bound to the given transaction
func (r *StationRepository) WithTx(tx *gorm.DB) *StationRepository {
	return &StationRepository{db: tx}
}

// Create creates a new station
func (r *StationRepository) Create(ctx context.Context, station *models.Station) error {
	return r.db.WithContext(ctx).Create(station).Error
}

// GetByID gets a station by ID
func (r *StationRepository) GetByID(ctx context.Context, stationID string) (*models.Station, error) {
	var station models.Station
	err := r.db.WithContext(ctx).Where("station_id = ?", stationID).First(&station).Error
	if err != nil {
		return nil, err
	}
	return &station, nil
}

// List lists stations ordered by ID
func (r *StationRepository) List(ctx context.Context, enabledOnly bool) ([]*models.Station, error) {
	var stations []*models.Station
	q := r.db.WithContext(ctx)
	if enabledOnly {
		q = q.Where("enabled = ?", true)
	}
	err := q.Order("station_id").Find(&stations).Error
	return stations, err
}

// Update updates a station
func (r *StationRepository) Update(ctx context.Context, station *models.Station) error {
	return r.db.WithContext(ctx).Save(station).Error
}

// Delete removes a station row. The zero-member guard lives in the service.
func (r *StationRepository) Delete(ctx context.Context, stationID string) error {
	return r.db.WithContext(ctx).Where("station_id = ?", stationID).Delete(&models.Station{}).Error
}

// MaxStationNumber returns the highest numeric station ID, for the
// post-migration counter resync.
func (r *StationRepository) MaxStationNumber(ctx context.Context) (int, error) {
	expr := "MAX(CAST(station_id AS INTEGER))"
	if r.db.Dialector.Name() == "mysql" {
		expr = "MAX(CAST(station_id AS SIGNED))"
	}

	var max *int
	err := r.db.WithContext(ctx).
		Model(&models.Station{}).
		Select(expr).
		Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}
