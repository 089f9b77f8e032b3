package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"nfc-coop/internal/adapters/persistence/models"
	"nfc-coop/internal/core/domain"

	"gorm.io/gorm"
)

// SettingRepository handles system_settings data access. It also backs the
// identifier allocator: counters live in settings rows, and NextNumber is
// meant to be called on a WithTx copy so the read-increment happens inside
// the same transaction as the row that consumes the number.
type SettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// WithTx returns a copy bound to the given transaction
func (r *SettingRepository) WithTx(tx *gorm.DB) *SettingRepository {
	return &SettingRepository{db: tx}
}

// Get returns the value of a setting key
func (r *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	var setting models.SystemSetting
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrSettingNotFound, key)
		}
		return "", err
	}
	return setting.SettingValue, nil
}

// Set updates or inserts a setting value
func (r *SettingRepository) Set(ctx context.Context, key, value, modifiedBy string) error {
	var setting models.SystemSetting
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(&models.SystemSetting{
				SettingKey:   key,
				SettingValue: value,
				ModifiedBy:   modifiedBy,
			}).Error
		}
		return err
	}

	setting.SettingValue = value
	setting.ModifiedBy = modifiedBy
	return r.db.WithContext(ctx).Save(&setting).Error
}

// All lists every setting row
func (r *SettingRepository) All(ctx context.Context) ([]*models.SystemSetting, error) {
	var settings []*models.SystemSetting
	err := r.db.WithContext(ctx).Order("setting_key").Find(&settings).Error
	return settings, err
}

// NextNumber reads a numeric counter setting, writes back value+1 and
// returns the original value. A missing or non-numeric row is a
// configuration error, never a silent default.
func (r *SettingRepository) NextNumber(ctx context.Context, key string) (int, error) {
	var setting models.SystemSetting
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: counter %s is not configured", domain.ErrConfiguration, key)
		}
		return 0, err
	}

	n, err := strconv.Atoi(setting.SettingValue)
	if err != nil {
		return 0, fmt.Errorf("%w: counter %s holds %q", domain.ErrConfiguration, key, setting.SettingValue)
	}

	setting.SettingValue = strconv.Itoa(n + 1)
	if err := r.db.WithContext(ctx).Save(&setting).Error; err != nil {
		return 0, err
	}
	return n, nil
}
