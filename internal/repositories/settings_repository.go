package repositories

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"expofeedback/internal/models/db_models"
)

type SettingsRepository interface {
	// GetBool returns found=false when the key has never been written.
	GetBool(ctx context.Context, key string) (value bool, found bool, err error)
	SetBool(ctx context.Context, key string, value bool) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetBool(ctx context.Context, key string) (bool, bool, error) {
	var setting db_models.Setting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, false, nil
		}
		return false, false, err
	}

	v, err := strconv.ParseBool(setting.Value)
	if err != nil {
		// unparseable values read as disabled
		return false, true, nil
	}
	return v, true, nil
}

func (r *settingsRepository) SetBool(ctx context.Context, key string, value bool) error {
	setting := db_models.Setting{Key: key, Value: strconv.FormatBool(value)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}
