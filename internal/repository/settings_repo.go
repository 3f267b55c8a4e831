package repository

import (
	"context"
	"errors"

	"garage/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*model.CompanySettings, error)
	Save(ctx context.Context, settings *model.CompanySettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row, or an empty profile if none exists yet.
func (r *settingsRepository) Get(ctx context.Context) (*model.CompanySettings, error) {
	var settings model.CompanySettings
	if err := GetDB(ctx, r.db).First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.CompanySettings{}, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *model.CompanySettings) error {
	return GetDB(ctx, r.db).Save(settings).Error
}
