package repository

import (
	"errors"

	"laundry_app/internal/models"

	"gorm.io/gorm"
)

type SettingsRepository interface {
	Get() (*models.SiteSettings, error)
	Upsert(settings *models.SiteSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the single settings row, creating it with defaults on first
// read.
func (r *settingsRepository) Get() (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.db.First(&settings, "id = ?", models.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = DefaultSettings()
		if err := r.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert replaces the settings row. Last write wins, no version token.
func (r *settingsRepository) Upsert(settings *models.SiteSettings) error {
	settings.ID = models.SettingsID
	return r.db.Save(settings).Error
}

func DefaultSettings() models.SiteSettings {
	return models.SiteSettings{
		ID:                models.SettingsID,
		SiteName:          "LaundryTime",
		Tagline:           "Antar jemput laundry tanpa ribet",
		PrimaryColor:      "#2563eb",
		SecondaryColor:    "#f59e0b",
		RegularPricePerKg: 7000,
		ExpressPricePerKg: 10000,
		ExpressEnabled:    true,
		ContactWhatsApp:   "6281234567890",
	}
}
