package repository

import (
	"laundry_app/internal/models"

	"gorm.io/gorm"
)

type CatalogRepository interface {
	Create(service *models.PlatformService) error
	GetByID(id uint) (*models.PlatformService, error)
	GetAll() ([]models.PlatformService, error)
	GetActive() ([]models.PlatformService, error)
	Update(service *models.PlatformService) error
	Delete(id uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) Create(service *models.PlatformService) error {
	return r.db.Create(service).Error
}

func (r *catalogRepository) GetByID(id uint) (*models.PlatformService, error) {
	var service models.PlatformService
	err := r.db.First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *catalogRepository) GetAll() ([]models.PlatformService, error) {
	var services []models.PlatformService
	err := r.db.Order("sort_order ASC, id ASC").Find(&services).Error
	return services, err
}

func (r *catalogRepository) GetActive() ([]models.PlatformService, error) {
	var services []models.PlatformService
	err := r.db.Where("is_active = ?", true).Order("sort_order ASC, id ASC").Find(&services).Error
	return services, err
}

func (r *catalogRepository) Update(service *models.PlatformService) error {
	return r.db.Save(service).Error
}

// Delete hard-deletes a catalog entry. Existing orders keep their own
// name/price snapshots, so no referential check is needed.
func (r *catalogRepository) Delete(id uint) error {
	return r.db.Delete(&models.PlatformService{}, id).Error
}
