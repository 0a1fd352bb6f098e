package services

import (
	"laundry_app/internal/models"
	"laundry_app/internal/repository"
)

type CatalogService interface {
	CreateService(service *models.PlatformService) error
	GetService(id uint) (*models.PlatformService, error)
	GetAllServices() ([]models.PlatformService, error)
	GetActiveServices() ([]models.PlatformService, error)
	UpdateService(service *models.PlatformService) error
	ToggleActive(id uint) (*models.PlatformService, error)
	DeleteService(id uint) error
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) CreateService(service *models.PlatformService) error {
	return s.catalogRepo.Create(service)
}

func (s *catalogService) GetService(id uint) (*models.PlatformService, error) {
	return s.catalogRepo.GetByID(id)
}

func (s *catalogService) GetAllServices() ([]models.PlatformService, error) {
	return s.catalogRepo.GetAll()
}

func (s *catalogService) GetActiveServices() ([]models.PlatformService, error) {
	return s.catalogRepo.GetActive()
}

func (s *catalogService) UpdateService(service *models.PlatformService) error {
	return s.catalogRepo.Update(service)
}

// ToggleActive soft-disables an entry; already-placed orders keep their
// snapshots either way.
func (s *catalogService) ToggleActive(id uint) (*models.PlatformService, error) {
	service, err := s.catalogRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	service.IsActive = !service.IsActive
	if err := s.catalogRepo.Update(service); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *catalogService) DeleteService(id uint) error {
	return s.catalogRepo.Delete(id)
}
