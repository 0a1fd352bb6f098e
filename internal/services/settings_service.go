package services

import (
	"log"
	"time"

	"laundry_app/internal/models"
	"laundry_app/internal/repository"
)

// SettingsCache is the advisory warm cache for site settings. Failures are
// logged and swallowed; the database stays authoritative.
type SettingsCache interface {
	GetSettingsCache(dest interface{}) error
	SetSettingsCache(settings interface{}, ttl time.Duration) error
	InvalidateSettingsCache() error
}

type SettingsService interface {
	Get() (*models.SiteSettings, error)
	Update(settings *models.SiteSettings) error
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	cache        SettingsCache
	cacheTTL     time.Duration
}

func NewSettingsService(settingsRepo repository.SettingsRepository, cache SettingsCache, cacheTTL time.Duration) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

func (s *settingsService) Get() (*models.SiteSettings, error) {
	if s.cache != nil {
		var cached models.SiteSettings
		if err := s.cache.GetSettingsCache(&cached); err == nil {
			return &cached, nil
		}
	}

	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSettingsCache(settings, s.cacheTTL); err != nil {
			log.Printf("Warning: failed to cache settings: %v", err)
		}
	}
	return settings, nil
}

func (s *settingsService) Update(settings *models.SiteSettings) error {
	if err := s.settingsRepo.Upsert(settings); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.InvalidateSettingsCache(); err != nil {
			log.Printf("Warning: failed to invalidate settings cache: %v", err)
		}
	}
	return nil
}
