package services

import (
	"errors"

	"laundry_app/internal/geo"
	"laundry_app/internal/models"
	"laundry_app/internal/repository"
)

var ErrNoMerchantAvailable = errors.New("Belum ada merchant di sekitar lokasi")

// NearestMerchantResult pairs a merchant profile with its real great-circle
// distance from the customer location.
type NearestMerchantResult struct {
	Merchant   models.User `json:"merchant"`
	DistanceKm float64     `json:"distance_km"`
}

type UserService interface {
	GetUserByID(id uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateProfile(userID uint, fullName, phone, address string) (*models.User, error)
	UpdateRole(userID uint, role string) (*models.User, error)
	SetActive(userID uint, active bool) (*models.User, error)
	DeleteUser(id uint) error
	NearestMerchant(lat, lng float64) (*NearestMerchantResult, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// UpdateProfile edits the profile only. Past orders keep their customer
// snapshot untouched.
func (s *userService) UpdateProfile(userID uint, fullName, phone, address string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.FullName = fullName
	user.Phone = phone
	user.Address = address
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateRole sets the role column directly. There is no onboarding workflow
// behind it; the admin console is the only caller.
func (s *userService) UpdateRole(userID uint, role string) (*models.User, error) {
	if role != string(models.RoleCustomer) && role != string(models.RoleMerchant) && role != string(models.RoleAdmin) {
		return nil, errors.New("Role tidak dikenal")
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) SetActive(userID uint, active bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = active
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(id uint) error {
	return s.userRepo.Delete(id)
}

// NearestMerchant finds the closest active merchant outlet by Haversine
// distance over stored outlet coordinates.
func (s *userService) NearestMerchant(lat, lng float64) (*NearestMerchantResult, error) {
	merchants, err := s.userRepo.GetActiveMerchants()
	if err != nil {
		return nil, err
	}
	if len(merchants) == 0 {
		return nil, ErrNoMerchantAvailable
	}

	best := NearestMerchantResult{DistanceKm: -1}
	for _, m := range merchants {
		if m.Latitude == nil || m.Longitude == nil {
			continue
		}
		d := geo.HaversineKm(lat, lng, *m.Latitude, *m.Longitude)
		if best.DistanceKm < 0 || d < best.DistanceKm {
			best = NearestMerchantResult{Merchant: m, DistanceKm: d}
		}
	}
	if best.DistanceKm < 0 {
		return nil, ErrNoMerchantAvailable
	}
	return &best, nil
}
