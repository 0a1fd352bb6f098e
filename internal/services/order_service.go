package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"laundry_app/internal/models"
	"laundry_app/internal/repository"
)

var (
	ErrUnknownStatus = errors.New("Status tidak dikenal")
	ErrNotAMerchant  = errors.New("User bukan merchant")
)

// OrderCache mirrors recently created orders per user so the history view can
// show a new order without a full reload. Best effort only.
type OrderCache interface {
	PrependRecentOrder(userID uint, order interface{}, max int) error
}

// EventPublisher pushes re-fetch triggers to the assigned merchant's channel.
type EventPublisher interface {
	PublishOrderEvent(merchantID uint, event interface{}) error
}

// OrderEvent tells a merchant dashboard that something about one of its
// orders changed; subscribers re-fetch, they do not apply diffs.
type OrderEvent struct {
	OrderID     uint   `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

type OrderService interface {
	CreateOrder(order *models.Order) error
	GetOrder(id uint) (*models.Order, error)
	GetOrderByNumber(orderNumber string) (*models.Order, error)
	GetOrdersByUser(userID uint) ([]models.Order, error)
	GetOrdersByMerchant(merchantID uint, status string) ([]models.Order, error)
	GetAllOrders(status string) ([]models.Order, error)
	GetOrderHistory(orderID uint) ([]models.OrderStatusHistory, error)
	UpdateStatus(orderID uint, status string, actor models.UserRole) (*models.Order, error)
	AssignMerchant(orderID, merchantID uint) (*models.Order, error)
}

type orderService struct {
	orderRepo       repository.OrderRepository
	historyRepo     repository.StatusHistoryRepository
	userRepo        repository.UserRepository
	cache           OrderCache
	publisher       EventPublisher
	recentOrdersMax int
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	historyRepo repository.StatusHistoryRepository,
	userRepo repository.UserRepository,
	cache OrderCache,
	publisher EventPublisher,
	recentOrdersMax int,
) OrderService {
	return &orderService{
		orderRepo:       orderRepo,
		historyRepo:     historyRepo,
		userRepo:        userRepo,
		cache:           cache,
		publisher:       publisher,
		recentOrdersMax: recentOrdersMax,
	}
}

// GenerateOrderNumber builds the human-readable identifier: LT + YYMMDD +
// 4 random digits. Uniqueness is enforced by the column constraint; creation
// retries with a fresh suffix on conflict.
func GenerateOrderNumber(t time.Time) string {
	return fmt.Sprintf("LT%s%04d", t.Format("060102"), rand.Intn(10000))
}

func isDuplicateError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

func (s *orderService) CreateOrder(order *models.Order) error {
	if order.OrderNumber == "" {
		order.OrderNumber = GenerateOrderNumber(time.Now())
	}
	if order.Status == "" {
		order.Status = string(models.StatusPending)
	}

	var err error
	for attempt := 0; attempt < 5; attempt++ {
		err = s.orderRepo.CreateWithInitialHistory(order, "Order dibuat")
		if err == nil {
			break
		}
		if !isDuplicateError(err) {
			return err
		}
		order.OrderNumber = GenerateOrderNumber(time.Now())
	}
	if err != nil {
		return err
	}

	// Advisory mirror; failure never fails the submission.
	if s.cache != nil {
		if cacheErr := s.cache.PrependRecentOrder(order.UserID, order, s.recentOrdersMax); cacheErr != nil {
			log.Printf("Warning: failed to cache recent order %s: %v", order.OrderNumber, cacheErr)
		}
	}
	return nil
}

func (s *orderService) GetOrder(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	return s.orderRepo.GetByOrderNumber(orderNumber)
}

func (s *orderService) GetOrdersByUser(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

func (s *orderService) GetOrdersByMerchant(merchantID uint, status string) ([]models.Order, error) {
	return s.orderRepo.GetByMerchantID(merchantID, status)
}

func (s *orderService) GetAllOrders(status string) ([]models.Order, error) {
	return s.orderRepo.GetAll(status)
}

func (s *orderService) GetOrderHistory(orderID uint) ([]models.OrderStatusHistory, error) {
	return s.historyRepo.GetByOrderID(orderID)
}

// UpdateStatus sets any known status from any current status. Transition
// legality is deliberately not checked; merchants and admins correct
// mis-set statuses freely.
func (s *orderService) UpdateStatus(orderID uint, status string, actor models.UserRole) (*models.Order, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrUnknownStatus
	}

	note := "Merchant Update"
	if actor == models.RoleAdmin {
		note = "Diubah Admin"
	}

	order, err := s.orderRepo.UpdateStatus(orderID, status, note, string(actor))
	if err != nil {
		return nil, err
	}

	s.publishEvent(order)
	return order, nil
}

// AssignMerchant sets the merchant and forces the order to confirmed,
// overwriting any prior status.
func (s *orderService) AssignMerchant(orderID, merchantID uint) (*models.Order, error) {
	merchant, err := s.userRepo.GetByID(merchantID)
	if err != nil {
		return nil, err
	}
	if merchant.Role != string(models.RoleMerchant) {
		return nil, ErrNotAMerchant
	}

	order, err := s.orderRepo.AssignMerchant(orderID, merchantID, "Merchant Assigned", string(models.RoleAdmin))
	if err != nil {
		return nil, err
	}

	s.publishEvent(order)
	return order, nil
}

func (s *orderService) publishEvent(order *models.Order) {
	if s.publisher == nil || order.MerchantID == nil {
		return
	}
	event := OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
	}
	if err := s.publisher.PublishOrderEvent(*order.MerchantID, event); err != nil {
		log.Printf("Warning: failed to publish order event for %s: %v", order.OrderNumber, err)
	}
}
