package repository

import (
	"laundry_app/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateWithInitialHistory(order *models.Order, note string) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	GetByMerchantID(merchantID uint, status string) ([]models.Order, error)
	GetAll(status string) ([]models.Order, error)
	UpdateStatus(orderID uint, status, note, changedBy string) (*models.Order, error)
	AssignMerchant(orderID, merchantID uint, note, changedBy string) (*models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithInitialHistory persists the order (with its item snapshots) and
// the initial pending history row in one transaction, so an order can never
// exist without its first log entry.
func (r *orderRepository) CreateWithInitialHistory(order *models.Order, note string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		history := &models.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    order.Status,
			Note:      note,
			ChangedBy: "customer",
		}
		return tx.Create(history).Error
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByMerchantID(merchantID uint, status string) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.Preload("Items").Where("merchant_id = ?", merchantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll(status string) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.Preload("Items")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// UpdateStatus writes the new status and appends exactly one history row in
// the same transaction. No transition table is checked: any known status may
// replace any other.
func (r *orderRepository) UpdateStatus(orderID uint, status, note, changedBy string) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("status", status).Error; err != nil {
			return err
		}
		history := &models.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    status,
			Note:      note,
			ChangedBy: changedBy,
		}
		return tx.Create(history).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// AssignMerchant sets the merchant and forces status to confirmed,
// overwriting whatever status the order had, with one history row.
func (r *orderRepository) AssignMerchant(orderID, merchantID uint, note, changedBy string) (*models.Order, error) {
	var order models.Order
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"merchant_id": merchantID,
			"status":      string(models.StatusConfirmed),
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		order.MerchantID = &merchantID
		order.Status = string(models.StatusConfirmed)
		history := &models.OrderStatusHistory{
			OrderID:   order.ID,
			Status:    string(models.StatusConfirmed),
			Note:      note,
			ChangedBy: changedBy,
		}
		return tx.Create(history).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
