package repository

import (
	"laundry_app/internal/models"

	"gorm.io/gorm"
)

type StatusHistoryRepository interface {
	GetByOrderID(orderID uint) ([]models.OrderStatusHistory, error)
}

type statusHistoryRepository struct {
	db *gorm.DB
}

func NewStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

func (r *statusHistoryRepository) GetByOrderID(orderID uint) ([]models.OrderStatusHistory, error) {
	var entries []models.OrderStatusHistory
	err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&entries).Error
	return entries, err
}
