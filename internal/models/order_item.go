package models

import (
	"time"
)

// OrderItem is a per-item snapshot taken at submission time. Name and unit
// price are copied from the catalog so later catalog edits never change
// historical totals.
type OrderItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"not null;index"`
	ServiceID  uint      `json:"service_id"`
	Name       string    `json:"name" gorm:"not null"`
	UnitPrice  int       `json:"unit_price" gorm:"not null"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	TotalPrice int       `json:"total_price" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}
