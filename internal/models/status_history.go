package models

import (
	"time"
)

// OrderStatusHistory is an append-only audit trail. Every status mutation
// writes exactly one row in the same transaction as the order update.
type OrderStatusHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	OrderID   uint      `json:"order_id" gorm:"not null;index"`
	Status    string    `json:"status" gorm:"not null"`
	Note      string    `json:"note"`
	ChangedBy string    `json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (OrderStatusHistory) TableName() string {
	return "order_status_history"
}
