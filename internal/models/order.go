package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	OrderNumber  string         `json:"order_number" gorm:"unique;not null"`
	UserID       uint           `json:"user_id" gorm:"not null;index"`
	OrderType    string         `json:"order_type" gorm:"not null"`    // kiloan, satuan
	ServiceSpeed string         `json:"service_speed" gorm:"not null"` // regular, express
	WeightKg     int            `json:"weight_kg"`
	ItemsDetail  string         `json:"items_detail" gorm:"type:text"` // informational category tally, JSON
	Subtotal     int            `json:"subtotal" gorm:"not null"`
	Total        int            `json:"total" gorm:"not null"`
	Status       string         `json:"status" gorm:"default:'pending'"`
	MerchantID   *uint          `json:"merchant_id" gorm:"index"`
	CustomerName string         `json:"customer_name" gorm:"not null"`
	WhatsApp     string         `json:"whatsapp" gorm:"not null"`
	Address      string         `json:"address" gorm:"type:text"`
	Locality     string         `json:"locality"`
	City         string         `json:"city"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	Notes        string         `json:"notes" gorm:"type:text"`
	Items        []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type OrderType string

const (
	OrderKiloan OrderType = "kiloan"
	OrderSatuan OrderType = "satuan"
)

type ServiceSpeed string

const (
	SpeedRegular ServiceSpeed = "regular"
	SpeedExpress ServiceSpeed = "express"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPickup    OrderStatus = "pickup"
	StatusWashing   OrderStatus = "washing"
	StatusDrying    OrderStatus = "drying"
	StatusIroning   OrderStatus = "ironing"
	StatusReady     OrderStatus = "ready"
	StatusDelivery  OrderStatus = "delivery"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// AllStatuses lists every recognized label in progression order, cancelled
// last. Any label may be set from any other; the progression is a display
// convention, not a rule.
var AllStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPickup,
	StatusWashing,
	StatusDrying,
	StatusIroning,
	StatusReady,
	StatusDelivery,
	StatusCompleted,
	StatusCancelled,
}

func IsValidStatus(s string) bool {
	for _, st := range AllStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}
