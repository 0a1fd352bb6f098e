package models

import (
	"time"
)

// PlatformService is a sellable catalog entry for per-item (satuan) orders.
type PlatformService struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Icon      string    `json:"icon"`
	Price     int       `json:"price" gorm:"not null"`
	UnitType  string    `json:"unit_type" gorm:"default:'pcs'"` // pcs, kg
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	SortOrder int       `json:"sort_order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UnitType string

const (
	UnitPcs UnitType = "pcs"
	UnitKg  UnitType = "kg"
)
