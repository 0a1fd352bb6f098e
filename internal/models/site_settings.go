package models

import (
	"time"
)

// SiteSettings is a single record (id = "main") of site content, pricing and
// feature flags. Read-modify-write, last write wins.
type SiteSettings struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	SiteName          string    `json:"site_name"`
	Tagline           string    `json:"tagline"`
	PrimaryColor      string    `json:"primary_color"`
	SecondaryColor    string    `json:"secondary_color"`
	RegularPricePerKg int       `json:"regular_price_per_kg"`
	ExpressPricePerKg int       `json:"express_price_per_kg"`
	ExpressEnabled    bool      `json:"express_enabled" gorm:"default:true"`
	ContactWhatsApp   string    `json:"contact_whatsapp"`
	UpdatedAt         time.Time `json:"updated_at"`
}

const SettingsID = "main"
