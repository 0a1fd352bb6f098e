package pricing

import (
	"laundry_app/internal/models"
)

// Pricing is deterministic and side-effect free: totals are computed once at
// submission and persisted on the order, never recomputed later.

// KiloanTotal prices a weight-based order from the per-kg rate of the chosen
// speed tier. The informational per-category tally never affects the price.
func KiloanTotal(weightKg int, speed models.ServiceSpeed, settings models.SiteSettings) int {
	if weightKg <= 0 {
		return 0
	}
	return weightKg * PerKgPrice(speed, settings)
}

// PerKgPrice returns the settings rate for a speed tier.
func PerKgPrice(speed models.ServiceSpeed, settings models.SiteSettings) int {
	if speed == models.SpeedExpress {
		return settings.ExpressPricePerKg
	}
	return settings.RegularPricePerKg
}

// UnitPrice returns the effective per-item price. Express doubles the catalog
// price per unit; kiloan express instead uses a flat per-kg premium. The
// asymmetry is intentional.
func UnitPrice(catalogPrice int, speed models.ServiceSpeed) int {
	if speed == models.SpeedExpress {
		return catalogPrice * 2
	}
	return catalogPrice
}

// SatuanTotal prices a per-item order from catalog quantities. Items missing
// from the catalog contribute nothing. Zero quantities yield 0, which the
// intake flow uses as its empty-cart guard.
func SatuanTotal(quantities map[uint]int, speed models.ServiceSpeed, catalog []models.PlatformService) int {
	total := 0
	for _, svc := range catalog {
		qty := quantities[svc.ID]
		if qty <= 0 {
			continue
		}
		total += qty * UnitPrice(svc.Price, speed)
	}
	return total
}

// Total dispatches on order type.
func Total(orderType models.OrderType, speed models.ServiceSpeed, weightKg int, quantities map[uint]int, settings models.SiteSettings, catalog []models.PlatformService) int {
	if orderType == models.OrderSatuan {
		return SatuanTotal(quantities, speed, catalog)
	}
	return KiloanTotal(weightKg, speed, settings)
}
