package intake

import (
	"errors"
	"time"

	"laundry_app/internal/models"
)

var (
	ErrNameWhatsAppRequired = errors.New("Nama dan WhatsApp wajib diisi")
	ErrLocationMissing      = errors.New("Lokasi belum terdeteksi")
	ErrExpressDisabled      = errors.New("Layanan express sedang tidak tersedia")
	ErrAlreadySubmitted     = errors.New("Order sudah dikirim")
	ErrInvalidOrderType     = errors.New("Jenis order tidak dikenal")
)

type Step int

const (
	StepLocation Step = iota + 1
	StepItems
	StepContact
	StepSubmitted
)

type Location struct {
	Address   string  `json:"address"`
	Locality  string  `json:"locality"`
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultLocation is the fixed fallback used when device geolocation or
// reverse geocoding fails. The flow must never block on location.
func DefaultLocation() Location {
	return Location{
		Address:   "Jl. MH Thamrin No.1, Menteng, Jakarta Pusat",
		Locality:  "Menteng",
		City:      "Jakarta Pusat",
		Latitude:  -6.1944,
		Longitude: 106.8229,
	}
}

// Draft is the transient state of the three-step order wizard. It lives in
// Redis under its ID until submitted or expired.
type Draft struct {
	ID           string              `json:"id"`
	UserID       uint                `json:"user_id"`
	Step         Step                `json:"step"`
	OrderType    models.OrderType    `json:"order_type"`
	ServiceSpeed models.ServiceSpeed `json:"service_speed"`
	WeightKg     int                 `json:"weight_kg"`
	ItemsDetail  map[string]int      `json:"items_detail"`
	Quantities   map[uint]int        `json:"quantities"`
	Location     *Location           `json:"location"`
	CustomerName string              `json:"customer_name"`
	WhatsApp     string              `json:"whatsapp"`
	Notes        string              `json:"notes"`
	CreatedAt    time.Time           `json:"created_at"`
}

func NewDraft(id string, userID uint) *Draft {
	return &Draft{
		ID:           id,
		UserID:       userID,
		Step:         StepLocation,
		OrderType:    models.OrderKiloan,
		ServiceSpeed: models.SpeedRegular,
		WeightKg:     1,
		ItemsDetail:  map[string]int{},
		Quantities:   map[uint]int{},
		CreatedAt:    time.Now(),
	}
}

func (d *Draft) SetLocation(loc Location) {
	if d.Step == StepSubmitted {
		return
	}
	d.Location = &loc
}

// Next advances the wizard. Leaving the location step requires a resolved
// location; the items step advances unconditionally.
func (d *Draft) Next() error {
	switch d.Step {
	case StepLocation:
		if d.Location == nil {
			return ErrLocationMissing
		}
		d.Step = StepItems
	case StepItems:
		d.Step = StepContact
	case StepContact:
		// only Submit leaves the contact step
	case StepSubmitted:
		return ErrAlreadySubmitted
	}
	return nil
}

func (d *Draft) Back() error {
	switch d.Step {
	case StepSubmitted:
		return ErrAlreadySubmitted
	case StepItems:
		d.Step = StepLocation
	case StepContact:
		d.Step = StepItems
	}
	return nil
}

func (d *Draft) SelectOrderType(t models.OrderType) error {
	if d.Step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	if t != models.OrderKiloan && t != models.OrderSatuan {
		return ErrInvalidOrderType
	}
	d.OrderType = t
	return nil
}

func (d *Draft) SelectServiceSpeed(s models.ServiceSpeed, expressEnabled bool) error {
	if d.Step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	if s == models.SpeedExpress && !expressEnabled {
		return ErrExpressDisabled
	}
	if s != models.SpeedRegular && s != models.SpeedExpress {
		s = models.SpeedRegular
	}
	d.ServiceSpeed = s
	return nil
}

// AdjustQuantity changes a satuan item count by delta, clamped at 0.
func (d *Draft) AdjustQuantity(serviceID uint, delta int) {
	if d.Step == StepSubmitted {
		return
	}
	q := d.Quantities[serviceID] + delta
	if q <= 0 {
		delete(d.Quantities, serviceID)
		return
	}
	d.Quantities[serviceID] = q
}

// AdjustWeight changes the kiloan weight by delta, clamped at 1.
func (d *Draft) AdjustWeight(delta int) {
	if d.Step == StepSubmitted {
		return
	}
	w := d.WeightKg + delta
	if w < 1 {
		w = 1
	}
	d.WeightKg = w
}

// SetItemDetail records the informational per-category tally for kiloan
// orders. It never affects pricing.
func (d *Draft) SetItemDetail(category string, count int) {
	if d.Step == StepSubmitted {
		return
	}
	if count <= 0 {
		delete(d.ItemsDetail, category)
		return
	}
	d.ItemsDetail[category] = count
}

func (d *Draft) SetContact(name, whatsapp, notes string) {
	if d.Step == StepSubmitted {
		return
	}
	d.CustomerName = name
	d.WhatsApp = whatsapp
	d.Notes = notes
}

// ValidateForSubmit checks the submission gate. The draft stays on the
// contact step when any check fails.
func (d *Draft) ValidateForSubmit() error {
	if d.Step == StepSubmitted {
		return ErrAlreadySubmitted
	}
	if d.CustomerName == "" || d.WhatsApp == "" {
		return ErrNameWhatsAppRequired
	}
	if d.Location == nil {
		return ErrLocationMissing
	}
	return nil
}

func (d *Draft) MarkSubmitted() {
	d.Step = StepSubmitted
}
