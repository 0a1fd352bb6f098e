package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"laundry_app/internal/intake"
	"laundry_app/internal/models"
	"laundry_app/internal/pricing"
	"laundry_app/pkg/geocode"
)

var ErrLoginRequired = errors.New("Sesi berakhir, silakan login kembali")

// DraftStore holds in-progress wizard drafts. Backed by Redis in production.
type DraftStore interface {
	SetDraft(draftID string, draft interface{}, ttl time.Duration) error
	GetDraft(draftID string, dest interface{}) error
	DeleteDraft(draftID string) error
}

// Geocoder resolves coordinates into a display address.
type Geocoder interface {
	Reverse(lat, lng float64) (*geocode.Address, error)
}

type IntakeService interface {
	StartDraft(userID uint) (*intake.Draft, error)
	GetDraft(draftID string) (*intake.Draft, error)
	ResolveLocation(draftID string, lat, lng *float64) (*intake.Draft, error)
	SelectOrderType(draftID, orderType string) (*intake.Draft, error)
	SelectServiceSpeed(draftID, speed string) (*intake.Draft, error)
	AdjustQuantity(draftID string, serviceID uint, delta int) (*intake.Draft, error)
	AdjustWeight(draftID string, delta int) (*intake.Draft, error)
	SetItemDetail(draftID, category string, count int) (*intake.Draft, error)
	SetContact(draftID, name, whatsapp, notes string) (*intake.Draft, error)
	NextStep(draftID string) (*intake.Draft, error)
	PrevStep(draftID string) (*intake.Draft, error)
	Quote(draftID string) (int, error)
	Submit(draftID string, userID uint) (*models.Order, error)
}

type intakeService struct {
	store           DraftStore
	geocoder        Geocoder
	orderService    OrderService
	settingsService SettingsService
	catalogService  CatalogService
	draftTTL        time.Duration
}

func NewIntakeService(
	store DraftStore,
	geocoder Geocoder,
	orderService OrderService,
	settingsService SettingsService,
	catalogService CatalogService,
	draftTTL time.Duration,
) IntakeService {
	return &intakeService{
		store:           store,
		geocoder:        geocoder,
		orderService:    orderService,
		settingsService: settingsService,
		catalogService:  catalogService,
		draftTTL:        draftTTL,
	}
}

func newDraftID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("draft%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func (s *intakeService) StartDraft(userID uint) (*intake.Draft, error) {
	draft := intake.NewDraft(newDraftID(), userID)
	if err := s.store.SetDraft(draft.ID, draft, s.draftTTL); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *intakeService) GetDraft(draftID string) (*intake.Draft, error) {
	var draft intake.Draft
	if err := s.store.GetDraft(draftID, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *intakeService) save(draft *intake.Draft) error {
	return s.store.SetDraft(draft.ID, draft, s.draftTTL)
}

// ResolveLocation builds the draft location from device coordinates plus a
// reverse geocode lookup. Every failure path falls back to the fixed default
// location; the flow never blocks on this step.
func (s *intakeService) ResolveLocation(draftID string, lat, lng *float64) (*intake.Draft, error) {
	draft, err := s.GetDraft(draftID)
	if err != nil {
		return nil, err
	}

	loc := intake.DefaultLocation()
	if lat != nil && lng != nil {
		loc.Latitude = *lat
		loc.Longitude = *lng
		loc.Address = fmt.Sprintf("%.5f, %.5f", *lat, *lng)
		loc.Locality = ""
		loc.City = ""

		if s.geocoder != nil {
			addr, geoErr := s.geocoder.Reverse(*lat, *lng)
			if geoErr != nil {
				log.Printf("Warning: reverse geocode failed, using fallback address: %v", geoErr)
				loc = intake.DefaultLocation()
			} else {
				loc.Address = addr.DisplayName
				loc.Locality = addr.Locality
				loc.City = addr.City
			}
		}
	}

	draft.SetLocation(loc)
	if err := s.save(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *intakeService) SelectOrderType(draftID, orderType string) (*intake.Draft, error) {
	return s.mutate(draftID, func(d *intake.Draft) error {
		return d.SelectOrderType(models.OrderType(orderType))
	})
}

func (s *intakeService) SelectServiceSpeed(draftID, speed string) (*intake.Draft, error) {
	settings, err := s.settingsService.Get()
	if err != nil {
		return nil, err
	}
	return s.mutate(draftID, func(d *intake.Draft) error {
		return d.SelectServiceSpeed(models.ServiceSpeed(speed), settings.ExpressEnabled)
	})
}

func (s *intakeService) AdjustQuantity(draftID string, serviceID uint, delta int) (*intake.Draft, error) {
	return s.mutate(draftID, func(d *intake.Draft) error {
		d.AdjustQuantity(serviceID, delta)
		return nil
	})
}

func (s *intakeService) AdjustWeight(draftID string, delta int) (*intake.Draft, error) {
	return s.mutate(draftID, func(d *intake.Draft) error {
		d.AdjustWeight(delta)
		return nil
	})
}

func (s *intakeService) SetItemDetail(draftID, category string, count int) (*intake.Draft, error) {
	return s.mutate(draftID, func(d *intake.Draft) error {
		d.SetItemDetail(category, count)
		return nil
	})
}

func (s *intakeService) SetContact(draftID, name, whatsapp, notes string) (*intake.Draft, error) {
	return s.mutate(draftID, func(d *intake.Draft) error {
		d.SetContact(name, whatsapp, notes)
		return nil
	})
}

func (s *intakeService) NextStep(draftID string) (*intake.Draft, error) {
	return s.mutate(draftID, func(d *intake.Draft) error {
		return d.Next()
	})
}

func (s *intakeService) PrevStep(draftID string) (*intake.Draft, error) {
	return s.mutate(draftID, func(d *intake.Draft) error {
		return d.Back()
	})
}

func (s *intakeService) mutate(draftID string, fn func(*intake.Draft) error) (*intake.Draft, error) {
	draft, err := s.GetDraft(draftID)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := s.save(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Quote computes the displayed running total for the draft. Same calculator
// as submission, so the preview always matches the persisted total.
func (s *intakeService) Quote(draftID string) (int, error) {
	draft, err := s.GetDraft(draftID)
	if err != nil {
		return 0, err
	}
	return s.quoteDraft(draft)
}

func (s *intakeService) quoteDraft(draft *intake.Draft) (int, error) {
	settings, err := s.settingsService.Get()
	if err != nil {
		return 0, err
	}
	catalog, err := s.catalogService.GetActiveServices()
	if err != nil {
		return 0, err
	}
	return pricing.Total(draft.OrderType, draft.ServiceSpeed, draft.WeightKg, draft.Quantities, *settings, catalog), nil
}

// Submit turns the draft into a persisted order with price/name snapshots and
// one initial history entry, then marks the draft submitted. On any
// persistence failure the draft stays on the contact step.
func (s *intakeService) Submit(draftID string, userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrLoginRequired
	}

	draft, err := s.GetDraft(draftID)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID {
		return nil, ErrLoginRequired
	}
	if err := draft.ValidateForSubmit(); err != nil {
		return nil, err
	}

	settings, err := s.settingsService.Get()
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalogService.GetActiveServices()
	if err != nil {
		return nil, err
	}

	total := pricing.Total(draft.OrderType, draft.ServiceSpeed, draft.WeightKg, draft.Quantities, *settings, catalog)

	itemsDetail := ""
	if len(draft.ItemsDetail) > 0 {
		if b, jsonErr := json.Marshal(draft.ItemsDetail); jsonErr == nil {
			itemsDetail = string(b)
		}
	}

	order := &models.Order{
		UserID:       userID,
		OrderType:    string(draft.OrderType),
		ServiceSpeed: string(draft.ServiceSpeed),
		WeightKg:     draft.WeightKg,
		ItemsDetail:  itemsDetail,
		Subtotal:     total,
		Total:        total,
		Status:       string(models.StatusPending),
		CustomerName: draft.CustomerName,
		WhatsApp:     draft.WhatsApp,
		Address:      draft.Location.Address,
		Locality:     draft.Location.Locality,
		City:         draft.Location.City,
		Latitude:     draft.Location.Latitude,
		Longitude:    draft.Location.Longitude,
		Notes:        draft.Notes,
		Items:        snapshotItems(draft, catalog),
	}

	if err := s.orderService.CreateOrder(order); err != nil {
		return nil, err
	}

	draft.MarkSubmitted()
	if err := s.save(draft); err != nil {
		log.Printf("Warning: failed to persist submitted draft %s: %v", draft.ID, err)
	}
	return order, nil
}

// snapshotItems copies name and effective unit price from the catalog into
// order item rows, so later catalog edits never change this order.
func snapshotItems(draft *intake.Draft, catalog []models.PlatformService) []models.OrderItem {
	if draft.OrderType != models.OrderSatuan {
		return nil
	}
	var items []models.OrderItem
	for _, svc := range catalog {
		qty := draft.Quantities[svc.ID]
		if qty <= 0 {
			continue
		}
		unit := pricing.UnitPrice(svc.Price, draft.ServiceSpeed)
		items = append(items, models.OrderItem{
			ServiceID:  svc.ID,
			Name:       svc.Name,
			UnitPrice:  unit,
			Quantity:   qty,
			TotalPrice: qty * unit,
		})
	}
	return items
}
