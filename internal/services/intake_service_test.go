package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"laundry_app/internal/intake"
	"laundry_app/internal/models"
	"laundry_app/pkg/geocode"
)

type memDraftStore struct {
	m map[string][]byte
}

func newMemDraftStore() *memDraftStore {
	return &memDraftStore{m: map[string][]byte{}}
}

func (s *memDraftStore) SetDraft(draftID string, draft interface{}, ttl time.Duration) error {
	b, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	s.m[draftID] = b
	return nil
}

func (s *memDraftStore) GetDraft(draftID string, dest interface{}) error {
	b, ok := s.m[draftID]
	if !ok {
		return fmt.Errorf("draft not found")
	}
	return json.Unmarshal(b, dest)
}

func (s *memDraftStore) DeleteDraft(draftID string) error {
	delete(s.m, draftID)
	return nil
}

type stubSettingsService struct {
	settings models.SiteSettings
}

func (s *stubSettingsService) Get() (*models.SiteSettings, error) {
	copied := s.settings
	return &copied, nil
}

func (s *stubSettingsService) Update(*models.SiteSettings) error { return nil }

type stubCatalogService struct {
	catalog []models.PlatformService
}

func (s *stubCatalogService) CreateService(*models.PlatformService) error          { return nil }
func (s *stubCatalogService) GetService(uint) (*models.PlatformService, error)     { return nil, nil }
func (s *stubCatalogService) GetAllServices() ([]models.PlatformService, error)    { return s.catalog, nil }
func (s *stubCatalogService) GetActiveServices() ([]models.PlatformService, error) { return s.catalog, nil }
func (s *stubCatalogService) UpdateService(*models.PlatformService) error          { return nil }
func (s *stubCatalogService) ToggleActive(uint) (*models.PlatformService, error)   { return nil, nil }
func (s *stubCatalogService) DeleteService(uint) error                             { return nil }

type stubGeocoder struct {
	addr *geocode.Address
	err  error
}

func (g *stubGeocoder) Reverse(lat, lng float64) (*geocode.Address, error) {
	return g.addr, g.err
}

func intakeSettings() models.SiteSettings {
	return models.SiteSettings{
		ID:                models.SettingsID,
		RegularPricePerKg: 7000,
		ExpressPricePerKg: 10000,
		ExpressEnabled:    true,
	}
}

func intakeCatalog() []models.PlatformService {
	return []models.PlatformService{
		{ID: 1, Name: "Kemeja", Price: 5000, UnitType: "pcs", IsActive: true},
		{ID: 2, Name: "Handuk", Price: 8000, UnitType: "pcs", IsActive: true},
	}
}

func newTestIntakeService(t *testing.T, orderService OrderService, geocoder Geocoder, settings models.SiteSettings) (IntakeService, *memDraftStore) {
	t.Helper()
	store := newMemDraftStore()
	svc := NewIntakeService(
		store,
		geocoder,
		orderService,
		&stubSettingsService{settings: settings},
		&stubCatalogService{catalog: intakeCatalog()},
		time.Hour,
	)
	return svc, store
}

func TestResolveLocation_NoCoordsUsesFallback(t *testing.T) {
	svc, _ := newTestIntakeService(t, nil, &stubGeocoder{err: errors.New("unreachable")}, intakeSettings())

	draft, err := svc.StartDraft(7)
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}

	draft, err = svc.ResolveLocation(draft.ID, nil, nil)
	if err != nil {
		t.Fatalf("ResolveLocation: %v", err)
	}
	if draft.Location == nil {
		t.Fatal("location not set")
	}
	if *draft.Location != intake.DefaultLocation() {
		t.Fatalf("location = %+v, want fallback", draft.Location)
	}
}

func TestResolveLocation_GeocodeFailureFallsBack(t *testing.T) {
	svc, _ := newTestIntakeService(t, nil, &stubGeocoder{err: errors.New("timeout")}, intakeSettings())

	draft, err := svc.StartDraft(7)
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}

	lat, lng := -6.3, 106.9
	draft, err = svc.ResolveLocation(draft.ID, &lat, &lng)
	if err != nil {
		t.Fatalf("ResolveLocation: %v", err)
	}
	if *draft.Location != intake.DefaultLocation() {
		t.Fatalf("location = %+v, want fallback after geocode failure", draft.Location)
	}
}

func TestResolveLocation_UsesGeocodedAddress(t *testing.T) {
	geocoder := &stubGeocoder{addr: &geocode.Address{
		DisplayName: "Jl. Asia Afrika, Sumur Bandung, Bandung",
		Locality:    "Sumur Bandung",
		City:        "Bandung",
	}}
	svc, _ := newTestIntakeService(t, nil, geocoder, intakeSettings())

	draft, err := svc.StartDraft(7)
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}

	lat, lng := -6.921, 107.607
	draft, err = svc.ResolveLocation(draft.ID, &lat, &lng)
	if err != nil {
		t.Fatalf("ResolveLocation: %v", err)
	}
	if draft.Location.Address != "Jl. Asia Afrika, Sumur Bandung, Bandung" {
		t.Fatalf("address = %q", draft.Location.Address)
	}
	if draft.Location.City != "Bandung" || draft.Location.Latitude != lat {
		t.Fatalf("location = %+v", draft.Location)
	}
}

func TestSelectServiceSpeed_ExpressGloballyDisabled(t *testing.T) {
	settings := intakeSettings()
	settings.ExpressEnabled = false
	svc, _ := newTestIntakeService(t, nil, nil, settings)

	draft, err := svc.StartDraft(7)
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}

	if _, err := svc.SelectServiceSpeed(draft.ID, string(models.SpeedExpress)); err != intake.ErrExpressDisabled {
		t.Fatalf("err = %v, want %v", err, intake.ErrExpressDisabled)
	}
}

func TestQuote_Kiloan(t *testing.T) {
	svc, _ := newTestIntakeService(t, nil, nil, intakeSettings())

	draft, err := svc.StartDraft(7)
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if _, err := svc.AdjustWeight(draft.ID, 2); err != nil {
		t.Fatalf("AdjustWeight: %v", err)
	}

	// 3kg regular at 7000/kg
	total, err := svc.Quote(draft.ID)
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if total != 21000 {
		t.Fatalf("total = %d, want 21000", total)
	}
}

func TestSubmit_SatuanExpressSnapshots(t *testing.T) {
	db := openTestDB(t)
	customer := createTestUser(t, db, string(models.RoleCustomer))
	orderService := newTestOrderService(t, db, nil, nil)
	svc, _ := newTestIntakeService(t, orderService, nil, intakeSettings())

	draft, err := svc.StartDraft(customer.ID)
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if _, err := svc.ResolveLocation(draft.ID, nil, nil); err != nil {
		t.Fatalf("ResolveLocation: %v", err)
	}
	if _, err := svc.SelectOrderType(draft.ID, string(models.OrderSatuan)); err != nil {
		t.Fatalf("SelectOrderType: %v", err)
	}
	if _, err := svc.SelectServiceSpeed(draft.ID, string(models.SpeedExpress)); err != nil {
		t.Fatalf("SelectServiceSpeed: %v", err)
	}
	if _, err := svc.AdjustQuantity(draft.ID, 1, 2); err != nil {
		t.Fatalf("AdjustQuantity kemeja: %v", err)
	}
	if _, err := svc.AdjustQuantity(draft.ID, 2, 1); err != nil {
		t.Fatalf("AdjustQuantity handuk: %v", err)
	}
	if _, err := svc.SetContact(draft.ID, "Budi", "6281234567890", ""); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	order, err := svc.Submit(draft.ID, customer.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// 2*2*5000 + 1*2*8000
	if order.Total != 36000 {
		t.Fatalf("total = %d, want 36000", order.Total)
	}

	stored, err := orderService.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("item snapshots = %d, want 2", len(stored.Items))
	}
	for _, item := range stored.Items {
		switch item.Name {
		case "Kemeja":
			if item.UnitPrice != 10000 || item.Quantity != 2 {
				t.Fatalf("kemeja snapshot = %+v", item)
			}
		case "Handuk":
			if item.UnitPrice != 16000 || item.Quantity != 1 {
				t.Fatalf("handuk snapshot = %+v", item)
			}
		default:
			t.Fatalf("unexpected snapshot %q", item.Name)
		}
	}

	entries, err := orderService.GetOrderHistory(order.ID)
	if err != nil {
		t.Fatalf("GetOrderHistory: %v", err)
	}
	if len(entries) != 1 || entries[0].Note != "Order dibuat" {
		t.Fatalf("initial history = %+v", entries)
	}
}

func TestSubmit_EmptyNameRejected(t *testing.T) {
	db := openTestDB(t)
	customer := createTestUser(t, db, string(models.RoleCustomer))
	orderService := newTestOrderService(t, db, nil, nil)
	svc, store := newTestIntakeService(t, orderService, nil, intakeSettings())

	draft, err := svc.StartDraft(customer.ID)
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if _, err := svc.ResolveLocation(draft.ID, nil, nil); err != nil {
		t.Fatalf("ResolveLocation: %v", err)
	}
	if _, err := svc.SetContact(draft.ID, "", "6281234567890", ""); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	if _, err := svc.Submit(draft.ID, customer.ID); err != intake.ErrNameWhatsAppRequired {
		t.Fatalf("err = %v, want %v", err, intake.ErrNameWhatsAppRequired)
	}

	// draft must remain un-submitted and unchanged
	var stored intake.Draft
	if err := store.GetDraft(draft.ID, &stored); err != nil {
		t.Fatalf("draft disappeared: %v", err)
	}
	if stored.Step == intake.StepSubmitted {
		t.Fatal("draft marked submitted despite validation error")
	}
}

func TestSubmit_MissingLocationRejected(t *testing.T) {
	svc, _ := newTestIntakeService(t, nil, nil, intakeSettings())

	draft, err := svc.StartDraft(7)
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if _, err := svc.SetContact(draft.ID, "Budi", "6281234567890", ""); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	if _, err := svc.Submit(draft.ID, 7); err != intake.ErrLocationMissing {
		t.Fatalf("err = %v, want %v", err, intake.ErrLocationMissing)
	}
}

func TestSubmit_RequiresLogin(t *testing.T) {
	svc, _ := newTestIntakeService(t, nil, nil, intakeSettings())

	draft, err := svc.StartDraft(7)
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}

	if _, err := svc.Submit(draft.ID, 0); err != ErrLoginRequired {
		t.Fatalf("anonymous submit: err = %v, want %v", err, ErrLoginRequired)
	}
	if _, err := svc.Submit(draft.ID, 99); err != ErrLoginRequired {
		t.Fatalf("wrong user submit: err = %v, want %v", err, ErrLoginRequired)
	}
}

func TestSubmit_SecondSubmitRejected(t *testing.T) {
	db := openTestDB(t)
	customer := createTestUser(t, db, string(models.RoleCustomer))
	orderService := newTestOrderService(t, db, nil, nil)
	svc, _ := newTestIntakeService(t, orderService, nil, intakeSettings())

	draft, err := svc.StartDraft(customer.ID)
	if err != nil {
		t.Fatalf("StartDraft: %v", err)
	}
	if _, err := svc.ResolveLocation(draft.ID, nil, nil); err != nil {
		t.Fatalf("ResolveLocation: %v", err)
	}
	if _, err := svc.SetContact(draft.ID, "Budi", "6281234567890", ""); err != nil {
		t.Fatalf("SetContact: %v", err)
	}

	if _, err := svc.Submit(draft.ID, customer.ID); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(draft.ID, customer.ID); err != intake.ErrAlreadySubmitted {
		t.Fatalf("second submit: err = %v, want %v", err, intake.ErrAlreadySubmitted)
	}
}
