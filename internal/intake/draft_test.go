package intake

import (
	"testing"

	"laundry_app/internal/models"
)

func resolvedDraft() *Draft {
	d := NewDraft("draft-1", 7)
	d.SetLocation(DefaultLocation())
	return d
}

func TestNext_BlockedWithoutLocation(t *testing.T) {
	d := NewDraft("draft-1", 7)
	if err := d.Next(); err != ErrLocationMissing {
		t.Fatalf("Next() without location: err = %v, want %v", err, ErrLocationMissing)
	}
	if d.Step != StepLocation {
		t.Fatalf("step advanced to %d despite missing location", d.Step)
	}
}

func TestNext_AdvancesWithFallbackLocation(t *testing.T) {
	d := resolvedDraft()
	if err := d.Next(); err != nil {
		t.Fatalf("Next() from location step: %v", err)
	}
	if d.Step != StepItems {
		t.Fatalf("step = %d, want %d", d.Step, StepItems)
	}
	// items -> contact is unconditional
	if err := d.Next(); err != nil {
		t.Fatalf("Next() from items step: %v", err)
	}
	if d.Step != StepContact {
		t.Fatalf("step = %d, want %d", d.Step, StepContact)
	}
}

func TestBack_NotPossibleAfterSubmit(t *testing.T) {
	d := resolvedDraft()
	d.MarkSubmitted()
	if err := d.Back(); err != ErrAlreadySubmitted {
		t.Fatalf("Back() after submit: err = %v, want %v", err, ErrAlreadySubmitted)
	}
	if err := d.Next(); err != ErrAlreadySubmitted {
		t.Fatalf("Next() after submit: err = %v, want %v", err, ErrAlreadySubmitted)
	}
}

func TestAdjustQuantity_NeverNegative(t *testing.T) {
	d := resolvedDraft()
	for i := 0; i < 5; i++ {
		d.AdjustQuantity(1, -1)
	}
	if q := d.Quantities[1]; q != 0 {
		t.Fatalf("quantity = %d after decrements from 0, want 0", q)
	}

	d.AdjustQuantity(1, 3)
	d.AdjustQuantity(1, -5)
	if q := d.Quantities[1]; q != 0 {
		t.Fatalf("quantity = %d, want clamped to 0", q)
	}
}

func TestAdjustWeight_FloorOne(t *testing.T) {
	d := resolvedDraft()
	d.AdjustWeight(-10)
	if d.WeightKg != 1 {
		t.Fatalf("weight = %d, want floor of 1", d.WeightKg)
	}
	d.AdjustWeight(2)
	if d.WeightKg != 3 {
		t.Fatalf("weight = %d, want 3", d.WeightKg)
	}
}

func TestSelectServiceSpeed_ExpressDisabled(t *testing.T) {
	d := resolvedDraft()
	if err := d.SelectServiceSpeed(models.SpeedExpress, false); err != ErrExpressDisabled {
		t.Fatalf("err = %v, want %v", err, ErrExpressDisabled)
	}
	if d.ServiceSpeed != models.SpeedRegular {
		t.Fatalf("speed changed to %s despite disabled express", d.ServiceSpeed)
	}

	if err := d.SelectServiceSpeed(models.SpeedExpress, true); err != nil {
		t.Fatalf("express with flag enabled: %v", err)
	}
	if d.ServiceSpeed != models.SpeedExpress {
		t.Fatalf("speed = %s, want express", d.ServiceSpeed)
	}
}

func TestValidateForSubmit_MissingContact(t *testing.T) {
	d := resolvedDraft()
	d.Next()
	d.Next()
	d.SetContact("", "", "")
	if err := d.ValidateForSubmit(); err != ErrNameWhatsAppRequired {
		t.Fatalf("err = %v, want %v", err, ErrNameWhatsAppRequired)
	}
	if d.Step != StepContact {
		t.Fatalf("step = %d, draft must stay on contact step", d.Step)
	}

	d.SetContact("Budi", "", "")
	if err := d.ValidateForSubmit(); err != ErrNameWhatsAppRequired {
		t.Fatalf("name only: err = %v, want %v", err, ErrNameWhatsAppRequired)
	}
}

func TestValidateForSubmit_MissingLocation(t *testing.T) {
	d := NewDraft("draft-1", 7)
	d.SetContact("Budi", "6281234567890", "")
	if err := d.ValidateForSubmit(); err != ErrLocationMissing {
		t.Fatalf("err = %v, want %v", err, ErrLocationMissing)
	}
}

func TestValidateForSubmit_OK(t *testing.T) {
	d := resolvedDraft()
	d.SetContact("Budi", "6281234567890", "pagar hijau")
	if err := d.ValidateForSubmit(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
}

func TestMutationsIgnoredAfterSubmit(t *testing.T) {
	d := resolvedDraft()
	d.SetContact("Budi", "6281234567890", "")
	d.AdjustQuantity(1, 2)
	d.MarkSubmitted()

	d.AdjustQuantity(1, 5)
	d.AdjustWeight(5)
	d.SetContact("Lain", "000", "")
	if d.Quantities[1] != 2 || d.WeightKg != 1 || d.CustomerName != "Budi" {
		t.Fatal("submitted draft was mutated")
	}
	if err := d.SelectOrderType(models.OrderSatuan); err != ErrAlreadySubmitted {
		t.Fatalf("err = %v, want %v", err, ErrAlreadySubmitted)
	}
}
