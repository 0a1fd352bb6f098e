package geo

import "testing"

func TestHaversineKm_ZeroDistance(t *testing.T) {
	d := HaversineKm(-6.2, 106.8, -6.2, 106.8)
	if d < 0 || d > 1e-9 {
		t.Fatalf("zero distance expected ~0, got %v", d)
	}
}

func TestHaversineKm_JakartaBandung(t *testing.T) {
	// Jakarta to Bandung is roughly 120km great-circle
	d := HaversineKm(-6.2088, 106.8456, -6.9175, 107.6191)
	if d < 100 || d > 140 {
		t.Fatalf("Jakarta-Bandung distance = %v km, want ~120", d)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := HaversineKm(-6.2088, 106.8456, -7.2575, 112.7521)
	b := HaversineKm(-7.2575, 112.7521, -6.2088, 106.8456)
	if diff := a - b; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
}
