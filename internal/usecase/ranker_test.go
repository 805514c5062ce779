package usecase

import (
	"testing"

	"smart-bed-allocation/internal/domain/entity"
)

func TestNearestWithinRadius(t *testing.T) {
	log := newTestLogger()

	// Patient at central Bangalore
	patientLat, patientLon := 12.9716, 77.5946

	tests := []struct {
		name      string
		hospitals []entity.Hospital
		radiusKm  float64
		expected  string
	}{
		{
			name: "Closest hospital wins",
			hospitals: []entity.Hospital{
				{Name: "Far", Latitude: 13.0200, Longitude: 77.5100, TotalBeds: 80, AvailableBeds: 50},
				{Name: "Near", Latitude: 12.9750, Longitude: 77.5990, TotalBeds: 100, AvailableBeds: 1},
			},
			radiusKm: 50,
			expected: "Near",
		},
		{
			name: "Equidistant tie broken by more free beds",
			hospitals: []entity.Hospital{
				{Name: "Fewer Beds", Latitude: 12.9300, Longitude: 77.6000, TotalBeds: 100, AvailableBeds: 3},
				{Name: "More Beds", Latitude: 12.9300, Longitude: 77.6000, TotalBeds: 100, AvailableBeds: 10},
			},
			radiusKm: 50,
			expected: "More Beds",
		},
		{
			name: "Closer hospital without beds loses to farther one with beds",
			hospitals: []entity.Hospital{
				{Name: "Full Nearby", Latitude: 12.9750, Longitude: 77.5990, TotalBeds: 50, AvailableBeds: 0},
				{Name: "Open Farther", Latitude: 12.9200, Longitude: 77.6200, TotalBeds: 150, AvailableBeds: 10},
			},
			radiusKm: 50,
			expected: "Open Farther",
		},
		{
			name: "Hospital with missing coordinates is skipped",
			hospitals: []entity.Hospital{
				{Name: "No Location", Latitude: 0, Longitude: 0, TotalBeds: 100, AvailableBeds: 100},
				{Name: "Located", Latitude: 12.9200, Longitude: 77.6200, TotalBeds: 150, AvailableBeds: 10},
			},
			radiusKm: 50,
			expected: "Located",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nearestWithinRadius(log, tt.hospitals, patientLat, patientLon, tt.radiusKm)
			if got == nil {
				t.Fatalf("Expected hospital %s, got nil", tt.expected)
			}
			if got.HospitalName != tt.expected {
				t.Errorf("Expected hospital %s, got %s", tt.expected, got.HospitalName)
			}
		})
	}
}

func TestNearestWithinRadiusNoCandidates(t *testing.T) {
	log := newTestLogger()

	hospitals := []entity.Hospital{
		// ~290km away, outside any accepted radius
		{Name: "Chennai General", Latitude: 13.0827, Longitude: 80.2707, TotalBeds: 100, AvailableBeds: 50},
	}

	if got := nearestWithinRadius(log, hospitals, 12.9716, 77.5946, 50); got != nil {
		t.Errorf("Expected no candidate, got %s", got.HospitalName)
	}

	if got := nearestWithinRadius(log, nil, 12.9716, 77.5946, 50); got != nil {
		t.Errorf("Expected no candidate for empty set, got %s", got.HospitalName)
	}
}

func TestNearestWithinRadiusReportsRadiusAndDistance(t *testing.T) {
	log := newTestLogger()

	hospitals := []entity.Hospital{
		{Name: "General Hospital", Latitude: 12.9200, Longitude: 77.6200, TotalBeds: 150, AvailableBeds: 150},
	}

	got := nearestWithinRadius(log, hospitals, 12.9716, 77.5946, 10)
	if got == nil {
		t.Fatal("Expected a candidate")
	}
	if got.SearchRadiusKm != 10 {
		t.Errorf("Expected search radius 10, got %.1f", got.SearchRadiusKm)
	}
	if got.DistanceKm <= 0 || got.DistanceKm > 10 {
		t.Errorf("Expected distance within (0, 10], got %.2f", got.DistanceKm)
	}
	if got.AvailableBeds != 150 || got.TotalBeds != 150 {
		t.Errorf("Expected bed counts carried through, got %d/%d", got.AvailableBeds, got.TotalBeds)
	}
}
