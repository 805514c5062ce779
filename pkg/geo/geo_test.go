package geo

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		expectedKm float64
		toleranceKm float64
	}{
		{"Same point", 12.9716, 77.5946, 12.9716, 77.5946, 0, 0.001},
		{"Bangalore center to General Hospital", 12.9716, 77.5946, 12.9200, 77.6200, 6.4, 0.5},
		{"Bangalore center to Medical Center", 12.9716, 77.5946, 13.0200, 77.5100, 10.6, 0.5},
		{"Bangalore to Chennai", 12.9716, 77.5946, 13.0827, 80.2707, 290, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expectedKm) > tt.toleranceKm {
				t.Errorf("Expected ~%.1fkm, got %.2fkm", tt.expectedKm, got)
			}
		})
	}
}

func TestDistanceKmSymmetry(t *testing.T) {
	forward := DistanceKm(12.9716, 77.5946, 13.0200, 77.5100)
	backward := DistanceKm(13.0200, 77.5100, 12.9716, 77.5946)

	if math.Abs(forward-backward) > 1e-9 {
		t.Errorf("Expected symmetric distance, got %.9f vs %.9f", forward, backward)
	}
}
