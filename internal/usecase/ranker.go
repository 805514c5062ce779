package usecase

import (
	"sort"

	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/domain/entity"
	"smart-bed-allocation/pkg/geo"

	"github.com/sirupsen/logrus"
)

// nearestWithinRadius ranks a snapshot of bed-having hospitals by geodesic
// distance from the patient and returns the single best candidate inside the
// radius, or nil when none qualifies. Distance is the primary key; among
// equidistant hospitals the one with more free beds wins. Hospitals without
// usable coordinates are skipped with a warning, never treated as fatal.
// Pure over its inputs: no storage access, no mutation.
func nearestWithinRadius(log *logrus.Logger, hospitals []entity.Hospital, latitude, longitude, radiusKm float64) *dto.NearestHospitalResponse {
	type candidate struct {
		name          string
		distanceKm    float64
		availableBeds int
		totalBeds     int
	}

	candidates := make([]candidate, 0, len(hospitals))
	for _, hospital := range hospitals {
		if !hospital.HasAvailableBeds() {
			continue
		}
		if !hospital.HasLocation() {
			log.Warnf("Hospital %s has invalid location data, skipping", hospital.Name)
			continue
		}

		distance := geo.DistanceKm(latitude, longitude, hospital.Latitude, hospital.Longitude)
		if distance > radiusKm {
			continue
		}

		candidates = append(candidates, candidate{
			name:          hospital.Name,
			distanceKm:    distance,
			availableBeds: hospital.AvailableBeds,
			totalBeds:     hospital.TotalBeds,
		})
	}

	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distanceKm != candidates[j].distanceKm {
			return candidates[i].distanceKm < candidates[j].distanceKm
		}
		return candidates[i].availableBeds > candidates[j].availableBeds
	})

	best := candidates[0]
	return &dto.NearestHospitalResponse{
		HospitalName:   best.name,
		DistanceKm:     best.distanceKm,
		AvailableBeds:  best.availableBeds,
		TotalBeds:      best.totalBeds,
		SearchRadiusKm: radiusKm,
	}
}
