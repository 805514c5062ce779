package usecase

import (
	"context"
	"errors"
	"testing"

	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/domain/entity"
)

func TestFindNearestHospital(t *testing.T) {
	f := newEngineFixture(t)
	f.seedHospital(t, entity.Hospital{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 100, AvailableBeds: 100})
	f.seedHospital(t, entity.Hospital{Name: "General Hospital", Latitude: 12.9200, Longitude: 77.6200, TotalBeds: 150, AvailableBeds: 150})
	f.seedHospital(t, entity.Hospital{Name: "Medical Center", Latitude: 13.0200, Longitude: 77.5100, TotalBeds: 80, AvailableBeds: 0, OccupiedBeds: 80})

	nearest, err := f.allocation.FindNearestHospital(context.Background(), &dto.SearchHospitalRequest{
		Latitude:  12.9716,
		Longitude: 77.5946,
		RadiusKm:  10,
	})
	if err != nil {
		t.Fatalf("Expected nearest hospital, got error: %v", err)
	}
	if nearest.HospitalName != "City Hospital" {
		t.Errorf("Expected City Hospital, got %s", nearest.HospitalName)
	}
	if nearest.SearchRadiusKm != 10 {
		t.Errorf("Expected search radius 10, got %.1f", nearest.SearchRadiusKm)
	}
}

func TestFindNearestHospitalRadiusValidation(t *testing.T) {
	f := newEngineFixture(t)

	for _, radius := range []float64{4.9, 0, -1, 50.1, 1000} {
		_, err := f.allocation.FindNearestHospital(context.Background(), &dto.SearchHospitalRequest{
			Latitude:  12.9716,
			Longitude: 77.5946,
			RadiusKm:  radius,
		})
		if !errors.Is(err, ErrInvalidSearchRadius) {
			t.Errorf("Radius %.1f: expected ErrInvalidSearchRadius, got %v", radius, err)
		}
	}
}

func TestFindNearestHospitalFallbackRadius(t *testing.T) {
	f := newEngineFixture(t)
	// ~10.6km from the patient, outside the requested 5km radius
	f.seedHospital(t, entity.Hospital{Name: "Medical Center", Latitude: 13.0200, Longitude: 77.5100, TotalBeds: 80, AvailableBeds: 80})

	nearest, err := f.allocation.FindNearestHospital(context.Background(), &dto.SearchHospitalRequest{
		Latitude:  12.9716,
		Longitude: 77.5946,
		RadiusKm:  5,
	})
	if err != nil {
		t.Fatalf("Expected fallback search to succeed, got error: %v", err)
	}
	if nearest.HospitalName != "Medical Center" {
		t.Errorf("Expected Medical Center, got %s", nearest.HospitalName)
	}
	// First fallback radius that succeeds is reported, not the requested one
	if nearest.SearchRadiusKm != 20 {
		t.Errorf("Expected search radius 20 after fallback, got %.1f", nearest.SearchRadiusKm)
	}
}

func TestFindNearestHospitalNoneInRange(t *testing.T) {
	f := newEngineFixture(t)
	// ~290km away, beyond the widest fallback radius
	f.seedHospital(t, entity.Hospital{Name: "Chennai General", Latitude: 13.0827, Longitude: 80.2707, TotalBeds: 100, AvailableBeds: 100})

	_, err := f.allocation.FindNearestHospital(context.Background(), &dto.SearchHospitalRequest{
		Latitude:  12.9716,
		Longitude: 77.5946,
		RadiusKm:  5,
	})
	if !errors.Is(err, ErrNoHospitalInRange) {
		t.Errorf("Expected ErrNoHospitalInRange, got %v", err)
	}
}

func TestAllocateBed(t *testing.T) {
	f := newEngineFixture(t)
	f.seedHospital(t, entity.Hospital{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 100, AvailableBeds: 100})

	confirmation, err := f.allocation.AllocateBed(context.Background(), &dto.AllocateBedRequest{
		PatientName:  "Asha Rao",
		Phone:        "9876543210",
		Symptoms:     "fever",
		HospitalName: "City Hospital",
	})
	if err != nil {
		t.Fatalf("Expected allocation to succeed, got error: %v", err)
	}
	if confirmation.HospitalName != "City Hospital" || confirmation.PatientName != "Asha Rao" {
		t.Errorf("Unexpected confirmation: %+v", confirmation)
	}

	hospital := f.loadHospital(t, "City Hospital")
	if hospital.AvailableBeds != 99 || hospital.OccupiedBeds != 1 {
		t.Errorf("Expected counters 99/1, got %d/%d", hospital.AvailableBeds, hospital.OccupiedBeds)
	}
	if len(hospital.Patients) != 1 || !hospital.Patients[0].Matches("Asha Rao", "9876543210") {
		t.Errorf("Expected roster entry for Asha Rao, got %+v", hospital.Patients)
	}

	var booking entity.Booking
	if err := f.db.Where("id = ?", confirmation.BookingID).First(&booking).Error; err != nil {
		t.Fatalf("Expected ledger entry, got error: %v", err)
	}
	if !booking.IsActive() {
		t.Errorf("Expected active ledger entry, got status %s", booking.Status)
	}

	if f.availability.published["City Hospital"] != 99 {
		t.Errorf("Expected published availability 99, got %d", f.availability.published["City Hospital"])
	}
}

func TestAllocateBedHospitalNotFound(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.allocation.AllocateBed(context.Background(), &dto.AllocateBedRequest{
		PatientName:  "Asha Rao",
		Phone:        "9876543210",
		Symptoms:     "fever",
		HospitalName: "Ghost Hospital",
	})
	if !errors.Is(err, ErrHospitalNotFound) {
		t.Errorf("Expected ErrHospitalNotFound, got %v", err)
	}
}

func TestAllocateBedNoBedsAvailable(t *testing.T) {
	f := newEngineFixture(t)
	f.seedHospital(t, entity.Hospital{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 100, AvailableBeds: 0, OccupiedBeds: 100})

	_, err := f.allocation.AllocateBed(context.Background(), &dto.AllocateBedRequest{
		PatientName:  "Asha Rao",
		Phone:        "9876543210",
		Symptoms:     "fever",
		HospitalName: "City Hospital",
	})
	if !errors.Is(err, ErrNoBedsAvailable) {
		t.Errorf("Expected ErrNoBedsAvailable, got %v", err)
	}

	// A rejected allocation leaves no ledger entry behind
	var count int64
	f.db.Model(&entity.Booking{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected empty ledger, got %d entries", count)
	}
}

func TestAllocateBedDuplicateAdmission(t *testing.T) {
	f := newEngineFixture(t)
	f.seedHospital(t, entity.Hospital{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 100, AvailableBeds: 100})

	req := &dto.AllocateBedRequest{
		PatientName:  "Asha Rao",
		Phone:        "9876543210",
		Symptoms:     "fever",
		HospitalName: "City Hospital",
	}

	if _, err := f.allocation.AllocateBed(context.Background(), req); err != nil {
		t.Fatalf("Expected first allocation to succeed, got error: %v", err)
	}

	_, err := f.allocation.AllocateBed(context.Background(), req)
	if !errors.Is(err, ErrAlreadyAdmitted) {
		t.Errorf("Expected ErrAlreadyAdmitted, got %v", err)
	}

	hospital := f.loadHospital(t, "City Hospital")
	if hospital.AvailableBeds != 99 {
		t.Errorf("Expected duplicate rejection to leave counters at 99, got %d", hospital.AvailableBeds)
	}
}

func TestAllocateBedSamePatientDifferentHospitals(t *testing.T) {
	f := newEngineFixture(t)
	f.seedHospital(t, entity.Hospital{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 100, AvailableBeds: 100})
	f.seedHospital(t, entity.Hospital{Name: "General Hospital", Latitude: 12.9200, Longitude: 77.6200, TotalBeds: 150, AvailableBeds: 150})

	for _, name := range []string{"City Hospital", "General Hospital"} {
		_, err := f.allocation.AllocateBed(context.Background(), &dto.AllocateBedRequest{
			PatientName:  "Asha Rao",
			Phone:        "9876543210",
			Symptoms:     "fever",
			HospitalName: name,
		})
		if err != nil {
			t.Fatalf("Expected allocation at %s to succeed, got error: %v", name, err)
		}
	}
}

func TestAllocateBedExhaustsCapacity(t *testing.T) {
	f := newEngineFixture(t)
	f.seedHospital(t, entity.Hospital{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 2, AvailableBeds: 1, OccupiedBeds: 1})

	if _, err := f.allocation.AllocateBed(context.Background(), &dto.AllocateBedRequest{
		PatientName:  "Asha Rao",
		Phone:        "9876543210",
		Symptoms:     "fever",
		HospitalName: "City Hospital",
	}); err != nil {
		t.Fatalf("Expected last bed to be allocated, got error: %v", err)
	}

	_, err := f.allocation.AllocateBed(context.Background(), &dto.AllocateBedRequest{
		PatientName:  "Ravi Kumar",
		Phone:        "9123456789",
		Symptoms:     "cough",
		HospitalName: "City Hospital",
	})
	if !errors.Is(err, ErrNoBedsAvailable) {
		t.Errorf("Expected ErrNoBedsAvailable after last bed taken, got %v", err)
	}

	hospital := f.loadHospital(t, "City Hospital")
	if hospital.AvailableBeds != 0 || hospital.OccupiedBeds != 2 {
		t.Errorf("Expected counters 0/2, got %d/%d", hospital.AvailableBeds, hospital.OccupiedBeds)
	}
}
