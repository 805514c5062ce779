package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/domain/entity"
)

func (f *engineFixture) allocate(t *testing.T, hospitalName, patientName, phone string) *dto.BookingConfirmation {
	t.Helper()
	confirmation, err := f.allocation.AllocateBed(context.Background(), &dto.AllocateBedRequest{
		PatientName:  patientName,
		Phone:        phone,
		Symptoms:     "fever",
		HospitalName: hospitalName,
	})
	if err != nil {
		t.Fatalf("Failed to allocate bed for %s: %v", patientName, err)
	}
	return confirmation
}

func TestDischargePatient(t *testing.T) {
	f := newEngineFixture(t)
	f.seedHospital(t, entity.Hospital{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 100, AvailableBeds: 100})
	confirmation := f.allocate(t, "City Hospital", "Asha Rao", "9876543210")

	err := f.discharge.DischargePatient(context.Background(), "City Hospital", "Asha Rao", "9876543210")
	if err != nil {
		t.Fatalf("Expected discharge to succeed, got error: %v", err)
	}

	hospital := f.loadHospital(t, "City Hospital")
	if hospital.AvailableBeds != 100 || hospital.OccupiedBeds != 0 {
		t.Errorf("Expected counters restored to 100/0, got %d/%d", hospital.AvailableBeds, hospital.OccupiedBeds)
	}
	if len(hospital.Patients) != 0 {
		t.Errorf("Expected empty roster, got %d entries", len(hospital.Patients))
	}

	var booking entity.Booking
	if err := f.db.Where("id = ?", confirmation.BookingID).First(&booking).Error; err != nil {
		t.Fatalf("Expected ledger entry to survive discharge, got error: %v", err)
	}
	if !booking.IsDischarged() {
		t.Errorf("Expected ledger entry transitioned to Discharged, got %s", booking.Status)
	}
	if booking.DischargeDate == nil {
		t.Error("Expected discharge date to be stamped")
	}

	if f.availability.published["City Hospital"] != 100 {
		t.Errorf("Expected published availability 100, got %d", f.availability.published["City Hospital"])
	}
}

func TestDischargePatientHospitalNotFound(t *testing.T) {
	f := newEngineFixture(t)

	err := f.discharge.DischargePatient(context.Background(), "Ghost Hospital", "Asha Rao", "9876543210")
	if !errors.Is(err, ErrHospitalNotFound) {
		t.Errorf("Expected ErrHospitalNotFound, got %v", err)
	}
}

func TestDischargePatientNotAdmitted(t *testing.T) {
	f := newEngineFixture(t)
	f.seedHospital(t, entity.Hospital{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 100, AvailableBeds: 100})

	err := f.discharge.DischargePatient(context.Background(), "City Hospital", "Asha Rao", "9876543210")
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound, got %v", err)
	}
}

func TestDischargePatientTwice(t *testing.T) {
	f := newEngineFixture(t)
	f.seedHospital(t, entity.Hospital{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 100, AvailableBeds: 100})
	f.allocate(t, "City Hospital", "Asha Rao", "9876543210")

	if err := f.discharge.DischargePatient(context.Background(), "City Hospital", "Asha Rao", "9876543210"); err != nil {
		t.Fatalf("Expected first discharge to succeed, got error: %v", err)
	}

	err := f.discharge.DischargePatient(context.Background(), "City Hospital", "Asha Rao", "9876543210")
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Expected ErrPatientNotFound on repeat discharge, got %v", err)
	}

	hospital := f.loadHospital(t, "City Hospital")
	if hospital.AvailableBeds != 100 {
		t.Errorf("Expected repeat discharge to leave counters at 100, got %d", hospital.AvailableBeds)
	}
}

func TestDischargePatientWithoutLedgerEntry(t *testing.T) {
	f := newEngineFixture(t)
	hospital := f.seedHospital(t, entity.Hospital{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 100, AvailableBeds: 99, OccupiedBeds: 1})

	// Roster entry with no matching active ledger entry: the divergence is
	// tolerated, the discharge proceeds on the roster alone
	admission := entity.Admission{
		HospitalID:    hospital.ID,
		PatientName:   "Asha Rao",
		Phone:         "9876543210",
		AdmissionDate: time.Now(),
	}
	if err := f.db.Create(&admission).Error; err != nil {
		t.Fatalf("Failed to seed admission: %v", err)
	}

	err := f.discharge.DischargePatient(context.Background(), "City Hospital", "Asha Rao", "9876543210")
	if err != nil {
		t.Fatalf("Expected discharge without ledger entry to succeed, got error: %v", err)
	}

	reloaded := f.loadHospital(t, "City Hospital")
	if reloaded.AvailableBeds != 100 || reloaded.OccupiedBeds != 0 {
		t.Errorf("Expected counters 100/0, got %d/%d", reloaded.AvailableBeds, reloaded.OccupiedBeds)
	}
}

func TestAllocateDischargeLifecycle(t *testing.T) {
	f := newEngineFixture(t)
	f.seedHospital(t, entity.Hospital{Name: "General Hospital", Latitude: 12.9200, Longitude: 77.6200, TotalBeds: 150, AvailableBeds: 150})

	f.allocate(t, "General Hospital", "Asha Rao", "9876543210")
	f.allocate(t, "General Hospital", "Ravi Kumar", "9123456789")

	if err := f.discharge.DischargePatient(context.Background(), "General Hospital", "Asha Rao", "9876543210"); err != nil {
		t.Fatalf("Expected discharge to succeed, got error: %v", err)
	}

	// Re-admission after discharge is a fresh ledger entry
	f.allocate(t, "General Hospital", "Asha Rao", "9876543210")

	history, err := f.booking.GetPatientBookings(context.Background(), "Asha Rao", "9876543210")
	if err != nil {
		t.Fatalf("Expected booking history, got error: %v", err)
	}
	if history.Total != 2 {
		t.Fatalf("Expected 2 ledger entries for patient, got %d", history.Total)
	}

	active := 0
	for _, booking := range history.Bookings {
		if booking.Status == string(entity.BookingStatusBooked) {
			active++
		}
	}
	if active != 1 {
		t.Errorf("Expected exactly one active ledger entry, got %d", active)
	}

	hospital := f.loadHospital(t, "General Hospital")
	if hospital.AvailableBeds != 148 || hospital.OccupiedBeds != 2 {
		t.Errorf("Expected counters 148/2, got %d/%d", hospital.AvailableBeds, hospital.OccupiedBeds)
	}
	if !hospital.CountersConsistent() {
		t.Errorf("Expected consistent counters, got %d/%d/%d with %d patients",
			hospital.TotalBeds, hospital.AvailableBeds, hospital.OccupiedBeds, len(hospital.Patients))
	}
}
