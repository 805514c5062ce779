package dto

import "time"

// Request DTOs

type UpdateBedCountRequest struct {
	AvailableBeds *int `json:"available_beds" validate:"required,gte=0"`
}

type DischargeRequest struct {
	PatientName string `json:"patient_name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
}

// Response DTOs

type AdmissionResponse struct {
	PatientName   string    `json:"patient_name"`
	Phone         string    `json:"phone"`
	Symptoms      string    `json:"symptoms"`
	AdmissionDate time.Time `json:"admission_date"`
}

type HospitalResponse struct {
	Name          string              `json:"name"`
	Latitude      float64             `json:"latitude"`
	Longitude     float64             `json:"longitude"`
	TotalBeds     int                 `json:"total_beds"`
	AvailableBeds int                 `json:"available_beds"`
	OccupiedBeds  int                 `json:"occupied_beds"`
	OccupancyRate float64             `json:"occupancy_rate"`
	Patients      []AdmissionResponse `json:"patients,omitempty"`
}

type HospitalListResponse struct {
	Hospitals []HospitalResponse `json:"hospitals"`
	Total     int                `json:"total"`
}

type BedAvailabilityResponse struct {
	HospitalName  string `json:"hospital_name"`
	AvailableBeds int    `json:"available_beds"`
}

type ReconciliationResponse struct {
	HospitalsScanned  int `json:"hospitals_scanned"`
	HospitalsRepaired int `json:"hospitals_repaired"`
}
