package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SearchHospitalRequest struct {
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
	RadiusKm  float64 `json:"radius_km" validate:"required,gte=5,lte=50"`
}

type AllocateBedRequest struct {
	PatientName  string `json:"patient_name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Symptoms     string `json:"symptoms" validate:"required"`
	HospitalName string `json:"hospital_name" validate:"required"`
}

// Response DTOs

type NearestHospitalResponse struct {
	HospitalName   string  `json:"hospital_name"`
	DistanceKm     float64 `json:"distance_km"`
	AvailableBeds  int     `json:"available_beds"`
	TotalBeds      int     `json:"total_beds"`
	SearchRadiusKm float64 `json:"search_radius_km"`
}

type BookingConfirmation struct {
	BookingID    uuid.UUID `json:"booking_id"`
	PatientName  string    `json:"patient_name"`
	HospitalName string    `json:"hospital_name"`
	Status       string    `json:"status"`
	BookingTime  time.Time `json:"booking_time"`
}
