package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID            uuid.UUID  `json:"id"`
	PatientName   string     `json:"patient_name"`
	Phone         string     `json:"phone"`
	Symptoms      string     `json:"symptoms"`
	HospitalName  string     `json:"hospital_name"`
	Status        string     `json:"status"`
	BookingDate   time.Time  `json:"booking_date"`
	DischargeDate *time.Time `json:"discharge_date,omitempty"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}
