package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStatus represents the lifecycle state of a ledger entry
type BookingStatus string

const (
	BookingStatusBooked     BookingStatus = "Booked"
	BookingStatusDischarged BookingStatus = "Discharged"
)

// Booking is an append-only ledger entry recording a bed reservation. Entries
// are never deleted; a discharge transitions the matching active entry to
// Discharged. The ledger is an audit trail independent of the live bed
// counters and is not consulted for capacity decisions.
type Booking struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	PatientName   string        `gorm:"type:varchar(255);not null;index:idx_bookings_patient" json:"patient_name"`
	Phone         string        `gorm:"type:varchar(20);not null;index:idx_bookings_patient" json:"phone"`
	Symptoms      string        `gorm:"type:text" json:"symptoms"`
	HospitalName  string        `gorm:"type:varchar(255);not null;index" json:"hospital_name"`
	Status        BookingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	BookingDate   time.Time     `gorm:"not null;index:,sort:desc" json:"booking_date"`
	DischargeDate *time.Time    `json:"discharge_date,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate assigns the booking id when the caller did not set one.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// IsActive reports whether the entry still holds a bed.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusBooked
}

// IsDischarged reports whether the entry has been released.
func (b *Booking) IsDischarged() bool {
	return b.Status == BookingStatusDischarged
}
