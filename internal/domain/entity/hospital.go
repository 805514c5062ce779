package entity

import (
	"time"
)

// Hospital represents one hospital in the registry, including its live bed
// counters and the roster of currently admitted patients.
//
// Invariant after every committed operation:
//
//	AvailableBeds + OccupiedBeds == TotalBeds
//	len(Patients) == OccupiedBeds
//
// The hospital row is the unit of mutual exclusion: every mutation of the
// counters happens together with the matching roster change inside a single
// conditional transaction.
type Hospital struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	TotalBeds     int       `gorm:"not null;default:0" json:"total_beds"`
	AvailableBeds int       `gorm:"not null;default:0;index" json:"available_beds"`
	OccupiedBeds  int       `gorm:"not null;default:0" json:"occupied_beds"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patients []Admission `gorm:"foreignKey:HospitalID" json:"patients,omitempty"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

// HasLocation reports whether the hospital carries usable coordinates.
// A zero-valued coordinate pair is treated as missing location data.
func (h *Hospital) HasLocation() bool {
	return h.Latitude != 0 || h.Longitude != 0
}

// HasAvailableBeds reports whether at least one bed is free.
func (h *Hospital) HasAvailableBeds() bool {
	return h.AvailableBeds > 0
}

// CountersConsistent reports whether the bed counters agree with each other
// and with the loaded roster. Requires Patients to be preloaded.
func (h *Hospital) CountersConsistent() bool {
	return h.AvailableBeds >= 0 &&
		h.OccupiedBeds == len(h.Patients) &&
		h.AvailableBeds+h.OccupiedBeds == h.TotalBeds
}
