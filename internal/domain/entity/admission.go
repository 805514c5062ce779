package entity

import (
	"time"
)

// Admission is one patient currently occupying a bed. The (hospital, name,
// phone) triple is unique: a patient cannot be admitted twice to the same
// hospital. Rows are created on allocation and deleted on discharge.
type Admission struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	HospitalID    uint      `gorm:"not null;uniqueIndex:idx_admissions_hospital_patient" json:"hospital_id"`
	PatientName   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_admissions_hospital_patient" json:"patient_name"`
	Phone         string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_admissions_hospital_patient" json:"phone"`
	Symptoms      string    `gorm:"type:text" json:"symptoms"`
	AdmissionDate time.Time `gorm:"not null" json:"admission_date"`

	// Relationships
	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (Admission) TableName() string {
	return "admissions"
}

// Matches reports whether this admission belongs to the given patient.
func (a *Admission) Matches(patientName, phone string) bool {
	return a.PatientName == patientName && a.Phone == phone
}
