package repository

import (
	"smart-bed-allocation/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *entity.Booking) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error)
	FindByPatient(db *gorm.DB, patientName, phone string) ([]entity.Booking, error)
	FindByHospital(db *gorm.DB, hospitalName string) ([]entity.Booking, error)

	// MarkDischarged transitions the active entry matching (patient, phone,
	// hospital) to Discharged and stamps the discharge date. Returns the
	// number of entries matched; zero is tolerated by the discharge engine
	// because the roster and the ledger may legitimately diverge.
	MarkDischarged(db *gorm.DB, patientName, phone, hospitalName string) (int64, error)
}
