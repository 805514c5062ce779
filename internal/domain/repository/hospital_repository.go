package repository

import (
	"smart-bed-allocation/internal/domain/entity"

	"gorm.io/gorm"
)

// HospitalRepository is the storage surface of the hospital registry. The
// conditional methods (ReserveBed, ReleaseBed, UpdateBedCounts) re-check their
// precondition inside the UPDATE itself and report the matched row count, so
// callers can detect a concurrent mutation and abort their transaction.
type HospitalRepository interface {
	FindByName(db *gorm.DB, name string) (*entity.Hospital, error)
	FindByNameWithPatients(db *gorm.DB, name string) (*entity.Hospital, error)
	FindByID(db *gorm.DB, id uint) (*entity.Hospital, error)
	FindAllWithPatients(db *gorm.DB) ([]entity.Hospital, error)
	ListWithAvailableBeds(db *gorm.DB) ([]entity.Hospital, error)
	Create(db *gorm.DB, hospital *entity.Hospital) error

	// ReserveBed decrements available_beds and increments occupied_beds,
	// guarded by available_beds > 0. Returns the number of rows matched.
	ReserveBed(db *gorm.DB, name string) (int64, error)

	// ReleaseBed increments available_beds and decrements occupied_beds,
	// guarded by occupied_beds > 0. Returns the number of rows matched.
	ReleaseBed(db *gorm.DB, name string) (int64, error)

	// UpdateBedCounts sets both counters, guarded by the current roster size
	// not exceeding the implied occupancy. Returns the number of rows matched.
	UpdateBedCounts(db *gorm.DB, name string, availableBeds, occupiedBeds int) (int64, error)

	// RepairFields applies a minimal-diff set of column updates to one
	// hospital, used only by the reconciliation pass.
	RepairFields(db *gorm.DB, id uint, fields map[string]interface{}) error
}
