package repository

import (
	"smart-bed-allocation/internal/domain/entity"

	"gorm.io/gorm"
)

type AdmissionRepository interface {
	Create(db *gorm.DB, admission *entity.Admission) error
	FindByHospitalAndPatient(db *gorm.DB, hospitalID uint, patientName, phone string) (*entity.Admission, error)
	FindByHospital(db *gorm.DB, hospitalID uint) ([]entity.Admission, error)
	CountByHospital(db *gorm.DB, hospitalID uint) (int64, error)

	// DeleteByHospitalAndPatient removes the matching roster row and returns
	// the number of rows deleted, so a concurrent discharge of the same
	// patient is detected as zero rows.
	DeleteByHospitalAndPatient(db *gorm.DB, hospitalID uint, patientName, phone string) (int64, error)
}
