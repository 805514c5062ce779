package repository

import (
	"errors"

	"smart-bed-allocation/internal/domain/entity"
	domainRepo "smart-bed-allocation/internal/domain/repository"

	"gorm.io/gorm"
)

type admissionRepository struct{}

func NewAdmissionRepository() domainRepo.AdmissionRepository {
	return &admissionRepository{}
}

func (r *admissionRepository) Create(db *gorm.DB, admission *entity.Admission) error {
	return db.Create(admission).Error
}

func (r *admissionRepository) FindByHospitalAndPatient(db *gorm.DB, hospitalID uint, patientName, phone string) (*entity.Admission, error) {
	var admission entity.Admission
	err := db.Where("hospital_id = ? AND patient_name = ? AND phone = ?", hospitalID, patientName, phone).
		First(&admission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admission, nil
}

func (r *admissionRepository) FindByHospital(db *gorm.DB, hospitalID uint) ([]entity.Admission, error) {
	var admissions []entity.Admission
	err := db.Where("hospital_id = ?", hospitalID).
		Order("admission_date DESC").
		Find(&admissions).Error
	if err != nil {
		return nil, err
	}
	return admissions, nil
}

func (r *admissionRepository) CountByHospital(db *gorm.DB, hospitalID uint) (int64, error) {
	var count int64
	err := db.Model(&entity.Admission{}).Where("hospital_id = ?", hospitalID).Count(&count).Error
	return count, err
}

// DeleteByHospitalAndPatient removes the roster row conditionally. Zero rows
// means a concurrent discharge already removed the patient.
func (r *admissionRepository) DeleteByHospitalAndPatient(db *gorm.DB, hospitalID uint, patientName, phone string) (int64, error) {
	result := db.Where("hospital_id = ? AND patient_name = ? AND phone = ?", hospitalID, patientName, phone).
		Delete(&entity.Admission{})
	return result.RowsAffected, result.Error
}
