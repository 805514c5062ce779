package repository

import (
	"errors"

	"smart-bed-allocation/internal/domain/entity"
	domainRepo "smart-bed-allocation/internal/domain/repository"

	"gorm.io/gorm"
)

type hospitalRepository struct{}

func NewHospitalRepository() domainRepo.HospitalRepository {
	return &hospitalRepository{}
}

func (r *hospitalRepository) FindByName(db *gorm.DB, name string) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := db.Where("name = ?", name).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindByNameWithPatients(db *gorm.DB, name string) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := db.Preload("Patients").Where("name = ?", name).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindByID(db *gorm.DB, id uint) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := db.Where("id = ?", id).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindAllWithPatients(db *gorm.DB) ([]entity.Hospital, error) {
	var hospitals []entity.Hospital
	err := db.Preload("Patients").Order("name").Find(&hospitals).Error
	if err != nil {
		return nil, err
	}
	return hospitals, nil
}

// ListWithAvailableBeds projects the candidate set for the distance ranker:
// name, location and bed counts of every hospital with a free bed.
func (r *hospitalRepository) ListWithAvailableBeds(db *gorm.DB) ([]entity.Hospital, error) {
	var hospitals []entity.Hospital
	err := db.Select("id", "name", "latitude", "longitude", "available_beds", "total_beds").
		Where("available_beds > 0").
		Find(&hospitals).Error
	if err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *hospitalRepository) Create(db *gorm.DB, hospital *entity.Hospital) error {
	return db.Create(hospital).Error
}

// ReserveBed is the admission-control gate: the available_beds > 0 predicate
// is re-checked by the UPDATE itself, so two allocations cannot both take the
// last bed. RowsAffected 0 means the precondition no longer holds.
func (r *hospitalRepository) ReserveBed(db *gorm.DB, name string) (int64, error) {
	result := db.Model(&entity.Hospital{}).
		Where("name = ? AND available_beds > 0", name).
		Updates(map[string]interface{}{
			"available_beds": gorm.Expr("available_beds - 1"),
			"occupied_beds":  gorm.Expr("occupied_beds + 1"),
		})
	return result.RowsAffected, result.Error
}

func (r *hospitalRepository) ReleaseBed(db *gorm.DB, name string) (int64, error) {
	result := db.Model(&entity.Hospital{}).
		Where("name = ? AND occupied_beds > 0", name).
		Updates(map[string]interface{}{
			"available_beds": gorm.Expr("available_beds + 1"),
			"occupied_beds":  gorm.Expr("occupied_beds - 1"),
		})
	return result.RowsAffected, result.Error
}

// UpdateBedCounts applies a manual override of the counters. The subquery
// guard rejects the write when the implied occupancy would undercut the
// actual roster, even if an allocation landed between the caller's read and
// this update.
func (r *hospitalRepository) UpdateBedCounts(db *gorm.DB, name string, availableBeds, occupiedBeds int) (int64, error) {
	result := db.Model(&entity.Hospital{}).
		Where("name = ? AND (SELECT COUNT(*) FROM admissions WHERE admissions.hospital_id = hospitals.id) <= ?", name, occupiedBeds).
		Updates(map[string]interface{}{
			"available_beds": availableBeds,
			"occupied_beds":  occupiedBeds,
		})
	return result.RowsAffected, result.Error
}

func (r *hospitalRepository) RepairFields(db *gorm.DB, id uint, fields map[string]interface{}) error {
	return db.Model(&entity.Hospital{}).Where("id = ?", id).Updates(fields).Error
}
