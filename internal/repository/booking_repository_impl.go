package repository

import (
	"errors"
	"time"

	"smart-bed-allocation/internal/domain/entity"
	domainRepo "smart-bed-allocation/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByPatient(db *gorm.DB, patientName, phone string) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("patient_name = ? AND phone = ?", patientName, phone).
		Order("booking_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByHospital(db *gorm.DB, hospitalName string) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("hospital_name = ?", hospitalName).
		Order("booking_date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// MarkDischarged transitions the matching active ledger entry. Matching only
// status = Booked makes the transition idempotent under retries: a second
// attempt matches nothing.
func (r *bookingRepository) MarkDischarged(db *gorm.DB, patientName, phone, hospitalName string) (int64, error) {
	now := time.Now()
	result := db.Model(&entity.Booking{}).
		Where("patient_name = ? AND phone = ? AND hospital_name = ? AND status = ?",
			patientName, phone, hospitalName, entity.BookingStatusBooked).
		Updates(map[string]interface{}{
			"status":         entity.BookingStatusDischarged,
			"discharge_date": now,
		})
	return result.RowsAffected, result.Error
}
