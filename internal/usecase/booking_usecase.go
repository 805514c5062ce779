package usecase

import (
	"context"

	"smart-bed-allocation/internal/converter"
	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type BookingUsecase interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error)
	GetPatientBookings(ctx context.Context, patientName, phone string) (*dto.BookingListResponse, error)
	GetHospitalBookings(ctx context.Context, hospitalName string) (*dto.BookingListResponse, error)
}

type bookingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	hospitalRepo repository.HospitalRepository
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	hospitalRepo repository.HospitalRepository,
) BookingUsecase {
	return &bookingUsecase{
		db:           db,
		log:          log,
		bookingRepo:  bookingRepo,
		hospitalRepo: hospitalRepo,
	}
}

func (u *bookingUsecase) GetBooking(ctx context.Context, id uuid.UUID) (*dto.BookingResponse, error) {
	booking, err := u.bookingRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find booking by ID: %+v", err)
		return nil, translateStorageError(err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) GetPatientBookings(ctx context.Context, patientName, phone string) (*dto.BookingListResponse, error) {
	bookings, err := u.bookingRepo.FindByPatient(u.db.WithContext(ctx), patientName, phone)
	if err != nil {
		u.log.Warnf("Failed to list patient bookings: %+v", err)
		return nil, translateStorageError(err)
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

func (u *bookingUsecase) GetHospitalBookings(ctx context.Context, hospitalName string) (*dto.BookingListResponse, error) {
	hospital, err := u.hospitalRepo.FindByName(u.db.WithContext(ctx), hospitalName)
	if err != nil {
		u.log.Warnf("Failed to find hospital by name: %+v", err)
		return nil, translateStorageError(err)
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	if !operatorMayManage(ctx, hospital.ID) {
		return nil, ErrHospitalAccessDenied
	}

	bookings, err := u.bookingRepo.FindByHospital(u.db.WithContext(ctx), hospital.Name)
	if err != nil {
		u.log.Warnf("Failed to list hospital bookings: %+v", err)
		return nil, translateStorageError(err)
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}
