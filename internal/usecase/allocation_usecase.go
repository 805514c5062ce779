package usecase

import (
	"context"
	"time"

	"smart-bed-allocation/config"
	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/delivery/http/middleware"
	"smart-bed-allocation/internal/domain/entity"
	"smart-bed-allocation/internal/domain/repository"
	"smart-bed-allocation/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AllocationUsecase interface {
	FindNearestHospital(ctx context.Context, req *dto.SearchHospitalRequest) (*dto.NearestHospitalResponse, error)
	AllocateBed(ctx context.Context, req *dto.AllocateBedRequest) (*dto.BookingConfirmation, error)
}

type allocationUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	cfg           config.AllocationConfig
	hospitalRepo  repository.HospitalRepository
	admissionRepo repository.AdmissionRepository
	bookingRepo   repository.BookingRepository
	auditService  service.AuditService
	availability  service.AvailabilityPublisher
}

func NewAllocationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.AllocationConfig,
	hospitalRepo repository.HospitalRepository,
	admissionRepo repository.AdmissionRepository,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	availability service.AvailabilityPublisher,
) AllocationUsecase {
	return &allocationUsecase{
		db:            db,
		log:           log,
		cfg:           cfg,
		hospitalRepo:  hospitalRepo,
		admissionRepo: admissionRepo,
		bookingRepo:   bookingRepo,
		auditService:  auditService,
		availability:  availability,
	}
}

// FindNearestHospital ranks hospitals with free beds by distance from the
// patient. When the requested radius yields nothing the search widens through
// the configured fallback radii (larger than the request only); the first
// non-empty result wins and the response reports the radius that succeeded.
// Read-only over a snapshot; the reservation step re-checks everything.
func (u *allocationUsecase) FindNearestHospital(ctx context.Context, req *dto.SearchHospitalRequest) (*dto.NearestHospitalResponse, error) {
	if req.RadiusKm < u.cfg.MinRadiusKm || req.RadiusKm > u.cfg.MaxRadiusKm {
		return nil, ErrInvalidSearchRadius
	}

	hospitals, err := u.hospitalRepo.ListWithAvailableBeds(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list hospitals with available beds: %+v", err)
		return nil, translateStorageError(err)
	}

	nearest := nearestWithinRadius(u.log, hospitals, req.Latitude, req.Longitude, req.RadiusKm)
	if nearest == nil {
		for _, radius := range u.cfg.FallbackRadiiKm {
			if radius <= req.RadiusKm {
				continue
			}
			u.log.Infof("No hospitals within %.0fkm, expanding search to %.0fkm", req.RadiusKm, radius)
			if nearest = nearestWithinRadius(u.log, hospitals, req.Latitude, req.Longitude, radius); nearest != nil {
				break
			}
		}
	}

	if nearest == nil {
		return nil, ErrNoHospitalInRange
	}

	u.log.Infof("Selected nearest hospital: %s at %.2fkm with %d available beds",
		nearest.HospitalName, nearest.DistanceKm, nearest.AvailableBeds)
	return nearest, nil
}

// AllocateBed reserves one bed at the target hospital in a single
// transaction: ledger entry, counter decrement and roster append commit
// together or not at all. The available_beds > 0 predicate is re-checked by
// the conditional update at mutation time, not just at selection time, so a
// concurrent allocation of the last bed rolls the whole operation back,
// ledger entry included.
func (u *allocationUsecase) AllocateBed(ctx context.Context, req *dto.AllocateBedRequest) (*dto.BookingConfirmation, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, translateStorageError(tx.Error)
	}
	defer tx.Rollback()

	// Re-read the hospital inside the transaction, never a cached snapshot
	hospital, err := u.hospitalRepo.FindByName(tx, req.HospitalName)
	if err != nil {
		u.log.Warnf("Failed to find hospital %s: %+v", req.HospitalName, err)
		return nil, translateStorageError(err)
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	if !hospital.HasAvailableBeds() {
		return nil, ErrNoBedsAvailable
	}

	existing, err := u.admissionRepo.FindByHospitalAndPatient(tx, hospital.ID, req.PatientName, req.Phone)
	if err != nil {
		u.log.Warnf("Failed to check roster for %s at %s: %+v", req.PatientName, req.HospitalName, err)
		return nil, translateStorageError(err)
	}
	if existing != nil {
		return nil, ErrAlreadyAdmitted
	}

	now := time.Now()

	booking := &entity.Booking{
		ID:           uuid.New(),
		PatientName:  req.PatientName,
		Phone:        req.Phone,
		Symptoms:     req.Symptoms,
		HospitalName: req.HospitalName,
		Status:       entity.BookingStatusBooked,
		BookingDate:  now,
	}
	if err := u.bookingRepo.Create(tx, booking); err != nil {
		u.log.Warnf("Failed to create booking ledger entry: %+v", err)
		return nil, translateStorageError(err)
	}

	rows, err := u.hospitalRepo.ReserveBed(tx, req.HospitalName)
	if err != nil {
		u.log.Warnf("Failed to reserve bed at %s: %+v", req.HospitalName, err)
		return nil, translateStorageError(err)
	}
	if rows == 0 {
		// Another allocation consumed the last bed between the read and the
		// conditional update; the deferred rollback discards the ledger entry
		u.log.Warnf("Bed reservation conflict at %s, transaction aborted", req.HospitalName)
		return nil, ErrAllocationConflict
	}

	admission := &entity.Admission{
		HospitalID:    hospital.ID,
		PatientName:   req.PatientName,
		Phone:         req.Phone,
		Symptoms:      req.Symptoms,
		AdmissionDate: now,
	}
	if err := u.admissionRepo.Create(tx, admission); err != nil {
		if isDuplicateKeyError(err, "idx_admissions_hospital_patient") {
			return nil, ErrAlreadyAdmitted
		}
		u.log.Warnf("Failed to append patient to roster: %+v", err)
		return nil, translateStorageError(err)
	}

	userID, hasUser := middleware.GetUserIDFromContext(ctx)
	var auditUser *uuid.UUID
	if hasUser {
		auditUser = &userID
	}
	if err := u.auditService.LogAction(ctx, tx, auditUser, entity.AuditActionBedAllocate, entity.JSON{
		"hospital":     req.HospitalName,
		"patient_name": req.PatientName,
		"booking_id":   booking.ID.String(),
	}); err != nil {
		// Audit failures never fail the allocation
		u.log.Warnf("Failed to write allocation audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit allocation: %+v", err)
		return nil, translateStorageError(err)
	}

	u.availability.PublishAvailability(ctx, hospital.Name, hospital.AvailableBeds-1)

	u.log.Infof("Bed allocated: hospital=%s, patient=%s, booking=%s", req.HospitalName, req.PatientName, booking.ID)
	return &dto.BookingConfirmation{
		BookingID:    booking.ID,
		PatientName:  req.PatientName,
		HospitalName: req.HospitalName,
		Status:       "Confirmed",
		BookingTime:  now,
	}, nil
}
