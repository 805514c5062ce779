package usecase

import (
	"context"

	"smart-bed-allocation/internal/converter"
	"smart-bed-allocation/internal/delivery/dto"
	"smart-bed-allocation/internal/delivery/http/middleware"
	"smart-bed-allocation/internal/domain/entity"
	"smart-bed-allocation/internal/domain/repository"
	"smart-bed-allocation/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HospitalUsecase interface {
	GetHospital(ctx context.Context, name string) (*dto.HospitalResponse, error)
	GetAllHospitals(ctx context.Context) (*dto.HospitalListResponse, error)
	GetBedAvailability(ctx context.Context, name string) (*dto.BedAvailabilityResponse, error)
	UpdateAvailableBeds(ctx context.Context, name string, availableBeds int) (*dto.HospitalResponse, error)
}

type hospitalUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	hospitalRepo  repository.HospitalRepository
	admissionRepo repository.AdmissionRepository
	auditService  service.AuditService
	availability  service.AvailabilityStore
}

func NewHospitalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	admissionRepo repository.AdmissionRepository,
	auditService service.AuditService,
	availability service.AvailabilityStore,
) HospitalUsecase {
	return &hospitalUsecase{
		db:            db,
		log:           log,
		hospitalRepo:  hospitalRepo,
		admissionRepo: admissionRepo,
		auditService:  auditService,
		availability:  availability,
	}
}

func (u *hospitalUsecase) GetHospital(ctx context.Context, name string) (*dto.HospitalResponse, error) {
	hospital, err := u.hospitalRepo.FindByNameWithPatients(u.db.WithContext(ctx), name)
	if err != nil {
		u.log.Warnf("Failed to find hospital %s: %+v", name, err)
		return nil, translateStorageError(err)
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) GetAllHospitals(ctx context.Context) (*dto.HospitalListResponse, error) {
	hospitals, err := u.hospitalRepo.FindAllWithPatients(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list hospitals: %+v", err)
		return nil, translateStorageError(err)
	}

	return &dto.HospitalListResponse{
		Hospitals: converter.HospitalsToResponses(hospitals),
		Total:     len(hospitals),
	}, nil
}

// GetBedAvailability serves the read-heavy dashboard counter from the Redis
// cache when possible, falling back to the registry on a miss and
// re-publishing the fresh value.
func (u *hospitalUsecase) GetBedAvailability(ctx context.Context, name string) (*dto.BedAvailabilityResponse, error) {
	if available, ok := u.availability.GetAvailability(ctx, name); ok {
		return &dto.BedAvailabilityResponse{HospitalName: name, AvailableBeds: available}, nil
	}

	hospital, err := u.hospitalRepo.FindByName(u.db.WithContext(ctx), name)
	if err != nil {
		u.log.Warnf("Failed to find hospital %s: %+v", name, err)
		return nil, translateStorageError(err)
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	u.availability.PublishAvailability(ctx, hospital.Name, hospital.AvailableBeds)
	return &dto.BedAvailabilityResponse{HospitalName: hospital.Name, AvailableBeds: hospital.AvailableBeds}, nil
}

// UpdateAvailableBeds applies an operator's manual override of the free-bed
// counter. The implied occupancy may never undercut the actual roster, and
// the guard is re-checked inside the conditional update so a concurrent
// allocation cannot slip a patient in under a shrinking capacity.
func (u *hospitalUsecase) UpdateAvailableBeds(ctx context.Context, name string, availableBeds int) (*dto.HospitalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, translateStorageError(tx.Error)
	}
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByName(tx, name)
	if err != nil {
		u.log.Warnf("Failed to find hospital %s: %+v", name, err)
		return nil, translateStorageError(err)
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	if !operatorMayManage(ctx, hospital.ID) {
		return nil, ErrHospitalAccessDenied
	}

	if availableBeds > hospital.TotalBeds {
		return nil, ErrBedCountExceedsTotal
	}
	newOccupied := hospital.TotalBeds - availableBeds

	rosterCount, err := u.admissionRepo.CountByHospital(tx, hospital.ID)
	if err != nil {
		u.log.Warnf("Failed to count roster for %s: %+v", name, err)
		return nil, translateStorageError(err)
	}
	if int64(newOccupied) < rosterCount {
		return nil, ErrBedCountBelowAdmitted
	}

	rows, err := u.hospitalRepo.UpdateBedCounts(tx, name, availableBeds, newOccupied)
	if err != nil {
		u.log.Warnf("Failed to update bed counts for %s: %+v", name, err)
		return nil, translateStorageError(err)
	}
	if rows == 0 {
		u.log.Warnf("Bed count update conflict at %s, transaction aborted", name)
		return nil, ErrBedCountConflict
	}

	userID, hasUser := middleware.GetUserIDFromContext(ctx)
	var auditUser *uuid.UUID
	if hasUser {
		auditUser = &userID
	}
	if err := u.auditService.LogAction(ctx, tx, auditUser, entity.AuditActionBedCountUpdate, entity.JSON{
		"hospital":           name,
		"old_available_beds": hospital.AvailableBeds,
		"new_available_beds": availableBeds,
	}); err != nil {
		u.log.Warnf("Failed to write bed count audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit bed count update: %+v", err)
		return nil, translateStorageError(err)
	}

	u.availability.PublishAvailability(ctx, hospital.Name, availableBeds)

	hospital.AvailableBeds = availableBeds
	hospital.OccupiedBeds = newOccupied
	u.log.Infof("Bed counts updated: hospital=%s, available=%d, occupied=%d", name, availableBeds, newOccupied)
	return converter.HospitalToResponse(hospital), nil
}
