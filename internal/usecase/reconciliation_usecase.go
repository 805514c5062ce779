package usecase

import (
	"context"

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

type ReconciliationUsecase interface {
	Reconcile(ctx context.Context) (*dto.ReconciliationResponse, error)
}

type reconciliationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	cfg          config.AllocationConfig
	hospitalRepo repository.HospitalRepository
	auditService service.AuditService
	availability service.AvailabilityPublisher
}

func NewReconciliationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.AllocationConfig,
	hospitalRepo repository.HospitalRepository,
	auditService service.AuditService,
	availability service.AvailabilityPublisher,
) ReconciliationUsecase {
	return &reconciliationUsecase{
		db:           db,
		log:          log,
		cfg:          cfg,
		hospitalRepo: hospitalRepo,
		auditService: auditService,
		availability: availability,
	}
}

// Reconcile scans every hospital record and repairs drift between the stored
// counters and the actual roster, substituting configured defaults for
// missing location or capacity data. Repairs are minimal-diff: only fields
// that are actually wrong are written. Safe to run at any time, on demand,
// and idempotent; it is never triggered implicitly from a read path.
func (u *reconciliationUsecase) Reconcile(ctx context.Context) (*dto.ReconciliationResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, translateStorageError(tx.Error)
	}
	defer tx.Rollback()

	hospitals, err := u.hospitalRepo.FindAllWithPatients(tx)
	if err != nil {
		u.log.Warnf("Failed to load hospitals for reconciliation: %+v", err)
		return nil, translateStorageError(err)
	}

	repaired := 0
	for i := range hospitals {
		hospital := &hospitals[i]
		fields := u.repairFields(hospital)
		if len(fields) == 0 {
			continue
		}

		if err := u.hospitalRepo.RepairFields(tx, hospital.ID, fields); err != nil {
			u.log.Warnf("Failed to repair hospital %s: %+v", hospital.Name, err)
			return nil, translateStorageError(err)
		}
		u.log.Infof("Repaired hospital %s: %v", hospital.Name, fields)
		repaired++
	}

	if repaired > 0 {
		userID, hasUser := middleware.GetUserIDFromContext(ctx)
		var auditUser *uuid.UUID
		if hasUser {
			auditUser = &userID
		}
		if err := u.auditService.LogAction(ctx, tx, auditUser, entity.AuditActionReconcile, entity.JSON{
			"hospitals_scanned":  len(hospitals),
			"hospitals_repaired": repaired,
		}); err != nil {
			u.log.Warnf("Failed to write reconciliation audit log: %+v", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit reconciliation: %+v", err)
		return nil, translateStorageError(err)
	}

	// Push repaired counters so the cache does not serve stale values
	for i := range hospitals {
		hospital := &hospitals[i]
		if available, ok := u.repairFields(hospital)["available_beds"]; ok {
			u.availability.PublishAvailability(ctx, hospital.Name, available.(int))
		}
	}

	u.log.Infof("Reconciliation complete: %d scanned, %d repaired", len(hospitals), repaired)
	return &dto.ReconciliationResponse{
		HospitalsScanned:  len(hospitals),
		HospitalsRepaired: repaired,
	}, nil
}

// repairFields computes the minimal set of column updates that brings one
// hospital back to a consistent state. Empty map means the record is healthy.
func (u *reconciliationUsecase) repairFields(hospital *entity.Hospital) map[string]interface{} {
	fields := map[string]interface{}{}

	if !hospital.HasLocation() {
		fields["latitude"] = u.cfg.DefaultLatitude
		fields["longitude"] = u.cfg.DefaultLongitude
	}

	totalBeds := hospital.TotalBeds
	if totalBeds <= 0 {
		totalBeds = u.cfg.DefaultTotalBeds
		fields["total_beds"] = totalBeds
	}

	rosterCount := len(hospital.Patients)
	expectedAvailable := totalBeds - rosterCount
	if expectedAvailable < 0 {
		expectedAvailable = 0
	}

	if hospital.OccupiedBeds != rosterCount {
		fields["occupied_beds"] = rosterCount
	}
	if hospital.AvailableBeds != expectedAvailable {
		fields["available_beds"] = expectedAvailable
	}

	return fields
}
