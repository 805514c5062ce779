package usecase

import (
	"context"

	"smart-bed-allocation/internal/delivery/http/middleware"
	"smart-bed-allocation/internal/domain/entity"
	"smart-bed-allocation/internal/domain/repository"
	"smart-bed-allocation/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DischargeUsecase interface {
	DischargePatient(ctx context.Context, hospitalName, patientName, phone string) error
}

type dischargeUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	hospitalRepo  repository.HospitalRepository
	admissionRepo repository.AdmissionRepository
	bookingRepo   repository.BookingRepository
	auditService  service.AuditService
	availability  service.AvailabilityPublisher
}

func NewDischargeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	admissionRepo repository.AdmissionRepository,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	availability service.AvailabilityPublisher,
) DischargeUsecase {
	return &dischargeUsecase{
		db:            db,
		log:           log,
		hospitalRepo:  hospitalRepo,
		admissionRepo: admissionRepo,
		bookingRepo:   bookingRepo,
		auditService:  auditService,
		availability:  availability,
	}
}

// DischargePatient removes a patient from the roster and restores the bed in
// one transaction. The ledger transition happens first but commits only with
// the roster change; a concurrent discharge of the same patient shows up as a
// zero-row conditional delete and rolls everything back. A roster entry with
// no matching active ledger entry is tolerated: the ledger is an audit trail,
// not the capacity authority.
func (u *dischargeUsecase) DischargePatient(ctx context.Context, hospitalName, patientName, phone string) error {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return translateStorageError(tx.Error)
	}
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByName(tx, hospitalName)
	if err != nil {
		u.log.Warnf("Failed to find hospital %s: %+v", hospitalName, err)
		return translateStorageError(err)
	}
	if hospital == nil {
		return ErrHospitalNotFound
	}
	if !operatorMayManage(ctx, hospital.ID) {
		return ErrHospitalAccessDenied
	}

	admission, err := u.admissionRepo.FindByHospitalAndPatient(tx, hospital.ID, patientName, phone)
	if err != nil {
		u.log.Warnf("Failed to check roster for %s at %s: %+v", patientName, hospitalName, err)
		return translateStorageError(err)
	}
	if admission == nil {
		return ErrPatientNotFound
	}

	matched, err := u.bookingRepo.MarkDischarged(tx, patientName, phone, hospitalName)
	if err != nil {
		u.log.Warnf("Failed to transition booking ledger entry: %+v", err)
		return translateStorageError(err)
	}
	if matched == 0 {
		u.log.Warnf("No active booking for %s at %s, discharging roster entry anyway", patientName, hospitalName)
	}

	rows, err := u.admissionRepo.DeleteByHospitalAndPatient(tx, hospital.ID, patientName, phone)
	if err != nil {
		u.log.Warnf("Failed to remove patient from roster: %+v", err)
		return translateStorageError(err)
	}
	if rows == 0 {
		// Concurrently discharged; the rollback also reverts the ledger transition
		u.log.Warnf("Discharge conflict for %s at %s, transaction aborted", patientName, hospitalName)
		return ErrDischargeConflict
	}

	rows, err = u.hospitalRepo.ReleaseBed(tx, hospitalName)
	if err != nil {
		u.log.Warnf("Failed to release bed at %s: %+v", hospitalName, err)
		return translateStorageError(err)
	}
	if rows == 0 {
		u.log.Warnf("Bed release conflict at %s, transaction aborted", hospitalName)
		return ErrDischargeConflict
	}

	userID, hasUser := middleware.GetUserIDFromContext(ctx)
	var auditUser *uuid.UUID
	if hasUser {
		auditUser = &userID
	}
	if err := u.auditService.LogAction(ctx, tx, auditUser, entity.AuditActionBedDischarge, entity.JSON{
		"hospital":     hospitalName,
		"patient_name": patientName,
	}); err != nil {
		u.log.Warnf("Failed to write discharge audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Errorf("Failed to commit discharge: %+v", err)
		return translateStorageError(err)
	}

	u.availability.PublishAvailability(ctx, hospital.Name, hospital.AvailableBeds+1)

	u.log.Infof("Patient discharged: hospital=%s, patient=%s", hospitalName, patientName)
	return nil
}
