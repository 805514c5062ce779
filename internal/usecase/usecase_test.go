package usecase

import (
	"context"
	"io"
	"testing"

	"smart-bed-allocation/config"
	"smart-bed-allocation/internal/domain/entity"
	"smart-bed-allocation/internal/repository"
	"smart-bed-allocation/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubAvailability records published counter values and serves canned cache
// reads, standing in for the Redis-backed cache.
type stubAvailability struct {
	published map[string]int
	cached    map[string]int
}

func newStubAvailability() *stubAvailability {
	return &stubAvailability{
		published: map[string]int{},
		cached:    map[string]int{},
	}
}

func (s *stubAvailability) PublishAvailability(ctx context.Context, hospitalName string, availableBeds int) {
	s.published[hospitalName] = availableBeds
}

func (s *stubAvailability) GetAvailability(ctx context.Context, hospitalName string) (int, bool) {
	beds, ok := s.cached[hospitalName]
	return beds, ok
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Hospital{},
		&entity.Admission{},
		&entity.Booking{},
		&entity.AuditLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// engineFixture wires the full engine against an in-memory database.
type engineFixture struct {
	db             *gorm.DB
	availability   *stubAvailability
	allocation     AllocationUsecase
	discharge      DischargeUsecase
	hospital       HospitalUsecase
	booking        BookingUsecase
	reconciliation ReconciliationUsecase
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger()
	cfg := config.DefaultAllocationConfig()
	availability := newStubAvailability()

	hospitalRepo := repository.NewHospitalRepository()
	admissionRepo := repository.NewAdmissionRepository()
	bookingRepo := repository.NewBookingRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(db, log, auditLogRepo)

	return &engineFixture{
		db:             db,
		availability:   availability,
		allocation:     NewAllocationUsecase(db, log, cfg, hospitalRepo, admissionRepo, bookingRepo, auditService, availability),
		discharge:      NewDischargeUsecase(db, log, hospitalRepo, admissionRepo, bookingRepo, auditService, availability),
		hospital:       NewHospitalUsecase(db, log, hospitalRepo, admissionRepo, auditService, availability),
		booking:        NewBookingUsecase(db, log, bookingRepo, hospitalRepo),
		reconciliation: NewReconciliationUsecase(db, log, cfg, hospitalRepo, auditService, availability),
	}
}

func (f *engineFixture) seedHospital(t *testing.T, hospital entity.Hospital) entity.Hospital {
	t.Helper()
	if err := f.db.Create(&hospital).Error; err != nil {
		t.Fatalf("Failed to seed hospital %s: %v", hospital.Name, err)
	}
	return hospital
}

func (f *engineFixture) loadHospital(t *testing.T, name string) entity.Hospital {
	t.Helper()
	var hospital entity.Hospital
	if err := f.db.Preload("Patients").Where("name = ?", name).First(&hospital).Error; err != nil {
		t.Fatalf("Failed to load hospital %s: %v", name, err)
	}
	return hospital
}
