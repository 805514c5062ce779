package database

import (
	"fmt"

	"smart-bed-allocation/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates the database with the baseline roles, the initial hospital
// registry, and the default accounts. Every insert is guarded by a lookup so
// the seed is safe to run on every startup.
func Seed(db *gorm.DB) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedHospitals(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}

	logrus.Info("Database seed completed")
	return nil
}

func seedRoles(db *gorm.DB) error {
	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin, Description: "System administrator"},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient, Description: "Patient seeking a bed"},
		{ID: entity.RoleIDOperator, RoleName: entity.RoleOperator, Description: "Hospital bed operator"},
	}

	for _, role := range roles {
		if err := db.Where(entity.Role{ID: role.ID}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.RoleName, err)
		}
	}
	return nil
}

func seedHospitals(db *gorm.DB) error {
	hospitals := []entity.Hospital{
		{Name: "City Hospital", Latitude: 12.9716, Longitude: 77.5946, TotalBeds: 100, AvailableBeds: 100, OccupiedBeds: 0},
		{Name: "General Hospital", Latitude: 12.9200, Longitude: 77.6200, TotalBeds: 150, AvailableBeds: 150, OccupiedBeds: 0},
		{Name: "Medical Center", Latitude: 13.0200, Longitude: 77.5100, TotalBeds: 80, AvailableBeds: 80, OccupiedBeds: 0},
	}

	for _, hospital := range hospitals {
		if err := db.Where(entity.Hospital{Name: hospital.Name}).FirstOrCreate(&hospital).Error; err != nil {
			return fmt.Errorf("failed to seed hospital %s: %w", hospital.Name, err)
		}
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	type seedAccount struct {
		username     string
		password     string
		fullName     string
		phone        string
		roleID       int
		hospitalName string
	}

	accounts := []seedAccount{
		{username: "admin", password: "admin12345", fullName: "System Administrator", phone: "0000000000", roleID: entity.RoleIDAdmin},
		{username: "patient", password: "patient12345", fullName: "Default Patient", phone: "9999999999", roleID: entity.RoleIDPatient},
		{username: "city_hospital_operator", password: "operator12345", fullName: "City Hospital Operator", phone: "1111111111", roleID: entity.RoleIDOperator, hospitalName: "City Hospital"},
		{username: "general_hospital_operator", password: "operator12345", fullName: "General Hospital Operator", phone: "2222222222", roleID: entity.RoleIDOperator, hospitalName: "General Hospital"},
		{username: "medical_center_operator", password: "operator12345", fullName: "Medical Center Operator", phone: "3333333333", roleID: entity.RoleIDOperator, hospitalName: "Medical Center"},
	}

	for _, account := range accounts {
		var count int64
		if err := db.Model(&entity.User{}).Where("username = ?", account.username).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check user %s: %w", account.username, err)
		}
		if count > 0 {
			continue
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", account.username, err)
		}

		user := entity.User{
			Username: account.username,
			Password: string(hashedPassword),
			FullName: account.fullName,
			Phone:    account.phone,
			RoleID:   account.roleID,
		}

		if account.hospitalName != "" {
			var hospital entity.Hospital
			if err := db.Where("name = ?", account.hospitalName).First(&hospital).Error; err != nil {
				return fmt.Errorf("failed to find hospital for operator %s: %w", account.username, err)
			}
			user.HospitalID = &hospital.ID
		}

		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", account.username, err)
		}
	}
	return nil
}
