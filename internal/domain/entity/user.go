package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account that can call into the system: a patient booking
// beds or a hospital operator managing one hospital. Operator accounts carry
// a HospitalID binding them to their own hospital.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RoleID     int       `gorm:"not null;index" json:"role_id"`
	Username   string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password   string    `gorm:"type:text;not null" json:"-"`
	FullName   string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone      string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	HospitalID *uint     `gorm:"index" json:"hospital_id,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role     Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Hospital *Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns the user id when the caller did not set one.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsOperator reports whether the account manages a hospital.
func (u *User) IsOperator() bool {
	return u.RoleID == RoleIDOperator
}
