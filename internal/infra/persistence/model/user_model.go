package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	DisplayName  string    `gorm:"type:varchar(100)"`
	Role         string    `gorm:"type:varchar(20);not null;default:customer"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUIDv7 when the caller did not.
func (m *UserModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// AdminUserModel mirrors the 'admin_users' table.
type AdminUserModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex:idx_admin_users_email;not null"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	DisplayName      string    `gorm:"type:varchar(100)"`
	Role             string    `gorm:"type:varchar(20);not null;default:admin"`
	Status           string    `gorm:"type:varchar(20);not null;default:active"`
	RecoveryCodeHash *string   `gorm:"type:varchar(255)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (AdminUserModel) TableName() string {
	return "admin_users"
}

// BeforeCreate assigns a UUIDv7 when the caller did not.
func (m *AdminUserModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}
