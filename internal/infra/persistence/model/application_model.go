package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BusinessApplicationModel mirrors the 'business_applications' table.
// The partial unique index allows one pending application per email while keeping history.
type BusinessApplicationModel struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	ApplicantName  string                      `gorm:"type:varchar(150);not null"`
	Email          string                      `gorm:"type:varchar(255);not null;index:idx_business_applications_email;uniqueIndex:idx_business_applications_pending_email,where:status = 'pending'"`
	Phone          string                      `gorm:"type:varchar(30)"`
	StoreName      string                      `gorm:"type:varchar(150);not null"`
	DesiredSlug    string                      `gorm:"type:varchar(63);not null"`
	CategoryID     uuid.UUID                   `gorm:"type:uuid;not null"`
	SubscriptionID uuid.UUID                   `gorm:"type:uuid;not null"`
	DocumentURLs   datatypes.JSONSlice[string] `gorm:"column:document_urls"`
	Status         string                      `gorm:"type:varchar(20);not null;default:pending;index:idx_business_applications_status"`
	ReviewedBy     *uuid.UUID                  `gorm:"type:uuid"`
	ReviewedAt     *time.Time
	RejectReason   *string   `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"index:idx_business_applications_created_at"`
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (BusinessApplicationModel) TableName() string {
	return "business_applications"
}

// BeforeCreate assigns a UUIDv7 when the caller did not.
func (m *BusinessApplicationModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}
