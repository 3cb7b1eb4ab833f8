package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StoreModel mirrors the 'stores' table. The slug unique index is the final word on
// slug collisions.
type StoreModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerUserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_stores_owner_user_id"`
	Slug           string    `gorm:"type:varchar(63);not null;uniqueIndex:idx_stores_slug"`
	Name           string    `gorm:"type:varchar(150);not null"`
	Description    string    `gorm:"type:text"`
	CategoryID     uuid.UUID `gorm:"type:uuid;not null"`
	SubscriptionID uuid.UUID `gorm:"type:uuid;not null"`
	Status         string    `gorm:"type:varchar(20);not null;default:pending"`
	ThemeColor     string    `gorm:"type:varchar(20)"`
	LogoURL        string    `gorm:"type:varchar(500)"`
	PhoneNumber    string    `gorm:"type:varchar(30)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Owner        *UserModel             `gorm:"foreignKey:OwnerUserID;constraint:OnDelete:RESTRICT"`
	Category     *CategoryModel         `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Subscription *SubscriptionPlanModel `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}

// BeforeCreate assigns a UUIDv7 when the caller did not.
func (m *StoreModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// VerificationModel mirrors the 'verifications' table, one row per store.
type VerificationModel struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	StoreID      uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_verifications_store_id"`
	DocumentURLs datatypes.JSONSlice[string] `gorm:"column:document_urls"`
	AdminNotes   string                      `gorm:"type:text"`
	CreatedAt    time.Time

	Store *StoreModel `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (VerificationModel) TableName() string {
	return "verifications"
}

// BeforeCreate assigns a UUIDv7 when the caller did not.
func (m *VerificationModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}
