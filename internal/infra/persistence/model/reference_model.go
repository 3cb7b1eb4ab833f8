package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Slug string    `gorm:"type:varchar(63);not null;uniqueIndex:idx_categories_slug"`
	Name string    `gorm:"type:varchar(100);not null"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// BeforeCreate assigns a UUIDv7 when the caller did not.
func (m *CategoryModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// SubscriptionPlanModel mirrors the 'subscription_plans' table.
type SubscriptionPlanModel struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Slug         string                      `gorm:"type:varchar(63);not null;uniqueIndex:idx_subscription_plans_slug"`
	Name         string                      `gorm:"type:varchar(100);not null"`
	PriceCents   int64                       `gorm:"not null;default:0"`
	Features     datatypes.JSONSlice[string] `gorm:"column:features"`
	ProductLimit int                         `gorm:"not null;default:0"`
	ServiceLimit int                         `gorm:"not null;default:0"`
	BookingLimit int                         `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionPlanModel) TableName() string {
	return "subscription_plans"
}

// BeforeCreate assigns a UUIDv7 when the caller did not.
func (m *SubscriptionPlanModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}

// RestrictedSlugModel mirrors the 'restricted_slugs' table.
type RestrictedSlugModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Word      string    `gorm:"type:varchar(63);not null;uniqueIndex:idx_restricted_slugs_word"`
	Reason    string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (RestrictedSlugModel) TableName() string {
	return "restricted_slugs"
}

// BeforeCreate assigns a UUIDv7 when the caller did not.
func (m *RestrictedSlugModel) BeforeCreate(_ *gorm.DB) error {
	return assignID(&m.ID)
}
