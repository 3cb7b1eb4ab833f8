package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoreStatus is the activation state of a storefront.
type StoreStatus string

const (
	StoreStatusPending  StoreStatus = "pending"
	StoreStatusApproved StoreStatus = "approved"
	StoreStatusRejected StoreStatus = "rejected"
)

// Store is one merchant's tenant, addressed by a globally unique slug.
type Store struct {
	ID             uuid.UUID   // The Global Unique Identifier (GUID) for the store.
	OwnerUserID    uuid.UUID   // The merchant that owns the store.
	Slug           string      // Immutable storefront identifier.
	Name           string      // Display name.
	Description    string      // Free-form description.
	CategoryID     uuid.UUID   // Store category.
	SubscriptionID uuid.UUID   // Subscription plan.
	Status         StoreStatus // pending, approved or rejected.
	ThemeColor     string      // Hex color used by the storefront theme.
	LogoURL        string      // Public logo URL.
	PhoneNumber    string      // Public contact number.
	CreatedAt      time.Time   // Creation time.
	UpdatedAt      time.Time   // Timestamp of the last modification.
}

// IsPublic reports whether the storefront is served to shoppers.
func (s *Store) IsPublic() bool {
	return s.Status == StoreStatusApproved
}

// Verification holds the documents submitted for a store.
type Verification struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the record.
	StoreID      uuid.UUID // One verification per store.
	DocumentURLs []string  // Document locations returned by the storage backend.
	AdminNotes   string    // Free-form notes from reviewers.
	CreatedAt    time.Time // Creation time.
}
