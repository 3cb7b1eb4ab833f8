package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies stores.
type Category struct {
	ID   uuid.UUID
	Slug string
	Name string
}

// SubscriptionPlan is read-only plan metadata attached to a store.
type SubscriptionPlan struct {
	ID           uuid.UUID
	Slug         string
	Name         string
	PriceCents   int64
	Features     []string
	ProductLimit int
	ServiceLimit int
	BookingLimit int
}

// RestrictedSlug is a word that may never be used as a storefront slug.
type RestrictedSlug struct {
	ID        uuid.UUID
	Word      string
	Reason    string
	CreatedAt time.Time
}
