package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrStoreNotFound is returned when a store is not found.
	ErrStoreNotFound = errors.New("store not found")

	// ErrVerificationNotFound is returned when a store has no verification record.
	ErrVerificationNotFound = errors.New("verification not found")
)

// StoreRepository persists stores.
type StoreRepository interface {
	// Create persists a new store. A duplicate slug yields domainerrors.ErrSlugConflict.
	Create(ctx context.Context, store *entity.Store) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Store, error)
	ListByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*entity.Store, error)

	// SlugExists reports whether any store already uses slug. Reads from the primary.
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// VerificationRepository persists store verification records.
type VerificationRepository interface {
	Create(ctx context.Context, verification *entity.Verification) error
	FindByStoreID(ctx context.Context, storeID uuid.UUID) (*entity.Verification, error)
}
