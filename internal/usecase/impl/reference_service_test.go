package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceService_CheckSlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.referenceService()
	owner := env.createUser(t, "a@x.com", entity.RoleCustomer)

	_, err := env.onboardingService().CreateStore(ctx, owner.Subject(), &usecase.CreateStoreInput{
		Name:           "Kandy Crafts",
		CategoryID:     env.fixture.Category.ID,
		SubscriptionID: env.fixture.Plan.ID,
	})
	require.NoError(t, err)

	tests := []struct {
		slug      string
		available bool
		reason    string
	}{
		{slug: "fresh-finds", available: true},
		{slug: " fresh-finds ", available: true},
		{slug: "admin", reason: domainerrors.ErrSlugReserved.ErrorCode()},
		{slug: "kandy-crafts", reason: domainerrors.ErrSlugTaken.ErrorCode()},
		{slug: "Kandy_Crafts", reason: domainerrors.ErrSlugInvalidFormat.ErrorCode()},
		{slug: "", reason: domainerrors.ErrSlugInvalidFormat.ErrorCode()},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			result, err := svc.CheckSlug(ctx, tt.slug)
			require.NoError(t, err)
			assert.Equal(t, tt.available, result.Available)
			assert.Equal(t, tt.reason, result.Reason)
		})
	}
}

func TestReferenceService_Catalog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.referenceService()

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, categories)

	plans, err := svc.ListPlans(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, plans)
}

func TestReferenceService_RestrictedSlugs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.referenceService()
	actor := env.createAdmin(t, "ops@x.com", entity.RoleAdmin).Subject()
	customer := env.createUser(t, "a@x.com", entity.RoleCustomer).Subject()

	_, err := svc.AddRestrictedSlug(ctx, customer, &usecase.AddRestrictedSlugInput{Word: "promo"})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	added, err := svc.AddRestrictedSlug(ctx, actor, &usecase.AddRestrictedSlugInput{Word: " Promo ", Reason: "marketing"})
	require.NoError(t, err)
	assert.Equal(t, "promo", added.Word)

	_, err = svc.AddRestrictedSlug(ctx, actor, &usecase.AddRestrictedSlugInput{Word: "promo"})
	require.ErrorIs(t, err, domainerrors.ErrRestrictedSlugExists)

	result, err := svc.CheckSlug(ctx, "promo")
	require.NoError(t, err)
	assert.False(t, result.Available)

	words, err := svc.ListRestrictedSlugs(ctx, actor)
	require.NoError(t, err)
	assert.Contains(t, restrictedWords(words), "promo")

	require.NoError(t, svc.RemoveRestrictedSlug(ctx, actor, "promo"))
	require.ErrorIs(t, svc.RemoveRestrictedSlug(ctx, actor, "promo"), domainerrors.ErrRestrictedSlugNotFound)
}

func restrictedWords(slugs []*entity.RestrictedSlug) []string {
	words := make([]string, 0, len(slugs))
	for _, s := range slugs {
		words = append(words, s.Word)
	}

	return words
}
