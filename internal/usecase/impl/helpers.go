package impl

import (
	"context"

	"storefront/internal/domain/authz"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/domain/slug"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// slugLookup answers slug questions from a reference and a store repository,
// which may both be bound to the same transaction.
type slugLookup struct {
	refs   repository.ReferenceRepository
	stores repository.StoreRepository
}

var _ slug.Lookup = (*slugLookup)(nil)

func (l *slugLookup) IsRestricted(ctx context.Context, word string) (bool, error) {
	return l.refs.IsRestricted(ctx, word)
}

func (l *slugLookup) SlugExists(ctx context.Context, s string) (bool, error) {
	return l.stores.SlugExists(ctx, s)
}

func txSlugLookup(factory repository.RepositoryFactory) *slugLookup {
	return &slugLookup{refs: factory.NewReferenceRepository(), stores: factory.NewStoreRepository()}
}

// requireCatalog confirms the category and plan referenced by a request exist.
func requireCatalog(ctx context.Context, refs repository.ReferenceRepository, category, plan uuid.UUID) error {
	if _, err := refs.FindCategoryByID(ctx, category); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to find category")
	}

	if _, err := refs.FindPlanByID(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return domainerrors.ErrPlanNotFound
		}

		return errors.Wrap(err, "failed to find subscription plan")
	}

	return nil
}

func requireAdmin(actor *entity.Subject) (*entity.Subject, error) {
	return authz.RequireRole(actor, entity.RoleAdmin)
}

func toSummary(app *entity.BusinessApplication) *service.ApplicationSummary {
	return &service.ApplicationSummary{
		ApplicationID: app.ID.String(),
		ApplicantName: app.ApplicantName,
		Email:         app.Email,
		StoreName:     app.StoreName,
		DesiredSlug:   app.DesiredSlug,
		DocumentCount: len(app.DocumentURLs),
		SubmittedAt:   app.CreatedAt,
	}
}
