package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/slug"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/validation"

	"go.uber.org/fx"
)

// referenceService implements the ReferenceUsecase interface.
type referenceService struct {
	refRepo   repository.ReferenceRepository
	storeRepo repository.StoreRepository
	slugs     *slug.Authority
	logger    *slog.Logger
}

// ReferenceServiceParams holds dependencies for ReferenceService, injected by Fx.
type ReferenceServiceParams struct {
	fx.In

	RefRepo   repository.ReferenceRepository
	StoreRepo repository.StoreRepository
	Slugs     *slug.Authority
	Logger    *slog.Logger
}

// NewReferenceService is the constructor for referenceService.
func NewReferenceService(params ReferenceServiceParams) usecase.ReferenceUsecase {
	return &referenceService{
		refRepo:   params.RefRepo,
		storeRepo: params.StoreRepo,
		slugs:     params.Slugs,
		logger:    params.Logger,
	}
}

func (srv *referenceService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.refRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *referenceService) ListPlans(ctx context.Context) ([]*entity.SubscriptionPlan, error) {
	plans, err := srv.refRepo.ListPlans(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list plans")
	}

	return plans, nil
}

// CheckSlug runs the same checks as a submission. A rejected slug is not an error here;
// the reason carries the business code of the rejection.
func (srv *referenceService) CheckSlug(ctx context.Context, candidate string) (*usecase.SlugCheckResult, error) {
	candidate = strings.TrimSpace(candidate)
	result := &usecase.SlugCheckResult{Slug: candidate}

	_, err := srv.slugs.Validate(ctx, &slugLookup{refs: srv.refRepo, stores: srv.storeRepo}, candidate)
	switch {
	case err == nil:
		result.Available = true
	case errors.Is(err, domainerrors.ErrSlugInvalidFormat),
		errors.Is(err, domainerrors.ErrSlugReserved),
		errors.Is(err, domainerrors.ErrSlugTaken):
		var appErr *domainerrors.BaseError
		if errors.As(err, &appErr) {
			result.Reason = appErr.ErrorCode()
		}
	default:
		return nil, err
	}

	return result, nil
}

func (srv *referenceService) ListRestrictedSlugs(ctx context.Context, actor *entity.Subject) ([]*entity.RestrictedSlug, error) {
	if _, err := requireAdmin(actor); err != nil {
		return nil, err
	}

	slugs, err := srv.refRepo.ListRestrictedSlugs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list restricted slugs")
	}

	return slugs, nil
}

func (srv *referenceService) AddRestrictedSlug(ctx context.Context, actor *entity.Subject, input *usecase.AddRestrictedSlugInput) (*entity.RestrictedSlug, error) {
	if _, err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	restricted := &entity.RestrictedSlug{
		Word:   strings.ToLower(strings.TrimSpace(input.Word)),
		Reason: input.Reason,
	}
	if err := srv.refRepo.CreateRestrictedSlug(ctx, restricted); err != nil {
		if errors.Is(err, domainerrors.ErrRestrictedSlugExists) {
			return nil, domainerrors.ErrRestrictedSlugExists
		}

		return nil, errors.Wrap(err, "failed to create restricted slug")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Restricted slug added",
		slog.String("word", restricted.Word),
		slog.String("admin_id", actor.ID.String()),
	)

	return restricted, nil
}

func (srv *referenceService) RemoveRestrictedSlug(ctx context.Context, actor *entity.Subject, word string) error {
	if _, err := requireAdmin(actor); err != nil {
		return err
	}

	word = strings.ToLower(strings.TrimSpace(word))
	if err := srv.refRepo.DeleteRestrictedSlug(ctx, word); err != nil {
		if errors.Is(err, repository.ErrRestrictedSlugNotFound) {
			return domainerrors.ErrRestrictedSlugNotFound
		}

		return errors.Wrap(err, "failed to delete restricted slug")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Restricted slug removed",
		slog.String("word", word),
		slog.String("admin_id", actor.ID.String()),
	)

	return nil
}
