package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/authz"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/slug"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/validation"

	"go.uber.org/fx"
)

// onboardingService implements the OnboardingUsecase interface.
type onboardingService struct {
	txManager repository.TransactionManager
	slugs     *slug.Authority
	logger    *slog.Logger
}

// OnboardingServiceParams holds dependencies for OnboardingService, injected by Fx.
type OnboardingServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Slugs     *slug.Authority
	Logger    *slog.Logger
}

// NewOnboardingService is the constructor for onboardingService.
func NewOnboardingService(params OnboardingServiceParams) usecase.OnboardingUsecase {
	return &onboardingService{
		txManager: params.TxManager,
		slugs:     params.Slugs,
		logger:    params.Logger,
	}
}

// CreateStore opens a pending store for the signed-in user. The slug is derived from
// the store name, and a customer owner becomes a merchant in the same transaction.
func (srv *onboardingService) CreateStore(ctx context.Context, actor *entity.Subject, input *usecase.CreateStoreInput) (*entity.Store, error) {
	if _, err := authz.RequireRole(actor, entity.RoleCustomer); err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var store *entity.Store
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		users := factory.NewUserRepository()

		owner, err := users.FindByID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrSessionInvalid
			}

			return errors.Wrap(err, "failed to find store owner")
		}

		if err := requireCatalog(ctx, factory.NewReferenceRepository(), input.CategoryID, input.SubscriptionID); err != nil {
			return err
		}

		storeSlug, err := srv.slugs.Allocate(ctx, txSlugLookup(factory), input.Name)
		if err != nil {
			return err
		}

		store = &entity.Store{
			OwnerUserID:    owner.ID,
			Slug:           storeSlug,
			Name:           input.Name,
			Description:    input.Description,
			CategoryID:     input.CategoryID,
			SubscriptionID: input.SubscriptionID,
			Status:         entity.StoreStatusPending,
			ThemeColor:     input.ThemeColor,
			PhoneNumber:    input.PhoneNumber,
		}
		if err := factory.NewStoreRepository().Create(ctx, store); err != nil {
			if errors.Is(err, domainerrors.ErrSlugConflict) {
				return err
			}

			return errors.Wrap(err, "failed to create store")
		}

		if escalated := owner.Role.Escalate(entity.RoleMerchant); escalated != owner.Role {
			if err := users.UpdateRole(ctx, owner.ID, escalated); err != nil {
				return errors.Wrap(err, "failed to escalate owner role")
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Store onboarded",
		slog.String("store_id", store.ID.String()),
		slog.String("slug", store.Slug),
		slog.String("owner_id", store.OwnerUserID.String()),
	)

	return store, nil
}
