package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/authz"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

// storeService implements the StoreUsecase interface.
type storeService struct {
	storeRepo repository.StoreRepository
	qrService service.QRCodeService
	logger    *slog.Logger
}

// StoreServiceParams holds dependencies for StoreService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	StoreRepo repository.StoreRepository
	QRService service.QRCodeService
	Logger    *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		storeRepo: params.StoreRepo,
		qrService: params.QRService,
		logger:    params.Logger,
	}
}

// GetBySlug hides stores that are not approved behind the same not-found error.
func (srv *storeService) GetBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	store, err := srv.storeRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by slug")
	}

	if !store.IsPublic() {
		return nil, domainerrors.ErrStoreNotFound
	}

	return store, nil
}

func (srv *storeService) ListMine(ctx context.Context, actor *entity.Subject) ([]*entity.Store, error) {
	if _, err := authz.RequireRole(actor, entity.RoleCustomer); err != nil {
		return nil, err
	}

	stores, err := srv.storeRepo.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	return stores, nil
}

func (srv *storeService) StorefrontQR(ctx context.Context, slug string) ([]byte, error) {
	store, err := srv.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateStorefrontQR(store.Slug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate storefront QR code")
	}

	return png, nil
}
