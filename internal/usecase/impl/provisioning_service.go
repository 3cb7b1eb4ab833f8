package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/domain/slug"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// provisioningService implements the ProvisioningUsecase interface.
type provisioningService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	passwords    service.PasswordGenerator
	tokenService service.TokenService
	slugs        *slug.Authority
	dispatcher   *Dispatcher
	now          func() time.Time
	logger       *slog.Logger
}

// ProvisioningServiceParams holds dependencies for ProvisioningService, injected by Fx.
type ProvisioningServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	Passwords    service.PasswordGenerator
	TokenService service.TokenService
	Slugs        *slug.Authority
	Dispatcher   *Dispatcher
	Logger       *slog.Logger
}

// NewProvisioningService is the constructor for provisioningService.
func NewProvisioningService(params ProvisioningServiceParams) usecase.ProvisioningUsecase {
	return &provisioningService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		passwords:    params.Passwords,
		tokenService: params.TokenService,
		slugs:        params.Slugs,
		dispatcher:   params.Dispatcher,
		now:          time.Now,
		logger:       params.Logger,
	}
}

func (srv *provisioningService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Approve provisions the owner account, the store and its verification record and
// marks the application approved, all in one transaction. The password setup link
// is dispatched only after commit and only for accounts created here.
func (srv *provisioningService) Approve(ctx context.Context, actor *entity.Subject, applicationID uuid.UUID) (*usecase.ApproveOutput, error) {
	admin, err := requireAdmin(actor)
	if err != nil {
		return nil, err
	}

	var out *usecase.ApproveOutput
	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		var txErr error
		out, txErr = srv.approveInTx(ctx, factory, admin, applicationID)

		return txErr
	})
	if err != nil {
		srv.log(ctx).Warn("Application approval rolled back",
			slog.String("application_id", applicationID.String()),
			slog.Any("error", err),
		)

		return nil, err
	}

	srv.log(ctx).Info("Application approved",
		slog.String("application_id", applicationID.String()),
		slog.String("store_id", out.Store.ID.String()),
		slog.String("slug", out.Store.Slug),
		slog.Bool("reused_account", out.ReusedAccount),
		slog.String("admin_id", admin.ID.String()),
	)

	if !out.ReusedAccount {
		srv.dispatchSetupLink(ctx, out.User)
	}

	return out, nil
}

func (srv *provisioningService) approveInTx(ctx context.Context, factory repository.RepositoryFactory, admin *entity.Subject, applicationID uuid.UUID) (*usecase.ApproveOutput, error) {
	apps := factory.NewApplicationRepository()

	app, err := apps.FindByIDForUpdate(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, domainerrors.ErrApplicationNotFound
		}

		return nil, errors.Wrap(err, "failed to lock application")
	}

	switch app.Status {
	case entity.ApplicationStatusPending:
	case entity.ApplicationStatusApproved:
		return nil, domainerrors.ErrApplicationAlreadyApproved
	default:
		return nil, domainerrors.ErrApplicationAlreadyTerminal
	}

	out := &usecase.ApproveOutput{Application: app}

	out.User, out.TemporaryPassword, out.ReusedAccount, err = srv.resolveOwner(ctx, factory.NewUserRepository(), app)
	if err != nil {
		return nil, err
	}

	out.Store, err = srv.createStore(ctx, factory, app, out.User)
	if err != nil {
		return nil, err
	}

	if app.HasDocuments() {
		out.Verification = &entity.Verification{StoreID: out.Store.ID, DocumentURLs: app.DocumentURLs}
		if err := factory.NewVerificationRepository().Create(ctx, out.Verification); err != nil {
			return nil, errors.Wrap(err, "failed to create verification")
		}
	}

	reviewedAt := srv.now().UTC()
	err = apps.TransitionStatus(ctx, app.ID, repository.StatusTransition{
		From:       entity.ApplicationStatusPending,
		To:         entity.ApplicationStatusApproved,
		ReviewedBy: admin.ID,
		ReviewedAt: reviewedAt,
	})
	if err != nil {
		if errors.Is(err, repository.ErrApplicationStatusChanged) {
			return nil, domainerrors.ErrApplicationAlreadyApproved
		}

		return nil, errors.Wrap(err, "failed to mark application approved")
	}

	app.Status = entity.ApplicationStatusApproved
	app.ReviewedBy = &admin.ID
	app.ReviewedAt = &reviewedAt

	return out, nil
}

// resolveOwner reuses the account registered under the application email, escalating a
// customer to merchant, or creates a merchant with a random temporary password.
func (srv *provisioningService) resolveOwner(ctx context.Context, users repository.UserRepository, app *entity.BusinessApplication) (*entity.User, string, bool, error) {
	email := util.NormalizeEmail(app.Email)

	user, err := users.FindByEmail(ctx, email)
	if err == nil {
		if role := user.Role.Escalate(entity.RoleMerchant); role != user.Role {
			if err := users.UpdateRole(ctx, user.ID, role); err != nil {
				return nil, "", false, errors.Wrap(err, "failed to escalate user role")
			}
			user.Role = role
		}

		return user, "", true, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", false, errors.Wrap(err, "failed to find user by email")
	}

	tempPassword, err := srv.passwords.Generate()
	if err != nil {
		return nil, "", false, errors.Wrap(err, "failed to generate temporary password")
	}

	hash, err := srv.hasher.Hash(tempPassword)
	if err != nil {
		return nil, "", false, err
	}

	user = &entity.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  app.ApplicantName,
		Role:         entity.RoleMerchant,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, "", false, errors.Wrap(err, "failed to create merchant account")
	}

	return user, tempPassword, false, nil
}

// createStore re-validates the desired slug against the transaction's view and inserts
// the store. Any slug collision found here is a conflict for the admin to resolve.
func (srv *provisioningService) createStore(ctx context.Context, factory repository.RepositoryFactory, app *entity.BusinessApplication, owner *entity.User) (*entity.Store, error) {
	desiredSlug, err := srv.slugs.Validate(ctx, txSlugLookup(factory), app.DesiredSlug)
	if err != nil {
		if errors.Is(err, domainerrors.ErrSlugTaken) {
			return nil, domainerrors.ErrSlugConflict.WithDetails(app.DesiredSlug)
		}

		return nil, err
	}

	if err := requireCatalog(ctx, factory.NewReferenceRepository(), app.CategoryID, app.SubscriptionID); err != nil {
		return nil, err
	}

	store := &entity.Store{
		OwnerUserID:    owner.ID,
		Slug:           desiredSlug,
		Name:           app.StoreName,
		CategoryID:     app.CategoryID,
		SubscriptionID: app.SubscriptionID,
		Status:         entity.StoreStatusApproved,
		PhoneNumber:    app.Phone,
	}
	if err := factory.NewStoreRepository().Create(ctx, store); err != nil {
		if errors.Is(err, domainerrors.ErrSlugConflict) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to create store")
	}

	return store, nil
}

func (srv *provisioningService) dispatchSetupLink(ctx context.Context, user *entity.User) {
	token, err := srv.tokenService.IssuePasswordSetup(user.ID, user.Email, user.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Failed to sign password setup token",
			slog.String("user_id", user.ID.String()),
			slog.Any("error", err),
		)

		return
	}

	email := user.Email
	srv.dispatcher.Dispatch(ctx, "password_setup", func(ctx context.Context, n service.Notifier) error {
		return n.SendPasswordSetupLink(ctx, email, token)
	})
}
