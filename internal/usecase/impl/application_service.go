// Package impl contains the implementation of the application's business logic.
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
	"storefront/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// applicationService implements the ApplicationUsecase interface.
type applicationService struct {
	appRepo    repository.ApplicationRepository
	refRepo    repository.ReferenceRepository
	storeRepo  repository.StoreRepository
	slugs      *slug.Authority
	dispatcher *Dispatcher
	now        func() time.Time
	logger     *slog.Logger
}

// ApplicationServiceParams holds dependencies for ApplicationService, injected by Fx.
type ApplicationServiceParams struct {
	fx.In

	AppRepo    repository.ApplicationRepository
	RefRepo    repository.ReferenceRepository
	StoreRepo  repository.StoreRepository
	Slugs      *slug.Authority
	Dispatcher *Dispatcher
	Logger     *slog.Logger
}

// NewApplicationService is the constructor for applicationService.
func NewApplicationService(params ApplicationServiceParams) usecase.ApplicationUsecase {
	return &applicationService{
		appRepo:    params.AppRepo,
		refRepo:    params.RefRepo,
		storeRepo:  params.StoreRepo,
		slugs:      params.Slugs,
		dispatcher: params.Dispatcher,
		now:        time.Now,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *applicationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Submit validates and stores a pending application. Every check runs before the
// single insert, so a rejected submission leaves nothing behind.
func (srv *applicationService) Submit(ctx context.Context, input *usecase.SubmitApplicationInput) (*entity.BusinessApplication, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	email := util.NormalizeEmail(input.Email)

	desiredSlug, err := srv.slugs.Validate(ctx, &slugLookup{refs: srv.refRepo, stores: srv.storeRepo}, input.DesiredSlug)
	if err != nil {
		return nil, err
	}

	if err := requireCatalog(ctx, srv.refRepo, input.CategoryID, input.SubscriptionID); err != nil {
		return nil, err
	}

	_, err = srv.appRepo.FindPendingByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domainerrors.ErrApplicationDuplicatePending
	case !errors.Is(err, repository.ErrApplicationNotFound):
		return nil, errors.Wrap(err, "failed to check pending applications")
	}

	app := &entity.BusinessApplication{
		ApplicantName:  input.ApplicantName,
		Email:          email,
		Phone:          input.Phone,
		StoreName:      input.StoreName,
		DesiredSlug:    desiredSlug,
		CategoryID:     input.CategoryID,
		SubscriptionID: input.SubscriptionID,
		DocumentURLs:   input.DocumentURLs,
		Status:         entity.ApplicationStatusPending,
	}

	// The partial unique index settles races the pre-check above cannot see.
	if err := srv.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domainerrors.ErrApplicationDuplicatePending) {
			return nil, domainerrors.ErrApplicationDuplicatePending
		}

		return nil, errors.Wrap(err, "failed to create application")
	}

	srv.log(ctx).Info("Business application submitted",
		slog.String("application_id", app.ID.String()),
		slog.String("email", util.MaskEmail(email)),
		slog.String("desired_slug", desiredSlug),
	)

	summary := toSummary(app)
	srv.dispatcher.Dispatch(ctx, "admin_alert", func(ctx context.Context, n service.Notifier) error {
		return n.SendAdminAlert(ctx, summary)
	})
	srv.dispatcher.Dispatch(ctx, "applicant_receipt", func(ctx context.Context, n service.Notifier) error {
		return n.SendApplicantReceipt(ctx, email, summary)
	})

	return app, nil
}

func (srv *applicationService) List(ctx context.Context, actor *entity.Subject, input *usecase.ListApplicationsInput) ([]*entity.BusinessApplication, error) {
	if _, err := requireAdmin(actor); err != nil {
		return nil, err
	}

	filter := repository.ApplicationFilter{Limit: defaultListLimit}
	if input != nil {
		if input.Status != "" && !input.Status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("status: must be one of: pending, approved, rejected")
		}
		filter.Status = input.Status
		filter.Offset = max(input.Offset, 0)
		if input.Limit > 0 {
			filter.Limit = min(input.Limit, maxListLimit)
		}
	}

	apps, err := srv.appRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}

	return apps, nil
}

func (srv *applicationService) Get(ctx context.Context, actor *entity.Subject, id uuid.UUID) (*entity.BusinessApplication, error) {
	if _, err := requireAdmin(actor); err != nil {
		return nil, err
	}

	return srv.findApplication(ctx, id)
}

func (srv *applicationService) findApplication(ctx context.Context, id uuid.UUID) (*entity.BusinessApplication, error) {
	app, err := srv.appRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, domainerrors.ErrApplicationNotFound
		}

		return nil, errors.Wrap(err, "failed to find application")
	}

	return app, nil
}

// Reject moves a pending application to rejected. Terminal applications are final.
func (srv *applicationService) Reject(ctx context.Context, actor *entity.Subject, id uuid.UUID, input *usecase.RejectApplicationInput) (*entity.BusinessApplication, error) {
	admin, err := requireAdmin(actor)
	if err != nil {
		return nil, err
	}

	var reason *string
	if input != nil {
		if err := validation.Struct(input); err != nil {
			return nil, err
		}
		if input.Reason != "" {
			reason = &input.Reason
		}
	}

	app, err := srv.findApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status.IsTerminal() {
		return nil, domainerrors.ErrApplicationAlreadyTerminal
	}

	err = srv.appRepo.TransitionStatus(ctx, id, repository.StatusTransition{
		From:         entity.ApplicationStatusPending,
		To:           entity.ApplicationStatusRejected,
		ReviewedBy:   admin.ID,
		ReviewedAt:   srv.now().UTC(),
		RejectReason: reason,
	})
	if err != nil {
		if errors.Is(err, repository.ErrApplicationStatusChanged) {
			return nil, domainerrors.ErrApplicationAlreadyTerminal
		}

		return nil, errors.Wrap(err, "failed to reject application")
	}

	srv.log(ctx).Info("Business application rejected",
		slog.String("application_id", id.String()),
		slog.String("admin_id", admin.ID.String()),
	)

	return srv.findApplication(ctx, id)
}

func (srv *applicationService) Purge(ctx context.Context, actor *entity.Subject, id uuid.UUID) error {
	admin, err := requireAdmin(actor)
	if err != nil {
		return err
	}

	if err := srv.appRepo.DeleteTerminal(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrApplicationNotFound):
			return domainerrors.ErrApplicationNotFound
		case errors.Is(err, repository.ErrApplicationStatusChanged):
			return domainerrors.ErrApplicationNotTerminal
		default:
			return errors.Wrap(err, "failed to purge application")
		}
	}

	srv.log(ctx).Info("Business application purged",
		slog.String("application_id", id.String()),
		slog.String("admin_id", admin.ID.String()),
	)

	return nil
}
