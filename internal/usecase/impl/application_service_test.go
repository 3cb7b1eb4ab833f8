package impl

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplicationService_SubmitNotifiesReviewersAndApplicant(t *testing.T) {
	env := newTestEnv(t)

	env.notifier.EXPECT().
		SendAdminAlert(mock.Anything, mock.MatchedBy(func(s *service.ApplicationSummary) bool {
			return s.DesiredSlug == "kandy-crafts" && s.StoreName == "Kandy Crafts"
		})).
		Return(nil).Once()
	env.notifier.EXPECT().
		SendApplicantReceipt(mock.Anything, "a@x.com", mock.Anything).
		Return(nil).Once()

	app := env.submit(t, "A@X.com", "Kandy Crafts", "kandy-crafts")
	env.dispatcher.Wait()

	assert.Equal(t, entity.ApplicationStatusPending, app.Status)
	assert.Equal(t, "a@x.com", app.Email)
	assert.NotEqual(t, uuid.Nil, app.ID)
}

func TestApplicationService_DuplicatePendingUntilTerminal(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	ctx := context.Background()
	svc := env.applicationService()
	admin := env.createAdmin(t, "reviewer@storefront.local", entity.RoleAdmin)

	first := env.submit(t, "a@x.com", "Kandy Crafts", "kandy-crafts")

	_, err := svc.Submit(ctx, env.submitInput("a@x.com", "Kandy Crafts Two", "kandy-two"))
	require.ErrorIs(t, err, domainerrors.ErrApplicationDuplicatePending)

	_, err = svc.Reject(ctx, admin.Subject(), first.ID, &usecase.RejectApplicationInput{Reason: "incomplete documents"})
	require.NoError(t, err)

	second, err := svc.Submit(ctx, env.submitInput("a@x.com", "Kandy Crafts Two", "kandy-two"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestApplicationService_ReservedSlugRejectedBeforeAnyWrite(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.applicationService().Submit(context.Background(), env.submitInput("a@x.com", "Admin Shop", "admin"))

	require.ErrorIs(t, err, domainerrors.ErrSlugReserved)
	assert.Zero(t, env.fixture.Count(t, &model.BusinessApplicationModel{}))
	env.notifier.AssertNotCalled(t, "SendAdminAlert", mock.Anything, mock.Anything)
}

func TestApplicationService_SubmitRejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.applicationService()

	tests := []struct {
		name    string
		mutate  func(in *usecase.SubmitApplicationInput)
		wantErr error
	}{
		{
			name:    "invalid email",
			mutate:  func(in *usecase.SubmitApplicationInput) { in.Email = "not-an-email" },
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "slug format",
			mutate:  func(in *usecase.SubmitApplicationInput) { in.DesiredSlug = "Kandy Crafts!" },
			wantErr: domainerrors.ErrSlugInvalidFormat,
		},
		{
			name:    "unknown category",
			mutate:  func(in *usecase.SubmitApplicationInput) { in.CategoryID = uuid.New() },
			wantErr: domainerrors.ErrCategoryNotFound,
		},
		{
			name:    "unknown plan",
			mutate:  func(in *usecase.SubmitApplicationInput) { in.SubscriptionID = uuid.New() },
			wantErr: domainerrors.ErrPlanNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := env.submitInput("a@x.com", "Kandy Crafts", "kandy-crafts")
			tt.mutate(in)

			_, err := svc.Submit(ctx, in)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Zero(t, env.fixture.Count(t, &model.BusinessApplicationModel{}))
}

func TestApplicationService_NotifierFailureIsSwallowed(t *testing.T) {
	env := newTestEnv(t)

	env.notifier.EXPECT().SendAdminAlert(mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
	env.notifier.EXPECT().SendApplicantReceipt(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, string, *service.ApplicationSummary) error {
			panic("notifier bug")
		}).Once()

	app := env.submit(t, "a@x.com", "Kandy Crafts", "kandy-crafts")
	env.dispatcher.Wait()

	assert.Equal(t, entity.ApplicationStatusPending, app.Status)
	assert.EqualValues(t, 1, env.fixture.Count(t, &model.BusinessApplicationModel{}))
}

func TestApplicationService_AdminOnlyOperations(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	ctx := context.Background()
	svc := env.applicationService()

	app := env.submit(t, "a@x.com", "Kandy Crafts", "kandy-crafts")
	merchant := env.createUser(t, "m@x.com", entity.RoleMerchant)

	_, err := svc.List(ctx, merchant.Subject(), nil)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = svc.Get(ctx, nil, app.ID)
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = svc.Reject(ctx, merchant.Subject(), app.ID, nil)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.ErrorIs(t, svc.Purge(ctx, merchant.Subject(), app.ID), domainerrors.ErrForbidden)
}

func TestApplicationService_ListGetRejectPurge(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	ctx := context.Background()
	svc := env.applicationService()
	actor := env.createAdmin(t, "reviewer@storefront.local", entity.RoleAdmin).Subject()

	older := env.submit(t, "a@x.com", "Kandy Crafts", "kandy-crafts")
	newer := env.submit(t, "b@x.com", "Bold Bakes", "bold-bakes")

	apps, err := svc.List(ctx, actor, &usecase.ListApplicationsInput{Status: entity.ApplicationStatusPending})
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, newer.ID, apps[0].ID)

	_, err = svc.List(ctx, actor, &usecase.ListApplicationsInput{Status: "archived"})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.Get(ctx, actor, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrApplicationNotFound)

	require.ErrorIs(t, svc.Purge(ctx, actor, older.ID), domainerrors.ErrApplicationNotTerminal)

	rejected, err := svc.Reject(ctx, actor, older.ID, &usecase.RejectApplicationInput{Reason: "duplicate"})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectReason)
	assert.Equal(t, "duplicate", *rejected.RejectReason)
	require.NotNil(t, rejected.ReviewedBy)
	assert.Equal(t, actor.ID, *rejected.ReviewedBy)

	_, err = svc.Reject(ctx, actor, older.ID, nil)
	require.ErrorIs(t, err, domainerrors.ErrApplicationAlreadyTerminal)

	require.NoError(t, svc.Purge(ctx, actor, older.ID))
	_, err = svc.Get(ctx, actor, older.ID)
	require.ErrorIs(t, err, domainerrors.ErrApplicationNotFound)
	require.ErrorIs(t, svc.Purge(ctx, actor, older.ID), domainerrors.ErrApplicationNotFound)
}
