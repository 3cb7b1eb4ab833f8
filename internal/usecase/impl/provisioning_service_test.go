package impl

import (
	"context"
	"sync"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/infra/persistence/model"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProvisioningService_ApproveKandyCrafts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := env.createAdmin(t, "reviewer@storefront.local", entity.RoleAdmin).Subject()

	env.notifier.EXPECT().SendAdminAlert(mock.Anything, mock.Anything).Return(nil)
	env.notifier.EXPECT().SendApplicantReceipt(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	env.notifier.EXPECT().SendPasswordSetupLink(mock.Anything, "a@x.com", mock.AnythingOfType("string")).Return(nil).Once()

	input := env.submitInput("a@x.com", "Kandy Crafts", "kandy-crafts")
	input.DocumentURLs = []string{"https://docs.example.com/verification/license.pdf"}
	app, err := env.applicationService().Submit(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusPending, app.Status)

	svc := env.provisioningService()
	out, err := svc.Approve(ctx, actor, app.ID)
	require.NoError(t, err)

	assert.Equal(t, "kandy-crafts", out.Store.Slug)
	assert.Equal(t, entity.StoreStatusApproved, out.Store.Status)
	assert.Equal(t, out.User.ID, out.Store.OwnerUserID)
	assert.Equal(t, entity.RoleMerchant, out.User.Role)
	assert.False(t, out.ReusedAccount)
	assert.NotEmpty(t, out.TemporaryPassword)
	assert.True(t, env.hasher.Check(out.TemporaryPassword, out.User.PasswordHash))
	require.NotNil(t, out.Verification)
	assert.Equal(t, input.DocumentURLs, out.Verification.DocumentURLs)

	stored, err := env.apps.FindByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusApproved, stored.Status)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, actor.ID, *stored.ReviewedBy)

	_, err = svc.Approve(ctx, actor, app.ID)
	require.ErrorIs(t, err, domainerrors.ErrApplicationAlreadyApproved)
	assert.EqualValues(t, 1, env.fixture.Count(t, &model.StoreModel{}))

	env.dispatcher.Wait()
}

func TestProvisioningService_ConcurrentApproveCreatesOneStore(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	ctx := context.Background()
	actor := env.createAdmin(t, "reviewer@storefront.local", entity.RoleAdmin).Subject()
	app := env.submit(t, "a@x.com", "Kandy Crafts", "kandy-crafts")
	svc := env.provisioningService()

	const callers = 4
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		errs      []error
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Approve(ctx, actor, app.ID)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else {
				errs = append(errs, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	require.Len(t, errs, callers-1)
	for _, err := range errs {
		assert.ErrorIs(t, err, domainerrors.ErrApplicationAlreadyApproved)
	}
	assert.EqualValues(t, 1, env.fixture.Count(t, &model.StoreModel{}))
	assert.EqualValues(t, 1, env.fixture.Count(t, &model.UserModel{}))
}

func TestProvisioningService_SlugConflictLeavesNoOrphanAccount(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	ctx := context.Background()
	actor := env.createAdmin(t, "reviewer@storefront.local", entity.RoleAdmin).Subject()
	svc := env.provisioningService()

	first := env.submit(t, "first@x.com", "Shop", "shop")
	second := env.submit(t, "second@x.com", "Shop Too", "shop")

	_, err := svc.Approve(ctx, actor, first.ID)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, actor, second.ID)
	require.ErrorIs(t, err, domainerrors.ErrSlugConflict)

	assert.EqualValues(t, 1, env.fixture.Count(t, &model.StoreModel{}))
	assert.EqualValues(t, 1, env.fixture.Count(t, &model.UserModel{}))

	_, err = env.users.FindByEmail(ctx, "second@x.com")
	require.Error(t, err)

	stillPending, err := env.apps.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusPending, stillPending.Status)
}

func TestProvisioningService_ReusesCustomerAccount(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	ctx := context.Background()
	actor := env.createAdmin(t, "reviewer@storefront.local", entity.RoleAdmin).Subject()
	customer := env.createUser(t, "a@x.com", entity.RoleCustomer)
	app := env.submit(t, "a@x.com", "Kandy Crafts", "kandy-crafts")

	out, err := env.provisioningService().Approve(ctx, actor, app.ID)
	require.NoError(t, err)

	assert.True(t, out.ReusedAccount)
	assert.Empty(t, out.TemporaryPassword)
	assert.Equal(t, customer.ID, out.Store.OwnerUserID)

	reloaded, err := env.users.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMerchant, reloaded.Role)
	assert.Equal(t, customer.PasswordHash, reloaded.PasswordHash)

	env.dispatcher.Wait()
	env.notifier.AssertNotCalled(t, "SendPasswordSetupLink", mock.Anything, mock.Anything, mock.Anything)
}

func TestProvisioningService_ApproveRejections(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	ctx := context.Background()
	admin := env.createAdmin(t, "reviewer@storefront.local", entity.RoleAdmin).Subject()
	merchant := env.createUser(t, "m@x.com", entity.RoleMerchant).Subject()
	svc := env.provisioningService()

	app := env.submit(t, "a@x.com", "Kandy Crafts", "kandy-crafts")

	_, err := svc.Approve(ctx, merchant, app.ID)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = svc.Approve(ctx, nil, app.ID)
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = svc.Approve(ctx, admin, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrApplicationNotFound)

	_, err = env.applicationService().Reject(ctx, admin, app.ID, nil)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, admin, app.ID)
	require.ErrorIs(t, err, domainerrors.ErrApplicationAlreadyTerminal)
	assert.Zero(t, env.fixture.Count(t, &model.StoreModel{}))
}

func TestProvisioningService_RestrictedAfterSubmission(t *testing.T) {
	env := newTestEnv(t)
	env.allowNotifications()
	ctx := context.Background()
	actor := env.createAdmin(t, "reviewer@storefront.local", entity.RoleAdmin).Subject()
	app := env.submit(t, "a@x.com", "Kandy Crafts", "kandy-crafts")

	_, err := env.referenceService().AddRestrictedSlug(ctx, actor, &usecase.AddRestrictedSlugInput{Word: "kandy-crafts", Reason: "trademark"})
	require.NoError(t, err)

	_, err = env.provisioningService().Approve(ctx, actor, app.ID)
	require.ErrorIs(t, err, domainerrors.ErrSlugReserved)
	assert.Zero(t, env.fixture.Count(t, &model.UserModel{}))
}
