package impl

import (
	"context"
	"sync"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminService_SuperAdminCannotLockThemselvesOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.adminService()
	root := env.createAdmin(t, "root@x.com", entity.RoleSuperAdmin)

	for _, status := range []entity.AdminStatus{entity.AdminStatusDisabled, entity.AdminStatusSuspended} {
		_, err := svc.UpdateStatus(ctx, root.Subject(), root.ID, status)
		require.ErrorIs(t, err, domainerrors.ErrSelfLockout, status)
	}

	_, err := svc.UpdateRole(ctx, root.Subject(), root.ID, entity.RoleAdmin)
	require.ErrorIs(t, err, domainerrors.ErrSelfLockout)

	same, err := svc.UpdateStatus(ctx, root.Subject(), root.ID, entity.AdminStatusActive)
	require.NoError(t, err)
	assert.Equal(t, entity.AdminStatusActive, same.Status)

	reloaded, err := env.admins.FindByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, reloaded.Role)
}

func TestAdminService_ManageOtherAdmins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.adminService()
	root := env.createAdmin(t, "root@x.com", entity.RoleSuperAdmin).Subject()

	created, err := svc.Create(ctx, root, &usecase.CreateAdminInput{
		Email:       "Ops@X.com",
		Password:    testPassword,
		DisplayName: "Ops",
		Role:        entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "ops@x.com", created.Email)
	assert.Equal(t, entity.AdminStatusActive, created.Status)

	_, err = svc.Create(ctx, root, &usecase.CreateAdminInput{Email: "ops@x.com", Password: testPassword, DisplayName: "Ops", Role: entity.RoleAdmin})
	require.ErrorIs(t, err, domainerrors.ErrAdminAlreadyExists)

	_, err = svc.Create(ctx, root, &usecase.CreateAdminInput{Email: "x@x.com", Password: testPassword, DisplayName: "X", Role: entity.RoleMerchant})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	disabled, err := svc.UpdateStatus(ctx, root, created.ID, entity.AdminStatusDisabled)
	require.NoError(t, err)
	assert.Equal(t, entity.AdminStatusDisabled, disabled.Status)

	promoted, err := svc.UpdateRole(ctx, root, created.ID, entity.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, promoted.Role)

	_, err = svc.UpdateRole(ctx, root, created.ID, entity.RoleCustomer)
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = svc.UpdateStatus(ctx, root, uuid.New(), entity.AdminStatusDisabled)
	require.ErrorIs(t, err, domainerrors.ErrAdminNotFound)

	admins, err := svc.List(ctx, root)
	require.NoError(t, err)
	assert.Len(t, admins, 2)
}

func TestAdminService_PlainAdminIsNotSuperAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.adminService()
	ops := env.createAdmin(t, "ops@x.com", entity.RoleAdmin)
	other := env.createAdmin(t, "other@x.com", entity.RoleAdmin)
	merchant := env.createUser(t, "m@x.com", entity.RoleMerchant)

	_, err := svc.Create(ctx, ops.Subject(), &usecase.CreateAdminInput{Email: "x@x.com", Password: testPassword, DisplayName: "X", Role: entity.RoleAdmin})
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = svc.UpdateStatus(ctx, ops.Subject(), other.ID, entity.AdminStatusDisabled)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = svc.IssueRecoveryCode(ctx, ops.Subject(), other.ID)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = svc.List(ctx, merchant.Subject())
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	code, err := svc.IssueRecoveryCode(ctx, ops.Subject(), ops.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, code)
}

func TestAdminService_RecoveryCodeIsOneTime(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.adminService()
	root := env.createAdmin(t, "root@x.com", entity.RoleSuperAdmin).Subject()
	ops := env.createAdmin(t, "ops@x.com", entity.RoleAdmin)

	code, err := svc.IssueRecoveryCode(ctx, root, ops.ID)
	require.NoError(t, err)

	stored, err := env.admins.FindByID(ctx, ops.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.RecoveryCodeHash)
	assert.NotEqual(t, code, *stored.RecoveryCodeHash)

	err = svc.Recover(ctx, &usecase.RecoverAdminInput{Email: "ops@x.com", Code: "WRONG-CODE", NewPassword: "Recovered#2025"})
	require.ErrorIs(t, err, domainerrors.ErrRecoveryCodeInvalid)

	const newPassword = "Recovered#2025"
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.Recover(ctx, &usecase.RecoverAdminInput{Email: "OPS@x.com", Code: code, NewPassword: newPassword})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
				return
			}
			assert.ErrorIs(t, err, domainerrors.ErrRecoveryCodeInvalid)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)

	_, err = env.authService().LoginAdmin(ctx, &usecase.LoginInput{Email: "ops@x.com", Password: newPassword})
	require.NoError(t, err)

	err = svc.Recover(ctx, &usecase.RecoverAdminInput{Email: "nobody@x.com", Code: code, NewPassword: newPassword})
	require.ErrorIs(t, err, domainerrors.ErrRecoveryCodeInvalid)
}

func TestAdminService_EnsureSuperAdminIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.adminService()

	first, created, err := svc.EnsureSuperAdmin(ctx, "Root@X.com", testPassword, "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.RoleSuperAdmin, first.Role)
	assert.Equal(t, "Super Admin", first.DisplayName)

	second, created, err := svc.EnsureSuperAdmin(ctx, "root@x.com", "Different#2025", "Root")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	_, _, err = svc.EnsureSuperAdmin(ctx, "", testPassword, "")
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
