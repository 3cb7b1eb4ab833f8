package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignupAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.authService()

	session, err := svc.SignupCustomer(ctx, &usecase.SignupInput{Email: "Shopper@X.com", Password: testPassword, DisplayName: "Shopper"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, session.Subject.Role)
	assert.Equal(t, entity.SubjectKindUser, session.Subject.Kind)

	claims, err := svc.CurrentSubject(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Subject.ID, claims.Subject.ID)

	_, err = svc.SignupCustomer(ctx, &usecase.SignupInput{Email: "shopper@x.com", Password: testPassword, DisplayName: "Again"})
	require.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)

	_, err = svc.SignupCustomer(ctx, &usecase.SignupInput{Email: "weak@x.com", Password: "short", DisplayName: "Weak"})
	require.ErrorIs(t, err, domainerrors.ErrPasswordStrength)

	login, err := svc.LoginUser(ctx, &usecase.LoginInput{Email: "shopper@x.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, session.Subject.ID, login.Subject.ID)

	_, err = svc.LoginUser(ctx, &usecase.LoginInput{Email: "shopper@x.com", Password: "Wrong#2024x"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = svc.LoginUser(ctx, &usecase.LoginInput{Email: "nobody@x.com", Password: testPassword})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_UserAndAdminIdentitiesAreDisjoint(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.authService()

	env.createUser(t, "same@x.com", entity.RoleMerchant)

	_, err := svc.LoginAdmin(ctx, &usecase.LoginInput{Email: "same@x.com", Password: testPassword})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	env.createAdmin(t, "ops@x.com", entity.RoleAdmin)

	_, err = svc.LoginUser(ctx, &usecase.LoginInput{Email: "ops@x.com", Password: testPassword})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	session, err := svc.LoginAdmin(ctx, &usecase.LoginInput{Email: "ops@x.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, entity.SubjectKindAdmin, session.Subject.Kind)
}

func TestAuthService_DisabledAdminCannotLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.authService()

	admin := env.createAdmin(t, "ops@x.com", entity.RoleAdmin)
	require.NoError(t, env.admins.UpdateStatus(ctx, admin.ID, entity.AdminStatusSuspended))

	_, err := svc.LoginAdmin(ctx, &usecase.LoginInput{Email: "ops@x.com", Password: testPassword})
	require.ErrorIs(t, err, domainerrors.ErrAccountDisabled)

	_, err = svc.RefreshSubject(ctx, &entity.SessionClaims{Subject: *admin.Subject(), ExpiresAt: time.Now().Add(time.Hour)})
	require.ErrorIs(t, err, domainerrors.ErrAccountDisabled)
}

func TestAuthService_SetupTokenIsSingleUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := env.createAdmin(t, "reviewer@storefront.local", entity.RoleAdmin).Subject()

	var setupToken string
	env.notifier.EXPECT().SendAdminAlert(mock.Anything, mock.Anything).Return(nil)
	env.notifier.EXPECT().SendApplicantReceipt(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	env.notifier.EXPECT().SendPasswordSetupLink(mock.Anything, "a@x.com", mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, token string) error {
			setupToken = token
			return nil
		}).Once()

	app := env.submit(t, "a@x.com", "Kandy Crafts", "kandy-crafts")
	out, err := env.provisioningService().Approve(ctx, actor, app.ID)
	require.NoError(t, err)
	env.dispatcher.Wait()
	require.NotEmpty(t, setupToken)

	svc := env.authService()
	const newPassword = "Crafted#2025y"

	session, err := svc.SetupPassword(ctx, &usecase.SetupPasswordInput{Token: setupToken, Password: newPassword})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, session.Subject.ID)
	assert.Equal(t, entity.RoleMerchant, session.Subject.Role)

	_, err = svc.SetupPassword(ctx, &usecase.SetupPasswordInput{Token: setupToken, Password: "Another#2026z"})
	require.ErrorIs(t, err, domainerrors.ErrSetupTokenInvalid)

	_, err = svc.LoginUser(ctx, &usecase.LoginInput{Email: "a@x.com", Password: out.TemporaryPassword})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = svc.LoginUser(ctx, &usecase.LoginInput{Email: "a@x.com", Password: newPassword})
	require.NoError(t, err)

	_, err = svc.SetupPassword(ctx, &usecase.SetupPasswordInput{Token: "garbage", Password: newPassword})
	require.ErrorIs(t, err, domainerrors.ErrSetupTokenInvalid)
}

func TestAuthService_RefreshPicksUpEscalation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.authService()

	customer := env.createUser(t, "a@x.com", entity.RoleCustomer)
	login, err := svc.LoginUser(ctx, &usecase.LoginInput{Email: "a@x.com", Password: testPassword})
	require.NoError(t, err)
	stale, err := svc.CurrentSubject(ctx, login.Token)
	require.NoError(t, err)

	require.NoError(t, env.users.UpdateRole(ctx, customer.ID, entity.RoleMerchant))

	refreshed, err := svc.RefreshSubject(ctx, stale)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMerchant, refreshed.Subject.Role)
	assert.True(t, refreshed.ExpiresAt.Equal(stale.ExpiresAt), "refresh must not extend the session")

	claims, err := svc.CurrentSubject(ctx, refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMerchant, claims.Subject.Role)
	assert.Equal(t, stale.ExpiresAt.Unix(), claims.ExpiresAt.Unix())

	profile, err := svc.Profile(ctx, refreshed.Subject)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", profile.Email)
}

func TestAuthService_RefreshRejectsExpiredSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.authService()

	customer := env.createUser(t, "a@x.com", entity.RoleCustomer)

	_, err := svc.RefreshSubject(ctx, &entity.SessionClaims{
		Subject:   *customer.Subject(),
		IssuedAt:  time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
}

func TestAuthService_CurrentSubjectRejectsBadTokens(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService()

	_, err := svc.CurrentSubject(context.Background(), "")
	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = svc.CurrentSubject(context.Background(), "not.a.jwt")
	require.ErrorIs(t, err, domainerrors.ErrSessionInvalid)

	setup, err := env.tokens.IssuePasswordSetup(env.fixture.Category.ID, "a@x.com", "")
	require.NoError(t, err)
	_, err = svc.CurrentSubject(context.Background(), setup)
	require.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
}
