package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/domain/slug"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/persistence/sqlitetest"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Kandy#2024x"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:    bcrypt.MinCost,
			SessionTTL:    time.Hour,
			SetupTokenTTL: time.Hour,
		},
		Notification: &config.NotificationConfig{Timeout: time.Second},
	}
	cfg.SecretKey.Session = "test-session-secret"
	cfg.SecretKey.PasswordSetup = "test-setup-secret"

	return cfg
}

// testEnv wires the services against a migrated SQLite database with real hashing
// and tokens. Only the notifier is mocked.
type testEnv struct {
	fixture    *sqlitetest.Fixture
	cfg        *config.Config
	logger     *slog.Logger
	notifier   *mockSvc.MockNotifier
	dispatcher *Dispatcher
	hasher     service.PasswordHasher
	passwords  service.PasswordGenerator
	tokens     service.TokenService
	slugs      *slug.Authority
	txManager  repository.TransactionManager

	users  repository.UserRepository
	admins repository.AdminRepository
	apps   repository.ApplicationRepository
	stores repository.StoreRepository
	refs   repository.ReferenceRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fixture := sqlitetest.Open(t)
	cfg := newTestConfig()
	logger := newDiscardLogger()

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	notifier := mockSvc.NewMockNotifier(t)
	dispatcher := NewDispatcher(DispatcherParams{Notifier: notifier, Config: cfg, Logger: logger})
	t.Cleanup(dispatcher.Wait)

	return &testEnv{
		fixture:    fixture,
		cfg:        cfg,
		logger:     logger,
		notifier:   notifier,
		dispatcher: dispatcher,
		hasher:     auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		passwords:  auth.NewPasswordGenerator(),
		tokens:     tokens,
		slugs:      slug.NewAuthority(slug.Options{}),
		txManager:  postgres.NewTransactionManager(fixture.DB),
		users:      postgres.NewUserRepository(fixture.DB),
		admins:     postgres.NewAdminRepository(fixture.DB),
		apps:       postgres.NewApplicationRepository(fixture.DB),
		stores:     postgres.NewStoreRepository(fixture.DB),
		refs:       postgres.NewReferenceRepository(fixture.DB),
	}
}

// allowNotifications accepts any notification without asserting on it.
func (env *testEnv) allowNotifications() {
	env.notifier.EXPECT().SendAdminAlert(mock.Anything, mock.Anything).Return(nil).Maybe()
	env.notifier.EXPECT().SendApplicantReceipt(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	env.notifier.EXPECT().SendPasswordSetupLink(mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (env *testEnv) applicationService() usecase.ApplicationUsecase {
	return NewApplicationService(ApplicationServiceParams{
		AppRepo:    env.apps,
		RefRepo:    env.refs,
		StoreRepo:  env.stores,
		Slugs:      env.slugs,
		Dispatcher: env.dispatcher,
		Logger:     env.logger,
	})
}

func (env *testEnv) provisioningService() usecase.ProvisioningUsecase {
	return NewProvisioningService(ProvisioningServiceParams{
		TxManager:    env.txManager,
		Hasher:       env.hasher,
		Passwords:    env.passwords,
		TokenService: env.tokens,
		Slugs:        env.slugs,
		Dispatcher:   env.dispatcher,
		Logger:       env.logger,
	})
}

func (env *testEnv) authService() usecase.AuthUsecase {
	return NewAuthService(AuthServiceParams{
		UserRepo:     env.users,
		AdminRepo:    env.admins,
		Hasher:       env.hasher,
		TokenService: env.tokens,
		Logger:       env.logger,
	})
}

func (env *testEnv) adminService() usecase.AdminUsecase {
	return NewAdminService(AdminServiceParams{
		AdminRepo: env.admins,
		TxManager: env.txManager,
		Hasher:    env.hasher,
		Passwords: env.passwords,
		Logger:    env.logger,
	})
}

func (env *testEnv) onboardingService() usecase.OnboardingUsecase {
	return NewOnboardingService(OnboardingServiceParams{
		TxManager: env.txManager,
		Slugs:     env.slugs,
		Logger:    env.logger,
	})
}

func (env *testEnv) referenceService() usecase.ReferenceUsecase {
	return NewReferenceService(ReferenceServiceParams{
		RefRepo:   env.refs,
		StoreRepo: env.stores,
		Slugs:     env.slugs,
		Logger:    env.logger,
	})
}

func (env *testEnv) createAdmin(t *testing.T, email string, role entity.Role) *entity.AdminUser {
	t.Helper()

	hash, err := env.hasher.Hash(testPassword)
	require.NoError(t, err)

	admin := &entity.AdminUser{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Reviewer",
		Role:         role,
		Status:       entity.AdminStatusActive,
	}
	require.NoError(t, env.admins.Create(context.Background(), admin))

	return admin
}

func (env *testEnv) createUser(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()

	hash, err := env.hasher.Hash(testPassword)
	require.NoError(t, err)

	user := &entity.User{Email: email, PasswordHash: hash, DisplayName: "Shopper", Role: role}
	require.NoError(t, env.users.Create(context.Background(), user))

	return user
}

func (env *testEnv) submitInput(email, storeName, desiredSlug string) *usecase.SubmitApplicationInput {
	return &usecase.SubmitApplicationInput{
		ApplicantName:  "Kandy Owner",
		Email:          email,
		Phone:          "+94 77 123 4567",
		StoreName:      storeName,
		DesiredSlug:    desiredSlug,
		CategoryID:     env.fixture.Category.ID,
		SubscriptionID: env.fixture.Plan.ID,
	}
}

func (env *testEnv) submit(t *testing.T, email, storeName, desiredSlug string) *entity.BusinessApplication {
	t.Helper()

	app, err := env.applicationService().Submit(context.Background(), env.submitInput(email, storeName, desiredSlug))
	require.NoError(t, err)

	return app
}
