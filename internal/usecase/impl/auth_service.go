package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"
	"storefront/internal/util"
	"storefront/internal/validation"

	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	adminRepo    repository.AdminRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	AdminRepo    repository.AdminRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		adminRepo:    params.AdminRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SignupCustomer registers a customer and signs it in.
func (srv *authService) SignupCustomer(ctx context.Context, input *usecase.SignupInput) (*usecase.SessionOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	email := util.NormalizeEmail(input.Email)

	_, err := srv.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domainerrors.ErrUserAlreadyExists
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
		Role:         entity.RoleCustomer,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrUserAlreadyExists) {
			return nil, domainerrors.ErrUserAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("Customer signed up", slog.String("user_id", user.ID.String()))

	return srv.issue(user.Subject())
}

// LoginUser authenticates a customer or merchant.
func (srv *authService) LoginUser(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByEmail(ctx, util.NormalizeEmail(input.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to find user by email")
		}
		srv.burnCheck(input.Password)

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.HasPassword() {
		srv.burnCheck(input.Password)

		return nil, domainerrors.ErrInvalidCredentials
	}
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	srv.log(ctx).Info("User logged in", slog.String("user_id", user.ID.String()), slog.String("role", user.Role.String()))

	return srv.issue(user.Subject())
}

// LoginAdmin authenticates an administrator. Disabled and suspended admins are
// refused after the password check so status is not disclosed to guessers.
func (srv *authService) LoginAdmin(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	admin, err := srv.adminRepo.FindByEmail(ctx, util.NormalizeEmail(input.Email))
	if err != nil {
		if !errors.Is(err, repository.ErrAdminNotFound) {
			return nil, errors.Wrap(err, "failed to find admin by email")
		}
		srv.burnCheck(input.Password)

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !srv.hasher.Check(input.Password, admin.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !admin.IsActive() {
		srv.log(ctx).Warn("Inactive admin attempted login",
			slog.String("admin_id", admin.ID.String()),
			slog.String("status", string(admin.Status)),
		)

		return nil, domainerrors.ErrAccountDisabled
	}

	srv.log(ctx).Info("Admin logged in", slog.String("admin_id", admin.ID.String()))

	return srv.issue(admin.Subject())
}

// SetupPassword consumes a password setup token. The token is bound to the password
// hash it was issued against, so it stops working as soon as the password changes.
func (srv *authService) SetupPassword(ctx context.Context, input *usecase.SetupPasswordInput) (*usecase.SessionOutput, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	claims, err := srv.tokenService.ValidatePasswordSetup(input.Token)
	if err != nil {
		return nil, domainerrors.ErrSetupTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrSetupTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	current := srv.tokenService.PasswordFingerprint(user.PasswordHash)
	if subtle.ConstantTimeCompare([]byte(current), []byte(claims.Fingerprint)) != 1 || user.Email != claims.Email {
		return nil, domainerrors.ErrSetupTokenInvalid
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	if err := srv.userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return nil, errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password set via setup link", slog.String("user_id", user.ID.String()))

	return srv.issue(user.Subject())
}

func (srv *authService) CurrentSubject(_ context.Context, token string) (*entity.SessionClaims, error) {
	if token == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	claims, err := srv.tokenService.ValidateSession(token)
	if err != nil {
		return nil, domainerrors.ErrSessionInvalid
	}

	return claims, nil
}

// RefreshSubject re-reads role and status and re-signs the session with them, keeping
// its expiry.
func (srv *authService) RefreshSubject(ctx context.Context, claims *entity.SessionClaims) (*usecase.SessionOutput, error) {
	if claims == nil {
		return nil, domainerrors.ErrUnauthorized
	}
	subject := &claims.Subject

	current, err := srv.loadSubject(ctx, subject)
	if err != nil {
		return nil, err
	}

	if current.Role != subject.Role {
		srv.log(ctx).Info("Session role refreshed",
			slog.String("subject_id", subject.ID.String()),
			slog.String("from", subject.Role.String()),
			slog.String("to", current.Role.String()),
		)
	}

	token, err := srv.tokenService.ReissueSession(current, claims.ExpiresAt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reissue session")
	}

	return &usecase.SessionOutput{Token: token, ExpiresAt: claims.ExpiresAt, Subject: current}, nil
}

func (srv *authService) loadSubject(ctx context.Context, subject *entity.Subject) (*entity.Subject, error) {
	if subject == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	switch subject.Kind {
	case entity.SubjectKindUser:
		user, err := srv.userRepo.FindByID(ctx, subject.ID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, domainerrors.ErrSessionInvalid
			}

			return nil, errors.Wrap(err, "failed to find user")
		}

		return user.Subject(), nil
	case entity.SubjectKindAdmin:
		admin, err := srv.adminRepo.FindByID(ctx, subject.ID)
		if err != nil {
			if errors.Is(err, repository.ErrAdminNotFound) {
				return nil, domainerrors.ErrSessionInvalid
			}

			return nil, errors.Wrap(err, "failed to find admin")
		}
		if !admin.IsActive() {
			return nil, domainerrors.ErrAccountDisabled
		}

		return admin.Subject(), nil
	default:
		return nil, domainerrors.ErrSessionInvalid
	}
}

func (srv *authService) Profile(ctx context.Context, subject *entity.Subject) (*usecase.Profile, error) {
	if subject == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	profile := &usecase.Profile{ID: subject.ID.String(), Kind: subject.Kind, Role: subject.Role}

	switch subject.Kind {
	case entity.SubjectKindUser:
		user, err := srv.userRepo.FindByID(ctx, subject.ID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, domainerrors.ErrSessionInvalid
			}

			return nil, errors.Wrap(err, "failed to find user")
		}
		profile.Email, profile.DisplayName = user.Email, user.DisplayName
	case entity.SubjectKindAdmin:
		admin, err := srv.adminRepo.FindByID(ctx, subject.ID)
		if err != nil {
			if errors.Is(err, repository.ErrAdminNotFound) {
				return nil, domainerrors.ErrSessionInvalid
			}

			return nil, errors.Wrap(err, "failed to find admin")
		}
		profile.Email, profile.DisplayName = admin.Email, admin.DisplayName
	default:
		return nil, domainerrors.ErrSessionInvalid
	}

	return profile, nil
}

func (srv *authService) issue(subject *entity.Subject) (*usecase.SessionOutput, error) {
	token, expiresAt, err := srv.tokenService.IssueSession(subject)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session")
	}

	return &usecase.SessionOutput{Token: token, ExpiresAt: expiresAt, Subject: subject}, nil
}

// burnCheck spends one hash comparison when there is no stored hash to compare
// against, so unknown emails take as long as wrong passwords.
func (srv *authService) burnCheck(password string) {
	srv.dummyOnce.Do(func() {
		hash, err := srv.hasher.Hash("storefront-timing-placeholder")
		if err == nil {
			srv.dummyHash = hash
		}
	})
	if srv.dummyHash != "" {
		srv.hasher.Check(password, srv.dummyHash)
	}
}
