package auth

import (
	"strings"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{SessionTTL: 24 * time.Hour, SetupTokenTTL: 48 * time.Hour}}
	cfg.SecretKey.Session = "test_session_secret_key_very_long_for_testing"
	cfg.SecretKey.PasswordSetup = "test_setup_secret_key_very_long_for_testing"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresDistinctSecrets(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{}}
	_, err := NewJWTService(cfg)
	assert.Error(t, err)

	cfg.SecretKey.Session = "same"
	cfg.SecretKey.PasswordSetup = "same"
	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_SessionRoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	subject := &entity.Subject{Kind: entity.SubjectKindAdmin, ID: uuid.New(), Role: entity.RoleSuperAdmin}

	token, expiresAt, err := svc.IssueSession(subject)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, *subject, claims.Subject)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, time.Minute)
}

func TestJWTService_SessionRejections(t *testing.T) {
	svc := newTestJWTService(t)
	subject := &entity.Subject{Kind: entity.SubjectKindUser, ID: uuid.New(), Role: entity.RoleMerchant}

	valid, _, err := svc.IssueSession(subject)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tamperedPayload := parts[0] + "." + parts[1] + "x." + parts[2]

	expiredSvc := newTestJWTService(t)
	expiredSvc.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	expired, _, err := expiredSvc.IssueSession(subject)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": subject.ID, "kind": "user", "role": "merchant", "type": "session",
		"iat": time.Now().Unix(), "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": subject.ID, "kind": "user", "role": "merchant", "type": "session",
		"iat": time.Now().Unix(), "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-key"))
	require.NoError(t, err)

	setupToken, err := svc.IssuePasswordSetup(subject.ID, "a@b.c", "hash")
	require.NoError(t, err)

	mismatchedKind, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": subject.ID, "kind": "user", "role": "super_admin", "type": "session",
		"iat": time.Now().Unix(), "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(svc.sessionSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":         "clearly-not-a-jwt-token-format",
		"tampered":        tamperedPayload,
		"expired":         expired,
		"alg none":        noneToken,
		"wrong key":       otherKey,
		"setup token":     setupToken,
		"role kind mixup": mismatchedKind,
		"empty":           "",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := svc.ValidateSession(token)
			assert.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_PasswordSetup(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	token, err := svc.IssuePasswordSetup(userID, "owner@kandy.test", "$2a$12$hash")
	require.NoError(t, err)

	claims, err := svc.ValidatePasswordSetup(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "owner@kandy.test", claims.Email)
	assert.Equal(t, svc.PasswordFingerprint("$2a$12$hash"), claims.Fingerprint)
	assert.NotEqual(t, svc.PasswordFingerprint("$2a$12$other"), claims.Fingerprint)

	session, _, err := svc.IssueSession(&entity.Subject{Kind: entity.SubjectKindUser, ID: userID, Role: entity.RoleMerchant})
	require.NoError(t, err)
	_, err = svc.ValidatePasswordSetup(session)
	assert.ErrorIs(t, err, domainerrors.ErrSetupTokenInvalid)
}

func TestJWTService_ReissueKeepsExpiry(t *testing.T) {
	svc := newTestJWTService(t)
	subject := &entity.Subject{Kind: entity.SubjectKindUser, ID: uuid.New(), Role: entity.RoleCustomer}

	_, expiresAt, err := svc.IssueSession(subject)
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
	escalated := &entity.Subject{Kind: subject.Kind, ID: subject.ID, Role: entity.RoleMerchant}
	token, err := svc.ReissueSession(escalated, expiresAt)
	require.NoError(t, err)

	svc.now = time.Now
	claims, err := svc.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMerchant, claims.Subject.Role)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.True(t, claims.IssuedAt.After(time.Now().Add(2*time.Hour)))

	_, err = svc.ReissueSession(escalated, time.Now().Add(-time.Second))
	assert.ErrorIs(t, err, domainerrors.ErrSessionInvalid)
}
