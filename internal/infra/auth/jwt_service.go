// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeSession       = "session"
	tokenTypePasswordSetup = "password_setup"
	fingerprintLength      = 32
)

// sessionClaims is the signed payload of a session cookie.
type sessionClaims struct {
	UserID uuid.UUID `json:"userId"`
	Kind   string    `json:"kind"`
	Role   string    `json:"role"`
	Type   string    `json:"type"`
	jwt.RegisteredClaims
}

// setupClaims is the signed payload of a password setup link.
type setupClaims struct {
	UserID      uuid.UUID `json:"userId"`
	Email       string    `json:"email"`
	Fingerprint string    `json:"fpr"`
	Type        string    `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	sessionSecret string        // Secret key for signing session tokens.
	setupSecret   string        // Secret key for signing password setup tokens.
	sessionTTL    time.Duration // Time-to-live for sessions.
	setupTTL      time.Duration // Time-to-live for password setup links.
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" || cfg.SecretKey.PasswordSetup == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Session == cfg.SecretKey.PasswordSetup {
		return nil, errors.New("session and password setup secrets must differ")
	}

	return &jwtService{
		sessionSecret: cfg.SecretKey.Session,
		setupSecret:   cfg.SecretKey.PasswordSetup,
		sessionTTL:    cfg.Auth.SessionTTL,
		setupTTL:      cfg.Auth.SetupTokenTTL,
		now:           time.Now,
	}, nil
}

// IssueSession signs a session token carrying the subject's id, kind and role.
func (s *jwtService) IssueSession(subject *entity.Subject) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.sessionTTL)

	token, err := s.signSession(subject, now, expiresAt)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// ReissueSession re-signs subject with a new issue time and the given expiry.
func (s *jwtService) ReissueSession(subject *entity.Subject, expiresAt time.Time) (string, error) {
	now := s.now()
	if !expiresAt.After(now) {
		return "", domainerrors.ErrSessionInvalid
	}

	return s.signSession(subject, now, expiresAt)
}

func (s *jwtService) signSession(subject *entity.Subject, now, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		UserID: subject.ID,
		Kind:   string(subject.Kind),
		Role:   subject.Role.String(),
		Type:   tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.sessionSecret))
	if err != nil {
		return "", errors.Wrap(err, "sign session")
	}

	return token, nil
}

// ValidateSession rejects anything that is not an unexpired HS256 session token signed
// with the session key.
func (s *jwtService) ValidateSession(tokenString string) (*entity.SessionClaims, error) {
	claims := &sessionClaims{}
	if err := s.parse(tokenString, s.sessionSecret, claims); err != nil {
		return nil, domainerrors.ErrSessionInvalid
	}

	role := entity.Role(claims.Role)
	kind := entity.SubjectKind(claims.Kind)
	if claims.Type != tokenTypeSession || claims.UserID == uuid.Nil || !role.IsValid() || role.Kind() != kind || claims.IssuedAt == nil {
		return nil, domainerrors.ErrSessionInvalid
	}

	return &entity.SessionClaims{
		Subject:   entity.Subject{Kind: kind, ID: claims.UserID, Role: role},
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// SessionDuration returns the configured session lifetime.
func (s *jwtService) SessionDuration() time.Duration {
	return s.sessionTTL
}

// IssuePasswordSetup signs a setup token that stops verifying once the password hash changes.
func (s *jwtService) IssuePasswordSetup(userID uuid.UUID, email, passwordHash string) (string, error) {
	now := s.now()

	claims := setupClaims{
		UserID:      userID,
		Email:       email,
		Fingerprint: s.PasswordFingerprint(passwordHash),
		Type:        tokenTypePasswordSetup,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.setupTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.setupSecret))
	if err != nil {
		return "", errors.Wrap(err, "sign password setup token")
	}

	return token, nil
}

// ValidatePasswordSetup verifies a setup token. Callers must still compare the fingerprint
// with the current password hash.
func (s *jwtService) ValidatePasswordSetup(tokenString string) (*entity.PasswordSetupClaims, error) {
	claims := &setupClaims{}
	if err := s.parse(tokenString, s.setupSecret, claims); err != nil {
		return nil, domainerrors.ErrSetupTokenInvalid
	}
	if claims.Type != tokenTypePasswordSetup || claims.UserID == uuid.Nil || claims.Fingerprint == "" {
		return nil, domainerrors.ErrSetupTokenInvalid
	}

	return &entity.PasswordSetupClaims{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Fingerprint: claims.Fingerprint,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// PasswordFingerprint is a keyed digest of the password hash, so the hash itself never
// appears in a token.
func (s *jwtService) PasswordFingerprint(passwordHash string) string {
	mac := hmac.New(sha256.New, []byte(s.setupSecret))
	mac.Write([]byte(passwordHash))

	return hex.EncodeToString(mac.Sum(nil))[:fingerprintLength]
}

func (s *jwtService) parse(tokenString, secret string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	return err
}
