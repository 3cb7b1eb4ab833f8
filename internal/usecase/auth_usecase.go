package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
)

// SignupInput registers a customer account.
type SignupInput struct {
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,max=128"`
	DisplayName string `json:"display_name" validate:"required,max=120"`
}

// LoginInput is used by both the user and the admin login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SetupPasswordInput activates a provisioned account.
type SetupPasswordInput struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,max=128"`
}

// SessionOutput is a freshly issued session.
type SessionOutput struct {
	Token     string
	ExpiresAt time.Time
	Subject   *entity.Subject
}

// Profile is the public view of the current subject.
type Profile struct {
	ID          string             `json:"id"`
	Kind        entity.SubjectKind `json:"kind"`
	Role        entity.Role        `json:"role"`
	Email       string             `json:"email"`
	DisplayName string             `json:"display_name"`
}

// AuthUsecase authenticates users and admins and issues sessions.
type AuthUsecase interface {
	SignupCustomer(ctx context.Context, input *SignupInput) (*SessionOutput, error)
	LoginUser(ctx context.Context, input *LoginInput) (*SessionOutput, error)
	LoginAdmin(ctx context.Context, input *LoginInput) (*SessionOutput, error)
	SetupPassword(ctx context.Context, input *SetupPasswordInput) (*SessionOutput, error)
	// CurrentSubject verifies a session token. It never touches the database.
	CurrentSubject(ctx context.Context, token string) (*entity.SessionClaims, error)
	// RefreshSubject re-reads the subject from storage and re-signs the session with
	// the current role. The original expiry is kept.
	RefreshSubject(ctx context.Context, claims *entity.SessionClaims) (*SessionOutput, error)
	Profile(ctx context.Context, subject *entity.Subject) (*Profile, error)
}
