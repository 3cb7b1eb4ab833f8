package handler

import (
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
)

// Entities carry credential hashes, so responses go through these views.

type sessionView struct {
	Kind      entity.SubjectKind `json:"kind"`
	SubjectID uuid.UUID          `json:"subject_id"`
	Role      entity.Role        `json:"role"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
}

func newSessionView(out *usecase.SessionOutput) *sessionView {
	return &sessionView{
		Kind:      out.Subject.Kind,
		SubjectID: out.Subject.ID,
		Role:      out.Subject.Role,
		Token:     out.Token,
		ExpiresAt: out.ExpiresAt,
	}
}

type userView struct {
	ID          uuid.UUID   `json:"id"`
	Email       string      `json:"email"`
	DisplayName string      `json:"display_name"`
	Role        entity.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
}

func newUserView(user *entity.User) *userView {
	if user == nil {
		return nil
	}

	return &userView{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
	}
}

type adminView struct {
	ID                 uuid.UUID          `json:"id"`
	Email              string             `json:"email"`
	DisplayName        string             `json:"display_name"`
	Role               entity.Role        `json:"role"`
	Status             entity.AdminStatus `json:"status"`
	HasPendingRecovery bool               `json:"has_pending_recovery"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func newAdminView(admin *entity.AdminUser) *adminView {
	return &adminView{
		ID:                 admin.ID,
		Email:              admin.Email,
		DisplayName:        admin.DisplayName,
		Role:               admin.Role,
		Status:             admin.Status,
		HasPendingRecovery: admin.RecoveryCodeHash != nil,
		CreatedAt:          admin.CreatedAt,
		UpdatedAt:          admin.UpdatedAt,
	}
}

func newAdminViews(admins []*entity.AdminUser) []*adminView {
	views := make([]*adminView, 0, len(admins))
	for _, admin := range admins {
		views = append(views, newAdminView(admin))
	}

	return views
}

type applicationView struct {
	ID             uuid.UUID                `json:"id"`
	ApplicantName  string                   `json:"applicant_name"`
	Email          string                   `json:"email"`
	Phone          string                   `json:"phone"`
	StoreName      string                   `json:"store_name"`
	DesiredSlug    string                   `json:"desired_slug"`
	CategoryID     uuid.UUID                `json:"category_id"`
	SubscriptionID uuid.UUID                `json:"subscription_id"`
	DocumentURLs   []string                 `json:"document_urls"`
	Status         entity.ApplicationStatus `json:"status"`
	ReviewedBy     *uuid.UUID               `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time               `json:"reviewed_at,omitempty"`
	RejectReason   *string                  `json:"reject_reason,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func newApplicationView(app *entity.BusinessApplication) *applicationView {
	urls := app.DocumentURLs
	if urls == nil {
		urls = []string{}
	}

	return &applicationView{
		ID:             app.ID,
		ApplicantName:  app.ApplicantName,
		Email:          app.Email,
		Phone:          app.Phone,
		StoreName:      app.StoreName,
		DesiredSlug:    app.DesiredSlug,
		CategoryID:     app.CategoryID,
		SubscriptionID: app.SubscriptionID,
		DocumentURLs:   urls,
		Status:         app.Status,
		ReviewedBy:     app.ReviewedBy,
		ReviewedAt:     app.ReviewedAt,
		RejectReason:   app.RejectReason,
		CreatedAt:      app.CreatedAt,
		UpdatedAt:      app.UpdatedAt,
	}
}

// submittedApplicationView is what an anonymous applicant gets back.
type submittedApplicationView struct {
	ID          uuid.UUID                `json:"id"`
	DesiredSlug string                   `json:"desired_slug"`
	Status      entity.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
}

type storeView struct {
	ID             uuid.UUID          `json:"id"`
	Slug           string             `json:"slug"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	CategoryID     uuid.UUID          `json:"category_id"`
	SubscriptionID uuid.UUID          `json:"subscription_id"`
	Status         entity.StoreStatus `json:"status"`
	ThemeColor     string             `json:"theme_color,omitempty"`
	LogoURL        string             `json:"logo_url,omitempty"`
	PhoneNumber    string             `json:"phone_number,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

func newStoreView(store *entity.Store) *storeView {
	if store == nil {
		return nil
	}

	return &storeView{
		ID:             store.ID,
		Slug:           store.Slug,
		Name:           store.Name,
		Description:    store.Description,
		CategoryID:     store.CategoryID,
		SubscriptionID: store.SubscriptionID,
		Status:         store.Status,
		ThemeColor:     store.ThemeColor,
		LogoURL:        store.LogoURL,
		PhoneNumber:    store.PhoneNumber,
		CreatedAt:      store.CreatedAt,
	}
}

func newStoreViews(stores []*entity.Store) []*storeView {
	views := make([]*storeView, 0, len(stores))
	for _, store := range stores {
		views = append(views, newStoreView(store))
	}

	return views
}

type approvalView struct {
	Application       *applicationView `json:"application"`
	Store             *storeView       `json:"store"`
	User              *userView        `json:"user"`
	VerificationID    *uuid.UUID       `json:"verification_id,omitempty"`
	TemporaryPassword string           `json:"temporary_password,omitempty"`
	ReusedAccount     bool             `json:"reused_account"`
}

func newApprovalView(out *usecase.ApproveOutput) *approvalView {
	view := &approvalView{
		Application:       newApplicationView(out.Application),
		Store:             newStoreView(out.Store),
		User:              newUserView(out.User),
		TemporaryPassword: out.TemporaryPassword,
		ReusedAccount:     out.ReusedAccount,
	}
	if out.Verification != nil {
		view.VerificationID = &out.Verification.ID
	}

	return view
}

type categoryView struct {
	ID   uuid.UUID `json:"id"`
	Slug string    `json:"slug"`
	Name string    `json:"name"`
}

type planView struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price_cents"`
	Features     []string  `json:"features"`
	ProductLimit int       `json:"product_limit"`
	ServiceLimit int       `json:"service_limit"`
	BookingLimit int       `json:"booking_limit"`
}

type restrictedSlugView struct {
	ID        uuid.UUID `json:"id"`
	Word      string    `json:"word"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newRestrictedSlugView(word *entity.RestrictedSlug) *restrictedSlugView {
	return &restrictedSlugView{
		ID:        word.ID,
		Word:      word.Word,
		Reason:    word.Reason,
		CreatedAt: word.CreatedAt,
	}
}
