package service

import (
	"context"
	"time"
)

// ApplicationSummary is the part of an application that is safe to send to reviewers
// and applicants.
type ApplicationSummary struct {
	ApplicationID string    `json:"application_id"`
	ApplicantName string    `json:"applicant_name"`
	Email         string    `json:"email"`
	StoreName     string    `json:"store_name"`
	DesiredSlug   string    `json:"desired_slug"`
	DocumentCount int       `json:"document_count"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// Notifier delivers out-of-band messages about the application lifecycle.
// Callers treat every method as best-effort.
type Notifier interface {
	SendAdminAlert(ctx context.Context, summary *ApplicationSummary) error
	SendApplicantReceipt(ctx context.Context, email string, summary *ApplicationSummary) error
	SendPasswordSetupLink(ctx context.Context, email, token string) error
}
