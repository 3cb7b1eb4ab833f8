package entity

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of a business application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsValid checks if the status is a known value.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// BusinessApplication is a prospective merchant's request to open a store.
type BusinessApplication struct {
	ID             uuid.UUID         // The Global Unique Identifier (GUID) for the application.
	ApplicantName  string            // Name of the person applying.
	Email          string            // Lower-cased applicant email; one pending application per email.
	Phone          string            // Contact phone number.
	StoreName      string            // Requested store name.
	DesiredSlug    string            // Requested storefront slug, re-validated on approval.
	CategoryID     uuid.UUID         // Requested store category.
	SubscriptionID uuid.UUID         // Requested subscription plan.
	DocumentURLs   []string          // Uploaded verification documents.
	Status         ApplicationStatus // pending, approved or rejected.
	ReviewedBy     *uuid.UUID        // Admin that made the final decision.
	ReviewedAt     *time.Time        // When the final decision was made.
	RejectReason   *string           // Optional reason given on rejection.
	CreatedAt      time.Time         // Submission time.
	UpdatedAt      time.Time         // Timestamp of the last modification.
}

// HasDocuments reports whether any verification document was supplied.
func (a *BusinessApplication) HasDocuments() bool {
	return len(a.DocumentURLs) > 0
}
