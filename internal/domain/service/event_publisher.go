package service

import (
	"context"
)

// NotificationEventType identifies what a notification event asks the worker to deliver.
type NotificationEventType string

const (
	NotificationEventAdminAlert       NotificationEventType = "admin_alert"
	NotificationEventApplicantReceipt NotificationEventType = "applicant_receipt"
	NotificationEventPasswordSetup    NotificationEventType = "password_setup"
)

// NotificationEvent represents an event to be processed by the notification worker
type NotificationEvent struct {
	EventID     string                `json:"event_id"`
	RequestID   string                `json:"request_id,omitempty"` // For distributed tracing
	Type        NotificationEventType `json:"type"`
	Recipient   string                `json:"recipient,omitempty"`
	Application *ApplicationSummary   `json:"application,omitempty"`
	SetupLink   string                `json:"setup_link,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishNotificationEvent publishes a notification event for async processing
	PublishNotificationEvent(ctx context.Context, event *NotificationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
