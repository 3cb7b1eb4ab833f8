package service

import (
	"context"
)

// PushNotificationService defines the interface for push notification services
type PushNotificationService interface {
	// SendToTopic broadcasts a push notification to every device subscribed to topic.
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error
}

// Mailer sends plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
