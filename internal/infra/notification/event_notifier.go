package notification

import (
	"context"
	"net/url"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
)

// eventNotifier turns notifier calls into events for the notifier worker
type eventNotifier struct {
	publisher service.EventPublisher
	setupURL  string
}

// NewEventNotifier publishes one event per notification.
func NewEventNotifier(publisher service.EventPublisher, setupURL string) service.Notifier {
	return &eventNotifier{publisher: publisher, setupURL: setupURL}
}

func (n *eventNotifier) SendAdminAlert(ctx context.Context, summary *service.ApplicationSummary) error {
	return n.publish(ctx, &service.NotificationEvent{
		Type:        service.NotificationEventAdminAlert,
		Application: summary,
	})
}

func (n *eventNotifier) SendApplicantReceipt(ctx context.Context, email string, summary *service.ApplicationSummary) error {
	return n.publish(ctx, &service.NotificationEvent{
		Type:        service.NotificationEventApplicantReceipt,
		Recipient:   email,
		Application: summary,
	})
}

func (n *eventNotifier) SendPasswordSetupLink(ctx context.Context, email, token string) error {
	return n.publish(ctx, &service.NotificationEvent{
		Type:      service.NotificationEventPasswordSetup,
		Recipient: email,
		SetupLink: SetupLink(n.setupURL, token),
	})
}

func (n *eventNotifier) publish(ctx context.Context, event *service.NotificationEvent) error {
	event.EventID = uuid.NewString()
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	return n.publisher.PublishNotificationEvent(ctx, event)
}

// SetupLink appends the token to the frontend setup page as ?token=
func SetupLink(base, token string) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return "?token=" + url.QueryEscape(token)
	}

	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	return u.String()
}
