package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

type notificationDeliveryService struct {
	pushSvc     service.PushNotificationService
	mailer      service.Mailer
	adminTopic  string
	adminEmails []string
	logger      *slog.Logger
}

// NotificationDeliveryParams holds dependencies for the delivery service, injected by Fx.
type NotificationDeliveryParams struct {
	fx.In

	PushSvc service.PushNotificationService
	Mailer  service.Mailer
	Config  *config.Config
	Logger  *slog.Logger
}

// NewNotificationDeliveryService creates the service the notifier worker runs for each event
func NewNotificationDeliveryService(params NotificationDeliveryParams) usecase.NotificationDeliveryUsecase {
	srv := &notificationDeliveryService{
		pushSvc: params.PushSvc,
		mailer:  params.Mailer,
		logger:  params.Logger,
	}
	if cfg := params.Config.Notification; cfg != nil {
		srv.adminTopic = cfg.AdminTopic
		srv.adminEmails = cfg.AdminEmails
	}

	return srv
}

func (s *notificationDeliveryService) Deliver(ctx context.Context, event *service.NotificationEvent) error {
	if event == nil {
		return domainerrors.ErrValidationFailed.WithDetails("event is required")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger).With(
		slog.String("event_id", event.EventID),
		slog.String("event_type", string(event.Type)),
	)

	var err error
	switch event.Type {
	case service.NotificationEventAdminAlert:
		err = s.deliverAdminAlert(ctx, logger, event)
	case service.NotificationEventApplicantReceipt:
		err = s.deliverApplicantReceipt(ctx, event)
	case service.NotificationEventPasswordSetup:
		err = s.deliverPasswordSetup(ctx, event)
	default:
		return domainerrors.ErrValidationFailed.WithDetails("unknown event type: " + string(event.Type))
	}
	if err != nil {
		return err
	}

	logger.Info("Notification delivered")

	return nil
}

// deliverAdminAlert pushes to the admin topic and mails every reviewer. A failure on
// one channel does not stop the others; any failure makes the event retryable.
func (s *notificationDeliveryService) deliverAdminAlert(ctx context.Context, logger *slog.Logger, event *service.NotificationEvent) error {
	summary := event.Application
	if summary == nil {
		return domainerrors.ErrValidationFailed.WithDetails("admin_alert requires application")
	}

	title := "New business application"
	body := fmt.Sprintf("%s applied for %q (%s)", summary.ApplicantName, summary.StoreName, summary.DesiredSlug)

	var failures []error

	if s.adminTopic != "" {
		data := map[string]string{
			"application_id": summary.ApplicationID,
			"desired_slug":   summary.DesiredSlug,
		}
		if err := s.pushSvc.SendToTopic(ctx, s.adminTopic, title, body, data); err != nil {
			logger.Warn("Admin push failed", slog.Any("error", err))
			failures = append(failures, errors.Wrap(err, "push to admin topic"))
		}
	}

	mailBody := adminAlertBody(summary)
	for _, to := range s.adminEmails {
		if err := s.mailer.Send(ctx, to, title, mailBody); err != nil {
			logger.Warn("Admin alert email failed", slog.String("to", to), slog.Any("error", err))
			failures = append(failures, errors.Wrapf(err, "mail %s", to))
		}
	}

	if len(failures) > 0 {
		return usecase.NewRetryableError(errors.Join(failures...))
	}

	return nil
}

func (s *notificationDeliveryService) deliverApplicantReceipt(ctx context.Context, event *service.NotificationEvent) error {
	if event.Recipient == "" || event.Application == nil {
		return domainerrors.ErrValidationFailed.WithDetails("applicant_receipt requires recipient and application")
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your application for %q. Our team will review it and get back to you.\n\nReference: %s\n",
		event.Application.ApplicantName, event.Application.StoreName, event.Application.ApplicationID,
	)

	if err := s.mailer.Send(ctx, event.Recipient, "We received your application", body); err != nil {
		return usecase.NewRetryableError(errors.Wrap(err, "mail applicant receipt"))
	}

	return nil
}

func (s *notificationDeliveryService) deliverPasswordSetup(ctx context.Context, event *service.NotificationEvent) error {
	if event.Recipient == "" || event.SetupLink == "" {
		return domainerrors.ErrValidationFailed.WithDetails("password_setup requires recipient and setup_link")
	}

	body := fmt.Sprintf(
		"Your store has been approved.\n\nSet your password to sign in:\n%s\n\nThe link can be used once.\n",
		event.SetupLink,
	)

	if err := s.mailer.Send(ctx, event.Recipient, "Set up your storefront account", body); err != nil {
		return usecase.NewRetryableError(errors.Wrap(err, "mail password setup link"))
	}

	return nil
}

func adminAlertBody(summary *service.ApplicationSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Applicant: %s <%s>\n", summary.ApplicantName, summary.Email)
	fmt.Fprintf(&b, "Store: %s\n", summary.StoreName)
	fmt.Fprintf(&b, "Requested slug: %s\n", summary.DesiredSlug)
	fmt.Fprintf(&b, "Documents: %d\n", summary.DocumentCount)
	fmt.Fprintf(&b, "Submitted: %s\n", summary.SubmittedAt.UTC().Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "Application ID: %s\n", summary.ApplicationID)

	return b.String()
}
