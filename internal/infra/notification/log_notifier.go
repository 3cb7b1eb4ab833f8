package notification

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
)

// logNotifier writes notifications to the application log. The setup link is
// logged at debug level only.
type logNotifier struct {
	logger   *slog.Logger
	setupURL string
}

// NewLogNotifier is the development notifier
func NewLogNotifier(logger *slog.Logger, setupURL string) service.Notifier {
	return &logNotifier{logger: logger, setupURL: setupURL}
}

func (n *logNotifier) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, n.logger)
}

func (n *logNotifier) SendAdminAlert(ctx context.Context, summary *service.ApplicationSummary) error {
	n.log(ctx).Info("[Notify] New business application",
		slog.String("application_id", summary.ApplicationID),
		slog.String("store_name", summary.StoreName),
		slog.String("desired_slug", summary.DesiredSlug),
		slog.Int("document_count", summary.DocumentCount),
	)

	return nil
}

func (n *logNotifier) SendApplicantReceipt(ctx context.Context, email string, summary *service.ApplicationSummary) error {
	n.log(ctx).Info("[Notify] Application receipt",
		slog.String("email", email),
		slog.String("application_id", summary.ApplicationID),
	)

	return nil
}

func (n *logNotifier) SendPasswordSetupLink(ctx context.Context, email, token string) error {
	n.log(ctx).Info("[Notify] Password setup link issued", slog.String("email", email))
	n.log(ctx).Debug("[Notify] Password setup link", slog.String("link", SetupLink(n.setupURL, token)))

	return nil
}
