package notification

import (
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// NotifierParams holds dependencies for the Notifier provider
type NotifierParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	Publisher service.EventPublisher
}

// NewNotifier selects the notifier named by notification.provider.
func NewNotifier(params NotifierParams) (service.Notifier, error) {
	cfg := params.Config.Notification
	if cfg == nil {
		return NewLogNotifier(params.Logger, ""), nil
	}

	switch cfg.Provider {
	case "", constants.NotificationProviderLog:
		return NewLogNotifier(params.Logger, cfg.SetupURL), nil
	case constants.NotificationProviderEvents:
		return NewEventNotifier(params.Publisher, cfg.SetupURL), nil
	default:
		return nil, errors.Errorf("unknown notification provider: %s", cfg.Provider)
	}
}
