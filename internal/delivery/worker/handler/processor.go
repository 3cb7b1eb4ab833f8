// Package handler decodes notification events from the worker transports.
package handler

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// EventProcessorParams holds dependencies for EventProcessor, injected by Fx.
type EventProcessorParams struct {
	fx.In

	DeliveryUC usecase.NotificationDeliveryUsecase
	Logger     *slog.Logger
}

// EventProcessor runs decoded events through the delivery use case for every transport.
type EventProcessor struct {
	deliveryUC usecase.NotificationDeliveryUsecase
	logger     *slog.Logger
}

// NewEventProcessor creates a new EventProcessor
func NewEventProcessor(params EventProcessorParams) *EventProcessor {
	return &EventProcessor{
		deliveryUC: params.DeliveryUC,
		logger:     params.Logger,
	}
}

// Process delivers event and returns an error only when the transport should
// redeliver it. Permanent failures are logged and swallowed.
func (p *EventProcessor) Process(ctx context.Context, event *service.NotificationEvent, requestID string) error {
	if requestID == "" {
		requestID = uuid.New().String()
	}

	reqLogger := p.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing notification event",
		slog.String("event_id", event.EventID),
		slog.String("type", string(event.Type)),
	)

	err := p.deliveryUC.Deliver(ctx, event)
	if err == nil {
		return nil
	}

	retryable := usecase.IsRetryable(err)
	reqLogger.Error("[Worker] Failed to deliver notification",
		slog.String("event_id", event.EventID),
		slog.Any("error", err),
		slog.Bool("retryable", retryable),
	)
	if retryable {
		return err
	}

	return nil
}
