package usecase

import (
	"context"
	"fmt"

	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

// NotificationDeliveryUsecase is run by the notifier worker for every event it consumes.
type NotificationDeliveryUsecase interface {
	// Deliver sends the message an event describes. Errors for which IsRetryable
	// reports true should be redelivered by the transport; others are dropped.
	Deliver(ctx context.Context, event *service.NotificationEvent) error
}

// retryableError marks a transient delivery failure
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// NewRetryableError wraps err as a transient failure.
func NewRetryableError(err error) error {
	if err == nil {
		return nil
	}

	return &retryableError{err: err}
}

// IsRetryable reports whether err, or anything it wraps, is transient.
func IsRetryable(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}
