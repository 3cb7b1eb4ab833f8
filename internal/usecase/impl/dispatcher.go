package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/domain/service"

	"go.uber.org/fx"
)

const defaultDispatchTimeout = 5 * time.Second

// Dispatcher runs best-effort notifications off the request path. Each call gets
// its own timeout and survives cancellation of the originating request; failures
// are logged and never reach the caller.
type Dispatcher struct {
	notifier service.Notifier
	timeout  time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
}

// DispatcherParams holds dependencies for Dispatcher, injected by Fx.
type DispatcherParams struct {
	fx.In

	Lc       fx.Lifecycle `optional:"true"`
	Notifier service.Notifier
	Config   *config.Config
	Logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher and drains pending sends on shutdown.
func NewDispatcher(params DispatcherParams) *Dispatcher {
	timeout := defaultDispatchTimeout
	if params.Config != nil && params.Config.Notification != nil && params.Config.Notification.Timeout > 0 {
		timeout = params.Config.Notification.Timeout
	}

	d := &Dispatcher{
		notifier: params.Notifier,
		timeout:  timeout,
		logger:   params.Logger,
	}

	if params.Lc != nil {
		params.Lc.Append(fx.StopHook(func(ctx context.Context) {
			ctx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
			defer cancel()
			d.drain(ctx)
		}))
	}

	return d
}

// Dispatch runs send in the background. name identifies the notification in logs.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, send func(ctx context.Context, notifier service.Notifier) error) {
	detached := context.WithoutCancel(ctx)
	logger := deliverycontext.GetLoggerOrDefault(ctx, d.logger)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Notification panicked", slog.String("notification", name), slog.String("panic", fmt.Sprint(r)))
			}
		}()

		sendCtx, cancel := context.WithTimeout(detached, d.timeout)
		defer cancel()

		if err := send(sendCtx, d.notifier); err != nil {
			logger.Warn("Notification failed", slog.String("notification", name), slog.Any("error", err))

			return
		}

		logger.Debug("Notification sent", slog.String("notification", name))
	}()
}

// Wait blocks until every dispatched notification has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) drain(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		d.logger.Warn("Shutdown before pending notifications finished")
	}
}
