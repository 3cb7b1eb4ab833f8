package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"
	"storefront/internal/delivery/worker/handler"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
	"storefront/internal/infra/pubsub"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

type workerEnv struct {
	cfg       *config.Config
	logger    *slog.Logger
	pushSvc   *mockSvc.MockPushNotificationService
	mailer    *mockSvc.MockMailer
	processor *handler.EventProcessor
}

func newWorkerEnv(t *testing.T) *workerEnv {
	t.Helper()

	cfg := &config.Config{
		Notification: &config.NotificationConfig{
			AdminTopic:  "admin-alerts",
			AdminEmails: []string{"reviews@storefront.local"},
		},
		PubSub: &config.PubSubConfig{Provider: constants.PubSubProviderLocal},
	}
	cfg.Env.Env = constants.EnvDevelop
	cfg.HTTP.MaxRequestBodySize = "64KB"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pushSvc := mockSvc.NewMockPushNotificationService(t)
	mailer := mockSvc.NewMockMailer(t)

	deliveryUC := impl.NewNotificationDeliveryService(impl.NotificationDeliveryParams{
		PushSvc: pushSvc,
		Mailer:  mailer,
		Config:  cfg,
		Logger:  logger,
	})

	return &workerEnv{
		cfg:       cfg,
		logger:    logger,
		pushSvc:   pushSvc,
		mailer:    mailer,
		processor: handler.NewEventProcessor(handler.EventProcessorParams{DeliveryUC: deliveryUC, Logger: logger}),
	}
}

func (env *workerEnv) echo(validator handler.TokenValidator) *echo.Echo {
	push := handler.NewPushHandler(handler.PushHandlerParams{
		Config:    env.cfg,
		Logger:    env.logger,
		Processor: env.processor,
		Validator: validator,
	})

	return NewEcho(env.cfg, env.logger, push)
}

func setupEvent() *service.NotificationEvent {
	return &service.NotificationEvent{
		EventID:   "evt-1",
		RequestID: "req-from-api",
		Type:      service.NotificationEventPasswordSetup,
		Recipient: "owner@kandy.example",
		SetupLink: "https://shops.example.com/setup?token=abc",
	}
}

func postPush(t *testing.T, e *echo.Echo, msg any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, PushPath, bytes.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestPushHandler_DeliversEvent(t *testing.T) {
	env := newWorkerEnv(t)
	env.mailer.EXPECT().
		Send(mock.Anything, "owner@kandy.example", "Set up your storefront account", mock.MatchedBy(func(body string) bool {
			return bytes.Contains([]byte(body), []byte("https://shops.example.com/setup?token=abc"))
		})).
		Return(nil).Once()

	msg, err := pubsub.NewPushMessage(setupEvent())
	require.NoError(t, err)

	rec := postPush(t, env.echo(nil), msg, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_TransientFailureAsksForRedelivery(t *testing.T) {
	env := newWorkerEnv(t)
	env.mailer.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp: connection refused")).Once()

	msg, err := pubsub.NewPushMessage(setupEvent())
	require.NoError(t, err)

	rec := postPush(t, env.echo(nil), msg, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPushHandler_PermanentFailureIsAcked(t *testing.T) {
	env := newWorkerEnv(t)

	event := setupEvent()
	event.SetupLink = ""
	msg, err := pubsub.NewPushMessage(event)
	require.NoError(t, err)

	rec := postPush(t, env.echo(nil), msg, nil)
	assert.Equal(t, http.StatusOK, rec.Code, "malformed events must not be redelivered forever")
}

func TestPushHandler_RejectsUndecodableData(t *testing.T) {
	env := newWorkerEnv(t)

	msg := &pubsub.PushMessage{}
	msg.Message.Data = "%%% not base64 %%%"

	rec := postPush(t, env.echo(nil), msg, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPushHandler_VerifiesGoogleTokens(t *testing.T) {
	env := newWorkerEnv(t)
	env.cfg.Env.Env = constants.EnvProduction
	env.cfg.PubSub = &config.PubSubConfig{
		Provider:     constants.PubSubProviderGoogle,
		PushAudience: "https://notifier.example.com/push",
	}

	var gotAudience string
	validator := func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		gotAudience = audience
		if token != "good" {
			return nil, errors.New("bad signature")
		}

		return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
	}
	e := env.echo(validator)

	msg, err := pubsub.NewPushMessage(setupEvent())
	require.NoError(t, err)

	rec := postPush(t, e, msg, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postPush(t, e, msg, http.Header{"Authorization": {"Bearer forged"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "https://notifier.example.com/push", gotAudience)

	env.mailer.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	rec = postPush(t, e, msg, http.Header{"Authorization": {"Bearer good"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

type fakeDelivery struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (d *fakeDelivery) Ack(bool) error {
	d.acked = true

	return nil
}

func (d *fakeDelivery) Nack(_, requeue bool) error {
	d.nacked = true
	d.requeue = requeue

	return nil
}

func TestConsumer_HandleAcksAndRequeues(t *testing.T) {
	env := newWorkerEnv(t)
	consumer := &rabbitConsumer{logger: env.logger, processor: env.processor}
	ctx := context.Background()

	body, err := json.Marshal(setupEvent())
	require.NoError(t, err)

	t.Run("delivered", func(t *testing.T) {
		env.mailer.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		d := &fakeDelivery{}
		consumer.handle(ctx, body, "corr-1", d)

		assert.True(t, d.acked)
		assert.False(t, d.nacked)
	})

	t.Run("transient failure is requeued", func(t *testing.T) {
		env.mailer.EXPECT().Send(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("timeout")).Once()

		d := &fakeDelivery{}
		consumer.handle(ctx, body, "", d)

		assert.True(t, d.nacked)
		assert.True(t, d.requeue)
	})

	t.Run("garbage is dropped", func(t *testing.T) {
		d := &fakeDelivery{}
		consumer.handle(ctx, []byte("{not json"), "", d)

		assert.True(t, d.nacked)
		assert.False(t, d.requeue)
	})

	t.Run("unknown type is acked", func(t *testing.T) {
		d := &fakeDelivery{}
		consumer.handle(ctx, []byte(`{"event_id":"x","type":"sms"}`), "", d)

		assert.True(t, d.acked)
	})
}

func TestConsumer_DisabledWithoutRabbitMQ(t *testing.T) {
	env := newWorkerEnv(t)
	consumer := &rabbitConsumer{logger: env.logger, processor: env.processor}

	assert.NoError(t, consumer.Serve(context.Background()))
	assert.NoError(t, consumer.stop())
}
