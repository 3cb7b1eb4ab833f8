package notification

import (
	"context"
	"io"
	"log/slog"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
	mockSvc "storefront/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetupLink(t *testing.T) {
	assert.Equal(t, "https://app.test/setup?token=a.b.c", SetupLink("https://app.test/setup", "a.b.c"))
	assert.Equal(t, "https://app.test/setup?lang=en&token=x%2By", SetupLink("https://app.test/setup?lang=en", "x+y"))
	assert.Equal(t, "?token=abc", SetupLink("", "abc"))
}

func TestEventNotifier_PasswordSetup(t *testing.T) {
	publisher := mockSvc.NewMockEventPublisher(t)
	notifier := NewEventNotifier(publisher, "https://app.test/setup")

	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")

	publisher.EXPECT().
		PublishNotificationEvent(ctx, mock.MatchedBy(func(event *service.NotificationEvent) bool {
			return event.Type == service.NotificationEventPasswordSetup &&
				event.Recipient == "owner@kandy.test" &&
				event.SetupLink == "https://app.test/setup?token=tok" &&
				event.RequestID == "req-42" &&
				event.EventID != ""
		})).
		Return(nil)

	require.NoError(t, notifier.SendPasswordSetupLink(ctx, "owner@kandy.test", "tok"))
}

func TestEventNotifier_PropagatesPublishError(t *testing.T) {
	publisher := mockSvc.NewMockEventPublisher(t)
	notifier := NewEventNotifier(publisher, "")
	summary := &service.ApplicationSummary{ApplicationID: "app-1"}

	publisher.EXPECT().
		PublishNotificationEvent(mock.Anything, mock.MatchedBy(func(event *service.NotificationEvent) bool {
			return event.Type == service.NotificationEventAdminAlert && event.Application == summary
		})).
		Return(errors.New("broker down"))

	assert.ErrorContains(t, notifier.SendAdminAlert(context.Background(), summary), "broker down")
}

func TestNewNotifier(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := mockSvc.NewMockEventPublisher(t)

	n, err := NewNotifier(NotifierParams{Config: &config.Config{}, Logger: logger, Publisher: publisher})
	require.NoError(t, err)
	assert.IsType(t, &logNotifier{}, n)

	n, err = NewNotifier(NotifierParams{
		Config:    &config.Config{Notification: &config.NotificationConfig{Provider: constants.NotificationProviderEvents}},
		Logger:    logger,
		Publisher: publisher,
	})
	require.NoError(t, err)
	assert.IsType(t, &eventNotifier{}, n)

	_, err = NewNotifier(NotifierParams{
		Config: &config.Config{Notification: &config.NotificationConfig{Provider: "pigeon"}},
		Logger: logger,
	})
	assert.Error(t, err)
}

func TestSMTPMailer_Send(t *testing.T) {
	mailer := NewSMTPMailer(&config.SMTPConfig{Host: "smtp.test", Username: "u", Password: "p", From: "noreply@storefront.test"}).(*smtpMailer)
	assert.Equal(t, "smtp.test:587", mailer.addr)

	var gotTo []string
	var gotMsg string
	mailer.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		assert.Equal(t, "smtp.test:587", addr)
		assert.Equal(t, "noreply@storefront.test", from)
		gotTo = to
		gotMsg = string(msg)

		return nil
	}

	require.NoError(t, mailer.Send(context.Background(), "owner@kandy.test", "Welcome\r\nBcc: x@evil.test", "line1\nline2"))
	assert.Equal(t, []string{"owner@kandy.test"}, gotTo)
	assert.Contains(t, gotMsg, "Subject: Welcome Bcc: x@evil.test\r\n")
	assert.True(t, strings.HasSuffix(gotMsg, "line1\r\nline2"))
}

func TestSMTPMailer_ContextDeadline(t *testing.T) {
	mailer := NewSMTPMailer(&config.SMTPConfig{Host: "smtp.test", Port: 25}).(*smtpMailer)
	release := make(chan struct{})
	defer close(release)
	mailer.send = func(string, smtp.Auth, string, []string, []byte) error {
		<-release

		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, mailer.Send(ctx, "a@test.io", "s", "b"), context.DeadlineExceeded)
}
